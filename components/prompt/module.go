// Package prompt provides the Prompt structural component: the document
// root that declares the metadata discovery layers read (name, description,
// tags) and wraps the whole body in the document's delimiter style.
package prompt

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/component"
	"github.com/apowers313/pupt/internal/element"
	"github.com/apowers313/pupt/internal/render"
	"github.com/apowers313/pupt/internal/schema"
)

// Module implements component.Module for this package.
type Module struct{}

// Register registers the Prompt component.
func (m *Module) Register(c *component.Catalog) {
	c.Register(&Prompt{})
}

// Prompt is the root structural component of a document.
type Prompt struct {
	component.Base
}

func (p *Prompt) Name() string { return "Prompt" }

func (p *Prompt) Schema() *schema.Schema {
	return schema.Object(map[string]*schema.Attribute{
		"name":        {Type: cty.String, Required: true, Description: "Document name; also the root naming scope."},
		"description": {Type: cty.String, Description: "One-line description for discovery listings."},
		"tags":        {Type: schema.MustParseType("list(string)"), Description: "Search tags for discovery indexes."},
	})
}

func (p *Prompt) Describe() component.Metadata {
	return component.Metadata{
		Description: "Document root declaring discovery metadata.",
		Tags:        []string{"structural"},
	}
}

// ScopeName implements component.Scoper.
func (p *Prompt) ScopeName(props map[string]cty.Value) string {
	return component.StringProp(props, "name")
}

func (p *Prompt) Render(ctx context.Context, rctx *render.Context, props map[string]cty.Value, _ cty.Value) (cty.Value, error) {
	name := component.StringProp(props, "name")
	body := rctx.RenderText(ctx, component.Children(props))

	switch rctx.Env().Format {
	case render.FormatXML:
		if body == "" {
			return cty.StringVal("<prompt/>"), nil
		}
		return cty.StringVal(fmt.Sprintf("<prompt>\n%s\n</prompt>", body)), nil
	case render.FormatPlain:
		return cty.StringVal(body), nil
	default: // markdown
		if body == "" {
			return cty.StringVal("# " + name), nil
		}
		return cty.StringVal("# " + name + "\n\n" + body), nil
	}
}

// DocumentMeta is the metadata discovery layers extract from a document
// root without performing a render.
type DocumentMeta struct {
	Name        string
	Description string
	Tags        []string
}

// MetadataOf reads the discovery metadata off a Prompt-rooted element. The
// second result is false when el is not rooted in a Prompt component.
func MetadataOf(el *element.Element) (DocumentMeta, bool) {
	if el == nil || el.Type().Kind() != element.KindComponent {
		return DocumentMeta{}, false
	}
	comp, ok := el.Type().Component().(interface{ Name() string })
	if !ok || comp.Name() != "Prompt" {
		return DocumentMeta{}, false
	}

	meta := DocumentMeta{}
	if v := el.Prop("name"); v != cty.NilVal && !v.IsNull() && v.Type() == cty.String {
		meta.Name = v.AsString()
	}
	if v := el.Prop("description"); v != cty.NilVal && !v.IsNull() && v.Type() == cty.String {
		meta.Description = v.AsString()
	}
	if v := el.Prop("tags"); v != cty.NilVal && !v.IsNull() && (v.Type().IsListType() || v.Type().IsTupleType()) {
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			if !ev.IsNull() && ev.Type() == cty.String {
				meta.Tags = append(meta.Tags, ev.AsString())
			}
		}
	}
	return meta, true
}
