// Package section provides the Section structural component: a titled
// block that wraps its children in the document's delimiter style and
// introduces a naming scope.
package section

import (
	"context"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/component"
	"github.com/apowers313/pupt/internal/render"
	"github.com/apowers313/pupt/internal/schema"
)

// Module implements component.Module for this package.
type Module struct{}

// Register registers the Section component.
func (m *Module) Register(c *component.Catalog) {
	c.Register(&Section{})
}

// Section renders a heading plus its children, honoring the output format:
// a markdown heading whose level follows the scope nesting depth, an
// xml-style tag pair, or a bare title line.
type Section struct {
	component.Base
}

func (s *Section) Name() string { return "Section" }

func (s *Section) Schema() *schema.Schema {
	return schema.Object(map[string]*schema.Attribute{
		"title": {Type: cty.String, Required: true, Description: "Heading text for the section."},
		"tag":   {Type: cty.String, Description: "Tag name override for xml output; defaults to the slugified title."},
	})
}

func (s *Section) Describe() component.Metadata {
	return component.Metadata{
		Description: "A titled structural block wrapping its children.",
		Tags:        []string{"structural"},
	}
}

// ScopeName implements component.Scoper: children see the section title as
// their enclosing naming scope.
func (s *Section) ScopeName(props map[string]cty.Value) string {
	return component.StringProp(props, "title")
}

func (s *Section) Render(ctx context.Context, rctx *render.Context, props map[string]cty.Value, _ cty.Value) (cty.Value, error) {
	title := component.StringProp(props, "title")
	body := rctx.RenderText(ctx, component.Children(props))

	switch rctx.Env().Format {
	case render.FormatXML:
		tag := component.StringProp(props, "tag")
		if tag == "" {
			tag = slugify(title)
		}
		if body == "" {
			return cty.StringVal(fmt.Sprintf("<%s/>", tag)), nil
		}
		return cty.StringVal(fmt.Sprintf("<%s>\n%s\n</%s>", tag, indent(body, rctx.Options().Indent), tag)), nil

	case render.FormatPlain:
		if body == "" {
			return cty.StringVal(title), nil
		}
		return cty.StringVal(title + "\n\n" + body), nil

	default: // markdown
		heading := strings.Repeat("#", headingLevel(rctx.Scope()))
		if body == "" {
			return cty.StringVal(heading + " " + title), nil
		}
		return cty.StringVal(heading + " " + title + "\n\n" + body), nil
	}
}

// headingLevel maps scope nesting onto markdown heading depth, capped at
// h6. The section's own scope is already pushed when Render runs.
func headingLevel(s *render.Scope) int {
	level := 0
	for ; s != nil; s = s.Parent {
		level++
	}
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return level
}

func indent(body, prefix string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func slugify(title string) string {
	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
