package ask

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/component"
	"github.com/apowers313/pupt/internal/render"
	"github.com/apowers313/pupt/internal/schema"
)

// Select collects one choice from a closed option set. Its implicit default
// is the first option.
type Select struct {
	component.Base
}

func (s *Select) Name() string { return "Select" }

func (s *Select) Schema() *schema.Schema {
	return schema.Object(map[string]*schema.Attribute{
		"name":    {Type: cty.String, Required: true, Description: "Answer key the value is recorded under."},
		"message": {Type: cty.String, Description: "Question shown to the human collecting the answer."},
		"options": {Type: schema.MustParseType("list(string)"), Required: true, Description: "The closed set of choices."},
		"default": {Type: cty.String, Description: "Value seeded when the answer is skipped; defaults to the first option."},
		"silent":  {Type: cty.Bool, Description: "Suppress echoing the answer into the output."},
	})
}

func (s *Select) Describe() component.Metadata {
	return component.Metadata{Description: "Collects one choice from a fixed option list.", Tags: []string{"interactive"}}
}

func (s *Select) Resolve(ctx context.Context, rctx *render.Context, props map[string]cty.Value) (cty.Value, error) {
	options := component.ListProp(props, "options")
	if len(options) == 0 {
		return cty.NilVal, fmt.Errorf("select %q has no options", component.StringProp(props, "name"))
	}

	fallback := options[0]
	if def := component.StringProp(props, "default"); def != "" {
		fallback = cty.StringVal(def)
	}
	return resolveAnswer(ctx, rctx, render.Question{
		Name:    component.StringProp(props, "name"),
		Prompt:  component.StringProp(props, "message"),
		Kind:    "select",
		Default: fallback,
		Options: options,
	}, fallback)
}

func (s *Select) Render(ctx context.Context, rctx *render.Context, props map[string]cty.Value, resolved cty.Value) (cty.Value, error) {
	text := ""
	if !resolved.IsNull() && resolved.Type() == cty.String {
		text = resolved.AsString()
	}
	return echo(props, text)
}
