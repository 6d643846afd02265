package ask

import (
	"context"

	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/component"
	"github.com/apowers313/pupt/internal/render"
	"github.com/apowers313/pupt/internal/schema"
)

// Input collects a free-form string answer. Its implicit default is the
// empty string.
type Input struct {
	component.Base
}

func (i *Input) Name() string { return "Input" }

func (i *Input) Schema() *schema.Schema {
	return schema.Object(map[string]*schema.Attribute{
		"name":    {Type: cty.String, Required: true, Description: "Answer key the value is recorded under."},
		"message": {Type: cty.String, Description: "Question shown to the human collecting the answer."},
		"default": {Type: cty.String, Description: "Value seeded when the answer is skipped."},
		"silent":  {Type: cty.Bool, Description: "Suppress echoing the answer into the output."},
	})
}

func (i *Input) Describe() component.Metadata {
	return component.Metadata{Description: "Collects a string answer.", Tags: []string{"interactive"}}
}

func (i *Input) Resolve(ctx context.Context, rctx *render.Context, props map[string]cty.Value) (cty.Value, error) {
	fallback := cty.StringVal(component.StringProp(props, "default"))
	return resolveAnswer(ctx, rctx, render.Question{
		Name:    component.StringProp(props, "name"),
		Prompt:  component.StringProp(props, "message"),
		Kind:    "input",
		Default: fallback,
	}, fallback)
}

func (i *Input) Render(ctx context.Context, rctx *render.Context, props map[string]cty.Value, resolved cty.Value) (cty.Value, error) {
	text := ""
	if !resolved.IsNull() && resolved.Type() == cty.String {
		text = resolved.AsString()
	}
	return echo(props, text)
}
