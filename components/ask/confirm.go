package ask

import (
	"context"

	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/component"
	"github.com/apowers313/pupt/internal/render"
	"github.com/apowers313/pupt/internal/schema"
)

// Confirm collects a yes/no answer. Its implicit default is false.
type Confirm struct {
	component.Base
}

func (c *Confirm) Name() string { return "Confirm" }

func (c *Confirm) Schema() *schema.Schema {
	return schema.Object(map[string]*schema.Attribute{
		"name":    {Type: cty.String, Required: true, Description: "Answer key the value is recorded under."},
		"message": {Type: cty.String, Description: "Question shown to the human collecting the answer."},
		"default": {Type: cty.Bool, Description: "Value seeded when the answer is skipped."},
		"silent":  {Type: cty.Bool, Description: "Suppress echoing the answer into the output."},
	})
}

func (c *Confirm) Describe() component.Metadata {
	return component.Metadata{Description: "Collects a boolean answer.", Tags: []string{"interactive"}}
}

func (c *Confirm) Resolve(ctx context.Context, rctx *render.Context, props map[string]cty.Value) (cty.Value, error) {
	fallback := cty.BoolVal(component.BoolProp(props, "default", false))
	return resolveAnswer(ctx, rctx, render.Question{
		Name:    component.StringProp(props, "name"),
		Prompt:  component.StringProp(props, "message"),
		Kind:    "confirm",
		Default: fallback,
	}, fallback)
}

func (c *Confirm) Render(ctx context.Context, rctx *render.Context, props map[string]cty.Value, resolved cty.Value) (cty.Value, error) {
	text := "no"
	if !resolved.IsNull() && resolved.Type() == cty.Bool && resolved.True() {
		text = "yes"
	}
	return echo(props, text)
}
