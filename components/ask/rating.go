package ask

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/component"
	"github.com/apowers313/pupt/internal/render"
	"github.com/apowers313/pupt/internal/schema"
)

// Rating collects a structured answer: an object with a numeric score, the
// scale maximum, and an optional comment. Because the resolved value is an
// object, sibling components can feed a single sub-field elsewhere through
// a deferred reference (for example only the score).
type Rating struct {
	component.Base
}

func (r *Rating) Name() string { return "Rating" }

func (r *Rating) Schema() *schema.Schema {
	five := cty.NumberIntVal(5)
	return schema.Object(map[string]*schema.Attribute{
		"name":    {Type: cty.String, Required: true, Description: "Answer key the value is recorded under."},
		"message": {Type: cty.String, Description: "Question shown to the human collecting the answer."},
		"max":     {Type: cty.Number, Default: &five, Description: "Upper bound of the scale."},
		"default": {Type: cty.Number, Description: "Score seeded when the answer is skipped."},
		"silent":  {Type: cty.Bool, Description: "Suppress echoing the answer into the output."},
	})
}

func (r *Rating) Describe() component.Metadata {
	return component.Metadata{Description: "Collects a structured score answer.", Tags: []string{"interactive"}}
}

func (r *Rating) Resolve(ctx context.Context, rctx *render.Context, props map[string]cty.Value) (cty.Value, error) {
	max := component.IntProp(props, "max", 5)
	score := component.IntProp(props, "default", 0)
	fallback := ratingVal(score, max, "")

	return resolveAnswer(ctx, rctx, render.Question{
		Name:    component.StringProp(props, "name"),
		Prompt:  component.StringProp(props, "message"),
		Kind:    "rating",
		Default: fallback,
	}, fallback)
}

func (r *Rating) Render(ctx context.Context, rctx *render.Context, props map[string]cty.Value, resolved cty.Value) (cty.Value, error) {
	text := ""
	if !resolved.IsNull() && resolved.Type().IsObjectType() {
		attrs := resolved.AsValueMap()
		score, max := attrNumber(attrs, "score"), attrNumber(attrs, "max")
		text = fmt.Sprintf("%d/%d", score, max)
		if c, ok := attrs["comment"]; ok && !c.IsNull() && c.Type() == cty.String && c.AsString() != "" {
			text += " (" + c.AsString() + ")"
		}
	}
	return echo(props, text)
}

func ratingVal(score, max int, comment string) cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"score":   cty.NumberIntVal(int64(score)),
		"max":     cty.NumberIntVal(int64(max)),
		"comment": cty.StringVal(comment),
	})
}

func attrNumber(attrs map[string]cty.Value, name string) int {
	v, ok := attrs[name]
	if !ok || v.IsNull() || v.Type() != cty.Number {
		return 0
	}
	i, _ := v.AsBigFloat().Int64()
	return int(i)
}
