// Package conditional provides the If component: a block whose children
// render only when its formula evaluates truthy against the answers map.
package conditional

import (
	"context"

	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/component"
	"github.com/apowers313/pupt/internal/ctxlog"
	"github.com/apowers313/pupt/internal/formula"
	"github.com/apowers313/pupt/internal/render"
	"github.com/apowers313/pupt/internal/schema"
)

// Module implements component.Module for this package.
type Module struct{}

// Register registers the If component.
func (m *Module) Register(c *component.Catalog) {
	c.Register(&If{})
}

// If evaluates its formula during resolve and renders its children only on
// a truthy result; a falsy result renders nothing and is not an error. A
// formula naming an answer that was never collected sees it as absent.
type If struct {
	component.Base
}

func (i *If) Name() string { return "If" }

func (i *If) Schema() *schema.Schema {
	return schema.Object(map[string]*schema.Attribute{
		"formula": {Type: cty.String, Required: true, Description: "Condition in the formula language; the leading = sentinel is optional."},
	})
}

func (i *If) Describe() component.Metadata {
	return component.Metadata{
		Description: "Renders its children only when a formula over the answers map is truthy.",
		Tags:        []string{"conditional"},
	}
}

// Resolve evaluates the formula. Evaluation is pure: it reads the answers
// map and nothing else.
func (i *If) Resolve(ctx context.Context, rctx *render.Context, props map[string]cty.Value) (cty.Value, error) {
	src := component.StringProp(props, "formula")
	ok, err := formula.Eval(src, formula.Env(rctx.Answers().Get))
	if err != nil {
		return cty.NilVal, err
	}
	ctxlog.FromContext(ctx).Debug("conditional evaluated", "formula", src, "result", ok)
	return cty.BoolVal(ok), nil
}

func (i *If) Render(ctx context.Context, rctx *render.Context, props map[string]cty.Value, resolved cty.Value) (cty.Value, error) {
	if resolved.IsNull() || resolved.Type() != cty.Bool || !resolved.True() {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	children := component.Children(props)
	if len(children) == 0 {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	return cty.TupleVal(children), nil
}
