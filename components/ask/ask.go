// Package ask provides the interactive input collectors: Input, Confirm,
// Select and Rating. Each resolves to the collected (or seeded) answer and
// records it in the render answer store.
//
// Seeding follows the engine contract: an explicit default prop wins over
// the collector's implicit type default, an externally collected answer
// wins over both, and an entry already present in the answer store is never
// overwritten. Seeding happens synchronously inside resolve, before the
// walk advances, so formulas elsewhere in the same document always observe
// a consistent value.
package ask

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/component"
	"github.com/apowers313/pupt/internal/ctxlog"
	"github.com/apowers313/pupt/internal/render"
)

// Module implements component.Module for this package.
type Module struct{}

// Register registers all collectors.
func (m *Module) Register(c *component.Catalog) {
	c.Register(&Input{})
	c.Register(&Confirm{})
	c.Register(&Select{})
	c.Register(&Rating{})
}

// resolveAnswer implements the shared collection sequence: existing answer
// wins, then the external asker, then the seeded default.
func resolveAnswer(ctx context.Context, rctx *render.Context, q render.Question, fallback cty.Value) (cty.Value, error) {
	logger := ctxlog.FromContext(ctx).With("answer", q.Name, "kind", q.Kind)

	if v, ok := rctx.Answers().Get(q.Name); ok {
		logger.Debug("answer already present, keeping it")
		return v, nil
	}

	if v, answered, err := rctx.Ask(ctx, q); err != nil {
		return cty.NilVal, fmt.Errorf("collecting %q: %w", q.Name, err)
	} else if answered {
		logger.Debug("answer collected externally")
		rctx.Answers().Set(q.Name, v)
		return v, nil
	}

	logger.Debug("seeding default answer")
	rctx.Answers().Seed(q.Name, fallback)
	return fallback, nil
}

// echo renders the collected value as "label: value" unless the collector
// was marked silent.
func echo(props map[string]cty.Value, value string) (cty.Value, error) {
	if component.BoolProp(props, "silent", false) {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	label := component.StringProp(props, "message")
	if label == "" {
		label = component.StringProp(props, "name")
	}
	return cty.StringVal(label + ": " + value), nil
}
