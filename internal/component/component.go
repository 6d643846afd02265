// Package component defines the protocol every renderable component
// implements and the catalog that maps type names to implementations.
//
// A component is a capability set, not a class hierarchy: the engine only
// ever calls Schema, Resolve (when implemented) and Render, so new kinds of
// component can be added without engine changes. Side effects during
// resolve/render are limited to the render context's answer store, error
// collector and post-execution list; a component must never mutate its own
// props or a sibling's element.
package component

import (
	"context"

	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/identity"
	"github.com/apowers313/pupt/internal/render"
	"github.com/apowers313/pupt/internal/schema"
)

// Component is the contract the engine renders against.
type Component interface {
	// Name is the catalog identifier, also used in error reports.
	Name() string

	// Schema declares the expected prop shape, or nil for none.
	Schema() *schema.Schema

	// Render produces the component's node from its validated props and
	// the value its resolve step produced (null when it has none).
	Render(ctx context.Context, rctx *render.Context, props map[string]cty.Value, resolved cty.Value) (cty.Value, error)
}

// Resolver is the optional resolve step, run before Render and memoized by
// element identity for the duration of one render pass. Interactive
// components seed their default answer here, before the walk advances.
type Resolver interface {
	Resolve(ctx context.Context, rctx *render.Context, props map[string]cty.Value) (cty.Value, error)
}

// Scoper is implemented by structural components that introduce a naming
// scope for their subtree. An empty name introduces none.
type Scoper interface {
	ScopeName(props map[string]cty.Value) string
}

// Metadata is the discovery-facing description of a component: extracted by
// search and listing layers without performing a render.
type Metadata struct {
	Description string
	Tags        []string
}

// Describer exposes Metadata for discovery tooling.
type Describer interface {
	Describe() Metadata
}

// Base provides the cross-instance identity marker. Embed it in every
// component implementation.
type Base struct{}

// PuptKind implements identity.Kinder.
func (Base) PuptKind() string { return identity.KindComponent }

// IsComponent reports whether v is a component implementation, including
// one registered by a different loaded copy of this library.
func IsComponent(v any) bool {
	return identity.HasKind(v, identity.KindComponent)
}
