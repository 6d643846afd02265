package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/apowers313/pupt/internal/ctxlog"
	"github.com/apowers313/pupt/internal/diag"
	"github.com/apowers313/pupt/internal/element"
	"github.com/apowers313/pupt/internal/schema"
)

// renderable is the contract the engine calls on an element's component
// reference. It is declared locally so the walk depends on behavior only,
// never on a concrete catalog type.
type renderable interface {
	Name() string
	Schema() *schema.Schema
	Render(ctx context.Context, rctx *Context, props map[string]cty.Value, resolved cty.Value) (cty.Value, error)
}

// resolvable is the optional resolve step.
type resolvable interface {
	Resolve(ctx context.Context, rctx *Context, props map[string]cty.Value) (cty.Value, error)
}

// scoped is implemented by structural components that introduce a naming
// scope for their subtree.
type scoped interface {
	ScopeName(props map[string]cty.Value) string
}

// nodeState is the per-element evaluation record, memoized by element
// identity so resolve runs exactly once per render pass no matter how many
// siblings reference the element.
type nodeState struct {
	comp      renderable
	props     map[string]cty.Value
	resolved  cty.Value
	valid     bool
	resolving bool
}

// Render evaluates the element tree and produces the final text plus the
// side-channel data collected along the way. It builds a fresh Context for
// this call; nothing persists afterwards except what the caller copies out.
func Render(ctx context.Context, root *element.Element, opts Options) *Result {
	opts = opts.withDefaults()
	rctx := newContext(opts, opts.Catalog)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("render started", "max_depth", opts.MaxDepth, "format", string(opts.Format))

	w := &walker{rctx: rctx, opts: opts}
	rctx.renderValues = func(ctx context.Context, vals []cty.Value, depth int) []string {
		var out []string
		for _, v := range vals {
			out = append(out, w.walkValue(ctx, v, depth)...)
		}
		return out
	}
	segments := w.walkValue(ctx, element.Val(root), 0)

	text := joinSegments(segments)
	if opts.Trim == TrimOuter {
		text = strings.TrimSpace(text)
	}

	res := &Result{
		OK:            !rctx.errors.HasErrors(),
		Text:          text,
		PostExecution: rctx.post,
		Errors:        rctx.errors.Errors(),
	}
	logger.Debug("render finished", "ok", res.OK, "errors", len(res.Errors), "actions", len(res.PostExecution))
	return res
}

// NewContext returns a render context for direct use by tests and embedding
// callers that drive evaluation outside a full Render call.
func NewContext(opts Options) *Context {
	opts = opts.withDefaults()
	return newContext(opts, opts.Catalog)
}

type walker struct {
	rctx *Context
	opts Options
}

// walkValue flattens one node into output segments: nested lists expand in
// place, null/absent values are dropped, elements recurse.
func (w *walker) walkValue(ctx context.Context, v cty.Value, depth int) []string {
	if v == cty.NilVal || v.IsNull() {
		return nil
	}

	if el, ok := element.FromValue(v); ok {
		return w.walkElement(ctx, el, depth)
	}
	if ref, ok := element.DeferredFromValue(v); ok {
		return w.walkValue(ctx, w.resolveDeferred(ctx, ref, depth), depth)
	}

	ty := v.Type()
	if ty.IsTupleType() || ty.IsListType() || ty.IsSetType() {
		var out []string
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			out = append(out, w.walkValue(ctx, ev, depth)...)
		}
		return out
	}

	if s, ok := scalarString(v); ok && s != "" {
		return []string{s}
	}
	return nil
}

// walkElement performs steps 1-5 of the two-phase algorithm for one element
// and recurses into whatever its component rendered.
func (w *walker) walkElement(ctx context.Context, el *element.Element, depth int) []string {
	if depth > w.opts.MaxDepth {
		w.rctx.errors.Append(&diag.Error{
			Code:    diag.CodeDepthExceeded,
			Message: fmt.Sprintf("tree exceeds maximum depth %d", w.opts.MaxDepth),
		})
		return nil
	}

	switch el.Type().Kind() {
	case element.KindText:
		// A text element's children join with no separator.
		var parts []string
		for _, child := range el.Children() {
			parts = append(parts, w.walkValue(ctx, child, depth+1)...)
		}
		if len(parts) == 0 {
			return nil
		}
		return []string{strings.Join(parts, "")}

	case element.KindFragment:
		var out []string
		for _, child := range el.Children() {
			out = append(out, w.walkValue(ctx, child, depth+1)...)
		}
		return out
	}

	st := w.evalElement(ctx, el, depth)
	if st.comp == nil || !st.valid {
		return w.walkFallback(ctx, el, depth)
	}

	run := func() []string {
		prevDepth := w.rctx.depth
		w.rctx.depth = depth
		node, err := w.safeRender(ctx, st)
		w.rctx.depth = prevDepth
		if err != nil {
			w.rctx.errors.Append(&diag.Error{
				Component: st.comp.Name(),
				Code:      diag.CodeRuntime,
				Message:   err.Error(),
			})
			return w.walkFallback(ctx, el, depth)
		}
		return w.walkValue(ctx, node, depth+1)
	}

	// A scope introduced by this component covers both its render step and
	// the walk of whatever it rendered.
	if sc, ok := st.comp.(scoped); ok {
		if name := sc.ScopeName(st.props); name != "" {
			var out []string
			w.rctx.withScope(&Scope{Name: name, Parent: w.rctx.scope}, func() {
				out = run()
			})
			return out
		}
	}
	return run()
}

// joinSegments concatenates flattened output segments into final text.
func joinSegments(segs []string) string {
	return strings.Join(segs, "\n")
}

// walkFallback renders only the element's already-materialized children, so
// one malformed component does not blank out the rest of the document.
func (w *walker) walkFallback(ctx context.Context, el *element.Element, depth int) []string {
	var out []string
	for _, child := range el.Children() {
		out = append(out, w.walkValue(ctx, child, depth+1)...)
	}
	return out
}

// evalElement materializes props, validates them, and runs the component's
// resolve step. The result is memoized by element identity for the duration
// of the render pass.
func (w *walker) evalElement(ctx context.Context, el *element.Element, depth int) *nodeState {
	if st, ok := w.rctx.memo[el.ID()]; ok {
		if st.resolving {
			w.rctx.errors.Append(&diag.Error{
				Component: componentName(el),
				Code:      diag.CodeRuntime,
				Message:   "circular reference between elements",
			})
			return &nodeState{resolved: undefined()}
		}
		return st
	}

	st := &nodeState{resolving: true, resolved: undefined()}
	w.rctx.memo[el.ID()] = st
	defer func() { st.resolving = false }()

	comp, ok := el.Type().Component().(renderable)
	if !ok {
		w.rctx.errors.Append(&diag.Error{
			Code:    diag.CodeRuntime,
			Message: "element type does not implement the component protocol",
		})
		return st
	}
	st.comp = comp
	logger := ctxlog.FromContext(ctx).With("component", comp.Name())

	// Step 1: prop materialization. Deferred refs and element-valued props
	// become concrete before validation; the child list is attached raw so
	// the walk, not materialization, renders it.
	props := make(map[string]cty.Value, len(el.Props())+1)
	for k, v := range el.Props() {
		props[k] = w.materializeValue(ctx, v, depth)
	}
	if len(el.Children()) > 0 {
		props[element.ChildrenProp] = cty.TupleVal(el.Children())
	}

	// Step 2: validation.
	sch := comp.Schema()
	if sch == nil {
		if w.opts.Strict {
			w.rctx.errors.Append(&diag.Error{
				Component: comp.Name(),
				Code:      diag.CodeMissingSchema,
				Message:   "component declares no schema but strict validation was requested",
			})
			st.props = props
			return st
		}
	} else {
		normalized, errs := sch.Validate(comp.Name(), props)
		if len(errs) > 0 {
			logger.Debug("prop validation failed", "errors", len(errs))
			w.rctx.errors.Append(errs...)
			st.props = props
			return st
		}
		props = normalized
	}
	st.props = props
	st.valid = true

	// Step 3: resolve, with defaults seeded inside the component's own
	// resolve call before the walk advances.
	if res, ok := comp.(resolvable); ok {
		resolved, err := w.safeResolve(ctx, res, props)
		if err != nil {
			logger.Debug("resolve failed", "error", err)
			w.rctx.errors.Append(&diag.Error{
				Component: comp.Name(),
				Code:      diag.CodeRuntime,
				Message:   err.Error(),
			})
			st.valid = false
			return st
		}
		if resolved != cty.NilVal {
			st.resolved = resolved
		}
	}
	return st
}

// resolveDeferred materializes a deferred reference: the referenced
// element's resolved value, indexed by the path. A missing intermediate
// step yields the undefined value rather than an error.
func (w *walker) resolveDeferred(ctx context.Context, ref *element.DeferredRef, depth int) cty.Value {
	if ref.Element == nil {
		return undefined()
	}
	st := w.evalElement(ctx, ref.Element, depth+1)
	return applyPath(st.resolved, ref.Path)
}

func applyPath(v cty.Value, path cty.Path) cty.Value {
	if len(path) == 0 {
		return v
	}
	if v == cty.NilVal || v.IsNull() {
		return undefined()
	}
	out, err := path.Apply(v)
	if err != nil {
		return undefined()
	}
	return out
}

func (w *walker) safeResolve(ctx context.Context, res resolvable, props map[string]cty.Value) (v cty.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in resolve: %v", r)
		}
	}()
	return res.Resolve(ctx, w.rctx, props)
}

func (w *walker) safeRender(ctx context.Context, st *nodeState) (v cty.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in render: %v", r)
		}
	}()
	return st.comp.Render(ctx, w.rctx, st.props, st.resolved)
}

// undefined is the value deferred references and absent resolves produce.
func undefined() cty.Value {
	return cty.NullVal(cty.DynamicPseudoType)
}

func componentName(el *element.Element) string {
	if comp, ok := el.Type().Component().(renderable); ok {
		return comp.Name()
	}
	return ""
}

// scalarString converts a primitive node to its textual form. Collections
// and capsules report false.
func scalarString(v cty.Value) (string, bool) {
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return "", false
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), true
	case ty == cty.Number, ty == cty.Bool:
		s, err := convert.Convert(v, cty.String)
		if err != nil {
			return "", false
		}
		return s.AsString(), true
	}
	return "", false
}
