package render

import (
	"context"

	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/element"
)

// materializeValue turns a prop value concrete: deferred references are
// resolved through their target element, element-valued props are replaced
// by the element's resolved value, and collections are rebuilt around any
// replacement they contain. Plain values pass through untouched.
func (w *walker) materializeValue(ctx context.Context, v cty.Value, depth int) cty.Value {
	out, _ := w.materialize(ctx, v, depth)
	return out
}

func (w *walker) materialize(ctx context.Context, v cty.Value, depth int) (cty.Value, bool) {
	if v == cty.NilVal {
		return undefined(), true
	}
	if ref, ok := element.DeferredFromValue(v); ok {
		return w.resolveDeferred(ctx, ref, depth), true
	}
	if el, ok := element.FromValue(v); ok {
		st := w.evalElement(ctx, el, depth+1)
		return st.resolved, true
	}
	if v.IsNull() || !v.IsKnown() {
		return v, false
	}

	ty := v.Type()
	switch {
	case ty.IsTupleType(), ty.IsListType(), ty.IsSetType():
		var vals []cty.Value
		changed := false
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			mv, ch := w.materialize(ctx, ev, depth)
			changed = changed || ch
			vals = append(vals, mv)
		}
		if !changed {
			return v, false
		}
		if len(vals) == 0 {
			return cty.EmptyTupleVal, true
		}
		// Rebuilt as a tuple: replacements may not share one element type.
		return cty.TupleVal(vals), true

	case ty.IsObjectType(), ty.IsMapType():
		attrs := v.AsValueMap()
		out := make(map[string]cty.Value, len(attrs))
		changed := false
		for k, av := range attrs {
			mv, ch := w.materialize(ctx, av, depth)
			changed = changed || ch
			out[k] = mv
		}
		if !changed {
			return v, false
		}
		if len(out) == 0 {
			return cty.EmptyObjectVal, true
		}
		return cty.ObjectVal(out), true
	}

	return v, false
}
