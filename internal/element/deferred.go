package element

import (
	"reflect"

	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/identity"
)

// DeferredRef is a placeholder prop value meaning "the value at Path inside
// the resolved value of Element". It is never a terminal value: the renderer
// materializes it before the owning component's resolve/render runs, running
// the referenced element's resolve step at most once per render pass.
type DeferredRef struct {
	Element *Element
	Path    cty.Path
}

// PuptKind implements identity.Kinder.
func (r *DeferredRef) PuptKind() string { return identity.KindDeferred }

var deferredCapsuleType = cty.Capsule("deferred-ref", reflect.TypeOf(DeferredRef{}))

// Deferred builds a deferred-reference capsule for the value at path inside
// el's resolved value. An empty path refers to the resolved value itself.
func Deferred(el *Element, path cty.Path) cty.Value {
	return cty.CapsuleVal(deferredCapsuleType, &DeferredRef{Element: el, Path: path})
}

// DeferredAttr is shorthand for a single-attribute path reference.
func DeferredAttr(el *Element, attr string) cty.Value {
	return Deferred(el, cty.GetAttrPath(attr))
}

// DeferredFromValue unwraps a deferred-reference capsule.
func DeferredFromValue(v cty.Value) (*DeferredRef, bool) {
	if v == cty.NilVal || v.IsNull() || !v.Type().IsCapsuleType() {
		return nil, false
	}
	ref, ok := v.EncapsulatedValue().(*DeferredRef)
	return ref, ok
}

// IsDeferredValue reports whether v is a capsule holding a deferred
// reference from any loaded copy of the library.
func IsDeferredValue(v cty.Value) bool {
	if v == cty.NilVal || v.IsNull() || !v.Type().IsCapsuleType() {
		return false
	}
	return identity.HasKind(v.EncapsulatedValue(), identity.KindDeferred)
}
