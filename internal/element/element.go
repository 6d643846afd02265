// Package element defines the immutable tree the engine renders: typed
// nodes carrying a prop bag and an ordered child list. Node values are
// cty.Value throughout; Elements and deferred references travel inside prop
// bags and child lists as capsule values.
package element

import (
	"reflect"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/identity"
)

// ChildrenProp is the reserved prop name under which the renderer exposes
// an element's child list to its component.
const ChildrenProp = "children"

// TypeKind discriminates the three element type markers.
type TypeKind int

const (
	// KindText marks a primitive text element; its children are the text.
	KindText TypeKind = iota
	// KindFragment marks a grouping element that contributes no output of
	// its own.
	KindFragment
	// KindComponent marks an element whose type is a component reference.
	KindComponent
)

// Type identifies what an Element is: a primitive text marker, a fragment
// marker, or a reference to a component implementation. The component slot
// is deliberately untyped so a Type built by another loaded copy of the
// library still round-trips; consumers check it with identity.HasKind.
type Type struct {
	kind      TypeKind
	component any
}

// TextType returns the primitive text marker.
func TextType() Type { return Type{kind: KindText} }

// FragmentType returns the fragment marker.
func FragmentType() Type { return Type{kind: KindFragment} }

// ComponentType returns a component-reference type. It panics if the value
// does not carry the component kind key, which catches plain structs being
// passed where a registered component belongs.
func ComponentType(c any) Type {
	if !identity.HasKind(c, identity.KindComponent) {
		panic("element: ComponentType requires a value carrying the component kind key")
	}
	return Type{kind: KindComponent, component: c}
}

// Kind returns the discriminator.
func (t Type) Kind() TypeKind { return t.kind }

// Component returns the component reference for KindComponent types, nil
// otherwise.
func (t Type) Component() any { return t.component }

// Element is one immutable tree node. Construct with New; the props map and
// children slice are copied on construction and must not be mutated through
// the accessors afterwards.
type Element struct {
	id       string
	typ      Type
	props    map[string]cty.Value
	children []cty.Value
}

// New constructs an Element. The instance is assigned a fresh identity used
// for per-render memoization; two elements built from identical inputs are
// still distinct.
func New(typ Type, props map[string]cty.Value, children ...cty.Value) *Element {
	copied := make(map[string]cty.Value, len(props))
	for k, v := range props {
		copied[k] = v
	}
	childCopy := make([]cty.Value, len(children))
	copy(childCopy, children)
	return &Element{
		id:       uuid.NewString(),
		typ:      typ,
		props:    copied,
		children: childCopy,
	}
}

// Text constructs a primitive text element.
func Text(text string) *Element {
	return New(TextType(), nil, cty.StringVal(text))
}

// Fragment constructs a grouping element around the given children.
func Fragment(children ...cty.Value) *Element {
	return New(FragmentType(), nil, children...)
}

// ID returns the element's render-stable instance identity.
func (e *Element) ID() string { return e.id }

// Type returns the element's type marker.
func (e *Element) Type() Type { return e.typ }

// Props returns the prop bag. Callers must treat it as read-only.
func (e *Element) Props() map[string]cty.Value { return e.props }

// Prop returns a single prop value, or cty.NilVal when absent.
func (e *Element) Prop(name string) cty.Value {
	v, ok := e.props[name]
	if !ok {
		return cty.NilVal
	}
	return v
}

// Children returns the ordered child list. Callers must treat it as
// read-only.
func (e *Element) Children() []cty.Value { return e.children }

// PuptKind implements identity.Kinder.
func (e *Element) PuptKind() string { return identity.KindElement }

// IsElement reports whether v is an Element, including one constructed by a
// different loaded copy of this library.
func IsElement(v any) bool {
	return identity.HasKind(v, identity.KindElement)
}

// capsuleType wraps *Element so elements can appear as cty values inside
// prop bags and child lists.
var capsuleType = cty.Capsule("element", reflect.TypeOf(Element{}))

// Val wraps an element as a cty capsule value.
func Val(e *Element) cty.Value {
	return cty.CapsuleVal(capsuleType, e)
}

// FromValue unwraps an element capsule. The second result is false when v is
// not an element capsule. Capsules minted by another loaded copy of the
// library are recognized through their kind key rather than the capsule
// type, but can only be unwrapped when their concrete type matches ours.
func FromValue(v cty.Value) (*Element, bool) {
	if v == cty.NilVal || v.IsNull() || !v.Type().IsCapsuleType() {
		return nil, false
	}
	enc := v.EncapsulatedValue()
	if el, ok := enc.(*Element); ok {
		return el, true
	}
	return nil, false
}

// IsElementValue reports whether v is a capsule holding an element from any
// loaded copy of the library.
func IsElementValue(v cty.Value) bool {
	if v == cty.NilVal || v.IsNull() || !v.Type().IsCapsuleType() {
		return false
	}
	return identity.HasKind(v.EncapsulatedValue(), identity.KindElement)
}
