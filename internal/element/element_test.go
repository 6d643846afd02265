package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/identity"
)

type fakeComponent struct{}

func (fakeComponent) PuptKind() string { return identity.KindComponent }

func TestNew_CopiesInputs(t *testing.T) {
	props := map[string]cty.Value{"title": cty.StringVal("a")}
	children := []cty.Value{cty.StringVal("x")}

	el := New(FragmentType(), props, children...)

	props["title"] = cty.StringVal("mutated")
	children[0] = cty.StringVal("mutated")

	assert.Equal(t, cty.StringVal("a"), el.Prop("title"))
	assert.Equal(t, cty.StringVal("x"), el.Children()[0])
}

func TestNew_FreshIdentity(t *testing.T) {
	a := Text("same")
	b := Text("same")
	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEmpty(t, a.ID())
}

func TestProp_Absent(t *testing.T) {
	el := Fragment()
	assert.Equal(t, cty.NilVal, el.Prop("missing"))
}

func TestTypeMarkers(t *testing.T) {
	assert.Equal(t, KindText, Text("x").Type().Kind())
	assert.Equal(t, KindFragment, Fragment().Type().Kind())

	comp := fakeComponent{}
	ty := ComponentType(comp)
	assert.Equal(t, KindComponent, ty.Kind())
	assert.Equal(t, comp, ty.Component())
}

func TestComponentType_RejectsPlainStruct(t *testing.T) {
	assert.Panics(t, func() {
		ComponentType(struct{ Name string }{Name: "nope"})
	})
}

func TestCapsuleRoundTrip(t *testing.T) {
	el := Text("hello")
	v := Val(el)

	require.True(t, IsElementValue(v))
	got, ok := FromValue(v)
	require.True(t, ok)
	assert.Same(t, el, got)
}

func TestFromValue_NonElement(t *testing.T) {
	_, ok := FromValue(cty.StringVal("not an element"))
	assert.False(t, ok)
	_, ok = FromValue(cty.NilVal)
	assert.False(t, ok)
	assert.False(t, IsElementValue(cty.NumberIntVal(1)))
}

func TestDeferredRoundTrip(t *testing.T) {
	el := Text("target")
	v := DeferredAttr(el, "score")

	require.True(t, IsDeferredValue(v))
	assert.False(t, IsElementValue(v))

	ref, ok := DeferredFromValue(v)
	require.True(t, ok)
	assert.Same(t, el, ref.Element)
	require.Len(t, ref.Path, 1)
	assert.Equal(t, cty.GetAttrStep{Name: "score"}, ref.Path[0])
}

func TestDeferred_EmptyPath(t *testing.T) {
	el := Text("target")
	ref, ok := DeferredFromValue(Deferred(el, nil))
	require.True(t, ok)
	assert.Empty(t, ref.Path)
}

// crossCopyElement stands in for an element built by a second loaded copy of
// the library: same kind key, different concrete type.
type crossCopyElement struct{}

func (crossCopyElement) PuptKind() string { return identity.KindElement }

func TestIdentity_CrossCopy(t *testing.T) {
	assert.True(t, IsElement(crossCopyElement{}))
	assert.True(t, identity.HasKind(crossCopyElement{}, identity.KindElement))
	assert.False(t, identity.HasKind(crossCopyElement{}, identity.KindComponent))

	assert.Equal(t, identity.KindElement, identity.KindOf(crossCopyElement{}))
	assert.Equal(t, "", identity.KindOf(struct{}{}))
}
