package component

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/element"
	"github.com/apowers313/pupt/internal/render"
	"github.com/apowers313/pupt/internal/schema"
)

type stubComp struct {
	Base
	name string
}

func (s *stubComp) Name() string           { return s.name }
func (s *stubComp) Schema() *schema.Schema { return nil }

func (s *stubComp) Render(context.Context, *render.Context, map[string]cty.Value, cty.Value) (cty.Value, error) {
	return cty.NilVal, nil
}

func TestCatalog_RegisterAndLookup(t *testing.T) {
	c := NewCatalog()
	c.Register(&stubComp{name: "a"})
	c.Register(&stubComp{name: "b"})

	comp, ok := c.Component("a")
	require.True(t, ok)
	assert.Equal(t, "a", comp.Name())

	_, ok = c.Component("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b"}, c.Names())
}

func TestCatalog_RegisterDuplicatePanics(t *testing.T) {
	c := NewCatalog()
	c.Register(&stubComp{name: "dup"})
	assert.PanicsWithValue(t, "component with name 'dup' already registered", func() {
		c.Register(&stubComp{name: "dup"})
	})
}

func TestCatalog_LookupIsComponentLookup(t *testing.T) {
	c := NewCatalog()
	c.Register(&stubComp{name: "a"})

	var lookup render.ComponentLookup = c
	got, ok := lookup.Lookup("a")
	require.True(t, ok)
	assert.True(t, IsComponent(got))
}

func TestCatalog_Element(t *testing.T) {
	c := NewCatalog()
	c.Register(&stubComp{name: "a"})

	el, err := c.Element("a", map[string]cty.Value{"x": cty.True}, element.Val(element.Text("child")))
	require.NoError(t, err)
	assert.Equal(t, element.KindComponent, el.Type().Kind())
	assert.Equal(t, cty.True, el.Prop("x"))
	assert.Len(t, el.Children(), 1)

	_, err = c.Element("missing", nil)
	require.Error(t, err)
}

func TestProps_Helpers(t *testing.T) {
	props := map[string]cty.Value{
		"s":        cty.StringVal("text"),
		"b":        cty.True,
		"n":        cty.NumberIntVal(9),
		"list":     cty.TupleVal([]cty.Value{cty.StringVal("x"), cty.StringVal("y")}),
		"children": cty.TupleVal([]cty.Value{cty.StringVal("c1"), cty.StringVal("c2")}),
	}

	assert.Equal(t, "text", StringProp(props, "s"))
	assert.Equal(t, "", StringProp(props, "missing"))
	assert.True(t, BoolProp(props, "b", false))
	assert.True(t, BoolProp(props, "missing", true))
	assert.Equal(t, 9, IntProp(props, "n", 0))
	assert.Equal(t, 4, IntProp(props, "missing", 4))
	assert.Len(t, ListProp(props, "list"), 2)
	assert.Nil(t, ListProp(props, "s"))
	assert.Len(t, Children(props), 2)
	assert.Nil(t, Children(map[string]cty.Value{}))
	assert.True(t, Prop(props, "missing").IsNull())
}
