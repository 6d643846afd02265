package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"
)

func TestAnswers_SeedIsWriteOnce(t *testing.T) {
	a := NewAnswers(nil)

	assert.True(t, a.Seed("name", cty.StringVal("first")))
	assert.False(t, a.Seed("name", cty.StringVal("second")))

	v, ok := a.Get("name")
	assert.True(t, ok)
	assert.Equal(t, cty.StringVal("first"), v)
}

func TestAnswers_SetOverwrites(t *testing.T) {
	a := NewAnswers(map[string]cty.Value{"name": cty.StringVal("old")})

	a.Set("name", cty.StringVal("new"))
	v, _ := a.Get("name")
	assert.Equal(t, cty.StringVal("new"), v)
}

func TestAnswers_SeedFromCallerMapIsCopied(t *testing.T) {
	seed := map[string]cty.Value{"a": cty.True}
	ans := NewAnswers(seed)
	ans.Set("b", cty.False)

	assert.Len(t, seed, 1, "the caller's map is never mutated")
	assert.Equal(t, 2, ans.Len())
	assert.Equal(t, []string{"a", "b"}, ans.Names())
}

func TestAnswers_MapReturnsCopy(t *testing.T) {
	ans := NewAnswers(map[string]cty.Value{"a": cty.True})
	m := ans.Map()
	m["b"] = cty.False

	assert.False(t, ans.Has("b"))
}

func TestScope_Path(t *testing.T) {
	var root *Scope
	assert.Equal(t, "", root.Path())

	outer := &Scope{Name: "doc"}
	inner := &Scope{Name: "details", Parent: outer}
	assert.Equal(t, "doc", outer.Path())
	assert.Equal(t, "doc/details", inner.Path())
}
