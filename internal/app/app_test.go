package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/element"
	"github.com/apowers313/pupt/internal/render"
	"github.com/apowers313/pupt/internal/testutil"
)

func TestApp_CoreComponentsRegistered(t *testing.T) {
	a, _ := testutil.NewApp(t)
	names := a.Catalog().Names()
	for _, want := range []string{
		"Confirm", "File", "If", "Input", "OpenFile",
		"Prompt", "Rating", "RunCommand", "Section", "Select",
	} {
		assert.Contains(t, names, want)
	}
}

// A conditional later in the document observes the answer a collector
// seeded earlier in the same pass, so only one branch renders.
func TestApp_DocumentOrderSeeding(t *testing.T) {
	c := testutil.NewCatalog(t)

	buildDoc := func() *element.Element {
		return element.Fragment(
			element.Val(testutil.MustElement(t, c, "Confirm", map[string]cty.Value{
				"name":   cty.StringVal("advanced"),
				"silent": cty.True,
			})),
			element.Val(testutil.MustElement(t, c, "If",
				map[string]cty.Value{"formula": cty.StringVal("advanced")},
				element.Val(element.Text("A")),
			)),
			element.Val(testutil.MustElement(t, c, "If",
				map[string]cty.Value{"formula": cty.StringVal("NOT(advanced)")},
				element.Val(element.Text("B")),
			)),
		)
	}

	// The Confirm default is false, so the negated branch renders.
	h := testutil.RenderDoc(t, buildDoc(), render.Options{})
	require.True(t, h.Result.OK)
	assert.Equal(t, "B", h.Result.Text)

	// A caller-supplied answer flips the branch without touching the tree.
	h = testutil.RenderDoc(t, buildDoc(), render.Options{
		Answers: map[string]cty.Value{"advanced": cty.True},
	})
	require.True(t, h.Result.OK)
	assert.Equal(t, "A", h.Result.Text)
}

func TestApp_RenderIsRepeatable(t *testing.T) {
	c := testutil.NewCatalog(t)
	root := testutil.MustElement(t, c, "Prompt",
		map[string]cty.Value{"name": cty.StringVal("doc")},
		element.Val(testutil.MustElement(t, c, "Input", map[string]cty.Value{
			"name":    cty.StringVal("author"),
			"default": cty.StringVal("anonymous"),
		})),
	)

	first := testutil.RenderDoc(t, root, render.Options{})
	second := testutil.RenderDoc(t, root, render.Options{})
	require.True(t, first.Result.OK)
	assert.Equal(t, first.Result.Text, second.Result.Text,
		"seeding must not leak state between renders of the same tree")
}

func TestApp_DebugLogsCaptured(t *testing.T) {
	c := testutil.NewCatalog(t)
	root := testutil.MustElement(t, c, "Section",
		map[string]cty.Value{"title": cty.StringVal("Rules")},
		element.Val(element.Text("body")),
	)

	h := testutil.RenderDoc(t, root, render.Options{})
	require.True(t, h.Result.OK)
	assert.Contains(t, h.LogOutput, "render started")
	assert.Contains(t, h.LogOutput, "render finished")
}
