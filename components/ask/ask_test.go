package ask_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/render"
	"github.com/apowers313/pupt/internal/testutil"
)

func TestInput_SeedsDefault(t *testing.T) {
	c := testutil.NewCatalog(t)
	root := testutil.MustElement(t, c, "Input", map[string]cty.Value{
		"name":    cty.StringVal("author"),
		"message": cty.StringVal("Who wrote this?"),
		"default": cty.StringVal("anonymous"),
	})

	h := testutil.RenderDoc(t, root, render.Options{})
	require.True(t, h.Result.OK)
	assert.Equal(t, "Who wrote this?: anonymous", h.Result.Text)
}

func TestInput_ExistingAnswerWins(t *testing.T) {
	c := testutil.NewCatalog(t)
	root := testutil.MustElement(t, c, "Input", map[string]cty.Value{
		"name":    cty.StringVal("author"),
		"default": cty.StringVal("anonymous"),
	})

	h := testutil.RenderDoc(t, root, render.Options{
		Answers: map[string]cty.Value{"author": cty.StringVal("ada")},
	})
	require.True(t, h.Result.OK)
	assert.Equal(t, "author: ada", h.Result.Text)
}

func TestInput_AskerCollects(t *testing.T) {
	c := testutil.NewCatalog(t)
	root := testutil.MustElement(t, c, "Input", map[string]cty.Value{
		"name": cty.StringVal("author"),
	})

	var asked render.Question
	h := testutil.RenderDoc(t, root, render.Options{
		Asker: func(_ context.Context, q render.Question) (cty.Value, bool, error) {
			asked = q
			return cty.StringVal("grace"), true, nil
		},
	})
	require.True(t, h.Result.OK)
	assert.Equal(t, "author: grace", h.Result.Text)
	assert.Equal(t, "input", asked.Kind)
	assert.Equal(t, "author", asked.Name)
}

func TestInput_AskerSkipFallsBackToDefault(t *testing.T) {
	c := testutil.NewCatalog(t)
	root := testutil.MustElement(t, c, "Input", map[string]cty.Value{
		"name":    cty.StringVal("author"),
		"default": cty.StringVal("anonymous"),
	})

	h := testutil.RenderDoc(t, root, render.Options{
		Asker: func(context.Context, render.Question) (cty.Value, bool, error) {
			return cty.NilVal, false, nil
		},
	})
	require.True(t, h.Result.OK)
	assert.Equal(t, "author: anonymous", h.Result.Text)
}

func TestInput_AskerErrorIsContained(t *testing.T) {
	c := testutil.NewCatalog(t)
	root := testutil.MustElement(t, c, "Input", map[string]cty.Value{
		"name": cty.StringVal("author"),
	})

	h := testutil.RenderDoc(t, root, render.Options{
		Asker: func(context.Context, render.Question) (cty.Value, bool, error) {
			return cty.NilVal, false, errors.New("terminal closed")
		},
	})
	assert.False(t, h.Result.OK)
	require.Len(t, h.Result.Errors, 1)
	assert.Contains(t, h.Result.Errors[0].Message, "terminal closed")
}

func TestInput_Silent(t *testing.T) {
	c := testutil.NewCatalog(t)
	root := testutil.MustElement(t, c, "Input", map[string]cty.Value{
		"name":   cty.StringVal("author"),
		"silent": cty.True,
	})

	h := testutil.RenderDoc(t, root, render.Options{})
	require.True(t, h.Result.OK)
	assert.Equal(t, "", h.Result.Text)
}

func TestInput_MissingNameFails(t *testing.T) {
	c := testutil.NewCatalog(t)
	root := testutil.MustElement(t, c, "Input", nil)

	h := testutil.RenderDoc(t, root, render.Options{})
	assert.False(t, h.Result.OK)
	require.Len(t, h.Result.Errors, 1)
	assert.Equal(t, "name", h.Result.Errors[0].Prop)
}

func TestConfirm_Defaults(t *testing.T) {
	c := testutil.NewCatalog(t)

	root := testutil.MustElement(t, c, "Confirm", map[string]cty.Value{
		"name": cty.StringVal("proceed"),
	})
	h := testutil.RenderDoc(t, root, render.Options{})
	require.True(t, h.Result.OK)
	assert.Equal(t, "proceed: no", h.Result.Text)

	root = testutil.MustElement(t, c, "Confirm", map[string]cty.Value{
		"name":    cty.StringVal("proceed"),
		"default": cty.True,
	})
	h = testutil.RenderDoc(t, root, render.Options{})
	assert.Equal(t, "proceed: yes", h.Result.Text)
}

func TestSelect_DefaultIsFirstOption(t *testing.T) {
	c := testutil.NewCatalog(t)
	root := testutil.MustElement(t, c, "Select", map[string]cty.Value{
		"name":    cty.StringVal("tone"),
		"options": cty.TupleVal([]cty.Value{cty.StringVal("formal"), cty.StringVal("casual")}),
	})

	h := testutil.RenderDoc(t, root, render.Options{})
	require.True(t, h.Result.OK)
	assert.Equal(t, "tone: formal", h.Result.Text)
}

func TestSelect_ExplicitDefault(t *testing.T) {
	c := testutil.NewCatalog(t)
	root := testutil.MustElement(t, c, "Select", map[string]cty.Value{
		"name":    cty.StringVal("tone"),
		"options": cty.TupleVal([]cty.Value{cty.StringVal("formal"), cty.StringVal("casual")}),
		"default": cty.StringVal("casual"),
	})

	h := testutil.RenderDoc(t, root, render.Options{})
	require.True(t, h.Result.OK)
	assert.Equal(t, "tone: casual", h.Result.Text)
}

func TestSelect_OptionsRequired(t *testing.T) {
	c := testutil.NewCatalog(t)
	root := testutil.MustElement(t, c, "Select", map[string]cty.Value{
		"name": cty.StringVal("tone"),
	})

	h := testutil.RenderDoc(t, root, render.Options{})
	assert.False(t, h.Result.OK)
	require.Len(t, h.Result.Errors, 1)
	assert.Equal(t, "options", h.Result.Errors[0].Prop)
}

func TestRating_SeedsStructuredAnswer(t *testing.T) {
	c := testutil.NewCatalog(t)
	root := testutil.MustElement(t, c, "Rating", map[string]cty.Value{
		"name":    cty.StringVal("quality"),
		"default": cty.NumberIntVal(4),
	})

	h := testutil.RenderDoc(t, root, render.Options{})
	require.True(t, h.Result.OK)
	assert.Equal(t, "quality: 4/5", h.Result.Text)
}

func TestRating_AnswerWithComment(t *testing.T) {
	c := testutil.NewCatalog(t)
	root := testutil.MustElement(t, c, "Rating", map[string]cty.Value{
		"name": cty.StringVal("quality"),
		"max":  cty.NumberIntVal(10),
	})

	h := testutil.RenderDoc(t, root, render.Options{
		Answers: map[string]cty.Value{
			"quality": cty.ObjectVal(map[string]cty.Value{
				"score":   cty.NumberIntVal(9),
				"max":     cty.NumberIntVal(10),
				"comment": cty.StringVal("solid"),
			}),
		},
	})
	require.True(t, h.Result.OK)
	assert.Equal(t, "quality: 9/10 (solid)", h.Result.Text)
}
