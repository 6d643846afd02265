package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/components/action"
	"github.com/apowers313/pupt/internal/element"
	"github.com/apowers313/pupt/internal/render"
	"github.com/apowers313/pupt/internal/testutil"
)

func TestOpenFile_QueuesAction(t *testing.T) {
	c := testutil.NewCatalog(t)
	root := element.Fragment(
		element.Val(element.Text("body")),
		element.Val(testutil.MustElement(t, c, "OpenFile", map[string]cty.Value{
			"path": cty.StringVal("notes.md"),
			"line": cty.NumberIntVal(12),
		})),
	)

	h := testutil.RenderDoc(t, root, render.Options{})
	require.True(t, h.Result.OK)
	assert.Equal(t, "body", h.Result.Text, "action components contribute no text")

	require.Len(t, h.Result.PostExecution, 1)
	a := h.Result.PostExecution[0]
	assert.Equal(t, action.KindOpenFile, a.Kind)
	assert.Equal(t, "OpenFile", a.Source)
	assert.Equal(t, cty.StringVal("notes.md"), a.Payload.GetAttr("path"))
	assert.True(t, cty.NumberIntVal(12).RawEquals(a.Payload.GetAttr("line")))
}

func TestRunCommand_QueuesActionsInDocumentOrder(t *testing.T) {
	c := testutil.NewCatalog(t)
	root := element.Fragment(
		element.Val(testutil.MustElement(t, c, "RunCommand", map[string]cty.Value{
			"command": cty.StringVal("go vet ./..."),
		})),
		element.Val(testutil.MustElement(t, c, "RunCommand", map[string]cty.Value{
			"command": cty.StringVal("go test ./..."),
			"cwd":     cty.StringVal("/srv/app"),
		})),
	)

	h := testutil.RenderDoc(t, root, render.Options{})
	require.True(t, h.Result.OK)
	require.Len(t, h.Result.PostExecution, 2)
	assert.Equal(t, cty.StringVal("go vet ./..."), h.Result.PostExecution[0].Payload.GetAttr("command"))
	assert.Equal(t, cty.StringVal("/srv/app"), h.Result.PostExecution[1].Payload.GetAttr("cwd"))
	assert.Equal(t, action.KindRunCommand, h.Result.PostExecution[1].Kind)
}

func TestOpenFile_PathRequired(t *testing.T) {
	c := testutil.NewCatalog(t)
	root := testutil.MustElement(t, c, "OpenFile", nil)

	h := testutil.RenderDoc(t, root, render.Options{})
	assert.False(t, h.Result.OK)
	assert.Empty(t, h.Result.PostExecution)
}
