// Package action provides components that emit post-execution actions:
// requests carried out by external tooling after the rendered text has been
// delivered, such as opening a file or running a command.
package action

import (
	"context"

	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/component"
	"github.com/apowers313/pupt/internal/render"
	"github.com/apowers313/pupt/internal/schema"
)

// Action kinds emitted by this package.
const (
	KindOpenFile   = "open-file"
	KindRunCommand = "run-command"
)

// Module implements component.Module for this package.
type Module struct{}

// Register registers both action emitters.
func (m *Module) Register(c *component.Catalog) {
	c.Register(&OpenFile{})
	c.Register(&RunCommand{})
}

// OpenFile queues an open-file action. It contributes no rendered text.
type OpenFile struct {
	component.Base
}

func (o *OpenFile) Name() string { return "OpenFile" }

func (o *OpenFile) Schema() *schema.Schema {
	return schema.Object(map[string]*schema.Attribute{
		"path": {Type: cty.String, Required: true, Description: "File the consumer should open."},
		"line": {Type: cty.Number, Description: "Line to position the cursor at."},
	})
}

func (o *OpenFile) Describe() component.Metadata {
	return component.Metadata{Description: "Queues opening a file after delivery.", Tags: []string{"post-execution"}}
}

func (o *OpenFile) Render(ctx context.Context, rctx *render.Context, props map[string]cty.Value, _ cty.Value) (cty.Value, error) {
	payload := map[string]cty.Value{
		"path": cty.StringVal(component.StringProp(props, "path")),
	}
	if line := component.IntProp(props, "line", 0); line > 0 {
		payload["line"] = cty.NumberIntVal(int64(line))
	}
	rctx.AppendAction(render.Action{
		Kind:    KindOpenFile,
		Payload: cty.ObjectVal(payload),
		Source:  o.Name(),
	})
	return cty.NullVal(cty.DynamicPseudoType), nil
}

// RunCommand queues a run-command action. It contributes no rendered text.
type RunCommand struct {
	component.Base
}

func (r *RunCommand) Name() string { return "RunCommand" }

func (r *RunCommand) Schema() *schema.Schema {
	return schema.Object(map[string]*schema.Attribute{
		"command": {Type: cty.String, Required: true, Description: "Command line the consumer should run."},
		"cwd":     {Type: cty.String, Description: "Working directory for the command."},
	})
}

func (r *RunCommand) Describe() component.Metadata {
	return component.Metadata{Description: "Queues running a command after delivery.", Tags: []string{"post-execution"}}
}

func (r *RunCommand) Render(ctx context.Context, rctx *render.Context, props map[string]cty.Value, _ cty.Value) (cty.Value, error) {
	payload := map[string]cty.Value{
		"command": cty.StringVal(component.StringProp(props, "command")),
	}
	if cwd := component.StringProp(props, "cwd"); cwd != "" {
		payload["cwd"] = cty.StringVal(cwd)
	}
	rctx.AppendAction(render.Action{
		Kind:    KindRunCommand,
		Payload: cty.ObjectVal(payload),
		Source:  r.Name(),
	})
	return cty.NullVal(cty.DynamicPseudoType), nil
}
