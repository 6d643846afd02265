// Package file provides the File data component: it embeds file contents
// into the rendered document. The read is a side-effect-free local read
// performed by the component; the engine itself does no I/O.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/component"
	"github.com/apowers313/pupt/internal/ctxlog"
	"github.com/apowers313/pupt/internal/fsutil"
	"github.com/apowers313/pupt/internal/render"
	"github.com/apowers313/pupt/internal/schema"
)

// Module implements component.Module for this package.
type Module struct{}

// Register registers the File component.
func (m *Module) Register(c *component.Catalog) {
	c.Register(&File{})
}

// File embeds the contents of one file, or of every matching file under a
// directory, as fenced code blocks.
type File struct {
	component.Base
}

func (f *File) Name() string { return "File" }

func (f *File) Schema() *schema.Schema {
	return schema.Object(map[string]*schema.Attribute{
		"path":     {Type: cty.String, Required: true, Description: "File to embed, or a directory when ext is set."},
		"ext":      {Type: cty.String, Description: "When path is a directory, embed every file with this extension."},
		"lang":     {Type: cty.String, Description: "Language tag for the code fence."},
		"optional": {Type: cty.Bool, Description: "Render nothing instead of failing when the path does not exist."},
	})
}

func (f *File) Describe() component.Metadata {
	return component.Metadata{Description: "Embeds file contents as fenced code blocks.", Tags: []string{"data"}}
}

func (f *File) Render(ctx context.Context, rctx *render.Context, props map[string]cty.Value, _ cty.Value) (cty.Value, error) {
	path := component.StringProp(props, "path")
	optional := component.BoolProp(props, "optional", false)
	logger := ctxlog.FromContext(ctx).With("path", path)

	info, err := os.Stat(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			logger.Debug("optional file missing, rendering nothing")
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
		return cty.NilVal, fmt.Errorf("embedding %q: %w", path, err)
	}

	paths := []string{path}
	if info.IsDir() {
		paths, err = fsutil.FindFilesByExtension(path, component.StringProp(props, "ext"))
		if err != nil {
			return cty.NilVal, fmt.Errorf("embedding directory %q: %w", path, err)
		}
		if len(paths) == 0 {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
	}

	lang := component.StringProp(props, "lang")
	blocks := make([]cty.Value, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return cty.NilVal, fmt.Errorf("embedding %q: %w", p, err)
		}
		blocks = append(blocks, cty.StringVal(fence(p, string(data), lang, info.IsDir())))
	}
	logger.Debug("embedded files", "count", len(blocks))
	return cty.TupleVal(blocks), nil
}

// fence wraps contents in a markdown code fence; directory embeds get a
// header line naming each file.
func fence(path, contents, lang string, named bool) string {
	if lang == "" {
		lang = langFromExt(path)
	}
	contents = strings.TrimRight(contents, "\n")
	var sb strings.Builder
	if named {
		sb.WriteString(path + ":\n")
	}
	sb.WriteString("```" + lang + "\n")
	sb.WriteString(contents)
	sb.WriteString("\n```")
	return sb.String()
}

func langFromExt(path string) string {
	switch filepath.Ext(path) {
	case ".go":
		return "go"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".md":
		return "markdown"
	case ".sh":
		return "bash"
	}
	return ""
}
