// Package testutil provides the shared harness for engine tests: a catalog
// with the core components registered and a render helper that captures
// debug logs.
package testutil

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/app"
	"github.com/apowers313/pupt/internal/component"
	"github.com/apowers313/pupt/internal/element"
	"github.com/apowers313/pupt/internal/render"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements io.Writer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements fmt.Stringer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcome of one harness render.
type HarnessResult struct {
	Result    *render.Result
	LogOutput string
	App       *app.App
}

// NewApp builds an app with debug logging captured into the returned
// buffer, registering any extra modules on top of the core set.
func NewApp(t *testing.T, modules ...component.Module) (*app.App, *SafeBuffer) {
	t.Helper()
	buf := &SafeBuffer{}
	a := app.New(buf, &app.Config{LogLevel: "debug", LogFormat: "text"}, modules...)
	return a, buf
}

// NewCatalog builds a catalog with the core components plus any extras.
func NewCatalog(t *testing.T, modules ...component.Module) *component.Catalog {
	t.Helper()
	a, _ := NewApp(t, modules...)
	return a.Catalog()
}

// RenderDoc renders root with a debug-logging app and returns the result
// alongside the captured log output.
func RenderDoc(t *testing.T, root *element.Element, opts render.Options, modules ...component.Module) *HarnessResult {
	t.Helper()
	a, buf := NewApp(t, modules...)
	res := a.RenderDocument(context.Background(), root, opts)
	return &HarnessResult{Result: res, LogOutput: buf.String(), App: a}
}

// MustElement builds an element for a named component out of the catalog,
// failing the test on an unknown name.
func MustElement(t *testing.T, c *component.Catalog, name string, props map[string]cty.Value, children ...cty.Value) *element.Element {
	t.Helper()
	el, err := c.Element(name, props, children...)
	if err != nil {
		t.Fatalf("building element %q: %v", name, err)
	}
	return el
}
