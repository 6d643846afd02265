package component

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/element"
)

// Module is the interface a package of components implements to be
// registered into a catalog.
type Module interface {
	Register(c *Catalog)
}

// Catalog maps type names to component implementations. Population happens
// at startup; the engine consumes it as a read-only lookup afterwards, and
// only while constructing elements, never during evaluation.
type Catalog struct {
	components map[string]Component
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{components: make(map[string]Component)}
}

// Register adds a component under its declared name. Registering the same
// name twice is a programmer error and panics.
func (c *Catalog) Register(comp Component) {
	name := comp.Name()
	if _, exists := c.components[name]; exists {
		panic(fmt.Sprintf("component with name '%s' already registered", name))
	}
	slog.Debug("Registering component.", "name", name)
	c.components[name] = comp
}

// Component returns the implementation registered under name.
func (c *Catalog) Component(name string) (Component, bool) {
	comp, ok := c.components[name]
	return comp, ok
}

// Lookup implements render.ComponentLookup.
func (c *Catalog) Lookup(name string) (any, bool) {
	comp, ok := c.components[name]
	if !ok {
		return nil, false
	}
	return comp, true
}

// Names returns the registered names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.components))
	for name := range c.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Element constructs an element for the named component, looking its
// implementation up in this catalog.
func (c *Catalog) Element(name string, props map[string]cty.Value, children ...cty.Value) (*element.Element, error) {
	comp, ok := c.components[name]
	if !ok {
		return nil, fmt.Errorf("unknown component %q", name)
	}
	return element.New(element.ComponentType(comp), props, children...), nil
}
