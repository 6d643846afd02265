package render

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Answers is the render-scoped store of collected and derived input values.
// Interactive components write to it during their resolve step; formula
// evaluation and deferred references read from it. Defaults are seeded
// write-once-if-absent so a value supplied by the caller always wins over a
// component's default.
type Answers struct {
	m map[string]cty.Value
}

// NewAnswers builds an answer store pre-seeded from the given map. The map
// is copied; the caller's map is never mutated.
func NewAnswers(seed map[string]cty.Value) *Answers {
	m := make(map[string]cty.Value, len(seed))
	for k, v := range seed {
		m[k] = v
	}
	return &Answers{m: m}
}

// Get returns the value recorded under name.
func (a *Answers) Get(name string) (cty.Value, bool) {
	v, ok := a.m[name]
	return v, ok
}

// Has reports whether an entry exists under name.
func (a *Answers) Has(name string) bool {
	_, ok := a.m[name]
	return ok
}

// Set records a collected answer, replacing any existing entry.
func (a *Answers) Set(name string, v cty.Value) {
	a.m[name] = v
}

// Seed records v under name only when no entry exists yet. It reports
// whether the write happened. An existing entry is never overwritten.
func (a *Answers) Seed(name string, v cty.Value) bool {
	if _, ok := a.m[name]; ok {
		return false
	}
	a.m[name] = v
	return true
}

// Names returns the recorded names in sorted order.
func (a *Answers) Names() []string {
	names := make([]string, 0, len(a.m))
	for k := range a.m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of recorded entries.
func (a *Answers) Len() int {
	return len(a.m)
}

// Map returns a copy of the underlying map, for callers that want to carry
// collected answers forward into a later render.
func (a *Answers) Map() map[string]cty.Value {
	out := make(map[string]cty.Value, len(a.m))
	for k, v := range a.m {
		out[k] = v
	}
	return out
}
