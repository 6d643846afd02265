package render

import (
	"context"

	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/diag"
)

// ComponentLookup is the capability the engine consumes from the component
// catalog: a name-to-implementation lookup. It is used only while
// constructing elements (for example by the wire codec), never during
// evaluation; elements already hold direct component references.
type ComponentLookup interface {
	Lookup(name string) (any, bool)
}

// Action is one post-execution request emitted during render, to be carried
// out by external tooling after the rendered text is delivered.
type Action struct {
	// Kind names the action ("open-file", "run-command", ...).
	Kind string
	// Payload carries the action's arguments.
	Payload cty.Value
	// Source is the component that emitted the action.
	Source string
}

// Scope is the optional naming boundary a structural component introduces
// for its subtree. It is a pure additive read channel: children observe
// their enclosing scope or nil, and never mutate ancestor data.
type Scope struct {
	Name   string
	Parent *Scope
}

// Path returns the scope chain joined outermost-first with "/".
func (s *Scope) Path() string {
	if s == nil {
		return ""
	}
	if s.Parent == nil {
		return s.Name
	}
	return s.Parent.Path() + "/" + s.Name
}

// Context is the mutable state threaded through one render call. It is
// owned exclusively by that call and must never be shared across concurrent
// renders. Components treat the answer store, the error collector, and the
// post-execution list as append/lookup structures; they never replace them
// wholesale, which keeps sibling mutation order intact.
type Context struct {
	answers *Answers
	env     EnvironmentFacts
	scope   *Scope
	lookup  ComponentLookup
	errors  *diag.Collector
	asker   Asker
	opts    Options

	post []Action
	memo map[string]*nodeState

	// renderValues re-enters the walk on behalf of a component that needs
	// its children's text (for wrapping or indentation). Set by the walker;
	// depth tracks the node currently executing. The walk is strictly
	// sequential, so plain fields suffice.
	renderValues func(ctx context.Context, vals []cty.Value, depth int) []string
	depth        int
}

func newContext(opts Options, lookup ComponentLookup) *Context {
	return &Context{
		answers: NewAnswers(opts.Answers),
		env:     opts.environment(),
		lookup:  lookup,
		errors:  diag.NewCollector(),
		asker:   opts.Asker,
		opts:    opts,
		memo:    make(map[string]*nodeState),
	}
}

// Answers returns the render-scoped answer store.
func (c *Context) Answers() *Answers { return c.answers }

// Env returns the environment facts for this render.
func (c *Context) Env() EnvironmentFacts { return c.env }

// Scope returns the enclosing naming scope, or nil outside any scope.
func (c *Context) Scope() *Scope { return c.scope }

// Catalog returns the component lookup this render was created with. It may
// be nil when the caller constructed the tree directly.
func (c *Context) Catalog() ComponentLookup { return c.lookup }

// Errors returns the shared error collector.
func (c *Context) Errors() *diag.Collector { return c.errors }

// Options returns the options this render was invoked with, after defaults.
func (c *Context) Options() Options { return c.opts }

// AppendAction queues a post-execution action.
func (c *Context) AppendAction(a Action) {
	c.post = append(c.post, a)
}

// Ask consults the external answer collector, if one was supplied. The
// second result is false when no asker is configured or the collection was
// skipped; the error, if any, is the asker's own failure and is reported by
// the calling component.
func (c *Context) Ask(ctx context.Context, q Question) (cty.Value, bool, error) {
	if c.asker == nil {
		return cty.NilVal, false, nil
	}
	return c.asker(ctx, q)
}

// RenderValues renders the given nodes through the engine walk and returns
// the flattened output segments. Structural components use it to wrap or
// indent their children's text before contributing their own node.
func (c *Context) RenderValues(ctx context.Context, vals []cty.Value) []string {
	if c.renderValues == nil {
		return nil
	}
	return c.renderValues(ctx, vals, c.depth+1)
}

// RenderText is RenderValues joined into one newline-separated block.
func (c *Context) RenderText(ctx context.Context, vals []cty.Value) string {
	return joinSegments(c.RenderValues(ctx, vals))
}

// withScope sets the current scope for the duration of fn. The walk is
// strictly sequential, so swapping the field in place is safe.
func (c *Context) withScope(s *Scope, fn func()) {
	prev := c.scope
	c.scope = s
	defer func() { c.scope = prev }()
	fn()
}
