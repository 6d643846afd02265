package render

import (
	"context"
	"runtime"

	"github.com/zclconf/go-cty/cty"
)

// Format selects the delimiter style used when structural components wrap
// their children.
type Format string

const (
	// FormatMarkdown renders sections as markdown headings.
	FormatMarkdown Format = "markdown"
	// FormatXML renders sections as xml-style tag pairs.
	FormatXML Format = "xml"
	// FormatPlain renders sections as bare text separated by blank lines.
	FormatPlain Format = "plain"
)

// TrimMode selects how the final text is trimmed.
type TrimMode string

const (
	// TrimOuter strips leading and trailing whitespace from the final text.
	TrimOuter TrimMode = "outer"
	// TrimNone keeps the concatenated output exactly as produced.
	TrimNone TrimMode = "none"
)

// DefaultMaxDepth bounds the walk so a cyclic or degenerate tree fails
// closed instead of looping.
const DefaultMaxDepth = 64

// EnvironmentFacts are the runtime facts components may consult: the LLM
// the output targets, the delimiter style, and locale/OS facts.
type EnvironmentFacts struct {
	TargetModel string
	Format      Format
	Locale      string
	OS          string
}

// Question describes one interactive input request passed to an Asker.
type Question struct {
	// Name is the answer key the component will record the value under.
	Name string
	// Prompt is the human-readable question text.
	Prompt string
	// Kind names the collector ("input", "confirm", "select", ...).
	Kind string
	// Default is the value used when the answer is skipped.
	Default cty.Value
	// Options restricts the answer to a closed set, when non-empty.
	Options []cty.Value
}

// Asker supplies externally collected answers during an interactive
// component's resolve step. Returning answered=false means the collection
// was skipped and the component falls back to seeding its default. The walk
// blocks on the call, preserving strict document order.
type Asker func(ctx context.Context, q Question) (value cty.Value, answered bool, err error)

// Options configure one Render call.
type Options struct {
	// Format selects the delimiter style. Defaults to FormatMarkdown.
	Format Format

	// Trim selects final-text trimming. Defaults to TrimOuter.
	Trim TrimMode

	// Indent is the per-level indentation used by structural components.
	// Defaults to two spaces.
	Indent string

	// MaxDepth bounds tree descent; the render fails closed past it.
	// Defaults to DefaultMaxDepth.
	MaxDepth int

	// Answers pre-seeds the answer store (values collected on an earlier
	// render, or supplied on the command line).
	Answers map[string]cty.Value

	// Env overrides the default environment facts.
	Env *EnvironmentFacts

	// Asker, when set, is consulted by interactive components before they
	// seed defaults.
	Asker Asker

	// Strict records a missing-schema error for any component that
	// declares no prop schema.
	Strict bool

	// Catalog is the component lookup recorded on the render context. The
	// engine itself never consults it during evaluation; it is carried for
	// components that construct elements while rendering.
	Catalog ComponentLookup
}

func (o Options) withDefaults() Options {
	if o.Format == "" {
		o.Format = FormatMarkdown
	}
	if o.Trim == "" {
		o.Trim = TrimOuter
	}
	if o.Indent == "" {
		o.Indent = "  "
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	return o
}

func (o Options) environment() EnvironmentFacts {
	env := EnvironmentFacts{
		Format: o.Format,
		Locale: "en-US",
		OS:     runtime.GOOS,
	}
	if o.Env != nil {
		if o.Env.TargetModel != "" {
			env.TargetModel = o.Env.TargetModel
		}
		if o.Env.Format != "" {
			env.Format = o.Env.Format
		}
		if o.Env.Locale != "" {
			env.Locale = o.Env.Locale
		}
		if o.Env.OS != "" {
			env.OS = o.Env.OS
		}
	}
	return env
}
