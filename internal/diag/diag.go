// Package diag defines the structured errors collected during a render pass.
//
// Errors are accumulated, never thrown past the node that produced them: a
// component that fails validation or panics inside resolve/render degrades to
// its fallback rendering while its siblings and ancestors continue. The only
// globally visible effect of an error is that the top-level result is marked
// failed and carries the collected list.
package diag

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Code classifies a render error.
type Code string

const (
	// CodeSchemaValidation marks a prop that failed its shape/type/range check.
	CodeSchemaValidation Code = "schema-validation"
	// CodeMissingSchema marks a component that declares no schema while
	// strict validation was requested.
	CodeMissingSchema Code = "missing-schema"
	// CodeRuntime marks a panic or error raised inside a component's
	// resolve or render step.
	CodeRuntime Code = "runtime"
	// CodeDepthExceeded marks a walk that ran past the configured maximum
	// tree depth.
	CodeDepthExceeded Code = "depth-exceeded"
)

// Error is one structured validation or runtime failure, carrying enough
// detail to reproduce it: the component and prop involved, the element path,
// and the received vs expected shapes where applicable.
type Error struct {
	Component string
	Prop      string
	Message   string
	Code      Code
	Path      cty.Path
	Received  string
	Expected  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Code))
	sb.WriteString(": ")
	if e.Component != "" {
		sb.WriteString(e.Component)
		if e.Prop != "" {
			sb.WriteString(".")
			sb.WriteString(e.Prop)
		}
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Expected != "" {
		fmt.Fprintf(&sb, " (expected %s, got %s)", e.Expected, e.Received)
	}
	return sb.String()
}

// Collector accumulates errors for one render pass. It is owned by a single
// render call and mutated only by the node currently executing, so it needs
// no locking.
type Collector struct {
	errs []*Error
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Append records an error. Nil errors are ignored.
func (c *Collector) Append(errs ...*Error) {
	for _, e := range errs {
		if e != nil {
			c.errs = append(c.errs, e)
		}
	}
}

// HasErrors reports whether at least one error was collected.
func (c *Collector) HasErrors() bool {
	return len(c.errs) > 0
}

// Errors returns the collected errors in the order they were recorded.
func (c *Collector) Errors() []*Error {
	return c.errs
}

// Len returns the number of collected errors.
func (c *Collector) Len() int {
	return len(c.errs)
}
