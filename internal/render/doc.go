// Package render implements the resolution-and-render engine: the two-phase
// depth-first walk that materializes props (including deferred references
// between siblings), validates them against component schemas, runs each
// component's resolve step exactly once per pass, seeds interactive
// defaults, and concatenates the flattened output.
//
// A single Render call owns its Context; nothing is shared across concurrent
// renders. Errors never propagate past the node that produced them: a failed
// node degrades to rendering its already-materialized children and the walk
// continues, so the caller always receives best-effort text alongside the
// collected error list.
package render
