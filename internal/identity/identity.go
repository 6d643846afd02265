// Package identity provides the cross-instance identity checks for engine
// values.
//
// A host process can end up with two independently loaded copies of this
// library (one vendored into a plugin, one in the host). Values built by one
// copy must be recognizable by evaluation logic running in the other, so
// identity checks never use Go type assertions against our own named types.
// Instead every engine value carries a globally agreed, versioned kind key
// exposed through a method whose signature mentions only builtins; interface
// satisfaction in Go is structural, so the assertion holds across copies.
package identity

// Kind keys. These are wire-stable: bump the version suffix only on an
// incompatible change to the value's contract.
const (
	KindElement   = "pupt.element/v1"
	KindComponent = "pupt.component/v1"
	KindDeferred  = "pupt.deferred-ref/v1"
)

// Kinder is the marker interface every engine value implements. The method
// set deliberately references no named types from this module.
type Kinder interface {
	PuptKind() string
}

// KindOf returns the kind key of v, or "" when v carries none.
func KindOf(v any) string {
	k, ok := v.(Kinder)
	if !ok {
		return ""
	}
	return k.PuptKind()
}

// HasKind reports whether v carries the given kind key.
func HasKind(v any, kind string) bool {
	return KindOf(v) == kind
}
