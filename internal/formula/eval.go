package formula

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Sentinel marks a string as a formula.
const Sentinel = "="

// Env supplies identifier lookups, normally backed by the render answers
// map. A false result means the name was never collected.
type Env func(name string) (cty.Value, bool)

// MapEnv adapts a plain value map into an Env.
func MapEnv(m map[string]cty.Value) Env {
	return func(name string) (cty.Value, bool) {
		v, ok := m[name]
		return v, ok
	}
}

// IsFormula reports whether s carries the sentinel marker.
func IsFormula(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), Sentinel)
}

// Strip removes the sentinel marker, if present.
func Strip(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimPrefix(s, Sentinel)
}

// Eval evaluates a formula against env and reduces the result to its truth
// value. Evaluation is pure: it never mutates env and never triggers
// resolution of other elements.
func Eval(src string, env Env) (bool, error) {
	v, err := EvalValue(src, env)
	if err != nil {
		return false, err
	}
	return Truthy(v), nil
}

// EvalValue evaluates a formula and returns the raw result value.
func EvalValue(src string, env Env) (cty.Value, error) {
	e, err := parse(Strip(src))
	if err != nil {
		return cty.NilVal, err
	}
	return e.eval(env)
}

// Truthy reduces a value to its boolean interpretation: null and false are
// false, a number is true when non-zero, a string when non-empty.
func Truthy(v cty.Value) bool {
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return false
	}
	switch v.Type() {
	case cty.Bool:
		return v.True()
	case cty.Number:
		return !v.RawEquals(cty.Zero)
	case cty.String:
		return v.AsString() != ""
	}
	// Collections and capsules count as present.
	return true
}

func (e *identExpr) eval(env Env) (cty.Value, error) {
	v, ok := env(e.name)
	if !ok {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	return v, nil
}

func (e *litExpr) eval(Env) (cty.Value, error) {
	return e.val, nil
}

func (e *notExpr) eval(env Env) (cty.Value, error) {
	v, err := e.operand.eval(env)
	if err != nil {
		return cty.NilVal, err
	}
	return cty.BoolVal(!Truthy(v)), nil
}

func (e *binaryExpr) eval(env Env) (cty.Value, error) {
	lhs, err := e.lhs.eval(env)
	if err != nil {
		return cty.NilVal, err
	}

	// AND/OR short-circuit on the left operand.
	switch e.op {
	case tokenAnd:
		if !Truthy(lhs) {
			return cty.False, nil
		}
		rhs, err := e.rhs.eval(env)
		if err != nil {
			return cty.NilVal, err
		}
		return cty.BoolVal(Truthy(rhs)), nil
	case tokenOr:
		if Truthy(lhs) {
			return cty.True, nil
		}
		rhs, err := e.rhs.eval(env)
		if err != nil {
			return cty.NilVal, err
		}
		return cty.BoolVal(Truthy(rhs)), nil
	}

	rhs, err := e.rhs.eval(env)
	if err != nil {
		return cty.NilVal, err
	}

	switch e.op {
	case tokenEq:
		return cty.BoolVal(valuesEqual(lhs, rhs)), nil
	case tokenNeq:
		return cty.BoolVal(!valuesEqual(lhs, rhs)), nil
	case tokenLt, tokenGt, tokenLte, tokenGte:
		return compareNumbers(e.op, lhs, rhs), nil
	}
	return cty.NilVal, fmt.Errorf("unsupported operator")
}

func (e *callExpr) eval(env Env) (cty.Value, error) {
	fn, ok := builtins[strings.ToUpper(e.name)]
	if !ok {
		return cty.NilVal, fmt.Errorf("unknown function %q", e.name)
	}
	args := make([]cty.Value, len(e.args))
	for i, a := range e.args {
		v, err := a.eval(env)
		if err != nil {
			return cty.NilVal, err
		}
		args[i] = v
	}
	return fn.Call(args)
}

// valuesEqual compares two values after unifying their types. Values that
// cannot be brought to a common type are simply unequal; a missing answer
// (null) equals nothing but another null.
func valuesEqual(a, b cty.Value) bool {
	aNull := a == cty.NilVal || a.IsNull()
	bNull := b == cty.NilVal || b.IsNull()
	if aNull || bNull {
		return aNull && bNull
	}
	if conv, err := convert.Convert(b, a.Type()); err == nil {
		return a.Equals(conv).True()
	}
	if conv, err := convert.Convert(a, b.Type()); err == nil {
		return conv.Equals(b).True()
	}
	return false
}

// compareNumbers orders two values numerically. Operands that do not
// convert to numbers make the comparison false rather than an error, so
// documents degrade gracefully.
func compareNumbers(op tokenKind, a, b cty.Value) cty.Value {
	if a == cty.NilVal || b == cty.NilVal || a.IsNull() || b.IsNull() {
		return cty.False
	}
	an, err := convert.Convert(a, cty.Number)
	if err != nil {
		return cty.False
	}
	bn, err := convert.Convert(b, cty.Number)
	if err != nil {
		return cty.False
	}
	switch op {
	case tokenLt:
		return an.LessThan(bn)
	case tokenGt:
		return an.GreaterThan(bn)
	case tokenLte:
		return an.LessThanOrEqualTo(bn)
	case tokenGte:
		return an.GreaterThanOrEqualTo(bn)
	}
	return cty.False
}
