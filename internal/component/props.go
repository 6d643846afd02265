package component

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/element"
)

// Prop returns the named prop or a null value when absent, so callers can
// chain IsNull checks without map lookups.
func Prop(props map[string]cty.Value, name string) cty.Value {
	v, ok := props[name]
	if !ok || v == cty.NilVal {
		return cty.NullVal(cty.DynamicPseudoType)
	}
	return v
}

// StringProp returns a string prop, or "" when absent or null.
func StringProp(props map[string]cty.Value, name string) string {
	v := Prop(props, name)
	if v.IsNull() || v.Type() != cty.String {
		return ""
	}
	return v.AsString()
}

// BoolProp returns a bool prop, or def when absent or null.
func BoolProp(props map[string]cty.Value, name string, def bool) bool {
	v := Prop(props, name)
	if v.IsNull() || v.Type() != cty.Bool {
		return def
	}
	return v.True()
}

// IntProp returns a whole-number prop, or def when absent or null.
func IntProp(props map[string]cty.Value, name string, def int) int {
	v := Prop(props, name)
	if v.IsNull() || v.Type() != cty.Number {
		return def
	}
	i, _ := v.AsBigFloat().Int64()
	return int(i)
}

// Children unwraps the reserved children prop into its ordered node list.
func Children(props map[string]cty.Value) []cty.Value {
	v, ok := props[element.ChildrenProp]
	if !ok || v == cty.NilVal || v.IsNull() {
		return nil
	}
	if !v.Type().IsTupleType() && !v.Type().IsListType() {
		return []cty.Value{v}
	}
	var out []cty.Value
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		out = append(out, ev)
	}
	return out
}

// ListProp returns the elements of a list or tuple prop, or nil.
func ListProp(props map[string]cty.Value, name string) []cty.Value {
	v := Prop(props, name)
	if v.IsNull() || (!v.Type().IsTupleType() && !v.Type().IsListType() && !v.Type().IsSetType()) {
		return nil
	}
	var out []cty.Value
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		out = append(out, ev)
	}
	return out
}
