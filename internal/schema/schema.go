// Package schema describes the expected prop shape of a component as data
// (attribute name -> type constraint, requiredness, default) and validates a
// materialized prop bag against it generically, without reflection into the
// component's own code.
package schema

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/apowers313/pupt/internal/diag"
)

// Attribute declares one prop a component accepts.
type Attribute struct {
	// Type is the cty type constraint the prop value must convert to.
	// cty.DynamicPseudoType accepts any value.
	Type cty.Type

	// Required marks props that must be present after defaults are applied.
	Required bool

	// Default is applied when the prop is absent or null.
	Default *cty.Value

	// Description documents the attribute for discovery tooling.
	Description string

	// AllowedValues, when non-empty, restricts the prop to this closed set.
	AllowedValues []cty.Value
}

// Schema is a component's declared prop shape.
type Schema struct {
	Attributes map[string]*Attribute
}

// Object is a shorthand constructor for a schema from an attribute map.
func Object(attrs map[string]*Attribute) *Schema {
	return &Schema{Attributes: attrs}
}

// Validate checks props against the schema. It returns a normalized copy of
// the prop bag with defaults applied and values converted to their declared
// types, plus any validation findings. Findings never abort validation of
// the remaining attributes.
//
// Props not declared in the schema pass through untouched; the engine treats
// a schema as a contract for the props it names, not a closed world.
func (s *Schema) Validate(component string, props map[string]cty.Value) (map[string]cty.Value, []*diag.Error) {
	out := make(map[string]cty.Value, len(props))
	for k, v := range props {
		out[k] = v
	}

	var errs []*diag.Error
	for name, attr := range s.Attributes {
		val, present := out[name]
		if !present || val.IsNull() {
			if attr.Default != nil {
				out[name] = *attr.Default
				continue
			}
			if attr.Required {
				errs = append(errs, &diag.Error{
					Component: component,
					Prop:      name,
					Code:      diag.CodeSchemaValidation,
					Message:   "required prop is missing",
					Path:      cty.GetAttrPath(name),
					Received:  "null",
					Expected:  attr.Type.FriendlyName(),
				})
			}
			continue
		}

		converted, err := convert.Convert(val, attr.Type)
		if err != nil {
			errs = append(errs, &diag.Error{
				Component: component,
				Prop:      name,
				Code:      diag.CodeSchemaValidation,
				Message:   fmt.Sprintf("incompatible value: %s", err),
				Path:      cty.GetAttrPath(name),
				Received:  val.Type().FriendlyName(),
				Expected:  attr.Type.FriendlyName(),
			})
			continue
		}
		out[name] = converted

		if len(attr.AllowedValues) > 0 && converted.IsKnown() {
			if !valueAllowed(converted, attr.AllowedValues) {
				errs = append(errs, &diag.Error{
					Component: component,
					Prop:      name,
					Code:      diag.CodeSchemaValidation,
					Message:   "value is not one of the allowed options",
					Path:      cty.GetAttrPath(name),
					Received:  renderValue(converted),
					Expected:  renderAllowed(attr.AllowedValues),
				})
			}
		}
	}

	return out, errs
}

func valueAllowed(v cty.Value, allowed []cty.Value) bool {
	for _, a := range allowed {
		if v.RawEquals(a) {
			return true
		}
	}
	return false
}

func renderValue(v cty.Value) string {
	if v.Type() == cty.String {
		return fmt.Sprintf("%q", v.AsString())
	}
	return v.GoString()
}

func renderAllowed(allowed []cty.Value) string {
	out := "one of"
	for i, a := range allowed {
		if i > 0 {
			out += ","
		}
		out += " " + renderValue(a)
	}
	return out
}
