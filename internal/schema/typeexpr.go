package schema

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// ParseType parses a type-expression string such as "string",
// "list(number)" or "object({score = number, comment = string})" into its
// cty type constraint. Component authors use it to declare attribute types
// without importing cty directly.
func ParseType(src string) (cty.Type, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "<type>", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return cty.NilType, fmt.Errorf("invalid type expression %q: %s", src, diags.Error())
	}
	ty, diags := typeexpr.TypeConstraint(expr)
	if diags.HasErrors() {
		return cty.NilType, fmt.Errorf("invalid type constraint %q: %s", src, diags.Error())
	}
	return ty, nil
}

// MustParseType is ParseType for statically known type strings; it panics on
// error and is intended for package-level schema declarations.
func MustParseType(src string) cty.Type {
	ty, err := ParseType(src)
	if err != nil {
		panic(err)
	}
	return ty
}
