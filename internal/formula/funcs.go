package formula

import (
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// builtins is the function table for the call syntax. Parameters are
// dynamically typed and reduced through Truthy, matching the identifier
// semantics: a missing answer passed through is just false.
var builtins = map[string]function.Function{
	"NOT":     notFunc,
	"AND":     andFunc,
	"OR":      orFunc,
	"ISBLANK": isBlankFunc,
}

var boolishParam = function.Parameter{
	Name:             "value",
	Type:             cty.DynamicPseudoType,
	AllowNull:        true,
	AllowDynamicType: true,
}

var notFunc = function.New(&function.Spec{
	Params: []function.Parameter{boolishParam},
	Type:   function.StaticReturnType(cty.Bool),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		return cty.BoolVal(!Truthy(args[0])), nil
	},
})

var andFunc = function.New(&function.Spec{
	VarParam: &boolishParam,
	Type:     function.StaticReturnType(cty.Bool),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		for _, a := range args {
			if !Truthy(a) {
				return cty.False, nil
			}
		}
		return cty.True, nil
	},
})

var orFunc = function.New(&function.Spec{
	VarParam: &boolishParam,
	Type:     function.StaticReturnType(cty.Bool),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		for _, a := range args {
			if Truthy(a) {
				return cty.True, nil
			}
		}
		return cty.False, nil
	},
})

var isBlankFunc = function.New(&function.Spec{
	Params: []function.Parameter{boolishParam},
	Type:   function.StaticReturnType(cty.Bool),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		v := args[0]
		blank := v.IsNull() || (v.Type() == cty.String && v.AsString() == "")
		return cty.BoolVal(blank), nil
	},
})
