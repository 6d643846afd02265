// Package formula implements the small spreadsheet-style expression
// language conditional components evaluate against the answers map.
//
// A formula is marked by a leading "=" sentinel. The grammar:
//
//	expr    = or
//	or      = and { OR and }
//	and     = not { AND not }
//	not     = NOT not | cmp
//	cmp     = operand [ ( "=" | "<>" | "<" | ">" | "<=" | ">=" ) operand ]
//	operand = IDENT | IDENT "(" args ")" | NUMBER | STRING | TRUE | FALSE
//	        | "(" expr ")"
//
// Precedence, tightest first: comparison, NOT, AND, OR. Comparison
// operators do not chain. NOT, AND and OR may also be written as function
// calls (NOT(x), AND(a, b, c)), which sidesteps precedence entirely.
//
// Evaluation is pure and synchronous. A bare identifier is a boolean-ish
// lookup in the answers map; a name with no entry evaluates as absent
// (falsy) rather than raising an error, so documents degrade gracefully
// when an input was never collected. Truthiness: null and false are false;
// a number is true when non-zero; a string is true when non-empty.
package formula
