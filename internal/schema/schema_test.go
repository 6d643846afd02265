package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/apowers313/pupt/internal/diag"
)

func strPtr(v cty.Value) *cty.Value { return &v }

func TestValidate_DefaultsAndConversion(t *testing.T) {
	s := Object(map[string]*Attribute{
		"title": {Type: cty.String, Required: true},
		"level": {Type: cty.Number, Default: strPtr(cty.NumberIntVal(1))},
		"tags":  {Type: cty.List(cty.String)},
	})

	props := map[string]cty.Value{
		"title": cty.StringVal("Intro"),
		// Number given as a string must convert to the declared type.
		"level": cty.StringVal("3"),
		"tags":  cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}),
	}

	out, errs := s.Validate("section", props)
	require.Empty(t, errs)
	assert.Equal(t, cty.StringVal("Intro"), out["title"])
	assert.True(t, cty.NumberIntVal(3).RawEquals(out["level"]))
	assert.Equal(t, cty.List(cty.String), out["tags"].Type())
}

func TestValidate_DefaultAppliedWhenAbsentOrNull(t *testing.T) {
	s := Object(map[string]*Attribute{
		"level": {Type: cty.Number, Default: strPtr(cty.NumberIntVal(2))},
	})

	out, errs := s.Validate("section", map[string]cty.Value{})
	require.Empty(t, errs)
	assert.True(t, cty.NumberIntVal(2).RawEquals(out["level"]))

	out, errs = s.Validate("section", map[string]cty.Value{
		"level": cty.NullVal(cty.DynamicPseudoType),
	})
	require.Empty(t, errs)
	assert.True(t, cty.NumberIntVal(2).RawEquals(out["level"]))
}

func TestValidate_RequiredMissing(t *testing.T) {
	s := Object(map[string]*Attribute{
		"title": {Type: cty.String, Required: true},
	})

	_, errs := s.Validate("section", map[string]cty.Value{})
	require.Len(t, errs, 1)
	assert.Equal(t, "section", errs[0].Component)
	assert.Equal(t, "title", errs[0].Prop)
	assert.Equal(t, diag.CodeSchemaValidation, errs[0].Code)
}

func TestValidate_IncompatibleValue(t *testing.T) {
	s := Object(map[string]*Attribute{
		"count": {Type: cty.Number},
	})

	_, errs := s.Validate("thing", map[string]cty.Value{
		"count": cty.StringVal("many"),
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "count", errs[0].Prop)
	assert.Equal(t, "string", errs[0].Received)
	assert.Equal(t, "number", errs[0].Expected)
}

func TestValidate_AllowedValues(t *testing.T) {
	s := Object(map[string]*Attribute{
		"format": {
			Type:          cty.String,
			AllowedValues: []cty.Value{cty.StringVal("markdown"), cty.StringVal("xml")},
		},
	})

	_, errs := s.Validate("doc", map[string]cty.Value{"format": cty.StringVal("xml")})
	assert.Empty(t, errs)

	_, errs = s.Validate("doc", map[string]cty.Value{"format": cty.StringVal("pdf")})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "allowed")
}

func TestValidate_FindingsDoNotAbort(t *testing.T) {
	s := Object(map[string]*Attribute{
		"title": {Type: cty.String, Required: true},
		"count": {Type: cty.Number},
		"level": {Type: cty.Number, Default: strPtr(cty.NumberIntVal(1))},
	})

	out, errs := s.Validate("section", map[string]cty.Value{
		"count": cty.StringVal("many"),
	})
	assert.Len(t, errs, 2)
	// Defaults still apply around the failing attributes.
	assert.True(t, cty.NumberIntVal(1).RawEquals(out["level"]))
}

func TestValidate_UndeclaredPropsPassThrough(t *testing.T) {
	s := Object(map[string]*Attribute{})

	out, errs := s.Validate("anything", map[string]cty.Value{
		"extra": cty.StringVal("kept"),
	})
	require.Empty(t, errs)
	assert.Equal(t, cty.StringVal("kept"), out["extra"])
}

func TestParseType(t *testing.T) {
	testCases := []struct {
		src      string
		expected cty.Type
	}{
		{src: "string", expected: cty.String},
		{src: "number", expected: cty.Number},
		{src: "bool", expected: cty.Bool},
		{src: "list(string)", expected: cty.List(cty.String)},
		{src: "map(number)", expected: cty.Map(cty.Number)},
		{src: "object({name=string})", expected: cty.Object(map[string]cty.Type{"name": cty.String})},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			got, err := ParseType(tc.src)
			require.NoError(t, err)
			assert.True(t, tc.expected.Equals(got), "got %s", got.FriendlyName())
		})
	}
}

func TestParseType_Invalid(t *testing.T) {
	_, err := ParseType("listof(string")
	require.Error(t, err)
}
