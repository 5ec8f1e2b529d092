package iface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducktype/ducktype/objmodel"
)

func sig(params ...objmodel.Param) objmodel.Signature {
	return objmodel.MustSignature(params...)
}

func TestCompareSignatures_Compatible(t *testing.T) {
	cases := []struct {
		name string
		decl objmodel.Signature
		impl objmodel.Signature
	}{
		{"identical", sig(objmodel.Pos("a")), sig(objmodel.Pos("a"))},
		{"empty", sig(), sig()},
		{
			"extra optional positional",
			sig(objmodel.Pos("a")),
			sig(objmodel.Pos("a"), objmodel.PosDefault("b", 1)),
		},
		{
			"extra optional keyword-only",
			sig(objmodel.Pos("a")),
			sig(objmodel.Pos("a"), objmodel.KwDefault("verbose", false)),
		},
		{
			"extra catch-alls on the implementation",
			sig(objmodel.Pos("a")),
			sig(objmodel.Pos("a"), objmodel.VarArgs("rest"), objmodel.VarKw("opts")),
		},
		{
			"bare catch-all pair absorbs any declaration",
			sig(objmodel.Pos("a"), objmodel.Kw("mode"), objmodel.VarArgs("extra")),
			sig(objmodel.VarArgs("args"), objmodel.VarKw("kwargs")),
		},
		{
			"keyword-only order does not matter",
			sig(objmodel.Kw("x"), objmodel.Kw("y")),
			sig(objmodel.Kw("y"), objmodel.Kw("x")),
		},
		{
			"matching catch-alls",
			sig(objmodel.VarArgs("values")),
			sig(objmodel.VarArgs("numbers")),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Empty(t, compareSignatures(tc.decl, tc.impl))
		})
	}
}

func TestCompareSignatures_Incompatible(t *testing.T) {
	cases := []struct {
		name   string
		decl   objmodel.Signature
		impl   objmodel.Signature
		param  string
		reason string
	}{
		{
			"missing positional",
			sig(objmodel.Pos("a"), objmodel.Pos("b")), sig(objmodel.Pos("a")),
			"b", "missing positional",
		},
		{
			"positional name mismatch",
			sig(objmodel.Pos("data")), sig(objmodel.Pos("payload")),
			"data", "named",
		},
		{
			"positional order matters",
			sig(objmodel.Pos("a"), objmodel.Pos("b")), sig(objmodel.Pos("b"), objmodel.Pos("a")),
			"a", "named",
		},
		{
			"extra required positional",
			sig(objmodel.Pos("a")), sig(objmodel.Pos("a"), objmodel.Pos("b")),
			"b", "extra required positional",
		},
		{
			"default dropped by implementation",
			sig(objmodel.PosDefault("a", 1)), sig(objmodel.Pos("a")),
			"a", "must accept a default",
		},
		{
			"default added by implementation",
			sig(objmodel.Pos("a")), sig(objmodel.PosDefault("a", 1)),
			"a", "must not carry a default",
		},
		{
			"missing keyword-only",
			sig(objmodel.Kw("mode")), sig(),
			"mode", "missing keyword-only",
		},
		{
			"extra required keyword-only",
			sig(), sig(objmodel.Kw("mode")),
			"mode", "extra required keyword-only",
		},
		{
			"missing variadic-positional",
			sig(objmodel.VarArgs("rest")), sig(),
			"*", "variadic-positional",
		},
		{
			"missing variadic-keyword",
			sig(objmodel.VarKw("opts")), sig(),
			"**", "variadic-keyword",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mismatches := compareSignatures(tc.decl, tc.impl)
			require.NotEmpty(t, mismatches)
			found := false
			for _, m := range mismatches {
				if m.Param == tc.param {
					assert.Contains(t, m.Reason, tc.reason)
					found = true
				}
			}
			assert.True(t, found, "no mismatch reported for parameter %q: %v", tc.param, mismatches)
		})
	}
}

func TestCompareSignatures_AggregatesAllMismatches(t *testing.T) {
	decl := sig(objmodel.Pos("a"), objmodel.Pos("b"), objmodel.Kw("mode"), objmodel.VarKw("opts"))
	impl := sig(objmodel.Pos("a"))

	mismatches := compareSignatures(decl, impl)
	// One report per defect, all in a single pass.
	assert.Len(t, mismatches, 3)
}

func TestCompareSignatures_BareCatchAllNeedsBothKinds(t *testing.T) {
	decl := sig(objmodel.Pos("a"))
	implOnlyArgs := sig(objmodel.VarArgs("args"))

	// A lone *args is not the wholesale-acceptance shape; normal rules apply.
	mismatches := compareSignatures(decl, implOnlyArgs)
	assert.NotEmpty(t, mismatches)
}
