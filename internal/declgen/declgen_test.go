package declgen

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)}))
}

func TestLoad_CollectsExportedInterfaces(t *testing.T) {
	dir, err := filepath.Abs(filepath.Join("..", "..", "testdata", "storage"))
	require.NoError(t, err)

	defs, err := Load(context.Background(), dir, Options{}, testLogger())
	require.NoError(t, err)
	require.Len(t, defs, 2)

	assert.Equal(t, "Notifier", defs[0].Name)
	assert.Equal(t, "Store", defs[1].Name)
	assert.Equal(t, "example.com/storage", defs[1].PkgPath)

	var save MethodDef
	for _, m := range defs[1].Methods {
		if m.Name == "Save" {
			save = m
		}
	}
	require.Equal(t, "Save", save.Name)
	assert.Equal(t, []ParamDef{{Name: "name"}, {Name: "data"}}, save.Params)
	assert.False(t, save.Variadic)

	notify := defs[0].Methods[0]
	assert.Equal(t, "Notify", notify.Name)
	assert.True(t, notify.Variadic)
	assert.Equal(t, []ParamDef{{Name: "event"}, {Name: "payload"}}, notify.Params)
}

func TestLoad_IncludeUnexported(t *testing.T) {
	dir, err := filepath.Abs(filepath.Join("..", "..", "testdata", "storage"))
	require.NoError(t, err)

	defs, err := Load(context.Background(), dir, Options{IncludeUnexported: true}, testLogger())
	require.NoError(t, err)
	require.Len(t, defs, 3)
	assert.Equal(t, "helper", defs[2].Name)
}

func TestLoad_FilterExcludesEverything(t *testing.T) {
	dir, err := filepath.Abs(filepath.Join("..", "..", "testdata", "storage"))
	require.NoError(t, err)

	defs, err := Load(context.Background(), dir, Options{Filter: "example.com/other"}, testLogger())
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestGenerate_EmitsDeclarations(t *testing.T) {
	defs := []InterfaceDef{
		{
			Name:    "Store",
			PkgPath: "example.com/storage",
			PkgName: "storage",
			Methods: []MethodDef{
				{Name: "Save", Params: []ParamDef{{Name: "name"}, {Name: "data"}}},
				{Name: "Close"},
			},
		},
	}

	src, err := Generate(defs, "contracts")
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, "// Code generated by declgen. DO NOT EDIT.")
	assert.Contains(t, out, "package contracts")
	assert.Contains(t, out, `var Store = iface.New("Store")`)
	assert.Contains(t, out, `Method("Save", objmodel.Pos("name"), objmodel.Pos("data"))`)
	assert.Contains(t, out, `Method("Close")`)
	assert.Contains(t, out, "MustDeclare()")
}

func TestGenerate_VariadicBecomesVarArgs(t *testing.T) {
	defs := []InterfaceDef{
		{
			Name:    "Notifier",
			PkgPath: "example.com/storage",
			PkgName: "storage",
			Methods: []MethodDef{
				{Name: "Notify", Variadic: true, Params: []ParamDef{{Name: "event"}, {Name: "payload"}}},
			},
		},
	}

	src, err := Generate(defs, "contracts")
	require.NoError(t, err)
	assert.Contains(t, string(src),
		`Method("Notify", objmodel.Pos("event"), objmodel.VarArgs("payload"))`)
}

func TestGenerate_DisambiguatesNameCollisions(t *testing.T) {
	defs := []InterfaceDef{
		{Name: "Store", PkgPath: "example.com/a", PkgName: "a"},
		{Name: "Store", PkgPath: "example.com/b", PkgName: "b"},
	}

	src, err := Generate(defs, "contracts")
	require.NoError(t, err)
	out := string(src)
	assert.Contains(t, out, "var Store =")
	assert.Contains(t, out, "var BStore =")
}

func TestGenerate_SkipsObjmodelImportWhenUnused(t *testing.T) {
	defs := []InterfaceDef{
		{Name: "Closer", PkgPath: "example.com/a", PkgName: "a",
			Methods: []MethodDef{{Name: "Close"}}},
	}

	src, err := Generate(defs, "contracts")
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(src), "objmodel"),
		"parameterless interfaces must not import objmodel")
}
