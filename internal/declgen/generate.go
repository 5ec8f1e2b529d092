package declgen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
)

// Generate emits a Go source file declaring one iface.Interface variable per
// collected Go interface. The output is gofmt-formatted and compiles against
// the public ducktype packages.
func Generate(defs []InterfaceDef, pkgName string) ([]byte, error) {
	if pkgName == "" {
		pkgName = "contracts"
	}

	var b bytes.Buffer
	b.WriteString("// Code generated by declgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkgName)
	b.WriteString("import (\n")
	b.WriteString("\t\"github.com/ducktype/ducktype/iface\"\n")
	if usesParams(defs) {
		b.WriteString("\t\"github.com/ducktype/ducktype/objmodel\"\n")
	}
	b.WriteString(")\n\n")

	declared := make(map[string]bool)
	for _, def := range defs {
		varName := def.Name
		if declared[varName] {
			// Same interface name in two packages: qualify with the package name.
			varName = exportedPkgPrefix(def.PkgName) + def.Name
		}
		declared[varName] = true

		fmt.Fprintf(&b, "// %s mirrors %s.%s.\n", varName, def.PkgPath, def.Name)
		fmt.Fprintf(&b, "var %s = iface.New(%q)", varName, def.Name)
		for _, m := range def.Methods {
			b.WriteString(".\n\tMethod(")
			fmt.Fprintf(&b, "%q", m.Name)
			for j, p := range m.Params {
				if m.Variadic && j == len(m.Params)-1 {
					fmt.Fprintf(&b, ", objmodel.VarArgs(%q)", p.Name)
				} else {
					fmt.Fprintf(&b, ", objmodel.Pos(%q)", p.Name)
				}
			}
			b.WriteString(")")
		}
		b.WriteString(".\n\tMustDeclare()\n\n")
	}

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}

func usesParams(defs []InterfaceDef) bool {
	for _, def := range defs {
		for _, m := range def.Methods {
			if len(m.Params) > 0 {
				return true
			}
		}
	}
	return false
}

func exportedPkgPrefix(pkgName string) string {
	if pkgName == "" {
		return ""
	}
	return strings.ToUpper(pkgName[:1]) + pkgName[1:]
}
