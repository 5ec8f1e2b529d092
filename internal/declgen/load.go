package declgen

import (
	"context"
	"fmt"
	"go/types"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/tools/go/packages"
)

// Load loads Go packages from dir and collects every declared interface type,
// reduced to the method name / parameter name shape the runtime declarations
// need.
func Load(ctx context.Context, dir string, opts Options, logger *slog.Logger) ([]InterfaceDef, error) {
	cfg := &packages.Config{
		Mode:    packages.NeedName | packages.NeedTypes | packages.NeedTypesInfo,
		Dir:     dir,
		Context: ctx,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	logger.Info("packages loaded", "packages_count", len(pkgs))

	// Log packages with errors but continue: partial results still generate
	// useful declarations.
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			logger.Warn("package load error", "package", pkg.PkgPath, "error", e.Msg)
		}
	}

	var defs []InterfaceDef
	seen := make(map[string]bool) // pkgPath.Name dedup

	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}
		if opts.Filter != "" && !strings.HasPrefix(pkg.PkgPath, opts.Filter) {
			continue
		}
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok {
				continue
			}
			named, ok := tn.Type().(*types.Named)
			if !ok {
				continue
			}
			ifaceType, ok := named.Underlying().(*types.Interface)
			if !ok {
				continue
			}
			if !opts.IncludeUnexported && isUnexported(tn.Name()) {
				continue
			}
			key := pkg.PkgPath + "." + tn.Name()
			if seen[key] {
				continue
			}
			seen[key] = true

			defs = append(defs, InterfaceDef{
				Name:    tn.Name(),
				PkgPath: pkg.PkgPath,
				PkgName: pkg.Name,
				Methods: extractMethods(ifaceType),
			})
			logger.Debug("found interface",
				"name", tn.Name(), "package", pkg.PkgPath, "methods", ifaceType.NumMethods())
		}
	}

	sort.Slice(defs, func(a, b int) bool {
		if defs[a].PkgPath != defs[b].PkgPath {
			return defs[a].PkgPath < defs[b].PkgPath
		}
		return defs[a].Name < defs[b].Name
	})
	logger.Info("interfaces collected", "interfaces", len(defs))
	return defs, nil
}

// extractMethods flattens the interface's full method set (embedded
// interfaces included) into method definitions.
func extractMethods(ifaceType *types.Interface) []MethodDef {
	ifaceType = ifaceType.Complete()
	methods := make([]MethodDef, 0, ifaceType.NumMethods())
	for i := 0; i < ifaceType.NumMethods(); i++ {
		m := ifaceType.Method(i)
		sig := m.Type().(*types.Signature)
		def := MethodDef{Name: m.Name(), Variadic: sig.Variadic()}
		params := sig.Params()
		for j := 0; j < params.Len(); j++ {
			name := params.At(j).Name()
			if name == "" || name == "_" {
				name = fmt.Sprintf("arg%d", j)
			}
			def.Params = append(def.Params, ParamDef{Name: name})
		}
		methods = append(methods, def)
	}
	return methods
}

func isUnexported(name string) bool {
	return name == "" || unicode.IsLower(rune(name[0]))
}
