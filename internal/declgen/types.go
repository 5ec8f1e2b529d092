package declgen

// InterfaceDef is a Go interface discovered in a loaded package, reduced to
// what a runtime declaration needs.
type InterfaceDef struct {
	Name    string
	PkgPath string
	PkgName string
	Methods []MethodDef
}

// MethodDef captures one interface method's name and parameter shape.
type MethodDef struct {
	Name     string
	Params   []ParamDef
	Variadic bool // last parameter is ...T
}

// ParamDef is a parameter name as written in the Go source. Types are
// deliberately dropped: the runtime discipline compares names and shape only.
type ParamDef struct {
	Name string
}

// Options controls which interfaces are collected.
type Options struct {
	Filter            string // package path prefix filter
	IncludeUnexported bool
}
