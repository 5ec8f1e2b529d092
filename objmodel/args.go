package objmodel

import "fmt"

// Args is an unbound argument pack: positional values plus keyword values.
type Args struct {
	positional []any
	keyword    map[string]any
	order      []string
}

// NewArgs builds an argument pack from positional values.
func NewArgs(positional ...any) *Args {
	return &Args{positional: positional}
}

// Kw adds a keyword argument and returns the pack for chaining.
func (a *Args) Kw(name string, value any) *Args {
	if a.keyword == nil {
		a.keyword = make(map[string]any)
	}
	if _, dup := a.keyword[name]; !dup {
		a.order = append(a.order, name)
	}
	a.keyword[name] = value
	return a
}

// Positional returns the positional values.
func (a *Args) Positional() []any {
	if a == nil {
		return nil
	}
	return a.positional
}

// Keyword returns the keyword values.
func (a *Args) Keyword() map[string]any {
	if a == nil {
		return nil
	}
	return a.keyword
}

// BoundArgs is an argument pack after binding against a Signature: every
// declared parameter resolved to a value (explicit or default), catch-all
// overflow collected separately.
type BoundArgs struct {
	values map[string]any
	rest   []any
	extra  map[string]any
}

// Get returns the value bound to a declared parameter.
func (b *BoundArgs) Get(name string) (any, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Rest returns positional overflow captured by a variadic-positional catch-all.
func (b *BoundArgs) Rest() []any { return b.rest }

// Extra returns keyword overflow captured by a variadic-keyword catch-all.
func (b *BoundArgs) Extra() map[string]any { return b.extra }

// BindArgs matches an argument pack against a signature. Positional values
// fill positional parameters in order; keyword values fill remaining
// positionals by name and keyword-only parameters; defaults fill the rest.
// Any unmatched argument without a catch-all to absorb it is an error.
func BindArgs(sig Signature, args *Args) (*BoundArgs, error) {
	if args == nil {
		args = NewArgs()
	}
	bound := &BoundArgs{values: make(map[string]any)}
	positionals := sig.Positionals()
	pos := args.Positional()

	n := len(pos)
	if n > len(positionals) {
		n = len(positionals)
	}
	for i := 0; i < n; i++ {
		bound.values[positionals[i].Name] = pos[i]
	}

	// Positional overflow.
	if len(pos) > len(positionals) {
		if _, ok := sig.VarArgs(); !ok {
			return nil, fmt.Errorf("takes %d positional arguments but %d were given",
				len(positionals), len(pos))
		}
		bound.rest = append(bound.rest, pos[len(positionals):]...)
	}

	// Keyword values: declared positional by name, keyword-only, then overflow.
	declared := make(map[string]Param, sig.NumParams())
	for _, p := range positionals {
		declared[p.Name] = p
	}
	for _, p := range sig.KeywordOnlys() {
		declared[p.Name] = p
	}
	for name, value := range args.Keyword() {
		p, ok := declared[name]
		if !ok {
			if _, hasVarKw := sig.VarKw(); !hasVarKw {
				return nil, fmt.Errorf("got an unexpected keyword argument %q", name)
			}
			if bound.extra == nil {
				bound.extra = make(map[string]any)
			}
			bound.extra[name] = value
			continue
		}
		if _, already := bound.values[p.Name]; already {
			return nil, fmt.Errorf("got multiple values for argument %q", name)
		}
		bound.values[p.Name] = value
	}

	// Defaults, then report anything still missing.
	var missing []string
	for _, p := range append(positionals, sig.KeywordOnlys()...) {
		if _, ok := bound.values[p.Name]; ok {
			continue
		}
		if p.HasDefault {
			bound.values[p.Name] = p.Default
			continue
		}
		missing = append(missing, p.Name)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required arguments: %v", missing)
	}
	return bound, nil
}
