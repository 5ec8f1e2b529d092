package objmodel

import (
	"fmt"
	"reflect"
	"strings"
)

// ParamKind classifies a parameter slot in a method signature.
type ParamKind int

const (
	// Positional parameters are matched by position first, then by name.
	Positional ParamKind = iota
	// KeywordOnly parameters can only be supplied by name.
	KeywordOnly
	// VariadicPositional collects positional arguments beyond the declared ones.
	VariadicPositional
	// VariadicKeyword collects keyword arguments beyond the declared ones.
	VariadicKeyword
)

func (k ParamKind) String() string {
	switch k {
	case Positional:
		return "positional"
	case KeywordOnly:
		return "keyword-only"
	case VariadicPositional:
		return "variadic-positional"
	case VariadicKeyword:
		return "variadic-keyword"
	}
	return fmt.Sprintf("ParamKind(%d)", int(k))
}

// Param is a single parameter declaration. The receiver is never part of a
// signature; methods receive it separately.
type Param struct {
	Name       string
	Kind       ParamKind
	Default    any
	HasDefault bool
}

// Pos declares a required positional parameter.
func Pos(name string) Param {
	return Param{Name: name, Kind: Positional}
}

// PosDefault declares a positional parameter with a default value.
func PosDefault(name string, def any) Param {
	return Param{Name: name, Kind: Positional, Default: def, HasDefault: true}
}

// Kw declares a required keyword-only parameter.
func Kw(name string) Param {
	return Param{Name: name, Kind: KeywordOnly}
}

// KwDefault declares a keyword-only parameter with a default value.
func KwDefault(name string, def any) Param {
	return Param{Name: name, Kind: KeywordOnly, Default: def, HasDefault: true}
}

// VarArgs declares a catch-all for extra positional arguments.
func VarArgs(name string) Param {
	return Param{Name: name, Kind: VariadicPositional}
}

// VarKw declares a catch-all for extra keyword arguments.
func VarKw(name string) Param {
	return Param{Name: name, Kind: VariadicKeyword}
}

// Signature is an ordered, validated parameter list. The zero value is the
// empty signature (no parameters).
type Signature struct {
	params []Param
}

// NewSignature validates the parameter list and returns a Signature.
// Validation happens at declaration time so malformed signatures and mutable
// default values are caught before any instance exists.
func NewSignature(params ...Param) (Signature, error) {
	// Kinds must appear in call-syntax order: positionals, one optional
	// *args, keyword-only group, one optional **kwargs.
	stage := map[ParamKind]int{
		Positional:         0,
		VariadicPositional: 1,
		KeywordOnly:        2,
		VariadicKeyword:    3,
	}
	seen := make(map[string]bool, len(params))
	current := 0
	defaulted := false

	for _, p := range params {
		if p.Name == "" {
			return Signature{}, &DeclarationError{Subject: "signature", Reason: "parameter with empty name"}
		}
		if seen[p.Name] {
			return Signature{}, &DeclarationError{
				Subject: "signature",
				Reason:  fmt.Sprintf("duplicate parameter %q", p.Name),
			}
		}
		seen[p.Name] = true

		s := stage[p.Kind]
		if s < current {
			return Signature{}, &DeclarationError{
				Subject: "signature",
				Reason:  fmt.Sprintf("%s parameter %q out of order", p.Kind, p.Name),
			}
		}
		switch p.Kind {
		case Positional:
			if p.HasDefault {
				defaulted = true
			} else if defaulted {
				return Signature{}, &DeclarationError{
					Subject: "signature",
					Reason:  fmt.Sprintf("required positional parameter %q follows a defaulted one", p.Name),
				}
			}
		case VariadicPositional, VariadicKeyword:
			if p.HasDefault {
				return Signature{}, &DeclarationError{
					Subject: "signature",
					Reason:  fmt.Sprintf("catch-all parameter %q cannot carry a default", p.Name),
				}
			}
			current = s + 1
			continue
		}
		if p.HasDefault {
			if reason := mutableDefault(p.Default); reason != "" {
				return Signature{}, &DeclarationError{
					Subject: "signature",
					Reason:  fmt.Sprintf("parameter %q: %s", p.Name, reason),
				}
			}
		}
		current = s
	}

	return Signature{params: append([]Param(nil), params...)}, nil
}

// MustSignature is like NewSignature but panics on a declaration error.
// Intended for package-level declarations.
func MustSignature(params ...Param) Signature {
	sig, err := NewSignature(params...)
	if err != nil {
		panic(err)
	}
	return sig
}

// mutableDefault reports why a default value is rejected, or "" if it is fine.
// Sharing one container instance across calls is a well known hazard, so
// slice- and map-kinded defaults are refused outright.
func mutableDefault(def any) string {
	if def == nil {
		return ""
	}
	switch reflect.ValueOf(def).Kind() {
	case reflect.Slice:
		return "mutable default value (slice)"
	case reflect.Map:
		return "mutable default value (map)"
	}
	return ""
}

// Params returns a copy of the parameter list.
func (s Signature) Params() []Param {
	return append([]Param(nil), s.params...)
}

// NumParams returns the number of declared parameters, catch-alls included.
func (s Signature) NumParams() int { return len(s.params) }

// Positionals returns the positional parameters in declaration order.
func (s Signature) Positionals() []Param {
	var out []Param
	for _, p := range s.params {
		if p.Kind == Positional {
			out = append(out, p)
		}
	}
	return out
}

// KeywordOnlys returns the keyword-only parameters in declaration order.
func (s Signature) KeywordOnlys() []Param {
	var out []Param
	for _, p := range s.params {
		if p.Kind == KeywordOnly {
			out = append(out, p)
		}
	}
	return out
}

// VarArgs returns the variadic-positional catch-all, if declared.
func (s Signature) VarArgs() (Param, bool) {
	for _, p := range s.params {
		if p.Kind == VariadicPositional {
			return p, true
		}
	}
	return Param{}, false
}

// VarKw returns the variadic-keyword catch-all, if declared.
func (s Signature) VarKw() (Param, bool) {
	for _, p := range s.params {
		if p.Kind == VariadicKeyword {
			return p, true
		}
	}
	return Param{}, false
}

// Equal reports whether two signatures declare the same parameter shape:
// same names, kinds, order, and default presence. Default values themselves
// are not compared.
func (s Signature) Equal(other Signature) bool {
	if len(s.params) != len(other.params) {
		return false
	}
	for i, p := range s.params {
		q := other.params[i]
		if p.Name != q.Name || p.Kind != q.Kind || p.HasDefault != q.HasDefault {
			return false
		}
	}
	return true
}

// String renders the signature in call syntax, e.g. "(data, retries=?, *rest, **opts)".
func (s Signature) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, p := range s.params {
		if i > 0 {
			b.WriteString(", ")
		}
		switch p.Kind {
		case VariadicPositional:
			b.WriteString("*")
		case VariadicKeyword:
			b.WriteString("**")
		}
		b.WriteString(p.Name)
		if p.HasDefault {
			b.WriteString("=?")
		}
	}
	b.WriteString(")")
	return b.String()
}
