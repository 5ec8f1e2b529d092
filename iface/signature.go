package iface

import (
	"fmt"

	"github.com/ducktype/ducktype/objmodel"
)

// Mismatch is one specific incompatibility between a declared method
// signature and a candidate implementation. The checker aggregates mismatches
// into a ConformanceError; they are never surfaced individually.
type Mismatch struct {
	Param  string
	Reason string
}

// compareSignatures checks a candidate implementation signature against the
// interface declaration and returns every incompatibility found.
//
// Rules:
//   - positional parameters must match in name and order, and the candidate
//     must accept every positional the declaration names;
//   - default presence must match per shared parameter (the default value
//     itself is never compared);
//   - keyword-only parameters are matched as a set: the candidate may not
//     omit any declared name;
//   - extra candidate parameters are fine only when optional; an extra
//     required parameter would make the candidate uncallable through the
//     declared contract;
//   - catch-alls declared by the interface must be present in the candidate,
//     kind for kind. The candidate may add catch-alls of its own.
//
// A candidate whose whole signature is a bare (*rest, **opts) pair is accepted
// against any declaration: it can absorb every call shape the contract allows.
func compareSignatures(decl, impl objmodel.Signature) []Mismatch {
	if acceptsAnything(impl) {
		return nil
	}

	var out []Mismatch

	declPos := decl.Positionals()
	implPos := impl.Positionals()
	for idx, dp := range declPos {
		if idx >= len(implPos) {
			out = append(out, Mismatch{
				Param:  dp.Name,
				Reason: fmt.Sprintf("missing positional parameter %q", dp.Name),
			})
			continue
		}
		ip := implPos[idx]
		if ip.Name != dp.Name {
			out = append(out, Mismatch{
				Param:  dp.Name,
				Reason: fmt.Sprintf("positional parameter %d is named %q, want %q", idx, ip.Name, dp.Name),
			})
			continue
		}
		if ip.HasDefault != dp.HasDefault {
			out = append(out, defaultMismatch(dp))
		}
	}
	for _, ip := range implPos[min(len(declPos), len(implPos)):] {
		if !ip.HasDefault {
			out = append(out, Mismatch{
				Param:  ip.Name,
				Reason: fmt.Sprintf("extra required positional parameter %q", ip.Name),
			})
		}
	}

	implKw := make(map[string]objmodel.Param)
	for _, p := range impl.KeywordOnlys() {
		implKw[p.Name] = p
	}
	declKw := make(map[string]bool)
	for _, dp := range decl.KeywordOnlys() {
		declKw[dp.Name] = true
		ip, ok := implKw[dp.Name]
		if !ok {
			out = append(out, Mismatch{
				Param:  dp.Name,
				Reason: fmt.Sprintf("missing keyword-only parameter %q", dp.Name),
			})
			continue
		}
		if ip.HasDefault != dp.HasDefault {
			out = append(out, defaultMismatch(dp))
		}
	}
	for _, ip := range impl.KeywordOnlys() {
		if !declKw[ip.Name] && !ip.HasDefault {
			out = append(out, Mismatch{
				Param:  ip.Name,
				Reason: fmt.Sprintf("extra required keyword-only parameter %q", ip.Name),
			})
		}
	}

	if _, ok := decl.VarArgs(); ok {
		if _, has := impl.VarArgs(); !has {
			out = append(out, Mismatch{
				Param:  "*",
				Reason: "missing variadic-positional catch-all",
			})
		}
	}
	if _, ok := decl.VarKw(); ok {
		if _, has := impl.VarKw(); !has {
			out = append(out, Mismatch{
				Param:  "**",
				Reason: "missing variadic-keyword catch-all",
			})
		}
	}

	return out
}

func defaultMismatch(dp objmodel.Param) Mismatch {
	if dp.HasDefault {
		return Mismatch{
			Param:  dp.Name,
			Reason: fmt.Sprintf("parameter %q must accept a default value", dp.Name),
		}
	}
	return Mismatch{
		Param:  dp.Name,
		Reason: fmt.Sprintf("parameter %q must not carry a default value", dp.Name),
	}
}

// acceptsAnything reports whether the signature is a bare catch-all pair.
func acceptsAnything(sig objmodel.Signature) bool {
	params := sig.Params()
	if len(params) != 2 {
		return false
	}
	return params[0].Kind == objmodel.VariadicPositional &&
		params[1].Kind == objmodel.VariadicKeyword
}
