package iface

import (
	"fmt"
	"strings"

	"github.com/ducktype/ducktype/objmodel"
)

// DeclarationError is re-exported from objmodel: one error kind covers
// structural defects in signatures, classes, and interface declarations.
type DeclarationError = objmodel.DeclarationError

// InterfaceError reports misuse of the API itself: checking against something
// that is not an interface, or handing the checker a value it cannot resolve
// to a class.
type InterfaceError struct {
	Reason string
}

func (e *InterfaceError) Error() string { return e.Reason }

// FailureKind classifies a single unmet interface requirement.
type FailureKind int

const (
	// MissingMember: the class defines no member with the declared name.
	MissingMember FailureKind = iota
	// NotCallable: the interface declares a method but the class provides a
	// plain attribute under that name.
	NotCallable
	// SignatureMismatch: the member exists but its signature is not
	// call-compatible with the declaration.
	SignatureMismatch
	// NotDeclared: the class never declared the interface and the checker
	// requires explicit declaration.
	NotDeclared
)

func (k FailureKind) String() string {
	switch k {
	case MissingMember:
		return "missing member"
	case NotCallable:
		return "not callable"
	case SignatureMismatch:
		return "signature mismatch"
	case NotDeclared:
		return "not declared"
	}
	return fmt.Sprintf("FailureKind(%d)", int(k))
}

// Failure is one unmet requirement discovered during a conformance walk.
type Failure struct {
	Member string
	Kind   FailureKind
	Reason string
}

func (f Failure) String() string {
	if f.Member == "" {
		return f.Reason
	}
	return fmt.Sprintf("%s: %s", f.Member, f.Reason)
}

// ConformanceError reports that a class does not satisfy an interface. It
// always carries the complete set of failures found in one pass, never a
// partial list.
type ConformanceError struct {
	Interface string
	Class     string
	Failures  []Failure
}

func (e *ConformanceError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "class %s does not implement interface %s:", e.Class, e.Interface)
	for _, f := range e.Failures {
		b.WriteString("\n  ")
		b.WriteString(f.String())
	}
	return b.String()
}

// AttributeAccessError reports access to a member outside an interface's
// declared surface through a proxy.
type AttributeAccessError struct {
	Interface string
	Member    string
	Reason    string
}

func (e *AttributeAccessError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("interface %s: member %q: %s", e.Interface, e.Member, e.Reason)
	}
	return fmt.Sprintf("interface %s does not declare member %q", e.Interface, e.Member)
}
