package objmodel

import "fmt"

// DeclarationError reports a structural problem found while declaring a
// signature, class, or interface: mutable default values, malformed parameter
// order, duplicate members. It is raised at definition time, before any
// instance exists.
type DeclarationError struct {
	Subject string
	Reason  string
}

func (e *DeclarationError) Error() string {
	return fmt.Sprintf("declaring %s: %s", e.Subject, e.Reason)
}

// MemberError reports a failed member access on an object or class.
type MemberError struct {
	Class  string
	Member string
}

func (e *MemberError) Error() string {
	return fmt.Sprintf("class %s has no member %q", e.Class, e.Member)
}

// CallError reports an argument binding failure when invoking a method.
type CallError struct {
	Method string
	Reason string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("calling %s: %s", e.Method, e.Reason)
}
