// Package objmodel implements a small dynamically-typed object system:
// classes declared at runtime as method and attribute tables, instances with
// mutable attribute maps, and call-time argument binding against declared
// signatures (positional, keyword-only, variadic, defaulted parameters).
//
// It exists to host the interface discipline in the iface package, which
// checks classes against declared contracts and narrows instances behind
// proxies. Structural problems in declarations (mutable default values,
// malformed parameter order) fail at declaration time with a
// DeclarationError rather than at first call.
package objmodel
