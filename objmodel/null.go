package objmodel

// NullClass is the class of the null object. The conformance layer treats it
// as satisfying every interface, which makes it usable wherever a real
// implementation is not available yet (null-object pattern, test doubles).
var NullClass = NewClass("Null").MustDeclare()

// Null is the null-object singleton. Any method call on it returns Null, any
// attribute read returns Null, and attribute writes are swallowed.
var Null = NullClass.New()

// IsNull reports whether v is the null object (or its class).
func IsNull(v any) bool {
	switch t := v.(type) {
	case *Object:
		return t.class == NullClass
	case *Class:
		return t == NullClass
	}
	return false
}
