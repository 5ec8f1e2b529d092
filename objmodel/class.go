package objmodel

import "fmt"

// Binding distinguishes how a method receives its receiver.
type Binding int

const (
	// BindInstance methods receive the instance they were looked up on.
	BindInstance Binding = iota
	// BindClass methods are bound to the class itself; they receive a nil
	// instance and typically close over the class.
	BindClass
)

func (b Binding) String() string {
	if b == BindClass {
		return "class"
	}
	return "instance"
}

// MethodFunc is the body of a dynamic method. For BindClass methods recv is nil.
type MethodFunc func(recv *Object, args *BoundArgs) (any, error)

// Method is a named callable member of a Class.
type Method struct {
	Name    string
	Sig     Signature
	Binding Binding
	Func    MethodFunc
}

// Class is a dynamic type: a named method and attribute table with an
// optional parent. Identity is the *Class pointer; two classes may share a
// name without being the same class. Immutable once declared.
type Class struct {
	name    string
	parent  *Class
	methods map[string]*Method
	attrs   map[string]any
}

// ClassBuilder accumulates member declarations for a Class.
// Errors are collected and reported by Declare, so declarations chain freely.
type ClassBuilder struct {
	name    string
	parent  *Class
	methods []*Method
	attrs   map[string]any
	errs    []error
}

// NewClass starts declaring a class with the given name.
func NewClass(name string) *ClassBuilder {
	return &ClassBuilder{name: name, attrs: make(map[string]any)}
}

// Parent sets the parent class. Member lookup walks the parent chain.
func (b *ClassBuilder) Parent(parent *Class) *ClassBuilder {
	b.parent = parent
	return b
}

// Method declares an instance method. Parameters exclude the receiver.
func (b *ClassBuilder) Method(name string, fn MethodFunc, params ...Param) *ClassBuilder {
	return b.method(name, BindInstance, fn, params)
}

// ClassMethod declares a method bound to the class rather than an instance.
func (b *ClassBuilder) ClassMethod(name string, fn MethodFunc, params ...Param) *ClassBuilder {
	return b.method(name, BindClass, fn, params)
}

func (b *ClassBuilder) method(name string, binding Binding, fn MethodFunc, params []Param) *ClassBuilder {
	sig, err := NewSignature(params...)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("method %s.%s: %w", b.name, name, err))
		return b
	}
	b.methods = append(b.methods, &Method{Name: name, Sig: sig, Binding: binding, Func: fn})
	return b
}

// Attr declares an attribute slot with its initial value. Instances start
// with a copy of the declared slots.
func (b *ClassBuilder) Attr(name string, initial any) *ClassBuilder {
	b.attrs[name] = initial
	return b
}

// Declare validates the accumulated members and returns the Class.
func (b *ClassBuilder) Declare() (*Class, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	methods := make(map[string]*Method, len(b.methods))
	for _, m := range b.methods {
		if _, dup := methods[m.Name]; dup {
			return nil, &DeclarationError{
				Subject: "class " + b.name,
				Reason:  fmt.Sprintf("duplicate method %q", m.Name),
			}
		}
		if _, dup := b.attrs[m.Name]; dup {
			return nil, &DeclarationError{
				Subject: "class " + b.name,
				Reason:  fmt.Sprintf("member %q declared as both method and attribute", m.Name),
			}
		}
		methods[m.Name] = m
	}
	attrs := make(map[string]any, len(b.attrs))
	for k, v := range b.attrs {
		attrs[k] = v
	}
	return &Class{name: b.name, parent: b.parent, methods: methods, attrs: attrs}, nil
}

// MustDeclare is like Declare but panics on error. Intended for package-level
// class declarations.
func (b *ClassBuilder) MustDeclare() *Class {
	c, err := b.Declare()
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Parent returns the parent class, or nil.
func (c *Class) Parent() *Class { return c.parent }

// LookupMethod resolves a method by name along the parent chain.
func (c *Class) LookupMethod(name string) (*Method, bool) {
	for cls := c; cls != nil; cls = cls.parent {
		if m, ok := cls.methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// HasAttr reports whether the class declares an attribute slot by that name,
// directly or via a parent.
func (c *Class) HasAttr(name string) bool {
	for cls := c; cls != nil; cls = cls.parent {
		if _, ok := cls.attrs[name]; ok {
			return true
		}
	}
	return false
}

// MethodNames returns the names of all methods reachable on this class.
func (c *Class) MethodNames() []string {
	seen := make(map[string]bool)
	var names []string
	for cls := c; cls != nil; cls = cls.parent {
		for name := range cls.methods {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// New creates an instance. Attribute slots are initialized from the class
// declarations, nearest declaration winning along the parent chain.
func (c *Class) New() *Object {
	attrs := make(map[string]any)
	// Walk root-first so nearer classes overwrite inherited slots.
	var chain []*Class
	for cls := c; cls != nil; cls = cls.parent {
		chain = append(chain, cls)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].attrs {
			attrs[k] = v
		}
	}
	return &Object{class: c, attrs: attrs}
}

// Call invokes a BindClass method on the class itself.
func (c *Class) Call(name string, args *Args) (any, error) {
	m, ok := c.LookupMethod(name)
	if !ok {
		return nil, &MemberError{Class: c.name, Member: name}
	}
	if m.Binding != BindClass {
		return nil, &CallError{
			Method: c.name + "." + name,
			Reason: "instance method called on class",
		}
	}
	bound, err := BindArgs(m.Sig, args)
	if err != nil {
		return nil, &CallError{Method: c.name + "." + name, Reason: err.Error()}
	}
	return m.Func(nil, bound)
}

func (c *Class) String() string {
	return fmt.Sprintf("<class %s>", c.name)
}

// Object is an instance of a Class: a mutable attribute map plus the class's
// method table.
type Object struct {
	class *Class
	attrs map[string]any
}

// Class returns the object's class.
func (o *Object) Class() *Class { return o.class }

// Get reads an attribute.
func (o *Object) Get(name string) (any, error) {
	if o.class == NullClass {
		return Null, nil
	}
	if v, ok := o.attrs[name]; ok {
		return v, nil
	}
	return nil, &MemberError{Class: o.class.name, Member: name}
}

// Set writes an attribute. The object model itself accepts any name; the
// interface layer is what narrows the visible surface.
func (o *Object) Set(name string, value any) error {
	if o.class == NullClass {
		return nil
	}
	o.attrs[name] = value
	return nil
}

// Has reports whether the instance currently holds the attribute.
func (o *Object) Has(name string) bool {
	_, ok := o.attrs[name]
	return ok
}

// Call binds args against the method's signature and invokes it.
// Calling anything on the Null instance returns Null.
func (o *Object) Call(name string, args *Args) (any, error) {
	if o.class == NullClass {
		return Null, nil
	}
	m, ok := o.class.LookupMethod(name)
	if !ok {
		return nil, &MemberError{Class: o.class.name, Member: name}
	}
	bound, err := BindArgs(m.Sig, args)
	if err != nil {
		return nil, &CallError{Method: o.class.name + "." + name, Reason: err.Error()}
	}
	if m.Binding == BindClass {
		return m.Func(nil, bound)
	}
	return m.Func(o, bound)
}

func (o *Object) String() string {
	return fmt.Sprintf("<%s instance>", o.class.name)
}
