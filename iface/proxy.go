package iface

import (
	"fmt"

	"github.com/ducktype/ducktype/objmodel"
)

// Proxy is a restricted view over one instance, scoped to exactly one
// interface. Every declared method forwards to the underlying instance;
// every declared attribute reads (and, unless read-only, writes) through.
// Anything outside the declared surface fails with an AttributeAccessError,
// even when the underlying instance defines it. Narrowing the visible
// surface is the proxy's entire point.
//
// Proxies are ephemeral: each NewProxy call builds a fresh wrapper, nothing
// is cached, and the proxy owns nothing beyond a reference to its target.
type Proxy struct {
	iface   *Interface
	target  *objmodel.Object
	methods map[string]func(args *objmodel.Args) (any, error)
}

// NewProxy builds a proxy for obj scoped to the interface, using the
// checker's cached verdict. Non-conformant targets fail with the same
// ConformanceError AssertImplements would return.
func (c *Checker) NewProxy(i *Interface, obj *objmodel.Object) (*Proxy, error) {
	if i == nil {
		return nil, &InterfaceError{Reason: "NewProxy: nil interface"}
	}
	if obj == nil {
		return nil, &InterfaceError{Reason: "NewProxy: nil instance"}
	}
	if err := c.AssertImplements(obj, i); err != nil {
		return nil, err
	}
	return buildProxy(i, obj), nil
}

// buildProxy constructs the fixed per-proxy dispatch table. A name resolves
// through the table or not at all.
func buildProxy(i *Interface, obj *objmodel.Object) *Proxy {
	methods := make(map[string]func(args *objmodel.Args) (any, error), len(i.methods))
	for name := range i.methods {
		methods[name] = func(args *objmodel.Args) (any, error) {
			return obj.Call(name, args)
		}
	}
	return &Proxy{iface: i, target: obj, methods: methods}
}

// Call invokes a declared method with positional arguments.
func (p *Proxy) Call(name string, positional ...any) (any, error) {
	return p.CallArgs(name, objmodel.NewArgs(positional...))
}

// CallArgs invokes a declared method with a full argument pack.
func (p *Proxy) CallArgs(name string, args *objmodel.Args) (any, error) {
	fn, ok := p.methods[name]
	if !ok {
		return nil, &AttributeAccessError{Interface: p.iface.Name(), Member: name}
	}
	return fn(args)
}

// Get reads a declared attribute from the underlying instance.
func (p *Proxy) Get(name string) (any, error) {
	if _, ok := p.iface.Attr(name); !ok {
		return nil, &AttributeAccessError{Interface: p.iface.Name(), Member: name}
	}
	return p.target.Get(name)
}

// Set writes a declared attribute on the underlying instance. Read-only
// attributes refuse mutation through the proxy.
func (p *Proxy) Set(name string, value any) error {
	decl, ok := p.iface.Attr(name)
	if !ok {
		return &AttributeAccessError{Interface: p.iface.Name(), Member: name}
	}
	if decl.ReadOnly {
		return &AttributeAccessError{
			Interface: p.iface.Name(),
			Member:    name,
			Reason:    "attribute is read-only",
		}
	}
	return p.target.Set(name, value)
}

// Interface returns the contract this proxy is scoped to.
func (p *Proxy) Interface() *Interface { return p.iface }

// Unwrap returns the underlying instance.
func (p *Proxy) Unwrap() *objmodel.Object { return p.target }

func (p *Proxy) String() string {
	return fmt.Sprintf("<proxy %s over %s>", p.iface.Name(), p.target.Class().Name())
}

// Wrap is the legacy calling convention: invoking the interface declaration
// itself with an instance yields the equivalent proxy. Functionally identical
// to NewProxy against the default checker; kept for callers that grew up on
// the old style. Wrapping a proxy already scoped to this interface returns it
// unchanged.
func (i *Interface) Wrap(v any) (*Proxy, error) {
	switch t := v.(type) {
	case *Proxy:
		if t.iface == i {
			return t, nil
		}
		return i.Wrap(t.Unwrap())
	case *objmodel.Object:
		return Default().NewProxy(i, t)
	case nil:
		return nil, &InterfaceError{Reason: "cannot instantiate an interface"}
	}
	return nil, &InterfaceError{Reason: fmt.Sprintf("cannot wrap %T as interface %s", v, i.name)}
}
