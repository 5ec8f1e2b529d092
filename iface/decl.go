package iface

import (
	"fmt"
	"sort"

	"github.com/ducktype/ducktype/objmodel"
)

// AttrDecl declares a named attribute slot an implementation must provide.
type AttrDecl struct {
	Name     string
	ReadOnly bool
}

// Interface is a declared contract: a named set of method signatures and
// attribute declarations, with optional parent interfaces. Immutable once
// declared. Identity is the *Interface pointer, not the name: two
// interfaces may share a name without being the same contract.
type Interface struct {
	name    string
	parents []*Interface

	// Flattened union of all members, parents included, computed once at
	// Declare time so every conformance walk sees a flat declaration set.
	methods map[string]objmodel.Signature
	attrs   map[string]AttrDecl
}

// Builder accumulates member declarations for an Interface.
type Builder struct {
	name    string
	parents []*Interface
	methods map[string]objmodel.Signature
	attrs   map[string]AttrDecl
	errs    []error
}

// New starts declaring an interface with the given name.
func New(name string) *Builder {
	return &Builder{
		name:    name,
		methods: make(map[string]objmodel.Signature),
		attrs:   make(map[string]AttrDecl),
	}
}

// Extends adds parent interfaces whose members are inherited.
func (b *Builder) Extends(parents ...*Interface) *Builder {
	b.parents = append(b.parents, parents...)
	return b
}

// Method declares a method. Parameters exclude the receiver. Mutable default
// values and malformed parameter order surface as a DeclarationError from
// Declare.
func (b *Builder) Method(name string, params ...objmodel.Param) *Builder {
	if _, dup := b.methods[name]; dup {
		b.errs = append(b.errs, &DeclarationError{
			Subject: "interface " + b.name,
			Reason:  fmt.Sprintf("duplicate method %q", name),
		})
		return b
	}
	sig, err := objmodel.NewSignature(params...)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("interface %s, method %s: %w", b.name, name, err))
		return b
	}
	b.methods[name] = sig
	return b
}

// Attr declares a plain attribute.
func (b *Builder) Attr(name string) *Builder {
	return b.attr(AttrDecl{Name: name})
}

// ReadOnlyAttr declares an attribute the proxy layer refuses to mutate.
func (b *Builder) ReadOnlyAttr(name string) *Builder {
	return b.attr(AttrDecl{Name: name, ReadOnly: true})
}

func (b *Builder) attr(decl AttrDecl) *Builder {
	if _, dup := b.attrs[decl.Name]; dup {
		b.errs = append(b.errs, &DeclarationError{
			Subject: "interface " + b.name,
			Reason:  fmt.Sprintf("duplicate attribute %q", decl.Name),
		})
		return b
	}
	b.attrs[decl.Name] = decl
	return b
}

// Declare validates the declaration and returns the Interface. The member set
// is flattened across parents here, once, so checks never re-walk the
// inheritance graph.
func (b *Builder) Declare() (*Interface, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	for name := range b.methods {
		if _, clash := b.attrs[name]; clash {
			return nil, &DeclarationError{
				Subject: "interface " + b.name,
				Reason:  fmt.Sprintf("member %q declared as both method and attribute", name),
			}
		}
	}

	flatMethods := make(map[string]objmodel.Signature)
	flatAttrs := make(map[string]AttrDecl)
	for _, parent := range b.parents {
		for name, sig := range parent.methods {
			// A conflict between parents is fine when the new interface
			// overrides the member itself.
			if _, overridden := b.methods[name]; overridden {
				continue
			}
			if prev, ok := flatMethods[name]; ok && !prev.Equal(sig) {
				return nil, &DeclarationError{
					Subject: "interface " + b.name,
					Reason: fmt.Sprintf("parents declare method %q with conflicting signatures %s and %s",
						name, prev, sig),
				}
			}
			flatMethods[name] = sig
		}
		for name, attr := range parent.attrs {
			if _, overridden := b.attrs[name]; overridden {
				continue
			}
			if prev, ok := flatAttrs[name]; ok && prev.ReadOnly != attr.ReadOnly {
				return nil, &DeclarationError{
					Subject: "interface " + b.name,
					Reason:  fmt.Sprintf("parents disagree on read-only marker for attribute %q", name),
				}
			}
			flatAttrs[name] = attr
		}
	}
	// Own members override inherited ones.
	for name, sig := range b.methods {
		if _, clash := flatAttrs[name]; clash {
			return nil, &DeclarationError{
				Subject: "interface " + b.name,
				Reason:  fmt.Sprintf("method %q collides with an inherited attribute", name),
			}
		}
		flatMethods[name] = sig
	}
	for name, attr := range b.attrs {
		if _, clash := flatMethods[name]; clash {
			return nil, &DeclarationError{
				Subject: "interface " + b.name,
				Reason:  fmt.Sprintf("attribute %q collides with an inherited method", name),
			}
		}
		flatAttrs[name] = attr
	}

	return &Interface{
		name:    b.name,
		parents: append([]*Interface(nil), b.parents...),
		methods: flatMethods,
		attrs:   flatAttrs,
	}, nil
}

// MustDeclare is like Declare but panics on error. Intended for package-level
// interface declarations, which is where interfaces normally live.
func (b *Builder) MustDeclare() *Interface {
	i, err := b.Declare()
	if err != nil {
		panic(err)
	}
	return i
}

// Name returns the interface name.
func (i *Interface) Name() string { return i.name }

// Parents returns the directly declared parent interfaces.
func (i *Interface) Parents() []*Interface {
	return append([]*Interface(nil), i.parents...)
}

// Method returns the declared signature for a method, parents included.
func (i *Interface) Method(name string) (objmodel.Signature, bool) {
	sig, ok := i.methods[name]
	return sig, ok
}

// Attr returns the declaration for an attribute, parents included.
func (i *Interface) Attr(name string) (AttrDecl, bool) {
	a, ok := i.attrs[name]
	return a, ok
}

// MethodNames returns all declared method names, sorted, parents included.
func (i *Interface) MethodNames() []string {
	names := make([]string, 0, len(i.methods))
	for name := range i.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AttrNames returns all declared attribute names, sorted, parents included.
func (i *Interface) AttrNames() []string {
	names := make([]string, 0, len(i.attrs))
	for name := range i.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// extendsTransitively reports whether i is other or declares other anywhere
// in its parent graph.
func (i *Interface) extendsTransitively(other *Interface) bool {
	if i == other {
		return true
	}
	for _, p := range i.parents {
		if p.extendsTransitively(other) {
			return true
		}
	}
	return false
}

func (i *Interface) String() string {
	return fmt.Sprintf("<interface %s>", i.name)
}
