package iface

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ducktype/ducktype/objmodel"
)

// Options configures a Checker.
type Options struct {
	// RequiresDeclaration rejects classes that are structurally conformant
	// but were never tagged via Implements. This catches accidental duck-type
	// matches; turn it off to accept purely structural conformance.
	RequiresDeclaration bool

	// Logger receives debug events (verdict computed, cache hit, cache
	// cleared). Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns the stabilized defaults: explicit declaration
// required.
func DefaultOptions() Options {
	return Options{RequiresDeclaration: true}
}

// Verdict is the cached outcome of one (interface, class) conformance walk.
type Verdict struct {
	Conformant bool
	Failures   []Failure
}

type pair struct {
	iface *Interface
	class *objmodel.Class
}

// Checker decides and caches whether classes satisfy interfaces.
//
// Verdicts are memoized per (interface identity, class identity) and never
// expire unless ClearCache is called. Reads take a shared lock; first
// computation is deduplicated through singleflight so a verdict is computed
// at most once per pair even when many goroutines race on first use.
type Checker struct {
	opts   Options
	logger *slog.Logger

	mu       sync.RWMutex
	verdicts map[pair]*Verdict
	declared map[*objmodel.Class]map[*Interface]bool

	flight singleflight.Group
}

// NewChecker creates a Checker with the given options.
func NewChecker(opts Options) *Checker {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)}))
	}
	return &Checker{
		opts:     opts,
		logger:   logger,
		verdicts: make(map[pair]*Verdict),
		declared: make(map[*objmodel.Class]map[*Interface]bool),
	}
}

// Implements tags a class as implementing the given interfaces and verifies
// each claim immediately. On failure the claims are rolled back and the first
// ConformanceError is returned, carrying every unmet requirement for that
// interface.
//
// Tagging is also the way to declare, from outside a class, that it satisfies
// an interface, which is useful when the class comes from code you cannot touch.
func (c *Checker) Implements(class *objmodel.Class, interfaces ...*Interface) error {
	if class == nil {
		return &InterfaceError{Reason: "Implements: nil class"}
	}
	c.tag(class, interfaces)
	for _, i := range interfaces {
		if err := c.AssertImplements(class, i); err != nil {
			c.untag(class, interfaces)
			return err
		}
	}
	return nil
}

// ImplementsNoCheck tags a class without verifying. The claim is checked
// lazily on first real use instead.
func (c *Checker) ImplementsNoCheck(class *objmodel.Class, interfaces ...*Interface) {
	c.tag(class, interfaces)
}

// tag registers claims. Registration shares the cache's write path: any
// previously cached verdict for the affected pairs is dropped so a stale
// "not declared" outcome cannot survive the tagging.
func (c *Checker) tag(class *objmodel.Class, interfaces []*Interface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	claims := c.declared[class]
	if claims == nil {
		claims = make(map[*Interface]bool)
		c.declared[class] = claims
	}
	for _, i := range interfaces {
		claims[i] = true
		delete(c.verdicts, pair{iface: i, class: class})
	}
}

func (c *Checker) untag(class *objmodel.Class, interfaces []*Interface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	claims := c.declared[class]
	for _, i := range interfaces {
		delete(claims, i)
		delete(c.verdicts, pair{iface: i, class: class})
	}
	if len(claims) == 0 {
		delete(c.declared, class)
	}
}

// IsImplementation reports whether v (a *objmodel.Class, *objmodel.Object, or
// *Proxy) satisfies the interface. It never returns an error for a mismatch;
// unresolvable values are simply not implementations.
func (c *Checker) IsImplementation(v any, i *Interface) bool {
	if i == nil {
		return false
	}
	class, err := classOf(v)
	if err != nil {
		return false
	}
	return c.verdict(i, class).Conformant
}

// IsImplementationOfAny reports whether v satisfies any of the interfaces.
func (c *Checker) IsImplementationOfAny(v any, interfaces ...*Interface) bool {
	for _, i := range interfaces {
		if c.IsImplementation(v, i) {
			return true
		}
	}
	return false
}

// AssertImplements verifies that v satisfies the interface. On failure it
// returns a ConformanceError enumerating every unmet method and attribute in
// one pass. The verdict, positive or negative, is cached for reuse.
func (c *Checker) AssertImplements(v any, i *Interface) error {
	if i == nil {
		return &InterfaceError{Reason: "AssertImplements: nil interface"}
	}
	class, err := classOf(v)
	if err != nil {
		return err
	}
	verdict := c.verdict(i, class)
	if verdict.Conformant {
		return nil
	}
	return &ConformanceError{
		Interface: i.Name(),
		Class:     class.Name(),
		Failures:  verdict.Failures,
	}
}

// Declarations returns the interfaces the class (or any of its ancestors) has
// been tagged with, expanded with their parent interfaces.
func (c *Checker) Declarations(class *objmodel.Class) []*Interface {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[*Interface]bool)
	var out []*Interface
	var add func(i *Interface)
	add = func(i *Interface) {
		if seen[i] {
			return
		}
		seen[i] = true
		out = append(out, i)
		for _, p := range i.Parents() {
			add(p)
		}
	}
	for cls := class; cls != nil; cls = cls.Parent() {
		for i := range c.declared[cls] {
			add(i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name() < out[b].Name() })
	return out
}

// ClearCache drops every cached verdict and memoized declaration lookup as a
// unit. Call it whenever classes or interfaces are redefined under the same
// identity (test suites that rebuild classes per case, interactive reloads),
// otherwise verdicts from the previous generation leak forward.
func (c *Checker) ClearCache() {
	c.mu.Lock()
	c.verdicts = make(map[pair]*Verdict)
	c.mu.Unlock()
	c.logger.Debug("conformance cache cleared")
}

// verdict returns the cached verdict for the pair, computing it at most once.
func (c *Checker) verdict(i *Interface, class *objmodel.Class) *Verdict {
	key := pair{iface: i, class: class}

	c.mu.RLock()
	v, ok := c.verdicts[key]
	c.mu.RUnlock()
	if ok {
		c.logger.Debug("verdict cache hit", "interface", i.Name(), "class", class.Name())
		return v
	}

	out, _, _ := c.flight.Do(fmt.Sprintf("%p/%p", i, class), func() (any, error) {
		c.mu.RLock()
		v, ok := c.verdicts[key]
		c.mu.RUnlock()
		if ok {
			return v, nil
		}
		v = c.compute(i, class)
		c.mu.Lock()
		c.verdicts[key] = v
		c.mu.Unlock()
		c.logger.Debug("verdict computed",
			"interface", i.Name(), "class", class.Name(), "conformant", v.Conformant)
		return v, nil
	})
	return out.(*Verdict)
}

// compute performs the full conformance walk. All failures are aggregated so
// one check surfaces every defect at once.
func (c *Checker) compute(i *Interface, class *objmodel.Class) *Verdict {
	// The null object satisfies every interface.
	if class == objmodel.NullClass {
		return &Verdict{Conformant: true}
	}

	if c.opts.RequiresDeclaration && !c.isDeclared(class, i) {
		return &Verdict{Failures: []Failure{{
			Kind: NotDeclared,
			Reason: fmt.Sprintf("class %s does not declare that it implements interface %s",
				class.Name(), i.Name()),
		}}}
	}

	var failures []Failure
	for _, name := range i.MethodNames() {
		decl, _ := i.Method(name)
		method, ok := class.LookupMethod(name)
		if !ok {
			if class.HasAttr(name) {
				failures = append(failures, Failure{
					Member: name,
					Kind:   NotCallable,
					Reason: fmt.Sprintf("member %q is an attribute, interface declares a method %s", name, decl),
				})
			} else {
				failures = append(failures, Failure{
					Member: name,
					Kind:   MissingMember,
					Reason: fmt.Sprintf("method %q is missing (interface declares %s)", name, decl),
				})
			}
			continue
		}
		// BindClass members satisfy instance-method declarations: the
		// receiver is excluded from signatures either way.
		for _, m := range compareSignatures(decl, method.Sig) {
			failures = append(failures, Failure{
				Member: name,
				Kind:   SignatureMismatch,
				Reason: fmt.Sprintf("method %q: %s (interface declares %s, class declares %s)",
					name, m.Reason, decl, method.Sig),
			})
		}
	}

	for _, name := range i.AttrNames() {
		if class.HasAttr(name) {
			continue
		}
		// A same-named method also satisfies attribute presence.
		if _, ok := class.LookupMethod(name); ok {
			continue
		}
		failures = append(failures, Failure{
			Member: name,
			Kind:   MissingMember,
			Reason: fmt.Sprintf("attribute %q is missing", name),
		})
	}

	return &Verdict{Conformant: len(failures) == 0, Failures: failures}
}

// isDeclared reports whether the class (or an ancestor) was tagged with the
// interface or with any interface that extends it.
func (c *Checker) isDeclared(class *objmodel.Class, i *Interface) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for cls := class; cls != nil; cls = cls.Parent() {
		for claimed := range c.declared[cls] {
			if claimed.extendsTransitively(i) {
				return true
			}
		}
	}
	return false
}

// classOf resolves a value to the class the conformance walk runs against.
func classOf(v any) (*objmodel.Class, error) {
	switch t := v.(type) {
	case *objmodel.Class:
		return t, nil
	case *objmodel.Object:
		return t.Class(), nil
	case *Proxy:
		return t.Unwrap().Class(), nil
	case nil:
		return nil, &InterfaceError{Reason: "cannot check nil against an interface"}
	}
	return nil, &InterfaceError{Reason: fmt.Sprintf("cannot check %T against an interface", v)}
}
