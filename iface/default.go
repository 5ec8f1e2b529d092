package iface

import (
	"sync/atomic"

	"github.com/ducktype/ducktype/objmodel"
)

// The process-wide default checker. Most programs want exactly one verdict
// cache; the package-level functions below serve that case. Programs that
// need isolated caches (multi-tenant embedding, parallel test shards) create
// their own Checker and ignore these.
var defaultChecker atomic.Pointer[Checker]

func init() {
	defaultChecker.Store(NewChecker(DefaultOptions()))
}

// Default returns the process-wide checker.
func Default() *Checker {
	return defaultChecker.Load()
}

// SetDefault replaces the process-wide checker, returning the previous one.
// Useful for installing a checker with RequiresDeclaration disabled or with a
// logger attached.
func SetDefault(c *Checker) *Checker {
	return defaultChecker.Swap(c)
}

// Implements tags a class on the default checker. See Checker.Implements.
func Implements(class *objmodel.Class, interfaces ...*Interface) error {
	return Default().Implements(class, interfaces...)
}

// ImplementsNoCheck tags a class on the default checker without verifying.
func ImplementsNoCheck(class *objmodel.Class, interfaces ...*Interface) {
	Default().ImplementsNoCheck(class, interfaces...)
}

// IsImplementation queries the default checker. See Checker.IsImplementation.
func IsImplementation(v any, i *Interface) bool {
	return Default().IsImplementation(v, i)
}

// AssertImplements queries the default checker. See Checker.AssertImplements.
func AssertImplements(v any, i *Interface) error {
	return Default().AssertImplements(v, i)
}

// NewProxy builds a proxy using the default checker. See Checker.NewProxy.
func NewProxy(i *Interface, obj *objmodel.Object) (*Proxy, error) {
	return Default().NewProxy(i, obj)
}

// ClearCache clears the default checker's verdict cache. Test lifecycles that
// redefine classes under the same identity must call this between
// generations.
func ClearCache() {
	Default().ClearCache()
}
