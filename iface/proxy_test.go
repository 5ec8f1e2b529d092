package iface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducktype/ducktype/objmodel"
)

// storageFixture builds an interface declaring only part of what the class
// provides, plus a conformant instance. This is the narrowing scenario.
func storageFixture(t *testing.T) (*Checker, *Interface, *objmodel.Object) {
	t.Helper()
	c := NewChecker(Options{RequiresDeclaration: false})
	i := New("IDataSaver").
		Method("save", objmodel.Pos("data")).
		Attr("target").
		ReadOnlyAttr("format").
		MustDeclare()
	cls := objmodel.NewClass("JSONSaver").
		Method("save", func(recv *objmodel.Object, args *objmodel.BoundArgs) (any, error) {
			data, _ := args.Get("data")
			if err := recv.Set("last_saved", data); err != nil {
				return nil, err
			}
			return "saved", nil
		}, objmodel.Pos("data")).
		Method("load", func(recv *objmodel.Object, args *objmodel.BoundArgs) (any, error) {
			return recv.Get("last_saved")
		}, objmodel.Pos("path")).
		Attr("target", "/tmp/out.json").
		Attr("format", "json").
		MustDeclare()
	return c, i, cls.New()
}

func TestProxy_DelegatesDeclaredMethod(t *testing.T) {
	c, i, obj := storageFixture(t)
	p, err := c.NewProxy(i, obj)
	require.NoError(t, err)

	got, err := p.Call("save", map[string]any{"a": 1})
	require.NoError(t, err)
	// The result comes back unchanged from the underlying method.
	assert.Equal(t, "saved", got)

	// The call really reached the instance.
	v, err := obj.Get("last_saved")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, v)
}

func TestProxy_RejectsUndeclaredMember(t *testing.T) {
	c, i, obj := storageFixture(t)
	p, err := c.NewProxy(i, obj)
	require.NoError(t, err)

	// The instance defines load, but the interface does not declare it:
	// the proxy's entire point is refusing such access.
	_, err = p.Call("load", "/tmp/out.json")
	var accessErr *AttributeAccessError
	require.ErrorAs(t, err, &accessErr)
	assert.Equal(t, "load", accessErr.Member)
	assert.Equal(t, "IDataSaver", accessErr.Interface)

	_, err = p.Get("last_saved")
	require.ErrorAs(t, err, &accessErr)

	err = p.Set("last_saved", 1)
	require.ErrorAs(t, err, &accessErr)
}

func TestProxy_AttributeReadAndWrite(t *testing.T) {
	c, i, obj := storageFixture(t)
	p, err := c.NewProxy(i, obj)
	require.NoError(t, err)

	v, err := p.Get("target")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out.json", v)

	require.NoError(t, p.Set("target", "/tmp/other.json"))
	v, err = obj.Get("target")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.json", v)
}

func TestProxy_ReadOnlyAttributeRefusesWrite(t *testing.T) {
	c, i, obj := storageFixture(t)
	p, err := c.NewProxy(i, obj)
	require.NoError(t, err)

	v, err := p.Get("format")
	require.NoError(t, err)
	assert.Equal(t, "json", v)

	err = p.Set("format", "xml")
	var accessErr *AttributeAccessError
	require.ErrorAs(t, err, &accessErr)
	assert.Contains(t, accessErr.Error(), "read-only")

	// Writing through the instance is still possible; the proxy narrows
	// its own surface, nothing more.
	assert.NoError(t, obj.Set("format", "xml"))
}

func TestProxy_RequiresConformance(t *testing.T) {
	c := NewChecker(Options{RequiresDeclaration: false})
	i := New("IDataSaver").Method("save", objmodel.Pos("data")).MustDeclare()
	empty := objmodel.NewClass("Empty").MustDeclare()

	_, err := c.NewProxy(i, empty.New())
	var confErr *ConformanceError
	require.ErrorAs(t, err, &confErr)
}

func TestProxy_CallArgsWithKeywords(t *testing.T) {
	c := NewChecker(Options{RequiresDeclaration: false})
	i := New("IRunner").Method("run", objmodel.Pos("task"), objmodel.KwDefault("retries", 0)).MustDeclare()
	cls := objmodel.NewClass("Runner").
		Method("run", func(recv *objmodel.Object, args *objmodel.BoundArgs) (any, error) {
			task, _ := args.Get("task")
			retries, _ := args.Get("retries")
			return []any{task, retries}, nil
		}, objmodel.Pos("task"), objmodel.KwDefault("retries", 0)).
		MustDeclare()

	p, err := c.NewProxy(i, cls.New())
	require.NoError(t, err)

	got, err := p.CallArgs("run", objmodel.NewArgs("build").Kw("retries", 3))
	require.NoError(t, err)
	assert.Equal(t, []any{"build", 3}, got)
}

func TestProxy_Unwrap(t *testing.T) {
	c, i, obj := storageFixture(t)
	p, err := c.NewProxy(i, obj)
	require.NoError(t, err)

	assert.Same(t, obj, p.Unwrap())
	assert.Same(t, i, p.Interface())

	// Checks against the proxy resolve to the wrapped instance's class.
	assert.True(t, c.IsImplementation(p, i))
}

func TestProxy_FreshWrapperPerCall(t *testing.T) {
	c, i, obj := storageFixture(t)
	p1, err := c.NewProxy(i, obj)
	require.NoError(t, err)
	p2, err := c.NewProxy(i, obj)
	require.NoError(t, err)
	assert.NotSame(t, p1, p2)
}

func TestInterfaceWrap_LegacyConvention(t *testing.T) {
	prev := SetDefault(NewChecker(Options{RequiresDeclaration: false}))
	t.Cleanup(func() { SetDefault(prev) })

	_, i, obj := storageFixture(t)

	// Invoking the declaration itself is the old way to build a proxy;
	// behavior is identical to NewProxy.
	p, err := i.Wrap(obj)
	require.NoError(t, err)
	got, err := p.Call("save", "payload")
	require.NoError(t, err)
	assert.Equal(t, "saved", got)

	// Wrapping an already wrapped instance returns the same proxy.
	again, err := i.Wrap(p)
	require.NoError(t, err)
	assert.Same(t, p, again)
}

func TestInterfaceWrap_RewrapsForDifferentInterface(t *testing.T) {
	prev := SetDefault(NewChecker(Options{RequiresDeclaration: false}))
	t.Cleanup(func() { SetDefault(prev) })

	_, i, obj := storageFixture(t)
	loader := New("ILoader").Method("load", objmodel.Pos("path")).MustDeclare()

	p, err := i.Wrap(obj)
	require.NoError(t, err)

	// Wrapping a proxy with a different interface re-targets the underlying
	// instance, not the proxy.
	lp, err := loader.Wrap(p)
	require.NoError(t, err)
	assert.Same(t, obj, lp.Unwrap())

	_, err = lp.Call("save", 1)
	var accessErr *AttributeAccessError
	require.ErrorAs(t, err, &accessErr)
}

func TestInterfaceWrap_RejectsNonInstances(t *testing.T) {
	i := New("IX").Method("x").MustDeclare()

	var ifaceErr *InterfaceError
	_, err := i.Wrap(nil)
	require.ErrorAs(t, err, &ifaceErr)
	assert.Contains(t, err.Error(), "instantiate")

	_, err = i.Wrap("not an object")
	require.ErrorAs(t, err, &ifaceErr)
}

func TestProxy_NullTarget(t *testing.T) {
	c := NewChecker(DefaultOptions())
	i := New("IDataSaver").Method("save", objmodel.Pos("data")).MustDeclare()

	p, err := c.NewProxy(i, objmodel.Null)
	require.NoError(t, err)
	got, err := p.Call("save", 1)
	require.NoError(t, err)
	assert.True(t, objmodel.IsNull(got))
}
