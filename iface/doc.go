// Package iface retrofits a runtime interface discipline onto the objmodel
// dynamic object system.
//
// Declare an interface:
//
//	var IDataSaver = iface.New("IDataSaver").
//		Method("save", objmodel.Pos("data")).
//		MustDeclare()
//
// Tag an implementation class (checked immediately):
//
//	jsonSaver := objmodel.NewClass("JSONSaver").
//		Method("save", saveFn, objmodel.Pos("data")).
//		MustDeclare()
//	if err := iface.Implements(jsonSaver, IDataSaver); err != nil { ... }
//
// Query and narrow:
//
//	iface.IsImplementation(obj, IDataSaver)  // bool, never errors
//	iface.AssertImplements(obj, IDataSaver)  // *ConformanceError with every defect
//	p, _ := iface.NewProxy(IDataSaver, obj)  // only declared members visible
//	p.Call("save", payload)
//
// Conformance is structural: method names, parameter names, kinds, and
// default presence. Argument types are never compared. Verdicts are cached per
// (interface, class) pair for the life of the process; ClearCache resets the
// cache as a unit when classes are redefined.
package iface
