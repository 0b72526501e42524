package resolver

import "reflect"

// typeFor returns the reflect.Type for T without needing an instance of it.
// This works for interface types as well as concrete ones.
func typeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// serviceKey normalizes a type to its registry key. Produced instances are
// always shared references, so interface and pointer types key as
// themselves while any other type keys as a pointer to it. A request for a
// bare value type therefore resolves the shared pointer entry.
func serviceKey(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Interface || t.Kind() == reflect.Pointer {
		return t
	}
	return reflect.PointerTo(t)
}
