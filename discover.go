package resolver

import (
	"fmt"
	"reflect"
	"sync"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// aggregateInfo caches the discovered parameter list for a concrete type.
type aggregateInfo struct {
	params []reflect.Type
	err    error
}

// Global discovery cache to avoid repeated reflection work per type.
var globalDiscoveryCache sync.Map // map[reflect.Type]*aggregateInfo

// discoverParams returns the ordered parameter types required to construct
// the concrete type t. For a struct these are its field types in
// declaration order; every field must be exported for the instance to be
// assembled. Non-struct types have no parameters and construct as their
// zero value.
func discoverParams(t reflect.Type) ([]reflect.Type, error) {
	if cached, ok := globalDiscoveryCache.Load(t); ok {
		info := cached.(*aggregateInfo)
		return info.params, info.err
	}

	info := &aggregateInfo{}
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.PkgPath != "" {
				info.params = nil
				info.err = fmt.Errorf("type %v has unexported field %q and cannot be assembled: %w", t, field.Name, ErrNotFound)
				break
			}
			info.params = append(info.params, field.Type)
		}
	}

	actual, _ := globalDiscoveryCache.LoadOrStore(t, info)
	info = actual.(*aggregateInfo)
	return info.params, info.err
}

// ctorInfo holds the reflective breakdown of a registered constructor
// function: its parameter types, the produced service type, and whether it
// reports errors.
type ctorInfo struct {
	fn       reflect.Value
	params   []reflect.Type
	result   reflect.Type
	hasError bool
}

// analyzeConstructor validates a constructor function against the service
// key it is being registered under and returns its breakdown. A malformed
// constructor is a wiring mistake, so this panics rather than returning an
// error.
func analyzeConstructor(key reflect.Type, ctor any) *ctorInfo {
	ctorType := reflect.TypeOf(ctor)
	if ctorType == nil || ctorType.Kind() != reflect.Func {
		panic("constructor must be a function")
	}
	if ctorType.IsVariadic() {
		panic(fmt.Sprintf("constructor for %v must not be variadic", key))
	}

	info := &ctorInfo{fn: reflect.ValueOf(ctor)}

	switch ctorType.NumOut() {
	case 1:
		// service only
	case 2:
		if ctorType.Out(1) != errorType {
			panic(fmt.Sprintf("second constructor result for %v must be an error, got %v", key, ctorType.Out(1)))
		}
		info.hasError = true
	default:
		panic(fmt.Sprintf("constructor for %v must return a service and optionally an error", key))
	}

	info.result = ctorType.Out(0)
	if info.result.AssignableTo(errorType) {
		panic(fmt.Sprintf("first constructor result for %v must be the service value, not an error", key))
	}
	if info.result.Kind() != reflect.Interface && info.result.Kind() != reflect.Pointer {
		panic(fmt.Sprintf("constructor for %v must return a shared reference (pointer or interface), got %v", key, info.result))
	}
	if !info.result.AssignableTo(key) {
		panic(fmt.Sprintf("constructor result %v is not assignable to %v", info.result, key))
	}

	for i := 0; i < ctorType.NumIn(); i++ {
		info.params = append(info.params, ctorType.In(i))
	}

	return info
}
