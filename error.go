package resolver

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel causes carried by DependencyError. Test with errors.Is.
var (
	// ErrNotFound indicates a type with neither a registration nor a
	// constructible parameter chain.
	ErrNotFound = errors.New("dependency not found")

	// ErrMissingScope indicates a scoped-lifetime dependency was resolved
	// without a scope. The caller must supply one; there is no fallback to
	// process-wide sharing.
	ErrMissingScope = errors.New("missing scope")

	// ErrCycle indicates the dependency graph loops back on itself.
	ErrCycle = errors.New("cyclic dependency")
)

// DependencyError reports a failed registration-time or resolve-time
// operation. ReferencedType is the type being produced when the failure
// occurred, and Status captures the registry state at that moment.
type DependencyError struct {
	Message        string
	ReferencedType reflect.Type
	Status         string
	SourceError    error
}

func (e *DependencyError) Error() string {
	if e.SourceError == nil {
		return fmt.Sprintf("%s: %v", e.Message, e.ReferencedType)
	} else {
		return fmt.Sprintf("%s: %v (%v)", e.Message, e.ReferencedType, e.Unwrap().Error())
	}
}

func (e *DependencyError) Unwrap() error {
	return e.SourceError
}
