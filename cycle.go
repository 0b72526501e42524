package resolver

import "reflect"

// resolutionState tracks the concrete types currently being constructed in
// one top-level resolve call so that cyclic graphs fail with an error
// instead of recursing until the stack overflows. A fresh state is created
// per resolve, so it needs no locking.
type resolutionState struct {
	inProcess map[reflect.Type]bool
}

func newResolutionState() *resolutionState {
	return &resolutionState{
		inProcess: map[reflect.Type]bool{},
	}
}

// enter marks t as being constructed and returns a function that unmarks
// it. If t is already in process the graph is cyclic.
func (st *resolutionState) enter(t reflect.Type, g *registry) (func(), error) {
	if st.inProcess[t] {
		return nil, &DependencyError{
			Message:        "cyclic dependency constructing type",
			ReferencedType: t,
			Status:         g.status(),
			SourceError:    ErrCycle,
		}
	}
	st.inProcess[t] = true

	return func() {
		delete(st.inProcess, t)
	}, nil
}
