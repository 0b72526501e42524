package resolver

import (
	"context"
	"reflect"

	"github.com/gburgyan/go-timing"
	log "github.com/sirupsen/logrus"
)

// registration pairs a registry key with its descriptor, preserving the
// order in which services were added.
type registration struct {
	key  reflect.Type
	desc descriptor
}

// registry is the append-only, type-indexed collection of descriptors that
// drives resolution. It backs both the Resolver and each Scope's cache.
// Registrations only ever accumulate; re-registering a key replaces it in
// the index while instances produced from the earlier descriptor remain
// valid in their holders' hands.
//
// A registry is not safe for concurrent use; callers serialize access.
type registry struct {
	entries []registration
	index   map[reflect.Type]descriptor

	timingCtx context.Context
	trace     *log.Logger
}

func newRegistry() *registry {
	return &registry{
		index: map[reflect.Type]descriptor{},
	}
}

func (g *registry) add(key reflect.Type, d descriptor) {
	g.entries = append(g.entries, registration{key: key, desc: d})
	g.index[key] = d
	if g.trace != nil {
		g.trace.Debugf("registered %v as %v %v", d.concrete(), key, d.lifetime())
	}
}

func (g *registry) find(key reflect.Type) (descriptor, bool) {
	d, ok := g.index[key]
	return d, ok
}

func (g *registry) size() int {
	return len(g.index)
}

// resolveKey is the core of the resolution engine. A directly registered
// key delegates to its descriptor's production logic. Any other key is
// treated as a concrete type to be constructed directly, which only works
// for pointer-to-struct requests; everything else has no constructible
// chain and fails.
func (g *registry) resolveKey(key reflect.Type, s *Scope, st *resolutionState) (reflect.Value, error) {
	if d, ok := g.index[key]; ok {
		return d.value(g, s, st)
	}

	if key.Kind() == reflect.Pointer && key.Elem().Kind() == reflect.Struct {
		return g.constructConcrete(key.Elem(), s, st)
	}

	return reflect.Value{}, &DependencyError{
		Message:        "no registration or constructible chain for type",
		ReferencedType: key,
		Status:         g.status(),
		SourceError:    ErrNotFound,
	}
}

// constructConcrete builds a fresh instance of the concrete type t,
// resolving each discovered parameter against this registry and threading
// the scope through for nested scoped dependencies. Non-struct types
// produce their zero value; registering one explicitly is the opt-in for
// that behavior.
func (g *registry) constructConcrete(t reflect.Type, s *Scope, st *resolutionState) (reflect.Value, error) {
	exit, err := st.enter(t, g)
	if err != nil {
		return reflect.Value{}, err
	}
	defer exit()

	if g.timingCtx != nil {
		_, complete := timing.Start(g.timingCtx, "construct:"+t.String())
		defer complete()
	}
	if g.trace != nil {
		g.trace.Debugf("constructing %v", t)
	}

	instance := reflect.New(t)
	if t.Kind() != reflect.Struct {
		return instance, nil
	}

	params, err := discoverParams(t)
	if err != nil {
		return reflect.Value{}, &DependencyError{
			Message:        "cannot discover constructor parameters",
			ReferencedType: t,
			Status:         g.status(),
			SourceError:    err,
		}
	}

	for i, paramType := range params {
		resolved, err := g.resolveKey(serviceKey(paramType), s, st)
		if err != nil {
			return reflect.Value{}, err
		}
		setParam(instance.Elem().Field(i), resolved)
	}

	return instance, nil
}

// setParam assigns a resolved instance to a constructor parameter. Pointer
// and interface parameters receive the shared reference; bare value
// parameters receive a copy of the referenced value.
func setParam(param reflect.Value, resolved reflect.Value) {
	if resolved.Type().AssignableTo(param.Type()) {
		param.Set(resolved)
	} else {
		param.Set(resolved.Elem())
	}
}

// invokeConstructor calls a registered constructor function, resolving each
// of its parameters recursively against this registry.
func (g *registry) invokeConstructor(info *ctorInfo, s *Scope, st *resolutionState) (reflect.Value, error) {
	exit, err := st.enter(info.result, g)
	if err != nil {
		return reflect.Value{}, err
	}
	defer exit()

	if g.timingCtx != nil {
		_, complete := timing.Start(g.timingCtx, "construct:"+info.result.String())
		defer complete()
	}
	if g.trace != nil {
		g.trace.Debugf("invoking constructor for %v", info.result)
	}

	params := make([]reflect.Value, len(info.params))
	for i, paramType := range info.params {
		resolved, err := g.resolveKey(serviceKey(paramType), s, st)
		if err != nil {
			return reflect.Value{}, err
		}
		if resolved.Type().AssignableTo(paramType) {
			params[i] = resolved
		} else {
			params[i] = resolved.Elem()
		}
	}

	results := info.fn.Call(params)

	if info.hasError && !results[1].IsNil() {
		return reflect.Value{}, &DependencyError{
			Message:        "error running constructor",
			ReferencedType: info.result,
			Status:         g.status(),
			SourceError:    results[1].Interface().(error),
		}
	}

	out := results[0]
	if out.IsNil() {
		return reflect.Value{}, &DependencyError{
			Message:        "constructor returned nil result",
			ReferencedType: info.result,
			Status:         g.status(),
			SourceError:    ErrNotFound,
		}
	}

	return out, nil
}
