package resolver

import "reflect"

// descriptor is the polymorphic unit behind each registration: it holds
// enough information to produce an instance of the registered service under
// one lifetime policy.
type descriptor interface {
	lifetime() Lifetime

	// concrete reports the type this descriptor produces, for diagnostics.
	concrete() reflect.Type

	// value produces or retrieves the instance for this registration
	// against the defining registry g. The scope may be nil for scope-free
	// resolution.
	value(g *registry, s *Scope, st *resolutionState) (reflect.Value, error)
}

// singletonDescriptor holds an already-produced shared instance. The scope
// cache reuses it for scoped productions, which is why it ignores its
// arguments entirely.
type singletonDescriptor struct {
	serviceType reflect.Type
	instance    reflect.Value
}

func (d *singletonDescriptor) lifetime() Lifetime {
	return Singleton
}

func (d *singletonDescriptor) concrete() reflect.Type {
	return d.serviceType
}

func (d *singletonDescriptor) value(*registry, *Scope, *resolutionState) (reflect.Value, error) {
	return d.instance, nil
}

// transientDescriptor stores only the binding; every request re-resolves
// the concrete type's full dependency graph.
type transientDescriptor struct {
	serviceType reflect.Type
}

func (d *transientDescriptor) lifetime() Lifetime {
	return Transient
}

func (d *transientDescriptor) concrete() reflect.Type {
	return d.serviceType
}

func (d *transientDescriptor) value(g *registry, s *Scope, st *resolutionState) (reflect.Value, error) {
	return g.constructConcrete(d.serviceType, s, st)
}

// scopedDescriptor produces once per scope. The live instance is cached in
// the scope's own registry keyed by the concrete type, so multiple
// interfaces backed by the same concrete type share one instance per scope.
// Non-scoped dependencies still resolve against the defining registry.
type scopedDescriptor struct {
	serviceType reflect.Type
}

func (d *scopedDescriptor) lifetime() Lifetime {
	return Scoped
}

func (d *scopedDescriptor) concrete() reflect.Type {
	return d.serviceType
}

func (d *scopedDescriptor) value(g *registry, s *Scope, st *resolutionState) (reflect.Value, error) {
	if s == nil {
		return reflect.Value{}, &DependencyError{
			Message:        "scoped dependency requested without a scope",
			ReferencedType: d.serviceType,
			Status:         g.status(),
			SourceError:    ErrMissingScope,
		}
	}

	key := serviceKey(d.serviceType)
	if cached, ok := s.cache.find(key); ok {
		return cached.value(s.cache, s, st)
	}

	v, err := g.constructConcrete(d.serviceType, s, st)
	if err != nil {
		return reflect.Value{}, err
	}
	s.cache.add(key, &singletonDescriptor{serviceType: d.serviceType, instance: v})
	return v, nil
}

// ctorDescriptor produces by invoking a registered constructor function,
// resolving each of its parameters recursively. Singleton constructors run
// at registration time and are stored as singletonDescriptor, so only the
// transient and scoped lifetimes appear here.
type ctorDescriptor struct {
	info *ctorInfo
	kind Lifetime
}

func (d *ctorDescriptor) lifetime() Lifetime {
	return d.kind
}

func (d *ctorDescriptor) concrete() reflect.Type {
	return d.info.result
}

func (d *ctorDescriptor) value(g *registry, s *Scope, st *resolutionState) (reflect.Value, error) {
	if d.kind == Transient {
		return g.invokeConstructor(d.info, s, st)
	}

	if s == nil {
		return reflect.Value{}, &DependencyError{
			Message:        "scoped dependency requested without a scope",
			ReferencedType: d.info.result,
			Status:         g.status(),
			SourceError:    ErrMissingScope,
		}
	}

	key := serviceKey(d.info.result)
	if cached, ok := s.cache.find(key); ok {
		return cached.value(s.cache, s, st)
	}

	v, err := g.invokeConstructor(d.info, s, st)
	if err != nil {
		return reflect.Value{}, err
	}
	s.cache.add(key, &singletonDescriptor{serviceType: v.Type(), instance: v})
	return v, nil
}
