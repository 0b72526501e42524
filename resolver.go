package resolver

import (
	"context"
	"fmt"
	"reflect"

	log "github.com/sirupsen/logrus"
)

// Resolver is the public entry point of the container. Applications
// register services on it with one of the three lifetimes and then resolve
// fully-constructed object graphs from it.
//
// Registration is append-only. Registering a second service under the same
// key replaces it for future lookups, but instances already produced from
// the earlier registration stay valid. Singleton-by-type registration
// resolves immediately against only the services registered so far, so
// registration order matters for that variant; registering dependencies out
// of order surfaces as an ErrNotFound at registration time.
//
// A Resolver and the Scopes it creates are not safe for concurrent use.
// Registration and resolution run synchronously to completion, and callers
// that share a Resolver across goroutines must serialize access themselves.
type Resolver struct {
	registry *registry
}

// Option is a functional option for configuring a Resolver.
type Option func(*Resolver)

// WithTiming enables go-timing instrumentation of every construction the
// resolver performs. The supplied context carries the timing location the
// spans are recorded under, typically one created with timing.Root.
func WithTiming(ctx context.Context) Option {
	return func(r *Resolver) {
		r.registry.timingCtx = ctx
	}
}

// WithTraceLogging emits a debug-level log line for every registration and
// construction. This is useful when untangling why a graph resolves the
// way it does.
func WithTraceLogging(logger *log.Logger) Option {
	return func(r *Resolver) {
		r.registry.trace = logger
	}
}

// New creates an empty Resolver.
func New(options ...Option) *Resolver {
	r := &Resolver{
		registry: newRegistry(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// NewScope returns a fresh, empty Scope unrelated to any other scope.
// Scoped-lifetime services resolved through it are cached for as long as
// the caller holds it.
func (r *Resolver) NewScope() *Scope {
	return &Scope{cache: newRegistry()}
}

// Size returns the number of direct registrations.
func (r *Resolver) Size() int {
	return r.registry.size()
}

// RegisterInstance registers a pre-built value as a singleton for I. For an
// interface or pointer I the value is stored as-is; for any other type the
// value is copied once and the shared pointer to that copy is stored, so
// RegisterInstance(r, 10) makes the same *int available to every consumer.
func RegisterInstance[I any](r *Resolver, value I) {
	iType := typeFor[I]()
	key := serviceKey(iType)

	var instance reflect.Value
	if iType.Kind() == reflect.Interface || iType.Kind() == reflect.Pointer {
		instance = reflect.ValueOf(value)
		if !instance.IsValid() || (instance.Kind() == reflect.Pointer && instance.IsNil()) {
			panic(fmt.Sprintf("cannot register a nil instance for %v", iType))
		}
	} else {
		p := reflect.New(iType)
		p.Elem().Set(reflect.ValueOf(value))
		instance = p
	}

	r.registry.add(key, &singletonDescriptor{serviceType: instance.Type(), instance: instance})
}

// RegisterSingleton registers concrete type S as the implementation of I
// with singleton lifetime, constructing it immediately against the services
// registered so far. Dependencies registered after this call are not
// visible to the construction; a dependency that is missing at this point
// is reported as an error rather than silently deferred.
func RegisterSingleton[I any, S any](r *Resolver) error {
	key, concrete := registrationTypes[I, S]()

	v, err := r.registry.constructConcrete(concrete, nil, newResolutionState())
	if err != nil {
		return err
	}
	r.registry.add(key, &singletonDescriptor{serviceType: concrete, instance: v})
	return nil
}

// RegisterTransient registers concrete type S as the implementation of I
// with transient lifetime: every resolution re-resolves S's full dependency
// graph from scratch.
func RegisterTransient[I any, S any](r *Resolver) {
	key, concrete := registrationTypes[I, S]()
	r.registry.add(key, &transientDescriptor{serviceType: concrete})
}

// RegisterScoped registers concrete type S as the implementation of I with
// scoped lifetime: within one Scope every resolution shares a single S, and
// distinct Scopes get distinct instances. Resolving I without a scope fails
// with ErrMissingScope.
func RegisterScoped[I any, S any](r *Resolver) {
	key, concrete := registrationTypes[I, S]()
	r.registry.add(key, &scopedDescriptor{serviceType: concrete})
}

// RegisterSingletonFunc registers a constructor function for I and invokes
// it immediately, storing the result as a shared singleton. The constructor
// may take any number of parameters, each resolved recursively from the
// services registered so far, and returns the service with an optional
// trailing error.
func RegisterSingletonFunc[I any](r *Resolver, ctor any) error {
	key := serviceKey(typeFor[I]())
	info := analyzeConstructor(key, ctor)

	v, err := r.registry.invokeConstructor(info, nil, newResolutionState())
	if err != nil {
		return err
	}
	r.registry.add(key, &singletonDescriptor{serviceType: info.result, instance: v})
	return nil
}

// RegisterTransientFunc registers a constructor function for I with
// transient lifetime. The constructor runs on every resolution, with its
// parameters resolved recursively. It follows the same shape rules as
// RegisterSingletonFunc.
func RegisterTransientFunc[I any](r *Resolver, ctor any) {
	key := serviceKey(typeFor[I]())
	info := analyzeConstructor(key, ctor)
	r.registry.add(key, &ctorDescriptor{info: info, kind: Transient})
}

// RegisterScopedFunc registers a constructor function for I with scoped
// lifetime. The constructor runs once per Scope; its result is cached in
// the scope keyed by the constructor's declared result type.
func RegisterScopedFunc[I any](r *Resolver, ctor any) {
	key := serviceKey(typeFor[I]())
	info := analyzeConstructor(key, ctor)
	r.registry.add(key, &ctorDescriptor{info: info, kind: Scoped})
}

// registrationTypes computes and validates the key and concrete type pair
// for a by-type registration. Registering a non-instantiable concrete type,
// or one that does not satisfy the service key, is a wiring mistake and
// panics before any graph is built.
func registrationTypes[I any, S any]() (reflect.Type, reflect.Type) {
	concrete := typeFor[S]()
	checkInstantiable(concrete)

	key := serviceKey(typeFor[I]())
	if !reflect.PointerTo(concrete).AssignableTo(key) {
		panic(fmt.Sprintf("%v does not satisfy service key %v", reflect.PointerTo(concrete), key))
	}
	return key, concrete
}

func checkInstantiable(concrete reflect.Type) {
	if concrete.Kind() == reflect.Interface {
		panic(fmt.Sprintf("cannot register abstract type %v as a concrete service", concrete))
	}
	if concrete.Kind() == reflect.Pointer {
		panic(fmt.Sprintf("concrete service type %v must not be a pointer; the resolver adds the indirection", concrete))
	}
	if concrete.Kind() == reflect.Struct {
		if _, err := discoverParams(concrete); err != nil {
			panic(err.Error())
		}
	}
}

// Resolve returns the service for T, assembling its dependency graph as
// needed. T is typically an interface or pointer type and the returned
// instance is shared according to its lifetime; requesting a bare value
// type resolves the shared pointer entry and returns a copy of the value.
//
// A type with neither a registration nor a constructible parameter chain
// fails with ErrNotFound. If T or any transitive dependency is scoped, the
// resolution fails with ErrMissingScope; use ResolveScoped instead.
func Resolve[T any](r *Resolver) (T, error) {
	return resolve[T](r, nil)
}

// ResolveScoped behaves like Resolve but threads the given scope through
// the resolution, so scoped-lifetime dependencies are produced at most once
// per scope and shared within it.
func ResolveScoped[T any](r *Resolver, s *Scope) (T, error) {
	return resolve[T](r, s)
}

// MustResolve behaves like Resolve except it panics if the resolution
// fails. Resolution failures are wiring mistakes in most programs, so this
// presents the simpler interface for the common case.
func MustResolve[T any](r *Resolver) T {
	v, err := Resolve[T](r)
	if err != nil {
		panic(err)
	}
	return v
}

// MustResolveScoped behaves like ResolveScoped except it panics if the
// resolution fails.
func MustResolveScoped[T any](r *Resolver, s *Scope) T {
	v, err := ResolveScoped[T](r, s)
	if err != nil {
		panic(err)
	}
	return v
}

// ResolveOptional returns the service for T along with a boolean indicating
// whether the resolution succeeded, instead of an error.
func ResolveOptional[T any](r *Resolver) (T, bool) {
	v, err := Resolve[T](r)
	return v, err == nil
}

func resolve[T any](r *Resolver, s *Scope) (T, error) {
	var zero T
	requested := typeFor[T]()

	v, err := r.registry.resolveKey(serviceKey(requested), s, newResolutionState())
	if err != nil {
		return zero, err
	}

	if requested.Kind() != reflect.Interface && requested.Kind() != reflect.Pointer {
		v = v.Elem()
	}

	result, ok := v.Interface().(T)
	if !ok {
		// We should never get here; registration validates assignability.
		return zero, &DependencyError{
			Message:        "resolved instance does not satisfy requested type",
			ReferencedType: requested,
			Status:         r.registry.status(),
			SourceError:    ErrNotFound,
		}
	}
	return result, nil
}
