// Package resolver provides a dependency-injection container: services are
// registered once by type with a lifetime policy, and object graphs are
// resolved on demand by recursively supplying each service's constructor
// parameters from the registry.
//
// Three lifetimes are supported. Singleton services are produced once and
// shared by every caller. Transient services are rebuilt from scratch on
// every resolution. Scoped services are produced once per Scope and shared
// within it, so two scopes never observe each other's instances.
//
// Constructor parameters are discovered automatically from the exported
// fields of a concrete struct type, in declaration order. Types that cannot
// be discovered this way can register an explicit constructor function
// instead.
//
// The Resolver documentation describes the registration and resolution
// surface in detail, including the concurrency contract: a Resolver and its
// Scopes are not safe for concurrent use.
package resolver
