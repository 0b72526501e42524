package resolver

// Scope is a disposable cache boundary for scoped-lifetime services. It
// starts empty, caches each scoped production keyed by its concrete type,
// and is discarded by simply letting it go out of reach; there is no
// commit or close step. Two scopes created from the same Resolver are fully
// independent.
//
// A Scope reads the registrations of the Resolver that created it but owns
// none of them, so it must not be used after that Resolver is gone.
type Scope struct {
	cache *registry
}

// Size returns the number of scoped instances cached in this scope so far.
func (s *Scope) Size() int {
	return s.cache.size()
}
