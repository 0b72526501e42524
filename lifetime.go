package resolver

// Lifetime is the policy governing how many instances of a registered
// service are produced and for how long they are reused.
type Lifetime int

const (
	// Singleton services are produced once and shared by every caller.
	Singleton Lifetime = iota

	// Transient services are produced fresh on every resolution.
	Transient

	// Scoped services are produced once per Scope and shared within it.
	Scoped
)

func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	case Scoped:
		return "scoped"
	default:
		return "unknown"
	}
}
