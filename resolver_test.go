package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type counterService interface {
	getValue() int
	increment()
}

type countingService struct {
	Counter *int
}

func (s *countingService) getValue() int {
	return *s.Counter
}

func (s *countingService) increment() {
	*s.Counter++
}

type counterController struct {
	Service counterService
}

func (c *counterController) getValue() int {
	return c.Service.getValue()
}

func (c *counterController) increment() {
	c.Service.increment()
}

type reportService interface {
	getValue() int
	increment()
	getText() string
}

type reportingService struct {
	Text    *string
	Counter *int
	Service counterService
}

func (s *reportingService) getValue() int {
	return *s.Counter
}

func (s *reportingService) increment() {
	*s.Counter++
}

func (s *reportingService) getText() string {
	return *s.Text
}

type reportController struct {
	Service reportService
	Text    *string
}

func (c *reportController) getValue() int {
	return c.Service.getValue()
}

func (c *reportController) increment() {
	c.Service.increment()
}

func (c *reportController) getText() string {
	return *c.Text
}

type testWidget struct {
	Val int
}

func TestResolver_SimpleSingleton(t *testing.T) {
	r := New()
	RegisterInstance(r, 10)

	svc, err := Resolve[*countingService](r)

	assert.NoError(t, err)
	assert.Equal(t, 10, svc.getValue())
}

func TestResolver_SingletonWithDependency(t *testing.T) {
	r := New()
	RegisterInstance(r, 1)
	err := RegisterSingleton[counterService, countingService](r)
	assert.NoError(t, err)

	c1 := MustResolve[*counterController](r)
	assert.Equal(t, 1, c1.getValue())
	c1.increment()

	c2 := MustResolve[*counterController](r)
	assert.Equal(t, 2, c2.getValue())
}

func TestResolver_TransientWithDependency(t *testing.T) {
	r := New()
	RegisterTransient[int, int](r)
	RegisterTransient[counterService, countingService](r)

	c1 := MustResolve[*counterController](r)
	assert.Equal(t, 0, c1.getValue())
	c1.increment()

	// A new resolution rebuilds the whole graph, including the counter.
	c2 := MustResolve[*counterController](r)
	assert.Equal(t, 0, c2.getValue())
}

func TestResolver_ScopedWithDependency(t *testing.T) {
	r := New()
	RegisterScoped[int, int](r)
	RegisterScoped[counterService, countingService](r)

	scope := r.NewScope()

	c1 := MustResolveScoped[*counterController](r, scope)
	assert.Equal(t, 0, c1.getValue())
	c1.increment()

	c2 := MustResolveScoped[*counterController](r, scope)
	assert.Equal(t, 1, c2.getValue())

	otherScope := r.NewScope()

	c3 := MustResolveScoped[*counterController](r, otherScope)
	assert.Equal(t, 0, c3.getValue())
}

func TestResolver_ComplexDependencies(t *testing.T) {
	r := New()
	RegisterInstance(r, "Hello World")
	RegisterInstance(r, 150)
	RegisterScoped[counterService, countingService](r)
	RegisterTransient[reportService, reportingService](r)

	scope := r.NewScope()

	c1 := MustResolveScoped[*reportController](r, scope)
	assert.Equal(t, 150, c1.getValue())
	c1.increment()

	c2 := MustResolveScoped[*reportController](r, scope)
	assert.Equal(t, 151, c2.getValue())

	otherScope := r.NewScope()

	// The counter is a singleton, so the new scope still observes the
	// increment from the first one.
	c3 := MustResolveScoped[*reportController](r, otherScope)
	assert.Equal(t, 151, c3.getValue())
	c3.increment()
	assert.Equal(t, "Hello World", c3.getText())

	c4 := MustResolveScoped[*reportController](r, otherScope)
	assert.Equal(t, 152, c4.getValue())
}

func TestResolver_SingletonIdentity(t *testing.T) {
	r := New()
	RegisterInstance(r, &testWidget{Val: 42})

	w1 := MustResolve[*testWidget](r)
	w2 := MustResolve[*testWidget](r)

	assert.Same(t, w1, w2)
}

func TestResolver_TransientIsolation(t *testing.T) {
	r := New()
	RegisterInstance(r, 42)
	RegisterTransient[testWidget, testWidget](r)

	w1 := MustResolve[*testWidget](r)
	w2 := MustResolve[*testWidget](r)

	assert.NotSame(t, w1, w2)
	w1.Val = 99
	assert.Equal(t, 42, w2.Val)
}

func TestResolver_InterfaceInstance(t *testing.T) {
	r := New()
	n := 7
	RegisterInstance[counterService](r, &countingService{Counter: &n})

	svc := MustResolve[counterService](r)
	assert.Equal(t, 7, svc.getValue())
	svc.increment()
	assert.Equal(t, 8, n)
}

func TestResolver_ValueCopyResolution(t *testing.T) {
	r := New()
	RegisterInstance(r, 10)

	v, err := Resolve[int](r)
	assert.NoError(t, err)
	assert.Equal(t, 10, v)
}

func TestResolver_MissingScope(t *testing.T) {
	r := New()
	RegisterInstance(r, 5)
	RegisterScoped[counterService, countingService](r)

	_, err := Resolve[counterService](r)
	assert.ErrorIs(t, err, ErrMissingScope)

	// The scoped dependency is transitive here, which fails the same way.
	_, err = Resolve[*counterController](r)
	assert.ErrorIs(t, err, ErrMissingScope)
}

func TestResolver_NotFound(t *testing.T) {
	r := New()

	_, err := Resolve[counterService](r)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Resolve[int](r)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolver_ResolveOptional(t *testing.T) {
	r := New()
	RegisterInstance(r, 3)

	v, ok := ResolveOptional[int](r)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = ResolveOptional[counterService](r)
	assert.False(t, ok)
}

func TestResolver_MustResolvePanics(t *testing.T) {
	r := New()

	assert.Panics(t, func() {
		MustResolve[counterService](r)
	})
	assert.Panics(t, func() {
		MustResolveScoped[counterService](r, r.NewScope())
	})
}

func TestResolver_RegistrationOrderMatters(t *testing.T) {
	r := New()

	// Singleton-by-type resolves immediately, so the counter it needs must
	// already be registered.
	err := RegisterSingleton[counterService, countingService](r)
	assert.ErrorIs(t, err, ErrNotFound)

	RegisterInstance(r, 1)
	err = RegisterSingleton[counterService, countingService](r)
	assert.NoError(t, err)
}

func TestResolver_OverrideLastWins(t *testing.T) {
	r := New()
	RegisterInstance(r, 10)
	RegisterInstance(r, 20)

	assert.Equal(t, 20, MustResolve[int](r))
	assert.Equal(t, 1, r.Size())
}

func TestResolver_OverrideKeepsProducedInstances(t *testing.T) {
	r := New()
	n := 1
	RegisterInstance[counterService](r, &countingService{Counter: &n})

	before := MustResolve[counterService](r)

	m := 100
	RegisterInstance[counterService](r, &countingService{Counter: &m})

	after := MustResolve[counterService](r)
	assert.Equal(t, 100, after.getValue())

	// The instance handed out earlier is unaffected by the re-registration.
	assert.Equal(t, 1, before.getValue())
}

func TestResolver_Size(t *testing.T) {
	r := New()
	assert.Equal(t, 0, r.Size())

	RegisterInstance(r, 1)
	RegisterTransient[counterService, countingService](r)
	assert.Equal(t, 2, r.Size())
}

func TestRegister_AbstractConcreteTypePanics(t *testing.T) {
	r := New()

	assert.Panics(t, func() {
		RegisterTransient[counterService, counterService](r)
	})
}

func TestRegister_PointerConcreteTypePanics(t *testing.T) {
	r := New()

	assert.Panics(t, func() {
		RegisterTransient[*countingService, *countingService](r)
	})
}

func TestRegister_UnsatisfiedKeyPanics(t *testing.T) {
	r := New()

	assert.Panics(t, func() {
		RegisterTransient[reportService, countingService](r)
	})
}

func TestRegister_NilInstancePanics(t *testing.T) {
	r := New()

	assert.Panics(t, func() {
		RegisterInstance[counterService](r, nil)
	})
	assert.Panics(t, func() {
		RegisterInstance[*testWidget](r, nil)
	})
}
