package spec

// Composite is a fluent wrapper around a specification.
//
// Each method returns a new Composite; the receiver is never modified, so
// a Composite can be shared and extended from several call sites.
type Composite[T any] struct {
	spec Spec[T]
}

// Of wraps s for fluent composition. It panics if s is nil.
func Of[T any](s Spec[T]) Composite[T] {
	return Composite[T]{spec: operand(s)}
}

// OfFunc wraps a named leaf built from fn.
func OfFunc[T any](name string, fn func(T) bool) Composite[T] {
	return Composite[T]{spec: NewAtomic(name, fn)}
}

// IsSatisfiedBy evaluates the wrapped specification.
func (c Composite[T]) IsSatisfiedBy(subject T) bool {
	return c.spec.IsSatisfiedBy(subject)
}

// And returns And(c, other). The current composite is the left operand.
func (c Composite[T]) And(other Spec[T]) Composite[T] {
	return Composite[T]{spec: And(c.spec, other)}
}

// Or returns Or(c, other). The current composite is the left operand.
func (c Composite[T]) Or(other Spec[T]) Composite[T] {
	return Composite[T]{spec: Or(c.spec, other)}
}

// Not returns Not(c).
func (c Composite[T]) Not() Composite[T] {
	return Composite[T]{spec: Not(c.spec)}
}

// AndNot returns And(c, Not(other)).
func (c Composite[T]) AndNot(other Spec[T]) Composite[T] {
	return Composite[T]{spec: And(c.spec, Spec[T](Not(other)))}
}

// OrNot returns Or(c, Not(other)).
func (c Composite[T]) OrNot(other Spec[T]) Composite[T] {
	return Composite[T]{spec: Or(c.spec, Spec[T](Not(other)))}
}

// Named labels the current composite.
func (c Composite[T]) Named(name string) Composite[T] {
	return Composite[T]{spec: Named(name, c.spec)}
}

// Unwrap returns the underlying specification tree.
func (c Composite[T]) Unwrap() Spec[T] {
	return c.spec
}

// String renders the tree with Describe.
func (c Composite[T]) String() string {
	return Describe(c.spec)
}
