package spec

// AndSpec is satisfied when both operands are satisfied.
// The right operand is evaluated only when the left one is satisfied.
type AndSpec[T any] struct {
	left, right Spec[T]
}

// And returns the conjunction of left and right.
// It panics if either operand is nil.
func And[T any](left, right Spec[T]) *AndSpec[T] {
	return &AndSpec[T]{left: operand(left), right: operand(right)}
}

// IsSatisfiedBy evaluates left, then right only if left held.
func (s *AndSpec[T]) IsSatisfiedBy(subject T) bool {
	return s.left.IsSatisfiedBy(subject) && s.right.IsSatisfiedBy(subject)
}

// Left returns the operand evaluated first.
func (s *AndSpec[T]) Left() Spec[T] { return s.left }

// Right returns the operand evaluated second.
func (s *AndSpec[T]) Right() Spec[T] { return s.right }

// Kind returns KindAnd.
func (s *AndSpec[T]) Kind() Kind { return KindAnd }

// Children returns the operands in evaluation order.
func (s *AndSpec[T]) Children() []Spec[T] { return []Spec[T]{s.left, s.right} }

func (s *AndSpec[T]) node() {}

// OrSpec is satisfied when at least one operand is satisfied.
// The right operand is evaluated only when the left one is not satisfied.
type OrSpec[T any] struct {
	left, right Spec[T]
}

// Or returns the disjunction of left and right.
// It panics if either operand is nil.
func Or[T any](left, right Spec[T]) *OrSpec[T] {
	return &OrSpec[T]{left: operand(left), right: operand(right)}
}

// IsSatisfiedBy evaluates left, then right only if left did not hold.
func (s *OrSpec[T]) IsSatisfiedBy(subject T) bool {
	return s.left.IsSatisfiedBy(subject) || s.right.IsSatisfiedBy(subject)
}

// Left returns the operand evaluated first.
func (s *OrSpec[T]) Left() Spec[T] { return s.left }

// Right returns the operand evaluated second.
func (s *OrSpec[T]) Right() Spec[T] { return s.right }

// Kind returns KindOr.
func (s *OrSpec[T]) Kind() Kind { return KindOr }

// Children returns the operands in evaluation order.
func (s *OrSpec[T]) Children() []Spec[T] { return []Spec[T]{s.left, s.right} }

func (s *OrSpec[T]) node() {}

// NotSpec is satisfied when its operand is not.
type NotSpec[T any] struct {
	inner Spec[T]
}

// Not returns the negation of inner.
// It panics if inner is nil.
func Not[T any](inner Spec[T]) *NotSpec[T] {
	return &NotSpec[T]{inner: operand(inner)}
}

// IsSatisfiedBy negates the operand's result.
func (s *NotSpec[T]) IsSatisfiedBy(subject T) bool {
	return !s.inner.IsSatisfiedBy(subject)
}

// Inner returns the negated operand.
func (s *NotSpec[T]) Inner() Spec[T] { return s.inner }

// Kind returns KindNot.
func (s *NotSpec[T]) Kind() Kind { return KindNot }

// Children returns the single operand.
func (s *NotSpec[T]) Children() []Spec[T] { return []Spec[T]{s.inner} }

func (s *NotSpec[T]) node() {}

// NamedSpec attaches a label to another specification.
// It is satisfied exactly when the wrapped specification is.
type NamedSpec[T any] struct {
	name  string
	inner Spec[T]
}

// Named labels inner with name, e.g. to give a composite a domain name
// such as "Urgent". It panics if inner is nil.
func Named[T any](name string, inner Spec[T]) *NamedSpec[T] {
	return &NamedSpec[T]{name: name, inner: operand(inner)}
}

// Name returns the label.
func (s *NamedSpec[T]) Name() string { return s.name }

// IsSatisfiedBy delegates to the wrapped specification.
func (s *NamedSpec[T]) IsSatisfiedBy(subject T) bool {
	return s.inner.IsSatisfiedBy(subject)
}

// Inner returns the wrapped specification.
func (s *NamedSpec[T]) Inner() Spec[T] { return s.inner }

// Kind returns KindNamed.
func (s *NamedSpec[T]) Kind() Kind { return KindNamed }

// Children returns the wrapped specification.
func (s *NamedSpec[T]) Children() []Spec[T] { return []Spec[T]{s.inner} }

func (s *NamedSpec[T]) node() {}

// All returns the left fold of And over specs: All(a, b, c) is
// And(And(a, b), c). With no arguments it returns True; with one it
// returns that specification unchanged.
func All[T any](specs ...Spec[T]) Spec[T] {
	if len(specs) == 0 {
		return True[T]()
	}
	acc := operand(specs[0])
	for _, s := range specs[1:] {
		acc = And(acc, s)
	}
	return acc
}

// Any returns the left fold of Or over specs: Any(a, b, c) is
// Or(Or(a, b), c). With no arguments it returns False; with one it
// returns that specification unchanged.
func Any[T any](specs ...Spec[T]) Spec[T] {
	if len(specs) == 0 {
		return False[T]()
	}
	acc := operand(specs[0])
	for _, s := range specs[1:] {
		acc = Or(acc, s)
	}
	return acc
}

// operand validates a combinator argument and strips Composite wrappers so
// trees only contain variants from this package or caller leaves.
func operand[T any](s Spec[T]) Spec[T] {
	switch v := s.(type) {
	case nil:
		panic("spec: nil operand")
	case Composite[T]:
		if v.spec == nil {
			panic("spec: nil operand")
		}
		return v.spec
	case *Composite[T]:
		if v == nil || v.spec == nil {
			panic("spec: nil operand")
		}
		return v.spec
	}
	return s
}
