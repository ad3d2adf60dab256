package spec

// Spec is a boolean test over a subject of type T.
//
// Implementations must be pure: the result depends only on the subject and
// the specification's fixed configuration.
type Spec[T any] interface {
	IsSatisfiedBy(subject T) bool
}

// Func adapts an ordinary function to the Spec interface.
type Func[T any] func(subject T) bool

// IsSatisfiedBy calls f(subject).
func (f Func[T]) IsSatisfiedBy(subject T) bool {
	return f(subject)
}

// Kind identifies the variant of a specification built by this package.
type Kind string

const (
	KindAtomic Kind = "atomic" // named leaf test
	KindAnd    Kind = "and"    // conjunction of two operands
	KindOr     Kind = "or"     // disjunction of two operands
	KindNot    Kind = "not"    // negation of one operand
	KindNamed  Kind = "named"  // label around another specification
)

// Node is implemented by every specification this package constructs.
// The set of implementations is closed; specifications defined elsewhere
// are treated as opaque leaves by Walk, Describe and Explain.
type Node[T any] interface {
	Spec[T]

	// Kind returns the variant tag.
	Kind() Kind

	// Children returns the operands in evaluation order.
	Children() []Spec[T]

	node()
}

// Atomic is a named leaf specification.
type Atomic[T any] struct {
	name string
	fn   func(T) bool
}

// NewAtomic returns a leaf specification that reports fn(subject).
// It panics if fn is nil.
func NewAtomic[T any](name string, fn func(T) bool) *Atomic[T] {
	if fn == nil {
		panic("spec: NewAtomic called with nil function")
	}
	return &Atomic[T]{name: name, fn: fn}
}

// Name returns the leaf's name.
func (a *Atomic[T]) Name() string { return a.name }

// IsSatisfiedBy reports whether the leaf test holds for subject.
func (a *Atomic[T]) IsSatisfiedBy(subject T) bool { return a.fn(subject) }

// Kind returns KindAtomic.
func (a *Atomic[T]) Kind() Kind { return KindAtomic }

// Children returns nil; leaves have no operands.
func (a *Atomic[T]) Children() []Spec[T] { return nil }

func (a *Atomic[T]) node() {}

// True returns a specification satisfied by every subject.
func True[T any]() *Atomic[T] {
	return NewAtomic("true", func(T) bool { return true })
}

// False returns a specification satisfied by no subject.
func False[T any]() *Atomic[T] {
	return NewAtomic("false", func(T) bool { return false })
}
