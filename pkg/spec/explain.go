package spec

import "strconv"

// Step records one node visited during Explain.
type Step struct {
	// Path locates the node: "0" is the root, "0.1" its second operand.
	Path string

	// Depth is the nesting level, 0 for the root.
	Depth int

	// Kind is the node variant. Foreign specifications report KindAtomic.
	Kind Kind

	// Name is the leaf or label name, empty for unnamed combinators.
	Name string

	// Result is the value the node evaluated to.
	Result bool
}

// Trace is the ordered record of an Explain run. Steps appear in the order
// nodes were entered; operands skipped by short-circuiting are absent.
type Trace struct {
	Steps []Step
}

// Visited reports whether a node with the given name was evaluated.
func (t *Trace) Visited(name string) bool {
	for _, s := range t.Steps {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Leaves returns the leaf steps in evaluation order.
func (t *Trace) Leaves() []Step {
	var out []Step
	for _, s := range t.Steps {
		if s.Kind == KindAtomic {
			out = append(out, s)
		}
	}
	return out
}

// Explain evaluates s against subject exactly as IsSatisfiedBy would,
// including short-circuiting, and returns the result together with a
// trace of every node that was evaluated.
func Explain[T any](s Spec[T], subject T) (bool, *Trace) {
	t := &Trace{}
	result := explain(operand(s), subject, "0", 0, t)
	return result, t
}

func explain[T any](s Spec[T], subject T, path string, depth int, t *Trace) bool {
	idx := len(t.Steps)
	t.Steps = append(t.Steps, Step{Path: path, Depth: depth, Kind: KindAtomic})

	var result bool
	switch v := s.(type) {
	case *AndSpec[T]:
		t.Steps[idx].Kind = KindAnd
		result = explain(v.left, subject, child(path, 0), depth+1, t) &&
			explain(v.right, subject, child(path, 1), depth+1, t)
	case *OrSpec[T]:
		t.Steps[idx].Kind = KindOr
		result = explain(v.left, subject, child(path, 0), depth+1, t) ||
			explain(v.right, subject, child(path, 1), depth+1, t)
	case *NotSpec[T]:
		t.Steps[idx].Kind = KindNot
		result = !explain(v.inner, subject, child(path, 0), depth+1, t)
	case *NamedSpec[T]:
		t.Steps[idx].Kind = KindNamed
		t.Steps[idx].Name = v.name
		result = explain(v.inner, subject, child(path, 0), depth+1, t)
	default:
		t.Steps[idx].Name = NameOf(s)
		result = s.IsSatisfiedBy(subject)
	}

	t.Steps[idx].Result = result
	return result
}

func child(path string, i int) string {
	return path + "." + strconv.Itoa(i)
}
