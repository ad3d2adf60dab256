package spec

import (
	"fmt"
	"strings"
)

// WalkFunc is called for every node visited by Walk. depth is 0 for the
// root. Returning false skips the node's children.
type WalkFunc[T any] func(s Spec[T], depth int) bool

// Walk visits s and its descendants depth-first in evaluation order.
// Specifications not built by this package are visited as leaves.
func Walk[T any](s Spec[T], fn WalkFunc[T]) {
	walk(operand(s), 0, fn)
}

func walk[T any](s Spec[T], depth int, fn WalkFunc[T]) {
	if !fn(s, depth) {
		return
	}
	n, ok := s.(Node[T])
	if !ok {
		return
	}
	for _, child := range n.Children() {
		walk(child, depth+1, fn)
	}
}

// Depth returns the height of the tree rooted at s. A single leaf has
// depth 1.
func Depth[T any](s Spec[T]) int {
	height := 0
	Walk(s, func(_ Spec[T], depth int) bool {
		if depth+1 > height {
			height = depth + 1
		}
		return true
	})
	return height
}

// Leaves returns the names of the leaves of s in evaluation order.
// Named composites are descended into.
func Leaves[T any](s Spec[T]) []string {
	var names []string
	Walk(s, func(n Spec[T], _ int) bool {
		if node, ok := n.(Node[T]); ok && node.Kind() != KindAtomic {
			return true
		}
		names = append(names, NameOf(n))
		return true
	})
	return names
}

// NameOf returns the name of a leaf or named specification. For other
// nodes it returns the kind, and for foreign specifications the Go type.
func NameOf[T any](s Spec[T]) string {
	switch v := s.(type) {
	case interface{ Name() string }:
		return v.Name()
	case Node[T]:
		return string(v.Kind())
	default:
		return fmt.Sprintf("%T", s)
	}
}

// Describe renders s as a fully parenthesised infix expression, e.g.
// "(HasAllCommon AND NOT HasAnyCritical)". Named nodes render as their
// label; use DescribeExpanded to see through them.
func Describe[T any](s Spec[T]) string {
	var sb strings.Builder
	describe(&sb, operand(s), false)
	return sb.String()
}

// DescribeExpanded is like Describe but renders named nodes as
// "Label:<expression>".
func DescribeExpanded[T any](s Spec[T]) string {
	var sb strings.Builder
	describe(&sb, operand(s), true)
	return sb.String()
}

func describe[T any](sb *strings.Builder, s Spec[T], expand bool) {
	switch v := s.(type) {
	case *AndSpec[T]:
		sb.WriteByte('(')
		describe(sb, v.left, expand)
		sb.WriteString(" AND ")
		describe(sb, v.right, expand)
		sb.WriteByte(')')
	case *OrSpec[T]:
		sb.WriteByte('(')
		describe(sb, v.left, expand)
		sb.WriteString(" OR ")
		describe(sb, v.right, expand)
		sb.WriteByte(')')
	case *NotSpec[T]:
		sb.WriteString("NOT ")
		describe(sb, v.inner, expand)
	case *NamedSpec[T]:
		sb.WriteString(v.name)
		if expand {
			sb.WriteByte(':')
			describe(sb, v.inner, expand)
		}
	default:
		sb.WriteString(NameOf(s))
	}
}
