package ast

// ConditionType is the variant of a condition node.
type ConditionType string

const (
	ConditionTypeHasAll ConditionType = "has_all" // every listed symptom present
	ConditionTypeHasAny ConditionType = "has_any" // at least one listed symptom present
	ConditionTypeAll    ConditionType = "all"     // AND of children
	ConditionTypeAny    ConditionType = "any"     // OR of children
	ConditionTypeNot    ConditionType = "not"     // NOT of the single child
	ConditionTypeRef    ConditionType = "ref"     // reference to a definition
)

// ConditionTypes lists every condition keyword in the order they are
// documented.
func ConditionTypes() []ConditionType {
	return []ConditionType{
		ConditionTypeHasAll,
		ConditionTypeHasAny,
		ConditionTypeAll,
		ConditionTypeAny,
		ConditionTypeNot,
		ConditionTypeRef,
	}
}

// Condition is a node of a condition tree.
type Condition struct {
	Type     ConditionType
	Symptoms []string     // has_all / has_any, raw tags as written
	Children []*Condition // all / any / not
	Ref      string       // ref
	Location Location
}

// IsLeaf reports whether the condition tests symptoms directly.
func (c *Condition) IsLeaf() bool {
	return c.Type == ConditionTypeHasAll || c.Type == ConditionTypeHasAny
}

// IsLogical reports whether the condition combines children.
func (c *Condition) IsLogical() bool {
	return c.Type == ConditionTypeAll || c.Type == ConditionTypeAny || c.Type == ConditionTypeNot
}

// Depth returns the nesting depth of the tree rooted at c. References
// count as leaves.
func (c *Condition) Depth() int {
	if c == nil {
		return 0
	}
	deepest := 0
	for _, child := range c.Children {
		if d := child.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// Refs returns every definition name referenced in the tree, in
// depth-first order, including duplicates.
func (c *Condition) Refs() []string {
	var refs []string
	c.walk(func(n *Condition) {
		if n.Type == ConditionTypeRef {
			refs = append(refs, n.Ref)
		}
	})
	return refs
}

func (c *Condition) walk(fn func(*Condition)) {
	if c == nil {
		return
	}
	fn(c)
	for _, child := range c.Children {
		child.walk(fn)
	}
}
