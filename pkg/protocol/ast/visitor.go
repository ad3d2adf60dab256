package ast

// Visitor receives the nodes of a protocol during Walk.
type Visitor interface {
	VisitProtocol(*Protocol) error
	VisitDefinition(*Definition) error
	VisitRule(*Rule) error
	VisitCondition(*Condition) error
	VisitTest(*Test) error
}

// Walk traverses the protocol: the protocol node, definitions in source
// order with their conditions, rules with their conditions, then tests.
// It stops at the first error returned by the visitor.
func Walk(p *Protocol, v Visitor) error {
	if err := v.VisitProtocol(p); err != nil {
		return err
	}

	for _, name := range p.DefinitionOrder {
		def, ok := p.Definitions[name]
		if !ok {
			continue
		}
		if err := v.VisitDefinition(def); err != nil {
			return err
		}
		if err := walkCondition(def.Condition, v); err != nil {
			return err
		}
	}

	for _, rule := range p.Rules {
		if err := v.VisitRule(rule); err != nil {
			return err
		}
		if err := walkCondition(rule.When, v); err != nil {
			return err
		}
	}

	for _, test := range p.Tests {
		if err := v.VisitTest(test); err != nil {
			return err
		}
	}

	return nil
}

func walkCondition(c *Condition, v Visitor) error {
	if c == nil {
		return nil
	}
	if err := v.VisitCondition(c); err != nil {
		return err
	}
	for _, child := range c.Children {
		if err := walkCondition(child, v); err != nil {
			return err
		}
	}
	return nil
}

// BaseVisitor implements Visitor with no-op methods. Embed it to override
// only the callbacks you need.
type BaseVisitor struct{}

func (BaseVisitor) VisitProtocol(*Protocol) error     { return nil }
func (BaseVisitor) VisitDefinition(*Definition) error { return nil }
func (BaseVisitor) VisitRule(*Rule) error             { return nil }
func (BaseVisitor) VisitCondition(*Condition) error   { return nil }
func (BaseVisitor) VisitTest(*Test) error             { return nil }
