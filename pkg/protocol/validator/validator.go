package validator

import (
	"mercator-hq/triage/pkg/protocol/ast"
	perrors "mercator-hq/triage/pkg/protocol/errors"
)

// Validator runs the structural and semantic passes.
type Validator struct {
	strict bool
}

// NewValidator returns a non-strict validator.
func NewValidator() *Validator {
	return &Validator{}
}

// WithStrict makes warnings fail validation.
func (v *Validator) WithStrict(strict bool) *Validator {
	v.strict = strict
	return v
}

// Validate checks p. It returns the warnings found (nil in strict mode,
// where they become errors) and an error wrapping an *errors.ErrorList
// when validation fails.
func (v *Validator) Validate(p *ast.Protocol) ([]*perrors.Error, error) {
	list := perrors.NewErrorList()

	list.Merge(validateStructure(p))
	if !list.HasErrors() {
		list.Merge(validateSemantics(p))
	}

	if v.strict {
		list.Promote()
	}

	return list.Warnings(), list.ToError()
}
