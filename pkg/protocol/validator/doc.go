// Package validator checks parsed protocols before they are compiled.
//
// Validation runs in two passes. The structural pass checks required
// fields, level names, symptom tag syntax and duplicate names. The
// semantic pass, which only runs when the structural pass found no
// errors, resolves references, detects definition cycles and flags
// unknown symptoms and unused definitions.
//
// Unknown symptoms and unused definitions are warnings. In strict mode
// every warning is promoted to an error:
//
//	v := validator.NewValidator().WithStrict(true)
//	warnings, err := v.Validate(protocol)
package validator
