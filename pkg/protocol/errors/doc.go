// Package errors provides located, categorised errors for protocol parsing
// and validation.
//
// Parsers and validators accumulate problems into an ErrorList instead of
// stopping at the first one:
//
//	errs := errors.NewErrorList()
//	errs.AddErrorWithSuggestion(errors.ErrorTypeSemantic,
//	    `undefined reference "critcal"`, loc, errors.SuggestName("critcal", names))
//	return errs.ToError()
//
// Each Error renders with its location, optional source context and a
// suggested fix.
package errors
