// Package logging provides structured logging with patient-data redaction.
//
// # Overview
//
// The logging package wraps log/slog to provide:
//   - JSON, text and console output
//   - Redaction of patient names and contact details in log fields
//   - Evaluation, batch and protocol identifiers taken from the context
//   - Levels debug, info, warn and error
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:              "info",
//	    Format:             "json",
//	    RedactPatientNames: true,
//	})
//
//	logger.Info("Patient evaluated",
//	    "patient", "Ana Souza", // logged as "A***"
//	    "level", "urgent",
//	)
//
// Components that only need a *slog.Logger receive logger.Slog(). Redaction
// and context fields are applied by the handler, so both paths behave the
// same:
//
//	ctx = logging.WithEvaluationID(ctx, decisionID)
//	logger.Slog().InfoContext(ctx, "Rule matched", "rule", "critical-symptoms")
package logging
