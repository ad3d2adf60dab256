// Package health runs named component checks and aggregates their results
// into a report.
//
// Checks run concurrently, each bounded by the checker's timeout. The
// overall status is healthy when every check passes and degraded
// otherwise.
//
//	checker := health.New(cfg.Telemetry.Health.CheckTimeout)
//	checker.Register("protocols_loaded", func(ctx context.Context) error {
//	    if engine.Status().Protocols == 0 {
//	        return errors.New("no protocols loaded")
//	    }
//	    return nil
//	})
//	report := checker.Run(ctx)
package health
