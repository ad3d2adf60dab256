package triage

import "time"

// Recorder receives evaluation and reload measurements. The metrics
// package's Collector implements it.
type Recorder interface {
	// ObserveEvaluation records one protocol outcome. rule is empty when
	// the default level applied.
	ObserveEvaluation(protocol, rule, level string, duration time.Duration)

	// ObserveRule records whether a checked rule matched.
	ObserveRule(protocol, rule string, matched bool)

	// ObserveReload records a reload attempt and the resulting protocol
	// count.
	ObserveReload(success bool, protocols int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveEvaluation(string, string, string, time.Duration) {}
func (nopRecorder) ObserveRule(string, string, bool) {}
func (nopRecorder) ObserveReload(bool, int) {}
