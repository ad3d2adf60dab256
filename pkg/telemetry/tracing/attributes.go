package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanReload   = "triage.reload"
	SpanBatch    = "triage.evaluate_batch"
	SpanEvaluate = "triage.evaluate"
	SpanProtocol = "triage.protocol"
)

// Attribute keys.
const (
	AttrEvaluationID    = "triage.evaluation_id"
	AttrBatchID         = "triage.batch_id"
	AttrBatchSize       = "triage.batch.size"
	AttrProtocol        = "triage.protocol"
	AttrProtocolVersion = "triage.protocol.version"
	AttrRule            = "triage.rule"
	AttrLevel           = "triage.level"
	AttrMatched         = "triage.matched"
	AttrRulesChecked    = "triage.rules_checked"
	AttrSymptomCount    = "triage.patient.symptom_count"
	AttrProtocolsLoaded = "triage.protocols_loaded"
	AttrRulesLoaded     = "triage.rules_loaded"
)

// EvaluationAttributes describes the patient at the start of an
// evaluation.
func EvaluationAttributes(evaluationID string, symptoms int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrEvaluationID, evaluationID),
		attribute.Int(AttrSymptomCount, symptoms),
	}
}

// SetDecisionAttributes records the decided level on an evaluation span.
func SetDecisionAttributes(span trace.Span, protocol, rule, level string) {
	span.SetAttributes(
		attribute.String(AttrProtocol, protocol),
		attribute.String(AttrRule, rule),
		attribute.String(AttrLevel, level),
		attribute.Bool(AttrMatched, rule != ""),
	)
}

// ProtocolAttributes identifies the protocol a span evaluates.
func ProtocolAttributes(name, version string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrProtocol, name),
		attribute.String(AttrProtocolVersion, version),
	}
}

// SetOutcomeAttributes records one protocol's result.
func SetOutcomeAttributes(span trace.Span, rule, level string, rulesChecked int) {
	span.SetAttributes(
		attribute.String(AttrRule, rule),
		attribute.String(AttrLevel, level),
		attribute.Bool(AttrMatched, rule != ""),
		attribute.Int(AttrRulesChecked, rulesChecked),
	)
}

// BatchAttributes describes a batch evaluation.
func BatchAttributes(batchID string, size int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrBatchID, batchID),
		attribute.Int(AttrBatchSize, size),
	}
}

// SetReloadAttributes records the protocol set after a successful reload.
func SetReloadAttributes(span trace.Span, protocols, rules int) {
	span.SetAttributes(
		attribute.Int(AttrProtocolsLoaded, protocols),
		attribute.Int(AttrRulesLoaded, rules),
	)
}
