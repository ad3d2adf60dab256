package triage

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"mercator-hq/triage/pkg/patient"
	"mercator-hq/triage/pkg/protocol"
	"mercator-hq/triage/pkg/protocol/compiler"
	"mercator-hq/triage/pkg/spec"
	"mercator-hq/triage/pkg/telemetry/logging"
	"mercator-hq/triage/pkg/telemetry/tracing"
)

// Engine evaluates patients against the protocols of a Source.
type Engine struct {
	// protocols is sorted by name
	protocols   []*compiler.Compiled
	protocolsMu sync.RWMutex

	config   *Config
	source   Source
	logger   *slog.Logger
	recorder Recorder
	tracer   trace.Tracer

	// reload bookkeeping, guarded by protocolsMu
	lastReload   time.Time
	lastError    error
	reloadCount  int
	failureCount int

	// reloadMu serialises reloads so a slow one cannot overwrite a newer
	// set.
	reloadMu sync.Mutex

	watchMu     sync.Mutex
	watchCancel context.CancelFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithRecorder sets the measurement sink. A nil recorder disables
// measurements.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r == nil {
			r = nopRecorder{}
		}
		e.recorder = r
	}
}

// WithTracer sets the tracer for evaluation and reload spans. A nil
// tracer disables spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t == nil {
			t = noop.NewTracerProvider().Tracer(tracing.InstrumentationName)
		}
		e.tracer = t
	}
}

// NewEngine creates an engine and performs the initial load from source.
func NewEngine(config *Config, source Source, logger *slog.Logger, opts ...Option) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if source == nil {
		return nil, fmt.Errorf("protocol source cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		config:   config,
		source:   source,
		logger:   logger,
		recorder: nopRecorder{},
		tracer:   noop.NewTracerProvider().Tracer(tracing.InstrumentationName),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.Reload(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to load initial protocols: %w", err)
	}

	return e, nil
}

// Evaluate triages one patient against every loaded protocol.
func (e *Engine) Evaluate(ctx context.Context, p patient.Patient) (*Decision, error) {
	protocols := e.snapshot()
	if len(protocols) == 0 {
		return nil, ErrNoProtocolsLoaded
	}

	id := uuid.NewString()
	ctx, span := e.tracer.Start(ctx, tracing.SpanEvaluate,
		trace.WithAttributes(tracing.EvaluationAttributes(id, p.Symptoms.Len())...))
	defer span.End()

	if e.config.EvaluationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.EvaluationTimeout)
		defer cancel()
	}

	decision := &Decision{
		ID:        id,
		Patient:   p,
		Outcomes:  make([]*Outcome, 0, len(protocols)),
		Timestamp: time.Now(),
	}
	ctx = logging.WithEvaluationID(ctx, decision.ID)

	var best *Outcome
	for _, c := range protocols {
		out, err := e.evaluateProtocol(ctx, c, p, e.recorder)
		if err != nil {
			tracing.RecordError(span, err)
			e.logger.WarnContext(ctx, "evaluation aborted", "error", err)
			return nil, err
		}
		decision.Outcomes = append(decision.Outcomes, out)

		if best == nil || out.Level.MoreSevereThan(best.Level) {
			best = out
		}
	}

	decision.Level = best.Level
	decision.Rule = best.Rule
	decision.Protocol = best.Protocol
	decision.Duration = time.Since(decision.Timestamp)
	tracing.SetDecisionAttributes(span, decision.Protocol, decision.Rule, string(decision.Level))

	e.logger.DebugContext(ctx, "patient triaged",
		"patient_name", p.Name,
		"level", decision.Level,
		"rule", decision.Rule,
		"decided_by", decision.Protocol,
		"duration_us", decision.Duration.Microseconds(),
	)

	return decision, nil
}

// EvaluateBatch triages patients concurrently using at most
// Config.Workers goroutines. Decisions are returned in input order. The
// first failure cancels the remaining evaluations.
func (e *Engine) EvaluateBatch(ctx context.Context, patients []patient.Patient) ([]*Decision, error) {
	decisions := make([]*Decision, len(patients))
	if len(patients) == 0 {
		return decisions, nil
	}

	batchID := uuid.NewString()
	ctx, span := e.tracer.Start(ctx, tracing.SpanBatch,
		trace.WithAttributes(tracing.BatchAttributes(batchID, len(patients))...))
	defer span.End()

	g, gctx := errgroup.WithContext(logging.WithBatchID(ctx, batchID))
	g.SetLimit(e.config.Workers)

	start := time.Now()
	for i := range patients {
		g.Go(func() error {
			d, err := e.Evaluate(gctx, patients[i])
			if err != nil {
				return fmt.Errorf("patient %d: %w", i, err)
			}
			decisions[i] = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	e.logger.InfoContext(logging.WithBatchID(ctx, batchID), "batch triaged",
		"count", len(patients),
		"workers", e.config.Workers,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return decisions, nil
}

// evaluateProtocol returns the outcome of c for p: the first matching rule
// in evaluation order, or the default level.
func (e *Engine) evaluateProtocol(ctx context.Context, c *compiler.Compiled, p patient.Patient, rec Recorder) (*Outcome, error) {
	ctx, span := e.tracer.Start(ctx, tracing.SpanProtocol,
		trace.WithAttributes(tracing.ProtocolAttributes(c.Name, c.Version)...))
	defer span.End()

	start := time.Now()
	out := &Outcome{
		Protocol: c.Name,
		Version:  c.Version,
		Level:    c.DefaultLevel,
	}

	checked := 0
	for _, r := range c.Rules {
		if err := ctx.Err(); err != nil {
			evalErr := &EvaluationError{Protocol: c.Name, Rule: r.Name, Cause: err}
			tracing.RecordError(span, evalErr)
			return nil, evalErr
		}
		checked++

		var matched bool
		if e.config.EnableTrace {
			var trace *spec.Trace
			matched, trace = spec.Explain(r.Spec, p)
			out.Trace = append(out.Trace, RuleTrace{Rule: r.Name, Matched: matched, Steps: trace.Steps})
		} else {
			matched = r.Spec.IsSatisfiedBy(p)
		}

		rec.ObserveRule(c.Name, r.Name, matched)

		if matched {
			out.Rule = r.Name
			out.Level = r.Level
			out.Priority = r.Priority
			break
		}
	}

	out.Duration = time.Since(start)
	tracing.SetOutcomeAttributes(span, out.Rule, string(out.Level), checked)
	rec.ObserveEvaluation(c.Name, out.Rule, string(out.Level), out.Duration)
	return out, nil
}

// RunTests runs the test cases embedded in every loaded protocol. Each
// test is evaluated against its own protocol only. Test runs are not
// recorded.
func (e *Engine) RunTests(ctx context.Context) ([]*TestResult, error) {
	protocols := e.snapshot()
	if len(protocols) == 0 {
		return nil, ErrNoProtocolsLoaded
	}

	var results []*TestResult
	for _, c := range protocols {
		for _, tc := range c.Protocol.Tests {
			result := &TestResult{
				Protocol: c.Name,
				Test:     tc.Name,
				Expected: tc.Expect,
				Location: tc.Location,
			}
			results = append(results, result)

			symptoms, err := patient.ParseSymptomSet(tc.Patient.Symptoms...)
			if err != nil {
				result.Message = fmt.Sprintf("invalid test patient: %v", err)
				continue
			}

			out, err := e.evaluateProtocol(ctx, c, patient.Patient{Name: tc.Patient.Name, Symptoms: symptoms}, nopRecorder{})
			if err != nil {
				return results, err
			}
			result.Got = out
			result.Passed, result.Message = checkExpectation(tc.Expect.Level, tc.Expect.Rule, out)
		}
	}

	return results, nil
}

func checkExpectation(level, rule string, out *Outcome) (bool, string) {
	if level != "" && string(out.Level) != level {
		return false, fmt.Sprintf("expected level %s, got %s", level, out.Level)
	}
	if rule != "" && out.Rule != rule {
		got := out.Rule
		if got == "" {
			got = "no rule (default level)"
		}
		return false, fmt.Sprintf("expected rule %s, got %s", rule, got)
	}
	return true, ""
}

// Reload loads, validates and compiles every protocol from the source and
// swaps them in atomically. On failure the previous set stays active.
func (e *Engine) Reload(ctx context.Context) error {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	ctx, span := e.tracer.Start(ctx, tracing.SpanReload)
	defer span.End()

	startTime := time.Now()
	e.logger.InfoContext(ctx, "reloading protocols")

	compiled, rules, err := e.load(ctx)
	if err != nil {
		e.protocolsMu.Lock()
		e.lastError = err
		e.failureCount++
		keep := len(e.protocols)
		e.protocolsMu.Unlock()

		e.recorder.ObserveReload(false, keep)
		tracing.RecordError(span, err)
		e.logger.ErrorContext(ctx, "failed to reload protocols, keeping previous protocols",
			"error", err,
			"active_protocols", keep,
			"duration_ms", time.Since(startTime).Milliseconds(),
		)
		return err
	}

	e.protocolsMu.Lock()
	e.protocols = compiled
	e.lastReload = time.Now()
	e.lastError = nil
	e.reloadCount++
	e.protocolsMu.Unlock()

	e.recorder.ObserveReload(true, len(compiled))
	tracing.SetReloadAttributes(span, len(compiled), rules)

	if len(compiled) == 0 {
		e.logger.WarnContext(ctx, "protocol source is empty")
	}
	e.logger.InfoContext(ctx, "protocols reloaded successfully",
		"protocol_count", len(compiled),
		"rule_count", rules,
		"duration_ms", time.Since(startTime).Milliseconds(),
	)

	return nil
}

func (e *Engine) load(ctx context.Context) ([]*compiler.Compiled, int, error) {
	protocols, err := e.source.Load(ctx)
	if err != nil {
		return nil, 0, &ReloadError{Cause: err}
	}

	if len(protocols) > e.config.MaxProtocols {
		return nil, 0, &ValidationError{
			Protocol: "global",
			Cause:    fmt.Errorf("too many protocols: %d (max: %d)", len(protocols), e.config.MaxProtocols),
		}
	}

	compiled := make([]*compiler.Compiled, 0, len(protocols))
	seen := make(map[string]string, len(protocols))
	rules := 0

	for _, p := range protocols {
		if first, dup := seen[p.Name]; dup && p.Name != "" {
			return nil, 0, &ValidationError{
				Protocol: p.Name,
				Cause:    fmt.Errorf("duplicate protocol name (defined in %s and %s)", first, p.SourceFile),
			}
		}
		seen[p.Name] = p.SourceFile

		warnings, err := protocol.Validate(p, e.config.Strict)
		for _, w := range warnings {
			e.logger.WarnContext(logging.WithProtocol(ctx, p.Name), "protocol warning",
				"message", w.Message,
				"location", w.Location.String(),
			)
		}
		if err != nil {
			return nil, 0, &ValidationError{Protocol: p.Name, Cause: err}
		}

		c, err := compiler.Compile(p)
		if err != nil {
			return nil, 0, &ValidationError{Protocol: p.Name, Cause: err}
		}
		compiled = append(compiled, c)
		rules += len(c.Rules)
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Name < compiled[j].Name
	})

	return compiled, rules, nil
}

// Watch reloads on every event from the source until ctx is cancelled or
// Close is called. It blocks.
func (e *Engine) Watch(ctx context.Context) error {
	e.watchMu.Lock()
	if e.watchCancel != nil {
		e.watchMu.Unlock()
		return ErrWatchRunning
	}
	watchCtx, cancel := context.WithCancel(ctx)
	e.watchCancel = cancel
	e.watchMu.Unlock()

	defer func() {
		e.watchMu.Lock()
		e.watchCancel = nil
		e.watchMu.Unlock()
		cancel()
	}()

	events, err := e.source.Watch(watchCtx)
	if err != nil {
		return fmt.Errorf("failed to start protocol watcher: %w", err)
	}

	e.logger.Info("watching protocols for changes")

	for {
		select {
		case <-watchCtx.Done():
			e.logger.Info("protocol watcher stopped")
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			e.handleEvent(watchCtx, event)
		}
	}
}

func (e *Engine) handleEvent(ctx context.Context, event Event) {
	if event.Error != nil {
		e.logger.Warn("protocol watcher error", "error", event.Error)
		return
	}

	e.logger.Info("protocol source changed",
		"type", event.Type,
		"path", event.Path,
	)

	// Reload logs its own failures.
	_ = e.Reload(ctx)
}

// Close stops an active Watch.
func (e *Engine) Close() error {
	e.watchMu.Lock()
	if e.watchCancel != nil {
		e.watchCancel()
	}
	e.watchMu.Unlock()
	return nil
}

// Protocols returns the loaded protocols ordered by name.
func (e *Engine) Protocols() []*compiler.Compiled {
	return e.snapshot()
}

// Protocol returns the loaded protocol with the given name, or nil.
func (e *Engine) Protocol(name string) *compiler.Compiled {
	for _, c := range e.snapshot() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Status reports the loaded set and reload history.
func (e *Engine) Status() Status {
	e.protocolsMu.RLock()
	defer e.protocolsMu.RUnlock()

	rules := 0
	for _, c := range e.protocols {
		rules += len(c.Rules)
	}
	return Status{
		Protocols:    len(e.protocols),
		Rules:        rules,
		LastReload:   e.lastReload,
		LastError:    e.lastError,
		ReloadCount:  e.reloadCount,
		FailureCount: e.failureCount,
	}
}

func (e *Engine) snapshot() []*compiler.Compiled {
	e.protocolsMu.RLock()
	defer e.protocolsMu.RUnlock()

	protocols := make([]*compiler.Compiled, len(e.protocols))
	copy(protocols, e.protocols)
	return protocols
}
