// Package dispatch calls text-generation models in priority order, retrying transient
// failures and malformed output within a per-model budget and falling back to the next model.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/logger"
)

const (
	DefaultMaxRetries     = 3
	DefaultBackoff        = 2 * time.Second
	DefaultAttemptTimeout = 60 * time.Second
)

// MaxLoggedErrorLength caps the error text of an attempt log entry, in runes.
const MaxLoggedErrorLength = 300

// Validator checks raw model text. Any error it returns is treated as malformed output.
type Validator func(text string) error

// Options configures a Dispatcher.
type Options struct {
	// Models is the fallback chain in priority order.
	Models         []llm.ModelSpec
	MaxRetries     int
	Backoff        time.Duration
	AttemptTimeout time.Duration
	Logger         *zap.Logger
	// Sleep waits between retries; tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Result is the outcome of Invoke. When Degraded is true Text is DegradedMessage and Model is zero.
type Result struct {
	Text     string
	Model    llm.ModelSpec
	Attempts []Attempt
	Degraded bool
}

// Dispatcher walks the model chain. It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	backends map[llm.Provider]llm.Backend
	models   []llm.ModelSpec
	retries  int
	backoff  time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

// New validates the model chain and checks that every model has a backend.
func New(backends map[llm.Provider]llm.Backend, opts Options) (*Dispatcher, error) {
	if len(opts.Models) == 0 {
		return nil, fmt.Errorf("at least one model is required")
	}

	models := make([]llm.ModelSpec, len(opts.Models))
	copy(models, opts.Models)
	for _, m := range models {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if backends[m.Provider] == nil {
			return nil, fmt.Errorf("model %s: no backend for provider %q", m.ID, m.Provider)
		}
	}

	d := &Dispatcher{
		backends: backends,
		models:   models,
		retries:  opts.MaxRetries,
		backoff:  opts.Backoff,
		timeout:  opts.AttemptTimeout,
		logger:   logger.OrNop(opts.Logger),
		sleep:    opts.Sleep,
	}
	if d.retries <= 0 {
		d.retries = DefaultMaxRetries
	}
	if d.backoff < 0 {
		d.backoff = 0
	}
	if d.timeout <= 0 {
		d.timeout = DefaultAttemptTimeout
	}
	if d.sleep == nil {
		d.sleep = sleepContext
	}
	return d, nil
}

// Models returns a copy of the configured chain.
func (d *Dispatcher) Models() []llm.ModelSpec {
	out := make([]llm.ModelSpec, len(d.models))
	copy(out, d.models)
	return out
}

// WorstCaseLatency is the longest Invoke can take when every attempt runs to its timeout:
// models × (retries × attempt timeout + (retries − 1) × backoff).
func (d *Dispatcher) WorstCaseLatency() time.Duration {
	return WorstCaseLatency(len(d.models), d.retries, d.timeout, d.backoff)
}

// WorstCaseLatency computes the bound for an arbitrary configuration.
func WorstCaseLatency(models, retries int, attemptTimeout, backoff time.Duration) time.Duration {
	if models <= 0 || retries <= 0 {
		return 0
	}
	perModel := time.Duration(retries)*attemptTimeout + time.Duration(retries-1)*backoff
	return time.Duration(models) * perModel
}

// Invoke sends req through the chain until a model returns text that passes validate.
// On exhaustion it returns a degraded Result together with an *ExhaustedError.
func (d *Dispatcher) Invoke(ctx context.Context, req llm.Request, validate Validator) (*Result, error) {
	result := &Result{}
	var lastErr error

	for _, model := range d.models {
		backend := d.backends[model.Provider]
		log := logger.WithModel(d.logger, string(model.Provider), model.ID)

		for n := 1; n <= d.retries; n++ {
			if err := ctx.Err(); err != nil {
				return d.exhausted(result, err)
			}

			attempt := Attempt{ID: uuid.New(), Model: model, Number: n}
			start := time.Now()
			res := d.try(ctx, backend, model, req, validate)
			attempt.Latency = time.Since(start)
			attempt.Outcome = res.outcome
			attempt.Err = res.err
			result.Attempts = append(result.Attempts, attempt)
			logAttempt(log, attempt)

			if res.outcome == OutcomeSuccess {
				result.Text = res.text
				result.Model = model
				return result, nil
			}
			lastErr = res.err

			if !res.retryable() || n == d.retries {
				break
			}
			if err := d.sleep(ctx, d.backoff); err != nil {
				return d.exhausted(result, err)
			}
		}
	}

	return d.exhausted(result, lastErr)
}

// try runs one attempt under its own deadline.
func (d *Dispatcher) try(ctx context.Context, backend llm.Backend, model llm.ModelSpec, req llm.Request, validate Validator) attemptResult {
	attemptCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	text, err := backend.Invoke(attemptCtx, model, req)
	if err != nil {
		return attemptResult{outcome: classify(err), err: err}
	}

	if validate != nil {
		if verr := validate(text); verr != nil {
			if classify(verr) != OutcomeMalformed {
				verr = &llm.MalformedOutputError{Message: "validation failed", Cause: verr}
			}
			return attemptResult{outcome: OutcomeMalformed, err: verr}
		}
	}

	return attemptResult{text: text, outcome: OutcomeSuccess}
}

func (d *Dispatcher) exhausted(result *Result, cause error) (*Result, error) {
	result.Text = DegradedMessage
	result.Model = llm.ModelSpec{}
	result.Degraded = true

	d.logger.Warn("all models exhausted",
		zap.Int("attempts", len(result.Attempts)),
		zap.Int("models", len(d.models)),
		zap.Error(cause),
	)

	return result, &ExhaustedError{
		Attempts: len(result.Attempts),
		Models:   len(d.models),
		Cause:    cause,
	}
}

// logAttempt logs one attempt on a logger that already carries the model fields.
// Backend errors can echo whole response bodies, so their text is truncated.
func logAttempt(log *zap.Logger, a Attempt) {
	fields := []zap.Field{
		zap.String(logger.FieldAttemptID, a.ID.String()),
		zap.Int("attempt", a.Number),
		zap.String("outcome", string(a.Outcome)),
		zap.Duration("latency", a.Latency),
	}
	if a.Err != nil {
		fields = append(fields, zap.String("error", logger.TruncateForLog(a.Err.Error(), MaxLoggedErrorLength)))
		log.Warn("model attempt failed", fields...)
		return
	}
	log.Info("model attempt succeeded", fields...)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
