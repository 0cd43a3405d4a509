// Package resilience wraps outbound calls to external services with a
// per-service circuit breaker, bounded retry with jittered backoff, a
// per-call timeout, and a fallback.
//
// Errors representing expected domain outcomes (errs.IsDomain) bypass retry
// and circuit-breaker accounting entirely and propagate unchanged; only
// infrastructure failures count toward breaker state and reach the fallback.
package resilience

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"

	"github.com/bankcore/debit-card-service/internal/backoff"
	"github.com/bankcore/debit-card-service/internal/errs"
	"github.com/bankcore/debit-card-service/internal/logging"
)

// Operation is a single outbound call. It must honor ctx cancellation.
type Operation func(ctx context.Context) (any, error)

// Fallback produces a substitute result when the resilience policy is
// exhausted or the circuit is open. It must re-propagate domain errors
// unchanged.
type Fallback func(err error) (any, error)

// State represents the circuit breaker state of a Caller.
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half-open"
)

// Counts is a snapshot of the breaker statistics.
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveFailures  uint32
	ConsecutiveSuccesses uint32
}

// Caller executes operations against one downstream service under the
// resilience policy. Each downstream gets its own explicitly constructed
// Caller; the breaker state is owned by the Caller, never global.
// Safe for concurrent use.
type Caller struct {
	service     string
	cfg         Config
	breaker     *gobreaker.CircuitBreaker
	isRetryable func(error) bool
	logger      logging.Logger
}

// NewCaller builds a Caller for the named downstream service.
func NewCaller(service string, cfg Config, logger logging.Logger) *Caller {
	cfg = cfg.withDefaults()

	if logger == nil {
		logger = logging.NoneLogger{}
	}

	c := &Caller{
		service: service,
		cfg:     cfg,
		// Infrastructure failures are retryable unless overridden.
		isRetryable: func(err error) bool { return !errs.IsDomain(err) },
		logger:      logger,
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "service-" + service,
		// Exactly one trial call is allowed through while half-open.
		MaxRequests: 1,
		Timeout:     cfg.OpenCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		// Domain outcomes never count toward breaker state.
		IsSuccessful: func(err error) bool {
			return err == nil || errs.IsDomain(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("circuit breaker [%s] state changed: %s -> %s", service, from, to)
		},
	})

	return c
}

// WithRetryable overrides the retryability predicate. Domain errors are never
// retried regardless of the predicate.
func (c *Caller) WithRetryable(fn func(error) bool) *Caller {
	if fn != nil {
		c.isRetryable = fn
	}

	return c
}

// Invoke executes op under the full policy with the default fallback, which
// converts infrastructure failures into a service-unavailable error.
func (c *Caller) Invoke(ctx context.Context, op Operation) (any, error) {
	return c.InvokeWithFallback(ctx, op, c.unavailableFallback)
}

// InvokeWithFallback executes op under the full policy. The fallback is
// invoked only when the circuit is open or all infrastructure failure
// handling is exhausted; domain errors propagate unchanged without reaching
// it.
func (c *Caller) InvokeWithFallback(ctx context.Context, op Operation, fallback Fallback) (any, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		return c.attemptWithRetry(ctx, op)
	})
	if err == nil {
		return result, nil
	}

	if errs.IsDomain(err) {
		return nil, err
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Warnf("circuit breaker [%s] is open, request rejected without calling downstream", c.service)
	}

	if fallback == nil {
		fallback = c.unavailableFallback
	}

	return fallback(err)
}

// attemptWithRetry runs op up to 1+MaxRetries times. A domain error aborts
// immediately; a success on any attempt wins. The whole cycle surfaces to the
// circuit breaker as a single failure event when every attempt fails.
func (c *Caller) attemptWithRetry(ctx context.Context, op Operation) (any, error) {
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := backoff.ExponentialWithJitter(c.cfg.RetryBackoff, attempt-1)
			if err := backoff.SleepWithContext(ctx, delay); err != nil {
				return nil, lastErr
			}

			c.logger.Warnf("retrying call to %s (attempt %d/%d): %v",
				c.service, attempt, c.cfg.MaxRetries, lastErr)
		}

		result, err := c.attempt(ctx, op)
		if err == nil {
			return result, nil
		}

		if errs.IsDomain(err) || !c.isRetryable(err) {
			return nil, err
		}

		lastErr = err
	}

	return nil, lastErr
}

// attempt bounds a single execution of op by the configured call timeout.
// The operation runs in its own goroutine so a downstream that ignores ctx
// cannot hold the caller past the deadline.
func (c *Caller) attempt(ctx context.Context, op Operation) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
	defer cancel()

	type outcome struct {
		result any
		err    error
	}

	done := make(chan outcome, 1)

	go func() {
		result, err := op(ctx)
		done <- outcome{result: result, err: err}
	}()

	select {
	case out := <-done:
		return out.result, out.err
	case <-ctx.Done():
		return nil, fmt.Errorf("call to %s exceeded %s: %w", c.service, c.cfg.CallTimeout, ctx.Err())
	}
}

func (c *Caller) unavailableFallback(err error) (any, error) {
	return nil, errs.Unavailable(c.service, err)
}

// Service returns the downstream service name this caller guards.
func (c *Caller) Service() string {
	return c.service
}

// State returns the current circuit breaker state.
func (c *Caller) State() State {
	switch c.breaker.State() {
	case gobreaker.StateOpen:
		return StateOpen
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	default:
		return StateClosed
	}
}

// Counts returns a snapshot of the breaker statistics.
func (c *Caller) Counts() Counts {
	counts := c.breaker.Counts()

	return Counts{
		Requests:             counts.Requests,
		TotalSuccesses:       counts.TotalSuccesses,
		TotalFailures:        counts.TotalFailures,
		ConsecutiveFailures:  counts.ConsecutiveFailures,
		ConsecutiveSuccesses: counts.ConsecutiveSuccesses,
	}
}
