package advisor

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// State identifies a phase of one logical fetch request.
type State string

const (
	StateIdle            State = "idle"
	StatePrimaryPending  State = "primary_pending"
	StateFallbackPending State = "fallback_pending"
	StateRetrying        State = "retrying"
	StateSucceeded       State = "succeeded"
	StateFailed          State = "failed"
)

// Transition is one observed state change of a logical request.
type Transition struct {
	RequestID string
	From      State
	To        State
	Attempt   int // fallback attempt number, 0 while on the primary channel
	Channel   Channel
	Err       error // cause of the transition, set for failover/retry/failure
	At        time.Time
}

// Observer receives state transitions for logging and telemetry.
// Implementations must not block and cannot alter the transition outcome;
// the orchestrator ignores anything an observer does.
type Observer interface {
	ObserveTransition(t Transition)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(t Transition)

// ObserveTransition calls f(t).
func (f ObserverFunc) ObserveTransition(t Transition) { f(t) }

// MultiObserver fans a transition out to several observers.
func MultiObserver(observers ...Observer) Observer {
	return ObserverFunc(func(t Transition) {
		for _, o := range observers {
			if o != nil {
				o.ObserveTransition(t)
			}
		}
	})
}

// LogObserver logs every transition.
func LogObserver() Observer {
	return ObserverFunc(func(t Transition) {
		if t.Err != nil {
			log.Printf("advisor fetch %s: %s -> %s (attempt %d, %s): %v",
				t.RequestID, t.From, t.To, t.Attempt, t.Channel, t.Err)
			return
		}
		log.Printf("advisor fetch %s: %s -> %s (attempt %d, %s)",
			t.RequestID, t.From, t.To, t.Attempt, t.Channel)
	})
}

// OrchestratorConfig holds the resilience parameters of a fetch sequence.
type OrchestratorConfig struct {
	Watchdog    time.Duration // failover delay when the primary stays silent
	MaxAttempts int           // fallback attempt budget
	BackoffBase time.Duration // delay before attempt 2, doubled per attempt
}

// Orchestrator coordinates the primary query channel and the fallback
// transport for recommendation fetches. Each Fetch call is one logical
// request walking Idle -> PrimaryPending -> {Succeeded | FallbackPending ->
// (Retrying -> FallbackPending)* -> {Succeeded | Failed}}.
//
// The attempt counter inside Fetch is the sole coordination token: a new
// attempt never starts while a prior attempt is in flight, and each attempt
// owns its own response. Failover fires exactly once, on whichever of
// primary-error or watchdog-expiry is observed first; a late primary result
// is discarded.
type Orchestrator struct {
	primary  PrimaryClient
	fallback *FallbackTransport
	cfg      OrchestratorConfig
	observer Observer
}

// NewOrchestrator creates an orchestrator. observer may be nil.
func NewOrchestrator(primary PrimaryClient, fallback *FallbackTransport, cfg OrchestratorConfig, observer Observer) *Orchestrator {
	return &Orchestrator{
		primary:  primary,
		fallback: fallback,
		cfg:      cfg,
		observer: observer,
	}
}

// primaryOutcome carries the primary channel's result across the goroutine
// boundary. The channel is buffered so a late result never leaks a goroutine.
type primaryOutcome struct {
	payload  *Payload
	warnings []string
	err      error
}

// Fetch runs one logical request to completion. On success it returns the
// normalized result; on terminal failure it returns the last classified
// error. Cancelling ctx stops the watchdog, backoff timers, and any in-flight
// call, returns ctx.Err(), and suppresses all further transitions.
func (o *Orchestrator) Fetch(ctx context.Context, useDefaults bool) (*Result, error) {
	requestID := uuid.NewString()
	return o.fetch(ctx, requestID, useDefaults)
}

func (o *Orchestrator) fetch(ctx context.Context, requestID string, useDefaults bool) (*Result, error) {
	o.transition(Transition{
		RequestID: requestID,
		From:      StateIdle,
		To:        StatePrimaryPending,
		Channel:   ChannelPrimary,
	})

	primaryCtx, cancelPrimary := context.WithCancel(ctx)
	defer cancelPrimary()

	outcomeCh := make(chan primaryOutcome, 1)
	go func() {
		payload, warnings, err := o.primary.FetchRecommendations(primaryCtx, useDefaults)
		outcomeCh <- primaryOutcome{payload: payload, warnings: warnings, err: err}
	}()

	watchdog := time.NewTimer(o.cfg.Watchdog)
	defer watchdog.Stop()

	var failoverCause error

	select {
	case outcome := <-outcomeCh:
		if outcome.err == nil {
			result := o.buildResult(requestID, outcome.payload, outcome.warnings, ChannelPrimary, 0)
			o.transition(Transition{
				RequestID: requestID,
				From:      StatePrimaryPending,
				To:        StateSucceeded,
				Channel:   ChannelPrimary,
			})
			return result, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		failoverCause = outcome.err

	case <-watchdog.C:
		// Primary neither resolved nor errored in time. Abandon it; the
		// buffered outcome channel absorbs whatever it eventually produces.
		cancelPrimary()
		failoverCause = &FetchError{
			Kind:    KindTimeout,
			Message: "primary channel silent past watchdog",
		}

	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return o.runFallback(ctx, requestID, useDefaults, failoverCause, StatePrimaryPending)
}

// runFallback drives the bounded fallback attempt sequence. from tracks the
// observed predecessor state so transitions read correctly whether entry came
// from failover, a manual retry, or a backoff wait.
func (o *Orchestrator) runFallback(ctx context.Context, requestID string, useDefaults bool, cause error, from State) (*Result, error) {
	var lastErr error

	for attempt := 1; attempt <= o.cfg.MaxAttempts; attempt++ {
		o.transition(Transition{
			RequestID: requestID,
			From:      from,
			To:        StateFallbackPending,
			Attempt:   attempt,
			Channel:   ChannelFallback,
			Err:       cause,
		})
		cause = nil

		payload, warnings, err := o.fallback.Do(ctx, useDefaults)
		if err == nil {
			result := o.buildResult(requestID, payload, warnings, ChannelFallback, attempt)
			o.transition(Transition{
				RequestID: requestID,
				From:      StateFallbackPending,
				To:        StateSucceeded,
				Attempt:   attempt,
				Channel:   ChannelFallback,
			})
			return result, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		lastErr = err
		if attempt == o.cfg.MaxAttempts {
			break
		}

		o.transition(Transition{
			RequestID: requestID,
			From:      StateFallbackPending,
			To:        StateRetrying,
			Attempt:   attempt,
			Channel:   ChannelFallback,
			Err:       err,
		})
		from = StateRetrying

		// 1s, 2s, 4s... between attempts.
		delay := o.cfg.BackoffBase << (attempt - 1)
		backoff := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			backoff.Stop()
			return nil, ctx.Err()
		case <-backoff.C:
		}
	}

	o.transition(Transition{
		RequestID: requestID,
		From:      StateFallbackPending,
		To:        StateFailed,
		Attempt:   o.cfg.MaxAttempts,
		Channel:   ChannelFallback,
		Err:       lastErr,
	})
	return nil, lastErr
}

// Retry restarts a failed logical request from fallback attempt 1 under a
// fresh request ID, skipping the primary channel. This backs the caller's
// manual retry affordance.
func (o *Orchestrator) Retry(ctx context.Context, useDefaults bool) (*Result, error) {
	requestID := uuid.NewString()
	return o.runFallback(ctx, requestID, useDefaults, nil, StateIdle)
}

func (o *Orchestrator) buildResult(requestID string, payload *Payload, warnings []string, channel Channel, attempts int) *Result {
	result := &Result{
		RequestID: requestID,
		Ideas:     Normalize(payload),
		Degraded:  len(warnings) > 0,
		Warnings:  warnings,
		Channel:   channel,
		Attempts:  attempts,
		Payload:   payload,
	}
	if payload != nil && payload.PortfolioAnalysis != nil {
		result.PortfolioValue = payload.PortfolioAnalysis.TotalValue
	}
	return result
}

func (o *Orchestrator) transition(t Transition) {
	t.At = time.Now().UTC()
	if o.observer != nil {
		o.observer.ObserveTransition(t)
	}
}
