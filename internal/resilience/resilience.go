// Package resilience bounds every collaborator call with a timeout and a
// circuit breaker. There are no retries: a failed call fails the request.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

var (
	// ErrCircuitOpen indicates the breaker rejected the call without trying it.
	ErrCircuitOpen = gobreaker.ErrOpenState
	// ErrTooManyRequests indicates the half-open probe budget is used up.
	ErrTooManyRequests = gobreaker.ErrTooManyRequests
	// ErrTimeout indicates the call exceeded its deadline.
	ErrTimeout = errors.New("operation timed out")
)

// Config configures a Breaker.
type Config struct {
	// Name identifies the collaborator in logs.
	Name string
	// Timeout bounds a single call.
	Timeout time.Duration
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// Breaker guards calls to one collaborator.
type Breaker struct {
	name    string
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker
}

// New creates a Breaker, filling zero values with defaults.
func New(cfg Config) *Breaker {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		// Cancelled requests do not count against the collaborator.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &Breaker{
		name:    cfg.Name,
		timeout: cfg.Timeout,
		cb:      gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the guarded collaborator's name.
func (b *Breaker) Name() string { return b.name }

// State returns the breaker's current state ("closed", "half-open", "open").
func (b *Breaker) State() string { return b.cb.State().String() }

// Execute runs op under the breaker with the configured timeout.
func (b *Breaker) Execute(ctx context.Context, op func(context.Context) error) error {
	_, err := Call(ctx, b, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// Call runs op under b and returns its result.
func Call[T any](ctx context.Context, b *Breaker, op func(context.Context) (T, error)) (T, error) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	out, err := b.cb.Execute(func() (interface{}, error) {
		v, err := op(ctx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w after %s: %w", ErrTimeout, b.timeout, err)
			}
			return nil, err
		}
		return v, nil
	})
	if err != nil {
		return zero, err
	}

	v, _ := out.(T)
	return v, nil
}
