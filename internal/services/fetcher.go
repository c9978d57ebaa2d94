package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bobby-s-dev/airport-delays/internal/models"
	"github.com/bobby-s-dev/airport-delays/internal/status"
)

// ErrStatusUnavailable means every candidate endpoint failed for an airport.
var ErrStatusUnavailable = errors.New("status unavailable from all endpoints")

// Resolver is one candidate source for an airport's raw status document.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, code string) (any, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc struct {
	Label string
	Fn    func(ctx context.Context, code string) (any, error)
}

func (r ResolverFunc) Name() string { return r.Label }

func (r ResolverFunc) Resolve(ctx context.Context, code string) (any, error) {
	return r.Fn(ctx, code)
}

// Fetcher tries its resolvers in order and returns the first success.
type Fetcher struct {
	resolvers []Resolver
	timeout   time.Duration
	logger    *zap.Logger
}

func NewFetcher(resolvers []Resolver, timeout time.Duration, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		resolvers: resolvers,
		timeout:   timeout,
		logger:    logger,
	}
}

// FetchStatus returns the normalized live status for code. Each attempt is
// bounded by the fetcher's timeout; the attempt's context is cancelled when
// it expires so the underlying request is aborted.
func (f *Fetcher) FetchStatus(ctx context.Context, code string) (models.AirportStatus, error) {
	var errs []error

	for _, r := range f.resolvers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		raw, err := f.attempt(ctx, r, code)
		if err != nil {
			f.logger.Debug("Status endpoint failed",
				zap.String("code", code),
				zap.String("endpoint", r.Name()),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", r.Name(), err))
			continue
		}

		return status.Normalize(code, raw, true), nil
	}

	return models.AirportStatus{}, fmt.Errorf("%w for %s: %w", ErrStatusUnavailable, code, errors.Join(errs...))
}

func (f *Fetcher) attempt(ctx context.Context, r Resolver, code string) (any, error) {
	if f.timeout <= 0 {
		return r.Resolve(ctx, code)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	raw, err := r.Resolve(attemptCtx, code)
	if err == nil && attemptCtx.Err() != nil {
		// A resolver that ignores its context still loses after the deadline.
		err = attemptCtx.Err()
	}
	return raw, err
}

func (f *Fetcher) Endpoints() []string {
	names := make([]string, len(f.resolvers))
	for i, r := range f.resolvers {
		names[i] = r.Name()
	}
	return names
}

type EndpointState struct {
	Name string `json:"name"`
	// Breakers counts the endpoint's per-airport circuit breakers by state.
	Breakers map[string]int `json:"breakers,omitempty"`
}

// EndpointStates reports each resolver's circuit breakers in try order.
func (f *Fetcher) EndpointStates() []EndpointState {
	states := make([]EndpointState, len(f.resolvers))
	for i, r := range f.resolvers {
		states[i] = EndpointState{Name: r.Name()}
		if b, ok := r.(interface{ BreakerCounts() map[string]int }); ok {
			states[i].Breakers = b.BreakerCounts()
		}
	}
	return states
}
