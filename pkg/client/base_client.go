package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}

// endpointFault reports whether err says something about the endpoint
// itself rather than the one resource that was requested.
func endpointFault(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500 || se.Code == http.StatusTooManyRequests
	}
	return true
}

// BaseClient keeps one circuit breaker per URL, so a resource that keeps
// failing never short-circuits requests for a different resource.
type BaseClient struct {
	name       string
	client     HTTPClient
	logger     *zap.Logger
	settings   gobreaker.Settings
	maxRetries int
	retryDelay time.Duration
	multiplier float64

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

type ClientConfig struct {
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	Multiplier     float64
	Threshold      int
	BreakerTimeout time.Duration
}

func NewBaseClient(name string, config ClientConfig, logger *zap.Logger) *BaseClient {
	return NewBaseClientWithHTTP(name, &http.Client{Timeout: config.Timeout}, config, logger)
}

// NewBaseClientWithHTTP lets tests and callers supply their own transport.
func NewBaseClientWithHTTP(name string, httpClient HTTPClient, config ClientConfig, logger *zap.Logger) *BaseClient {
	threshold := uint32(config.Threshold)
	if threshold == 0 {
		threshold = 3
	}
	breakerTimeout := config.BreakerTimeout
	if breakerTimeout <= 0 {
		breakerTimeout = 30 * time.Second
	}

	breakerSettings := gobreaker.Settings{
		MaxRequests: 1,
		Interval:    2 * breakerTimeout,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= threshold && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &BaseClient{
		name:       name,
		client:     httpClient,
		logger:     logger,
		settings:   breakerSettings,
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
		multiplier: config.Multiplier,
		breakers:   make(map[string]*gobreaker.CircuitBreaker),
	}
}

func (c *BaseClient) breaker(url string) *gobreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	cb, ok := c.breakers[url]
	if !ok {
		settings := c.settings
		settings.Name = c.name + " " + url
		cb = gobreaker.NewCircuitBreaker(settings)
		c.breakers[url] = cb
	}
	return cb
}

// BreakerState is the circuit state for url; unseen URLs are closed.
func (c *BaseClient) BreakerState(url string) gobreaker.State {
	c.mu.Lock()
	cb, ok := c.breakers[url]
	c.mu.Unlock()
	if !ok {
		return gobreaker.StateClosed
	}
	return cb.State()
}

// BreakerCounts tallies the client's breakers by state name.
func (c *BaseClient) BreakerCounts() map[string]int {
	c.mu.Lock()
	breakers := make([]*gobreaker.CircuitBreaker, 0, len(c.breakers))
	for _, cb := range c.breakers {
		breakers = append(breakers, cb)
	}
	c.mu.Unlock()

	counts := map[string]int{
		gobreaker.StateClosed.String():   0,
		gobreaker.StateHalfOpen.String(): 0,
		gobreaker.StateOpen.String():     0,
	}
	for _, cb := range breakers {
		counts[cb.State().String()]++
	}
	return counts
}

// GetWithRetry fetches url through its breaker. Client errors other than
// 429 are returned to the caller without counting against the breaker.
func (c *BaseClient) GetWithRetry(ctx context.Context, url string) ([]byte, error) {
	var resourceErr error
	body, err := c.breaker(url).Execute(func() (interface{}, error) {
		data, err := c.doGetWithRetry(ctx, url)
		if err != nil && !endpointFault(err) {
			resourceErr = err
			return nil, nil
		}
		return data, err
	})
	if err != nil {
		return nil, err
	}
	if resourceErr != nil {
		return nil, resourceErr
	}
	return body.([]byte), nil
}

func (c *BaseClient) doGetWithRetry(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(float64(c.retryDelay) * math.Pow(c.multiplier, float64(attempt-1)))
			c.logger.Debug("Retrying request",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay))

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request failed: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			c.logger.Debug("HTTP request failed",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Error(err))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()

			if err != nil {
				lastErr = err
				continue
			}

			c.logger.Debug("Request successful",
				zap.String("url", url),
				zap.Int("status", resp.StatusCode),
				zap.Int("body_size", len(body)))

			return body, nil
		}

		resp.Body.Close()
		lastErr = &StatusError{Code: resp.StatusCode}

		// Don't retry on client errors (4xx) except 429 (rate limiting)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			break
		}
	}

	return nil, fmt.Errorf("request failed after %d attempt(s): %w", c.maxRetries+1, lastErr)
}
