package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/airport-delays/internal/models"
)

// ErrStaleCycle is returned when a newer refresh cycle was installed while
// this one was still in flight.
var ErrStaleCycle = errors.New("refresh cycle superseded by a newer cycle")

type StatusFetcher interface {
	FetchStatus(ctx context.Context, code string) (models.AirportStatus, error)
}

// Aggregator fans out one fetch per tracked airport and is the only writer
// of the StatusCache.
type Aggregator struct {
	fetcher  StatusFetcher
	fallback Snapshot
	cache    *StatusCache
	logger   *zap.Logger
	cycleSeq atomic.Uint64

	mu            sync.RWMutex
	lastFetchTime time.Time
	lastDuration  time.Duration
	lastHealth    models.FeedHealth
	cycles        int
	staleCycles   int
	successCount  int
	failureCount  int
}

func NewAggregator(fetcher StatusFetcher, fallback Snapshot, cache *StatusCache, logger *zap.Logger) *Aggregator {
	if fallback == nil {
		fallback = Snapshot{}
	}
	return &Aggregator{
		fetcher:  fetcher,
		fallback: fallback,
		cache:    cache,
		logger:   logger,
	}
}

type fetchOutcome struct {
	status models.AirportStatus
	live   bool
}

// Refresh fetches every code concurrently and merges the outcomes with the
// fallback table. The result is only built, cached and returned once every
// per-airport fetch has resolved. If a newer cycle has already been cached
// the result is still returned together with ErrStaleCycle.
func (a *Aggregator) Refresh(ctx context.Context, codes []string) (*models.RefreshResult, error) {
	codes = uniqueCodes(codes)
	result := &models.RefreshResult{
		CycleID:   a.cycleSeq.Add(1),
		TraceID:   uuid.NewString(),
		Codes:     codes,
		Statuses:  make(map[string]models.AirportStatus, len(codes)),
		Total:     len(codes),
		StartedAt: time.Now(),
	}

	outcomes := make([]fetchOutcome, len(codes))
	var wg sync.WaitGroup

	for i, code := range codes {
		wg.Add(1)
		go func(i int, code string) {
			defer wg.Done()

			st, err := a.fetcher.FetchStatus(ctx, code)
			if err != nil {
				a.logger.Warn("Using fallback status",
					zap.String("code", code),
					zap.Uint64("cycle", result.CycleID),
					zap.Error(err))
				outcomes[i] = fetchOutcome{status: a.fallback.StatusFor(code)}
				return
			}
			outcomes[i] = fetchOutcome{status: st, live: true}
		}(i, code)
	}

	wg.Wait()

	for i, code := range codes {
		result.Statuses[code] = outcomes[i].status
		if outcomes[i].live {
			result.Live++
		}
	}
	result.FinishedAt = time.Now()

	health := result.Health()
	duration := result.FinishedAt.Sub(result.StartedAt)

	a.logger.Info("Delay refresh completed",
		zap.Uint64("cycle", result.CycleID),
		zap.String("trace_id", result.TraceID),
		zap.Int("live", result.Live),
		zap.Int("total", result.Total),
		zap.String("health", string(health.State)),
		zap.Duration("duration", duration))

	if !a.cache.Replace(result.CycleID, codes, result.Statuses) {
		a.mu.Lock()
		a.staleCycles++
		a.mu.Unlock()
		return result, ErrStaleCycle
	}

	a.mu.Lock()
	a.lastFetchTime = result.StartedAt
	a.lastDuration = duration
	a.lastHealth = health
	a.cycles++
	a.successCount += result.Live
	a.failureCount += result.Total - result.Live
	a.mu.Unlock()

	return result, nil
}

// FallbackStatus is the status the aggregator would install for a failed fetch.
func (a *Aggregator) FallbackStatus(code string) models.AirportStatus {
	return a.fallback.StatusFor(code)
}

func (a *Aggregator) Cache() *StatusCache {
	return a.cache
}

func (a *Aggregator) GetLastFetchTime() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastFetchTime
}

func (a *Aggregator) GetStats() map[string]interface{} {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stats := map[string]interface{}{
		"last_fetch_time":   a.lastFetchTime,
		"last_duration":     a.lastDuration.String(),
		"last_health":       a.lastHealth,
		"cycles":            a.cycles,
		"stale_cycles":      a.staleCycles,
		"live_fetches":      a.successCount,
		"fallback_fetches":  a.failureCount,
		"fallback_airports": len(a.fallback),
		"cache_stats":       a.cache.GetStats(),
	}
	if es, ok := a.fetcher.(interface{ EndpointStates() []EndpointState }); ok {
		stats["endpoints"] = es.EndpointStates()
	}
	return stats
}

func uniqueCodes(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}
