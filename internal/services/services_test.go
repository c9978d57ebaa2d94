package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/airport-delays/internal/models"
	"github.com/bobby-s-dev/airport-delays/internal/refdata"
	"github.com/bobby-s-dev/airport-delays/internal/status"
	"github.com/bobby-s-dev/airport-delays/pkg/client"
)

func failing(name string, calls *atomic.Int32) Resolver {
	return ResolverFunc{Label: name, Fn: func(ctx context.Context, code string) (any, error) {
		if calls != nil {
			calls.Add(1)
		}
		return nil, errors.New("boom")
	}}
}

func succeeding(name string, payload map[string]any, calls *atomic.Int32) Resolver {
	return ResolverFunc{Label: name, Fn: func(ctx context.Context, code string) (any, error) {
		if calls != nil {
			calls.Add(1)
		}
		return payload, nil
	}}
}

func hanging(name string) Resolver {
	return ResolverFunc{Label: name, Fn: func(ctx context.Context, code string) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
}

func TestFetcherReturnsFirstSuccess(t *testing.T) {
	var first, second, third atomic.Int32
	f := NewFetcher([]Resolver{
		failing("direct", &first),
		succeeding("mirror", map[string]any{"delay": "true", "status": map[string]any{"avgDelay": "15 min"}}, &second),
		succeeding("proxy", map[string]any{}, &third),
	}, time.Second, zap.NewNop())

	st, err := f.FetchStatus(context.Background(), "ATL")
	require.NoError(t, err)
	assert.True(t, st.Live)
	assert.True(t, st.Delay)
	assert.Equal(t, 15, st.AvgDelayMinutes)

	assert.Equal(t, int32(1), first.Load())
	assert.Equal(t, int32(1), second.Load())
	assert.Equal(t, int32(0), third.Load())
	assert.Equal(t, []string{"direct", "mirror", "proxy"}, f.Endpoints())
}

func TestFetcherTimesOutEachCandidate(t *testing.T) {
	f := NewFetcher([]Resolver{hanging("a"), hanging("b"), hanging("c")}, 30*time.Millisecond, zap.NewNop())

	start := time.Now()
	_, err := f.FetchStatus(context.Background(), "DEN")
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrStatusUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, elapsed, 90*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestFetcherLateSuccessCountsAsFailure(t *testing.T) {
	slow := ResolverFunc{Label: "slow", Fn: func(ctx context.Context, code string) (any, error) {
		time.Sleep(60 * time.Millisecond)
		return map[string]any{"delay": "true"}, nil
	}}
	f := NewFetcher([]Resolver{slow}, 20*time.Millisecond, zap.NewNop())

	_, err := f.FetchStatus(context.Background(), "SEA")
	assert.ErrorIs(t, err, ErrStatusUnavailable)
}

func TestFetcherNoResolvers(t *testing.T) {
	f := NewFetcher(nil, time.Second, zap.NewNop())
	_, err := f.FetchStatus(context.Background(), "SEA")
	assert.ErrorIs(t, err, ErrStatusUnavailable)
}

// stubFetcher fails for the codes in failing and reports avg minutes from delays otherwise.
type stubFetcher struct {
	failing map[string]bool
	delays  map[string]int
	wait    map[string]chan struct{}
}

func (s *stubFetcher) FetchStatus(ctx context.Context, code string) (models.AirportStatus, error) {
	if ch, ok := s.wait[code]; ok {
		<-ch
	}
	if s.failing[code] {
		return models.AirportStatus{}, fmt.Errorf("%w for %s", ErrStatusUnavailable, code)
	}
	return status.Normalize(code, map[string]any{
		"status": map[string]any{"avgDelay": float64(s.delays[code])},
	}, true), nil
}

func TestAggregatorHealthClassification(t *testing.T) {
	codes := []string{"ATL", "LAX", "ORD", "DFW"}

	cases := []struct {
		name    string
		failing []string
		state   models.HealthState
		label   string
	}{
		{"all live", nil, models.HealthLive, "Live FAA feed"},
		{"partial", []string{"LAX"}, models.HealthPartial, "Partial live (3/4)"},
		{"mostly failing", []string{"ATL", "LAX", "ORD"}, models.HealthPartial, "Partial live (1/4)"},
		{"offline", codes, models.HealthOffline, "Offline snapshot"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := &stubFetcher{failing: map[string]bool{}}
			for _, code := range tc.failing {
				fetcher.failing[code] = true
			}

			agg := NewAggregator(fetcher, Snapshot(refdata.Snapshot()), NewStatusCache(zap.NewNop()), zap.NewNop())
			result, err := agg.Refresh(context.Background(), codes)
			require.NoError(t, err)

			health := result.Health()
			assert.Equal(t, tc.state, health.State)
			assert.Equal(t, tc.label, health.Label())
			assert.Equal(t, len(codes)-len(tc.failing), result.Live)
			assert.Equal(t, len(codes), result.Total)

			cache := agg.Cache()
			assert.Equal(t, len(codes), cache.Len())
			for _, code := range codes {
				st, ok := cache.Get(code)
				require.True(t, ok, code)
				assert.Equal(t, !fetcher.failing[code], st.Live, code)
			}
		})
	}
}

func TestAggregatorFallbackWithoutSnapshotUsesBaseline(t *testing.T) {
	fetcher := &stubFetcher{failing: map[string]bool{"XYZ": true}}
	agg := NewAggregator(fetcher, nil, NewStatusCache(zap.NewNop()), zap.NewNop())

	result, err := agg.Refresh(context.Background(), []string{"XYZ"})
	require.NoError(t, err)

	st := result.Statuses["XYZ"]
	assert.False(t, st.Live)
	assert.False(t, st.Delay)
	assert.Equal(t, status.UnavailableReason, st.Reason)
	assert.Equal(t, models.HealthOffline, result.Health().State)
}

func TestAggregatorDeduplicatesCodes(t *testing.T) {
	agg := NewAggregator(&stubFetcher{}, nil, NewStatusCache(zap.NewNop()), zap.NewNop())
	result, err := agg.Refresh(context.Background(), []string{"ATL", "ATL", "", "LAX"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ATL", "LAX"}, result.Codes)
	assert.Equal(t, 2, result.Total)
}

func TestAggregatorOneFailureDoesNotBlockOthers(t *testing.T) {
	release := make(chan struct{})
	fetcher := &stubFetcher{
		failing: map[string]bool{"ORD": true},
		delays:  map[string]int{"ATL": 12, "LAX": 4},
		wait:    map[string]chan struct{}{"ORD": release},
	}
	agg := NewAggregator(fetcher, Snapshot(refdata.Snapshot()), NewStatusCache(zap.NewNop()), zap.NewNop())

	done := make(chan *models.RefreshResult)
	go func() {
		result, _ := agg.Refresh(context.Background(), []string{"ATL", "ORD", "LAX"})
		done <- result
	}()

	select {
	case <-done:
		t.Fatal("refresh published before every airport resolved")
	case <-time.After(30 * time.Millisecond):
	}
	assert.Equal(t, 0, agg.Cache().Len())

	close(release)
	result := <-done
	assert.Equal(t, 2, result.Live)
	assert.Equal(t, 12, result.Statuses["ATL"].AvgDelayMinutes)
	assert.Equal(t, 4, result.Statuses["LAX"].AvgDelayMinutes)
	assert.False(t, result.Statuses["ORD"].Live)
}

func TestAggregatorDiscardsStaleCycle(t *testing.T) {
	release := make(chan struct{})
	slow := &stubFetcher{wait: map[string]chan struct{}{"ATL": release}, delays: map[string]int{"ATL": 40}}
	cache := NewStatusCache(zap.NewNop())
	agg := NewAggregator(slow, nil, cache, zap.NewNop())

	var wg sync.WaitGroup
	var staleErr error
	var staleResult *models.RefreshResult
	wg.Add(1)
	go func() {
		defer wg.Done()
		staleResult, staleErr = agg.Refresh(context.Background(), []string{"ATL"})
	}()

	// Wait until the first cycle has taken its id before starting the second.
	require.Eventually(t, func() bool { return agg.cycleSeq.Load() == 1 }, time.Second, time.Millisecond)

	fresh, err := agg.Refresh(context.Background(), []string{"LAX"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), fresh.CycleID)

	close(release)
	wg.Wait()

	require.ErrorIs(t, staleErr, ErrStaleCycle)
	assert.Equal(t, uint64(1), staleResult.CycleID)
	assert.Equal(t, uint64(2), cache.CycleID())
	_, ok := cache.Get("ATL")
	assert.False(t, ok)
	assert.Equal(t, 1, cache.GetStats()["rejected_cycles"])

	// Only the installed cycle shows up in the aggregator's stats.
	assert.Equal(t, fresh.StartedAt, agg.GetLastFetchTime())
	stats := agg.GetStats()
	assert.Equal(t, 1, stats["cycles"])
	assert.Equal(t, 1, stats["stale_cycles"])
	assert.Equal(t, 1, stats["live_fetches"])
	assert.Equal(t, 0, stats["fallback_fetches"])
	assert.Equal(t, fresh.Health(), stats["last_health"])
}

func TestCacheReplaceIsWholesale(t *testing.T) {
	cache := NewStatusCache(zap.NewNop())
	require.True(t, cache.Replace(1, []string{"ATL", "LAX"}, map[string]models.AirportStatus{
		"ATL": {Code: "ATL", AvgDelayMinutes: 30, Live: true},
		"LAX": {Code: "LAX", Live: true},
	}))
	require.True(t, cache.Replace(2, []string{"ATL"}, map[string]models.AirportStatus{
		"ATL": {Code: "ATL", Reason: "calm"},
	}))

	st, ok := cache.Get("ATL")
	require.True(t, ok)
	assert.Equal(t, models.AirportStatus{Code: "ATL", Reason: "calm"}, st)
	_, ok = cache.Get("LAX")
	assert.False(t, ok)
	assert.Len(t, cache.Ordered(), 1)
}

// End to end through the real HTTP client: ATL answers on the direct
// endpoint, DEN hangs on all three candidates and falls back to the snapshot.
func TestRefreshAgainstFeedServer(t *testing.T) {
	var denAttempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/ATL"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"delay": true, "status": {"avgDelay": "15 min", "reason": "Volume"}}`))
		case strings.HasSuffix(r.URL.Path, "/DEN"):
			denAttempts.Add(1)
			<-r.Context().Done()
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cfg := client.ClientConfig{Timeout: 5 * time.Second, Threshold: 3, BreakerTimeout: time.Minute}
	templates := []string{
		srv.URL + "/direct/{code}",
		srv.URL + "/mirror/{code}",
		srv.URL + "/proxy/{code}",
	}
	var resolvers []Resolver
	for _, c := range client.NewFAAStatusClients(templates, cfg, zap.NewNop()) {
		resolvers = append(resolvers, c)
	}

	snapshot := Snapshot(refdata.Snapshot())
	agg := NewAggregator(
		NewFetcher(resolvers, 50*time.Millisecond, zap.NewNop()),
		snapshot,
		NewStatusCache(zap.NewNop()),
		zap.NewNop(),
	)

	result, err := agg.Refresh(context.Background(), []string{"ATL", "DEN"})
	require.NoError(t, err)

	atl := result.Statuses["ATL"]
	assert.True(t, atl.Live)
	assert.True(t, atl.Delay)
	assert.Equal(t, 15, atl.AvgDelayMinutes)
	assert.Equal(t, "Volume", atl.Reason)

	den, ok := agg.Cache().Get("DEN")
	require.True(t, ok)
	assert.False(t, den.Live)
	assert.Equal(t, snapshot.StatusFor("DEN"), den)

	rec := snapshot["DEN"]
	assert.Equal(t, rec.AvgDelayMinutes, den.AvgDelayMinutes)
	assert.Equal(t, rec.Reason, den.Reason)
	assert.Equal(t, rec.Weather, den.Weather)
	assert.Equal(t, rec.FetchedAt, den.FetchedAt.Format(time.RFC3339))

	assert.Equal(t, int32(3), denAttempts.Load())
	assert.Equal(t, "Partial live (1/2)", result.Health().Label())

	endpoints, ok := agg.GetStats()["endpoints"].([]EndpointState)
	require.True(t, ok)
	require.Len(t, endpoints, 3)
	for _, e := range endpoints {
		assert.Equal(t, 0, e.Breakers["open"], e.Name)
	}

	// DEN keeps hanging until its breakers open; ATL stays live throughout.
	for i := 0; i < 3; i++ {
		result, err = agg.Refresh(context.Background(), []string{"ATL", "DEN"})
		require.NoError(t, err)
		assert.True(t, result.Statuses["ATL"].Live)
		assert.False(t, result.Statuses["DEN"].Live)
	}
	assert.Equal(t, int32(9), denAttempts.Load())

	endpoints = agg.GetStats()["endpoints"].([]EndpointState)
	assert.Equal(t, map[string]int{"closed": 1, "half-open": 0, "open": 1}, endpoints[0].Breakers)
	assert.Equal(t, map[string]int{"closed": 0, "half-open": 0, "open": 1}, endpoints[1].Breakers)
	assert.Equal(t, map[string]int{"closed": 0, "half-open": 0, "open": 1}, endpoints[2].Breakers)
}
