package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() ClientConfig {
	return ClientConfig{
		Timeout:        2 * time.Second,
		MaxRetries:     0,
		RetryDelay:     10 * time.Millisecond,
		Multiplier:     2,
		Threshold:      3,
		BreakerTimeout: time.Minute,
	}
}

func TestResolveDecodesStatusDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/airport/status/ATL", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"delay":  "true",
			"status": map[string]any{"avgDelay": "15 min"},
		})
	}))
	defer srv.Close()

	c := NewFAAStatusClient(srv.URL+"/airport/status/{code}?format=application/json", testConfig(), zap.NewNop())
	payload, err := c.Resolve(context.Background(), "ATL")
	require.NoError(t, err)

	doc, ok := payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "true", doc["delay"])
	assert.Equal(t, "15 min", doc["status"].(map[string]any)["avgDelay"])
}

func TestResolveRejectsNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewFAAStatusClient(srv.URL+"/{code}", testConfig(), zap.NewNop())
	_, err := c.Resolve(context.Background(), "ORD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 503")
}

func TestResolveRejectsMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>proxy error</html>`))
	}))
	defer srv.Close()

	c := NewFAAStatusClient(srv.URL+"/{code}", testConfig(), zap.NewNop())
	_, err := c.Resolve(context.Background(), "ORD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestResolveRejectsNonObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[1,2,3]`))
	}))
	defer srv.Close()

	c := NewFAAStatusClient(srv.URL+"/{code}", testConfig(), zap.NewNop())
	_, err := c.Resolve(context.Background(), "ORD")
	assert.Error(t, err)
}

func TestResolveHonoursContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewFAAStatusClient(srv.URL+"/{code}", testConfig(), zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.Resolve(ctx, "DEN")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"delay":"false"}`))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxRetries = 2
	c := NewFAAStatusClient(srv.URL+"/{code}", cfg, zap.NewNop())

	_, err := c.Resolve(context.Background(), "SEA")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxRetries = 3
	c := NewFAAStatusClient(srv.URL+"/{code}", cfg, zap.NewNop())

	_, err := c.Resolve(context.Background(), "SEA")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path == "/MIA" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"delay":"false"}`))
	}))
	defer srv.Close()

	c := NewFAAStatusClient(srv.URL+"/{code}", testConfig(), zap.NewNop())
	for i := 0; i < 3; i++ {
		_, err := c.Resolve(context.Background(), "MIA")
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, c.BreakerState(c.URL("MIA")))

	_, err := c.Resolve(context.Background(), "MIA")
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(3), calls.Load())

	// Other airports on the same endpoint still go out.
	_, err = c.Resolve(context.Background(), "ATL")
	require.NoError(t, err)
	assert.Equal(t, int32(4), calls.Load())
	assert.Equal(t, gobreaker.StateClosed, c.BreakerState(c.URL("ATL")))
}

func TestClientErrorsDoNotTripBreaker(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/ATL" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"delay":"false"}`))
	}))
	defer srv.Close()

	c := NewFAAStatusClient(srv.URL+"/{code}", testConfig(), zap.NewNop())
	for i := 0; i < 5; i++ {
		for _, code := range []string{"XX1", "XX2", "XX3"} {
			_, err := c.Resolve(context.Background(), code)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "HTTP 404")
			assert.NotErrorIs(t, err, gobreaker.ErrOpenState)
		}
	}

	_, err := c.Resolve(context.Background(), "ATL")
	require.NoError(t, err)
	assert.Equal(t, int32(16), calls.Load())
	assert.Equal(t, 0, c.BreakerCounts()["open"])
	assert.Equal(t, 4, c.BreakerCounts()["closed"])
}

func TestRateLimitCountsAgainstBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewFAAStatusClient(srv.URL+"/{code}", testConfig(), zap.NewNop())
	for i := 0; i < 3; i++ {
		_, err := c.Resolve(context.Background(), "JFK")
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, c.BreakerState(c.URL("JFK")))
}

func TestTrippedAirportDoesNotBlockConcurrentLookups(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/BAD" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		time.Sleep(20 * time.Millisecond)
		w.Write([]byte(`{"delay":"false"}`))
	}))
	defer srv.Close()

	c := NewFAAStatusClient(srv.URL+"/{code}", testConfig(), zap.NewNop())
	for i := 0; i < 3; i++ {
		_, err := c.Resolve(context.Background(), "BAD")
		require.Error(t, err)
	}

	codes := []string{"ATL", "LAX", "ORD", "DFW", "DEN", "JFK", "SFO", "SEA"}
	errs := make([]error, len(codes))
	var wg sync.WaitGroup
	for i, code := range codes {
		wg.Add(1)
		go func(i int, code string) {
			defer wg.Done()
			_, errs[i] = c.Resolve(context.Background(), code)
		}(i, code)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, codes[i])
	}
	counts := c.BreakerCounts()
	assert.Equal(t, 1, counts["open"])
	assert.Equal(t, len(codes), counts["closed"])
}

func TestEndpointTemplates(t *testing.T) {
	clients := NewFAAStatusClients(append([]string{" "}, DefaultFAAEndpoints...), testConfig(), zap.NewNop())
	require.Len(t, clients, 3)

	assert.Equal(t, "services.faa.gov", clients[0].Name())
	assert.Equal(t, "cors.isomorphic-git.org", clients[1].Name())
	assert.Equal(t, "thingproxy.freeboard.io", clients[2].Name())
	assert.Equal(t, "https://services.faa.gov/airport/status/LGA?format=application/json", clients[0].URL("LGA"))
	assert.Equal(t,
		"https://thingproxy.freeboard.io/fetch/https://services.faa.gov/airport/status/LGA?format=application/json",
		clients[2].URL("LGA"))
}
