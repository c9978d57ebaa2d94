package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/airport-delays/internal/models"
	"github.com/bobby-s-dev/airport-delays/internal/publish"
	"github.com/bobby-s-dev/airport-delays/internal/render"
	"github.com/bobby-s-dev/airport-delays/internal/services"
)

type StatusSource interface {
	Refresh(ctx context.Context, codes []string) (*models.RefreshResult, error)
}

type Dispatcher interface {
	Dispatch(ev render.Event) error
}

type ViewSource interface {
	View() render.View
}

type Publisher interface {
	Publish(ctx context.Context, board publish.Board) error
}

// Scheduler runs a refresh cycle on start, on a fixed interval and on
// demand, then hands the result to the controller and the publishers.
type Scheduler struct {
	source       StatusSource
	controller   Dispatcher
	view         ViewSource
	publisher    Publisher
	logger       *zap.Logger
	codes        []string
	interval     time.Duration
	cycleTimeout time.Duration

	cron    *cron.Cron
	entryID cron.EntryID

	mu           sync.Mutex
	running      bool
	lastRun      time.Time
	lastDuration time.Duration
	lastCycleID  uint64
	lastHealth   models.FeedHealth
	cycles       int
	staleCycles  int
	failures     int
}

func NewScheduler(source StatusSource, controller Dispatcher, view ViewSource, publisher Publisher, codes []string, interval, cycleTimeout time.Duration, logger *zap.Logger) *Scheduler {
	if cycleTimeout <= 0 {
		cycleTimeout = 60 * time.Second
	}
	return &Scheduler{
		source:       source,
		controller:   controller,
		view:         view,
		publisher:    publisher,
		logger:       logger,
		codes:        codes,
		interval:     interval,
		cycleTimeout: cycleTimeout,
	}
}

// Start schedules the periodic refresh and runs the first cycle, which
// auto-selects the worst airport.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}

	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger{s.logger}),
		cron.SkipIfStillRunning(cronLogger{s.logger}),
	))
	id, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		s.runCycle(context.Background(), false, false)
	})
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}
	s.cron = c
	s.entryID = id
	s.running = true
	s.mu.Unlock()

	c.Start()
	s.logger.Info("Scheduler started",
		zap.Duration("interval", s.interval),
		zap.Time("next_run", c.Entry(id).Next))

	// Run immediately on start
	go s.runCycle(context.Background(), true, false)
	return nil
}

// Stop halts the schedule and waits for a running timed cycle to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	c := s.cron
	s.mu.Unlock()

	s.logger.Info("Stopping scheduler")
	<-c.Stop().Done()
}

// ForceRun runs a manual refresh synchronously. It keeps the current selection.
func (s *Scheduler) ForceRun(ctx context.Context) (*models.RefreshResult, error) {
	s.logger.Info("Manually triggering delay refresh")
	return s.runCycle(ctx, false, true)
}

func (s *Scheduler) runCycle(ctx context.Context, forceSelect, userInitiated bool) (*models.RefreshResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cycleTimeout)
	defer cancel()

	start := time.Now()
	res, err := s.source.Refresh(ctx, s.codes)
	if err == nil {
		err = s.controller.Dispatch(render.StatusRefreshed{
			Result:        res,
			ForceSelect:   forceSelect,
			UserInitiated: userInitiated,
		})
	}

	s.mu.Lock()
	s.lastRun = start
	s.lastDuration = time.Since(start)
	switch {
	case errors.Is(err, services.ErrStaleCycle), errors.Is(err, render.ErrStaleResult):
		s.staleCycles++
	case err != nil:
		s.failures++
	default:
		s.cycles++
		s.lastCycleID = res.CycleID
		s.lastHealth = res.Health()
	}
	s.mu.Unlock()

	if errors.Is(err, services.ErrStaleCycle) || errors.Is(err, render.ErrStaleResult) {
		fields := []zap.Field{zap.Error(err)}
		if res != nil {
			fields = append(fields, zap.Uint64("cycle", res.CycleID), zap.String("trace_id", res.TraceID))
		}
		s.logger.Info("Discarding superseded refresh cycle", fields...)
		return nil, err
	}
	if err != nil {
		s.logger.Error("Delay refresh failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return nil, err
	}

	if s.publisher != nil {
		board := publish.NewBoard(res, s.view.View(), time.Now())
		if perr := s.publisher.Publish(ctx, board); perr != nil {
			s.logger.Warn("Board publish incomplete", zap.Uint64("cycle", res.CycleID), zap.Error(perr))
		}
	}
	return res, nil
}

func (s *Scheduler) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]interface{}{
		"running":       s.running,
		"interval":      s.interval.String(),
		"last_run":      s.lastRun,
		"last_duration": s.lastDuration.String(),
		"last_cycle_id": s.lastCycleID,
		"live":          s.lastHealth.Live,
		"total":         s.lastHealth.Total,
		"cycles":        s.cycles,
		"stale_cycles":  s.staleCycles,
		"failures":      s.failures,
		"airports":      s.codes,
	}
	if s.running {
		status["next_run"] = s.cron.Entry(s.entryID).Next
	}
	return status
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
