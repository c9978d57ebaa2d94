// Package publish ships each completed delay board to optional downstream sinks.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bobby-s-dev/airport-delays/internal/models"
	"github.com/bobby-s-dev/airport-delays/internal/render"
)

// Board is the published form of one refresh cycle.
type Board struct {
	CycleID     uint64                 `json:"cycle_id"`
	TraceID     string                 `json:"trace_id"`
	PublishedAt time.Time              `json:"published_at"`
	Health      models.FeedHealth      `json:"health"`
	Statuses    []models.AirportStatus `json:"statuses"`
	Scene       render.View            `json:"scene"`
}

// NewBoard orders statuses by the cycle's code order.
func NewBoard(res *models.RefreshResult, view render.View, now time.Time) Board {
	statuses := make([]models.AirportStatus, 0, len(res.Codes))
	for _, code := range res.Codes {
		if st, ok := res.Statuses[code]; ok {
			statuses = append(statuses, st)
		}
	}
	return Board{
		CycleID:     res.CycleID,
		TraceID:     res.TraceID,
		PublishedAt: now,
		Health:      res.Health(),
		Statuses:    statuses,
		Scene:       view,
	}
}

func (b Board) Encode() ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board: %w", err)
	}
	return data, nil
}

type Sink interface {
	Name() string
	Publish(ctx context.Context, board Board) error
	Close() error
}

// Multi fans a board out to every sink. A failing sink does not stop the others.
type Multi struct {
	sinks  []Sink
	logger *zap.Logger
}

func NewMulti(logger *zap.Logger, sinks ...Sink) *Multi {
	return &Multi{sinks: sinks, logger: logger}
}

func (m *Multi) Name() string { return "multi" }

func (m *Multi) Len() int { return len(m.sinks) }

func (m *Multi) Publish(ctx context.Context, board Board) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Publish(ctx, board); err != nil {
			m.logger.Warn("Board publish failed",
				zap.String("sink", s.Name()),
				zap.Uint64("cycle", board.CycleID),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		m.logger.Debug("Board published",
			zap.String("sink", s.Name()),
			zap.Uint64("cycle", board.CycleID))
	}
	return errors.Join(errs...)
}

func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
