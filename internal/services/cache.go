package services

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bobby-s-dev/airport-delays/internal/models"
)

// StatusCache maps airport code to its most recent status. Each refresh
// cycle replaces the whole map; entries are never patched field by field.
type StatusCache struct {
	mu        sync.RWMutex
	statuses  map[string]models.AirportStatus
	order     []string
	cycleID   uint64
	updatedAt time.Time
	rejected  int
	logger    *zap.Logger
}

func NewStatusCache(logger *zap.Logger) *StatusCache {
	return &StatusCache{
		statuses: make(map[string]models.AirportStatus),
		logger:   logger,
	}
}

// Replace installs a cycle's statuses wholesale. A cycle older than the one
// already installed is rejected and Replace reports false.
func (c *StatusCache) Replace(cycleID uint64, order []string, statuses map[string]models.AirportStatus) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cycleID < c.cycleID {
		c.rejected++
		c.logger.Warn("Discarding stale refresh cycle",
			zap.Uint64("cycle", cycleID),
			zap.Uint64("current_cycle", c.cycleID))
		return false
	}

	next := make(map[string]models.AirportStatus, len(statuses))
	for code, st := range statuses {
		next[code] = st
	}
	c.statuses = next
	c.order = append([]string(nil), order...)
	c.cycleID = cycleID
	c.updatedAt = time.Now()

	c.logger.Debug("Status cache replaced",
		zap.Uint64("cycle", cycleID),
		zap.Int("entries", len(next)))
	return true
}

func (c *StatusCache) Get(code string) (models.AirportStatus, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st, ok := c.statuses[code]
	return st, ok
}

// Ordered returns the cached statuses in the order of the last installed cycle.
func (c *StatusCache) Ordered() []models.AirportStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.AirportStatus, 0, len(c.order))
	for _, code := range c.order {
		if st, ok := c.statuses[code]; ok {
			out = append(out, st)
		}
	}
	return out
}

func (c *StatusCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.statuses)
}

func (c *StatusCache) CycleID() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cycleID
}

func (c *StatusCache) GetStats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	live := 0
	for _, st := range c.statuses {
		if st.Live {
			live++
		}
	}

	return map[string]interface{}{
		"entries":         len(c.statuses),
		"live_entries":    live,
		"cycle_id":        c.cycleID,
		"updated_at":      c.updatedAt,
		"rejected_cycles": c.rejected,
	}
}
