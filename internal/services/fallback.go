package services

import (
	"github.com/bobby-s-dev/airport-delays/internal/models"
	"github.com/bobby-s-dev/airport-delays/internal/status"
)

// Snapshot is the fallback table used when the live feed fails for a code.
type Snapshot map[string]models.SnapshotRecord

// StatusFor returns the snapshot status for code, or the calm baseline
// record when the snapshot has no entry. Both are marked not live.
func (s Snapshot) StatusFor(code string) models.AirportStatus {
	if rec, ok := s[code]; ok {
		return status.FromSnapshot(code, rec, false)
	}
	return status.Baseline(code)
}
