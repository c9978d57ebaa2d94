// Package refdata holds the static airport reference table and the
// fallback delay snapshot.
package refdata

import "github.com/bobby-s-dev/airport-delays/internal/models"

func Airports() *models.AirportTable {
	return models.NewAirportTable(airportList)
}

// Snapshot returns a copy of the fallback table keyed by airport code.
func Snapshot() map[string]models.SnapshotRecord {
	out := make(map[string]models.SnapshotRecord, len(snapshotRecords))
	for code, rec := range snapshotRecords {
		out[code] = rec
	}
	return out
}
