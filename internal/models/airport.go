package models

import (
	"github.com/skypies/geo"
)

// RouteShare is one of an airport's most delay-affected destinations.
// Share is the fraction of the airport's delays attributed to the route.
type RouteShare struct {
	Code  string  `json:"code"`
	Share float64 `json:"share"`
}

type AirportRef struct {
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	City         string       `json:"city"`
	Lat          float64      `json:"lat"`
	Lon          float64      `json:"lon"`
	TrafficIndex int          `json:"traffic_index"`
	Tracked      bool         `json:"tracked"`
	TopRoutes    []RouteShare `json:"top_routes"`
}

func (a AirportRef) Latlong() geo.Latlong {
	return geo.Latlong{Lat: a.Lat, Long: a.Lon}
}

// AirportTable is the read-only reference lookup. It keeps declaration
// order so callers can iterate deterministically.
type AirportTable struct {
	byCode map[string]AirportRef
	order  []string
}

func NewAirportTable(refs []AirportRef) *AirportTable {
	t := &AirportTable{
		byCode: make(map[string]AirportRef, len(refs)),
		order:  make([]string, 0, len(refs)),
	}
	for _, ref := range refs {
		if _, dup := t.byCode[ref.Code]; dup {
			continue
		}
		t.byCode[ref.Code] = ref
		t.order = append(t.order, ref.Code)
	}
	return t
}

func (t *AirportTable) Lookup(code string) (AirportRef, bool) {
	ref, ok := t.byCode[code]
	return ref, ok
}

// IsTracked reports whether code is known and flagged for live monitoring.
func (t *AirportTable) IsTracked(code string) bool {
	ref, ok := t.byCode[code]
	return ok && ref.Tracked
}

// Tracked returns the tracked codes in declaration order.
func (t *AirportTable) Tracked() []string {
	codes := make([]string, 0, len(t.order))
	for _, code := range t.order {
		if t.byCode[code].Tracked {
			codes = append(codes, code)
		}
	}
	return codes
}

func (t *AirportTable) All() []AirportRef {
	refs := make([]AirportRef, 0, len(t.order))
	for _, code := range t.order {
		refs = append(refs, t.byCode[code])
	}
	return refs
}

func (t *AirportTable) Len() int {
	return len(t.order)
}
