package render

import (
	"github.com/skypies/geo"

	"github.com/bobby-s-dev/airport-delays/internal/visual"
)

// MapSurface is the map widget: markers, polylines and the viewport.
type MapSurface interface {
	PlaceMarker(m Marker)
	ClearRoutes()
	DrawPolyline(p Polyline)
	FitBounds(box geo.LatlongBox, paddingPx int)
	FlyTo(center geo.Latlong, zoom float64)
	Zoom() float64
}

// Frame is implemented by surfaces that can batch a repaint. Readers see
// either the previous frame or the committed one, never a mix.
type Frame interface {
	BeginFrame()
	CommitFrame()
}

// Page is the textual part of the dashboard around the map.
type Page interface {
	ShowPanel(p Panel)
	ShowHealth(b HealthBadge)
	ShowNotification(msg string)
	ShowLastUpdated(text string)
	ShowSummary(s Summary)
	ShowAirportList(entries []ListEntry)
}

type Tooltip struct {
	Headline string `json:"headline"`
	Status   string `json:"status"`
	Source   string `json:"source,omitempty"`
}

type Marker struct {
	Code     string             `json:"code"`
	Position geo.Latlong        `json:"position"`
	Severity visual.Severity    `json:"severity"`
	Selected bool               `json:"selected"`
	Style    visual.MarkerStyle `json:"style"`
	Tooltip  Tooltip            `json:"tooltip"`
}

type Polyline struct {
	From   string            `json:"from"`
	To     string            `json:"to"`
	Share  float64           `json:"share"`
	Points []geo.Latlong     `json:"points"`
	Style  visual.RouteStyle `json:"style"`
}

type RouteRow struct {
	Code       string  `json:"code"`
	Label      string  `json:"label"`
	ShareText  string  `json:"share_text"`
	Share      float64 `json:"share"`
	BarWidth   float64 `json:"bar_width"`
	Color      string  `json:"color"`
	DistanceKM float64 `json:"distance_km"`
}

type Panel struct {
	Placeholder   string          `json:"placeholder,omitempty"`
	Code          string          `json:"code,omitempty"`
	Name          string          `json:"name,omitempty"`
	City          string          `json:"city,omitempty"`
	Severity      visual.Severity `json:"severity,omitempty"`
	SeverityLabel string          `json:"severity_label,omitempty"`
	AvgDelay      string          `json:"avg_delay,omitempty"`
	MaxDelay      string          `json:"max_delay,omitempty"`
	MinDelay      string          `json:"min_delay,omitempty"`
	Trend         string          `json:"trend,omitempty"`
	Weather       string          `json:"weather,omitempty"`
	Wind          string          `json:"wind,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	Updated       string          `json:"updated,omitempty"`
	Live          bool            `json:"live"`
	Routes        []RouteRow      `json:"routes,omitempty"`
	RoutesEmpty   string          `json:"routes_empty,omitempty"`
}

type HealthBadge struct {
	State string `json:"state"`
	Label string `json:"label"`
	Live  int    `json:"live"`
	Total int    `json:"total"`
}

type SummaryAirport struct {
	Code            string `json:"code"`
	City            string `json:"city"`
	AvgDelayMinutes int    `json:"avg_delay_minutes"`
}

type Summary struct {
	AvgDelayMinutes int             `json:"avg_delay_minutes"`
	Delayed         int             `json:"delayed"`
	Worst           *SummaryAirport `json:"worst,omitempty"`
	Best            *SummaryAirport `json:"best,omitempty"`
	Live            int             `json:"live"`
	Total           int             `json:"total"`
}

type ListEntry struct {
	Code     string          `json:"code"`
	City     string          `json:"city"`
	AvgDelay string          `json:"avg_delay"`
	Severity visual.Severity `json:"severity"`
	Color    string          `json:"color"`
	Active   bool            `json:"active"`
}

type LegendEntry struct {
	Severity visual.Severity `json:"severity"`
	Label    string          `json:"label"`
	Color    string          `json:"color"`
}

func Legend() []LegendEntry {
	out := make([]LegendEntry, 0, len(visual.Severities))
	for _, sev := range visual.Severities {
		out = append(out, LegendEntry{Severity: sev, Label: sev.Label(), Color: sev.Color()})
	}
	return out
}
