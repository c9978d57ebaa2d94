// Package visual maps delay severity and route shares to marker and arc styling.
package visual

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bobby-s-dev/airport-delays/internal/models"
)

type Severity string

const (
	OnTime   Severity = "on-time"
	Minor    Severity = "minor"
	Moderate Severity = "moderate"
	Severe   Severity = "severe"
)

// Severities lists every class from calmest to worst.
var Severities = []Severity{OnTime, Minor, Moderate, Severe}

const (
	minorLimit    = 10
	moderateLimit = 25

	baseRadius        = 6.0
	radiusPerTraffic  = 1.7
	maxTrafficIndex   = 6
	selectedBonus     = 1.6
	defaultWeight     = 2.0
	selectedWeight    = 4.0
	markerFillOpacity = 0.9

	minRouteShare   = 0.04
	maxRouteShare   = 0.18
	baseRouteWeight = 2.5
	routeWeightRate = 8.0
	routeOpacity    = 0.75
	minRouteBar     = 12.0

	RouteLowColor  = "#2563eb"
	RouteHighColor = "#ef4444"
)

var severityColors = map[Severity]string{
	OnTime:   "#2eb872",
	Minor:    "#facc15",
	Moderate: "#fb923c",
	Severe:   "#ef4444",
}

var severityLabels = map[Severity]string{
	OnTime:   "On time",
	Minor:    "Minor delays",
	Moderate: "Moderate delays",
	Severe:   "Severe delays",
}

// SeverityOf classifies a status; a nil status is on time.
func SeverityOf(st *models.AirportStatus) Severity {
	if st == nil || !st.Delay {
		return OnTime
	}
	switch avg := st.AvgDelayMinutes; {
	case avg < minorLimit:
		return Minor
	case avg < moderateLimit:
		return Moderate
	default:
		return Severe
	}
}

func (s Severity) Color() string {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return severityColors[OnTime]
}

func (s Severity) Label() string {
	if l, ok := severityLabels[s]; ok {
		return l
	}
	return severityLabels[OnTime]
}

// MarkerRadius scales with traffic, capped at index 6.
func MarkerRadius(trafficIndex int, selected bool) float64 {
	r := baseRadius + float64(min(trafficIndex, maxTrafficIndex))*radiusPerTraffic
	if selected {
		r += selectedBonus
	}
	return r
}

type MarkerStyle struct {
	Color       string  `json:"color"`
	FillColor   string  `json:"fill_color"`
	FillOpacity float64 `json:"fill_opacity"`
	Weight      float64 `json:"weight"`
	Radius      float64 `json:"radius"`
	Front       bool    `json:"front"`
}

// StyleMarker derives a marker's full style from its severity and selection.
// It has no other inputs so a repaint can never carry stale styling.
func StyleMarker(sev Severity, trafficIndex int, selected bool) MarkerStyle {
	color := sev.Color()
	weight := defaultWeight
	if selected {
		weight = selectedWeight
	}
	return MarkerStyle{
		Color:       color,
		FillColor:   color,
		FillOpacity: markerFillOpacity,
		Weight:      weight,
		Radius:      MarkerRadius(trafficIndex, selected),
		Front:       selected,
	}
}

type RouteStyle struct {
	Color   string  `json:"color"`
	Weight  float64 `json:"weight"`
	Opacity float64 `json:"opacity"`
}

func StyleRoute(share float64) RouteStyle {
	return RouteStyle{
		Color:   RouteColor(share),
		Weight:  RouteWeight(share),
		Opacity: routeOpacity,
	}
}

// RouteColor interpolates between the low and high route colors over the
// clamped share range [0.04, 0.18].
func RouteColor(share float64) string {
	if math.IsNaN(share) {
		share = minRouteShare
	}
	clamped := math.Min(math.Max(share, minRouteShare), maxRouteShare)
	t := (clamped - minRouteShare) / (maxRouteShare - minRouteShare)
	return InterpolateColor(RouteLowColor, RouteHighColor, t)
}

func RouteWeight(share float64) float64 {
	return baseRouteWeight + share*routeWeightRate
}

// RouteBarWidth is the route list bar length in percent of the widest route.
func RouteBarWidth(share, maxShare float64) float64 {
	if maxShare <= 0 {
		return minRouteBar
	}
	return math.Max(minRouteBar, share/maxShare*100)
}

type RGB struct {
	R, G, B int
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// ParseHex reads a #rrggbb color; malformed input yields black.
func ParseHex(hex string) RGB {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return RGB{}
	}
	return RGB{R: int(v>>16) & 0xff, G: int(v>>8) & 0xff, B: int(v) & 0xff}
}

func InterpolateColor(startHex, endHex string, t float64) string {
	start, end := ParseHex(startHex), ParseHex(endHex)
	lerp := func(a, b int) int {
		return int(math.Round(float64(a) + float64(b-a)*t))
	}
	return RGB{
		R: lerp(start.R, end.R),
		G: lerp(start.G, end.G),
		B: lerp(start.B, end.B),
	}.String()
}

// FormatMinutes renders a minute count for the panel.
func FormatMinutes(n int) string {
	return fmt.Sprintf("%d min", n)
}

// PendingColor styles markers before the first refresh completes.
const PendingColor = "#64748b"

func StylePending(trafficIndex int, selected bool) MarkerStyle {
	style := StyleMarker(OnTime, trafficIndex, selected)
	style.Color = PendingColor
	style.FillColor = PendingColor
	return style
}
