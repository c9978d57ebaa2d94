package visual

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bobby-s-dev/airport-delays/internal/models"
)

func TestSeverityThresholds(t *testing.T) {
	cases := []struct {
		delay bool
		avg   int
		want  Severity
	}{
		{false, 0, OnTime},
		{false, 40, OnTime},
		{true, 0, Minor},
		{true, 9, Minor},
		{true, 10, Moderate},
		{true, 24, Moderate},
		{true, 25, Severe},
		{true, 90, Severe},
	}
	for _, tc := range cases {
		st := &models.AirportStatus{Delay: tc.delay, AvgDelayMinutes: tc.avg}
		assert.Equal(t, tc.want, SeverityOf(st), "delay=%v avg=%d", tc.delay, tc.avg)
	}
	assert.Equal(t, OnTime, SeverityOf(nil))
}

func TestSeverityColorsAndLabels(t *testing.T) {
	assert.Equal(t, "#2eb872", OnTime.Color())
	assert.Equal(t, "#facc15", Minor.Color())
	assert.Equal(t, "#fb923c", Moderate.Color())
	assert.Equal(t, "#ef4444", Severe.Color())
	assert.Equal(t, "#2eb872", Severity("bogus").Color())

	assert.Equal(t, "Moderate delays", Moderate.Label())
	assert.Equal(t, "On time", Severity("").Label())
}

func TestMarkerRadius(t *testing.T) {
	assert.InDelta(t, 6.0, MarkerRadius(0, false), 1e-9)
	assert.InDelta(t, 11.1, MarkerRadius(3, false), 1e-9)
	assert.InDelta(t, 16.2, MarkerRadius(6, false), 1e-9)
	assert.InDelta(t, 16.2, MarkerRadius(9, false), 1e-9)
	assert.InDelta(t, 17.8, MarkerRadius(6, true), 1e-9)
}

func TestStyleMarker(t *testing.T) {
	plain := StyleMarker(Severe, 4, false)
	assert.Equal(t, "#ef4444", plain.Color)
	assert.Equal(t, plain.Color, plain.FillColor)
	assert.Equal(t, 2.0, plain.Weight)
	assert.False(t, plain.Front)

	selected := StyleMarker(Severe, 4, true)
	assert.Equal(t, 4.0, selected.Weight)
	assert.True(t, selected.Front)
	assert.InDelta(t, plain.Radius+1.6, selected.Radius, 1e-9)
}

func TestRouteColorEndpoints(t *testing.T) {
	low := ParseHex(RouteLowColor).String()
	high := ParseHex(RouteHighColor).String()

	assert.Equal(t, "rgb(37, 99, 235)", low)
	assert.Equal(t, "rgb(239, 68, 68)", high)

	assert.Equal(t, low, RouteColor(0.04))
	assert.Equal(t, high, RouteColor(0.18))
	assert.Equal(t, low, RouteColor(0))
	assert.Equal(t, low, RouteColor(-1))
	assert.Equal(t, high, RouteColor(0.5))
	assert.Equal(t, high, RouteColor(1))

	mid := RouteColor(0.11)
	assert.NotEqual(t, RouteColor(0.04), mid)
	assert.NotEqual(t, RouteColor(0.18), mid)
	assert.Equal(t, "rgb(37, 99, 235)", InterpolateColor(RouteLowColor, RouteHighColor, 0))
}

func TestRouteWeightAndBar(t *testing.T) {
	assert.InDelta(t, 3.46, RouteWeight(0.12), 1e-9)
	assert.InDelta(t, 2.5, RouteWeight(0), 1e-9)

	assert.InDelta(t, 100, RouteBarWidth(0.12, 0.12), 1e-9)
	assert.InDelta(t, 50, RouteBarWidth(0.06, 0.12), 1e-9)
	assert.InDelta(t, 12, RouteBarWidth(0.01, 0.12), 1e-9)
	assert.InDelta(t, 12, RouteBarWidth(0.01, 0), 1e-9)
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0 min", FormatMinutes(0))
	assert.Equal(t, "32 min", FormatMinutes(32))
}

func TestStylePending(t *testing.T) {
	style := StylePending(3, false)
	assert.Equal(t, PendingColor, style.Color)
	assert.Equal(t, PendingColor, style.FillColor)
	assert.Equal(t, MarkerRadius(3, false), style.Radius)
}
