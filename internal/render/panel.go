package render

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/bobby-s-dev/airport-delays/internal/models"
	"github.com/bobby-s-dev/airport-delays/internal/visual"
)

const (
	NoDataPlaceholder = "No delay data available."
	LoadingText       = "Loading status…"
	NoRoutesText      = "No route insight available."
	notReported       = "Not reported"
	emptyTrend        = "—"
	displayLayout     = "Jan 2, 3:04 PM"
	listLimit         = 8
)

func buildTooltip(ref models.AirportRef, st *models.AirportStatus) Tooltip {
	tip := Tooltip{Headline: fmt.Sprintf("%s · %s", ref.Code, ref.City)}
	if st == nil {
		tip.Status = LoadingText
		return tip
	}
	switch {
	case st.Delay && st.AvgDelayMinutes > 0:
		tip.Status = fmt.Sprintf("%d min avg delay", st.AvgDelayMinutes)
	case st.Delay:
		tip.Status = "Delay reported"
	default:
		tip.Status = "On time"
	}
	if st.Live {
		tip.Source = "Live FAA feed"
	} else {
		tip.Source = "Snapshot"
	}
	return tip
}

// buildPanel renders the detail panel for ref. Route destinations missing
// from the table are skipped.
func buildPanel(ref models.AirportRef, st models.AirportStatus, airports *models.AirportTable, loc *time.Location) Panel {
	sev := visual.SeverityOf(&st)
	p := Panel{
		Code:          ref.Code,
		Name:          ref.Name,
		City:          ref.City,
		Severity:      sev,
		SeverityLabel: sev.Label(),
		AvgDelay:      visual.FormatMinutes(st.AvgDelayMinutes),
		MaxDelay:      visual.FormatMinutes(st.MaxDelayMinutes),
		MinDelay:      visual.FormatMinutes(st.MinDelayMinutes),
		Trend:         st.Trend,
		Weather:       weatherLine(st.Weather),
		Reason:        st.Reason,
		Updated:       updateLine(st, loc),
		Live:          st.Live,
	}
	if p.Trend == "" {
		p.Trend = emptyTrend
	}
	if st.Weather.Wind != "" {
		p.Wind = "Wind " + st.Weather.Wind
	}

	p.Routes = routeRows(ref, airports)
	if len(p.Routes) == 0 {
		p.RoutesEmpty = NoRoutesText
	}
	return p
}

func routeRows(ref models.AirportRef, airports *models.AirportTable) []RouteRow {
	maxShare := 0.0
	for _, r := range ref.TopRoutes {
		maxShare = math.Max(maxShare, r.Share)
	}

	rows := make([]RouteRow, 0, len(ref.TopRoutes))
	for _, r := range ref.TopRoutes {
		dest, ok := airports.Lookup(r.Code)
		if !ok {
			continue
		}
		rows = append(rows, RouteRow{
			Code:       dest.Code,
			Label:      fmt.Sprintf("%s → %s", ref.Code, dest.Code),
			ShareText:  fmt.Sprintf("%d%% of delays", int(math.Round(r.Share*100))),
			Share:      r.Share,
			BarWidth:   visual.RouteBarWidth(r.Share, maxShare),
			Color:      visual.RouteColor(r.Share),
			DistanceKM: math.Round(ref.Latlong().DistKM(dest.Latlong())),
		})
	}
	return rows
}

func weatherLine(w models.Weather) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{w.Summary, w.Temperature, w.Visibility} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return notReported
	}
	return strings.Join(parts, " · ")
}

func updateLine(st models.AirportStatus, loc *time.Location) string {
	if st.FetchedAt == nil {
		if st.Live {
			return "Live data"
		}
		return "Snapshot data"
	}
	ts := st.FetchedAt.In(loc).Format(displayLayout)
	if st.Live {
		return "Live update " + ts
	}
	return "Snapshot from " + ts
}

func lastUpdatedLine(at time.Time, manual bool, loc *time.Location) string {
	if at.IsZero() {
		return ""
	}
	line := "Updated " + at.In(loc).Format(displayLayout)
	if manual {
		line += " (manual refresh)"
	}
	return line
}

func buildHealth(h models.FeedHealth) HealthBadge {
	return HealthBadge{State: string(h.State), Label: h.Label(), Live: h.Live, Total: h.Total}
}

// buildSummary aggregates the board over tracked codes. Ties for worst and
// best keep the first code in tracked order.
func buildSummary(tracked []string, airports *models.AirportTable, statusFor func(string) models.AirportStatus, h models.FeedHealth) Summary {
	s := Summary{Live: h.Live, Total: h.Total}
	if len(tracked) == 0 {
		return s
	}

	sum := 0
	for _, code := range tracked {
		st := statusFor(code)
		sum += st.AvgDelayMinutes
		if st.Delay {
			s.Delayed++
		}
		entry := &SummaryAirport{Code: code, AvgDelayMinutes: st.AvgDelayMinutes}
		if ref, ok := airports.Lookup(code); ok {
			entry.City = ref.City
		}
		if s.Worst == nil || entry.AvgDelayMinutes > s.Worst.AvgDelayMinutes {
			s.Worst = entry
		}
		if s.Best == nil || entry.AvgDelayMinutes < s.Best.AvgDelayMinutes {
			s.Best = entry
		}
	}
	s.AvgDelayMinutes = int(math.Round(float64(sum) / float64(len(tracked))))
	return s
}

// buildList ranks tracked airports by average delay, worst first.
func buildList(tracked []string, airports *models.AirportTable, statusFor func(string) models.AirportStatus, selected string) []ListEntry {
	type ranked struct {
		code string
		st   models.AirportStatus
	}
	all := make([]ranked, 0, len(tracked))
	for _, code := range tracked {
		all = append(all, ranked{code: code, st: statusFor(code)})
	}
	slices.SortStableFunc(all, func(a, b ranked) int {
		return cmp.Compare(b.st.AvgDelayMinutes, a.st.AvgDelayMinutes)
	})
	if len(all) > listLimit {
		all = all[:listLimit]
	}

	entries := make([]ListEntry, 0, len(all))
	for _, r := range all {
		sev := visual.SeverityOf(&r.st)
		entry := ListEntry{
			Code:     r.code,
			AvgDelay: visual.FormatMinutes(r.st.AvgDelayMinutes),
			Severity: sev,
			Color:    sev.Color(),
			Active:   r.code == selected,
		}
		if ref, ok := airports.Lookup(r.code); ok {
			entry.City = ref.City
		}
		entries = append(entries, entry)
	}
	return entries
}
