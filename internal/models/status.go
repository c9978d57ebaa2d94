package models

import (
	"fmt"
	"time"
)

type Weather struct {
	Summary     string `json:"summary"`
	Temperature string `json:"temperature"`
	Wind        string `json:"wind"`
	Visibility  string `json:"visibility"`
}

// AirportStatus is the canonical delay record. Delay is derived: it is
// true whenever AvgDelayMinutes > 0. Live is only set for feed data.
type AirportStatus struct {
	Code            string     `json:"code"`
	Delay           bool       `json:"delay"`
	AvgDelayMinutes int        `json:"avg_delay_minutes"`
	MaxDelayMinutes int        `json:"max_delay_minutes"`
	MinDelayMinutes int        `json:"min_delay_minutes"`
	Reason          string     `json:"reason"`
	Trend           string     `json:"trend"`
	Weather         Weather    `json:"weather"`
	FetchedAt       *time.Time `json:"fetched_at"`
	Live            bool       `json:"live"`
}

// SnapshotRecord is a pre-recorded status used when the live feed is unreachable.
type SnapshotRecord struct {
	Delay           bool    `json:"delay"`
	AvgDelayMinutes int     `json:"avg_delay_minutes"`
	MaxDelayMinutes int     `json:"max_delay_minutes"`
	MinDelayMinutes int     `json:"min_delay_minutes"`
	Reason          string  `json:"reason"`
	Trend           string  `json:"trend"`
	Weather         Weather `json:"weather"`
	FetchedAt       string  `json:"fetched_at"`
}

type HealthState string

const (
	HealthLive    HealthState = "live"
	HealthPartial HealthState = "partial"
	HealthOffline HealthState = "offline"
)

// FeedHealth classifies how many tracked airports returned live data in a cycle.
type FeedHealth struct {
	State HealthState `json:"state"`
	Live  int         `json:"live"`
	Total int         `json:"total"`
}

func ClassifyHealth(live, total int) FeedHealth {
	h := FeedHealth{Live: live, Total: total}
	switch {
	case live == total:
		h.State = HealthLive
	case live == 0:
		h.State = HealthOffline
	default:
		h.State = HealthPartial
	}
	return h
}

func (h FeedHealth) Fallback() int {
	return h.Total - h.Live
}

func (h FeedHealth) Label() string {
	switch h.State {
	case HealthLive:
		return "Live FAA feed"
	case HealthOffline:
		return "Offline snapshot"
	default:
		return fmt.Sprintf("Partial live (%d/%d)", h.Live, h.Total)
	}
}

// Notification is the banner text for degraded feeds, empty when fully live.
func (h FeedHealth) Notification() string {
	switch h.State {
	case HealthLive:
		return ""
	case HealthOffline:
		return "FAA status feed is unreachable. Displaying the latest historical snapshot so you still have situational awareness."
	default:
		return fmt.Sprintf("%d airport(s) are using historical delay data because the live feed is unavailable.", h.Fallback())
	}
}

// RefreshResult is the merged outcome of one refresh cycle. Statuses has
// exactly one entry per code in Codes.
type RefreshResult struct {
	CycleID    uint64                   `json:"cycle_id"`
	TraceID    string                   `json:"trace_id"`
	Codes      []string                 `json:"codes"`
	Statuses   map[string]AirportStatus `json:"statuses"`
	Live       int                      `json:"live"`
	Total      int                      `json:"total"`
	StartedAt  time.Time                `json:"started_at"`
	FinishedAt time.Time                `json:"finished_at"`
}

func (r *RefreshResult) Health() FeedHealth {
	return ClassifyHealth(r.Live, r.Total)
}
