// Package status turns untrusted feed payloads and snapshot records into
// canonical AirportStatus values. Every function here is total: malformed
// input degrades to empty strings and zero minutes, never to an error.
package status

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bobby-s-dev/airport-delays/internal/models"
)

const (
	DelayedReason     = "Delays reported."
	NoDelayReason     = "No significant delays reported."
	UnavailableReason = "Live status is unavailable for this airport."
)

var minutesPattern = regexp.MustCompile(`(?i)([0-9]+)\s*(min|minute)`)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.UnixDate,
	time.ANSIC,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2, 2006 3:04 PM",
	"Jan 2 2006 3:04 pm",
}

// fields is the intermediate shape shared by feed and snapshot inputs.
type fields struct {
	delay     bool
	avg       int
	max       int
	min       int
	reason    string
	trend     string
	weather   models.Weather
	fetchedAt *time.Time
}

// Normalize parses a decoded feed payload for code. The payload is expected
// to carry a top-level delay flag plus nested "status" and "weather"
// objects, but any shape is accepted.
func Normalize(code string, raw any, live bool) models.AirportStatus {
	st := field(raw, "status")
	wx := field(raw, "weather")

	return build(code, fields{
		delay:  Boolean(field(raw, "delay")),
		avg:    DelayMinutes(field(st, "avgDelay")),
		max:    DelayMinutes(field(st, "maxDelay")),
		min:    DelayMinutes(field(st, "minDelay")),
		reason: firstText(field(st, "reason"), field(st, "type")),
		trend:  CleanText(field(st, "trend")),
		weather: models.Weather{
			Summary:     firstText(field(wx, "weather"), field(wx, "conditions")),
			Temperature: firstText(field(wx, "temp"), field(wx, "temperature")),
			Wind:        CleanText(field(wx, "wind")),
			Visibility:  Visibility(field(wx, "visibility")),
		},
		fetchedAt: Timestamp(field(st, "updateTime")),
	}, live)
}

// FromSnapshot builds a status from a pre-recorded fallback record.
func FromSnapshot(code string, rec models.SnapshotRecord, live bool) models.AirportStatus {
	return build(code, fields{
		delay:  rec.Delay,
		avg:    clampMinutes(rec.AvgDelayMinutes),
		max:    clampMinutes(rec.MaxDelayMinutes),
		min:    clampMinutes(rec.MinDelayMinutes),
		reason: CleanText(rec.Reason),
		trend:  CleanText(rec.Trend),
		weather: models.Weather{
			Summary:     CleanText(rec.Weather.Summary),
			Temperature: CleanText(rec.Weather.Temperature),
			Wind:        CleanText(rec.Weather.Wind),
			Visibility:  CleanText(rec.Weather.Visibility),
		},
		fetchedAt: Timestamp(rec.FetchedAt),
	}, live)
}

// Baseline is the calm placeholder for an airport with neither live nor snapshot data.
func Baseline(code string) models.AirportStatus {
	return build(code, fields{reason: UnavailableReason}, false)
}

func build(code string, f fields, live bool) models.AirportStatus {
	delay := f.delay || f.avg > 0

	reason := f.reason
	if reason == "" {
		if delay {
			reason = DelayedReason
		} else {
			reason = NoDelayReason
		}
	}

	return models.AirportStatus{
		Code:            code,
		Delay:           delay,
		AvgDelayMinutes: f.avg,
		MaxDelayMinutes: f.max,
		MinDelayMinutes: f.min,
		Reason:          reason,
		Trend:           f.trend,
		Weather:         f.weather,
		FetchedAt:       f.fetchedAt,
		Live:            live,
	}
}

// DelayMinutes reads a delay duration. Numbers round to the nearest minute;
// strings match "<n> min(ute)" first and fall back to a leading integer.
func DelayMinutes(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return roundMinutes(x)
	case float32:
		return roundMinutes(float64(x))
	case int:
		return clampMinutes(x)
	case int64:
		return clampMinutes(int(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return roundMinutes(f)
	case string:
		text := strings.TrimSpace(x)
		if text == "" {
			return 0
		}
		if m := minutesPattern.FindStringSubmatch(text); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return 0
			}
			return clampMinutes(n)
		}
		n, ok := leadingInt(text)
		if !ok {
			return 0
		}
		return clampMinutes(n)
	default:
		return 0
	}
}

// Boolean accepts native booleans and the strings "true" and "yes" in any case.
func Boolean(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		lower := strings.ToLower(strings.TrimSpace(x))
		return lower == "true" || lower == "yes"
	default:
		return false
	}
}

// CleanText collapses whitespace runs and trims. Non-strings become "".
func CleanText(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.Join(strings.Fields(s), " ")
}

// Timestamp parses a date string (or epoch milliseconds) into UTC, nil when unparseable.
func Timestamp(v any) *time.Time {
	switch x := v.(type) {
	case string:
		text := strings.TrimSpace(x)
		if text == "" {
			return nil
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, text); err == nil {
				t = t.UTC()
				return &t
			}
		}
		return nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		t := time.UnixMilli(int64(x)).UTC()
		return &t
	default:
		return nil
	}
}

// Visibility renders a visibility value in statute miles, appending " mi"
// unless the text already mentions miles.
func Visibility(v any) string {
	var text string
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ""
		}
		text = strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		text = x.String()
	case int:
		text = strconv.Itoa(x)
	case string:
		text = CleanText(x)
	default:
		return ""
	}
	if text == "" {
		return ""
	}
	if strings.Contains(strings.ToLower(text), "mi") {
		return text
	}
	return text + " mi"
}

func firstText(values ...any) string {
	for _, v := range values {
		if text := CleanText(v); text != "" {
			return text
		}
	}
	return ""
}

func field(v any, key string) any {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return m[key]
}

func roundMinutes(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return clampMinutes(int(math.Round(f)))
}

// clampMinutes keeps the record non-negative; a well-formed feed never
// reports negative delays.
func clampMinutes(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// leadingInt parses an optionally signed run of leading digits, ignoring any suffix.
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
