// Package render owns the dashboard state and paints it onto a map surface
// and a page. All state changes go through Dispatch.
package render

import (
	"math"
	"sync"
	"time"

	"github.com/skypies/geo"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/airport-delays/internal/geodesy"
	"github.com/bobby-s-dev/airport-delays/internal/models"
	"github.com/bobby-s-dev/airport-delays/internal/visual"
)

const (
	FitPaddingPx = 36
	FlyToZoom    = 5.2
)

// FallbackFunc supplies a status for a code the current result lacks.
type FallbackFunc func(code string) models.AirportStatus

type Controller struct {
	mu       sync.Mutex
	airports *models.AirportTable
	tracked  []string
	fallback FallbackFunc
	surface  MapSurface
	page     Page
	state    State
	arcSteps int
	location *time.Location
	logger   *zap.Logger
}

type Option func(*Controller)

func WithArcSteps(steps int) Option {
	return func(c *Controller) {
		if steps > 0 {
			c.arcSteps = steps
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(c *Controller) {
		if loc != nil {
			c.location = loc
		}
	}
}

// NewController fits the viewport to the tracked airports and paints the
// loading state.
func NewController(airports *models.AirportTable, fallback FallbackFunc, surface MapSurface, page Page, logger *zap.Logger, opts ...Option) *Controller {
	c := &Controller{
		airports: airports,
		tracked:  airports.Tracked(),
		fallback: fallback,
		surface:  surface,
		page:     page,
		arcSteps: geodesy.DefaultSteps,
		location: time.Local,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	if box, ok := c.trackedBounds(); ok {
		surface.FitBounds(box, FitPaddingPx)
	}

	c.mu.Lock()
	c.paint(Effects{})
	c.mu.Unlock()
	return c
}

// Dispatch applies ev and repaints. A rejected event leaves state and
// surface untouched.
func (c *Controller) Dispatch(ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, fx, err := Transition(c.state, ev, c.airports, c.tracked)
	if err != nil {
		c.logger.Debug("Event rejected", zap.Any("event", ev), zap.Error(err))
		return err
	}
	c.state = next
	c.paint(fx)
	return nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Selected
}

func (c *Controller) statusFor(code string) models.AirportStatus {
	if c.state.Result != nil {
		if st, ok := c.state.Result.Statuses[code]; ok {
			return st
		}
	}
	return c.fallback(code)
}

// paint redraws everything from state. Marker styles are recomputed from
// severity and selection on every call.
func (c *Controller) paint(fx Effects) {
	frames := c.frames()
	for _, f := range frames {
		f.BeginFrame()
	}
	defer func() {
		for i := len(frames) - 1; i >= 0; i-- {
			frames[i].CommitFrame()
		}
	}()

	loaded := c.state.Result != nil
	selected := c.state.Selected

	for _, code := range c.tracked {
		ref, _ := c.airports.Lookup(code)
		isSelected := code == selected
		m := Marker{Code: code, Position: ref.Latlong(), Selected: isSelected}
		if loaded {
			st := c.statusFor(code)
			m.Severity = visual.SeverityOf(&st)
			m.Style = visual.StyleMarker(m.Severity, ref.TrafficIndex, isSelected)
			m.Tooltip = buildTooltip(ref, &st)
		} else {
			m.Severity = visual.OnTime
			m.Style = visual.StylePending(ref.TrafficIndex, isSelected)
			m.Tooltip = buildTooltip(ref, nil)
		}
		c.surface.PlaceMarker(m)
	}

	c.surface.ClearRoutes()
	ref, hasSelection := c.airports.Lookup(selected)
	if hasSelection {
		c.drawRoutes(ref)
	}

	switch {
	case hasSelection && loaded:
		c.page.ShowPanel(buildPanel(ref, c.statusFor(selected), c.airports, c.location))
	case hasSelection:
		c.page.ShowPanel(Panel{Code: ref.Code, Name: ref.Name, City: ref.City, Placeholder: LoadingText})
	default:
		c.page.ShowPanel(Panel{Placeholder: NoDataPlaceholder})
	}

	if loaded {
		health := c.state.Result.Health()
		c.page.ShowHealth(buildHealth(health))
		c.page.ShowNotification(health.Notification())
		c.page.ShowLastUpdated(lastUpdatedLine(c.state.UpdatedAt, c.state.Manual, c.location))
		c.page.ShowSummary(buildSummary(c.tracked, c.airports, c.statusFor, health))
		c.page.ShowAirportList(buildList(c.tracked, c.airports, c.statusFor, selected))
	}

	if fx.FlyTo && hasSelection {
		c.surface.FlyTo(ref.Latlong(), math.Max(c.surface.Zoom(), FlyToZoom))
	}
}

// frames returns the batching surfaces, each once.
func (c *Controller) frames() []Frame {
	var frames []Frame
	if f, ok := c.surface.(Frame); ok {
		frames = append(frames, f)
	}
	if f, ok := c.page.(Frame); ok && any(c.page) != any(c.surface) {
		frames = append(frames, f)
	}
	return frames
}

// drawRoutes draws an arc per top route; unknown destinations are skipped.
func (c *Controller) drawRoutes(ref models.AirportRef) {
	for _, route := range ref.TopRoutes {
		dest, ok := c.airports.Lookup(route.Code)
		if !ok {
			continue
		}
		c.surface.DrawPolyline(Polyline{
			From:   ref.Code,
			To:     dest.Code,
			Share:  route.Share,
			Points: geodesy.Arc(ref.Latlong(), dest.Latlong(), c.arcSteps),
			Style:  visual.StyleRoute(route.Share),
		})
	}
}

func (c *Controller) trackedBounds() (geo.LatlongBox, bool) {
	if len(c.tracked) == 0 {
		return geo.LatlongBox{}, false
	}
	first, _ := c.airports.Lookup(c.tracked[0])
	box := geo.LatlongBox{SW: first.Latlong(), NE: first.Latlong()}
	for _, code := range c.tracked[1:] {
		ref, _ := c.airports.Lookup(code)
		box.SW.Lat = math.Min(box.SW.Lat, ref.Lat)
		box.SW.Long = math.Min(box.SW.Long, ref.Lon)
		box.NE.Lat = math.Max(box.NE.Lat, ref.Lat)
		box.NE.Long = math.Max(box.NE.Long, ref.Lon)
	}
	return box, true
}
