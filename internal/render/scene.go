package render

import (
	"maps"
	"slices"
	"sync"

	"github.com/skypies/geo"
)

// Initial viewport over the continental US.
var (
	InitialCenter = geo.Latlong{Lat: 39.5, Long: -98.35}
	InitialZoom   = 4.0
)

type Viewport struct {
	Center    geo.Latlong     `json:"center"`
	Zoom      float64         `json:"zoom"`
	Bounds    *geo.LatlongBox `json:"bounds,omitempty"`
	PaddingPx int             `json:"padding_px,omitempty"`
	Animated  bool            `json:"animated"`
}

// View is a point-in-time copy of the scene, safe to serialize.
type View struct {
	Version      uint64        `json:"version"`
	Markers      []Marker      `json:"markers"`
	Routes       []Polyline    `json:"routes"`
	Viewport     Viewport      `json:"viewport"`
	Panel        Panel         `json:"panel"`
	Health       HealthBadge   `json:"health"`
	Notification string        `json:"notification,omitempty"`
	LastUpdated  string        `json:"last_updated,omitempty"`
	Summary      Summary       `json:"summary"`
	Airports     []ListEntry   `json:"airports"`
	Legend       []LegendEntry `json:"legend"`
}

type sceneState struct {
	markers      map[string]Marker
	order        []string
	routes       []Polyline
	viewport     Viewport
	panel        Panel
	health       HealthBadge
	notification string
	lastUpdated  string
	summary      Summary
	list         []ListEntry
}

func (st *sceneState) clone() *sceneState {
	c := *st
	c.markers = maps.Clone(st.markers)
	c.order = slices.Clone(st.order)
	c.routes = slices.Clone(st.routes)
	c.list = slices.Clone(st.list)
	return &c
}

// Scene is an in-memory MapSurface and Page. Markers are keyed by code and
// drawn in placement order, with front markers last. Between BeginFrame and
// CommitFrame writes go to a draft that View does not see.
type Scene struct {
	mu      sync.RWMutex
	live    *sceneState
	draft   *sceneState
	depth   int
	version uint64
}

func NewScene() *Scene {
	return &Scene{
		live: &sceneState{
			markers:  make(map[string]Marker),
			viewport: Viewport{Center: InitialCenter, Zoom: InitialZoom},
			panel:    Panel{Placeholder: NoDataPlaceholder},
		},
	}
}

// BeginFrame starts batching. Frames nest; only the outermost commit publishes.
func (s *Scene) BeginFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.depth == 0 {
		s.draft = s.live.clone()
	}
	s.depth++
}

func (s *Scene) CommitFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.depth == 0 {
		return
	}
	s.depth--
	if s.depth == 0 {
		s.live = s.draft
		s.draft = nil
		s.version++
	}
}

// update applies fn to the draft, or to the live state outside a frame.
func (s *Scene) update(fn func(st *sceneState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft != nil {
		fn(s.draft)
		return
	}
	fn(s.live)
	s.version++
}

func (s *Scene) PlaceMarker(m Marker) {
	s.update(func(st *sceneState) {
		if _, ok := st.markers[m.Code]; !ok {
			st.order = append(st.order, m.Code)
		}
		st.markers[m.Code] = m
	})
}

func (s *Scene) ClearRoutes() {
	s.update(func(st *sceneState) { st.routes = nil })
}

func (s *Scene) DrawPolyline(p Polyline) {
	s.update(func(st *sceneState) { st.routes = append(st.routes, p) })
}

// FitBounds centers on the box. Zoom is left to the client, which knows its pixel size.
func (s *Scene) FitBounds(box geo.LatlongBox, paddingPx int) {
	s.update(func(st *sceneState) {
		st.viewport.Bounds = &box
		st.viewport.PaddingPx = paddingPx
		st.viewport.Center = geo.Latlong{
			Lat:  (box.SW.Lat + box.NE.Lat) / 2,
			Long: (box.SW.Long + box.NE.Long) / 2,
		}
		st.viewport.Animated = false
	})
}

func (s *Scene) FlyTo(center geo.Latlong, zoom float64) {
	s.update(func(st *sceneState) {
		st.viewport.Center = center
		st.viewport.Zoom = zoom
		st.viewport.Animated = true
	})
}

// Zoom reads the draft while a frame is open.
func (s *Scene) Zoom() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.draft != nil {
		return s.draft.viewport.Zoom
	}
	return s.live.viewport.Zoom
}

func (s *Scene) ShowPanel(p Panel) {
	s.update(func(st *sceneState) { st.panel = p })
}

func (s *Scene) ShowHealth(b HealthBadge) {
	s.update(func(st *sceneState) { st.health = b })
}

// ShowNotification sets the banner; an empty message hides it.
func (s *Scene) ShowNotification(msg string) {
	s.update(func(st *sceneState) { st.notification = msg })
}

func (s *Scene) ShowLastUpdated(text string) {
	s.update(func(st *sceneState) { st.lastUpdated = text })
}

func (s *Scene) ShowSummary(sum Summary) {
	s.update(func(st *sceneState) { st.summary = sum })
}

func (s *Scene) ShowAirportList(entries []ListEntry) {
	entries = slices.Clone(entries)
	s.update(func(st *sceneState) { st.list = entries })
}

// View returns a copy of the scene in draw order.
func (s *Scene) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	live := s.live

	markers := make([]Marker, 0, len(live.order))
	var front []Marker
	for _, code := range live.order {
		m := live.markers[code]
		if m.Style.Front {
			front = append(front, m)
			continue
		}
		markers = append(markers, m)
	}
	markers = append(markers, front...)

	routes := make([]Polyline, len(live.routes))
	for i, r := range live.routes {
		r.Points = slices.Clone(r.Points)
		routes[i] = r
	}

	vp := live.viewport
	if vp.Bounds != nil {
		b := *vp.Bounds
		vp.Bounds = &b
	}

	panel := live.panel
	panel.Routes = slices.Clone(panel.Routes)

	return View{
		Version:      s.version,
		Markers:      markers,
		Routes:       routes,
		Viewport:     vp,
		Panel:        panel,
		Health:       live.health,
		Notification: live.notification,
		LastUpdated:  live.lastUpdated,
		Summary:      live.summary,
		Airports:     slices.Clone(live.list),
		Legend:       Legend(),
	}
}
