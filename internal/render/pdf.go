package render

import (
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"
	"github.com/skypies/geo"

	"github.com/bobby-s-dev/airport-delays/internal/visual"
)

const (
	pageMargin   = 12.0
	titleHeight  = 18.0
	legendHeight = 14.0
	boundsPadDeg = 2.0
	pointsPerMM  = 72.0 / 25.4
)

// mapGrid projects lat/long onto a rectangle of the page, equirectangular
// with longitude scaled by the cosine of the mid latitude.
type mapGrid struct {
	*gofpdf.Fpdf

	OffsetU, OffsetV float64
	W, H             float64
	Box              geo.LatlongBox
	lonScale         float64
	scale            float64
}

func newMapGrid(pdf *gofpdf.Fpdf, box geo.LatlongBox, u, v, w, h float64) mapGrid {
	g := mapGrid{Fpdf: pdf, OffsetU: u, OffsetV: v, W: w, H: h, Box: box}
	g.lonScale = math.Cos((box.SW.Lat + box.NE.Lat) / 2 * math.Pi / 180)

	spanX := (box.NE.Long - box.SW.Long) * g.lonScale
	spanY := box.NE.Lat - box.SW.Lat
	g.scale = math.Min(w/math.Max(spanX, 1e-6), h/math.Max(spanY, 1e-6))

	// Center the projected box inside the rectangle.
	g.OffsetU += (w - spanX*g.scale) / 2
	g.OffsetV += (h - spanY*g.scale) / 2
	return g
}

func (g mapGrid) UV(ll geo.Latlong) (float64, float64) {
	u := g.OffsetU + (ll.Long-g.Box.SW.Long)*g.lonScale*g.scale
	v := g.OffsetV + (g.Box.NE.Lat-ll.Lat)*g.scale
	return u, v
}

func (g mapGrid) setDrawHex(hex string) {
	c := visual.ParseHex(hex)
	g.SetDrawColor(c.R, c.G, c.B)
}

func (g mapGrid) setFillHex(hex string) {
	c := visual.ParseHex(hex)
	g.SetFillColor(c.R, c.G, c.B)
}

func (g mapGrid) drawRoute(p Polyline) {
	if len(p.Points) < 2 {
		return
	}
	g.setDrawHex(p.Style.Color)
	g.SetLineWidth(p.Style.Weight / pointsPerMM)
	g.SetAlpha(p.Style.Opacity, "Normal")
	u, v := g.UV(p.Points[0])
	g.MoveTo(u, v)
	for _, pt := range p.Points[1:] {
		u, v = g.UV(pt)
		g.LineTo(u, v)
	}
	g.DrawPath("D")
	g.SetAlpha(1.0, "Normal")
}

func (g mapGrid) drawMarker(m Marker) {
	u, v := g.UV(m.Position)
	r := m.Style.Radius / pointsPerMM

	g.setFillHex(m.Style.FillColor)
	g.SetDrawColor(0xff, 0xff, 0xff)
	g.SetLineWidth(m.Style.Weight / pointsPerMM)
	g.SetAlpha(m.Style.FillOpacity, "Normal")
	g.Circle(u, v, r, "FD")
	g.SetAlpha(1.0, "Normal")

	g.SetFont("Helvetica", "", 7)
	g.SetTextColor(0x1e, 0x29, 0x3b)
	g.Text(u+r+0.8, v+1, m.Code)
}

// WritePDF renders the view as a landscape Letter map: arcs under markers,
// the selected marker last, then the title block and legend.
func WritePDF(w io.Writer, v View) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetTitle("Airport delay board", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0x0f, 0x17, 0x2a)
	pdf.Text(pageMargin, pageMargin+4, "Airport delay board")

	pdf.SetFont("Helvetica", "", 9)
	subtitle := v.Health.Label
	if v.LastUpdated != "" {
		subtitle = fmt.Sprintf("%s   %s", subtitle, v.LastUpdated)
	}
	pdf.Text(pageMargin, pageMargin+10, tr(subtitle))
	if v.Panel.Code != "" {
		pdf.Text(pageMargin, pageMargin+15, tr(fmt.Sprintf("Selected: %s %s  avg %s  max %s",
			v.Panel.Code, v.Panel.City, v.Panel.AvgDelay, v.Panel.MaxDelay)))
	}

	box := pdfBounds(v)
	grid := newMapGrid(pdf, box,
		pageMargin, pageMargin+titleHeight,
		pageW-2*pageMargin, pageH-2*pageMargin-titleHeight-legendHeight)

	for _, r := range v.Routes {
		grid.drawRoute(r)
	}
	for _, m := range v.Markers {
		grid.drawMarker(m)
	}

	drawLegend(pdf, pageMargin, pageH-pageMargin-legendHeight/2, v.Legend)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render map pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write map pdf: %w", err)
	}
	return nil
}

func drawLegend(pdf *gofpdf.Fpdf, x, y float64, legend []LegendEntry) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0x1e, 0x29, 0x3b)
	for _, e := range legend {
		c := visual.ParseHex(e.Color)
		pdf.SetFillColor(c.R, c.G, c.B)
		pdf.Circle(x+1.5, y-1, 1.5, "F")
		pdf.Text(x+4.5, y, e.Label)
		x += 4.5 + pdf.GetStringWidth(e.Label) + 8
	}
}

// pdfBounds prefers the fitted viewport bounds, otherwise the markers'
// extent, padded on every side.
func pdfBounds(v View) geo.LatlongBox {
	var box geo.LatlongBox
	switch {
	case v.Viewport.Bounds != nil:
		box = *v.Viewport.Bounds
	case len(v.Markers) > 0:
		box = geo.LatlongBox{SW: v.Markers[0].Position, NE: v.Markers[0].Position}
		for _, m := range v.Markers[1:] {
			box.SW.Lat = math.Min(box.SW.Lat, m.Position.Lat)
			box.SW.Long = math.Min(box.SW.Long, m.Position.Long)
			box.NE.Lat = math.Max(box.NE.Lat, m.Position.Lat)
			box.NE.Long = math.Max(box.NE.Long, m.Position.Long)
		}
	default:
		box = geo.LatlongBox{
			SW: geo.Latlong{Lat: InitialCenter.Lat - 12, Long: InitialCenter.Long - 28},
			NE: geo.Latlong{Lat: InitialCenter.Lat + 12, Long: InitialCenter.Long + 28},
		}
	}
	for _, r := range v.Routes {
		for _, pt := range r.Points {
			box.SW.Lat = math.Min(box.SW.Lat, pt.Lat)
			box.SW.Long = math.Min(box.SW.Long, pt.Long)
			box.NE.Lat = math.Max(box.NE.Lat, pt.Lat)
			box.NE.Long = math.Max(box.NE.Long, pt.Long)
		}
	}
	box.SW.Lat -= boundsPadDeg
	box.SW.Long -= boundsPadDeg
	box.NE.Lat += boundsPadDeg
	box.NE.Long += boundsPadDeg
	return box
}
