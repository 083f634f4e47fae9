// Package svg implements plot.Surface with github.com/ajstarks/svgo.
package svg

import (
	"io"
	"math"

	svgo "github.com/ajstarks/svgo"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/weldgroove/pkg/plot"
)

// Compile-time interface check.
var _ plot.Surface = (*Surface)(nil)

// DefaultScale is the number of pixels per mm.
const DefaultScale = 20.0

const (
	margin    = 50 // px around the plot area, room for labels
	fontSize  = 14
	lineStyle = "fill:none;stroke:black;stroke-width:1"
	axisStyle = "stroke:gray;stroke-width:1;stroke-dasharray:4,2"
	textStyle = "font-family:sans-serif;font-size:14px;text-anchor:middle"
)

// Surface buffers polylines and writes an SVG document on Save. The y axis
// points up; the document is flipped accordingly.
type Surface struct {
	w      io.Writer
	scale  float64
	lines  [][]v2.Vec
	xLabel string
	yLabel string
}

// New returns a surface writing to w with scale pixels per mm. A
// non-positive scale selects DefaultScale.
func New(w io.Writer, scale float64) *Surface {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Surface{w: w, scale: scale}
}

// Polyline records a polyline in mm.
func (s *Surface) Polyline(pts []v2.Vec) {
	s.lines = append(s.lines, append([]v2.Vec(nil), pts...))
}

// AxisLabels sets the captions drawn below and left of the plot.
func (s *Surface) AxisLabels(x, y string) {
	s.xLabel, s.yLabel = x, y
}

// bounds returns the extent of all polylines, always including the origin.
func (s *Surface) bounds() (lo, hi v2.Vec) {
	for _, pl := range s.lines {
		for _, p := range pl {
			lo = v2.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y)}
			hi = v2.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y)}
		}
	}
	return lo, hi
}

// Save renders the buffered drawing.
func (s *Surface) Save() error {
	lo, hi := s.bounds()
	width := int(math.Ceil((hi.X-lo.X)*s.scale)) + 2*margin
	height := int(math.Ceil((hi.Y-lo.Y)*s.scale)) + 2*margin

	px := func(p v2.Vec) (int, int) {
		x := margin + (p.X-lo.X)*s.scale
		y := margin + (hi.Y-p.Y)*s.scale
		return int(math.Round(x)), int(math.Round(y))
	}

	canvas := svgo.New(s.w)
	canvas.Start(width, height)

	// Axes through the origin.
	x0, y0 := px(v2.Vec{})
	canvas.Line(margin, y0, width-margin, y0, axisStyle)
	canvas.Line(x0, margin, x0, height-margin, axisStyle)

	for _, pl := range s.lines {
		xs := make([]int, len(pl))
		ys := make([]int, len(pl))
		for i, p := range pl {
			xs[i], ys[i] = px(p)
		}
		canvas.Polyline(xs, ys, lineStyle)
	}

	if s.xLabel != "" {
		canvas.Text(width/2, height-margin/2+fontSize/2, s.xLabel, textStyle)
	}
	if s.yLabel != "" {
		canvas.TranslateRotate(margin/2, height/2, -90)
		canvas.Text(0, fontSize/2, s.yLabel, textStyle)
		canvas.Gend()
	}

	canvas.End()
	return nil
}
