// Package plot defines the abstract drawing surface that groove outlines
// are rendered onto. Backends (svg, dxf) implement Surface so the CLI can
// switch output formats without touching the rendering code.
package plot

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/weldgroove/pkg/groove"
	"github.com/chazu/weldgroove/pkg/tessellate"
)

// Default axis labels.
const (
	DefaultXLabel = "x in mm"
	DefaultYLabel = "y in mm"
)

// Surface is a 2D drawing target with coordinates in mm.
type Surface interface {
	// Polyline draws connected segments through pts.
	Polyline(pts []v2.Vec)
	// AxisLabels sets the axis captions. Backends without text support
	// ignore them.
	AxisLabels(x, y string)
	// Save flushes the drawing to its destination.
	Save() error
}

// Options control groove rendering.
type Options struct {
	XLabel     string
	YLabel     string
	Resolution float64 // arc step in mm, see tessellate.DefaultResolution
	Profile    []groove.ProfileOption
}

func (o Options) labels() (string, string) {
	x, y := o.XLabel, o.YLabel
	if x == "" {
		x = DefaultXLabel
	}
	if y == "" {
		y = DefaultYLabel
	}
	return x, y
}

// Groove draws the cross-section of g onto s. It does not save s.
// Every groove with a valid profile renders; errors come only from
// profile construction.
func Groove(s Surface, g groove.Groove, opts Options) error {
	o, err := tessellate.Groove(string(g.Type()), g, opts.Resolution, opts.Profile...)
	if err != nil {
		return err
	}
	Outline(s, o, opts)
	return nil
}

// Outline draws an already rasterized outline onto s.
func Outline(s Surface, o tessellate.Outline, opts Options) {
	for _, pl := range o.Polylines {
		if len(pl) > 1 {
			s.Polyline(pl)
		}
	}
	s.AxisLabels(opts.labels())
}
