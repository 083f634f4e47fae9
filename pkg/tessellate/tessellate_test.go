package tessellate_test

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/weldgroove/pkg/design"
	"github.com/chazu/weldgroove/pkg/geometry"
	"github.com/chazu/weldgroove/pkg/groove"
	"github.com/chazu/weldgroove/pkg/kernel/sdfx"
	"github.com/chazu/weldgroove/pkg/quantity"
	"github.com/chazu/weldgroove/pkg/tessellate"
)

// makeIGroove creates a butt groove of thickness t with gap b.
func makeIGroove(t *testing.T, thickness, gap float64) groove.Groove {
	t.Helper()
	g, err := groove.Get("IGroove", groove.Params{
		groove.WorkpieceThickness: quantity.Q(thickness, "mm"),
		groove.RootGap:            quantity.Q(gap, "mm"),
	}, "")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	return g
}

func TestTessellateNilDesign(t *testing.T) {
	outlines, err := tessellate.Tessellate(nil, tessellate.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outlines != nil {
		t.Errorf("expected nil outlines, got %d", len(outlines))
	}
}

func TestTessellateEmptyDesign(t *testing.T) {
	outlines, err := tessellate.Tessellate(design.New(), tessellate.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outlines) != 0 {
		t.Errorf("expected 0 outlines, got %d", len(outlines))
	}
}

func TestTessellateSkipsWorkpieces(t *testing.T) {
	d := design.New()
	d.AddWorkpiece("plates", design.Workpiece{Geometry: "two plates"})
	d.AddGroove("butt", makeIGroove(t, 4, 1))

	outlines, err := tessellate.Tessellate(d, tessellate.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outlines) != 1 {
		t.Fatalf("expected 1 outline, got %d", len(outlines))
	}
	o := outlines[0]
	if o.Name != "butt" || o.Type != groove.TypeIGroove {
		t.Errorf("outline = %s/%s, want butt/IGroove", o.Name, o.Type)
	}
	if len(o.Polylines) != 2 {
		t.Fatalf("expected 2 polylines, got %d", len(o.Polylines))
	}
	for i, pl := range o.Polylines {
		if len(pl) < 4 {
			t.Errorf("polyline %d has %d points, want at least 4", i, len(pl))
		}
		if !geometry.Near(pl[0], pl[len(pl)-1]) {
			t.Errorf("polyline %d is not closed: %v .. %v", i, pl[0], pl[len(pl)-1])
		}
	}
}

func TestTessellateCatalogInOrder(t *testing.T) {
	d := design.New()
	for _, e := range groove.Catalog() {
		d.AddGroove(e.Name, e.Groove)
	}

	outlines, err := tessellate.Tessellate(d, tessellate.Options{Resolution: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outlines) != d.Len() {
		t.Fatalf("expected %d outlines, got %d", d.Len(), len(outlines))
	}
	for i, o := range outlines {
		if o.Name != d.Entries[i].Name {
			t.Errorf("outline %d = %q, want %q", i, o.Name, d.Entries[i].Name)
		}
		if len(o.Polylines) == 0 {
			t.Errorf("outline %q has no polylines", o.Name)
		}
	}
}

func TestResolutionControlsArcDensity(t *testing.T) {
	g := groove.Catalog()[1].Groove // u_groove
	coarse, err := tessellate.Groove("u", g, 2)
	if err != nil {
		t.Fatalf("coarse: %v", err)
	}
	fine, err := tessellate.Groove("u", g, 0.05)
	if err != nil {
		t.Fatalf("fine: %v", err)
	}
	if len(fine.Polylines[0]) <= len(coarse.Polylines[0]) {
		t.Errorf("fine resolution gave %d points, coarse %d", len(fine.Polylines[0]), len(coarse.Polylines[0]))
	}
}

func TestWidthOptionIsForwarded(t *testing.T) {
	d := design.New()
	d.AddGroove("butt", makeIGroove(t, 4, 2))

	outlines, err := tessellate.Tessellate(d, tessellate.Options{
		Profile: []groove.ProfileOption{groove.WithWidth(quantity.Q(10, "mm"))},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	maxX := 0.0
	for _, pl := range outlines[0].Polylines {
		for _, p := range pl {
			maxX = max(maxX, p.X)
		}
	}
	if maxX < 10 {
		t.Errorf("max x = %v, expected the plate to extend past 10 mm", maxX)
	}
}

func TestTessellateProfileError(t *testing.T) {
	d := design.New()
	d.AddGroove("base", groove.Base{})

	_, err := tessellate.Tessellate(d, tessellate.Options{})
	if err == nil {
		t.Fatal("expected error for a groove without a profile")
	}
	if !errors.Is(err, groove.ErrUnsupportedOperation) {
		t.Errorf("expected ErrUnsupportedOperation, got %v", err)
	}
}

func TestSeams(t *testing.T) {
	d := design.New()
	d.AddWorkpiece("plates", design.Workpiece{Geometry: "two plates"})
	d.AddGroove("butt", makeIGroove(t, 4, 2))

	meshes, err := tessellate.Seams(d, sdfx.New(40), 20, tessellate.Options{})
	if err != nil {
		t.Fatalf("Seams: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}
	m := meshes[0]
	if m.Name != "butt" {
		t.Errorf("mesh name = %q, want butt", m.Name)
	}
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	_, max := m.Bounds()
	if max[2] < 19 {
		t.Errorf("seam should run to z = 20, max z = %v", max[2])
	}
}

func TestExtrudeJoinsPlates(t *testing.T) {
	o, err := tessellate.Groove("butt", makeIGroove(t, 4, 2), 0)
	if err != nil {
		t.Fatalf("Groove: %v", err)
	}
	s, err := tessellate.Extrude(o, sdfx.New(0), 10)
	if err != nil {
		t.Fatalf("Extrude: %v", err)
	}
	// Default width 2 mm beyond a 2 mm gap: plates span -3..3.
	min, max := s.BoundingBox()
	if math.Abs(min[0]+3) > 1e-6 || math.Abs(max[0]-3) > 1e-6 {
		t.Errorf("x extent = %v..%v, want -3..3", min[0], max[0])
	}

	if _, err := tessellate.Extrude(tessellate.Outline{Name: "empty"}, sdfx.New(0), 10); err == nil {
		t.Error("outline without shapes should fail")
	}
}
