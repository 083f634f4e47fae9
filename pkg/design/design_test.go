package design

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chazu/weldgroove/pkg/groove"
	"github.com/chazu/weldgroove/pkg/quantity"
)

func vGroove(t *testing.T, c float64) groove.Groove {
	t.Helper()
	g, err := groove.Get("VGroove", groove.Params{
		groove.WorkpieceThickness: quantity.Q(10, "mm"),
		groove.GrooveAngle:        quantity.Q(60, "deg"),
		groove.RootFace:           quantity.Q(c, "mm"),
	}, "")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	return g
}

func TestNewDesign(t *testing.T) {
	d := New()
	if d.NameIndex == nil {
		t.Fatal("NameIndex map should be initialized")
	}
	if d.Units != "mm" {
		t.Errorf("units = %q, want mm", d.Units)
	}
	if d.Len() != 0 {
		t.Errorf("empty design should have 0 entries, got %d", d.Len())
	}
}

func TestAddAndLookup(t *testing.T) {
	d := New()
	d.AddGroove("root", vGroove(t, 1))
	d.AddWorkpiece("plate", Workpiece{Geometry: "10 mm plate"})

	if d.Len() != 2 {
		t.Fatalf("len = %d, want 2", d.Len())
	}
	if e := d.Lookup("root"); e == nil || e.Kind != KindGroove {
		t.Fatalf("Lookup(root) = %+v", e)
	}
	if d.Lookup("missing") != nil {
		t.Error("Lookup should return nil for missing name")
	}
	if _, ok := d.Groove("plate"); ok {
		t.Error("Groove(plate) should not return a workpiece")
	}
	g, ok := d.Groove("root")
	if !ok || g.Type() != groove.TypeVGroove {
		t.Errorf("Groove(root) = %v, %v", g, ok)
	}
	if got := len(d.Grooves()); got != 1 {
		t.Errorf("grooves = %d, want 1", got)
	}
	if got := len(d.Workpieces()); got != 1 {
		t.Errorf("workpieces = %d, want 1", got)
	}
	if names := d.Names(); names[0] != "root" || names[1] != "plate" {
		t.Errorf("names = %v, want insertion order", names)
	}
}

func TestMustLookupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustLookup should panic for a missing name")
		}
	}()
	New().MustLookup("nope")
}

func TestValidateClean(t *testing.T) {
	d := New()
	d.AddGroove("root", vGroove(t, 1))
	d.AddWorkpiece("plate", Workpiece{Geometry: "plate"})

	if errs := Validate(d); len(errs) != 0 {
		t.Errorf("expected no findings, got %v", errs)
	}
	if !Check(d).OK() {
		t.Error("Check should be OK")
	}
}

func TestValidateFindings(t *testing.T) {
	tests := []struct {
		name     string
		build    func(d *Design)
		severity Severity
		contains string
	}{
		{
			name:     "no grooves",
			build:    func(d *Design) { d.AddWorkpiece("plate", Workpiece{Geometry: "plate"}) },
			severity: SeverityWarning,
			contains: "no grooves",
		},
		{
			name: "duplicate names",
			build: func(d *Design) {
				d.AddGroove("a", vGroove(t, 1))
				d.AddGroove("a", vGroove(t, 2))
			},
			severity: SeverityError,
			contains: "duplicate name",
		},
		{
			name:     "unnamed entry",
			build:    func(d *Design) { d.AddGroove("", vGroove(t, 1)) },
			severity: SeverityError,
			contains: "has no name",
		},
		{
			name:     "impossible geometry",
			build:    func(d *Design) { d.AddGroove("deep", vGroove(t, 12)) },
			severity: SeverityError,
			contains: "profile",
		},
		{
			name: "hand built groove without codes",
			build: func(d *Design) {
				d.AddGroove("raw", groove.IGroove{T: quantity.Q(4, "mm"), B: quantity.Q(0, "mm")})
			},
			severity: SeverityError,
			contains: "code_number",
		},
		{
			name: "empty workpiece",
			build: func(d *Design) {
				d.AddGroove("root", vGroove(t, 1))
				d.AddWorkpiece("plate", Workpiece{})
			},
			severity: SeverityWarning,
			contains: "no geometry",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			tt.build(d)
			errs := Validate(d)
			found := false
			for _, e := range errs {
				if e.Severity == tt.severity && strings.Contains(e.Error(), tt.contains) {
					found = true
				}
			}
			if !found {
				t.Errorf("no %s containing %q in %v", tt.severity, tt.contains, errs)
			}
		})
	}
}

func TestCheckSeparatesSeverities(t *testing.T) {
	d := New()
	d.AddGroove("deep", vGroove(t, 12))
	d.AddWorkpiece("plate", Workpiece{})

	r := Check(d)
	if r.OK() {
		t.Fatal("expected errors")
	}
	if len(r.Errors) != 1 || len(r.Warnings) != 1 {
		t.Errorf("errors = %v, warnings = %v", r.Errors, r.Warnings)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	d := New()
	for _, e := range groove.Catalog() {
		d.AddGroove(e.Name, e.Groove)
	}
	d.AddWorkpiece("plate", Workpiece{Geometry: "two 10 mm plates"})
	d.AddWorkpiece("blank", Workpiece{})

	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "weldx/aws/design/workpiece-1.0.0") {
		t.Errorf("workpiece tag missing from\n%s", buf.String())
	}

	back, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if back.Len() != d.Len() {
		t.Fatalf("len = %d, want %d", back.Len(), d.Len())
	}
	for _, e := range groove.Catalog() {
		g, ok := back.Groove(e.Name)
		if !ok {
			t.Errorf("groove %s missing", e.Name)
			continue
		}
		if !groove.Equal(e.Groove, g) {
			t.Errorf("groove %s changed: %v", e.Name, groove.ParamStrings(g))
		}
	}
	if w := back.MustLookup("plate").Data.(Workpiece); w.Geometry != "two 10 mm plates" {
		t.Errorf("plate geometry = %q", w.Geometry)
	}
	if w := back.MustLookup("blank").Data.(Workpiece); w.Geometry != "" {
		t.Errorf("blank geometry = %q", w.Geometry)
	}
}

func TestToDocumentRejectsDuplicates(t *testing.T) {
	d := New()
	d.AddGroove("a", vGroove(t, 1))
	d.AddGroove("a", vGroove(t, 2))
	if _, err := ToDocument(d); err == nil {
		t.Error("expected duplicate error")
	}
}

func TestFromDocumentRejectsPlainValues(t *testing.T) {
	if _, err := FromDocument(map[string]any{"x": "text"}); err == nil {
		t.Error("expected error for plain value")
	}
}
