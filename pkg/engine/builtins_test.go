package engine

import (
	"strings"
	"testing"

	"github.com/chazu/weldgroove/pkg/design"
	"github.com/chazu/weldgroove/pkg/groove"
	"github.com/chazu/weldgroove/pkg/quantity"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(groove "IGroove" :t (mm 4))`,
			expect: `(groove "IGroove" "__kw_t" (mm 4))`,
		},
		{
			name:   "multiple keywords",
			input:  `(groove "VGroove" :root-face "1 mm" :code-number "1.3")`,
			expect: `(groove "VGroove" "__kw_root-face" "1 mm" "__kw_code-number" "1.3")`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "escaped quote in string",
			input:  `"a \" :b" :c`,
			expect: `"a \" :b" "__kw_c"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(groove-names)`,
			expect: `(groove_names)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative number preserved",
			input:  `(mm -5)`,
			expect: `(mm -5)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "backtick string preserved",
			input:  "`raw :kw`",
			expect: "`raw :kw`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func mustEvaluate(t *testing.T, source string) *design.Design {
	t.Helper()
	d, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if d == nil {
		t.Fatal("expected non-nil design")
	}
	return d
}

func evalFailure(t *testing.T, source string) string {
	t.Helper()
	d, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if d != nil {
		t.Fatal("expected nil design on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error")
	}
	msgs := make([]string, len(evalErrs))
	for i, e := range evalErrs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "\n")
}

// ---------------------------------------------------------------------------
// Groove definitions
// ---------------------------------------------------------------------------

func TestDefgrooveVGroove(t *testing.T) {
	source := `
(defgroove "root"
  (groove "VGroove" :workpiece-thickness (mm 9) :groove-angle (deg 50)
                    :root-face (mm 4) :root-gap "2 mm" :code-number "1.3"))
`
	d := mustEvaluate(t, source)
	if d.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", d.Len())
	}
	g, ok := d.Groove("root")
	if !ok {
		t.Fatal("expected groove named 'root'")
	}
	v, ok := g.(groove.VGroove)
	if !ok {
		t.Fatalf("expected VGroove, got %T", g)
	}
	if v.T != quantity.Q(9, "mm") {
		t.Errorf("t = %v, want 9 mm", v.T)
	}
	if v.Alpha != quantity.Q(50, "deg") {
		t.Errorf("alpha = %v, want 50 deg", v.Alpha)
	}
	if v.C != quantity.Q(4, "mm") {
		t.Errorf("c = %v, want 4 mm", v.C)
	}
	if v.B != quantity.Q(2, "mm") {
		t.Errorf("b = %v, want 2 mm", v.B)
	}
	if codes := v.Codes(); len(codes) != 1 || codes[0] != "1.3" {
		t.Errorf("codes = %v, want [1.3]", codes)
	}
}

func TestGrooveSymbolKeywordsAndDefaults(t *testing.T) {
	source := `(defgroove "butt" (groove "IGroove" :t (qty 0.4 "cm")))`
	d := mustEvaluate(t, source)

	g, ok := d.Groove("butt")
	if !ok {
		t.Fatal("expected groove named 'butt'")
	}
	i := g.(groove.IGroove)
	if i.T != quantity.Q(0.4, "cm") {
		t.Errorf("t = %v, want 0.4 cm", i.T)
	}
	if !i.B.IsZero() {
		t.Errorf("b = %v, want default 0 mm", i.B)
	}
	if codes := i.Codes(); len(codes) != 3 {
		t.Errorf("codes = %v, want the three default codes", codes)
	}
}

func TestGrooveVariableReference(t *testing.T) {
	source := `
(def thick (mm 12))
(def base (groove "UGroove" :workpiece-thickness thick :bevel-angle (deg 8)
                            :bevel-radius (mm 6) :root-face (mm 3)))
(defgroove "first" base)
(defgroove "second" base)
`
	d := mustEvaluate(t, source)
	if got := d.Names(); len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("names = %v, want [first second]", got)
	}
	a, _ := d.Groove("first")
	b, _ := d.Groove("second")
	if !groove.Equal(a, b) {
		t.Error("grooves built from one value should be equal")
	}
	if err := groove.Validate(a); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestFrontalFaceGrooveDSL(t *testing.T) {
	source := `
(defgroove "lap"
  (groove "FrontalFaceGroove" :workpiece-thickness (mm 2)
                              :workpiece-thickness2 (mm 5) :special-depth (mm 4) :code-number "4.1.3"))
`
	d := mustEvaluate(t, source)
	g, ok := d.Groove("lap")
	if !ok {
		t.Fatal("expected groove named 'lap'")
	}
	if g.Type() != groove.TypeFFGroove {
		t.Errorf("type = %s, want %s", g.Type(), groove.TypeFFGroove)
	}
	if _, err := g.ToProfile(); err != nil {
		t.Errorf("ToProfile: %v", err)
	}
}

func TestWorkpiece(t *testing.T) {
	source := `
(workpiece "plates" :geometry "two 10 mm plates")
(workpiece "blank")
`
	d := mustEvaluate(t, source)
	if got := len(d.Workpieces()); got != 2 {
		t.Fatalf("expected 2 workpieces, got %d", got)
	}
	w := d.MustLookup("plates").Data.(design.Workpiece)
	if w.Geometry != "two 10 mm plates" {
		t.Errorf("geometry = %q", w.Geometry)
	}
	if w := d.MustLookup("blank").Data.(design.Workpiece); w.Geometry != "" {
		t.Errorf("blank geometry = %q", w.Geometry)
	}
}

func TestGrooveNames(t *testing.T) {
	// The result is bound so the design stays empty.
	d := mustEvaluate(t, `(def names (groove-names))`)
	if d.Len() != 0 {
		t.Errorf("groove-names should not add entries, got %d", d.Len())
	}
}

func TestQuantityBuiltins(t *testing.T) {
	source := `
(defgroove "a" (groove "IGroove" :t (mm 4) :b (rad 0)))
`
	// b is a length, so a radian value is rejected.
	msg := evalFailure(t, source)
	if !strings.Contains(msg, "b") {
		t.Errorf("error should name the parameter, got %q", msg)
	}

	d := mustEvaluate(t, `(defgroove "a" (groove "HVGroove" :t "10 mm" :beta (deg 45) :c (mm 1)))`)
	g, _ := d.Groove("a")
	if hv := g.(groove.HVGroove); hv.Beta != quantity.Q(45, "deg") {
		t.Errorf("beta = %v, want 45 deg", hv.Beta)
	}
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains string
	}{
		{
			name:     "unknown groove type",
			source:   `(groove "NoSuchGroove" :t (mm 4))`,
			contains: "NoSuchGroove",
		},
		{
			name:     "bare number",
			source:   `(groove "IGroove" :t 4)`,
			contains: "no unit",
		},
		{
			name:     "unknown keyword",
			source:   `(groove "IGroove" :t (mm 4) :alpha (deg 10))`,
			contains: "alpha",
		},
		{
			name:     "bad quantity string",
			source:   `(groove "IGroove" :t "four mm")`,
			contains: "t",
		},
		{
			name:     "unknown unit",
			source:   `(qty 4 "parsec")`,
			contains: "parsec",
		},
		{
			name:     "missing required parameter",
			source:   `(groove "VGroove" :t (mm 10))`,
			contains: "alpha",
		},
		{
			name:     "code not allowed",
			source:   `(groove "IGroove" :t (mm 4) :code-number "1.3")`,
			contains: "1.3",
		},
		{
			name:     "defgroove needs a groove",
			source:   `(defgroove "x" (mm 4))`,
			contains: "expected groove",
		},
		{
			name:     "workpiece unknown keyword",
			source:   `(workpiece "w" :material "steel")`,
			contains: "material",
		},
		{
			name:     "groove-names takes no arguments",
			source:   `(groove-names 1)`,
			contains: "no arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := evalFailure(t, tt.source)
			if !strings.Contains(msg, tt.contains) {
				t.Errorf("error %q does not contain %q", msg, tt.contains)
			}
		})
	}
}

func TestEntriesRecordSourcePosition(t *testing.T) {
	source := `; (defgroove "commented" ...)
(workpiece "plates")
(def g (groove "IGroove" :t (mm 4)))
  (defgroove "a" g)
(defgroove "a" g)
(def nm "computed")
(defgroove nm g)
`
	d := mustEvaluate(t, source)
	if d.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", d.Len())
	}
	want := []design.SourceRef{
		{Line: 2, Col: 1},
		{Line: 4, Col: 3},
		{Line: 5, Col: 1},
		{},
	}
	for i, e := range d.Entries {
		if e.Source != want[i] {
			t.Errorf("entry %d (%s) source = %+v, want %+v", i, e.Name, e.Source, want[i])
		}
	}
}

func TestDesignValidatesAfterEvaluation(t *testing.T) {
	// Geometry is only checked when a profile is requested, so an impossible
	// root face evaluates fine and is reported by design validation.
	source := `(defgroove "deep" (groove "VGroove" :t (mm 10) :alpha (deg 60) :c (mm 12)))`
	d := mustEvaluate(t, source)
	if design.Check(d).OK() {
		t.Error("expected validation errors for c > t")
	}
}
