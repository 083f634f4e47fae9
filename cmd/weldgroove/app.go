package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chazu/weldgroove/pkg/config"
	"github.com/chazu/weldgroove/pkg/design"
	"github.com/chazu/weldgroove/pkg/engine"
	"github.com/chazu/weldgroove/pkg/geometry"
	"github.com/chazu/weldgroove/pkg/groove"
	"github.com/chazu/weldgroove/pkg/kernel"
	"github.com/chazu/weldgroove/pkg/kernel/sdfx"
	"github.com/chazu/weldgroove/pkg/plot"
	"github.com/chazu/weldgroove/pkg/plot/dxf"
	"github.com/chazu/weldgroove/pkg/plot/svg"
	"github.com/chazu/weldgroove/pkg/quantity"
	"github.com/chazu/weldgroove/pkg/tessellate"
)

// App ties the engine, configuration and logger together. The CLI
// commands are thin wrappers around its methods.
type App struct {
	cfg    config.Config
	log    zerolog.Logger
	engine *engine.Engine
	kernel kernel.Kernel
}

// OutlineData is one rasterized groove in plain coordinates.
type OutlineData struct {
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	Polylines [][][2]float64 `json:"polylines"`
}

// EvalErrorData is an evaluation error or validation finding.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of evaluating a DSL script.
type EvalResult struct {
	Design   *design.Design  `json:"-"`
	Outlines []OutlineData   `json:"outlines"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates an App from resolved settings.
func NewApp(cfg config.Config, log zerolog.Logger) *App {
	return &App{
		cfg: cfg,
		log: log,
		engine: engine.NewEngine(
			engine.WithTimeout(cfg.Eval.Timeout),
			engine.WithLogger(log),
		),
		kernel: sdfx.New(cfg.Render.MeshCells),
	}
}

// Evaluate runs source through the engine, validates the resulting design
// and rasterizes its grooves.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Outlines: []OutlineData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the source into a design.
	d, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		a.log.Error().Err(err).Msg("evaluate fatal error")
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return result
	}
	result.Design = d

	// Step 2: Validate.
	for _, f := range design.Validate(d, a.profileOptions()...) {
		data := EvalErrorData{Message: f.Error()}
		if e := d.Lookup(f.Entry); e != nil {
			data.Line, data.Col = e.Source.Line, e.Source.Col
		}
		if f.Severity == design.SeverityWarning {
			result.Warnings = append(result.Warnings, data)
		} else {
			result.Errors = append(result.Errors, data)
		}
	}
	if len(result.Errors) > 0 {
		return result
	}

	// Step 3: Rasterize.
	outlines, err := tessellate.Tessellate(d, tessellate.Options{
		Resolution: a.cfg.Render.Resolution,
		Profile:    a.profileOptions(),
	})
	if err != nil {
		a.log.Error().Err(err).Msg("tessellate error")
		result.Errors = append(result.Errors, EvalErrorData{Message: "tessellation failed: " + err.Error()})
		return result
	}
	for _, o := range outlines {
		result.Outlines = append(result.Outlines, outlineData(o))
	}
	return result
}

func outlineData(o tessellate.Outline) OutlineData {
	out := OutlineData{Name: o.Name, Type: string(o.Type), Polylines: make([][][2]float64, len(o.Polylines))}
	for i, pl := range o.Polylines {
		out.Polylines[i] = make([][2]float64, len(pl))
		for j, p := range pl {
			out.Polylines[i][j] = [2]float64{p.X, p.Y}
		}
	}
	return out
}

func (a *App) profileOptions() []groove.ProfileOption {
	return []groove.ProfileOption{groove.WithWidth(quantity.Q(a.cfg.Render.Width, "mm"))}
}

// BuildGroove constructs a groove from "key=quantity" strings. Keys may be
// construction keywords or parameter symbols.
func (a *App) BuildGroove(grooveType string, raw []string, code string) (groove.Groove, error) {
	params, err := parseParams(grooveType, raw)
	if err != nil {
		return nil, err
	}
	g, err := groove.Get(grooveType, params, code)
	if err != nil {
		return nil, err
	}
	a.log.Debug().Str("type", grooveType).Strs("params", groove.ParamStrings(g)).Msg("groove built")
	return g, nil
}

func parseParams(grooveType string, raw []string) (groove.Params, error) {
	specs, err := groove.Specs(grooveType)
	if err != nil {
		return nil, err
	}
	params := groove.Params{}
	for _, kv := range raw {
		name, val, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("parameter %q: want key=quantity", kv)
		}
		name = strings.TrimSpace(name)
		key, ok := groove.KeyOf(specs, name)
		if !ok {
			return nil, fmt.Errorf("%s does not take parameter %q", grooveType, name)
		}
		q, err := quantity.Parse(val)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", name, err)
		}
		params[key] = q
	}
	return params, nil
}

// Profile builds the cross-section of g with the configured plate width.
func (a *App) Profile(g groove.Groove) (*geometry.Profile, error) {
	return g.ToProfile(a.profileOptions()...)
}

// Plot renders g to out. The backend is chosen by file extension.
func (a *App) Plot(g groove.Groove, out, xLabel, yLabel string) error {
	opts := plot.Options{
		XLabel:     xLabel,
		YLabel:     yLabel,
		Resolution: a.cfg.Render.Resolution,
		Profile:    a.profileOptions(),
	}

	switch ext := strings.ToLower(filepath.Ext(out)); ext {
	case ".svg":
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		s := svg.New(f, a.cfg.Render.Scale)
		if err := plot.Groove(s, g, opts); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	case ".dxf":
		s := dxf.New(out)
		if err := plot.Groove(s, g, opts); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported plot format %q (want .svg or .dxf)", ext)
	}

	a.log.Info().Str("type", string(g.Type())).Str("out", out).Msg("plot written")
	return nil
}

// Extrude sweeps g along a seam of the given length and writes the solid
// to an STL file.
func (a *App) Extrude(g groove.Groove, length quantity.Quantity, out string) error {
	l, err := length.Millimeters()
	if err != nil {
		return fmt.Errorf("seam length: %w", err)
	}
	o, err := tessellate.Groove(string(g.Type()), g, a.cfg.Render.Resolution, a.profileOptions()...)
	if err != nil {
		return err
	}
	solid, err := tessellate.Extrude(o, a.kernel, l)
	if err != nil {
		return err
	}
	if err := a.kernel.SaveSTL(solid, out); err != nil {
		return err
	}
	a.log.Info().Str("type", string(g.Type())).Str("length", length.String()).Str("out", out).Msg("seam written")
	return nil
}

// WriteSeams extrudes every groove of d along a seam of the given length
// and writes one STL file per groove into dir, named after its entry.
// It returns the written paths in design order.
func (a *App) WriteSeams(d *design.Design, length quantity.Quantity, dir string) ([]string, error) {
	l, err := length.Millimeters()
	if err != nil {
		return nil, fmt.Errorf("seam length: %w", err)
	}
	for _, e := range d.Grooves() {
		if e.Name == "" || filepath.Base(e.Name) != e.Name || e.Name == "." || e.Name == ".." {
			return nil, fmt.Errorf("groove name %q cannot be used as a file name", e.Name)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	meshes, err := tessellate.Seams(d, a.kernel, l, tessellate.Options{
		Resolution: a.cfg.Render.Resolution,
		Profile:    a.profileOptions(),
	})
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(meshes))
	for _, m := range meshes {
		path := filepath.Join(dir, m.Name+".stl")
		if err := a.kernel.SaveMeshSTL(m, path); err != nil {
			return nil, err
		}
		a.log.Debug().Str("groove", m.Name).Int("triangles", m.TriangleCount()).Str("out", path).Msg("seam written")
		paths = append(paths, path)
	}
	a.log.Info().Int("seams", len(paths)).Str("dir", dir).Msg("seams written")
	return paths, nil
}
