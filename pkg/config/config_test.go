package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 2.0, cfg.Render.Width)
	assert.Equal(t, 0.25, cfg.Render.Resolution)
	assert.Equal(t, 20.0, cfg.Render.Scale)
	assert.Equal(t, 200, cfg.Render.MeshCells)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.Eval.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesOnlyDefinedKeys(t *testing.T) {
	cfg, err := Load(strings.NewReader(`
[render]
width = 0.0
scale = 5.0
mesh_cells = 80

[log]
level = " DEBUG "

[eval]
timeout = "250ms"
`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Render.Width, "explicit zero is kept")
	assert.Equal(t, 0.25, cfg.Render.Resolution)
	assert.Equal(t, 5.0, cfg.Render.Scale)
	assert.Equal(t, 80, cfg.Render.MeshCells)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Eval.Timeout)
}

func TestLoadEmpty(t *testing.T) {
	cfg, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"syntax", "[render\nwidth = 1", "load config"},
		{"unknown key", "[render]\ncolour = \"red\"", "render.colour"},
		{"bad timeout", "[eval]\ntimeout = \"soon\"", "eval.timeout"},
		{"negative width", "[render]\nwidth = -1.0", "render.width"},
		{"zero resolution", "[render]\nresolution = 0.0", "render.resolution"},
		{"zero scale", "[render]\nscale = 0.0", "render.scale"},
		{"zero mesh cells", "[render]\nmesh_cells = 0", "render.mesh_cells"},
		{"zero timeout", "[eval]\ntimeout = \"0s\"", "eval.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weldgroove.toml")
	require.NoError(t, os.WriteFile(path, []byte("[render]\nresolution = 0.1\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.1, cfg.Render.Resolution)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
