package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/sprites"
	"github.com/gekko3d/sprites/render"
)

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sprites.toml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestConfigureLayersFlagsOverFile(t *testing.T) {
	path := writeConfig(t, "backend = \"gl\"\n[window]\ntitle = \"demo\"\n")

	cfg, err := configure([]string{"-config", path, "-backend", "wgpu", "-texture", "a.png", "-debug"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, sprites.RendererWGPU, cfg.Backend)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, "a.png", cfg.Texture.Path)
	assert.True(t, cfg.Debug)
}

func TestConfigureExitCodes(t *testing.T) {
	cases := map[string]struct {
		args []string
		code int
	}{
		"defaults":        {nil, 0},
		"help":            {[]string{"-h"}, 0},
		"unknown flag":    {[]string{"-frames", "3"}, 2},
		"stray argument":  {[]string{"extra"}, 2},
		"unknown backend": {[]string{"-backend", "metal"}, 2},
		"missing file":    {[]string{"-config", filepath.Join(t.TempDir(), "missing.toml")}, 1},
		"invalid file":    {[]string{"-config", writeConfig(t, "[window]\nwidth = 0\n")}, 1},
		"unknown key":     {[]string{"-config", writeConfig(t, "colour = 1\n")}, 1},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := configure(c.args, io.Discard)
			assert.Equal(t, c.code, exitCode(err), "%v", err)
		})
	}
}

func TestExitCodeOfRuntimeFailures(t *testing.T) {
	err := render.NewError(render.ErrPresentation, "present frame", errors.New("surface lost"))
	assert.Equal(t, 1, exitCode(err))
	assert.Equal(t, 0, exitCode(nil))
}
