package sprites

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/sprites/render"
	"github.com/gekko3d/sprites/render/rendertest"
)

type testRig struct {
	dev      *rendertest.Device
	present  *rendertest.Presenter
	events   *rendertest.Events
	released int
}

func newTestRig(closeAfter int) *testRig {
	dev := rendertest.NewDevice(960, 720)
	batches := make([][]render.Event, closeAfter)
	batches[closeAfter-1] = []render.Event{render.EventCloseRequested}
	return &testRig{
		dev:     dev,
		present: &rendertest.Presenter{Dev: dev},
		events:  &rendertest.Events{Batches: batches},
	}
}

func (r *testRig) module(cfg Config) SpriteModule {
	m := NewSpriteModule(cfg)
	m.newBackend = func(ws *WindowState, vsync bool) (*backend, error) {
		return &backend{device: r.dev, presenter: r.present, release: func() { r.released++ }}, nil
	}
	m.events = r.events
	return m
}

type windowStub struct{}

func (windowStub) Install(app *App) error {
	return app.AddResources(&WindowState{WindowWidth: 960, WindowHeight: 720})
}

func TestSpriteModule_RunsReferenceScene(t *testing.T) {
	rig := newTestRig(3)
	app, err := NewAppBuilder().
		UseModule(AssetServerModule{}, windowStub{}, rig.module(DefaultConfig())).
		Build()
	require.NoError(t, err)

	require.NoError(t, app.Run())
	frames, ok := Resource[render.FrameRenderer](app)
	require.True(t, ok)
	assert.Equal(t, render.Stopped, frames.State())
	assert.Equal(t, uint64(3), frames.Frames())
	assert.Equal(t, 3, rig.present.Presents)
	assert.Equal(t, 3, rig.dev.Count(rendertest.DrawEntry(6, 3)))

	got := rendertest.Instances(rig.dev.Buffer("Image Instances"))
	require.Len(t, got, 3)
	assert.Equal(t, mgl32.Vec2{300, 500}, got[1].PositionInPixels)
	assert.Equal(t, mgl32.Vec2{300, 100}, got[2].SizeInPixels)

	assert.Equal(t, mgl32.Vec2{960, 720}, frames.Bundle().WindowSize())
	tex := frames.Bundle().Data().Texture.Texture().(*rendertest.Texture)
	assert.Equal(t, uint32(testPatternSize), tex.W)

	app.Close()
	assert.Equal(t, 1, rig.released)
}

func TestSpriteModule_LoadsTextureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprite.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, image.NewRGBA(image.Rect(0, 0, 5, 3))), 0o644))

	cfg := DefaultConfig()
	cfg.Texture.Path = path
	rig := newTestRig(1)
	app, err := NewAppBuilder().UseModule(AssetServerModule{}, windowStub{}, rig.module(cfg)).Build()
	require.NoError(t, err)

	frames, _ := Resource[render.FrameRenderer](app)
	tex := frames.Bundle().Data().Texture.Texture().(*rendertest.Texture)
	assert.Equal(t, uint32(5), tex.W)
	assert.Equal(t, uint32(3), tex.H)
}

func TestSpriteModule_BadTextureReleasesBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Texture.Path = filepath.Join(t.TempDir(), "missing.png")
	rig := newTestRig(1)

	_, err := NewAppBuilder().UseModule(AssetServerModule{}, windowStub{}, rig.module(cfg)).Build()
	assert.ErrorIs(t, err, render.ErrDecode)
	assert.Equal(t, 1, rig.released)
}

func TestSpriteModule_WarnsAboutOffscreenInstances(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Instances = append(cfg.Instances, InstanceConfig{Position: [2]float32{2000, 10}, Size: [2]float32{5, 5}})
	rig := newTestRig(1)

	app := newApp()
	require.NoError(t, app.AddResources(newLogger(&buf, "", false)))
	require.NoError(t, AssetServerModule{}.Install(app))
	require.NoError(t, windowStub{}.Install(app))
	require.NoError(t, rig.module(cfg).Install(app))

	assert.Contains(t, buf.String(), "Instance 3")
	assert.NotContains(t, buf.String(), "Instance 0")
}

func TestSpriteModule_InstallErrors(t *testing.T) {
	t.Run("missing window", func(t *testing.T) {
		_, err := NewAppBuilder().UseModule(AssetServerModule{}, newTestRig(1).module(DefaultConfig())).Build()
		assert.ErrorContains(t, err, "needs a window")
	})
	t.Run("missing assets", func(t *testing.T) {
		_, err := NewAppBuilder().UseModule(windowStub{}, newTestRig(1).module(DefaultConfig())).Build()
		assert.ErrorContains(t, err, "AssetServer")
	})
	t.Run("unknown backend", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Backend = "metal"
		_, err := NewAppBuilder().UseModule(AssetServerModule{}, windowStub{}, NewSpriteModule(cfg)).Build()
		assert.ErrorContains(t, err, `unknown backend "metal"`)
	})
	t.Run("backend failure", func(t *testing.T) {
		m := NewSpriteModule(DefaultConfig())
		m.newBackend = func(*WindowState, bool) (*backend, error) {
			return nil, render.NewError(render.ErrResourceCreation, "request adapter", errors.New("no adapter"))
		}
		_, err := NewAppBuilder().UseModule(AssetServerModule{}, windowStub{}, m).Build()
		assert.ErrorIs(t, err, render.ErrResourceCreation)
	})
	t.Run("second renderer", func(t *testing.T) {
		cfg := DefaultConfig()
		gl := cfg
		gl.Backend = RendererGL
		_, err := NewAppBuilder().
			UseModule(AssetServerModule{}, windowStub{}, newTestRig(1).module(cfg), newTestRig(1).module(gl)).
			Build()
		assert.ErrorContains(t, err, "multiple renderers")
	})
}

func TestSpriteModule_SubmitFailureStopsRun(t *testing.T) {
	rig := newTestRig(5)
	app, err := NewAppBuilder().UseModule(AssetServerModule{}, windowStub{}, rig.module(DefaultConfig())).Build()
	require.NoError(t, err)

	rig.dev.SubmitErr = errors.New("device lost")
	err = app.Run()
	assert.ErrorIs(t, err, render.ErrSubmission)
	assert.Zero(t, rig.present.Presents)
}
