package sprites

import (
	"errors"
	"fmt"

	"github.com/gekko3d/sprites/render"
)

// SpriteModule builds the sprite bundle on the selected backend and installs
// the FrameRenderer that App.Run drives. It needs the WindowState and
// AssetServer resources.
type SpriteModule struct {
	Backend     RendererName
	VSync       bool
	TexturePath string
	Instances   []InstanceConfig

	newBackend backendFactory
	events     render.EventSource
}

// NewSpriteModule configures the module from cfg.
func NewSpriteModule(cfg Config) SpriteModule {
	return SpriteModule{
		Backend:     cfg.Backend,
		VSync:       cfg.Window.VSync,
		TexturePath: cfg.Texture.Path,
		Instances:   cfg.Instances,
	}
}

// spriteBackend keeps the backend alive for Close.
type spriteBackend struct {
	*backend
}

const testPatternSize, testPatternCells = 64, 8

func (m SpriteModule) Install(app *App) error {
	if err := ensureSingleRenderer(app, m.Backend); err != nil {
		return err
	}
	ws, ok := Resource[WindowState](app)
	if !ok {
		return errors.New("sprite module needs a window, install PlatformWindowModule first")
	}
	assets, ok := Resource[AssetServer](app)
	if !ok {
		return errors.New("sprite module needs an AssetServer, install AssetServerModule first")
	}

	factory := m.newBackend
	if factory == nil {
		if factory, ok = renderers[m.Backend]; !ok {
			return fmt.Errorf("unknown backend %q", m.Backend)
		}
	}
	be, err := factory(ws, m.VSync)
	if err != nil {
		return err
	}
	logger := app.Logger()
	logger.Infof("Renderer selected: %s", m.Backend)

	texture, err := m.loadTexture(assets)
	if err != nil {
		be.release()
		return err
	}
	bundle, err := render.NewSpriteBundle(be.device, render.SpriteSetup{
		Capacity: len(m.Instances),
		Pixels:   texture.Texels,
		Width:    texture.Width,
		Height:   texture.Height,
		Pipeline: render.DefaultPipelineDesc(),
	})
	if err != nil {
		be.release()
		return err
	}
	if err := placeInstances(bundle, m.Instances, logger); err != nil {
		be.release()
		return err
	}

	var events render.EventSource = ws
	if m.events != nil {
		events = m.events
	}
	frames := render.NewFrameRenderer(be.device, bundle, be.presenter, events)
	return app.AddResources(frames, &spriteBackend{be})
}

func (m SpriteModule) Close(app *App) {
	if be, ok := Resource[spriteBackend](app); ok {
		be.release()
	}
}

func (m SpriteModule) loadTexture(assets *AssetServer) (TextureAsset, error) {
	var id AssetId
	if m.TexturePath == "" {
		id = assets.CreateTestPattern(testPatternSize, testPatternCells)
	} else {
		var err error
		if id, err = assets.LoadTexture(m.TexturePath); err != nil {
			return TextureAsset{}, err
		}
	}
	texture, _ := assets.Texture(id)
	return texture, nil
}

// placeInstances writes every configured instance and warns about the ones
// that land completely outside the window.
func placeInstances(bundle *render.Bundle, instances []InstanceConfig, logger Logger) error {
	store := bundle.Data().Instances
	window := bundle.WindowSize()
	for i, inst := range instances {
		if err := store.Write(i, inst.PositionVec(), inst.SizeVec()); err != nil {
			return err
		}
		rect := render.InstanceRect(render.Instance{PositionInPixels: inst.PositionVec(), SizeInPixels: inst.SizeVec()}, window)
		if !rect.Visible() {
			logger.Warnf("Instance %d at %v size %v is outside the %vx%v window", i, inst.Position, inst.Size, window.X(), window.Y())
		}
	}
	return nil
}
