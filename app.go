package sprites

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/gekko3d/sprites/render"
)

// Module contributes resources to an App. Modules install in registration
// order and may read resources installed before them.
type Module interface {
	Install(app *App) error
}

type App struct {
	modules   []Module
	resources map[reflect.Type]any
}

func newApp() *App {
	return &App{resources: make(map[reflect.Type]any)}
}

// AddResources registers pointer resources keyed by their element type.
func (app *App) AddResources(resources ...any) error {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType == nil || resourceType.Kind() != reflect.Ptr {
			return fmt.Errorf("resource %T must be a pointer", resource)
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			return fmt.Errorf("%s is already in resources", resourceType)
		}
		app.resources[resourceType.Elem()] = resource
	}
	return nil
}

// Resource returns the resource of type *T, if installed.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

// Run drives the installed frame renderer until the window closes or a frame fails.
func (app *App) Run() error {
	frames, ok := Resource[render.FrameRenderer](app)
	if !ok {
		return errors.New("no renderer installed")
	}
	logger := app.Logger()
	frames.SetLogger(logger)
	logger.Infof("Running, %d instances", frames.Bundle().DrawCall().InstanceCount)

	err := frames.Run()
	logger.Infof("Stopped after %d frames", frames.Frames())
	return err
}

// Close releases platform resources in reverse install order.
func (app *App) Close() {
	for i := len(app.modules) - 1; i >= 0; i-- {
		if c, ok := app.modules[i].(interface{ Close(app *App) }); ok {
			c.Close(app)
		}
	}
}
