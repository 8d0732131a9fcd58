package sprites

import "fmt"

// RendererTag marks that a renderer has been installed into the App.
// Only one renderer should be installed at a time.
type RendererTag struct {
	Name RendererName
}

// ensureSingleRenderer enforces a single renderer invariant.
func ensureSingleRenderer(app *App, name RendererName) error {
	if app == nil {
		return fmt.Errorf("ensureSingleRenderer: app is nil")
	}
	if tag, ok := Resource[RendererTag](app); ok {
		if tag.Name != name {
			app.Logger().Errorf("Multiple renderers installed: %s and %s", tag.Name, name)
			return fmt.Errorf("multiple renderers installed: %s and %s", tag.Name, name)
		}
		return nil
	}
	return app.AddResources(&RendererTag{Name: name})
}
