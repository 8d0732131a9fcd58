package sprites

type AppBuilder struct {
	app     *App
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	return &AppBuilder{app: newApp()}
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)

	return b
}

// Build installs every module. On failure the modules installed so far are
// closed and the error is returned.
func (b *AppBuilder) Build() (*App, error) {
	app := b.app
	for _, module := range b.modules {
		if err := module.Install(app); err != nil {
			app.Close()
			return nil, err
		}
		app.modules = append(app.modules, module)
	}
	return app, nil
}
