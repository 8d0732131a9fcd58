// Command sprites opens a window and draws a fixed set of textured sprites
// until the window is closed.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/gekko3d/sprites"
)

func init() {
	// GLFW and the graphics context must stay on the main thread.
	runtime.LockOSThread()
}

// usageError marks a bad command line.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// exitCode is 2 for a bad command line and 1 for every other failure.
func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.As(err, &usageError{}):
		return 2
	default:
		return 1
	}
}

// configure layers defaults, the config file and flags. A file that cannot be
// read or does not validate is a setup failure; flags that make the config
// invalid are a usage error.
func configure(args []string, stderr io.Writer) (sprites.Config, error) {
	fs := flag.NewFlagSet("sprites", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "TOML config file")
		backend    = fs.String("backend", "", "render backend: wgpu or gl")
		texture    = fs.String("texture", "", "sprite image file, empty for the test pattern")
		debug      = fs.Bool("debug", false, "log frame statistics")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return sprites.Config{}, err
		}
		return sprites.Config{}, usageError{err}
	}
	if fs.NArg() > 0 {
		return sprites.Config{}, usageError{fmt.Errorf("unexpected arguments %q", fs.Args())}
	}

	cfg := sprites.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = sprites.LoadConfig(*configPath); err != nil {
			return sprites.Config{}, err
		}
	}
	if *backend != "" {
		cfg.Backend = sprites.RendererName(*backend)
	}
	if *texture != "" {
		cfg.Texture.Path = *texture
	}
	cfg.Debug = cfg.Debug || *debug
	if err := cfg.Validate(); err != nil {
		return sprites.Config{}, usageError{err}
	}
	return cfg, nil
}

func main() {
	cfg, err := configure(os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
	os.Exit(exitCode(run(cfg)))
}

func run(cfg sprites.Config) error {
	app, err := sprites.NewAppBuilder().
		UseModule(
			sprites.LoggingModule{Prefix: "sprites", Debug: cfg.Debug},
			sprites.AssetServerModule{},
			sprites.NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, cfg.Backend),
			sprites.NewSpriteModule(cfg),
		).
		Build()
	if err != nil {
		sprites.NewDefaultLogger("sprites", false).Errorf("Startup failed: %v", err)
		return err
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		app.Logger().Errorf("Render loop failed: %v", err)
		return err
	}
	return nil
}
