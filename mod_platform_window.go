package sprites

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/sprites/render"
)

type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string

	events []render.Event
}

var _ render.EventSource = (*WindowState)(nil)

// Window is the underlying GLFW window.
func (s *WindowState) Window() *glfw.Window { return s.windowGlfw }

// PollEvents processes pending window events and returns what was queued
// since the previous call. It never blocks.
func (s *WindowState) PollEvents() []render.Event {
	glfw.PollEvents()
	return s.drain()
}

func (s *WindowState) push(ev render.Event) {
	s.events = append(s.events, ev)
}

func (s *WindowState) drain() []render.Event {
	if len(s.events) == 0 {
		return nil
	}
	events := s.events
	s.events = nil
	return events
}

// PlatformWindowModule creates the single shared GLFW window and provides it
// as the WindowState resource. The backend decides the client API hints.
type PlatformWindowModule struct {
	Width   int
	Height  int
	Title   string
	Backend RendererName
}

// NewPlatformWindow creates a module that provides a shared WindowState resource.
// If Width/Height are zero, sensible defaults are used.
func NewPlatformWindow(width, height int, title string, backend RendererName) *PlatformWindowModule {
	if width <= 0 {
		width = 960
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "Sprites"
	}
	return &PlatformWindowModule{
		Width:   width,
		Height:  height,
		Title:   title,
		Backend: backend,
	}
}

func (m PlatformWindowModule) Install(app *App) error {
	if _, ok := Resource[WindowState](app); ok {
		return nil
	}
	ws, err := createWindowState(m.Width, m.Height, m.Title, m.Backend)
	if err != nil {
		return render.NewError(render.ErrResourceCreation, "create window", err)
	}
	app.Logger().Infof("Created window (%dx%d) '%s'", m.Width, m.Height, m.Title)
	return app.AddResources(ws)
}

func (m PlatformWindowModule) Close(app *App) {
	if ws, ok := Resource[WindowState](app); ok {
		ws.windowGlfw.Destroy()
		glfw.Terminate()
	}
}

type windowHint struct {
	hint  glfw.Hint
	value int
}

// windowHints selects the client API for backend. The window size is fixed:
// the uniform and the WebGPU surface are sized once at startup, and a resized
// surface cannot be acquired.
func windowHints(backend RendererName) []windowHint {
	hints := []windowHint{{glfw.Resizable, glfw.False}}
	if backend == RendererGL {
		return append(hints,
			windowHint{glfw.ContextVersionMajor, 4},
			windowHint{glfw.ContextVersionMinor, 1},
			windowHint{glfw.OpenGLProfile, glfw.OpenGLCoreProfile},
			windowHint{glfw.OpenGLForwardCompatible, glfw.True},
			windowHint{glfw.SRGBCapable, glfw.True},
		)
	}
	return append(hints, windowHint{glfw.ClientAPI, glfw.NoAPI})
}

// createWindowState must run on the locked main thread.
func createWindowState(windowWidth int, windowHeight int, windowTitle string, backend RendererName) (*WindowState, error) {
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	for _, h := range windowHints(backend) {
		glfw.WindowHint(h.hint, h.value)
	}

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%dx%d window: %w", windowWidth, windowHeight, err)
	}
	if backend == RendererGL {
		win.MakeContextCurrent()
	}

	ws := &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
	win.SetCloseCallback(func(w *glfw.Window) {
		ws.push(render.EventCloseRequested)
	})
	return ws, nil
}
