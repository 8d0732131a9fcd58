package render

import (
	"errors"
	"time"
)

type RunState int

const (
	Running RunState = iota
	Stopped
)

func (s RunState) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Logger is the subset of the application logger the frame loop reports to.
type Logger interface {
	DebugEnabled() bool
	Debugf(format string, args ...any)
}

const (
	stageFlush   = "flush"
	stageEncode  = "encode"
	stageSubmit  = "submit"
	stagePresent = "present"
	stagePoll    = "poll"
)

// FrameRenderer drives clear, flush, draw, submit, present, cleanup and event
// polling until a close request arrives.
type FrameRenderer struct {
	state     RunState
	device    Device
	bundle    *Bundle
	presenter Presenter
	events    EventSource

	logger     Logger
	profiler   *Profiler
	frames     uint64
	reportFrom time.Time
	reportN    int
}

func NewFrameRenderer(dev Device, bundle *Bundle, presenter Presenter, events EventSource) *FrameRenderer {
	return &FrameRenderer{
		state:     Running,
		device:    dev,
		bundle:    bundle,
		presenter: presenter,
		events:    events,
		profiler:  NewProfiler(),

		reportFrom: time.Now(),
	}
}

// SetLogger enables once-per-second frame statistics at debug level.
func (f *FrameRenderer) SetLogger(l Logger) {
	f.logger = l
}

func (f *FrameRenderer) State() RunState     { return f.state }
func (f *FrameRenderer) Frames() uint64      { return f.frames }
func (f *FrameRenderer) Profiler() *Profiler { return f.profiler }
func (f *FrameRenderer) Bundle() *Bundle     { return f.bundle }

// Run renders frames until the window asks to close or a frame fails.
func (f *FrameRenderer) Run() error {
	f.reportFrom = time.Now()
	for f.state == Running {
		if err := f.Frame(); err != nil {
			f.state = Stopped
			return err
		}
	}
	return nil
}

// Frame renders exactly one frame. A close request seen while polling
// completes this frame and stops the loop.
func (f *FrameRenderer) Frame() error {
	if f.state != Running {
		return nil
	}
	data := f.bundle.Data()

	enc, err := f.device.CreateEncoder()
	if err != nil {
		return newError(ErrResourceCreation, "create encoder", err)
	}
	enc.ClearColor(data.Color, ClearColorBlack)
	enc.ClearDepth(data.Depth, 1.0)

	f.profiler.BeginScope(stageFlush)
	err = data.Instances.Flush(enc)
	f.profiler.EndScope(stageFlush)
	if err != nil {
		return err
	}

	f.profiler.BeginScope(stageEncode)
	err = f.bundle.Encode(enc)
	f.profiler.EndScope(stageEncode)
	if err != nil {
		return err
	}

	f.profiler.BeginScope(stageSubmit)
	err = enc.Submit()
	f.profiler.EndScope(stageSubmit)
	if err != nil {
		return wrapKind(ErrSubmission, "submit frame", err)
	}

	f.profiler.BeginScope(stagePresent)
	err = f.presenter.Present()
	f.profiler.EndScope(stagePresent)
	if err != nil {
		return wrapKind(ErrPresentation, "present frame", err)
	}

	f.device.Cleanup()

	f.profiler.BeginScope(stagePoll)
	for _, ev := range f.events.PollEvents() {
		if ev == EventCloseRequested {
			f.state = Stopped
		}
	}
	f.profiler.EndScope(stagePoll)

	f.frames++
	f.profiler.EndFrame()
	f.report()
	return nil
}

func (f *FrameRenderer) report() {
	if f.logger == nil || !f.logger.DebugEnabled() {
		return
	}
	f.reportN++
	elapsed := time.Since(f.reportFrom)
	if elapsed < time.Second {
		return
	}
	f.profiler.SetCount("frames", int(f.frames))
	f.profiler.SetCount("instances", int(f.bundle.DrawCall().InstanceCount))
	f.logger.Debugf("%.1f fps\n%s", float64(f.reportN)/elapsed.Seconds(), f.profiler.StatsString())
	f.profiler.Reset()
	f.reportN = 0
	f.reportFrom = time.Now()
}

// wrapKind keeps an already classified error and classifies anything else as kind.
func wrapKind(kind error, op string, err error) error {
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	return newError(kind, op, err)
}
