package render

// BufferRole says what a buffer is bound as.
type BufferRole int

const (
	RoleVertex BufferRole = iota
	RoleIndex
	RoleInstance
	RoleConstant
	RoleStaging
)

func (r BufferRole) String() string {
	switch r {
	case RoleVertex:
		return "vertex"
	case RoleIndex:
		return "index"
	case RoleInstance:
		return "instance"
	case RoleConstant:
		return "constant"
	case RoleStaging:
		return "staging"
	default:
		return "unknown"
	}
}

// MemoryUsage says who writes a buffer and how.
type MemoryUsage int

const (
	// UsageImmutable buffers are initialized from Contents and never written again.
	UsageImmutable MemoryUsage = iota
	// UsageData buffers are GPU resident and written only by copies or encoder writes.
	UsageData
	// UsageUpload buffers are CPU mappable for writing and act as copy sources.
	UsageUpload
)

func (u MemoryUsage) String() string {
	switch u {
	case UsageImmutable:
		return "immutable"
	case UsageData:
		return "data"
	case UsageUpload:
		return "upload"
	default:
		return "unknown"
	}
}

type BufferDesc struct {
	Label    string
	Role     BufferRole
	Usage    MemoryUsage
	Size     uint64
	Contents []byte
}

// Buffer is an opaque GPU buffer handle owned by a backend.
type Buffer interface {
	Size() uint64
	Release()
}

type Texture interface {
	Width() uint32
	Height() uint32
	Release()
}

type Sampler interface {
	Release()
}

// Target is a render output: the window's color buffer or its depth buffer.
type Target interface {
	Dimensions() (width, height uint32)
}

type Pipeline interface {
	Release()
}

// Bindings is the backend's view of every resource a Pipeline reads.
type Bindings interface {
	Release()
}

// BufferFactory is the only capability needed to create buffers.
type BufferFactory interface {
	CreateBuffer(desc BufferDesc) (Buffer, error)
}

type Device interface {
	BufferFactory

	// MapWrite returns CPU-writable memory covering the whole buffer. It blocks
	// until the GPU no longer reads from the buffer.
	MapWrite(buf Buffer) ([]byte, error)
	Unmap(buf Buffer) error

	CreateTexture(desc TextureDesc, pixels []byte) (Texture, error)
	CreateSampler(cfg SamplerConfig) (Sampler, error)
	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateBindings(p Pipeline, set ResourceSet) (Bindings, error)
	CreateEncoder() (Encoder, error)

	// Targets returns the color and depth outputs of the window surface.
	Targets() (color Target, depth Target)

	// Cleanup reclaims transient per-frame resources whose GPU work is known complete.
	Cleanup()
}

// Encoder records commands in program order. Nothing reaches the GPU until Submit.
type Encoder interface {
	ClearColor(target Target, c Color)
	ClearDepth(target Target, depth float32)
	CopyBuffer(src, dst Buffer, srcOffset, dstOffset, size uint64) error
	WriteBuffer(dst Buffer, offset uint64, data []byte) error
	Draw(call DrawCall) error
	Submit() error
}

type Presenter interface {
	Present() error
}

type Event int

const (
	EventNone Event = iota
	EventCloseRequested
)

// EventSource yields every event queued since the last call without blocking.
type EventSource interface {
	PollEvents() []Event
}

type Color struct {
	R, G, B, A float64
}

var ClearColorBlack = Color{R: 0, G: 0, B: 0, A: 1}

type TextureDesc struct {
	Label  string
	Width  uint32
	Height uint32
}

// ResourceSet lists the concrete resources a Bundle binds to its pipeline.
type ResourceSet struct {
	Corners   Buffer
	Indices   Buffer
	Instances Buffer
	Uniforms  Buffer
	Texture   Texture
	Sampler   Sampler
}

type DrawCall struct {
	Pipeline      Pipeline
	Bindings      Bindings
	IndexCount    uint32
	InstanceCount uint32
	Color         Target
	Depth         Target
}
