package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Instance places one copy of the quad. Both fields are in window pixels.
type Instance struct {
	PositionInPixels mgl32.Vec2
	SizeInPixels     mgl32.Vec2
}

const instanceStride = uint64(unsafe.Sizeof(Instance{}))

// InstanceStore is a fixed-capacity arena of instances. Writes land in a
// CPU-mappable staging buffer; Flush copies the whole arena into the GPU
// instance buffer. Growing the capacity means rebuilding the Bundle.
type InstanceStore struct {
	dev      Device
	capacity int
	staging  Buffer
	gpu      Buffer
	mapped   []byte
}

func AllocateInstances(dev Device, capacity int) (*InstanceStore, error) {
	if capacity <= 0 {
		return nil, newError(ErrResourceCreation, "allocate instances", fmt.Errorf("capacity %d", capacity))
	}
	gpu, err := CreateBuffer[Instance](dev, "Image Instances", RoleInstance, UsageData, capacity)
	if err != nil {
		return nil, err
	}
	staging, err := CreateBuffer[Instance](dev, "Image Instances Upload", RoleStaging, UsageUpload, capacity)
	if err != nil {
		gpu.Release()
		return nil, err
	}
	return &InstanceStore{
		dev:      dev,
		capacity: capacity,
		staging:  staging,
		gpu:      gpu,
	}, nil
}

func (s *InstanceStore) Capacity() int  { return s.capacity }
func (s *InstanceStore) Buffer() Buffer { return s.gpu }

// Write stores one instance in staging memory. The GPU sees it after the next Flush.
func (s *InstanceStore) Write(index int, position, size mgl32.Vec2) error {
	if index < 0 || index >= s.capacity {
		return newError(ErrIndexOutOfRange, "write instance", fmt.Errorf("index %d, capacity %d", index, s.capacity))
	}
	if s.mapped == nil {
		mem, err := s.dev.MapWrite(s.staging)
		if err != nil {
			return newError(ErrMap, "map instance upload buffer", err)
		}
		if uint64(len(mem)) < uint64(s.capacity)*instanceStride {
			_ = s.dev.Unmap(s.staging)
			return newError(ErrMap, "map instance upload buffer", fmt.Errorf("mapped %d bytes", len(mem)))
		}
		s.mapped = mem
	}
	inst := Instance{PositionInPixels: position, SizeInPixels: size}
	offset := uint64(index) * instanceStride
	copy(s.mapped[offset:offset+instanceStride], valueBytes(&inst))
	return nil
}

// Flush records a copy of every slot from staging into the instance buffer.
// It runs each frame whether or not anything was written.
func (s *InstanceStore) Flush(enc Encoder) error {
	if s.mapped != nil {
		s.mapped = nil
		if err := s.dev.Unmap(s.staging); err != nil {
			return newError(ErrMap, "unmap instance upload buffer", err)
		}
	}
	size := uint64(s.capacity) * instanceStride
	if err := enc.CopyBuffer(s.staging, s.gpu, 0, 0, size); err != nil {
		return newError(ErrSubmission, "copy instances", err)
	}
	return nil
}
