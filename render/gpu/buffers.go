package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/sprites/render"
)

type buffer struct {
	buf  *wgpu.Buffer
	size uint64
}

func (b *buffer) Size() uint64 { return b.size }
func (b *buffer) Release()     { b.buf.Release() }

// bufferUsages returns the WebGPU usages a role and memory usage need.
func bufferUsages(role render.BufferRole, usage render.MemoryUsage) wgpu.BufferUsage {
	var result wgpu.BufferUsage
	switch role {
	case render.RoleVertex, render.RoleInstance:
		result |= wgpu.BufferUsageVertex
	case render.RoleIndex:
		result |= wgpu.BufferUsageIndex
	case render.RoleConstant:
		result |= wgpu.BufferUsageUniform
	}
	switch usage {
	case render.UsageData:
		result |= wgpu.BufferUsageCopyDst
	case render.UsageUpload:
		result |= wgpu.BufferUsageMapWrite | wgpu.BufferUsageCopySrc
	}
	return result
}

func (d *Device) CreateBuffer(desc render.BufferDesc) (render.Buffer, error) {
	usage := bufferUsages(desc.Role, desc.Usage)
	if desc.Usage == render.UsageImmutable {
		if len(desc.Contents) == 0 {
			return nil, fmt.Errorf("immutable buffer %q without contents", desc.Label)
		}
		buf, err := d.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    desc.Label,
			Contents: desc.Contents,
			Usage:    usage,
		})
		if err != nil {
			return nil, err
		}
		return &buffer{buf: buf, size: uint64(len(desc.Contents))}, nil
	}
	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: desc.Label,
		Usage: usage,
		Size:  desc.Size,
	})
	if err != nil {
		return nil, err
	}
	if len(desc.Contents) > 0 {
		if err := d.queue.WriteBuffer(buf, 0, desc.Contents); err != nil {
			buf.Release()
			return nil, err
		}
	}
	return &buffer{buf: buf, size: desc.Size}, nil
}

// MapWrite blocks until the buffer is mapped. A pending copy out of the
// buffer has to finish first, so this also waits for the previous frame.
func (d *Device) MapWrite(b render.Buffer) ([]byte, error) {
	buf := b.(*buffer)
	done := false
	var status wgpu.BufferMapAsyncStatus
	err := buf.buf.MapAsync(wgpu.MapModeWrite, 0, buf.size, func(s wgpu.BufferMapAsyncStatus) {
		status = s
		done = true
	})
	if err != nil {
		return nil, err
	}
	for !done {
		d.device.Poll(true, nil)
	}
	if status != wgpu.BufferMapAsyncStatusSuccess {
		return nil, fmt.Errorf("map status %d", status)
	}
	return buf.buf.GetMappedRange(0, uint(buf.size)), nil
}

func (d *Device) Unmap(b render.Buffer) error {
	return b.(*buffer).buf.Unmap()
}
