package render

import (
	"fmt"
	"unsafe"
)

// CreateBuffer allocates room for count elements of T.
func CreateBuffer[T any](f BufferFactory, label string, role BufferRole, usage MemoryUsage, count int) (Buffer, error) {
	if count <= 0 {
		return nil, newError(ErrResourceCreation, label, fmt.Errorf("element count %d", count))
	}
	var zero T
	buf, err := f.CreateBuffer(BufferDesc{
		Label: label,
		Role:  role,
		Usage: usage,
		Size:  uint64(count) * uint64(unsafe.Sizeof(zero)),
	})
	if err != nil {
		return nil, newError(ErrResourceCreation, label, err)
	}
	return buf, nil
}

// CreateBufferFrom allocates a buffer initialized with data.
func CreateBufferFrom[T any](f BufferFactory, label string, role BufferRole, usage MemoryUsage, data []T) (Buffer, error) {
	if len(data) == 0 {
		return nil, newError(ErrResourceCreation, label, fmt.Errorf("no data"))
	}
	contents := sliceBytes(data)
	buf, err := f.CreateBuffer(BufferDesc{
		Label:    label,
		Role:     role,
		Usage:    usage,
		Size:     uint64(len(contents)),
		Contents: contents,
	})
	if err != nil {
		return nil, newError(ErrResourceCreation, label, err)
	}
	return buf, nil
}

func sliceBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*int(unsafe.Sizeof(zero)))
}

func valueBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}
