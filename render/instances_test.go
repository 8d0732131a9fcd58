package render_test

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/sprites/render"
	"github.com/gekko3d/sprites/render/rendertest"
)

func TestAllocateInstancesRejectsEmptyCapacity(t *testing.T) {
	dev := rendertest.NewDevice(960, 720)
	_, err := render.AllocateInstances(dev, 0)
	assert.ErrorIs(t, err, render.ErrResourceCreation)
}

func TestAllocateInstancesBufferSizes(t *testing.T) {
	dev := rendertest.NewDevice(960, 720)
	store, err := render.AllocateInstances(dev, 3)
	require.NoError(t, err)

	assert.Equal(t, uintptr(16), unsafe.Sizeof(render.Instance{}))
	assert.Equal(t, uint64(48), store.Buffer().Size())
	staging := dev.Buffer("Image Instances Upload")
	require.NotNil(t, staging)
	assert.Equal(t, render.RoleStaging, staging.Desc.Role)
	assert.Equal(t, render.UsageUpload, staging.Desc.Usage)
	gpu := dev.Buffer("Image Instances")
	require.NotNil(t, gpu)
	assert.Equal(t, render.RoleInstance, gpu.Desc.Role)
	assert.Equal(t, render.UsageData, gpu.Desc.Usage)
}

func TestWriteOutOfRange(t *testing.T) {
	dev := rendertest.NewDevice(960, 720)
	store, err := render.AllocateInstances(dev, 2)
	require.NoError(t, err)

	for _, idx := range []int{-1, 2, 100} {
		err := store.Write(idx, mgl32.Vec2{}, mgl32.Vec2{1, 1})
		assert.ErrorIs(t, err, render.ErrIndexOutOfRange)
		assert.False(t, render.Fatal(err))
	}
	assert.Equal(t, 0, dev.Buffer("Image Instances Upload").Maps, "rejected writes must not map")
}

func TestWriteThenFlushReachesGPU(t *testing.T) {
	dev := rendertest.NewDevice(960, 720)
	store, err := render.AllocateInstances(dev, 3)
	require.NoError(t, err)

	require.NoError(t, store.Write(1, mgl32.Vec2{300, 500}, mgl32.Vec2{200, 500}))
	gpu := dev.Buffer("Image Instances")
	assert.Equal(t, render.Instance{}, rendertest.Instances(gpu)[1], "nothing is visible before flush")

	enc, _ := dev.CreateEncoder()
	require.NoError(t, store.Flush(enc))
	require.NoError(t, enc.Submit())

	got := rendertest.Instances(gpu)
	assert.Equal(t, render.Instance{PositionInPixels: mgl32.Vec2{300, 500}, SizeInPixels: mgl32.Vec2{200, 500}}, got[1])
	assert.Equal(t, render.Instance{}, got[0])
	assert.Equal(t, render.Instance{}, got[2])
}

func TestFlushIsIdempotent(t *testing.T) {
	dev := rendertest.NewDevice(960, 720)
	store, err := render.AllocateInstances(dev, 2)
	require.NoError(t, err)
	require.NoError(t, store.Write(0, mgl32.Vec2{1, 2}, mgl32.Vec2{3, 4}))

	gpu := dev.Buffer("Image Instances")
	var snapshots [][]byte
	for i := 0; i < 3; i++ {
		enc, _ := dev.CreateEncoder()
		require.NoError(t, store.Flush(enc))
		require.NoError(t, enc.Submit())
		snapshots = append(snapshots, append([]byte(nil), gpu.Data...))
	}
	assert.Equal(t, snapshots[0], snapshots[1])
	assert.Equal(t, snapshots[1], snapshots[2])
}

func TestWriteAfterFlushRemapsStaging(t *testing.T) {
	dev := rendertest.NewDevice(960, 720)
	store, err := render.AllocateInstances(dev, 2)
	require.NoError(t, err)
	staging := dev.Buffer("Image Instances Upload")

	require.NoError(t, store.Write(0, mgl32.Vec2{1, 1}, mgl32.Vec2{1, 1}))
	enc, _ := dev.CreateEncoder()
	require.NoError(t, store.Flush(enc))
	require.NoError(t, enc.Submit())
	assert.False(t, staging.Mapped)

	require.NoError(t, store.Write(1, mgl32.Vec2{7, 8}, mgl32.Vec2{9, 10}))
	assert.True(t, staging.Mapped)
	assert.Equal(t, 2, staging.Maps)

	enc, _ = dev.CreateEncoder()
	require.NoError(t, store.Flush(enc))
	require.NoError(t, enc.Submit())
	got := rendertest.Instances(dev.Buffer("Image Instances"))
	assert.Equal(t, mgl32.Vec2{1, 1}, got[0].PositionInPixels)
	assert.Equal(t, mgl32.Vec2{7, 8}, got[1].PositionInPixels)
}

func TestWriteMapFailure(t *testing.T) {
	dev := rendertest.NewDevice(960, 720)
	store, err := render.AllocateInstances(dev, 1)
	require.NoError(t, err)
	dev.MapErr = errors.New("device lost")

	err = store.Write(0, mgl32.Vec2{}, mgl32.Vec2{})
	assert.ErrorIs(t, err, render.ErrMap)
	assert.True(t, render.Fatal(err))
}
