package render_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gekko3d/sprites/render"
)

func TestProfilerAverages(t *testing.T) {
	p := render.NewProfiler()
	assert.Zero(t, p.Average("flush"))

	for i := 0; i < 2; i++ {
		p.BeginScope("flush")
		time.Sleep(time.Millisecond)
		p.EndScope("flush")
		p.BeginScope("submit")
		p.EndScope("submit")
		p.EndFrame()
	}
	assert.GreaterOrEqual(t, p.Average("flush"), time.Millisecond)

	p.SetCount("instances", 3)
	stats := p.StatsString()
	assert.Contains(t, stats, "mean of 2")
	assert.Less(t, strings.Index(stats, "flush"), strings.Index(stats, "submit"), "stages keep first-seen order")
	assert.Contains(t, stats, "instances")

	p.Reset()
	assert.Zero(t, p.Average("flush"))
	assert.Contains(t, p.StatsString(), "flush")
	assert.Equal(t, 3, p.Counts["instances"])
}

func TestProfilerEndWithoutBegin(t *testing.T) {
	p := render.NewProfiler()
	p.EndScope("poll")
	p.EndFrame()
	assert.Zero(t, p.Average("poll"))
}
