package render

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Profiler accumulates CPU time per frame stage between reports.
type Profiler struct {
	Counts map[string]int

	stages  []string
	started map[string]time.Time
	total   map[string]time.Duration
	frames  int
}

func NewProfiler() *Profiler {
	return &Profiler{
		Counts:  make(map[string]int),
		started: make(map[string]time.Time),
		total:   make(map[string]time.Duration),
	}
}

func (p *Profiler) BeginScope(stage string) {
	if _, seen := p.total[stage]; !seen {
		p.stages = append(p.stages, stage)
		p.total[stage] = 0
	}
	p.started[stage] = time.Now()
}

func (p *Profiler) EndScope(stage string) {
	if start, ok := p.started[stage]; ok {
		p.total[stage] += time.Since(start)
		delete(p.started, stage)
	}
}

// EndFrame closes one sample for the averages.
func (p *Profiler) EndFrame() {
	p.frames++
}

// Average is the mean time spent in stage per frame since the last Reset.
func (p *Profiler) Average(stage string) time.Duration {
	if p.frames == 0 {
		return 0
	}
	return p.total[stage] / time.Duration(p.frames)
}

func (p *Profiler) SetCount(name string, count int) {
	p.Counts[name] = count
}

// Reset starts a new averaging window. Stage order and counts are kept.
func (p *Profiler) Reset() {
	for _, stage := range p.stages {
		p.total[stage] = 0
	}
	p.frames = 0
}

func (p *Profiler) StatsString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "frame stages, mean of %d:\n", p.frames)
	for _, stage := range p.stages {
		fmt.Fprintf(&sb, "  %-8s %8.3f ms\n", stage, float64(p.Average(stage).Microseconds())/1000)
	}

	names := make([]string, 0, len(p.Counts))
	for name := range p.Counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "  %-8s %d\n", name, p.Counts[name])
	}
	return sb.String()
}
