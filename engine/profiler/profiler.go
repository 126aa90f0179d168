package profiler

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-fps/engine/logger"
)

// Profiler tracks frame rate, frame time and memory statistics for performance monitoring.
// Outputs stats to the structured log at a configurable interval.
type Profiler struct {
	log            *slog.Logger
	now            func() time.Time
	frameCount     int
	frameTimeSum   float64
	frameTimeMax   float32
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often stats are logged.
//
// Parameters:
//   - interval: time between reports (values <= 0 keep the 1 second default)
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithLogger sets the logger stats are written to.
//
// Parameters:
//   - l: the destination logger
//
// Returns:
//   - ProfilerOption: option function to apply
func WithLogger(l *slog.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.log = l
	}
}

// NewProfiler creates a new Profiler writing to the engine logger once per second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	if p.log == nil {
		p.log = logger.L()
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame with that frame's delta time.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, mean and worst frame time, heap usage, allocation rate, GC count/pause times, total memory.
//
// Parameters:
//   - dt: the frame's delta time in seconds
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(dt float32) bool {
	p.frameCount++
	p.frameTimeSum += float64(dt)
	if dt > p.frameTimeMax {
		p.frameTimeMax = dt
	}

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	meanMs := p.frameTimeSum / float64(p.frameCount) * 1000

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.log.Info("profiler",
		"fps", fps,
		"frame_ms_mean", meanMs,
		"frame_ms_max", float64(p.frameTimeMax)*1000,
		"heap_mb", allocMB,
		"alloc_rate_mb_s", allocRateMB,
		"gc", gcCount,
		"gc_last_pause_us", lastPauseUs,
		"gc_max_pause_us", maxPauseUs,
		"sys_mb", sysMB,
	)

	p.frameCount = 0
	p.frameTimeSum = 0
	p.frameTimeMax = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
