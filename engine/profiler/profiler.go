package profiler

import (
	"log"
	"runtime"
	"sync"
	"time"
)

// Sample is one interval of profiler statistics.
type Sample struct {
	TicksPerSecond float64
	SweepsPerTick  float64
	HeapMB         float64
	AllocRateMB    float64
	GCCount        uint32
	LastPauseUs    uint64
	MaxPauseUs     uint64
	SysMB          float64
}

// Profiler tracks tick rate, collision sweep load and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	mu *sync.Mutex

	tickCount      int
	sweepCount     uint64
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Sample
	now            func() time.Time
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		mu:             &sync.Mutex{},
		lastTime:       time.Now(),
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
		now:            time.Now,
	}
}

// SetInterval changes how often statistics are logged. Non-positive values are ignored.
//
// Parameters:
//   - interval: the logging interval
func (p *Profiler) SetInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updateInterval = interval
}

// Last returns the statistics logged most recently.
//
// Returns:
//   - Sample: the last sample, zero before the first interval elapsed
func (p *Profiler) Last() Sample {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Tick should be called once per engine tick with the number of collision sweeps that tick issued.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: ticks/s, sweeps per tick, heap usage, allocation rate, GC count/pause times, total memory.
//
// Parameters:
//   - sweeps: collision sweeps issued during the tick
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(sweeps uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tickCount++
	p.sweepCount += sweeps
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	s := Sample{
		TicksPerSecond: float64(p.tickCount) / elapsed.Seconds(),
		SweepsPerTick:  float64(p.sweepCount) / float64(p.tickCount),
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	s.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	s.SysMB = float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	s.GCCount = p.memStats.NumGC
	if s.GCCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	log.Printf("[Profiler] TPS: %.2f | Sweeps/tick: %.1f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		s.TicksPerSecond, s.SweepsPerTick, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)

	p.last = s
	p.tickCount = 0
	p.sweepCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
