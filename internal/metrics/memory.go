// Package metrics reads process memory statistics for the result details
// and the health endpoint.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by the heap
	TotalAlloc   uint64 // cumulative bytes allocated
	Sys          uint64 // bytes obtained from the OS
	NumGC        uint32
	PauseTotalNs uint64
	// PeakRSS is the maximum resident set size of the process, zero where
	// the platform does not report it.
	PeakRSS uint64
}

// MemoryCollector reads runtime and OS memory statistics.
type MemoryCollector struct {
	peakRSS func() (uint64, error)
}

func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{peakRSS: peakRSS}
}

// Snapshot reads current memory statistics. A failing peak RSS read leaves
// PeakRSS at zero.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	s := MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
	if rss, err := mc.peakRSS(); err == nil {
		s.PeakRSS = rss
	}
	return s
}
