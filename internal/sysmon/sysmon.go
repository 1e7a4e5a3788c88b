// Package sysmon samples system-wide CPU, memory and load figures for the
// health endpoint and the dashboard header.
package sysmon

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 `json:"cpu_percent"` // 0.0 .. 100.0
	MemPercent float64 `json:"mem_percent"` // 0.0 .. 100.0
	MemTotal   uint64  `json:"mem_total_bytes"`
	Load1      float64 `json:"load1"`
	NumCPU     int     `json:"num_cpu"`
}

// Sample collects one snapshot. CPU is measured with interval 0, that is
// since the previous call. Fields that cannot be read stay zero.
func Sample(ctx context.Context) Stats {
	s := Stats{NumCPU: runtime.NumCPU()}
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
		s.MemTotal = vm.Total
	}
	if avg, err := load.AvgWithContext(ctx); err == nil && avg != nil {
		s.Load1 = avg.Load1
	}
	return s
}
