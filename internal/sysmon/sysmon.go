// Package sysmon samples system-wide CPU and memory usage for the REPL
// status command and the metrics endpoint.
package sysmon

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Sources of the samples, replaced in tests.
var (
	cpuPercent    = cpu.PercentWithContext
	virtualMemory = mem.VirtualMemoryWithContext
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	MemUsed    uint64  // bytes
	MemTotal   uint64  // bytes
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since the previous call, so the first sample
// may read 0). Fields that cannot be read are left at zero.
func Sample(ctx context.Context) Stats {
	var s Stats
	cpuPcts, err := cpuPercent(ctx, 0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := virtualMemory(ctx)
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.MemUsed = vmem.Used
		s.MemTotal = vmem.Total
	}
	return s
}

// CPUPercent returns the system CPU usage. It matches the signature of a
// prometheus GaugeFunc callback.
func CPUPercent() float64 {
	pcts, err := cpuPercent(context.Background(), 0, false)
	if err != nil || len(pcts) == 0 {
		return 0
	}
	return pcts[0]
}

// MemPercent returns the share of system memory in use.
func MemPercent() float64 {
	vmem, err := virtualMemory(context.Background())
	if err != nil || vmem == nil {
		return 0
	}
	return vmem.UsedPercent
}
