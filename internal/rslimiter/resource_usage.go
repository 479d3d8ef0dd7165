package rslimiter

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/mem"
)

// ResourceUsage represents current process and system resource usage
type ResourceUsage struct {
	AllocMB              int64   // Heap allocated by the process
	SysMB                int64   // Memory obtained from the OS by the Go runtime
	Goroutines           int     // Number of goroutines
	GCCount              int64   // Completed GC cycles
	SystemMemUsedMB      int64   // System memory used (MB)
	SystemMemTotalMB     int64   // Total system memory (MB)
	SystemMemUsedPercent float64 // System memory used, 0-100
	SystemMemAvailable   bool    // False when gopsutil could not read system memory
}

// MemoryReader returns system memory statistics
type MemoryReader func() (*mem.VirtualMemoryStat, error)

// GetResourceUsage samples the runtime and system memory through readMem.
func GetResourceUsage(readMem MemoryReader) ResourceUsage {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	usage := ResourceUsage{
		AllocMB:    int64(m.Alloc / 1024 / 1024),
		SysMB:      int64(m.Sys / 1024 / 1024),
		Goroutines: runtime.NumGoroutine(),
		GCCount:    int64(m.NumGC),
	}

	if readMem == nil {
		readMem = mem.VirtualMemory
	}
	if vmStat, err := readMem(); err == nil && vmStat != nil {
		usage.SystemMemUsedMB = int64(vmStat.Used / 1024 / 1024)
		usage.SystemMemTotalMB = int64(vmStat.Total / 1024 / 1024)
		usage.SystemMemUsedPercent = vmStat.UsedPercent
		usage.SystemMemAvailable = true
	}

	return usage
}
