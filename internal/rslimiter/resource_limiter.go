package rslimiter

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sl4desec/subpeek/internal/config"
)

// ResourceLimiter watches memory and goroutine usage during a run and logs
// warnings when thresholds are crossed. It never stops the run.
type ResourceLimiter struct {
	config    config.ResourceLimiterConfig
	logger    zerolog.Logger
	readMem   MemoryReader
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning bool
	mu        sync.Mutex
}

// NewResourceLimiter creates a new resource monitor
func NewResourceLimiter(cfg config.ResourceLimiterConfig, logger zerolog.Logger) *ResourceLimiter {
	if cfg.CheckIntervalSecs <= 0 {
		cfg.CheckIntervalSecs = config.DefaultResourceCheckIntervalSecs
	}
	if cfg.SystemMemThreshold <= 0 {
		cfg.SystemMemThreshold = config.DefaultResourceSystemMemThreshold
	}

	return &ResourceLimiter{
		config: cfg,
		logger: logger.With().Str("component", "ResourceLimiter").Logger(),
	}
}

// WithMemoryReader replaces the gopsutil system memory source
func (rl *ResourceLimiter) WithMemoryReader(readMem MemoryReader) *ResourceLimiter {
	rl.readMem = readMem
	return rl
}

// Start begins monitoring. It is a no-op when disabled or already running.
func (rl *ResourceLimiter) Start() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.isRunning || !rl.config.Enabled {
		return
	}
	rl.isRunning = true

	ctx, cancel := context.WithCancel(context.Background())
	rl.cancel = cancel

	rl.wg.Add(1)
	go rl.monitorResources(ctx)

	rl.logger.Debug().
		Int64("max_memory_mb", rl.config.MaxMemoryMB).
		Int("max_goroutines", rl.config.MaxGoroutines).
		Dur("check_interval", rl.config.GetCheckInterval()).
		Float64("system_mem_threshold", rl.config.SystemMemThreshold).
		Msg("Resource limiter started")
}

// Stop stops the monitor and waits for it to exit
func (rl *ResourceLimiter) Stop() {
	rl.mu.Lock()
	if !rl.isRunning {
		rl.mu.Unlock()
		return
	}
	rl.isRunning = false
	rl.cancel()
	rl.mu.Unlock()

	rl.wg.Wait()
	rl.logger.Debug().Msg("Resource limiter stopped")
}

// Check samples usage once and returns the names of the exceeded limits.
func (rl *ResourceLimiter) Check() []string {
	usage := GetResourceUsage(rl.readMem)
	exceeded := rl.exceededLimits(usage)

	if len(exceeded) > 0 {
		rl.logger.Warn().
			Strs("exceeded", exceeded).
			Int64("alloc_mb", usage.AllocMB).
			Int("goroutines", usage.Goroutines).
			Float64("system_mem_percent", usage.SystemMemUsedPercent).
			Msg("Resource usage above configured limits")
		return exceeded
	}

	rl.logger.Debug().
		Int64("alloc_mb", usage.AllocMB).
		Int64("sys_mb", usage.SysMB).
		Int("goroutines", usage.Goroutines).
		Int64("gc_count", usage.GCCount).
		Float64("system_mem_percent", usage.SystemMemUsedPercent).
		Msg("Current resource usage")
	return nil
}

func (rl *ResourceLimiter) monitorResources(ctx context.Context) {
	defer rl.wg.Done()

	ticker := time.NewTicker(rl.config.GetCheckInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Check()
		}
	}
}

// A zero limit disables that check.
func (rl *ResourceLimiter) exceededLimits(usage ResourceUsage) []string {
	var exceeded []string

	if rl.config.MaxMemoryMB > 0 && usage.AllocMB > rl.config.MaxMemoryMB {
		exceeded = append(exceeded, "process_memory")
	}
	if rl.config.MaxGoroutines > 0 && usage.Goroutines > rl.config.MaxGoroutines {
		exceeded = append(exceeded, "goroutines")
	}
	if usage.SystemMemAvailable && usage.SystemMemUsedPercent/100.0 > rl.config.SystemMemThreshold {
		exceeded = append(exceeded, "system_memory")
	}

	return exceeded
}
