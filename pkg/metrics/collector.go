package metrics

import (
	"runtime"
	"time"

	"sentinel-refactor/pkg"
)

// StartSystemMetricsCollection runs until the process begins shutting down,
// periodically refreshing goroutine count and memory usage gauges.
func StartSystemMetricsCollection(c *Collector) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if pkg.IsShuttingDown() {
			return
		}

		c.GoroutineCount.Set(float64(runtime.NumGoroutine()))

		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)
		c.MemoryUsage.Set(float64(memStats.Alloc))
	}
}
