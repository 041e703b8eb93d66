package handler

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"

	"authbase/internal/config"
)

// HealthHandler reports liveness plus application and system stats.
type HealthHandler struct {
	cfg     *config.Config
	started time.Time
}

// NewHealthHandler creates a health handler anchored at process start.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg, started: time.Now()}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx := c.Request().Context()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	application := echo.Map{
		"environment": h.cfg.Env,
		"uptime":      fmt.Sprintf("%.2f Seconds", time.Since(h.started).Seconds()),
		"memoryUsage": echo.Map{
			"heapTotal": mb(m.HeapSys),
			"heapUsed":  mb(m.HeapAlloc),
		},
		"goroutines": runtime.NumGoroutine(),
	}

	system := echo.Map{}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		system["cpuUsage"] = []float64{avg.Load1, avg.Load5, avg.Load15}
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		system["totalMemory"] = mb(vm.Total)
		system["freeMemory"] = mb(vm.Available)
	}

	return OK(c, http.StatusOK, echo.Map{
		"application": application,
		"system":      system,
		"timestamp":   time.Now().UnixMilli(),
	})
}

func mb(bytes uint64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/1024/1024)
}
