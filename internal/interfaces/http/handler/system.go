package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/civilregistry/backend/internal/interfaces/http/dto"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func(ctx context.Context) error

// SystemHandler handles health and liveness endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	checks    map[string]HealthChecker
}

// NewSystemHandler creates a new SystemHandler. Checks are named dependency
// probes run by the readiness endpoint.
func NewSystemHandler(checks map[string]HealthChecker) *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
		checks:    checks,
	}
}

// RegisterRoutes registers system routes directly on the engine, outside the
// versioned API group, so probes need no authentication.
func (h *SystemHandler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/health", h.Health)
	engine.GET("/ready", h.Ready)
}

// HealthResponse reports process liveness
type HealthResponse struct {
	Status    string `json:"status"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health reports process liveness
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthResponse{
		Status:    "ok",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// ReadyResponse reports per-dependency readiness
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Ready probes each dependency with a short deadline and reports 503 when any
// of them is unreachable.
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp := ReadyResponse{Status: "ready", Checks: make(map[string]string, len(h.checks))}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			resp.Status = "degraded"
			resp.Checks[name] = err.Error()
			continue
		}
		resp.Checks[name] = "ok"
	}

	if resp.Status != "ready" {
		c.JSON(http.StatusServiceUnavailable, dto.Response{Success: false, Data: resp})
		return
	}
	h.Success(c, resp)
}
