package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db      Pinger
	version string
	jobs    map[string]JobSchedule
}

func NewHealthController(db Pinger, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
		jobs:    make(map[string]JobSchedule),
	}
}

// Watch adds a background job to the checks reported by Status. A stopped job
// is reported but does not make the server unhealthy.
func (h *HealthController) Watch(name string, job JobSchedule) {
	h.jobs[name] = job
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// Check database connectivity
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
		status = "unhealthy"
	}

	for name, job := range h.jobs {
		checks[name] = jobCheck(job)
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

// Root answers the liveness check served at GET /.
func (h *HealthController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Server is running smoothly",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func jobCheck(job JobSchedule) string {
	if !job.IsRunning() {
		return "stopped"
	}
	if next := job.GetNextRunTime(); next != nil {
		return "next run " + next.UTC().Format(time.RFC3339)
	}
	return "scheduled"
}
