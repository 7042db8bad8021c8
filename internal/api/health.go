package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: Basic liveness check (always returns 200 OK).
//   - /readyz: Readiness check (at least one dictionary loaded and, when
//     storage is enabled, the database reachable).
type HealthHandler struct {
	loaded func() int   // Number of dictionaries in the registry
	dbPing func() error // Database connectivity check; nil when storage is disabled
}

// NewHealthHandler constructs a HealthHandler. dbPing may be nil.
func NewHealthHandler(loaded func() int, dbPing func() error) *HealthHandler {
	return &HealthHandler{loaded: loaded, dbPing: dbPing}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
func (h *HealthHandler) Register(r *gin.Engine) {
	// @Summary      Liveness check
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// @Summary      Readiness check
	// @Description  Returns ready once dictionaries are loaded and the DB (if enabled) is reachable
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]interface{}
	// @Failure      503  {object}  map[string]interface{}
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		n := 0
		if h.loaded != nil {
			n = h.loaded()
		}
		if n == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading", "dictionaries": n})
			return
		}
		if h.dbPing != nil && h.dbPing() != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "dictionaries": n})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "dictionaries": n})
	})
}
