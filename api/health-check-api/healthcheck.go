package health_check_api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptdeck/config"
	"github.com/promptdeck/pkg/commons"
	"github.com/promptdeck/pkg/connectors"
)

type HealthCheckApi struct {
	cfg      *config.AppConfig
	logger   commons.Logger
	postgres connectors.PostgresConnector
}

func New(cfg *config.AppConfig, logger commons.Logger, postgres connectors.PostgresConnector) *HealthCheckApi {
	return &HealthCheckApi{cfg: cfg, logger: logger, postgres: postgres}
}

// Healthz reports process liveness.
func (h *HealthCheckApi) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.cfg.Name,
		"version": h.cfg.Version,
	})
}

// Readiness verifies the database connection before reporting ready.
func (h *HealthCheckApi) Readiness(c *gin.Context) {
	sqlDB, err := h.postgres.DB(c.Request.Context()).DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.logger.Errorf("readiness check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
