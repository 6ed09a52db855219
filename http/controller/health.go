package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/memoria-viva/memorial-service/utils"
)

func (ctrl *Controller) HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	status := gin.H{"status": "ok"}
	healthy := true

	sqlDB, err := ctrl.Infra.Postgres.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Health] Postgres check failed: %v", err)
		status["postgres"] = "unreachable"
		healthy = false
	} else {
		status["postgres"] = "ok"
	}

	if err := ctrl.Infra.Redis.Ping(ctx); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Health] Redis check failed: %v", err)
		status["redis"] = "unreachable"
		healthy = false
	} else {
		status["redis"] = "ok"
	}

	if err := ctrl.Infra.Minio.ServerHealthy(ctx); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Health] Storage check failed: %v", err)
		status["storage"] = "unreachable"
		healthy = false
	} else {
		status["storage"] = "ok"
	}

	if !healthy {
		status["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}

	utils.JSON200(c, status)
}
