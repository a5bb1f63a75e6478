package handlers

import (
	"net/http"

	"vacancy/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness together with the last store health check.
func HealthHandler(monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"status": "ok", "message": "Hi, I'm vacancy"}
		if monitor != nil {
			body["stores"] = monitor.Status()
		}
		c.JSON(http.StatusOK, body)
	}
}
