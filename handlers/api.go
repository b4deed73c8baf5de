package handlers

import (
	"net/http"

	"github.com/Amanjain8795/matratv-connect-main-sub001/database"

	"github.com/gin-gonic/gin"
)

func HealthHandler(c *gin.Context) {
	if err := database.Pool.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
