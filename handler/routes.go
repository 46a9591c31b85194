package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func InitTagServiceRoutes(r *gin.Engine) {
	r.GET("/status", StatusHandler)
	r.POST("/gads/adjustments", TrackAdjustmentHandler)
}
