package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SiteTitle is the branding value rendered by status surfaces, supplied by
// configuration at startup.
var SiteTitle = "Taskhive"

func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":    "ok",
		"message":   SiteTitle + " is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
