package webserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/civicledger/govledger/src/api/config"
)

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   config.Version,
		"service":   config.ServiceName,
	})
}
