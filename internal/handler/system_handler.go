package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root returns the liveness payload listing the resource paths.
func (a *API) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Blog API is running!",
		"endpoints": gin.H{
			"posts":      "/api/posts",
			"categories": "/api/categories",
		},
	})
}

// Health pings the store.
func (a *API) Health(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		a.log.Warn("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": "unreachable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok"})
}

// NotFound answers every unmatched route.
func (a *API) NotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, "Route not found")
}
