package handlers

import (
	"net/http"
	"sync"

	intconfig "javaterra/internal/config"
	intdb "javaterra/internal/db"
	"javaterra/internal/http/middleware"
	"javaterra/internal/repositories"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "javaterra backend running"})
}

func DBCheck(c *gin.Context) {
	ctx := c.Request.Context()
	if err := intconfig.EnsureDB(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":    false,
			"error":      "database not connected: " + err.Error(),
			"request_id": middleware.GetRequestID(c),
		})
		return
	}
	if !intdb.HasTable(ctx, intconfig.DB, intconfig.Driver, "bookings") {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":    false,
			"error":      "bookings table missing",
			"request_id": middleware.GetRequestID(c),
		})
		return
	}

	count, err := repositories.BookingRepo{}.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":    false,
			"error":      "database query failed: " + err.Error(),
			"request_id": middleware.GetRequestID(c),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "driver": intconfig.Driver, "bookings_in_db": count})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, "router not ready")
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "routes": out})
}

// NotFound answers unknown routes with JSON.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success":    false,
		"error":      "route not found",
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": middleware.GetRequestID(c),
	})
}
