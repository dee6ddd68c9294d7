package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// Page serves one HTML file from dir. A missing file is a JSON 404 so a
// misconfigured STATIC_DIR shows up plainly.
func Page(dir, name string) gin.HandlerFunc {
	path := filepath.Join(dir, name)
	return func(c *gin.Context) {
		if _, err := os.Stat(path); err != nil {
			respondError(c, http.StatusNotFound, "page not found: "+name)
			return
		}
		c.Header("Cache-Control", "no-store")
		c.File(path)
	}
}
