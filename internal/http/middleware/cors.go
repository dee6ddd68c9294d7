package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5000",
	"http://127.0.0.1:5000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// CORS allows the configured origins (CORS_ALLOWED_ORIGINS, comma
// separated, "*" for any) with credentials, so the admin cookie works
// cross-origin.
func CORS() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}

	origins := allowedOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func allowedOrigins(env string) []string {
	env = strings.TrimSpace(env)
	if env == "" {
		return defaultOrigins
	}
	out := []string{}
	for _, o := range strings.Split(env, ",") {
		o = strings.TrimSpace(o)
		if o == "*" {
			return []string{"*"}
		}
		if o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return defaultOrigins
	}
	return out
}
