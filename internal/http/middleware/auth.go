package middleware

import (
	"net/http"
	"time"

	"javaterra/internal/domain"
	"javaterra/internal/session"

	"github.com/gin-gonic/gin"
)

const adminKey = "admin"

// Authenticator resolves a session token to the admin it belongs to.
type Authenticator interface {
	Authenticate(token string) (*domain.RequestContext, error)
}

// Session reads the admin session cookie and, when it verifies, stores the
// admin on the context. It never aborts; the Require* guards do.
func Session(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(session.CookieName); err == nil && raw != "" {
			if actor, err := auth.Authenticate(raw); err == nil {
				c.Set(adminKey, actor)
			}
		}
		c.Next()
	}
}

// RequireAdmin rejects anonymous API calls with 401 before any handler runs.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetAdmin(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":    false,
				"error":      "Unauthorized",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}

// RequireAdminPage redirects anonymous page requests to the login page.
func RequireAdminPage(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetAdmin(c) == nil {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetAdmin returns the authenticated admin, or nil for anonymous requests.
func GetAdmin(c *gin.Context) *domain.RequestContext {
	if c == nil {
		return nil
	}
	if v, ok := c.Get(adminKey); ok {
		if actor, ok := v.(*domain.RequestContext); ok {
			return actor
		}
	}
	return nil
}

// SetSessionCookie stores the signed token in an HTTP-only cookie.
func SetSessionCookie(c *gin.Context, token string, expires time.Time, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
