package handlers

import (
	"net/http"

	"javaterra/internal/domain"
	"javaterra/internal/http/middleware"
	"javaterra/internal/services"

	"github.com/gin-gonic/gin"
)

const AdminLoginPath = "/admin/login"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionAuthenticator struct{}

func (sessionAuthenticator) Authenticate(token string) (*domain.RequestContext, error) {
	return services.AuthService{Sessions: sessionManager()}.Authenticate(token)
}

// Authenticator is the session check used by middleware.Session. It reads
// the installed session manager on every call.
func Authenticator() middleware.Authenticator {
	return sessionAuthenticator{}
}

// POST /admin/login
func Login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		RespondDomainError(c, err)
		return
	}

	m := sessionManager()
	svc := services.AuthService{Sessions: m, RequestID: middleware.GetRequestID(c)}
	token, exp, err := svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	middleware.SetSessionCookie(c, token, exp, m.Secure())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /admin/logout
func Logout(c *gin.Context) {
	secure := false
	if m := sessionManager(); m != nil {
		secure = m.Secure()
	}
	middleware.ClearSessionCookie(c, secure)
	c.Redirect(http.StatusFound, AdminLoginPath)
}
