package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"javaterra/internal/domain"
	"javaterra/internal/session"

	"github.com/gin-gonic/gin"
)

type stubAuth map[string]*domain.RequestContext

func (s stubAuth) Authenticate(token string) (*domain.RequestContext, error) {
	if actor, ok := s[token]; ok {
		return actor, nil
	}
	return nil, errors.New("bad token")
}

func newEngine(auth Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Session(auth))
	r.GET("/api/secret", RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin": GetAdmin(c).Username})
	})
	r.GET("/page", RequireAdminPage("/login"), func(c *gin.Context) {
		c.String(http.StatusOK, "dashboard")
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	r := newEngine(stubAuth{"good": {AdminID: 1, Username: "ops"}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/secret", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"success":false`) || !strings.Contains(body, `"error":"Unauthorized"`) {
		t.Fatalf("unexpected 401 body: %s", body)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/secret", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "forged"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("forged cookie: expected 401, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/secret", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "good"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ops") {
		t.Fatalf("valid cookie: got %d %s", w.Code, w.Body.String())
	}
}

func TestRequireAdminPageRedirects(t *testing.T) {
	r := newEngine(stubAuth{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("unexpected Location %q", loc)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	r := newEngine(stubAuth{})

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("expected request id echoed, got %q", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))
	if got := w.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Fatalf("expected generated uuid request id, got %q", got)
	}
}

func TestAllowedOrigins(t *testing.T) {
	if got := allowedOrigins(""); len(got) != len(defaultOrigins) {
		t.Fatalf("empty env should use defaults, got %v", got)
	}
	got := allowedOrigins(" https://a.example , ,https://b.example")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", got)
	}
	if got := allowedOrigins("https://a.example,*"); len(got) != 1 || got[0] != "*" {
		t.Fatalf("wildcard should win, got %v", got)
	}
}
