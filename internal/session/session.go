// Package session issues and verifies the signed admin session token that
// the HTTP layer stores in a cookie.
package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"javaterra/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "javaterra_session"
	issuer     = "javaterra-admin"
	minSecret  = 32
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrWeakSecret   = fmt.Errorf("session secret must be at least %d bytes", minSecret)
)

// Claims is the payload of an admin session token.
type Claims struct {
	AdminID  int64  `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret    []byte
	ttl       time.Duration
	secure    bool
	generated bool
	now       func() time.Time
}

// NewManager returns a manager signing with secret. An empty secret is
// replaced by a random one, so sessions do not survive a restart; a
// configured secret shorter than 32 bytes is rejected with ErrWeakSecret.
func NewManager(secret string, ttl time.Duration, secure bool) (*Manager, error) {
	m := &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		now:    time.Now,
	}
	if m.ttl <= 0 {
		m.ttl = 12 * time.Hour
	}
	if n := len(m.secret); n > 0 && n < minSecret {
		return nil, ErrWeakSecret
	}
	if len(m.secret) == 0 {
		buf := make([]byte, minSecret)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		m.secret = buf
		m.generated = true
	}
	return m, nil
}

// GeneratedSecret reports whether the signing secret was generated at
// startup rather than configured.
func (m *Manager) GeneratedSecret() bool { return m.generated }

func (m *Manager) TTL() time.Duration { return m.ttl }

func (m *Manager) Secure() bool { return m.secure }

// Issue signs a token for admin and returns it with its expiry.
func (m *Manager) Issue(admin models.Admin) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := Claims{
		AdminID:  admin.ID,
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   admin.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, exp, nil
}

// Parse verifies signature, issuer and expiry.
func (m *Manager) Parse(raw string) (Claims, error) {
	if raw == "" {
		return Claims{}, ErrInvalidToken
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
