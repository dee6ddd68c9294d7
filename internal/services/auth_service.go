package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"javaterra/internal/domain"
	"javaterra/internal/repositories"
	"javaterra/internal/session"
	"javaterra/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid credentials"

type AuthService struct {
	AdminRepo repositories.AdminRepo
	DB        *sql.DB
	Sessions  *session.Manager
	RequestID string
}

func (s AuthService) admins() repositories.AdminRepo {
	if s.AdminRepo.DB != nil {
		return s.AdminRepo
	}
	return repositories.AdminRepo{DB: s.DB}
}

// Login checks the credentials against the admin store and issues a
// session token.
func (s AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if s.Sessions == nil {
		return "", time.Time{}, domain.InternalError{Msg: "session manager not configured"}
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", time.Time{}, domain.UnauthorizedError{Msg: invalidCredentials}
	}

	admin, err := s.admins().FindByUsername(ctx, username)
	if err != nil {
		if domain.IsNotFound(err) {
			utils.Logger().Warn("admin login failed", "request_id", s.RequestID, "reason", "unknown user")
			return "", time.Time{}, domain.UnauthorizedError{Msg: invalidCredentials}
		}
		return "", time.Time{}, domain.InternalError{Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		utils.Logger().Warn("admin login failed", "request_id", s.RequestID, "reason", "bad password")
		return "", time.Time{}, domain.UnauthorizedError{Msg: invalidCredentials}
	}

	token, exp, err := s.Sessions.Issue(admin)
	if err != nil {
		return "", time.Time{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "login", "admin logged in username="+admin.Username)
	return token, exp, nil
}

// Authenticate resolves a session token to the admin it was issued for.
func (s AuthService) Authenticate(token string) (*domain.RequestContext, error) {
	if s.Sessions == nil {
		return nil, domain.UnauthorizedError{}
	}
	claims, err := s.Sessions.Parse(token)
	if err != nil {
		return nil, domain.UnauthorizedError{}
	}
	return &domain.RequestContext{AdminID: domain.ID(claims.AdminID), Username: claims.Username}, nil
}

// SeedAdmin creates or updates the configured admin account. A plain
// password is hashed with bcrypt; a pre-computed hash is stored as is.
func (s AuthService) SeedAdmin(ctx context.Context, username, password, passwordHash string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.ValidationError{Field: "ADMIN_USERNAME"}
	}

	hash := strings.TrimSpace(passwordHash)
	switch {
	case hash != "":
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return domain.ValidationError{Field: "ADMIN_PASSWORD_HASH", Msg: "ADMIN_PASSWORD_HASH is not a bcrypt hash", Err: err}
		}
	case password != "":
		b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return domain.InternalError{Msg: "hash admin password", Err: err}
		}
		hash = string(b)
	default:
		return domain.ValidationError{Field: "ADMIN_PASSWORD"}
	}

	if err := s.admins().Upsert(ctx, username, hash); err != nil {
		return domain.InternalError{Err: fmt.Errorf("seed admin: %w", err)}
	}
	utils.Logger().Info("admin account seeded", "username", username)
	return nil
}

// AdminCount is used at startup to warn when nobody can log in.
func (s AuthService) AdminCount(ctx context.Context) (int64, error) {
	return s.admins().Count(ctx)
}
