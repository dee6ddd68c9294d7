package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"javaterra/internal/utils"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Env struct {
	AppAddr string
	GinMode string

	DBDriver string
	DBDSN    string

	StaticDir   string
	TemplateDir string

	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
}

// LoadEnv reads configuration from the process environment, after loading
// a .env file from the working directory when one exists.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, using process environment", "error", err)
	}

	env := Env{
		AppAddr:           utils.FirstNonEmpty(os.Getenv("APP_ADDR"), portAddr(os.Getenv("PORT")), ":5000"),
		GinMode:           getenv("GIN_MODE", ""),
		DBDriver:          strings.ToLower(getenv("DB_DRIVER", DriverSQLite)),
		DBDSN:             getenv("DB_DSN", "javaterra.db"),
		StaticDir:         getenv("STATIC_DIR", "static"),
		TemplateDir:       getenv("TEMPLATE_DIR", "templates"),
		SessionSecret:     getenv("SESSION_SECRET", ""),
		SessionTTL:        12 * time.Hour,
		AdminUsername:     getenv("ADMIN_USERNAME", ""),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: getenv("ADMIN_PASSWORD_HASH", ""),
	}

	if raw := getenv("SESSION_TTL", ""); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			env.SessionTTL = d
		} else {
			slog.Warn("invalid SESSION_TTL, using default", "value", raw, "default", env.SessionTTL)
		}
	}
	if raw := getenv("COOKIE_SECURE", ""); raw != "" {
		env.CookieSecure, _ = strconv.ParseBool(raw)
	}

	return env
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

// portAddr turns a bare PORT value (as set by most PaaS hosts) into a
// listen address.
func portAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ""
	}
	return ":" + strings.TrimPrefix(port, ":")
}
