package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "javaterra/internal/config"
	router "javaterra/internal/http"
	h "javaterra/internal/http/handlers"
	"javaterra/internal/services"
	"javaterra/internal/session"
	"javaterra/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	utils.SetLogger(utils.NewLogger(os.Getenv("LOG_LEVEL")))
	log := utils.Logger()

	intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	sessions, err := session.NewManager(env.SessionSecret, env.SessionTTL, env.CookieSecure)
	if err != nil {
		log.Error("session manager init failed", "error", err)
		os.Exit(1)
	}
	if sessions.GeneratedSecret() {
		log.Warn("SESSION_SECRET not set, using a random secret; admin sessions end on restart")
	}
	h.SetSessionManager(sessions)

	seedAdmin(env, sessions)

	// Router (Gin engine)
	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", env.AppAddr, "admin", "http://localhost"+env.AppAddr+h.AdminLoginPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", "error", err)
		return
	}

	log.Info("server stopped")
}

// seedAdmin upserts the configured admin account and warns when the
// credential store is empty.
func seedAdmin(env intconfig.Env, sessions *session.Manager) {
	log := utils.Logger()
	auth := services.AuthService{DB: intconfig.DB, Sessions: sessions, RequestID: "startup"}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if env.AdminUsername != "" {
		if err := auth.SeedAdmin(ctx, env.AdminUsername, env.AdminPassword, env.AdminPasswordHash); err != nil {
			log.Error("admin seed failed", "username", env.AdminUsername, "error", err)
			os.Exit(1)
		}
	}

	n, err := auth.AdminCount(ctx)
	if err != nil {
		log.Warn("admin count failed", "error", err)
		return
	}
	if n == 0 {
		log.Warn("no admin accounts; set ADMIN_USERNAME and ADMIN_PASSWORD to enable the admin panel")
	}
}
