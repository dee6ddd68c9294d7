package api

import (
	intconfig "javaterra/internal/config"
	h "javaterra/internal/http/handlers"
	"javaterra/internal/http/middleware"
	"javaterra/internal/utils"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(),
		middleware.Session(h.Authenticator()))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Logger().Warn("failed to set trusted proxies", "error", err)
	}

	r.NoRoute(h.NotFound)

	// Public pages
	r.GET("/", h.Page(env.StaticDir, "index.html"))
	r.GET("/booking", h.Page(env.StaticDir, "booking.html"))
	r.GET("/history", h.Page(env.StaticDir, "history.html"))
	r.Static("/static", env.StaticDir)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		api.POST("/create-booking", h.CreateBooking)
		api.POST("/search-bookings", h.SearchBookings)
		api.GET("/booking/:bookingId", h.GetBooking)
		api.GET("/booking/:bookingId/ticket", h.GetBookingTicketPDF)
	}

	admin := r.Group("/admin")
	{
		admin.GET("/login", h.Page(env.TemplateDir, "admin_login.html"))
		admin.POST("/login", h.Login)
		admin.GET("/logout", h.Logout)
		admin.GET("/dashboard", middleware.RequireAdminPage(h.AdminLoginPath), h.Page(env.TemplateDir, "admin.html"))

		adminAPI := admin.Group("/api", middleware.RequireAdmin())
		adminAPI.GET("/bookings", h.AdminListBookings)
		adminAPI.PUT("/booking/:id/status", h.AdminUpdateBookingStatus)
		adminAPI.DELETE("/booking/:id", h.AdminDeleteBooking)
	}

	h.SetRouter(r)
	return r
}
