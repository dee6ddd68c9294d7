package handlers

import (
	"net/http"

	"javaterra/internal/domain"
	"javaterra/internal/domain/models"
	"javaterra/internal/http/middleware"
	"javaterra/internal/services"

	"github.com/gin-gonic/gin"
)

type statusUpdateRequest struct {
	BookingStatus *string `json:"booking_status"`
	PaymentStatus *string `json:"payment_status"`
}

func adminService(c *gin.Context) services.AdminService {
	return services.AdminService{RequestID: middleware.GetRequestID(c)}
}

// GET /admin/api/bookings?status=&payment=
func AdminListBookings(c *gin.Context) {
	filter := models.BookingFilter{
		BookingStatus: c.DefaultQuery("status", domain.FilterAll),
		PaymentStatus: c.DefaultQuery("payment", domain.FilterAll),
	}

	rows, err := adminService(c).ListBookings(c.Request.Context(), middleware.GetAdmin(c), filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(rows),
		"bookings": rows,
	})
}

// PUT /admin/api/booking/:id/status
func AdminUpdateBookingStatus(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var req statusUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		RespondDomainError(c, err)
		return
	}

	upd := models.StatusUpdate{BookingStatus: req.BookingStatus, PaymentStatus: req.PaymentStatus}
	if err := adminService(c).UpdateStatus(c.Request.Context(), middleware.GetAdmin(c), id, upd); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status updated successfully"})
}

// DELETE /admin/api/booking/:id
func AdminDeleteBooking(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := adminService(c).DeleteBooking(c.Request.Context(), middleware.GetAdmin(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking deleted successfully"})
}
