package handlers

import (
	"net/http"

	"javaterra/internal/domain/models"
	"javaterra/internal/http/middleware"
	"javaterra/internal/services"

	"github.com/gin-gonic/gin"
)

// createBookingRequest is what the booking page posts after the last step.
type createBookingRequest struct {
	Departure   Stringish `json:"departure" binding:"required"`
	Destination Stringish `json:"destination" binding:"required"`
	Date        Stringish `json:"date" binding:"required"`
	Time        Stringish `json:"time" binding:"required"`
	BusType     Stringish `json:"busType" binding:"required"`
	Quantity    FlexInt   `json:"quantity" binding:"required"`
	TotalPrice  Stringish `json:"totalPrice" binding:"required"`
	Username    Stringish `json:"username" binding:"required"`
	Birth       Stringish `json:"birth" binding:"required"`
	Email       Stringish `json:"email" binding:"required"`
	Address     Stringish `json:"address" binding:"required"`
	Phone       Stringish `json:"phone" binding:"required"`
}

func (r createBookingRequest) toInput() models.BookingInput {
	return models.BookingInput{
		Departure:   r.Departure.String(),
		Destination: r.Destination.String(),
		Date:        r.Date.String(),
		Time:        r.Time.String(),
		BusType:     r.BusType.String(),
		Quantity:    int(r.Quantity),
		TotalPrice:  r.TotalPrice.String(),
		Username:    r.Username.String(),
		BirthDate:   r.Birth.String(),
		Email:       r.Email.String(),
		Address:     r.Address.String(),
		Phone:       r.Phone.String(),
	}
}

type searchBookingsRequest struct {
	Name Stringish `json:"name"`
}

// POST /api/create-booking
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := bindJSON(c, &req); err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	bookingID, err := svc.CreateBooking(c.Request.Context(), req.toInput())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"booking_id": bookingID,
		"message":    "Booking created successfully",
	})
}

// POST /api/search-bookings
func SearchBookings(c *gin.Context) {
	var req searchBookingsRequest
	if err := bindJSON(c, &req); err != nil {
		RespondDomainError(c, err)
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	rows, err := svc.SearchByName(c.Request.Context(), req.Name.String())
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

// GET /api/booking/:bookingId
func GetBooking(c *gin.Context) {
	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	b, err := svc.GetByPublicID(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
}

// GET /api/booking/:bookingId/ticket
func GetBookingTicketPDF(c *gin.Context) {
	svc := services.TicketService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.GenerateETicket(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
