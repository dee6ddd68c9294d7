package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"javaterra/internal/domain"
	"javaterra/internal/domain/models"
	"javaterra/internal/repositories"
	"javaterra/internal/utils"
)

// maxBookingIDAttempts bounds id regeneration after a unique-key conflict.
const maxBookingIDAttempts = 3

type BookingService struct {
	BookingRepo repositories.BookingRepo
	DB          *sql.DB
	RequestID   string
	// NewID overrides public id generation (tests).
	NewID func(prefix string) (string, error)
}

func (s BookingService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.DB}
}

func (s BookingService) newID() (string, error) {
	if s.NewID != nil {
		return s.NewID(domain.BookingIDPrefix)
	}
	return utils.NewBookingID(domain.BookingIDPrefix)
}

// CreateBooking stores a new booking and returns its public id. New
// bookings always start as not_paid / pending.
func (s BookingService) CreateBooking(ctx context.Context, in models.BookingInput) (string, error) {
	if err := validateBookingInput(in); err != nil {
		return "", err
	}

	b := models.Booking{
		Departure:     in.Departure,
		Destination:   in.Destination,
		Date:          in.Date,
		Time:          in.Time,
		BusType:       in.BusType,
		Quantity:      in.Quantity,
		TotalPrice:    in.TotalPrice,
		Username:      in.Username,
		BirthDate:     in.BirthDate,
		Email:         in.Email,
		Address:       in.Address,
		Phone:         in.Phone,
		PaymentStatus: domain.PaymentStatusNotPaid,
		BookingStatus: domain.BookingStatusPending,
	}

	var lastErr error
	for attempt := 1; attempt <= maxBookingIDAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return "", domain.InternalError{Err: err}
		}
		b.BookingID = id

		internalID, err := s.bookings().Insert(ctx, b)
		if err == nil {
			utils.LogEvent(s.RequestID, "booking", "create",
				fmt.Sprintf("booking created booking_id=%s id=%d", id, internalID))
			return id, nil
		}
		if !domain.IsConflict(err) {
			return "", domain.InternalError{Err: err}
		}
		lastErr = err
		utils.Logger().Warn("booking id collision, regenerating",
			"request_id", s.RequestID, "booking_id", id, "attempt", attempt)
	}
	return "", lastErr
}

// SearchByName finds bookings whose customer name contains name.
func (s BookingService) SearchByName(ctx context.Context, name string) ([]models.BookingSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ValidationError{Field: "name", Msg: "Name is required"}
	}

	rows, err := s.bookings().SearchByName(ctx, name)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}

	out := make([]models.BookingSummary, 0, len(rows))
	for _, b := range rows {
		out = append(out, b.Summary())
	}
	return out, nil
}

func (s BookingService) GetByPublicID(ctx context.Context, bookingID string) (models.Booking, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return models.Booking{}, domain.NotFoundError{Resource: "Booking"}
	}

	b, err := s.bookings().FindByPublicID(ctx, bookingID)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Booking{}, err
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return b, nil
}

func validateBookingInput(in models.BookingInput) error {
	required := []struct {
		field string
		value string
	}{
		{"departure", in.Departure},
		{"destination", in.Destination},
		{"date", in.Date},
		{"time", in.Time},
		{"busType", in.BusType},
		{"totalPrice", in.TotalPrice},
		{"username", in.Username},
		{"birth", in.BirthDate},
		{"email", in.Email},
		{"address", in.Address},
		{"phone", in.Phone},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return domain.ValidationError{Field: r.field}
		}
	}
	if in.Quantity <= 0 {
		return domain.ValidationError{Field: "quantity", Msg: "quantity must be a positive integer"}
	}
	return nil
}
