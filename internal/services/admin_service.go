package services

import (
	"context"
	"database/sql"
	"fmt"

	"javaterra/internal/domain"
	"javaterra/internal/domain/models"
	"javaterra/internal/repositories"
	"javaterra/internal/utils"
)

// AdminService backs the admin panel. Every method requires an
// authenticated admin in actor and fails with UnauthorizedError before
// touching the store otherwise.
type AdminService struct {
	BookingRepo repositories.BookingRepo
	DB          *sql.DB
	RequestID   string
}

func (s AdminService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.DB}
}

func requireAdmin(actor *domain.RequestContext) error {
	if actor == nil || actor.Username == "" {
		return domain.UnauthorizedError{}
	}
	return nil
}

// ListBookings returns full records, newest first. "all" disables a filter.
func (s AdminService) ListBookings(ctx context.Context, actor *domain.RequestContext, f models.BookingFilter) ([]models.Booking, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if f.BookingStatus == "" {
		f.BookingStatus = domain.FilterAll
	}
	if f.PaymentStatus == "" {
		f.PaymentStatus = domain.FilterAll
	}

	rows, err := s.bookings().ListFiltered(ctx, f)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return rows, nil
}

// UpdateStatus writes the supplied status fields. Unknown ids and empty
// updates are successful no-ops.
func (s AdminService) UpdateStatus(ctx context.Context, actor *domain.RequestContext, id int64, upd models.StatusUpdate) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	n, err := s.bookings().UpdateStatus(ctx, id, upd)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "admin", "update_status",
		fmt.Sprintf("admin=%s id=%d booking_status=%s payment_status=%s rows=%d",
			actor.Username, id, deref(upd.BookingStatus), deref(upd.PaymentStatus), n))
	return nil
}

// DeleteBooking removes a booking; deleting a missing id succeeds.
func (s AdminService) DeleteBooking(ctx context.Context, actor *domain.RequestContext, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	n, err := s.bookings().Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "admin", "delete", fmt.Sprintf("admin=%s id=%d rows=%d", actor.Username, id, n))
	return nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
