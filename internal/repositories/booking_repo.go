package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "javaterra/internal/config"
	intdb "javaterra/internal/db"
	"javaterra/internal/domain"
	"javaterra/internal/domain/models"
)

const bookingColumns = `id, booking_id, departure, destination, date, time,
	bus_type, quantity, total_price, username, birth_date, email, address, phone,
	payment_status, booking_status, created_at`

const newestFirst = ` ORDER BY created_at DESC, id DESC`

type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() (*sql.DB, error) {
	if r.DB != nil {
		return r.DB, nil
	}
	if intconfig.DB != nil {
		return intconfig.DB, nil
	}
	return nil, fmt.Errorf("database not connected")
}

// Insert stores a new booking and returns its internal id. A collision on
// the public booking id is reported as domain.ConflictError.
func (r BookingRepo) Insert(ctx context.Context, b models.Booking) (int64, error) {
	db, err := r.db()
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO bookings (
			booking_id, departure, destination, date, time,
			bus_type, quantity, total_price, username, birth_date,
			email, address, phone, payment_status, booking_status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.BookingID, b.Departure, b.Destination, b.Date, b.Time,
		b.BusType, b.Quantity, b.TotalPrice, b.Username, b.BirthDate,
		b.Email, b.Address, b.Phone, b.PaymentStatus, b.BookingStatus,
	)
	if err != nil {
		if intdb.IsUniqueViolation(err) {
			return 0, domain.ConflictError{Resource: "booking", Msg: "booking_id already exists", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}

// FindByPublicID returns the booking with the given public id.
func (r BookingRepo) FindByPublicID(ctx context.Context, bookingID string) (models.Booking, error) {
	db, err := r.db()
	if err != nil {
		return models.Booking{}, err
	}

	row := db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE booking_id = ? LIMIT 1`, bookingID)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "Booking", Err: err}
		}
		return models.Booking{}, err
	}
	return b, nil
}

// SearchByName matches name anywhere in the customer name, ignoring case.
func (r BookingRepo) SearchByName(ctx context.Context, name string) ([]models.Booking, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE LOWER(username) LIKE LOWER(?) ESCAPE '`+intdb.LikeEscapeChar+`'`+newestFirst,
		intdb.ContainsPattern(name),
	)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// ListFiltered returns bookings matching the exact status filters.
func (r BookingRepo) ListFiltered(ctx context.Context, f models.BookingFilter) ([]models.Booking, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []any{}

	if v := f.BookingStatus; v != "" && v != domain.FilterAll {
		query += ` AND booking_status = ?`
		args = append(args, v)
	}
	if v := f.PaymentStatus; v != "" && v != domain.FilterAll {
		query += ` AND payment_status = ?`
		args = append(args, v)
	}
	query += newestFirst

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

// UpdateStatus writes the supplied status fields. It returns the number of
// rows touched; zero is not an error.
func (r BookingRepo) UpdateStatus(ctx context.Context, id int64, upd models.StatusUpdate) (int64, error) {
	sets := []string{}
	args := []any{}

	if upd.BookingStatus != nil && *upd.BookingStatus != "" {
		sets = append(sets, "booking_status = ?")
		args = append(args, *upd.BookingStatus)
	}
	if upd.PaymentStatus != nil && *upd.PaymentStatus != "" {
		sets = append(sets, "payment_status = ?")
		args = append(args, *upd.PaymentStatus)
	}
	if len(sets) == 0 {
		return 0, nil
	}

	db, err := r.db()
	if err != nil {
		return 0, err
	}

	args = append(args, id)
	res, err := db.ExecContext(ctx, `UPDATE bookings SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a booking by internal id. Missing rows are not an error.
func (r BookingRepo) Delete(ctx context.Context, id int64) (int64, error) {
	db, err := r.db()
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the number of stored bookings.
func (r BookingRepo) Count(ctx context.Context) (int64, error) {
	db, err := r.db()
	if err != nil {
		return 0, err
	}
	var n int64
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(s rowScanner) (models.Booking, error) {
	var (
		b                       models.Booking
		paymentStatus, bookStat intdb.Text
		createdAt               intdb.Text
	)
	err := s.Scan(
		&b.ID,
		&b.BookingID,
		&b.Departure,
		&b.Destination,
		&b.Date,
		&b.Time,
		&b.BusType,
		&b.Quantity,
		&b.TotalPrice,
		&b.Username,
		&b.BirthDate,
		&b.Email,
		&b.Address,
		&b.Phone,
		&paymentStatus,
		&bookStat,
		&createdAt,
	)
	if err != nil {
		return models.Booking{}, err
	}
	b.PaymentStatus = paymentStatus.String()
	b.BookingStatus = bookStat.String()
	b.CreatedAt = createdAt.String()
	return b, nil
}

func collectBookings(rows *sql.Rows) ([]models.Booking, error) {
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
