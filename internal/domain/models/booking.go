package models

// Booking is a full bookings row.
type Booking struct {
	ID            int64  `json:"id"`
	BookingID     string `json:"booking_id"`
	Departure     string `json:"departure"`
	Destination   string `json:"destination"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	BusType       string `json:"bus_type"`
	Quantity      int    `json:"quantity"`
	TotalPrice    string `json:"total_price"`
	Username      string `json:"username"`
	BirthDate     string `json:"birth_date"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	PaymentStatus string `json:"payment_status"`
	BookingStatus string `json:"booking_status"`
	CreatedAt     string `json:"created_at"`
}

// BookingSummary is what the public history search exposes: the full
// record minus birth date and postal address.
type BookingSummary struct {
	ID            int64  `json:"id"`
	BookingID     string `json:"booking_id"`
	Departure     string `json:"departure"`
	Destination   string `json:"destination"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	BusType       string `json:"bus_type"`
	Quantity      int    `json:"quantity"`
	TotalPrice    string `json:"total_price"`
	Username      string `json:"username"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	PaymentStatus string `json:"payment_status"`
	BookingStatus string `json:"booking_status"`
	CreatedAt     string `json:"created_at"`
}

func (b Booking) Summary() BookingSummary {
	return BookingSummary{
		ID:            b.ID,
		BookingID:     b.BookingID,
		Departure:     b.Departure,
		Destination:   b.Destination,
		Date:          b.Date,
		Time:          b.Time,
		BusType:       b.BusType,
		Quantity:      b.Quantity,
		TotalPrice:    b.TotalPrice,
		Username:      b.Username,
		Phone:         b.Phone,
		Email:         b.Email,
		PaymentStatus: b.PaymentStatus,
		BookingStatus: b.BookingStatus,
		CreatedAt:     b.CreatedAt,
	}
}

// BookingInput carries the customer-supplied fields of a new booking.
type BookingInput struct {
	Departure   string
	Destination string
	Date        string
	Time        string
	BusType     string
	Quantity    int
	TotalPrice  string
	Username    string
	BirthDate   string
	Email       string
	Address     string
	Phone       string
}

// StatusUpdate supports PATCH-style updates; nil or empty leaves the column
// unchanged.
type StatusUpdate struct {
	BookingStatus *string
	PaymentStatus *string
}

// BookingFilter narrows the admin listing. Empty or "all" means no
// constraint on that column.
type BookingFilter struct {
	BookingStatus string
	PaymentStatus string
}
