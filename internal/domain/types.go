package domain

// ID is used across domain entities.
type ID int64

// Status values written on every new booking. Both status fields are free
// text afterwards; these are defaults, not an enumeration.
const (
	PaymentStatusNotPaid = "not_paid"
	BookingStatusPending = "pending"
)

// FilterAll disables a listing filter.
const FilterAll = "all"

// BookingIDPrefix tags every public booking identifier.
const BookingIDPrefix = "JVT"

// RequestContext carries the authenticated admin when available.
type RequestContext struct {
	AdminID  ID     `json:"adminId"`
	Username string `json:"username"`
}
