package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// Crockford base32: no I, L, O or U, so ids read back unambiguously.
const bookingIDAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// BookingIDSuffixLen is the number of characters after the prefix.
const BookingIDSuffixLen = 8

// randomUUIDBytes skips byte 6, whose high nibble holds the UUID version.
var randomUUIDBytes = [BookingIDSuffixLen]int{0, 1, 2, 3, 4, 5, 7, 9}

// NewBookingID returns prefix followed by BookingIDSuffixLen random
// characters (40 bits of entropy from a v4 UUID).
func NewBookingID(prefix string) (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate booking id: %w", err)
	}

	buf := make([]byte, BookingIDSuffixLen)
	for i, pos := range randomUUIDBytes {
		// 256 is a multiple of 32, so the modulo is unbiased
		buf[i] = bookingIDAlphabet[int(u[pos])%len(bookingIDAlphabet)]
	}
	return prefix + string(buf), nil
}
