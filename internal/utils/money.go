package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatRupiah renders integer amount with thousand separators.
func FormatRupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%sRp %s", sign, formatThousand(amount))
}

// DisplayPrice returns the stored total price for printing. Bare digits
// ("350000") are shown as Rupiah; anything else is already formatted by
// the client and returned unchanged.
func DisplayPrice(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return s
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return s
	}
	return FormatRupiah(n)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
