package utils

import (
	"strings"
)

// FirstNonEmpty returns the first value that is not blank after trimming.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// Safe returns def when s is blank.
func Safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
