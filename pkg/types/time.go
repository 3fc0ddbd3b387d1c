package types

import "time"

// Timestamp and date formats used throughout the store and exports.
// Timestamps carry a fixed numeric zone offset; dates are bare.
const (
	TimeLayout = "2006-01-02 15:04:05-0700"
	DateLayout = "2006-01-02"
)

// FormatTime renders t in the canonical timestamp layout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime parses a canonical timestamp string.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}

// ValidDate reports whether s is a well-formed date string.
// The empty string is accepted and means "no date".
func ValidDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
