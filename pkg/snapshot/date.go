package snapshot

import (
	"fmt"
	"time"
)

// DateFormat is the snapshot date layout. Dates are strict: zero-padded
// ISO calendar dates only.
const DateFormat = "2006-01-02"

// ParseDate parses a strict YYYY-MM-DD snapshot date. The round-trip
// check rejects inputs the time package would otherwise accept, such as
// unpadded months.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	if t.Format(DateFormat) != s {
		return time.Time{}, fmt.Errorf("date %q is not in YYYY-MM-DD form", s)
	}
	return t, nil
}

// ValidDate reports whether s is a well-formed snapshot date.
func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}
