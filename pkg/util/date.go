package util

import (
	"strconv"
	"time"
)

// ISODate is the date layout used by tables and the analyze JSON payload.
const ISODate = "2006-01-02"

// FormatDate renders t as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format(ISODate)
}

// ParseUnixSeconds parses a decimal unix-seconds string as used by the
// trends timeline payload. Returns (t, true) on success.
func ParseUnixSeconds(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ts <= 0 {
		return time.Time{}, false
	}
	return time.Unix(ts, 0).UTC(), true
}

// DaysBack returns the calendar day n days before end, truncated to midnight UTC.
func DaysBack(end time.Time, n int) time.Time {
	return end.UTC().Truncate(24*time.Hour).AddDate(0, 0, -n)
}
