package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock returns the current instant. Tests swap it for a fixed time.
var Clock = time.Now

// LocalDateString returns today's calendar date in loc as YYYY-MM-DD.
func LocalDateString(loc *time.Location) string {
	return DateToLocalString(Clock(), loc)
}

// DateToLocalString renders t as the YYYY-MM-DD date a wall clock in loc
// shows. A nil loc means time.Local.
func DateToLocalString(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// FormatDateSafe turns "2024-03-05" into "05/03/2024". Strings that already
// contain "/" are returned untouched, and so is anything it cannot read.
// The components are read directly so no time zone can move the day.
func FormatDateSafe(dateString string) string {
	if strings.Contains(dateString, "/") {
		return dateString
	}
	y, m, d, ok := splitDate(dateString)
	if !ok {
		return dateString
	}
	return fmt.Sprintf("%02d/%02d/%04d", d, m, y)
}

// ValidDate reports whether s is a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	y, m, d, ok := splitDate(s)
	if !ok {
		return false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return t.Year() == y && int(t.Month()) == m && t.Day() == d
}

func splitDate(s string) (y, m, d int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var err error
	if y, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, false
	}
	if m, err = strconv.Atoi(parts[1]); err != nil || m < 1 || m > 12 {
		return 0, 0, 0, false
	}
	if d, err = strconv.Atoi(parts[2]); err != nil || d < 1 || d > 31 {
		return 0, 0, 0, false
	}
	return y, m, d, true
}
