package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformedDate is returned when a date string is not a valid YYYY-MM-DD
// calendar date. Callers decide on fallback behavior; nothing here silently
// passes bad input through.
var ErrMalformedDate = errors.New("malformed date, expected YYYY-MM-DD")

// dateLayout is the wire format for all calendar dates in the API.
const dateLayout = "2006-01-02"

// ParseDate parses a strict YYYY-MM-DD date into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return t.UTC(), nil
}

// FormatDate renders a date in the YYYY-MM-DD wire format.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// AlignToQuarterStart returns the first day of the calendar quarter containing
// d: Jan–Mar → Jan 1, Apr–Jun → Apr 1, Jul–Sep → Jul 1, Oct–Dec → Oct 1.
// UTC calendar fields are used exclusively so timezones cannot shift the
// result across a quarter boundary.
func AlignToQuarterStart(d time.Time) time.Time {
	year, month, _ := d.UTC().Date()
	quarterMonth := time.Month((int(month)-1)/3*3 + 1)
	return time.Date(year, quarterMonth, 1, 0, 0, 0, 0, time.UTC)
}

// DerivedDates computes the two dates that are pure functions of a group's
// start date: the end date (day before the first anniversary) and the
// registration deadline (start + 17 days). Calendar arithmetic, not fixed day
// counts, so the anniversary contract holds across leap years.
func DerivedDates(start time.Time) (endDate, registrationDeadline time.Time) {
	start = start.UTC()
	return start.AddDate(1, 0, -1), start.AddDate(0, 0, 17)
}

// GroupName derives the display name for a group starting on the given
// (already aligned) date. A non-blank override is used verbatim.
func GroupName(start time.Time, override string) string {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		return trimmed
	}
	start = start.UTC()
	return fmt.Sprintf("Bible Bus %s %d Travelers", start.Month().String(), start.Year())
}
