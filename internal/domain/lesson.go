package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date format for lesson dates and the
// ?date= query parameter.
const DateLayout = "2006-01-02"

// legacyDateLayout is the month/day/year form used by data files written by
// the first version of the storefront. ParseDate still accepts it.
const legacyDateLayout = "01/02/2006"

// Lesson is a class offered over a date range on a weekly schedule.
//
// Username is nil for an open inventory lesson (offered, not yet reserved)
// and set to the booking user's name once reserved.
type Lesson struct {
	ID          int     `json:"id"`
	Username    *string `json:"username"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Days        string  `json:"days"`      // e.g. "MWF", "TuTh", "SatSun"
	StartDate   string  `json:"startDate"` // inclusive
	EndDate     string  `json:"endDate"`   // inclusive
	Price       float64 `json:"price"`
}

// IsOpen reports whether the lesson has not been booked by any user.
func (l Lesson) IsOpen() bool {
	return l.Username == nil
}

// dayCodes maps each schedule code to its weekday. Codes are matched as
// case-insensitive substrings of Lesson.Days, so "tu" selects Tuesday.
var dayCodes = []struct {
	code    string
	weekday time.Weekday
}{
	{"m", time.Monday},
	{"tu", time.Tuesday},
	{"w", time.Wednesday},
	{"th", time.Thursday},
	{"f", time.Friday},
	{"sat", time.Saturday},
	{"sun", time.Sunday},
}

// Weekdays returns the set of weekdays encoded in days.
func Weekdays(days string) map[time.Weekday]bool {
	lower := strings.ToLower(days)
	set := make(map[time.Weekday]bool, len(dayCodes))
	for _, dc := range dayCodes {
		if strings.Contains(lower, dc.code) {
			set[dc.weekday] = true
		}
	}
	return set
}

// ParseDate parses a calendar date in DateLayout, falling back to the legacy
// MM/DD/YYYY form. The result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(legacyDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return t, nil
}

// DateRange parses the lesson's start and end dates.
func (l Lesson) DateRange() (start, end time.Time, err error) {
	start, err = ParseDate(l.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("startDate: %w", err)
	}
	end, err = ParseDate(l.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("endDate: %w", err)
	}
	return start, end, nil
}

// OccursOn reports whether the lesson meets on day: day must fall inside the
// inclusive [StartDate, EndDate] range and on one of the weekdays in Days.
// A lesson whose start date is after its end date never occurs.
// Returns an error only if the lesson's own dates cannot be parsed.
func (l Lesson) OccursOn(day time.Time) (bool, error) {
	start, end, err := l.DateRange()
	if err != nil {
		return false, err
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(start) || day.After(end) {
		return false, nil
	}
	return Weekdays(l.Days)[day.Weekday()], nil
}
