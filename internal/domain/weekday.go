package domain

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is a day of the week starting from Monday, usable as an index into WeeklyTemplate.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysInWeek is the number of entries in a weekly template.
const DaysInWeek = 7

var weekdayNames = [DaysInWeek]string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// WeekdayOf returns the weekday of the calendar date t.
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday starts from Sunday = 0
	return Weekday((int(t.Weekday()) + 6) % DaysInWeek)
}

// ParseWeekday accepts lowercase or capitalized English day names.
func ParseWeekday(s string) (Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// Valid reports whether w is one of Monday..Sunday.
func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("weekday(%d)", int(w))
	}
	return weekdayNames[w]
}
