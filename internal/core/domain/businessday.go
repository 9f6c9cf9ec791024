package domain

import (
	"fmt"
	"time"
)

const DefaultResetHour = 4

const businessDayLayout = "2006-01-02"

// BusinessDay is a calendar date label for a 24h bucket starting at the
// venue's reset hour rather than at midnight.
type BusinessDay struct {
	Year  int
	Month time.Month
	Day   int
}

func (d BusinessDay) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d BusinessDay) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

func (d BusinessDay) AddDays(n int) BusinessDay {
	t := time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC)
	return BusinessDay{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d BusinessDay) Before(other BusinessDay) bool {
	return d.String() < other.String()
}

func ParseBusinessDay(raw string) (BusinessDay, error) {
	t, err := time.Parse(businessDayLayout, raw)
	if err != nil {
		return BusinessDay{}, validationf("invalid business day %q", raw)
	}
	return BusinessDay{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DayResolver maps instants to business days for one venue.
type DayResolver struct {
	Location  *time.Location
	ResetHour int
}

func NewDayResolver(loc *time.Location, resetHour int) DayResolver {
	if loc == nil {
		loc = time.UTC
	}
	if resetHour < 0 || resetHour > 23 {
		resetHour = DefaultResetHour
	}
	return DayResolver{Location: loc, ResetHour: resetHour}
}

// DayOf returns the business day containing t. Local times before the reset
// hour belong to the previous calendar day.
func (r DayResolver) DayOf(t time.Time) BusinessDay {
	local := t.In(r.location())
	if local.Hour() < r.ResetHour {
		local = time.Date(local.Year(), local.Month(), local.Day()-1, 12, 0, 0, 0, r.location())
	}
	return BusinessDay{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

// Bounds returns the half-open instant range [start, end) covered by day.
func (r DayResolver) Bounds(day BusinessDay) (time.Time, time.Time) {
	start := time.Date(day.Year, day.Month, day.Day, r.ResetHour, 0, 0, 0, r.location())
	next := day.AddDays(1)
	end := time.Date(next.Year, next.Month, next.Day, r.ResetHour, 0, 0, 0, r.location())
	return start, end
}

// Days lists every business day touched by [from, to).
func (r DayResolver) Days(from, to time.Time) []BusinessDay {
	if !to.After(from) {
		return nil
	}
	first := r.DayOf(from)
	last := r.DayOf(to.Add(-time.Nanosecond))
	var days []BusinessDay
	for d := first; !last.Before(d); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// MonthBounds covers every business day of the given calendar month.
func (r DayResolver) MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	start, _ := r.Bounds(BusinessDay{Year: year, Month: month, Day: 1})
	firstOfNext := time.Date(year, month+1, 1, 12, 0, 0, 0, time.UTC)
	end, _ := r.Bounds(BusinessDay{Year: firstOfNext.Year(), Month: firstOfNext.Month(), Day: 1})
	return start, end
}

func (r DayResolver) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}
