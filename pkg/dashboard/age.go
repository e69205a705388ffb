package dashboard

import (
	"fmt"
	"time"

	"github.com/gnames/kardex/pkg/roster"
)

// UnknownDays is returned by AgeDays when the date of birth is absent.
const UnknownDays = -1

// AdultAge is the first age considered adult.
const AdultAge = 18

// Span is a calendar-aware breakdown of an interval.
type Span struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// Elapsed returns the calendar breakdown of the interval from..to. Whole
// months are counted by adding months to from (clamping the day to the end
// of a shorter month), the remainder is expressed in days. When to is before
// from all components are negated.
func Elapsed(from, to time.Time) Span {
	from, to = roster.Day(from), roster.Day(to)
	if to.Before(from) {
		s := Elapsed(to, from)
		return Span{Years: -s.Years, Months: -s.Months, Days: -s.Days}
	}

	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	anchor := AddMonths(from, months)
	if anchor.After(to) {
		months--
		anchor = AddMonths(from, months)
	}
	return Span{
		Years:  months / 12,
		Months: months % 12,
		Days:   daysBetween(anchor, to),
	}
}

// AddMonths shifts the calendar month of t by n, clamping the day of month
// to the last valid day of the resulting month (Jan 31 + 1 month = Feb 28).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	y += floorDiv(total, 12)
	month := time.Month(total - floorDiv(total, 12)*12 + 1)
	if last := daysIn(y, month); d > last {
		d = last
	}
	return roster.Date(y, month, d)
}

// AgeYears returns whole elapsed calendar years between dob and ref. The
// boolean is false when dob is absent. A dob after ref gives a negative age.
func AgeYears(dob *time.Time, ref time.Time) (int, bool) {
	if dob == nil {
		return 0, false
	}
	birth, day := roster.Day(*dob), roster.Day(ref)
	if !birth.After(day) {
		return Elapsed(birth, day).Years, true
	}
	s := Elapsed(day, birth)
	if s.Months == 0 && s.Days == 0 {
		return -s.Years, true
	}
	return -s.Years - 1, true
}

// AgeDays returns the exact number of days from dob to ref, or UnknownDays.
func AgeDays(dob *time.Time, ref time.Time) int {
	if dob == nil {
		return UnknownDays
	}
	return daysBetween(roster.Day(*dob), roster.Day(ref))
}

// AgeText humanizes an age: years if at least one, else months if at least
// one, else days. Empty for an absent or future dob.
func AgeText(dob *time.Time, ref time.Time) string {
	if dob == nil || roster.Day(*dob).After(roster.Day(ref)) {
		return ""
	}
	s := Elapsed(*dob, ref)
	switch {
	case s.Years >= 1:
		return plural(s.Years, "year")
	case s.Months >= 1:
		return plural(s.Months, "month")
	default:
		return plural(s.Days, "day")
	}
}

// IsAdult is true for ages of AdultAge and above.
func IsAdult(age int) bool {
	return age >= AdultAge
}

func plural(n int, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss", n, unit)
	}
	return fmt.Sprintf("%d %s", n, unit)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func daysIn(y int, m time.Month) int {
	return roster.Date(y, m+1, 0).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
