package dashboard

import (
	"slices"
	"time"

	"github.com/gnames/kardex/pkg/roster"
)

// Birthday is one occurrence of a person's birthday. Age is the age the
// person turns on Date.
type Birthday struct {
	Person roster.Person `json:"person"`
	Date   time.Time     `json:"date"`
	Age    int           `json:"age"`
}

// BirthdayWindows classifies birthdays around the reference day. A person
// lands in at most one forward window and at most one backward window, and
// in neither when the birthday is today.
type BirthdayWindows struct {
	Today      []Birthday `json:"today"`
	WeekAhead  []Birthday `json:"week_ahead"`
	MonthAhead []Birthday `json:"month_ahead"`
	WeekPast   []Birthday `json:"week_past"`
	MonthPast  []Birthday `json:"month_past"`
}

// Occurrence returns the birthday of dob in the given year. Birthdays on
// February 29 are observed on February 28 in non-leap years.
func Occurrence(dob time.Time, year int) time.Time {
	_, m, d := dob.Date()
	if last := daysIn(year, m); d > last {
		d = last
	}
	return roster.Date(year, m, d)
}

// Birthdays finds today's birthdays and those of the past and coming week
// and month. The nearest window wins: a birthday within 7 days is never
// repeated in the month list. Persons born after today are skipped.
func Birthdays(r *roster.Roster, today time.Time) BirthdayWindows {
	today = roster.Day(today)
	weekAhead := today.AddDate(0, 0, 7)
	monthAhead := AddMonths(today, 1)
	weekPast := today.AddDate(0, 0, -7)
	monthPast := AddMonths(today, -1)

	res := BirthdayWindows{
		Today:      []Birthday{},
		WeekAhead:  []Birthday{},
		MonthAhead: []Birthday{},
		WeekPast:   []Birthday{},
		MonthPast:  []Birthday{},
	}

	for _, p := range r.Persons() {
		if p.DOB == nil {
			continue
		}
		dob := roster.Day(*p.DOB)
		if dob.After(today) {
			continue
		}
		thisYear := Occurrence(dob, today.Year())
		if thisYear.Equal(today) {
			res.Today = append(res.Today, newBirthday(p, today))
			continue
		}

		next := thisYear
		if !next.After(today) {
			next = Occurrence(dob, today.Year()+1)
		}
		prev := thisYear
		if !prev.Before(today) {
			prev = Occurrence(dob, today.Year()-1)
		}

		switch {
		case !next.After(weekAhead):
			res.WeekAhead = append(res.WeekAhead, newBirthday(p, next))
		case !next.After(monthAhead):
			res.MonthAhead = append(res.MonthAhead, newBirthday(p, next))
		}

		switch {
		case !prev.Before(weekPast):
			res.WeekPast = append(res.WeekPast, newBirthday(p, prev))
		case !prev.Before(monthPast):
			res.MonthPast = append(res.MonthPast, newBirthday(p, prev))
		}
	}

	ascending := func(a, b Birthday) int { return a.Date.Compare(b.Date) }
	descending := func(a, b Birthday) int { return b.Date.Compare(a.Date) }
	slices.SortStableFunc(res.WeekAhead, ascending)
	slices.SortStableFunc(res.MonthAhead, ascending)
	slices.SortStableFunc(res.WeekPast, descending)
	slices.SortStableFunc(res.MonthPast, descending)
	return res
}

func newBirthday(p roster.Person, on time.Time) Birthday {
	age, _ := AgeYears(p.DOB, on)
	return Birthday{Person: p, Date: on, Age: age}
}
