package dashboard

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/gnames/kardex/pkg/roster"
)

// FamilyTenure is a family with the time elapsed since its arrival.
type FamilyTenure struct {
	FamilyID int    `json:"family_id"`
	Label    string `json:"label"`
	Days     int    `json:"days"`
	Text     string `json:"text"`
}

// TenureRanks lists families that have stayed the longest and those that
// arrived most recently.
type TenureRanks struct {
	Oldest []FamilyTenure `json:"oldest"`
	Recent []FamilyTenure `json:"recent"`
}

// DaysSince returns days from arrival to today, 0 when arrival is unknown.
func DaysSince(arrival *time.Time, today time.Time) int {
	if arrival == nil {
		return 0
	}
	return daysBetween(roster.Day(*arrival), roster.Day(today))
}

// TenureText humanizes the stay, e.g. "(1 years and 2 months and 3 days)".
func TenureText(arrival *time.Time, today time.Time) string {
	if arrival == nil {
		return "(0 day)"
	}
	s := Elapsed(*arrival, today)
	return fmt.Sprintf("(%d years and %d months and %d days)",
		s.Years, s.Months, s.Days)
}

// Tenure ranks active families by arrival date. Families with unknown
// arrival come last in both lists; ties are broken by family ID, ascending
// for Oldest and descending for Recent.
func Tenure(r *roster.Roster, today time.Time) TenureRanks {
	fams := r.Families()

	oldest := slices.Clone(fams)
	slices.SortStableFunc(oldest, func(a, b roster.Family) int {
		if c := compareArrival(a.Arrival, b.Arrival, false); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	recent := slices.Clone(fams)
	slices.SortStableFunc(recent, func(a, b roster.Family) int {
		if c := compareArrival(a.Arrival, b.Arrival, true); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return TenureRanks{
		Oldest: tenureList(oldest, today),
		Recent: tenureList(recent, today),
	}
}

// compareArrival orders by (known, date): known dates come first whatever
// the direction, and desc only reverses the order among known dates.
func compareArrival(a, b *time.Time, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case desc:
		return b.Compare(*a)
	default:
		return a.Compare(*b)
	}
}

func tenureList(fams []roster.Family, today time.Time) []FamilyTenure {
	if len(fams) > TopN {
		fams = fams[:TopN]
	}
	res := make([]FamilyTenure, len(fams))
	for i, f := range fams {
		res[i] = FamilyTenure{
			FamilyID: f.ID,
			Label:    f.DisplayLabel(),
			Days:     DaysSince(f.Arrival, today),
			Text:     TenureText(f.Arrival, today),
		}
	}
	return res
}
