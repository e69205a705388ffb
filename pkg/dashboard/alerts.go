package dashboard

import (
	"time"

	"github.com/gnames/kardex/pkg/roster"
)

// Overcrowding is a family with more members than its rooms can hold.
type Overcrowding struct {
	Family   roster.Family `json:"family"`
	Members  int           `json:"members"`
	Capacity int           `json:"capacity"`
}

// Alerts groups the safety and capacity alerts of a roster.
type Alerts struct {
	Overcrowded   []Overcrowding `json:"overcrowded"`
	IsolatedWomen []PersonAge    `json:"isolated_women"`
	Infants       []PersonAge    `json:"infants"`
}

// DetectAlerts flags overcrowded families, adult women without an adult
// man in their family, and infants under one year. Families are evaluated
// in roster order, infants are listed in roster order.
func DetectAlerts(
	r *roster.Roster,
	ref time.Time,
	policy CapacityPolicy,
) Alerts {
	res := Alerts{
		Overcrowded:   []Overcrowding{},
		IsolatedWomen: []PersonAge{},
		Infants:       []PersonAge{},
	}

	for _, f := range r.Families() {
		rooms := f.AssignedRooms()
		n := r.Occupancy(f.ID)
		capacity := policy.TotalCapacity(rooms)
		if len(rooms) > 0 && n > capacity {
			res.Overcrowded = append(res.Overcrowded, Overcrowding{
				Family:   f,
				Members:  n,
				Capacity: capacity,
			})
		}
		res.IsolatedWomen = append(res.IsolatedWomen,
			isolatedWomen(r.Members(f.ID), ref)...)
	}

	for _, p := range r.Persons() {
		if age, ok := AgeYears(p.DOB, ref); ok && age == 0 {
			res.Infants = append(res.Infants, PersonAge{
				Person: p, Age: age, Text: AgeText(p.DOB, ref),
			})
		}
	}
	return res
}

// isolatedWomen returns adult females of one family when it has no adult
// male. Members with unknown age are ignored.
func isolatedWomen(members []roster.Person, ref time.Time) []PersonAge {
	var women []PersonAge
	for _, p := range members {
		age, ok := AgeYears(p.DOB, ref)
		if !ok || !IsAdult(age) {
			continue
		}
		switch p.Sex {
		case roster.Male:
			return nil
		case roster.Female:
			women = append(women, PersonAge{
				Person: p, Age: age, Text: AgeText(p.DOB, ref),
			})
		}
	}
	return women
}
