package dashboard

import (
	"cmp"
	"slices"
	"time"

	"github.com/gnames/kardex/pkg/roster"
)

// TopN is the length of ranking lists.
const TopN = 5

// PersonAge is a person with the age computed for the reference date.
type PersonAge struct {
	Person roster.Person `json:"person"`
	Age    int           `json:"age"`
	Text   string        `json:"text"`
}

// BucketCount holds Female and Male counts of one age bucket.
type BucketCount struct {
	Bucket AgeBucket `json:"bucket"`
	Female int       `json:"female"`
	Male   int       `json:"male"`
}

// DemographicStats is the demographic breakdown of a roster.
type DemographicStats struct {
	SexCounts    map[roster.Sex]int `json:"sex_counts"`
	AgeMatrix    []BucketCount      `json:"age_matrix"`
	AdultFemales int                `json:"adult_females"`
	AdultMales   int                `json:"adult_males"`
	Girls        int                `json:"girls"`
	Boys         int                `json:"boys"`

	OldestAdults     []PersonAge `json:"oldest_adults"`
	YoungestAdults   []PersonAge `json:"youngest_adults"`
	OldestChildren   []PersonAge `json:"oldest_children"`
	YoungestChildren []PersonAge `json:"youngest_children"`
}

// Demographics counts persons by sex and age bucket and ranks the oldest
// and youngest adults and children. A person without a usable age counts in
// SexCounts only.
func Demographics(r *roster.Roster, ref time.Time) DemographicStats {
	res := DemographicStats{
		SexCounts: make(map[roster.Sex]int, 3),
		AgeMatrix: make([]BucketCount, len(bucketRanges)),
	}
	for _, s := range roster.Sexes() {
		res.SexCounts[s] = 0
	}
	for i, b := range Buckets() {
		res.AgeMatrix[i].Bucket = b
	}

	var adults, children []PersonAge
	for _, p := range r.Persons() {
		res.SexCounts[p.Sex]++

		age, ok := AgeYears(p.DOB, ref)
		if !ok || age < 0 {
			continue
		}
		pa := PersonAge{Person: p, Age: age, Text: AgeText(p.DOB, ref)}
		if IsAdult(age) {
			adults = append(adults, pa)
		} else {
			children = append(children, pa)
		}

		if p.Sex == roster.Other {
			continue
		}
		row := &res.AgeMatrix[BucketFor(age)]
		female := p.Sex == roster.Female
		switch {
		case female && IsAdult(age):
			row.Female++
			res.AdultFemales++
		case female:
			row.Female++
			res.Girls++
		case IsAdult(age):
			row.Male++
			res.AdultMales++
		default:
			row.Male++
			res.Boys++
		}
	}

	res.OldestAdults = topByAge(adults, true)
	res.YoungestAdults = topByAge(adults, false)
	res.OldestChildren = topByAge(children, true)
	res.YoungestChildren = topByAge(children, false)
	return res
}

// topByAge sorts a copy of pp by age and keeps TopN entries. The sort is
// stable so equal ages stay in roster order.
func topByAge(pp []PersonAge, oldest bool) []PersonAge {
	res := slices.Clone(pp)
	slices.SortStableFunc(res, func(a, b PersonAge) int {
		if oldest {
			return cmp.Compare(b.Age, a.Age)
		}
		return cmp.Compare(a.Age, b.Age)
	})
	if len(res) > TopN {
		res = res[:TopN]
	}
	if res == nil {
		res = []PersonAge{}
	}
	return res
}
