package dashboard_test

import (
	"testing"

	"github.com/gnames/kardex/pkg/dashboard"
	"github.com/gnames/kardex/pkg/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func members(famID, firstID, n int) []roster.Person {
	res := make([]roster.Person, n)
	for i := range n {
		res[i] = person(firstID+i, famID, roster.Other, nil)
	}
	return res
}

func TestCapacityPolicy(t *testing.T) {
	p := dashboard.DefaultCapacityPolicy()
	assert.Equal(t, 8, p.Capacity("53"))
	assert.Equal(t, 8, p.Capacity(" 54 "))
	assert.Equal(t, 3, p.Capacity("12"))
	assert.Equal(t, 0, p.TotalCapacity(nil))
	assert.Equal(t, 11, p.TotalCapacity([]string{"12", "53"}))

	rooms := []string{"7"}
	custom := dashboard.NewCapacityPolicy(rooms, 6, 2)
	rooms[0] = "8"
	assert.Equal(t, 6, custom.Capacity("7"))
	assert.Equal(t, 2, custom.Capacity("8"))
}

func TestOvercrowded(t *testing.T) {
	ref := d(2024, 6, 15)
	fams := []roster.Family{
		{ID: 1, Rooms: []string{"12"}},
		{ID: 2, Rooms: []string{"13"}},
		{ID: 3, Rooms: []string{"53"}},
		{ID: 4},
		{ID: 5, Rooms: []string{"14", "53"}},
		{ID: 6, Rooms: []string{"15", "16"}},
	}
	var pers []roster.Person
	pers = append(pers, members(1, 100, 4)...)
	pers = append(pers, members(2, 200, 3)...)
	pers = append(pers, members(3, 300, 8)...)
	pers = append(pers, members(4, 400, 10)...)
	pers = append(pers, members(5, 500, 11)...)
	pers = append(pers, members(6, 600, 7)...)
	r := newRoster(t, fams, pers)

	res := dashboard.DetectAlerts(r, ref, dashboard.DefaultCapacityPolicy())

	require.Len(t, res.Overcrowded, 2)
	assert.Equal(t, 1, res.Overcrowded[0].Family.ID)
	assert.Equal(t, 4, res.Overcrowded[0].Members)
	assert.Equal(t, 3, res.Overcrowded[0].Capacity)
	assert.Equal(t, 6, res.Overcrowded[1].Family.ID)
	assert.Equal(t, 6, res.Overcrowded[1].Capacity)

	// a custom policy makes room 12 large
	policy := dashboard.NewCapacityPolicy([]string{"12"}, 4, 3)
	res = dashboard.DetectAlerts(r, ref, policy)
	require.Len(t, res.Overcrowded, 3)
	assert.Equal(t, []int{3, 5, 6}, []int{
		res.Overcrowded[0].Family.ID,
		res.Overcrowded[1].Family.ID,
		res.Overcrowded[2].Family.ID,
	})
}

func TestIsolatedWomen(t *testing.T) {
	ref := d(2024, 6, 15)
	fams := []roster.Family{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}
	pers := []roster.Person{
		// alone with a baby
		person(1, 1, roster.Female, dp(1994, 1, 1)),
		person(2, 1, roster.Male, dp(2024, 1, 1)),
		// couple
		person(3, 2, roster.Female, dp(1994, 1, 1)),
		person(4, 2, roster.Male, dp(1984, 1, 1)),
		// two women and a boy
		person(5, 3, roster.Female, dp(1970, 1, 1)),
		person(6, 3, roster.Male, dp(2014, 1, 1)),
		person(7, 3, roster.Female, dp(2000, 1, 1)),
		// man with unknown age does not count
		person(8, 4, roster.Female, dp(1990, 1, 1)),
		person(9, 4, roster.Male, nil),
		// woman with unknown age is not flagged
		person(10, 5, roster.Female, nil),
	}
	r := newRoster(t, fams, pers)

	res := dashboard.DetectAlerts(r, ref, dashboard.DefaultCapacityPolicy())

	assert.Equal(t, []int{1, 5, 7, 8}, ids(res.IsolatedWomen, personAgeID))
	assert.Equal(t, 30, res.IsolatedWomen[0].Age)
}

func TestIsolatedWomanAdultMaleClears(t *testing.T) {
	ref := d(2024, 6, 15)
	fams := []roster.Family{{ID: 1}}
	woman := person(1, 1, roster.Female, dp(1994, 1, 1))

	r := newRoster(t, fams, []roster.Person{woman})
	res := dashboard.DetectAlerts(r, ref, dashboard.DefaultCapacityPolicy())
	assert.Equal(t, []int{1}, ids(res.IsolatedWomen, personAgeID))

	man := person(2, 1, roster.Male, dp(1984, 1, 1))
	r = newRoster(t, fams, []roster.Person{woman, man})
	res = dashboard.DetectAlerts(r, ref, dashboard.DefaultCapacityPolicy())
	assert.Empty(t, res.IsolatedWomen)
}

func TestInfants(t *testing.T) {
	ref := d(2024, 6, 15)
	fams := []roster.Family{{ID: 1}, {ID: 2}}
	pers := []roster.Person{
		person(1, 2, roster.Male, dp(2023, 6, 16)),   // 11 months
		person(2, 1, roster.Female, dp(2023, 6, 15)), // 1 year today
		person(3, 1, roster.Female, dp(2024, 6, 15)), // born today
		person(4, 1, roster.Female, dp(2024, 7, 1)),  // future
		person(5, 1, roster.Male, nil),
	}
	r := newRoster(t, fams, pers)

	res := dashboard.DetectAlerts(r, ref, dashboard.DefaultCapacityPolicy())

	assert.Equal(t, []int{1, 3}, ids(res.Infants, personAgeID))
	assert.Equal(t, "11 months", res.Infants[0].Text)
}
