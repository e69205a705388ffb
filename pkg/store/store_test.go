package store_test

import (
	"testing"

	"github.com/gnames/kardex/pkg/roster"
	"github.com/gnames/kardex/pkg/store"
	"github.com/stretchr/testify/assert"
)

func families() []roster.Family {
	return []roster.Family{
		{ID: 1, Label: "Dupont", Rooms: []string{"12"},
			Arrival: roster.DatePtr(2023, 1, 10)},
		{ID: 2, Label: "Martin", Rooms: []string{"53", "54"},
			Arrival: roster.DatePtr(2024, 3, 1)},
		{ID: 3, Label: "", Rooms: []string{"21"}},
		{ID: 4, Label: "Durand", Rooms: []string{"120"},
			Arrival:   roster.DatePtr(2023, 1, 10),
			Departure: roster.DatePtr(2024, 6, 1)},
	}
}

func ids(ff []roster.Family) []int {
	res := make([]int, len(ff))
	for i := range ff {
		res[i] = ff[i].ID
	}
	return res
}

func TestFamilyFilterMatch(t *testing.T) {
	tests := []struct {
		msg    string
		filter store.FamilyFilter
		res    []int
	}{
		{"no filter", store.FamilyFilter{}, []int{1, 2, 3, 4}},
		{"room substring", store.FamilyFilter{Room: "12"}, []int{1, 4}},
		{"second room", store.FamilyFilter{Room: "54"}, []int{2}},
		{"label case", store.FamilyFilter{Label: "du"}, []int{1, 4}},
		{"active only", store.FamilyFilter{ActiveOnly: true}, []int{1, 2, 3}},
		{
			"arrival from",
			store.FamilyFilter{ArrivedFrom: roster.DatePtr(2024, 1, 1)},
			[]int{2},
		},
		{
			"arrival inclusive range",
			store.FamilyFilter{
				ArrivedFrom: roster.DatePtr(2023, 1, 10),
				ArrivedTo:   roster.DatePtr(2023, 1, 10),
			},
			[]int{1, 4},
		},
	}

	for _, v := range tests {
		var res []int
		for _, f := range families() {
			if v.filter.Match(f) {
				res = append(res, f.ID)
			}
		}
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestSortFamilies(t *testing.T) {
	ff := families()
	store.SortFamilies(ff)
	assert.Equal(t, []int{2, 4, 1, 3}, ids(ff))
}

func TestFamilyFilterRoomCase(t *testing.T) {
	f := roster.Family{ID: 1, Rooms: []string{"A12"}}
	assert.True(t, store.FamilyFilter{Room: "a12"}.Match(f))
	assert.True(t, store.FamilyFilter{Room: " A1 "}.Match(f))
	assert.False(t, store.FamilyFilter{Room: "b12"}.Match(f))

	r := store.Resident{Person: roster.Person{FamilyID: 1}, Family: f}
	assert.True(t, store.PersonFilter{Room: "a12"}.Match(r))
}

func residentIDs(rr []store.Resident) []int {
	res := make([]int, len(rr))
	for i := range rr {
		res[i] = rr[i].Person.ID
	}
	return res
}

func TestJoinResidents(t *testing.T) {
	pp := []roster.Person{
		{ID: 5, FamilyID: 2, FirstName: "Lina", LastName: "Martin",
			DOB: roster.DatePtr(2024, 1, 10), Phone: "0611"},
		{ID: 1, FamilyID: 1, FirstName: "Marie", LastName: "Dupont",
			DOB: roster.DatePtr(1985, 6, 15), Phone: "0601 02"},
		{ID: 2, FamilyID: 1, FirstName: "Paul", LastName: "Dupont",
			Sex: roster.Sex(9)},
		{ID: 3, FamilyID: 4, FirstName: "Jean", LastName: "Durand"},
		{ID: 4, FamilyID: 99, FirstName: "Lost", LastName: "Person"},
	}

	tests := []struct {
		msg    string
		filter store.PersonFilter
		res    []int
	}{
		{"active residents", store.PersonFilter{}, []int{1, 2, 5}},
		{"archived", store.PersonFilter{Archived: true}, []int{3}},
		{"family", store.PersonFilter{FamilyID: 1}, []int{1, 2}},
		{"last name case", store.PersonFilter{LastName: "dup"}, []int{1, 2}},
		{"first name", store.PersonFilter{FirstName: "LIN"}, []int{5}},
		{
			"dob",
			store.PersonFilter{DOB: roster.DatePtr(1985, 6, 15)},
			[]int{1},
		},
		{
			"family arrival",
			store.PersonFilter{Arrival: roster.DatePtr(2024, 3, 1)},
			[]int{5},
		},
		{"room", store.PersonFilter{Room: "54"}, []int{5}},
		{"phone", store.PersonFilter{Phone: "01 0"}, []int{1}},
		{
			"combined",
			store.PersonFilter{LastName: "dupont", FirstName: "paul"},
			[]int{2},
		},
		{"archived room", store.PersonFilter{Archived: true, Room: "12"}, []int{3}},
	}

	for _, v := range tests {
		res := store.JoinResidents(families(), pp, v.filter)
		assert.Equal(t, v.res, residentIDs(res), v.msg)
	}

	res := store.JoinResidents(families(), pp, store.PersonFilter{FamilyID: 1})
	assert.Equal(t, "Dupont", res[0].Family.Label)
	assert.Equal(t, roster.Other, res[1].Person.Sex)
}
