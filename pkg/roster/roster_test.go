package roster_test

import (
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/pkg/errcode"
	"github.com/gnames/kardex/pkg/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	fams := []roster.Family{
		{ID: 1, Label: "Dupont", Rooms: []string{"12"}},
		{ID: 2},
	}
	pers := []roster.Person{
		{ID: 10, FamilyID: 2, FirstName: "Ana", LastName: "Lima"},
		{ID: 11, FamilyID: 1, FirstName: "Marie", LastName: "Dupont"},
		{ID: 12, FamilyID: 1, FirstName: "Paul", LastName: "Dupont"},
	}

	r, err := roster.New(fams, pers)
	require.NoError(t, err)

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 2, r.Occupancy(1))
	assert.Equal(t, 1, r.Occupancy(2))
	assert.Equal(t, 0, r.Occupancy(3))

	members := r.Members(1)
	require.Len(t, members, 2)
	assert.Equal(t, 11, members[0].ID)
	assert.Equal(t, 12, members[1].ID)

	f, ok := r.Family(1)
	assert.True(t, ok)
	assert.Equal(t, "Dupont", f.Label)
	_, ok = r.Family(42)
	assert.False(t, ok)

	// input slices are copied
	pers[0].FirstName = "Changed"
	assert.Equal(t, "Ana", r.Persons()[0].FirstName)
}

func TestNewInvalid(t *testing.T) {
	left := roster.DatePtr(2024, 1, 1)
	tests := []struct {
		msg  string
		fams []roster.Family
		pers []roster.Person
	}{
		{
			msg:  "archived family",
			fams: []roster.Family{{ID: 1, Departure: left}},
		},
		{
			msg:  "duplicate family",
			fams: []roster.Family{{ID: 1}, {ID: 1}},
		},
		{
			msg:  "three rooms",
			fams: []roster.Family{{ID: 1, Rooms: []string{"1", "2", "3"}}},
		},
		{
			msg:  "unknown family",
			fams: []roster.Family{{ID: 1}},
			pers: []roster.Person{
				{ID: 1, FamilyID: 2, FirstName: "A", LastName: "B"},
			},
		},
		{
			msg:  "duplicate person",
			fams: []roster.Family{{ID: 1}},
			pers: []roster.Person{
				{ID: 1, FamilyID: 1, FirstName: "A", LastName: "B"},
				{ID: 1, FamilyID: 1, FirstName: "C", LastName: "D"},
			},
		},
		{
			msg:  "missing last name",
			fams: []roster.Family{{ID: 1}},
			pers: []roster.Person{
				{ID: 1, FamilyID: 1, FirstName: "A", LastName: " "},
			},
		},
	}

	for _, v := range tests {
		_, err := roster.New(v.fams, v.pers)
		require.Error(t, err, v.msg)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, errcode.RosterInvalidError, gnErr.Code, v.msg)
	}
}

func TestNewUnknownSex(t *testing.T) {
	fams := []roster.Family{{ID: 1}}
	pers := []roster.Person{
		{ID: 1, FamilyID: 1, FirstName: "A", LastName: "B", Sex: roster.Sex(7)},
		{ID: 2, FamilyID: 1, FirstName: "C", LastName: "D", Sex: roster.Sex(-1)},
		{ID: 3, FamilyID: 1, FirstName: "E", LastName: "F", Sex: roster.Male},
	}

	r, err := roster.New(fams, pers)
	require.NoError(t, err)
	got := r.Persons()
	assert.Equal(t, roster.Other, got[0].Sex)
	assert.Equal(t, roster.Other, got[1].Sex)
	assert.Equal(t, roster.Male, got[2].Sex)

	// input is left untouched
	assert.Equal(t, roster.Sex(7), pers[0].Sex)

	assert.True(t, roster.Female.Valid())
	assert.False(t, roster.Sex(3).Valid())
}

func TestEmpty(t *testing.T) {
	r := roster.Empty()
	require.NotNil(t, r)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Families())
}

func TestFamilyText(t *testing.T) {
	f := roster.Family{
		ID:     7,
		Label:  "None",
		Rooms:  []string{"12", " ", "14"},
		Phones: []string{"0601", "None"},
	}
	assert.Equal(t, "Family 7", f.DisplayLabel())
	assert.Equal(t, "12 & 14", f.RoomsText())
	assert.Equal(t, "0601", f.PhonesText())
	assert.Equal(t, []string{"12", "14"}, f.AssignedRooms())
	assert.True(t, f.Active())

	f.Label = " Martin "
	assert.Equal(t, "Martin", f.DisplayLabel())
}

func TestParseSex(t *testing.T) {
	tests := []struct {
		input string
		res   roster.Sex
	}{
		{"F", roster.Female},
		{" female ", roster.Female},
		{"m", roster.Male},
		{"Homme", roster.Male},
		{"Autre/NP", roster.Other},
		{"", roster.Other},
		{"x", roster.Other},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, roster.ParseSex(v.input), v.input)
	}

	var s roster.Sex
	require.NoError(t, s.UnmarshalText([]byte("M")))
	assert.Equal(t, roster.Male, s)
	b, err := roster.Other.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Other/Unknown", string(b))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		msg   string
		input string
		res   string
		isNil bool
		err   bool
	}{
		{msg: "iso", input: "2024-06-15", res: "15/06/2024"},
		{msg: "french", input: "15/06/2024", res: "15/06/2024"},
		{msg: "trimmed", input: " 2024-02-29 ", res: "29/02/2024"},
		{msg: "no leading zeros", input: "5/6/2024", res: "05/06/2024"},
		{msg: "mixed padding", input: "05/6/2024", res: "05/06/2024"},
		{msg: "empty", input: "", isNil: true},
		{msg: "bad day", input: "2023-02-29", err: true},
		{msg: "garbage", input: "yesterday", err: true},
		{msg: "us order", input: "06/15/2024", err: true},
	}

	for _, v := range tests {
		d, err := roster.ParseDate(v.input)
		if v.err {
			require.Error(t, err, v.msg)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok, v.msg)
			assert.Equal(t, errcode.RosterDateError, gnErr.Code, v.msg)
			continue
		}
		require.NoError(t, err, v.msg)
		if v.isNil {
			assert.Nil(t, d, v.msg)
			continue
		}
		assert.Equal(t, v.res, roster.FormatDate(d), v.msg)
	}
}
