package iosqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/internal/iosqlite"
	"github.com/gnames/kardex/pkg/config"
	"github.com/gnames/kardex/pkg/dashboard"
	"github.com/gnames/kardex/pkg/errcode"
	"github.com/gnames/kardex/pkg/roster"
	"github.com/gnames/kardex/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) store.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	ctx := context.Background()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePath(filepath.Join(t.TempDir(), "kardex.db")),
	})

	st := iosqlite.New()
	require.NoError(t, st.Connect(ctx, &cfg.Database))
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(ctx))
	return st
}

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "expected *gn.Error, got %T", err)
	return gnErr.Code
}

func TestConnectEmptyPath(t *testing.T) {
	st := iosqlite.New()
	err := st.Connect(context.Background(), &config.DatabaseConfig{})
	assert.Equal(t, errcode.DBConnectionError, errCode(t, err))
}

func TestNotConnected(t *testing.T) {
	st := iosqlite.New()
	_, err := st.ActiveRoster(context.Background())
	assert.Equal(t, errcode.DBNotConnectedError, errCode(t, err))
	_, err = st.Residents(context.Background(), store.PersonFilter{})
	assert.Equal(t, errcode.DBNotConnectedError, errCode(t, err))
	assert.NoError(t, st.Close())
}

func TestMigrateIdempotent(t *testing.T) {
	st := setup(t)
	assert.NoError(t, st.Migrate(context.Background()))
}

func TestAddAndActiveRoster(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	famID, err := st.AddFamily(ctx, roster.Family{
		Label:   "Dupont",
		Rooms:   []string{"12", "None"},
		Arrival: roster.DatePtr(2023, 5, 10),
		Phones:  []string{"0601"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, famID)

	gone, err := st.AddFamily(ctx, roster.Family{
		ID: 10, Label: "Gone", Departure: roster.DatePtr(2024, 1, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, gone)

	marie, err := st.AddPerson(ctx, roster.Person{
		FamilyID: famID, FirstName: "Marie", LastName: "Dupont",
		DOB: roster.DatePtr(1980, 2, 29), Sex: roster.Female,
	})
	require.NoError(t, err)
	_, err = st.AddPerson(ctx, roster.Person{
		FamilyID: famID, FirstName: "Leo", LastName: "Dupont",
		Sex: roster.Other,
	})
	require.NoError(t, err)
	_, err = st.AddPerson(ctx, roster.Person{
		FamilyID: gone, FirstName: "Paul", LastName: "Gone", Sex: roster.Male,
	})
	require.NoError(t, err)

	r, err := st.ActiveRoster(ctx)
	require.NoError(t, err)
	require.Len(t, r.Families(), 1)
	assert.Equal(t, 2, r.Len())

	f := r.Families()[0]
	assert.Equal(t, []string{"12"}, f.Rooms)
	assert.Equal(t, roster.DatePtr(2023, 5, 10), f.Arrival)
	assert.Equal(t, "0601", f.PhonesText())

	p := r.Persons()[0]
	assert.Equal(t, marie, p.ID)
	assert.Equal(t, roster.DatePtr(1980, 2, 29), p.DOB)
	assert.Equal(t, roster.Female, p.Sex)
	assert.Nil(t, r.Persons()[1].DOB)
	assert.Equal(t, roster.Other, r.Persons()[1].Sex)

	snap, err := dashboard.Assemble(r, roster.Date(2024, 2, 28),
		dashboard.DefaultCapacityPolicy())
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Total)
	require.Len(t, snap.Birthdays.Today, 0)
	require.Len(t, snap.Birthdays.WeekAhead, 1)
	assert.Equal(t, roster.Date(2024, 2, 29), snap.Birthdays.WeekAhead[0].Date)
}

func TestAddPersonErrors(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	_, err := st.AddPerson(ctx, roster.Person{
		FamilyID: 42, FirstName: "Ana", LastName: "Lopez",
	})
	assert.Equal(t, errcode.StoreNotFoundError, errCode(t, err))

	id, err := st.AddFamily(ctx, roster.Family{Label: "Lopez"})
	require.NoError(t, err)
	_, err = st.AddPerson(ctx, roster.Person{FamilyID: id, FirstName: "Ana"})
	assert.Equal(t, errcode.RosterInvalidError, errCode(t, err))
}

func TestArchiveAndDelete(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	id, err := st.AddFamily(ctx, roster.Family{Label: "Martin", Rooms: []string{"53"}})
	require.NoError(t, err)
	_, err = st.AddPerson(ctx, roster.Person{
		FamilyID: id, FirstName: "Jean", LastName: "Martin",
	})
	require.NoError(t, err)

	err = st.ArchiveFamily(ctx, 99, roster.Date(2024, 1, 1))
	assert.Equal(t, errcode.StoreNotFoundError, errCode(t, err))

	require.NoError(t, st.ArchiveFamily(ctx, id, roster.Date(2024, 1, 1)))
	r, err := st.ActiveRoster(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())

	all, err := st.Families(ctx, store.FamilyFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Active())

	require.NoError(t, st.DeleteFamily(ctx, id))
	err = st.DeleteFamily(ctx, id)
	assert.Equal(t, errcode.StoreNotFoundError, errCode(t, err))

	// persons were removed with the family, so the id can be reused
	_, err = st.AddFamily(ctx, roster.Family{ID: id, Label: "Again"})
	require.NoError(t, err)
	r, err = st.ActiveRoster(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestFamiliesFilter(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	data := []roster.Family{
		{ID: 1, Label: "Dupont", Rooms: []string{"12"},
			Arrival: roster.DatePtr(2023, 1, 10)},
		{ID: 2, Label: "Martin", Rooms: []string{"53", "54"},
			Arrival: roster.DatePtr(2024, 3, 1)},
		{ID: 3, Rooms: []string{"B7"}},
		{ID: 4, Label: "Durand", Rooms: []string{"120"},
			Arrival:   roster.DatePtr(2023, 1, 10),
			Departure: roster.DatePtr(2024, 6, 1)},
	}
	for _, f := range data {
		_, err := st.AddFamily(ctx, f)
		require.NoError(t, err)
	}

	tests := []struct {
		msg    string
		filter store.FamilyFilter
		res    []int
	}{
		{"all, arrival desc, unknown last", store.FamilyFilter{}, []int{2, 4, 1, 3}},
		{"room", store.FamilyFilter{Room: "12"}, []int{4, 1}},
		{"room case", store.FamilyFilter{Room: "b7"}, []int{3}},
		{"label", store.FamilyFilter{Label: "DU"}, []int{4, 1}},
		{"active", store.FamilyFilter{ActiveOnly: true}, []int{2, 1, 3}},
		{
			"range",
			store.FamilyFilter{
				ArrivedFrom: roster.DatePtr(2023, 1, 1),
				ArrivedTo:   roster.DatePtr(2023, 12, 31),
			},
			[]int{4, 1},
		},
		{"wildcard is literal", store.FamilyFilter{Label: "%"}, nil},
	}

	for _, v := range tests {
		ff, err := st.Families(ctx, v.filter)
		require.NoError(t, err, v.msg)
		var ids []int
		for _, f := range ff {
			ids = append(ids, f.ID)
		}
		assert.Equal(t, v.res, ids, v.msg)
	}
}

func TestResidents(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	fams := []roster.Family{
		{ID: 1, Label: "Dupont", Rooms: []string{"A12"},
			Arrival: roster.DatePtr(2023, 1, 10)},
		{ID: 2, Label: "Martin", Rooms: []string{"53"},
			Arrival: roster.DatePtr(2024, 3, 1)},
		{ID: 3, Label: "Durand", Rooms: []string{"21"},
			Departure: roster.DatePtr(2024, 6, 1)},
	}
	for _, f := range fams {
		_, err := st.AddFamily(ctx, f)
		require.NoError(t, err)
	}
	pers := []roster.Person{
		{FamilyID: 2, FirstName: "Sophie", LastName: "Martin",
			DOB: roster.DatePtr(1990, 1, 1), Sex: roster.Female, Phone: "0611"},
		{FamilyID: 1, FirstName: "Marie", LastName: "Dupont",
			DOB: roster.DatePtr(1985, 6, 15), Sex: roster.Female, Phone: "0601"},
		{FamilyID: 1, FirstName: "Paul", LastName: "Dupont", Sex: roster.Male},
		{FamilyID: 3, FirstName: "Jean", LastName: "Durand", Sex: roster.Male},
	}
	for _, p := range pers {
		_, err := st.AddPerson(ctx, p)
		require.NoError(t, err)
	}

	tests := []struct {
		msg    string
		filter store.PersonFilter
		res    []string
	}{
		{"active", store.PersonFilter{}, []string{"Sophie", "Marie", "Paul"}},
		{"archived", store.PersonFilter{Archived: true}, []string{"Jean"}},
		{"family", store.PersonFilter{FamilyID: 1}, []string{"Marie", "Paul"}},
		{"archived family", store.PersonFilter{FamilyID: 1, Archived: true}, nil},
		{"last name", store.PersonFilter{LastName: "DUP"}, []string{"Marie", "Paul"}},
		{"first name", store.PersonFilter{FirstName: "so"}, []string{"Sophie"}},
		{
			"dob",
			store.PersonFilter{DOB: roster.DatePtr(1985, 6, 15)},
			[]string{"Marie"},
		},
		{
			"arrival",
			store.PersonFilter{Arrival: roster.DatePtr(2024, 3, 1)},
			[]string{"Sophie"},
		},
		{"room case", store.PersonFilter{Room: "a12"}, []string{"Marie", "Paul"}},
		{"phone", store.PersonFilter{Phone: "061"}, []string{"Sophie"}},
		{"wildcard is literal", store.PersonFilter{LastName: "_"}, nil},
	}

	for _, v := range tests {
		rr, err := st.Residents(ctx, v.filter)
		require.NoError(t, err, v.msg)
		var names []string
		for _, r := range rr {
			names = append(names, r.Person.FirstName)
		}
		assert.Equal(t, v.res, names, v.msg)
	}

	rr, err := st.Residents(ctx, store.PersonFilter{FirstName: "marie"})
	require.NoError(t, err)
	require.Len(t, rr, 1)
	assert.Equal(t, "Dupont", rr[0].Family.Label)
	assert.Equal(t, []string{"A12"}, rr[0].Family.Rooms)
	assert.Equal(t, roster.Female, rr[0].Person.Sex)
}

func TestDropAll(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	dropper, ok := st.(store.Dropper)
	require.True(t, ok)

	has, err := dropper.HasTables(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, dropper.DropAll(ctx))
	has, err = dropper.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestOptimize(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	opt, ok := st.(store.Optimizer)
	require.True(t, ok)

	_, err := st.AddFamily(ctx, roster.Family{Label: "Dupont"})
	require.NoError(t, err)
	require.NoError(t, opt.Optimize(ctx))

	ff, err := st.Families(ctx, store.FamilyFilter{})
	require.NoError(t, err)
	assert.Len(t, ff, 1)

	require.NoError(t, st.Close())
	assert.Equal(t, errcode.DBNotConnectedError, errCode(t, opt.Optimize(ctx)))
}
