package ioimport_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/internal/ioimport"
	"github.com/gnames/kardex/internal/iosqlite"
	"github.com/gnames/kardex/internal/iotesting"
	"github.com/gnames/kardex/pkg/config"
	"github.com/gnames/kardex/pkg/errcode"
	"github.com/gnames/kardex/pkg/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rosterYAML = `
families:
  - label: Dupont family
    rooms: ["12", "14"]
    arrival: 2023-05-10
    phones: ["0601020304", "None"]
    persons:
      - first_name: Marie
        last_name: Dupont
        dob: 29/02/1980
        sex: femme
      - first_name: Leo
        last_name: Dupont
        dob: 2024-01-15
        sex: M
  - id: 7
    label: None
    rooms: ["53"]
    persons:
      - first_name: Ana
        last_name: Lopez
        sex: ""
`

const rosterJSON = `{"families": [{"label": "Martin", "arrival": "01/03/2024",
  "persons": [{"first_name": "Jean", "last_name": "Martin", "sex": "homme"}]}]}`

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "expected *gn.Error, got %T", err)
	return gnErr.Code
}

func TestParseYAML(t *testing.T) {
	hh, err := ioimport.Parse("roster.yaml", []byte(rosterYAML))
	require.NoError(t, err)
	require.Len(t, hh, 2)

	f := hh[0].Family
	assert.Equal(t, "Dupont family", f.Label)
	assert.Equal(t, "12 & 14", f.RoomsText())
	assert.Equal(t, "0601020304", f.PhonesText())
	assert.Equal(t, roster.DatePtr(2023, 5, 10), f.Arrival)
	assert.True(t, f.Active())

	require.Len(t, hh[0].Members, 2)
	assert.Equal(t, roster.DatePtr(1980, 2, 29), hh[0].Members[0].DOB)
	assert.Equal(t, roster.Female, hh[0].Members[0].Sex)
	assert.Equal(t, roster.Male, hh[0].Members[1].Sex)

	assert.Equal(t, 7, hh[1].Family.ID)
	assert.Equal(t, "Family 7", hh[1].Family.DisplayLabel())
	assert.Nil(t, hh[1].Members[0].DOB)
	assert.Equal(t, roster.Other, hh[1].Members[0].Sex)
}

func TestParseJSON(t *testing.T) {
	hh, err := ioimport.Parse("roster.json", []byte(rosterJSON))
	require.NoError(t, err)
	require.Len(t, hh, 1)
	assert.Equal(t, roster.DatePtr(2024, 3, 1), hh[0].Family.Arrival)
	assert.Equal(t, roster.Male, hh[0].Members[0].Sex)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		msg  string
		data string
		code gn.ErrorCode
	}{
		{"not yaml", "families: [", errcode.ImportParseError},
		{
			"bad arrival",
			"families:\n  - label: A\n    arrival: 2023-13-45\n",
			errcode.ImportRecordError,
		},
		{
			"bad dob",
			"families:\n  - persons:\n      - {first_name: A, last_name: B, dob: 31/02/2020}\n",
			errcode.ImportRecordError,
		},
		{
			"empty name",
			"families:\n  - persons:\n      - {first_name: A}\n",
			errcode.ImportRecordError,
		},
		{
			"three rooms",
			"families:\n  - rooms: [\"1\", \"2\", \"3\"]\n",
			errcode.ImportRecordError,
		},
	}

	for _, v := range tests {
		_, err := ioimport.Parse("roster.yaml", []byte(v.data))
		assert.Equal(t, v.code, errCode(t, err), v.msg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	_, err := ioimport.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, errcode.ImportReadError, errCode(t, err))
}

func TestImport(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	ctx := context.Background()
	dir := t.TempDir()
	path := iotesting.WriteTempFile(t, dir, "roster.yaml", rosterYAML)

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabasePath(filepath.Join(dir, "kardex.db")),
	})
	st := iosqlite.New()
	require.NoError(t, st.Connect(ctx, &cfg.Database))
	defer st.Close()
	require.NoError(t, st.Migrate(ctx))

	hh, err := ioimport.Load(path)
	require.NoError(t, err)

	stats, err := ioimport.New(st, false).Import(ctx, hh)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Families)
	assert.Equal(t, 3, stats.Persons)

	r, err := st.ActiveRoster(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())
	assert.Len(t, r.Members(7), 1)
	assert.Equal(t, 2, r.Occupancy(1))
}
