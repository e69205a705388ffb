package dashboard_test

import (
	"testing"
	"time"

	"github.com/gnames/kardex/pkg/roster"
	"github.com/stretchr/testify/require"
)

// person builds a roster person with an optional dob.
func person(id, famID int, sex roster.Sex, dob *time.Time) roster.Person {
	return roster.Person{
		ID:        id,
		FamilyID:  famID,
		FirstName: "First",
		LastName:  "Last",
		Sex:       sex,
		DOB:       dob,
	}
}

func newRoster(
	t *testing.T,
	fams []roster.Family,
	pers []roster.Person,
) *roster.Roster {
	t.Helper()
	r, err := roster.New(fams, pers)
	require.NoError(t, err)
	return r
}

func ids[T any](items []T, id func(T) int) []int {
	res := make([]int, len(items))
	for i, v := range items {
		res[i] = id(v)
	}
	return res
}
