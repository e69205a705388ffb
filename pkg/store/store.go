// Package store defines the persistence contract of kardex. Implementations
// live in internal/iosqlite and internal/iopg.
package store

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/gnames/kardex/pkg/config"
	"github.com/gnames/kardex/pkg/roster"
)

// Store keeps families and persons. Records are created and edited here,
// the dashboard engine only sees the Roster returned by ActiveRoster.
type Store interface {
	// Connect opens the storage described by cfg.
	Connect(ctx context.Context, cfg *config.DatabaseConfig) error

	// Close releases the connection. It is safe to call on a closed store.
	Close() error

	// Migrate creates or updates tables and indexes. It is idempotent.
	Migrate(ctx context.Context) error

	// AddFamily inserts a family and returns its ID. A zero ID lets the
	// storage assign one.
	AddFamily(ctx context.Context, f roster.Family) (int, error)

	// AddPerson inserts a person of an existing family and returns its ID.
	AddPerson(ctx context.Context, p roster.Person) (int, error)

	// ArchiveFamily sets the departure date of a family.
	ArchiveFamily(ctx context.Context, id int, departure time.Time) error

	// DeleteFamily removes a family together with its persons.
	DeleteFamily(ctx context.Context, id int) error

	// Families lists families matching the filter.
	Families(ctx context.Context, f FamilyFilter) ([]roster.Family, error)

	// ActiveRoster returns the families without departure date and their
	// persons, both ordered by ID.
	ActiveRoster(ctx context.Context) (*roster.Roster, error)

	// Residents lists persons matching the filter together with their
	// family, ordered by person ID.
	Residents(ctx context.Context, f PersonFilter) ([]Resident, error)
}

// Dropper is implemented by stores that can remove all their tables.
// It backs `kardex create --force`.
type Dropper interface {
	// HasTables reports whether any table exists.
	HasTables(ctx context.Context) (bool, error)

	// DropAll removes all tables and their data.
	DropAll(ctx context.Context) error
}

// Optimizer is implemented by stores that can reclaim space and refresh
// query planner statistics. It backs `kardex optimize`.
type Optimizer interface {
	Optimize(ctx context.Context) error
}

// FamilyFilter narrows a family listing. Zero values do not filter.
// Results are ordered by arrival descending, unknown arrival last, then by
// ID descending.
type FamilyFilter struct {
	// Room is a case-insensitive substring of either room identifier.
	Room string

	// Label is a case-insensitive substring of the label.
	Label string

	// ArrivedFrom and ArrivedTo bound the arrival date, inclusive.
	// Families with unknown arrival are excluded when either is set.
	ArrivedFrom *time.Time
	ArrivedTo   *time.Time

	// ActiveOnly drops archived families.
	ActiveOnly bool
}

// Match reports whether a family passes the filter. Stores that cannot
// express a condition in their query language use it to post-filter.
func (ff FamilyFilter) Match(f roster.Family) bool {
	if ff.ActiveOnly && !f.Active() {
		return false
	}
	if !roomMatch(f, ff.Room) {
		return false
	}
	if !containsFold(f.Label, ff.Label) {
		return false
	}
	if ff.ArrivedFrom != nil || ff.ArrivedTo != nil {
		if f.Arrival == nil {
			return false
		}
		day := roster.Day(*f.Arrival)
		if ff.ArrivedFrom != nil && day.Before(roster.Day(*ff.ArrivedFrom)) {
			return false
		}
		if ff.ArrivedTo != nil && day.After(roster.Day(*ff.ArrivedTo)) {
			return false
		}
	}
	return true
}

// SortFamilies orders families by arrival descending with unknown arrival
// last, then by ID descending.
func SortFamilies(ff []roster.Family) {
	slices.SortStableFunc(ff, func(a, b roster.Family) int {
		switch {
		case a.Arrival == nil && b.Arrival == nil:
		case a.Arrival == nil:
			return 1
		case b.Arrival == nil:
			return -1
		default:
			if c := b.Arrival.Compare(*a.Arrival); c != 0 {
				return c
			}
		}
		return b.ID - a.ID
	})
}

// Resident is a person with the family it belongs to.
type Resident struct {
	Person roster.Person `json:"person"`
	Family roster.Family `json:"family"`
}

// PersonFilter narrows a resident listing. Zero values do not filter, except
// Archived which picks between active and departed families.
type PersonFilter struct {
	// FamilyID keeps members of one family.
	FamilyID int

	// LastName and FirstName are case-insensitive substrings.
	LastName  string
	FirstName string

	// DOB is the exact date of birth.
	DOB *time.Time

	// Arrival is the exact arrival date of the family.
	Arrival *time.Time

	// Room is a case-insensitive substring of either room of the family.
	Room string

	// Phone is a substring of the person's phone number.
	Phone string

	// Archived lists members of departed families instead of active ones.
	Archived bool
}

// Match reports whether a resident passes the filter.
func (pf PersonFilter) Match(r Resident) bool {
	if pf.Archived == r.Family.Active() {
		return false
	}
	if pf.FamilyID > 0 && r.Person.FamilyID != pf.FamilyID {
		return false
	}
	if !containsFold(r.Person.LastName, pf.LastName) ||
		!containsFold(r.Person.FirstName, pf.FirstName) {
		return false
	}
	if !sameDay(r.Person.DOB, pf.DOB) || !sameDay(r.Family.Arrival, pf.Arrival) {
		return false
	}
	if !roomMatch(r.Family, pf.Room) {
		return false
	}
	if phone := strings.TrimSpace(pf.Phone); phone != "" {
		return strings.Contains(r.Person.Phone, phone)
	}
	return true
}

// JoinResidents pairs persons with their families, keeps those that pass
// the filter and orders them by person ID. Persons whose family is not in
// ff are dropped.
func JoinResidents(
	ff []roster.Family,
	pp []roster.Person,
	filter PersonFilter,
) []Resident {
	byID := make(map[int]roster.Family, len(ff))
	for _, f := range ff {
		byID[f.ID] = f
	}

	res := make([]Resident, 0, len(pp))
	for _, p := range pp {
		f, ok := byID[p.FamilyID]
		if !ok {
			continue
		}
		if !p.Sex.Valid() {
			p.Sex = roster.Other
		}
		r := Resident{Person: p, Family: f}
		if filter.Match(r) {
			res = append(res, r)
		}
	}
	slices.SortStableFunc(res, func(a, b Resident) int {
		return a.Person.ID - b.Person.ID
	})
	return res
}

func roomMatch(f roster.Family, room string) bool {
	room = strings.ToLower(strings.TrimSpace(room))
	if room == "" {
		return true
	}
	for _, r := range f.AssignedRooms() {
		if strings.Contains(strings.ToLower(r), room) {
			return true
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// sameDay is true when want is nil or both dates fall on the same day.
func sameDay(got, want *time.Time) bool {
	if want == nil {
		return true
	}
	return got != nil && roster.Day(*got).Equal(roster.Day(*want))
}
