// Package roster holds the value objects of the shelter: families, their
// members and the active roster handed to the dashboard engine.
//
// This package has no I/O dependencies. Records are created and edited by a
// store; the roster is an immutable snapshot read at a single instant.
package roster

import (
	"fmt"
	"time"
)

// maxRooms is the number of rooms a family may occupy.
const maxRooms = 2

// Person is a resident belonging to exactly one family.
type Person struct {
	ID        int        `json:"id"            yaml:"id"`
	FamilyID  int        `json:"family_id"     yaml:"family_id"`
	FirstName string     `json:"first_name"    yaml:"first_name"`
	LastName  string     `json:"last_name"     yaml:"last_name"`
	DOB       *time.Time `json:"dob,omitempty" yaml:"dob,omitempty"`
	Sex       Sex        `json:"sex"           yaml:"sex"`
	Phone     string     `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// FullName returns "First Last".
func (p Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Roster is the set of active persons with the families they belong to.
type Roster struct {
	families []Family
	persons  []Person
	byID     map[int]int
	members  map[int][]int
}

// New validates families and persons and builds a Roster. Families must be
// active, IDs unique, and every person must reference a family of the roster.
// Unknown sex values become Other. Slices are copied, so callers may reuse
// them.
func New(families []Family, persons []Person) (*Roster, error) {
	res := &Roster{
		families: make([]Family, len(families)),
		persons:  make([]Person, len(persons)),
		byID:     make(map[int]int, len(families)),
		members:  make(map[int][]int, len(families)),
	}
	copy(res.families, families)
	copy(res.persons, persons)

	for i, f := range res.families {
		if !f.Active() {
			return nil, InvalidError("family %d is archived", f.ID)
		}
		if _, ok := res.byID[f.ID]; ok {
			return nil, InvalidError("duplicate family id %d", f.ID)
		}
		if len(f.Rooms) > maxRooms {
			return nil, InvalidError("family %d has %d rooms, at most %d allowed",
				f.ID, len(f.Rooms), maxRooms)
		}
		res.byID[f.ID] = i
	}

	seen := make(map[int]struct{}, len(res.persons))
	for i, p := range res.persons {
		if _, ok := seen[p.ID]; ok {
			return nil, InvalidError("duplicate person id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
		if !p.Sex.Valid() {
			res.persons[i].Sex = Other
		}
		if CleanField(p.FirstName) == "" || CleanField(p.LastName) == "" {
			return nil, InvalidError("person %d has no full name", p.ID)
		}
		if _, ok := res.byID[p.FamilyID]; !ok {
			return nil, InvalidError(
				"person %d references family %d which is not in the roster",
				p.ID, p.FamilyID,
			)
		}
		res.members[p.FamilyID] = append(res.members[p.FamilyID], i)
	}
	return res, nil
}

// Empty returns a roster with no families and no persons.
func Empty() *Roster {
	r, _ := New(nil, nil)
	return r
}

// Families returns active families in roster order.
func (r *Roster) Families() []Family {
	return r.families
}

// Persons returns active persons in roster order.
func (r *Roster) Persons() []Person {
	return r.persons
}

// Len is the number of persons.
func (r *Roster) Len() int {
	return len(r.persons)
}

// Family looks up a family by ID.
func (r *Roster) Family(id int) (Family, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Family{}, false
	}
	return r.families[i], true
}

// Members returns persons of a family in roster order.
func (r *Roster) Members(familyID int) []Person {
	idx := r.members[familyID]
	res := make([]Person, len(idx))
	for i, v := range idx {
		res[i] = r.persons[v]
	}
	return res
}

// Occupancy is the number of active persons referencing the family.
func (r *Roster) Occupancy(familyID int) int {
	return len(r.members[familyID])
}

func (r *Roster) String() string {
	return fmt.Sprintf("roster{families: %d, persons: %d}",
		len(r.families), len(r.persons))
}
