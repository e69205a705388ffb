// Package schema provides database schema models for kardex.
//
// The `ddl` tags describe the embedded SQLite layout, where dates are kept as
// ISO text. The `gorm` tags describe the PostgreSQL layout used by
// AutoMigrate.
package schema

import (
	"time"

	"github.com/gnames/kardex/pkg/roster"
)

// DDLGenerator defines how Go models generate SQLite DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the table name for this model.
	TableName() string
}

// Family is a household record. Rooms and phones are flattened into two
// columns each.
type Family struct {
	ID int `db:"id" ddl:"INTEGER PRIMARY KEY AUTOINCREMENT" gorm:"primaryKey"`

	// Label is a free-form name such as "Dupont family".
	Label string `db:"label" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"type:varchar(120);index"`

	Room1 string `db:"room1" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"type:varchar(20);index"`
	Room2 string `db:"room2" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"type:varchar(20);index"`

	// ArrivalDate is unknown when nil.
	ArrivalDate *time.Time `db:"arrival_date" ddl:"TEXT" gorm:"type:date;index"`

	// DepartureDate marks the family as archived.
	DepartureDate *time.Time `db:"departure_date" ddl:"TEXT" gorm:"type:date;index"`

	Phone1 string `db:"phone1" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"type:varchar(20)"`
	Phone2 string `db:"phone2" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"type:varchar(20)"`
}

// Person is a resident record.
type Person struct {
	ID       int `db:"id" ddl:"INTEGER PRIMARY KEY AUTOINCREMENT" gorm:"primaryKey"`
	FamilyID int `db:"family_id" ddl:"INTEGER NOT NULL REFERENCES families(id)" gorm:"not null;index"`

	FirstName string `db:"first_name" ddl:"TEXT NOT NULL" gorm:"type:varchar(80);not null;index"`
	LastName  string `db:"last_name" ddl:"TEXT NOT NULL" gorm:"type:varchar(80);not null;index"`

	// DOB is unknown when nil.
	DOB *time.Time `db:"dob" ddl:"TEXT" gorm:"type:date;index"`

	// Sex is stored as F, M or Other/Unknown.
	Sex string `db:"sex" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"type:varchar(16);index"`

	Phone string `db:"phone" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"type:varchar(20)"`
}

// NewFamily converts a roster family to its record. Only the first two rooms
// and phones are kept.
func NewFamily(f roster.Family) Family {
	rooms := f.AssignedRooms()
	phones := nonBlank(f.Phones)
	return Family{
		ID:            f.ID,
		Label:         roster.CleanField(f.Label),
		Room1:         at(rooms, 0),
		Room2:         at(rooms, 1),
		ArrivalDate:   dayPtr(f.Arrival),
		DepartureDate: dayPtr(f.Departure),
		Phone1:        at(phones, 0),
		Phone2:        at(phones, 1),
	}
}

// ToRoster converts the record back to a roster family, cleaning blank
// and "None" fields.
func (f Family) ToRoster() roster.Family {
	return roster.Family{
		ID:        f.ID,
		Label:     roster.CleanField(f.Label),
		Rooms:     nonBlank([]string{f.Room1, f.Room2}),
		Arrival:   dayPtr(f.ArrivalDate),
		Departure: dayPtr(f.DepartureDate),
		Phones:    nonBlank([]string{f.Phone1, f.Phone2}),
	}
}

// NewPerson converts a roster person to its record.
func NewPerson(p roster.Person) Person {
	return Person{
		ID:        p.ID,
		FamilyID:  p.FamilyID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		DOB:       dayPtr(p.DOB),
		Sex:       p.Sex.String(),
		Phone:     roster.CleanField(p.Phone),
	}
}

// ToRoster converts the record back to a roster person.
func (p Person) ToRoster() roster.Person {
	return roster.Person{
		ID:        p.ID,
		FamilyID:  p.FamilyID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		DOB:       dayPtr(p.DOB),
		Sex:       roster.ParseSex(p.Sex),
		Phone:     roster.CleanField(p.Phone),
	}
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	res := roster.Day(*t)
	return &res
}

func nonBlank(ss []string) []string {
	var res []string
	for _, s := range ss {
		if s = roster.CleanField(s); s != "" {
			res = append(res, s)
		}
	}
	return res
}

func at(ss []string, i int) string {
	if i < len(ss) {
		return ss[i]
	}
	return ""
}
