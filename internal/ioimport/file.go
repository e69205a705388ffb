// Package ioimport loads roster files and writes them to a store.
// This is an impure I/O package.
//
// A roster file is YAML (JSON also parses) with families and their persons
// nested. Dates are YYYY-MM-DD or DD/MM/YYYY.
package ioimport

import (
	"fmt"
	"os"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/gnames/kardex/pkg/roster"
	"gopkg.in/yaml.v3"
)

// File is the content of a roster file.
type File struct {
	Families []FamilyEntry `yaml:"families" json:"families"`
}

// FamilyEntry is a family with its persons as written in a roster file.
type FamilyEntry struct {
	ID        int           `yaml:"id"        json:"id"`
	Label     string        `yaml:"label"     json:"label"`
	Rooms     []string      `yaml:"rooms"     json:"rooms"`
	Arrival   string        `yaml:"arrival"   json:"arrival"`
	Departure string        `yaml:"departure" json:"departure"`
	Phones    []string      `yaml:"phones"    json:"phones"`
	Persons   []PersonEntry `yaml:"persons"   json:"persons"`
}

// PersonEntry is a person as written in a roster file.
type PersonEntry struct {
	ID        int    `yaml:"id"         json:"id"`
	FirstName string `yaml:"first_name" json:"first_name"`
	LastName  string `yaml:"last_name"  json:"last_name"`
	DOB       string `yaml:"dob"        json:"dob"`
	Sex       string `yaml:"sex"        json:"sex"`
	Phone     string `yaml:"phone"      json:"phone"`
}

// Household is a validated family with its members. Member FamilyID is
// filled in when the family is stored.
type Household struct {
	Family  roster.Family
	Members []roster.Person
}

// Load reads and validates a roster file. Nothing is returned unless every
// entry is valid.
func Load(path string) ([]Household, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	return Parse(path, data)
}

// Parse validates roster file content. The name is only used in errors.
func Parse(name string, data []byte) ([]Household, error) {
	text := gnlib.FixUtf8(string(data))

	var f File
	if err := yaml.Unmarshal([]byte(text), &f); err != nil {
		return nil, ParseError(name, err)
	}

	res := make([]Household, 0, len(f.Families))
	for i, fe := range f.Families {
		h, err := fe.household(i + 1)
		if err != nil {
			return nil, err
		}
		res = append(res, h)
	}
	return res, nil
}

// household converts an entry. Idx is the 1-based position in the file.
func (fe FamilyEntry) household(idx int) (Household, error) {
	var res Household
	arrival, err := roster.ParseDate(roster.CleanField(fe.Arrival))
	if err != nil {
		return res, RecordError(idx, fmt.Sprintf("arrival %q", fe.Arrival))
	}
	departure, err := roster.ParseDate(roster.CleanField(fe.Departure))
	if err != nil {
		return res, RecordError(idx, fmt.Sprintf("departure %q", fe.Departure))
	}

	res.Family = roster.Family{
		ID:        fe.ID,
		Label:     roster.CleanField(fe.Label),
		Rooms:     fe.Rooms,
		Arrival:   arrival,
		Departure: departure,
		Phones:    fe.Phones,
	}
	if n := len(res.Family.AssignedRooms()); n > 2 {
		return res, RecordError(idx, fmt.Sprintf("%d rooms, at most 2", n))
	}

	for j, pe := range fe.Persons {
		first := strings.TrimSpace(pe.FirstName)
		last := strings.TrimSpace(pe.LastName)
		if first == "" || last == "" {
			return res, RecordError(idx,
				fmt.Sprintf("person %d has an empty name", j+1))
		}
		dob, err := roster.ParseDate(roster.CleanField(pe.DOB))
		if err != nil {
			return res, RecordError(idx,
				fmt.Sprintf("person %d date of birth %q", j+1, pe.DOB))
		}
		res.Members = append(res.Members, roster.Person{
			ID:        pe.ID,
			FirstName: first,
			LastName:  last,
			DOB:       dob,
			Sex:       roster.ParseSex(pe.Sex),
			Phone:     roster.CleanField(pe.Phone),
		})
	}
	return res, nil
}
