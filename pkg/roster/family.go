package roster

import (
	"strconv"
	"strings"
	"time"
)

// Family is a household occupying zero, one or two rooms.
type Family struct {
	ID        int        `json:"id"                  yaml:"id"`
	Label     string     `json:"label,omitempty"     yaml:"label,omitempty"`
	Rooms     []string   `json:"rooms,omitempty"     yaml:"rooms,omitempty"`
	Arrival   *time.Time `json:"arrival,omitempty"   yaml:"arrival,omitempty"`
	Departure *time.Time `json:"departure,omitempty" yaml:"departure,omitempty"`
	Phones    []string   `json:"phones,omitempty"    yaml:"phones,omitempty"`
}

// Active is true when the family has no departure date.
func (f Family) Active() bool {
	return f.Departure == nil
}

// DisplayLabel returns the label or a placeholder derived from the ID.
func (f Family) DisplayLabel() string {
	if l := CleanField(f.Label); l != "" {
		return l
	}
	return "Family " + strconv.Itoa(f.ID)
}

// RoomsText joins assigned rooms, e.g. "12 & 14".
func (f Family) RoomsText() string {
	return strings.Join(cleanAll(f.Rooms), " & ")
}

// PhonesText joins phone numbers, e.g. "0601 / 0602".
func (f Family) PhonesText() string {
	return strings.Join(cleanAll(f.Phones), " / ")
}

// AssignedRooms returns non-blank room identifiers.
func (f Family) AssignedRooms() []string {
	return cleanAll(f.Rooms)
}

// CleanField trims a value and maps blanks and the literal "None" to "".
func CleanField(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "none") {
		return ""
	}
	return s
}

func cleanAll(ss []string) []string {
	res := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = CleanField(s); s != "" {
			res = append(res, s)
		}
	}
	return res
}
