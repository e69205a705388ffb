package roster

import "strings"

// Sex is a closed set of categories. Any value that is not recognized as
// female or male collapses to Other.
type Sex int

const (
	Other Sex = iota
	Female
	Male
)

// Sexes returns all categories in display order.
func Sexes() []Sex {
	return []Sex{Female, Male, Other}
}

// ParseSex normalizes a free-form value to a Sex category.
func ParseSex(s string) Sex {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "f", "female", "femme", "woman":
		return Female
	case "m", "male", "homme", "man":
		return Male
	default:
		return Other
	}
}

// Valid reports whether s is one of the three categories.
func (s Sex) Valid() bool {
	return s == Other || s == Female || s == Male
}

// String returns the short code used in reports: F, M or Other/Unknown.
func (s Sex) String() string {
	switch s {
	case Female:
		return "F"
	case Male:
		return "M"
	default:
		return "Other/Unknown"
	}
}

// MarshalText keeps Sex readable in JSON and YAML output.
func (s Sex) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts any value and normalizes it with ParseSex.
func (s *Sex) UnmarshalText(b []byte) error {
	*s = ParseSex(string(b))
	return nil
}
