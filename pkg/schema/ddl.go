package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// Columns returns the `db` column names of a model in field order.
func Columns(model any) []string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var res []string
	for i := 0; i < t.NumField(); i++ {
		if col := t.Field(i).Tag.Get("db"); col != "" {
			res = append(res, col)
		}
	}
	return res
}

// Family DDL methods
func (f Family) TableDDL() string {
	return generateDDL(f, f.TableName())
}

func (f Family) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_families_label ON families(label);",
		"CREATE INDEX IF NOT EXISTS idx_families_rooms ON families(room1, room2);",
		"CREATE INDEX IF NOT EXISTS idx_families_arrival ON families(arrival_date);",
		"CREATE INDEX IF NOT EXISTS idx_families_departure ON families(departure_date);",
	}
}

func (f Family) TableName() string {
	return "families"
}

// Person DDL methods
func (p Person) TableDDL() string {
	return generateDDL(p, p.TableName())
}

func (p Person) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_persons_family ON persons(family_id);",
		"CREATE INDEX IF NOT EXISTS idx_persons_dob ON persons(dob);",
	}
}

func (p Person) TableName() string {
	return "persons"
}
