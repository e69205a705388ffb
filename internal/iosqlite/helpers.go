package iosqlite

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/gnames/kardex/pkg/roster"
	"github.com/gnames/kardex/pkg/schema"
)

var errEmptyPath = errors.New("database path is empty")

func insertSQL(table string, cols []string) string {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return "INSERT INTO " + table + " (" + strings.Join(cols, ", ") +
		") VALUES (" + marks + ")"
}

// qualified lists the columns of a model prefixed with a table alias.
func qualified(alias string, model any) string {
	cols := schema.Columns(model)
	for i := range cols {
		cols[i] = alias + "." + cols[i]
	}
	return strings.Join(cols, ", ")
}

// dateArg turns an optional date into a TEXT argument or NULL.
func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func parseDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return nil, err
	}
	t = roster.Day(t)
	return &t, nil
}
