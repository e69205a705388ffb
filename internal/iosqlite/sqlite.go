// Package iosqlite implements store.Store on an embedded SQLite file.
// This is an impure I/O package that implements contracts defined in pkg/.
package iosqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/kardex/pkg/config"
	"github.com/gnames/kardex/pkg/roster"
	"github.com/gnames/kardex/pkg/schema"
	"github.com/gnames/kardex/pkg/store"
	_ "modernc.org/sqlite"
)

// dateLayout is how calendar dates are kept in TEXT columns.
const dateLayout = "2006-01-02"

type sqliteStore struct {
	db   *sql.DB
	path string
}

// New creates a SQLite store (without connecting).
func New() store.Store {
	return &sqliteStore{}
}

// Connect opens the database file, creating it when missing.
// Foreign keys are enforced on every connection.
func (s *sqliteStore) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return ConnectionError(path, errEmptyPath)
	}

	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return ConnectionError(path, err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return ConnectionError(path, err)
	}

	s.db = db
	s.path = path
	slog.Info("Connected to SQLite", "path", path)
	return nil
}

// Close releases the database file.
func (s *sqliteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Migrate creates tables and indexes from schema models.
func (s *sqliteStore) Migrate(ctx context.Context) error {
	if s.db == nil {
		return NotConnectedError()
	}

	for _, m := range schema.AllModels() {
		stmts := append([]string{m.TableDDL()}, m.IndexDDL()...)
		for _, q := range stmts {
			if _, err := s.db.ExecContext(ctx, q); err != nil {
				return MigrateError(m.TableName(), err)
			}
		}
	}
	return nil
}

func (s *sqliteStore) AddFamily(
	ctx context.Context,
	f roster.Family,
) (int, error) {
	if s.db == nil {
		return 0, NotConnectedError()
	}
	if len(f.AssignedRooms()) > 2 {
		return 0, roster.InvalidError("family %d has more than two rooms", f.ID)
	}

	rec := schema.NewFamily(f)
	cols := []string{
		"label", "room1", "room2", "arrival_date", "departure_date",
		"phone1", "phone2",
	}
	args := []any{
		rec.Label, rec.Room1, rec.Room2,
		dateArg(rec.ArrivalDate), dateArg(rec.DepartureDate),
		rec.Phone1, rec.Phone2,
	}
	if rec.ID > 0 {
		cols = append([]string{"id"}, cols...)
		args = append([]any{rec.ID}, args...)
	}

	q := insertSQL(rec.TableName(), cols)
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, store.InsertError("family", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, store.InsertError("family", err)
	}
	return int(id), nil
}

func (s *sqliteStore) AddPerson(
	ctx context.Context,
	p roster.Person,
) (int, error) {
	if s.db == nil {
		return 0, NotConnectedError()
	}
	if strings.TrimSpace(p.FirstName) == "" ||
		strings.TrimSpace(p.LastName) == "" {
		return 0, roster.InvalidError("person %d has an empty name", p.ID)
	}

	exists, err := s.familyExists(ctx, p.FamilyID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, store.NotFoundError("family", p.FamilyID)
	}

	rec := schema.NewPerson(p)
	cols := []string{"family_id", "first_name", "last_name", "dob", "sex", "phone"}
	args := []any{
		rec.FamilyID,
		strings.TrimSpace(rec.FirstName), strings.TrimSpace(rec.LastName),
		dateArg(rec.DOB), rec.Sex, rec.Phone,
	}
	if rec.ID > 0 {
		cols = append([]string{"id"}, cols...)
		args = append([]any{rec.ID}, args...)
	}

	q := insertSQL(rec.TableName(), cols)
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, store.InsertError("person", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, store.InsertError("person", err)
	}
	return int(id), nil
}

func (s *sqliteStore) ArchiveFamily(
	ctx context.Context,
	id int,
	departure time.Time,
) error {
	if s.db == nil {
		return NotConnectedError()
	}

	q := "UPDATE families SET departure_date = ? WHERE id = ?"
	day := roster.Day(departure)
	res, err := s.db.ExecContext(ctx, q, dateArg(&day), id)
	if err != nil {
		return store.UpdateError("family", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return store.UpdateError("family", id, err)
	}
	if n == 0 {
		return store.NotFoundError("family", id)
	}
	return nil
}

func (s *sqliteStore) DeleteFamily(ctx context.Context, id int) error {
	if s.db == nil {
		return NotConnectedError()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.DeleteError("family", id, err)
	}
	defer tx.Rollback()

	persons, err := tx.ExecContext(ctx,
		"DELETE FROM persons WHERE family_id = ?", id)
	if err != nil {
		return store.DeleteError("family", id, err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM families WHERE id = ?", id)
	if err != nil {
		return store.DeleteError("family", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return store.DeleteError("family", id, err)
	}
	if n == 0 {
		return store.NotFoundError("family", id)
	}
	if err = tx.Commit(); err != nil {
		return store.DeleteError("family", id, err)
	}

	removed, _ := persons.RowsAffected()
	slog.Info("Family deleted", "id", id,
		"persons", humanize.Comma(removed))
	return nil
}

func (s *sqliteStore) Families(
	ctx context.Context,
	filter store.FamilyFilter,
) ([]roster.Family, error) {
	if s.db == nil {
		return nil, NotConnectedError()
	}

	var where []string
	var args []any
	if room := strings.TrimSpace(filter.Room); room != "" {
		where = append(where, "(room1 LIKE ? OR room2 LIKE ?)")
		args = append(args, "%"+room+"%", "%"+room+"%")
	}
	if label := strings.TrimSpace(filter.Label); label != "" {
		where = append(where, "label LIKE ?")
		args = append(args, "%"+label+"%")
	}
	if filter.ArrivedFrom != nil {
		where = append(where, "arrival_date >= ?")
		args = append(args, dateArg(filter.ArrivedFrom))
	}
	if filter.ArrivedTo != nil {
		where = append(where, "arrival_date <= ?")
		args = append(args, dateArg(filter.ArrivedTo))
	}
	if filter.ActiveOnly {
		where = append(where, "departure_date IS NULL")
	}

	q := "SELECT " + strings.Join(schema.Columns(schema.Family{}), ", ") +
		" FROM families"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY arrival_date IS NULL, arrival_date DESC, id DESC"

	all, err := s.queryFamilies(ctx, q, args...)
	if err != nil {
		return nil, err
	}

	// LIKE treats % and _ as wildcards.
	res := make([]roster.Family, 0, len(all))
	for _, f := range all {
		if filter.Match(f) {
			res = append(res, f)
		}
	}
	return res, nil
}

func (s *sqliteStore) ActiveRoster(
	ctx context.Context,
) (*roster.Roster, error) {
	if s.db == nil {
		return nil, NotConnectedError()
	}

	q := "SELECT " + strings.Join(schema.Columns(schema.Family{}), ", ") +
		" FROM families WHERE departure_date IS NULL ORDER BY id"
	families, err := s.queryFamilies(ctx, q)
	if err != nil {
		return nil, err
	}

	q = "SELECT " + qualified("p", schema.Person{}) +
		` FROM persons p JOIN families f ON f.id = p.family_id
		WHERE f.departure_date IS NULL ORDER BY p.id`
	persons, err := s.queryPersons(ctx, q)
	if err != nil {
		return nil, err
	}

	slog.Info("Active roster loaded",
		"families", humanize.Comma(int64(len(families))),
		"persons", humanize.Comma(int64(len(persons))),
	)
	return roster.New(families, persons)
}

func (s *sqliteStore) Residents(
	ctx context.Context,
	filter store.PersonFilter,
) ([]store.Resident, error) {
	if s.db == nil {
		return nil, NotConnectedError()
	}

	where := "f.departure_date IS NULL"
	if filter.Archived {
		where = "f.departure_date IS NOT NULL"
	}
	var args []any
	if filter.FamilyID > 0 {
		where += " AND f.id = ?"
		args = append(args, filter.FamilyID)
	}

	q := "SELECT " + qualified("f", schema.Family{}) +
		" FROM families f WHERE " + where + " ORDER BY f.id"
	families, err := s.queryFamilies(ctx, q, args...)
	if err != nil {
		return nil, err
	}

	q = "SELECT " + qualified("p", schema.Person{}) +
		" FROM persons p JOIN families f ON f.id = p.family_id WHERE " +
		where + " ORDER BY p.id"
	persons, err := s.queryPersons(ctx, q, args...)
	if err != nil {
		return nil, err
	}

	// name, date, room and phone conditions are applied in Go
	return store.JoinResidents(families, persons, filter), nil
}

func (s *sqliteStore) familyExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	q := "SELECT EXISTS (SELECT 1 FROM families WHERE id = ?)"
	if err := s.db.QueryRowContext(ctx, q, id).Scan(&exists); err != nil {
		return false, QueryError("families", err)
	}
	return exists, nil
}

func (s *sqliteStore) queryFamilies(
	ctx context.Context,
	q string,
	args ...any,
) ([]roster.Family, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, QueryError("families", err)
	}
	defer rows.Close()

	var res []roster.Family
	for rows.Next() {
		var rec schema.Family
		var arrival, departure sql.NullString
		err = rows.Scan(
			&rec.ID, &rec.Label, &rec.Room1, &rec.Room2,
			&arrival, &departure, &rec.Phone1, &rec.Phone2,
		)
		if err != nil {
			return nil, ScanError("families", err)
		}
		if rec.ArrivalDate, err = parseDate(arrival); err != nil {
			return nil, ScanError("families", err)
		}
		if rec.DepartureDate, err = parseDate(departure); err != nil {
			return nil, ScanError("families", err)
		}
		res = append(res, rec.ToRoster())
	}
	if err = rows.Err(); err != nil {
		return nil, ScanError("families", err)
	}
	return res, nil
}

func (s *sqliteStore) queryPersons(
	ctx context.Context,
	q string,
	args ...any,
) ([]roster.Person, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, QueryError("persons", err)
	}
	defer rows.Close()

	var res []roster.Person
	for rows.Next() {
		var rec schema.Person
		var dob sql.NullString
		err = rows.Scan(
			&rec.ID, &rec.FamilyID, &rec.FirstName, &rec.LastName,
			&dob, &rec.Sex, &rec.Phone,
		)
		if err != nil {
			return nil, ScanError("persons", err)
		}
		if rec.DOB, err = parseDate(dob); err != nil {
			return nil, ScanError("persons", err)
		}
		res = append(res, rec.ToRoster())
	}
	if err = rows.Err(); err != nil {
		return nil, ScanError("persons", err)
	}
	return res, nil
}

// HasTables reports whether the database file has any table.
func (s *sqliteStore) HasTables(ctx context.Context) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}
	var exists bool
	q := "SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' " +
		"AND name NOT LIKE 'sqlite_%')"
	if err := s.db.QueryRowContext(ctx, q).Scan(&exists); err != nil {
		return false, QueryError("sqlite_master", err)
	}
	return exists, nil
}

// DropAll removes kardex tables, children first.
func (s *sqliteStore) DropAll(ctx context.Context) error {
	if s.db == nil {
		return NotConnectedError()
	}
	models := schema.AllModels()
	for i := len(models) - 1; i >= 0; i-- {
		table := models[i].TableName()
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return MigrateError(table, err)
		}
	}
	return nil
}

// Optimize rebuilds the database file and refreshes planner statistics.
func (s *sqliteStore) Optimize(ctx context.Context) error {
	if s.db == nil {
		return NotConnectedError()
	}
	slog.Info("Running VACUUM and ANALYZE on database...", "path", s.path)
	timeStart := time.Now()

	for _, q := range []string{"VACUUM", "ANALYZE"} {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return OptimizeError(q, err)
		}
	}

	slog.Info("VACUUM and ANALYZE completed",
		"duration", gnfmt.TimeString(time.Since(timeStart).Seconds()))
	return nil
}
