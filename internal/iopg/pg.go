package iopg

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/kardex/pkg/roster"
	"github.com/gnames/kardex/pkg/schema"
	"github.com/gnames/kardex/pkg/store"
	"gorm.io/gorm"
)

var errFamilyNotFound = errors.New("family not found")

// Migrate creates or updates tables using GORM AutoMigrate.
func (p *pgStore) Migrate(ctx context.Context) error {
	if p.gorm == nil {
		return NotConnectedError()
	}
	if err := schema.Migrate(p.gorm.WithContext(ctx)); err != nil {
		return MigrateError(err)
	}
	return nil
}

func (p *pgStore) AddFamily(
	ctx context.Context,
	f roster.Family,
) (int, error) {
	if p.gorm == nil {
		return 0, NotConnectedError()
	}
	if len(f.AssignedRooms()) > 2 {
		return 0, roster.InvalidError("family %d has more than two rooms", f.ID)
	}

	rec := schema.NewFamily(f)
	if err := p.gorm.WithContext(ctx).Create(&rec).Error; err != nil {
		return 0, store.InsertError("family", err)
	}
	if f.ID > 0 {
		if err := p.syncSequence(ctx, rec.TableName()); err != nil {
			return 0, store.InsertError("family", err)
		}
	}
	return rec.ID, nil
}

func (p *pgStore) AddPerson(
	ctx context.Context,
	person roster.Person,
) (int, error) {
	if p.gorm == nil {
		return 0, NotConnectedError()
	}
	person.FirstName = strings.TrimSpace(person.FirstName)
	person.LastName = strings.TrimSpace(person.LastName)
	if person.FirstName == "" || person.LastName == "" {
		return 0, roster.InvalidError("person %d has an empty name", person.ID)
	}

	var count int64
	err := p.gorm.WithContext(ctx).Model(&schema.Family{}).
		Where("id = ?", person.FamilyID).Count(&count).Error
	if err != nil {
		return 0, QueryError("families", err)
	}
	if count == 0 {
		return 0, store.NotFoundError("family", person.FamilyID)
	}

	rec := schema.NewPerson(person)
	if err := p.gorm.WithContext(ctx).Create(&rec).Error; err != nil {
		return 0, store.InsertError("person", err)
	}
	if person.ID > 0 {
		if err := p.syncSequence(ctx, rec.TableName()); err != nil {
			return 0, store.InsertError("person", err)
		}
	}
	return rec.ID, nil
}

func (p *pgStore) ArchiveFamily(
	ctx context.Context,
	id int,
	departure time.Time,
) error {
	if p.gorm == nil {
		return NotConnectedError()
	}

	day := roster.Day(departure)
	res := p.gorm.WithContext(ctx).Model(&schema.Family{}).
		Where("id = ?", id).Update("departure_date", day)
	if res.Error != nil {
		return store.UpdateError("family", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return store.NotFoundError("family", id)
	}
	return nil
}

func (p *pgStore) DeleteFamily(ctx context.Context, id int) error {
	if p.gorm == nil {
		return NotConnectedError()
	}

	var removed int64
	err := p.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("family_id = ?", id).Delete(&schema.Person{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected

		res = tx.Delete(&schema.Family{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errFamilyNotFound
		}
		return nil
	})
	if errors.Is(err, errFamilyNotFound) {
		return store.NotFoundError("family", id)
	}
	if err != nil {
		return store.DeleteError("family", id, err)
	}

	slog.Info("Family deleted", "id", id, "persons", humanize.Comma(removed))
	return nil
}

func (p *pgStore) Families(
	ctx context.Context,
	filter store.FamilyFilter,
) ([]roster.Family, error) {
	if p.gorm == nil {
		return nil, NotConnectedError()
	}

	q := p.gorm.WithContext(ctx).Model(&schema.Family{})
	if room := strings.TrimSpace(filter.Room); room != "" {
		like := "%" + room + "%"
		q = q.Where("room1 ILIKE ? OR room2 ILIKE ?", like, like)
	}
	if label := strings.TrimSpace(filter.Label); label != "" {
		q = q.Where("label ILIKE ?", "%"+label+"%")
	}
	if filter.ArrivedFrom != nil {
		q = q.Where("arrival_date >= ?", roster.Day(*filter.ArrivedFrom))
	}
	if filter.ArrivedTo != nil {
		q = q.Where("arrival_date <= ?", roster.Day(*filter.ArrivedTo))
	}
	if filter.ActiveOnly {
		q = q.Where("departure_date IS NULL")
	}

	var recs []schema.Family
	err := q.Order("arrival_date DESC NULLS LAST").Order("id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, QueryError("families", err)
	}

	// ILIKE treats % and _ as wildcards.
	res := make([]roster.Family, 0, len(recs))
	for _, rec := range recs {
		if f := rec.ToRoster(); filter.Match(f) {
			res = append(res, f)
		}
	}
	return res, nil
}

func (p *pgStore) ActiveRoster(ctx context.Context) (*roster.Roster, error) {
	if p.gorm == nil {
		return nil, NotConnectedError()
	}
	db := p.gorm.WithContext(ctx)

	var famRecs []schema.Family
	err := db.Where("departure_date IS NULL").Order("id").Find(&famRecs).Error
	if err != nil {
		return nil, QueryError("families", err)
	}

	var personRecs []schema.Person
	err = db.Joins("JOIN families ON families.id = persons.family_id").
		Where("families.departure_date IS NULL").
		Order("persons.id").Find(&personRecs).Error
	if err != nil {
		return nil, QueryError("persons", err)
	}

	families := make([]roster.Family, len(famRecs))
	for i := range famRecs {
		families[i] = famRecs[i].ToRoster()
	}
	persons := make([]roster.Person, len(personRecs))
	for i := range personRecs {
		persons[i] = personRecs[i].ToRoster()
	}

	slog.Info("Active roster loaded",
		"families", humanize.Comma(int64(len(families))),
		"persons", humanize.Comma(int64(len(persons))),
	)
	return roster.New(families, persons)
}

func (p *pgStore) Residents(
	ctx context.Context,
	filter store.PersonFilter,
) ([]store.Resident, error) {
	if p.gorm == nil {
		return nil, NotConnectedError()
	}
	db := p.gorm.WithContext(ctx)

	status := "departure_date IS NULL"
	if filter.Archived {
		status = "departure_date IS NOT NULL"
	}

	fq := db.Where(status)
	if filter.FamilyID > 0 {
		fq = fq.Where("id = ?", filter.FamilyID)
	}
	var famRecs []schema.Family
	if err := fq.Order("id").Find(&famRecs).Error; err != nil {
		return nil, QueryError("families", err)
	}

	pq := db.Joins("JOIN families ON families.id = persons.family_id").
		Where("families." + status)
	if filter.FamilyID > 0 {
		pq = pq.Where("persons.family_id = ?", filter.FamilyID)
	}
	var personRecs []schema.Person
	if err := pq.Order("persons.id").Find(&personRecs).Error; err != nil {
		return nil, QueryError("persons", err)
	}

	families := make([]roster.Family, len(famRecs))
	for i := range famRecs {
		families[i] = famRecs[i].ToRoster()
	}
	persons := make([]roster.Person, len(personRecs))
	for i := range personRecs {
		persons[i] = personRecs[i].ToRoster()
	}
	return store.JoinResidents(families, persons, filter), nil
}
