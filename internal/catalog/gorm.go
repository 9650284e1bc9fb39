package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// worldRow is the table layout of a record.
type worldRow struct {
	Name      string `gorm:"primaryKey;size:64"`
	Seed      int64  `gorm:"not null"`
	Size      int32  `gorm:"not null"`
	CreatedAt time.Time
}

func (worldRow) TableName() string { return "tileworld_worlds" }

func toRow(r Record) worldRow {
	return worldRow{Name: r.Name, Seed: r.Seed, Size: int32(r.Size), CreatedAt: r.CreatedAt}
}

func (row worldRow) record() Record {
	return Record{Name: row.Name, Seed: row.Seed, Size: int(row.Size), CreatedAt: row.CreatedAt}
}

// GormStore keeps records in a SQL table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) GormStore {
	return GormStore{db: db}
}

// Migrate creates or updates the records table.
func (s GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&worldRow{}); err != nil {
		return fmt.Errorf("migrate worlds: %w", err)
	}
	return nil
}

func (s GormStore) Save(ctx context.Context, r Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	row := toRow(r)
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"seed", "size"}),
	}).Create(&row).Error
}

func (s GormStore) Get(ctx context.Context, name string) (Record, error) {
	var row worldRow
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return row.record(), nil
}

func (s GormStore) List(ctx context.Context) ([]Record, error) {
	var rows []worldRow
	if err := s.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Record, len(rows))
	for i, row := range rows {
		out[i] = row.record()
	}
	return out, nil
}
