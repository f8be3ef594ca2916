package substrate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/db"
)

// Entry is one stored key/value row.
type Entry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:191"`
	Value     []byte    `gorm:"column:entry_value;type:longblob;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName keeps the table name stable regardless of naming strategy.
func (Entry) TableName() string { return "storefront_entries" }

// Gorm stores values in a single table through GORM.
type Gorm struct {
	db *gorm.DB
}

var _ Substrate = (*Gorm)(nil)

// NewMySQL connects to MySQL and migrates the entries table.
func NewMySQL(dsn string) (*Gorm, error) {
	gormDB, err := db.NewMySQL(dsn)
	if err != nil {
		return nil, err
	}
	return NewGorm(gormDB)
}

// NewGorm wraps an open GORM connection and migrates the entries table.
func NewGorm(gormDB *gorm.DB) (*Gorm, error) {
	if err := gormDB.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("auto-migrate entries: %w", err)
	}
	return &Gorm{db: gormDB}, nil
}

func (g *Gorm) Get(ctx context.Context, key string) ([]byte, error) {
	var entry Entry
	err := g.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return entry.Value, nil
}

func (g *Gorm) Set(ctx context.Context, key string, value []byte) error {
	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (g *Gorm) Delete(ctx context.Context, key string) error {
	if err := g.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (g *Gorm) Driver() Driver { return DriverMySQL }

func (g *Gorm) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
