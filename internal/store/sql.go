package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type documentModel struct {
	Name      string    `gorm:"column:name;primaryKey;size:128"`
	Body      string    `gorm:"column:body;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (documentModel) TableName() string { return "documents" }

// SQLBackend stores each collection as a single JSON row in the documents table.
type SQLBackend struct {
	db *gorm.DB
}

func NewSQLBackend(db *gorm.DB) *SQLBackend {
	return &SQLBackend{db: db}
}

func (b *SQLBackend) Migrate(ctx context.Context) error {
	return b.db.WithContext(ctx).AutoMigrate(&documentModel{})
}

func (b *SQLBackend) Load(ctx context.Context, name string) ([]byte, error) {
	var m documentModel
	err := b.db.WithContext(ctx).Where("name = ?", name).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &StorageError{Op: "load", Collection: name, Err: ErrNotFound}
		}
		return nil, &StorageError{Op: "load", Collection: name, Err: err}
	}
	return []byte(m.Body), nil
}

func (b *SQLBackend) Save(ctx context.Context, name string, data []byte) error {
	m := documentModel{
		Name:      name,
		Body:      string(data),
		UpdatedAt: time.Now().UTC(),
	}

	err := b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
		}).
		Create(&m).Error
	if err != nil {
		if isUniqueViolation(err) {
			return &StorageError{Op: "save", Collection: name, Err: ErrConflict}
		}
		return &StorageError{Op: "save", Collection: name, Err: err}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
