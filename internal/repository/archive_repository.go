package repository

import (
	"context"

	"gorm.io/gorm"

	"subhub/internal/model"
)

// ArchiveRepository defines persistence operations for the append-only archive.
type ArchiveRepository interface {
	Create(ctx context.Context, archive *model.Archive) error
	List(ctx context.Context) ([]model.Archive, error)
}

type archiveRepository struct {
	db *gorm.DB
}

// NewArchiveRepository builds a GORM-backed archive repository.
func NewArchiveRepository(db *gorm.DB) ArchiveRepository {
	return &archiveRepository{db: db}
}

func (r *archiveRepository) Create(ctx context.Context, archive *model.Archive) error {
	return r.db.WithContext(ctx).Create(archive).Error
}

func (r *archiveRepository) List(ctx context.Context) ([]model.Archive, error) {
	var archives []model.Archive
	if err := r.db.WithContext(ctx).Find(&archives).Error; err != nil {
		return nil, err
	}
	return archives, nil
}
