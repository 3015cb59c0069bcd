package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories over one database handle. WithTransaction
// yields a Store whose repositories share a single transaction, so
// multi-table mutations (service + plans, archive + user + enrollments)
// either fully commit or fully roll back.
type Store interface {
	Users() UserRepository
	Catalog() CatalogRepository
	Enrollments() EnrollmentRepository
	Archives() ArchiveRepository
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

type gormStore struct {
	db          *gorm.DB
	users       UserRepository
	catalog     CatalogRepository
	enrollments EnrollmentRepository
	archives    ArchiveRepository
}

// NewStore builds a GORM-backed store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:          db,
		users:       NewUserRepository(db),
		catalog:     NewCatalogRepository(db),
		enrollments: NewEnrollmentRepository(db),
		archives:    NewArchiveRepository(db),
	}
}

func (s *gormStore) Users() UserRepository { return s.users }
func (s *gormStore) Catalog() CatalogRepository { return s.catalog }
func (s *gormStore) Enrollments() EnrollmentRepository { return s.enrollments }
func (s *gormStore) Archives() ArchiveRepository { return s.archives }

// WithTransaction executes fn within a database transaction.
func (s *gormStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewStore(tx))
	})
}
