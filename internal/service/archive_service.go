package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	errs "subhub/internal/errors"
	"subhub/internal/model"
	"subhub/internal/repository"
)

// ArchiveService handles enrollment termination records.
type ArchiveService interface {
	Archive(ctx context.Context, customerID, serviceID uint) (*model.Archive, error)
	RemoveCustomer(ctx context.Context, customerID uint) error
	List(ctx context.Context) ([]model.Archive, error)
}

type archiveService struct {
	store repository.Store
}

// NewArchiveService creates a new archive service.
func NewArchiveService(store repository.Store) ArchiveService {
	return &archiveService{store: store}
}

// Archive writes a denormalized archive row for an enrollment. The source
// enrollment stays in place; archiving and removal are separate actions.
func (s *archiveService) Archive(ctx context.Context, customerID, serviceID uint) (*model.Archive, error) {
	enrollment, err := s.store.Enrollments().Find(ctx, customerID, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrEnrollmentNotFound
		}
		return nil, err
	}

	customer, err := s.store.Users().FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrCustomerNotFound
		}
		return nil, err
	}

	archive := &model.Archive{
		CustomerID:   customerID,
		CustomerName: customer.Name,
		ServiceID:    serviceID,
		PlanName:     enrollment.PlanName,
		Features:     enrollment.Features,
	}
	if err := s.store.Archives().Create(ctx, archive); err != nil {
		return nil, err
	}
	return archive, nil
}

// RemoveCustomer archives every enrollment belonging to the customer, then
// deletes the user row and the enrollments. The whole sequence runs in one
// transaction so a crash cannot lose enrollments without archiving them.
func (s *archiveService) RemoveCustomer(ctx context.Context, customerID uint) error {
	customer, err := s.store.Users().FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrCustomerNotFound
		}
		return err
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		enrollments, err := tx.Enrollments().ListByCustomer(ctx, customerID)
		if err != nil {
			return err
		}

		for _, e := range enrollments {
			archive := &model.Archive{
				CustomerID:   e.CustomerID,
				CustomerName: customer.Name,
				ServiceID:    e.ServiceID,
				PlanName:     e.PlanName,
				Features:     e.Features,
			}
			if err := tx.Archives().Create(ctx, archive); err != nil {
				return err
			}
		}

		if err := tx.Users().Delete(ctx, customerID); err != nil {
			return err
		}
		return tx.Enrollments().DeleteByCustomer(ctx, customerID)
	})
}

// List returns the full archive, unfiltered.
func (s *archiveService) List(ctx context.Context) ([]model.Archive, error) {
	return s.store.Archives().List(ctx)
}
