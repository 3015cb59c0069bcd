package service

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	errs "subhub/internal/errors"
	"subhub/internal/model"
	"subhub/internal/repository"
)

// PlanInput is a plan definition supplied by catalog write operations.
type PlanInput struct {
	PlanName string         `json:"plan_name" validate:"required"`
	Features datatypes.JSON `json:"features" validate:"required"`
}

// ServiceWithPlans is a service with its plans keyed by plan name, the shape
// the catalog listing exposes for client convenience.
type ServiceWithPlans struct {
	ID          uint                      `json:"id"`
	ServiceName string                    `json:"service_name"`
	Plans       map[string]datatypes.JSON `json:"plans"`
}

// CatalogService handles service and plan management.
type CatalogService interface {
	CreateService(ctx context.Context, name string, plans []PlanInput) (*model.Service, error)
	ServiceExists(ctx context.Context, name string) (bool, error)
	ListServicesWithPlans(ctx context.Context) ([]ServiceWithPlans, error)
	ListServices(ctx context.Context) ([]model.Service, error)
	ListPlans(ctx context.Context) ([]model.Plan, error)
	PlanFeatures(ctx context.Context, serviceID uint, planName string) (datatypes.JSON, error)
	ReplaceServicePlans(ctx context.Context, serviceID uint, plans []PlanInput) error
	DeleteService(ctx context.Context, serviceID uint) error
}

type catalogService struct {
	store repository.Store
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store repository.Store) CatalogService {
	return &catalogService{store: store}
}

// CreateService creates a service and its plans atomically. A service with
// no plans is rejected up front.
func (s *catalogService) CreateService(ctx context.Context, name string, plans []PlanInput) (*model.Service, error) {
	if name == "" || len(plans) == 0 {
		return nil, errs.ErrInvalidInput
	}

	service := &model.Service{ServiceName: name}

	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := tx.Catalog().CreateService(ctx, service); err != nil {
			return err
		}
		return tx.Catalog().CreatePlans(ctx, plansForService(service.ID, plans))
	})
	if err != nil {
		return nil, err
	}

	return service, nil
}

// ServiceExists probes for a service by exact name match.
func (s *catalogService) ServiceExists(ctx context.Context, name string) (bool, error) {
	_, err := s.store.Catalog().FindServiceByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListServicesWithPlans returns the catalog with each service's plans
// reshaped into a map keyed by plan name.
func (s *catalogService) ListServicesWithPlans(ctx context.Context) ([]ServiceWithPlans, error) {
	services, err := s.store.Catalog().ListServicesWithPlans(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ServiceWithPlans, 0, len(services))
	for _, svc := range services {
		plans := make(map[string]datatypes.JSON, len(svc.Plans))
		for _, plan := range svc.Plans {
			plans[plan.PlanName] = plan.Features
		}
		out = append(out, ServiceWithPlans{
			ID:          svc.ID,
			ServiceName: svc.ServiceName,
			Plans:       plans,
		})
	}
	return out, nil
}

func (s *catalogService) ListServices(ctx context.Context) ([]model.Service, error) {
	return s.store.Catalog().ListServices(ctx)
}

func (s *catalogService) ListPlans(ctx context.Context) ([]model.Plan, error) {
	return s.store.Catalog().ListPlans(ctx)
}

// PlanFeatures returns the feature set of a plan within a service.
func (s *catalogService) PlanFeatures(ctx context.Context, serviceID uint, planName string) (datatypes.JSON, error) {
	plan, err := s.store.Catalog().FindPlan(ctx, serviceID, planName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPlanNotFound
		}
		return nil, err
	}
	return plan.Features, nil
}

// ReplaceServicePlans destructively replaces a service's plan set: existing
// plans are deleted and the new set inserted in one transaction, so a crash
// can no longer leave the service with zero plans.
func (s *catalogService) ReplaceServicePlans(ctx context.Context, serviceID uint, plans []PlanInput) error {
	if _, err := s.store.Catalog().FindServiceByID(ctx, serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrServiceNotFound
		}
		return err
	}

	// No plans key in the request leaves the service untouched; an empty
	// list is an explicit wipe.
	if plans == nil {
		return nil
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := tx.Catalog().DeletePlansByService(ctx, serviceID); err != nil {
			return err
		}
		if len(plans) == 0 {
			return nil
		}
		return tx.Catalog().CreatePlans(ctx, plansForService(serviceID, plans))
	})
}

// DeleteService removes a service and its plans atomically. Enrollments
// referencing the service are left in place; see the bulk enrollment delete
// for the cleanup the original exposed.
func (s *catalogService) DeleteService(ctx context.Context, serviceID uint) error {
	if _, err := s.store.Catalog().FindServiceByID(ctx, serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrServiceNotFound
		}
		return err
	}

	return s.store.WithTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if err := tx.Catalog().DeletePlansByService(ctx, serviceID); err != nil {
			return err
		}
		return tx.Catalog().DeleteService(ctx, serviceID)
	})
}

func plansForService(serviceID uint, plans []PlanInput) []model.Plan {
	rows := make([]model.Plan, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, model.Plan{
			ServiceID: serviceID,
			PlanName:  p.PlanName,
			Features:  p.Features,
		})
	}
	return rows
}
