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

// EnrolledService is one enrollment inside a customer detail view.
type EnrolledService struct {
	ServiceID   uint           `json:"service_id"`
	ServiceName string         `json:"service_name"`
	Plan        string         `json:"plan"`
	Features    datatypes.JSON `json:"features"`
}

// CustomerDetails is a customer joined with their active enrollments.
type CustomerDetails struct {
	ID               uint              `json:"id"`
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	ServicesEnrolled []EnrolledService `json:"services_enrolled"`
}

// CustomerSummary is the admin-facing customer listing entry.
type CustomerSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EnrollmentService handles customer enrollment in catalog services.
type EnrollmentService interface {
	Enroll(ctx context.Context, customerID, serviceID uint, planName string) (*model.Enrollment, error)
	CurrentPlan(ctx context.Context, customerID, serviceID uint) (string, error)
	UpdatePlan(ctx context.Context, customerID, serviceID uint, planName string, features datatypes.JSON) error
	CustomerDetails(ctx context.Context, customerID uint) (*CustomerDetails, error)
	ListCustomers(ctx context.Context) ([]CustomerSummary, error)
	RemoveByService(ctx context.Context, serviceID uint) error
}

type enrollmentService struct {
	store repository.Store
}

// NewEnrollmentService creates a new enrollment service.
func NewEnrollmentService(store repository.Store) EnrollmentService {
	return &enrollmentService{store: store}
}

// Enroll creates an enrollment snapshotting the plan's current features.
// Later plan edits do not reach rows written here. There is deliberately no
// duplicate-enrollment guard; see the design notes.
func (s *enrollmentService) Enroll(ctx context.Context, customerID, serviceID uint, planName string) (*model.Enrollment, error) {
	if _, err := s.store.Catalog().FindServiceByID(ctx, serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrServiceNotFound
		}
		return nil, err
	}

	plan, err := s.store.Catalog().FindPlan(ctx, serviceID, planName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPlanNotFound
		}
		return nil, err
	}

	// Copy the feature bytes so the enrollment row owns its snapshot and
	// later edits to the plan cannot reach it.
	snapshot := make(datatypes.JSON, len(plan.Features))
	copy(snapshot, plan.Features)

	enrollment := &model.Enrollment{
		CustomerID: customerID,
		ServiceID:  serviceID,
		PlanName:   plan.PlanName,
		Features:   snapshot,
	}
	if err := s.store.Enrollments().Create(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// CurrentPlan returns the plan name of the customer's enrollment in a service.
func (s *enrollmentService) CurrentPlan(ctx context.Context, customerID, serviceID uint) (string, error) {
	enrollment, err := s.store.Enrollments().Find(ctx, customerID, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.ErrEnrollmentNotFound
		}
		return "", err
	}
	return enrollment.PlanName, nil
}

// UpdatePlan mutates the enrollment in place. Zero affected rows is reported
// as not found; an update writing identical values is indistinguishable from
// a missing row at this layer.
func (s *enrollmentService) UpdatePlan(ctx context.Context, customerID, serviceID uint, planName string, features datatypes.JSON) error {
	rows, err := s.store.Enrollments().UpdatePlan(ctx, customerID, serviceID, planName, features)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.ErrEnrollmentNotFound
	}
	return nil
}

// CustomerDetails returns a customer (role must be customer) with all active
// enrollments and their service names.
func (s *enrollmentService) CustomerDetails(ctx context.Context, customerID uint) (*CustomerDetails, error) {
	customer, err := s.store.Users().FindCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrCustomerNotFound
		}
		return nil, err
	}

	enrollments, err := s.store.Enrollments().ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	enrolled := make([]EnrolledService, 0, len(enrollments))
	for _, e := range enrollments {
		enrolled = append(enrolled, EnrolledService{
			ServiceID:   e.ServiceID,
			ServiceName: e.Service.ServiceName,
			Plan:        e.PlanName,
			Features:    e.Features,
		})
	}

	return &CustomerDetails{
		ID:               customer.ID,
		Name:             customer.Name,
		Email:            customer.Email,
		ServicesEnrolled: enrolled,
	}, nil
}

// ListCustomers returns all customer-role users. An empty catalog of
// customers is reported as not found, which the existing frontend expects.
func (s *enrollmentService) ListCustomers(ctx context.Context) ([]CustomerSummary, error) {
	users, err := s.store.Users().ListByRole(ctx, model.RoleCustomer)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errs.ErrNoCustomers
	}

	customers := make([]CustomerSummary, 0, len(users))
	for _, u := range users {
		customers = append(customers, CustomerSummary{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return customers, nil
}

// RemoveByService deletes every enrollment for the service across all
// customers. The route is keyed by service id alone, so this is a bulk
// delete, not a point delete.
func (s *enrollmentService) RemoveByService(ctx context.Context, serviceID uint) error {
	rows, err := s.store.Enrollments().DeleteByService(ctx, serviceID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.ErrEnrollmentNotFound
	}
	return nil
}
