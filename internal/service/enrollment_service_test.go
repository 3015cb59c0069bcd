package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	errs "subhub/internal/errors"
	"subhub/internal/model"
)

func TestEnrollmentService_Enroll(t *testing.T) {
	features := datatypes.JSON(`{"storage":"50GB","devices":2}`)

	t.Run("service not found", func(t *testing.T) {
		store := newStubStore()
		store.catalog.On("FindServiceByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewEnrollmentService(store)
		_, err := svc.Enroll(context.Background(), 1, 9, "Basic")

		assert.ErrorIs(t, err, errs.ErrServiceNotFound)
		store.assertExpectations(t)
	})

	t.Run("plan not found", func(t *testing.T) {
		store := newStubStore()
		store.catalog.On("FindServiceByID", mock.Anything, uint(2)).Return(&model.Service{ID: 2}, nil)
		store.catalog.On("FindPlan", mock.Anything, uint(2), "Missing").Return(nil, gorm.ErrRecordNotFound)

		svc := NewEnrollmentService(store)
		_, err := svc.Enroll(context.Background(), 1, 2, "Missing")

		assert.ErrorIs(t, err, errs.ErrPlanNotFound)
		store.assertExpectations(t)
	})

	t.Run("snapshots the plan features at enrollment time", func(t *testing.T) {
		store := newStubStore()
		store.catalog.On("FindServiceByID", mock.Anything, uint(2)).Return(&model.Service{ID: 2}, nil)
		store.catalog.On("FindPlan", mock.Anything, uint(2), "Basic").Return(&model.Plan{
			ID:        10,
			ServiceID: 2,
			PlanName:  "Basic",
			Features:  features,
		}, nil)
		store.enrollments.On("Create", mock.Anything, mock.AnythingOfType("*model.Enrollment")).Return(nil)

		svc := NewEnrollmentService(store)
		enrollment, err := svc.Enroll(context.Background(), 1, 2, "Basic")

		assert.NoError(t, err)
		assert.Equal(t, uint(1), enrollment.CustomerID)
		assert.Equal(t, uint(2), enrollment.ServiceID)
		assert.Equal(t, "Basic", enrollment.PlanName)
		assert.JSONEq(t, string(features), string(enrollment.Features))
		store.assertExpectations(t)
	})

	t.Run("later plan edits do not reach the snapshot", func(t *testing.T) {
		store := newStubStore()
		plan := &model.Plan{
			ID:        10,
			ServiceID: 2,
			PlanName:  "Basic",
			Features:  datatypes.JSON(`{"storage":"50GB"}`),
		}
		store.catalog.On("FindServiceByID", mock.Anything, uint(2)).Return(&model.Service{ID: 2}, nil)
		store.catalog.On("FindPlan", mock.Anything, uint(2), "Basic").Return(plan, nil)
		store.enrollments.On("Create", mock.Anything, mock.AnythingOfType("*model.Enrollment")).Return(nil)

		svc := NewEnrollmentService(store)
		enrollment, err := svc.Enroll(context.Background(), 1, 2, "Basic")
		assert.NoError(t, err)

		// Mutate the plan both in place and by reassignment; the enrollment
		// must keep the features it was created with.
		copy(plan.Features, []byte(`{"storage":"90GB"}`))
		plan.Features = datatypes.JSON(`{"storage":"1TB"}`)

		assert.JSONEq(t, `{"storage":"50GB"}`, string(enrollment.Features))
		store.assertExpectations(t)
	})
}

func TestEnrollmentService_CurrentPlan(t *testing.T) {
	store := newStubStore()
	store.enrollments.On("Find", mock.Anything, uint(1), uint(2)).Return(&model.Enrollment{
		CustomerID: 1, ServiceID: 2, PlanName: "Premium",
	}, nil)
	store.enrollments.On("Find", mock.Anything, uint(1), uint(3)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewEnrollmentService(store)

	plan, err := svc.CurrentPlan(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, "Premium", plan)

	_, err = svc.CurrentPlan(context.Background(), 1, 3)
	assert.ErrorIs(t, err, errs.ErrEnrollmentNotFound)

	store.assertExpectations(t)
}

func TestEnrollmentService_UpdatePlan(t *testing.T) {
	features := datatypes.JSON(`{"storage":"2TB"}`)

	t.Run("updates in place", func(t *testing.T) {
		store := newStubStore()
		store.enrollments.On("UpdatePlan", mock.Anything, uint(1), uint(2), "Premium", features).Return(int64(1), nil)

		svc := NewEnrollmentService(store)
		assert.NoError(t, svc.UpdatePlan(context.Background(), 1, 2, "Premium", features))
		store.assertExpectations(t)
	})

	t.Run("zero affected rows is not found", func(t *testing.T) {
		store := newStubStore()
		store.enrollments.On("UpdatePlan", mock.Anything, uint(1), uint(2), "Premium", features).Return(int64(0), nil)

		svc := NewEnrollmentService(store)
		err := svc.UpdatePlan(context.Background(), 1, 2, "Premium", features)
		assert.ErrorIs(t, err, errs.ErrEnrollmentNotFound)
		store.assertExpectations(t)
	})
}

func TestEnrollmentService_CustomerDetails(t *testing.T) {
	features := datatypes.JSON(`{"quality":"4K"}`)

	t.Run("customer not found", func(t *testing.T) {
		store := newStubStore()
		store.users.On("FindCustomerByID", mock.Anything, uint(8)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewEnrollmentService(store)
		_, err := svc.CustomerDetails(context.Background(), 8)
		assert.ErrorIs(t, err, errs.ErrCustomerNotFound)
		store.assertExpectations(t)
	})

	t.Run("joins enrollments with service names", func(t *testing.T) {
		store := newStubStore()
		store.users.On("FindCustomerByID", mock.Anything, uint(8)).Return(&model.User{
			ID: 8, Name: "Jo", Email: "jo@x.com", Role: model.RoleCustomer,
		}, nil)
		store.enrollments.On("ListByCustomer", mock.Anything, uint(8)).Return([]model.Enrollment{
			{
				CustomerID: 8,
				ServiceID:  2,
				PlanName:   "Family",
				Features:   features,
				Service:    model.Service{ID: 2, ServiceName: "Video Streaming"},
			},
		}, nil)

		svc := NewEnrollmentService(store)
		details, err := svc.CustomerDetails(context.Background(), 8)

		assert.NoError(t, err)
		assert.Equal(t, uint(8), details.ID)
		assert.Equal(t, "jo@x.com", details.Email)
		assert.Len(t, details.ServicesEnrolled, 1)
		assert.Equal(t, "Video Streaming", details.ServicesEnrolled[0].ServiceName)
		assert.Equal(t, "Family", details.ServicesEnrolled[0].Plan)
		store.assertExpectations(t)
	})
}

func TestEnrollmentService_ListCustomers(t *testing.T) {
	t.Run("empty listing is not found", func(t *testing.T) {
		store := newStubStore()
		store.users.On("ListByRole", mock.Anything, model.RoleCustomer).Return([]model.User{}, nil)

		svc := NewEnrollmentService(store)
		_, err := svc.ListCustomers(context.Background())
		assert.ErrorIs(t, err, errs.ErrNoCustomers)
		store.assertExpectations(t)
	})

	t.Run("maps users to summaries", func(t *testing.T) {
		store := newStubStore()
		store.users.On("ListByRole", mock.Anything, model.RoleCustomer).Return([]model.User{
			{ID: 1, Name: "A", Email: "a@x.com", Role: model.RoleCustomer},
			{ID: 2, Name: "B", Email: "b@x.com", Role: model.RoleCustomer},
		}, nil)

		svc := NewEnrollmentService(store)
		customers, err := svc.ListCustomers(context.Background())

		assert.NoError(t, err)
		assert.Len(t, customers, 2)
		assert.Equal(t, CustomerSummary{ID: 1, Name: "A", Email: "a@x.com"}, customers[0])
		store.assertExpectations(t)
	})
}

func TestEnrollmentService_RemoveByService(t *testing.T) {
	t.Run("deletes across all customers", func(t *testing.T) {
		store := newStubStore()
		store.enrollments.On("DeleteByService", mock.Anything, uint(2)).Return(int64(3), nil)

		svc := NewEnrollmentService(store)
		assert.NoError(t, svc.RemoveByService(context.Background(), 2))
		store.assertExpectations(t)
	})

	t.Run("nothing to delete is not found", func(t *testing.T) {
		store := newStubStore()
		store.enrollments.On("DeleteByService", mock.Anything, uint(2)).Return(int64(0), nil)

		svc := NewEnrollmentService(store)
		err := svc.RemoveByService(context.Background(), 2)
		assert.ErrorIs(t, err, errs.ErrEnrollmentNotFound)
		store.assertExpectations(t)
	})
}
