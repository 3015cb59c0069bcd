package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"subhub/internal/model"
)

// EnrollmentRepository defines persistence operations for active enrollments.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	Find(ctx context.Context, customerID, serviceID uint) (*model.Enrollment, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]model.Enrollment, error)
	UpdatePlan(ctx context.Context, customerID, serviceID uint, planName string, features datatypes.JSON) (int64, error)
	DeleteByService(ctx context.Context, serviceID uint) (int64, error)
	DeleteByCustomer(ctx context.Context, customerID uint) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository builds a GORM-backed enrollment repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepository) Find(ctx context.Context, customerID, serviceID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND service_id = ?", customerID, serviceID).
		First(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ListByCustomer returns the customer's enrollments with the owning service
// preloaded so callers can expose service names.
func (r *enrollmentRepository) ListByCustomer(ctx context.Context, customerID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("customer_id = ?", customerID).
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

// UpdatePlan mutates the enrollment row in place and reports how many rows
// matched. Zero rows means no such enrollment.
func (r *enrollmentRepository) UpdatePlan(ctx context.Context, customerID, serviceID uint, planName string, features datatypes.JSON) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("customer_id = ? AND service_id = ?", customerID, serviceID).
		Updates(map[string]interface{}{
			"plan_name": planName,
			"features":  features,
		})
	return res.RowsAffected, res.Error
}

// DeleteByService removes every enrollment for the service, across all
// customers, and reports how many rows were deleted.
func (r *enrollmentRepository) DeleteByService(ctx context.Context, serviceID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Delete(&model.Enrollment{})
	return res.RowsAffected, res.Error
}

func (r *enrollmentRepository) DeleteByCustomer(ctx context.Context, customerID uint) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&model.Enrollment{}).Error
}
