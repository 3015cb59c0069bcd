package repository

import (
	"context"

	"gorm.io/gorm"

	"subhub/internal/model"
)

// CatalogRepository defines persistence operations for the service catalog.
// Services and their plans form one aggregate; plan rows never outlive the
// owning service.
type CatalogRepository interface {
	CreateService(ctx context.Context, service *model.Service) error
	CreatePlans(ctx context.Context, plans []model.Plan) error
	FindServiceByID(ctx context.Context, id uint) (*model.Service, error)
	FindServiceByName(ctx context.Context, name string) (*model.Service, error)
	FindPlan(ctx context.Context, serviceID uint, planName string) (*model.Plan, error)
	ListServices(ctx context.Context) ([]model.Service, error)
	ListServicesWithPlans(ctx context.Context) ([]model.Service, error)
	ListPlans(ctx context.Context) ([]model.Plan, error)
	DeletePlansByService(ctx context.Context, serviceID uint) error
	DeleteService(ctx context.Context, id uint) error
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository builds a GORM-backed catalog repository.
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateService(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *catalogRepository) CreatePlans(ctx context.Context, plans []model.Plan) error {
	return r.db.WithContext(ctx).Create(&plans).Error
}

func (r *catalogRepository) FindServiceByID(ctx context.Context, id uint) (*model.Service, error) {
	var service model.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *catalogRepository) FindServiceByName(ctx context.Context, name string) (*model.Service, error) {
	var service model.Service
	if err := r.db.WithContext(ctx).Where("service_name = ?", name).First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *catalogRepository) FindPlan(ctx context.Context, serviceID uint, planName string) (*model.Plan, error) {
	var plan model.Plan
	if err := r.db.WithContext(ctx).
		Where("service_id = ? AND plan_name = ?", serviceID, planName).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *catalogRepository) ListServices(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	if err := r.db.WithContext(ctx).Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *catalogRepository) ListServicesWithPlans(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	if err := r.db.WithContext(ctx).Preload("Plans").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *catalogRepository) ListPlans(ctx context.Context) ([]model.Plan, error) {
	var plans []model.Plan
	if err := r.db.WithContext(ctx).Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *catalogRepository) DeletePlansByService(ctx context.Context, serviceID uint) error {
	return r.db.WithContext(ctx).Where("service_id = ?", serviceID).Delete(&model.Plan{}).Error
}

func (r *catalogRepository) DeleteService(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Service{}, id).Error
}
