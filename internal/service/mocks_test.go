package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"

	"subhub/internal/model"
	"subhub/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindCustomerByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCatalogRepository is a mock implementation of repository.CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) CreateService(ctx context.Context, service *model.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockCatalogRepository) CreatePlans(ctx context.Context, plans []model.Plan) error {
	args := m.Called(ctx, plans)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindServiceByID(ctx context.Context, id uint) (*model.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *MockCatalogRepository) FindServiceByName(ctx context.Context, name string) (*model.Service, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *MockCatalogRepository) FindPlan(ctx context.Context, serviceID uint, planName string) (*model.Plan, error) {
	args := m.Called(ctx, serviceID, planName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Plan), args.Error(1)
}

func (m *MockCatalogRepository) ListServices(ctx context.Context) ([]model.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Service), args.Error(1)
}

func (m *MockCatalogRepository) ListServicesWithPlans(ctx context.Context) ([]model.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Service), args.Error(1)
}

func (m *MockCatalogRepository) ListPlans(ctx context.Context) ([]model.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Plan), args.Error(1)
}

func (m *MockCatalogRepository) DeletePlansByService(ctx context.Context, serviceID uint) error {
	args := m.Called(ctx, serviceID)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteService(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEnrollmentRepository is a mock implementation of repository.EnrollmentRepository.
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) Find(ctx context.Context, customerID, serviceID uint) (*model.Enrollment, error) {
	args := m.Called(ctx, customerID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) ListByCustomer(ctx context.Context, customerID uint) ([]model.Enrollment, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) UpdatePlan(ctx context.Context, customerID, serviceID uint, planName string, features datatypes.JSON) (int64, error) {
	args := m.Called(ctx, customerID, serviceID, planName, features)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEnrollmentRepository) DeleteByService(ctx context.Context, serviceID uint) (int64, error) {
	args := m.Called(ctx, serviceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEnrollmentRepository) DeleteByCustomer(ctx context.Context, customerID uint) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

// MockArchiveRepository is a mock implementation of repository.ArchiveRepository.
type MockArchiveRepository struct {
	mock.Mock
}

func (m *MockArchiveRepository) Create(ctx context.Context, archive *model.Archive) error {
	args := m.Called(ctx, archive)
	return args.Error(0)
}

func (m *MockArchiveRepository) List(ctx context.Context) ([]model.Archive, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Archive), args.Error(1)
}

// stubStore wires the repository mocks behind the Store interface.
// WithTransaction just runs the function against the same mocks, which is
// enough to assert that the transactional flows touch the right tables.
type stubStore struct {
	users       *MockUserRepository
	catalog     *MockCatalogRepository
	enrollments *MockEnrollmentRepository
	archives    *MockArchiveRepository
}

func newStubStore() *stubStore {
	return &stubStore{
		users:       new(MockUserRepository),
		catalog:     new(MockCatalogRepository),
		enrollments: new(MockEnrollmentRepository),
		archives:    new(MockArchiveRepository),
	}
}

func (s *stubStore) Users() repository.UserRepository { return s.users }
func (s *stubStore) Catalog() repository.CatalogRepository { return s.catalog }
func (s *stubStore) Enrollments() repository.EnrollmentRepository { return s.enrollments }
func (s *stubStore) Archives() repository.ArchiveRepository { return s.archives }

func (s *stubStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	return fn(ctx, s)
}

func (s *stubStore) assertExpectations(t mock.TestingT) {
	s.users.AssertExpectations(t)
	s.catalog.AssertExpectations(t)
	s.enrollments.AssertExpectations(t)
	s.archives.AssertExpectations(t)
}
