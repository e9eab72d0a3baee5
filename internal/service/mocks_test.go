package service

import (
	"context"
	"time"

	"rentals-service/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) ListByUsername(ctx context.Context, username string) ([]domain.Rental, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) GetByUID(ctx context.Context, username string, rentalUID uuid.UUID) (*domain.Rental, error) {
	args := m.Called(ctx, username, rentalUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) Patch(ctx context.Context, rental *domain.Rental, expected domain.RentalStatus) error {
	args := m.Called(ctx, rental, expected)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByStatus(ctx context.Context, status domain.RentalStatus, endedBefore time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, status, endedBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
