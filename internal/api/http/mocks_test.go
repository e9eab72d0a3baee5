package http

import (
	"context"
	"time"

	"rentals-service/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRentalService
type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) BookCar(ctx context.Context, req domain.BookingRequest) (*domain.Rental, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) GetRentalsByUser(ctx context.Context, username string) ([]domain.Rental, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalService) GetRental(ctx context.Context, username string, rentalUID uuid.UUID) (*domain.Rental, error) {
	args := m.Called(ctx, username, rentalUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ChangeStatus(ctx context.Context, username string, rentalUID uuid.UUID, status domain.RentalStatus) (*domain.Rental, error) {
	args := m.Called(ctx, username, rentalUID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalService) ExpireStaleBookings(ctx context.Context, now time.Time, grace time.Duration) (int, error) {
	args := m.Called(ctx, now, grace)
	return args.Int(0), args.Error(1)
}
