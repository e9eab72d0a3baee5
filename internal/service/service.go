package service

import (
	"context"
	"time"

	"rentals-service/internal/domain"

	"github.com/google/uuid"
)

type RentalService interface {
	BookCar(ctx context.Context, req domain.BookingRequest) (*domain.Rental, error)
	GetRentalsByUser(ctx context.Context, username string) ([]domain.Rental, error)
	GetRental(ctx context.Context, username string, rentalUID uuid.UUID) (*domain.Rental, error)
	ChangeStatus(ctx context.Context, username string, rentalUID uuid.UUID, status domain.RentalStatus) (*domain.Rental, error)
	// ExpireStaleBookings cancels PENDING rentals whose window ended more
	// than grace before now and returns how many were cancelled.
	ExpireStaleBookings(ctx context.Context, now time.Time, grace time.Duration) (int, error)
}
