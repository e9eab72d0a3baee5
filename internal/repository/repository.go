package repository

import (
	"context"
	"time"

	"rentals-service/internal/domain"

	"github.com/google/uuid"
)

// RentalRepository persists rental records. Implementations return
// *domain.NotFoundError and *domain.ConflictError for the expected
// outcomes and wrap everything else.
type RentalRepository interface {
	// ListByUsername returns the user's rentals ordered by internal id.
	ListByUsername(ctx context.Context, username string) ([]domain.Rental, error)
	// GetByUID only finds rentals owned by username.
	GetByUID(ctx context.Context, username string, rentalUID uuid.UUID) (*domain.Rental, error)
	// Create inserts the rental atomically and sets its ID.
	Create(ctx context.Context, rental *domain.Rental) error
	// Patch overwrites the mutable fields of the rental keyed by RentalUID,
	// provided its stored status still equals expected.
	Patch(ctx context.Context, rental *domain.Rental, expected domain.RentalStatus) error
	// ListByStatus returns rentals in status whose DateTo is before endedBefore.
	ListByStatus(ctx context.Context, status domain.RentalStatus, endedBefore time.Time) ([]domain.Rental, error)
}
