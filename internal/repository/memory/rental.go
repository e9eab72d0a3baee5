// Package memory keeps rentals in process memory. It is selected with
// `store: memory` and backs the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"rentals-service/internal/domain"
	"rentals-service/internal/repository"

	"github.com/google/uuid"
)

type rentalRepository struct {
	mu     sync.RWMutex
	nextID int64
	byUID  map[uuid.UUID]domain.Rental
}

func NewRentalRepository() repository.RentalRepository {
	return &rentalRepository{byUID: make(map[uuid.UUID]domain.Rental)}
}

func (r *rentalRepository) ListByUsername(ctx context.Context, username string) ([]domain.Rental, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rentals := make([]domain.Rental, 0)
	for _, rt := range r.byUID {
		if rt.Username == username {
			rentals = append(rentals, rt)
		}
	}
	sortByID(rentals)
	return rentals, nil
}

func (r *rentalRepository) GetByUID(ctx context.Context, username string, rentalUID uuid.UUID) (*domain.Rental, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.byUID[rentalUID]
	if !ok || rt.Username != username {
		return nil, domain.NewNotFoundError("rental", rentalUID.String())
	}
	return &rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUID[rt.RentalUID]; exists {
		return domain.NewConflictError("rental", "rental_uid", rt.RentalUID)
	}
	r.nextID++
	rt.ID = r.nextID
	r.byUID[rt.RentalUID] = normalize(*rt)
	return nil
}

func (r *rentalRepository) Patch(ctx context.Context, rt *domain.Rental, expected domain.RentalStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byUID[rt.RentalUID]
	if !ok {
		return domain.NewNotFoundError("rental", rt.RentalUID.String())
	}
	if stored.Status != expected {
		return &domain.ConflictError{Message: "rental status was changed concurrently"}
	}

	updated := normalize(*rt)
	updated.ID = stored.ID
	updated.Username = stored.Username
	r.byUID[rt.RentalUID] = updated
	rt.ID = stored.ID
	return nil
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.RentalStatus, endedBefore time.Time) ([]domain.Rental, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rentals := make([]domain.Rental, 0)
	for _, rt := range r.byUID {
		if rt.Status == status && rt.DateTo.Before(endedBefore) {
			rentals = append(rentals, rt)
		}
	}
	sortByID(rentals)
	return rentals, nil
}

func normalize(rt domain.Rental) domain.Rental {
	rt.DateFrom = rt.DateFrom.UTC()
	rt.DateTo = rt.DateTo.UTC()
	return rt
}

func sortByID(rentals []domain.Rental) {
	sort.Slice(rentals, func(i, j int) bool { return rentals[i].ID < rentals[j].ID })
}
