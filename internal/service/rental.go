package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rentals-service/internal/domain"
	"rentals-service/internal/logger"
	"rentals-service/internal/repository"

	"github.com/google/uuid"
)

// maxStatusAttempts bounds the reload-and-retry loop when a concurrent
// writer changes the status between read and patch.
const maxStatusAttempts = 3

type rentalService struct {
	rentalRepo repository.RentalRepository
	newUID     func() uuid.UUID
}

func NewRentalService(rentalRepo repository.RentalRepository) RentalService {
	return &rentalService{
		rentalRepo: rentalRepo,
		newUID:     uuid.New,
	}
}

func (s *rentalService) BookCar(ctx context.Context, req domain.BookingRequest) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.BookCar", "username", req.Username, "carUID", req.CarUID)

	rental := &domain.Rental{
		RentalUID:  req.RentalUID,
		Username:   strings.TrimSpace(req.Username),
		PaymentUID: req.PaymentUID,
		CarUID:     req.CarUID,
		DateFrom:   req.DateFrom.UTC(),
		DateTo:     req.DateTo.UTC(),
		Status:     domain.RentalStatusPending,
	}
	if rental.RentalUID == uuid.Nil {
		rental.RentalUID = s.newUID()
	}
	if err := rental.Validate(); err != nil {
		logger.ExitMethodWithError("rentalService.BookCar", err, domain.IsExpected(err), "username", rental.Username)
		return nil, err
	}

	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		logger.ExitMethodWithError("rentalService.BookCar", err, domain.IsExpected(err), "rentalUID", rental.RentalUID)
		return nil, err
	}

	logger.InfoContext(ctx, "Rental booked",
		"rental_uid", rental.RentalUID,
		"username", rental.Username,
		"car_uid", rental.CarUID,
		"date_from", rental.DateFrom,
		"date_to", rental.DateTo)
	logger.ExitMethod("rentalService.BookCar", "rentalUID", rental.RentalUID)
	return rental, nil
}

func (s *rentalService) GetRentalsByUser(ctx context.Context, username string) ([]domain.Rental, error) {
	logger.EnterMethod("rentalService.GetRentalsByUser", "username", username)

	if strings.TrimSpace(username) == "" {
		err := domain.NewValidationError("username", "is required", nil)
		logger.ExitMethodWithError("rentalService.GetRentalsByUser", err, true)
		return nil, err
	}
	rentals, err := s.rentalRepo.ListByUsername(ctx, username)
	if err != nil {
		logger.ExitMethodWithError("rentalService.GetRentalsByUser", err, domain.IsExpected(err), "username", username)
		return nil, err
	}

	logger.ExitMethod("rentalService.GetRentalsByUser", "username", username, "count", len(rentals))
	return rentals, nil
}

func (s *rentalService) GetRental(ctx context.Context, username string, rentalUID uuid.UUID) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.GetRental", "username", username, "rentalUID", rentalUID)

	if strings.TrimSpace(username) == "" {
		err := domain.NewValidationError("username", "is required", nil)
		logger.ExitMethodWithError("rentalService.GetRental", err, true, "rentalUID", rentalUID)
		return nil, err
	}
	rental, err := s.rentalRepo.GetByUID(ctx, username, rentalUID)
	if err != nil {
		logger.ExitMethodWithError("rentalService.GetRental", err, domain.IsExpected(err), "username", username, "rentalUID", rentalUID)
		return nil, err
	}

	logger.ExitMethod("rentalService.GetRental", "rentalUID", rentalUID, "status", rental.Status)
	return rental, nil
}

func (s *rentalService) ChangeStatus(ctx context.Context, username string, rentalUID uuid.UUID, status domain.RentalStatus) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.ChangeStatus", "username", username, "rentalUID", rentalUID, "status", status)

	rental, err := s.changeStatus(ctx, username, rentalUID, status)
	if err != nil {
		logger.ExitMethodWithError("rentalService.ChangeStatus", err, domain.IsExpected(err), "rentalUID", rentalUID, "status", status)
		return nil, err
	}

	logger.ExitMethod("rentalService.ChangeStatus", "rentalUID", rentalUID, "status", rental.Status)
	return rental, nil
}

func (s *rentalService) changeStatus(ctx context.Context, username string, rentalUID uuid.UUID, status domain.RentalStatus) (*domain.Rental, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "unknown rental status", string(status))
	}

	var lastErr error
	for attempt := 1; attempt <= maxStatusAttempts; attempt++ {
		rental, err := s.rentalRepo.GetByUID(ctx, username, rentalUID)
		if err != nil {
			return nil, err
		}

		previous := rental.Status
		if previous.IsTerminal() || !previous.CanTransitionTo(status) {
			return nil, domain.NewInvalidTransitionError(previous, status)
		}

		rental.Status = status
		if err := rental.Validate(); err != nil {
			return nil, err
		}

		err = s.rentalRepo.Patch(ctx, rental, previous)
		if err == nil {
			logger.InfoContext(ctx, "Rental status changed",
				"rental_uid", rentalUID,
				"username", username,
				"from", previous,
				"to", status)
			return rental, nil
		}
		if !domain.IsConflictError(err) {
			return nil, err
		}

		// Lost a race with another writer; reload and re-validate.
		lastErr = err
		logger.WarnContext(ctx, "Concurrent rental status change, retrying",
			"rental_uid", rentalUID, "attempt", attempt, "error", err)
	}
	return nil, lastErr
}

func (s *rentalService) ExpireStaleBookings(ctx context.Context, now time.Time, grace time.Duration) (int, error) {
	logger.EnterMethod("rentalService.ExpireStaleBookings", "now", now, "grace", grace)

	cutoff := now.Add(-grace)
	stale, err := s.rentalRepo.ListByStatus(ctx, domain.RentalStatusPending, cutoff)
	if err != nil {
		logger.ExitMethodWithError("rentalService.ExpireStaleBookings", err, false, "cutoff", cutoff)
		return 0, fmt.Errorf("failed to list stale bookings: %w", err)
	}

	cancelled := 0
	for _, rt := range stale {
		_, err := s.ChangeStatus(ctx, rt.Username, rt.RentalUID, domain.RentalStatusCancelled)
		switch {
		case err == nil:
			cancelled++
		case domain.IsExpected(err):
			// Someone else moved it along first.
			logger.DebugContext(ctx, "Skipping stale booking", "rental_uid", rt.RentalUID, "error", err)
		default:
			logger.ExitMethodWithError("rentalService.ExpireStaleBookings", err, false, "cancelled", cancelled)
			return cancelled, fmt.Errorf("failed to cancel rental %s: %w", rt.RentalUID, err)
		}
	}

	logger.ExitMethod("rentalService.ExpireStaleBookings", "found", len(stale), "cancelled", cancelled)
	return cancelled, nil
}
