package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRentalStatus_CanTransitionTo(t *testing.T) {
	all := []RentalStatus{RentalStatusPending, RentalStatusInProgress, RentalStatusFinished, RentalStatusCancelled}
	allowed := map[string]bool{
		"PENDING->IN_PROGRESS":   true,
		"PENDING->CANCELLED":     true,
		"IN_PROGRESS->FINISHED":  true,
		"IN_PROGRESS->CANCELLED": true,
	}

	for _, from := range all {
		for _, to := range all {
			key := fmt.Sprintf("%s->%s", from, to)
			assert.Equal(t, allowed[key], from.CanTransitionTo(to), key)
		}
	}

	assert.True(t, RentalStatusFinished.IsTerminal())
	assert.True(t, RentalStatusCancelled.IsTerminal())
	assert.False(t, RentalStatusPending.IsTerminal())
	assert.False(t, RentalStatus("BOGUS").CanTransitionTo(RentalStatusPending))
}

func TestParseRentalStatus(t *testing.T) {
	s, err := ParseRentalStatus(" in_progress ")
	require.NoError(t, err)
	assert.Equal(t, RentalStatusInProgress, s)

	_, err = ParseRentalStatus("RETURNED")
	assert.True(t, IsValidationError(err))
}

func TestRental_Validate(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	valid := func() Rental {
		return Rental{
			RentalUID:  uuid.New(),
			Username:   "alice",
			CarUID:     uuid.New(),
			PaymentUID: uuid.New(),
			DateFrom:   from,
			DateTo:     from.Add(96 * time.Hour),
			Status:     RentalStatusPending,
		}
	}

	r := valid()
	assert.NoError(t, r.Validate())

	r = valid()
	r.DateTo = r.DateFrom
	assert.NoError(t, r.Validate(), "single-instant window is inclusive")

	cases := map[string]func(*Rental){
		"inverted window": func(r *Rental) { r.DateTo = r.DateFrom.Add(-time.Hour) },
		"missing from":    func(r *Rental) { r.DateFrom = time.Time{} },
		"missing user":    func(r *Rental) { r.Username = "  " },
		"missing car":     func(r *Rental) { r.CarUID = uuid.Nil },
		"missing payment": func(r *Rental) { r.PaymentUID = uuid.Nil },
		"missing uid":     func(r *Rental) { r.RentalUID = uuid.Nil },
		"bad status":      func(r *Rental) { r.Status = "LOST" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := valid()
			mutate(&r)
			err := r.Validate()
			assert.True(t, IsValidationError(err), "got %v", err)
		})
	}
}

func TestErrorKinds(t *testing.T) {
	wrapped := fmt.Errorf("store: %w", NewNotFoundError("rental", "x"))
	assert.True(t, IsNotFoundError(wrapped))
	assert.True(t, IsExpected(wrapped))
	assert.False(t, IsConflictError(wrapped))

	assert.True(t, IsInvalidTransitionError(NewInvalidTransitionError(RentalStatusCancelled, RentalStatusInProgress)))
	assert.Equal(t, "rental is already FINISHED and can no longer change to CANCELLED",
		NewInvalidTransitionError(RentalStatusFinished, RentalStatusCancelled).Error())
	assert.Equal(t, "rental status cannot change from IN_PROGRESS to PENDING",
		NewInvalidTransitionError(RentalStatusInProgress, RentalStatusPending).Error())
	assert.Equal(t, "rental with rental_uid 'x' already exists", NewConflictError("rental", "rental_uid", "x").Error())
	assert.False(t, IsExpected(fmt.Errorf("boom")))
}
