package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type RentalStatus string

const (
	RentalStatusPending    RentalStatus = "PENDING"
	RentalStatusInProgress RentalStatus = "IN_PROGRESS"
	RentalStatusFinished   RentalStatus = "FINISHED"
	RentalStatusCancelled  RentalStatus = "CANCELLED"
)

// rentalTransitions lists the statuses reachable from each state.
// FINISHED and CANCELLED are terminal.
var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalStatusPending:    {RentalStatusInProgress, RentalStatusCancelled},
	RentalStatusInProgress: {RentalStatusFinished, RentalStatusCancelled},
	RentalStatusFinished:   nil,
	RentalStatusCancelled:  nil,
}

// ParseRentalStatus accepts a status name in any letter case.
func ParseRentalStatus(s string) (RentalStatus, error) {
	status := RentalStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", NewValidationError("status", "unknown rental status", s)
	}
	return status, nil
}

func (s RentalStatus) IsValid() bool {
	_, ok := rentalTransitions[s]
	return ok
}

func (s RentalStatus) IsTerminal() bool {
	return s.IsValid() && len(rentalTransitions[s]) == 0
}

// CanTransitionTo reports whether next is directly reachable from s.
func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	for _, allowed := range rentalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Rental is a booking of a car by a user. ID is internal to the store and
// never leaves the service; RentalUID is the external identifier.
type Rental struct {
	ID         int64        `db:"id" json:"-"`
	RentalUID  uuid.UUID    `db:"rental_uid" json:"rental_uid"`
	Username   string       `db:"username" json:"username"`
	PaymentUID uuid.UUID    `db:"payment_uid" json:"payment_uid"`
	CarUID     uuid.UUID    `db:"car_uid" json:"car_uid"`
	DateFrom   time.Time    `db:"date_from" json:"date_from"`
	DateTo     time.Time    `db:"date_to" json:"date_to"`
	Status     RentalStatus `db:"status" json:"status"`
}

// Validate checks the record-level invariants that must hold before any write.
func (r *Rental) Validate() error {
	if r.RentalUID == uuid.Nil {
		return NewValidationError("rentalUid", "is required", nil)
	}
	if strings.TrimSpace(r.Username) == "" {
		return NewValidationError("username", "is required", nil)
	}
	if r.CarUID == uuid.Nil {
		return NewValidationError("carUid", "is required", nil)
	}
	if r.PaymentUID == uuid.Nil {
		return NewValidationError("paymentUid", "is required", nil)
	}
	if err := ValidateWindow(r.DateFrom, r.DateTo); err != nil {
		return err
	}
	if !r.Status.IsValid() {
		return NewValidationError("status", "unknown rental status", string(r.Status))
	}
	return nil
}

// ValidateWindow checks that both bounds are set and dateFrom <= dateTo.
// The window is inclusive, so dateFrom == dateTo is a valid one-instant booking.
func ValidateWindow(from, to time.Time) error {
	if from.IsZero() {
		return NewValidationError("dateFrom", "is required", nil)
	}
	if to.IsZero() {
		return NewValidationError("dateTo", "is required", nil)
	}
	if from.After(to) {
		return NewValidationError("dateTo", "must not be before dateFrom", to.Format(time.RFC3339))
	}
	return nil
}

// BookingRequest carries the caller-supplied fields of a new rental.
// RentalUID is optional; a fresh one is generated when it is uuid.Nil.
type BookingRequest struct {
	RentalUID  uuid.UUID
	Username   string
	CarUID     uuid.UUID
	PaymentUID uuid.UUID
	DateFrom   time.Time
	DateTo     time.Time
}
