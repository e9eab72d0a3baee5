package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentals-service/internal/domain"
	"rentals-service/internal/logger"
	"rentals-service/internal/repository"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const rentalTable = "rental"

var rentalColumns = []interface{}{"id", "rental_uid", "username", "payment_uid", "car_uid", "date_from", "date_to", "status"}

type rentalRepository struct {
	db *sqlx.DB
}

func NewRentalRepository(db *sqlx.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) ListByUsername(ctx context.Context, username string) ([]domain.Rental, error) {
	query, args, err := dialect.From(rentalTable).
		Select(rentalColumns...).
		Where(goqu.Ex{"username": username}).
		Order(goqu.I("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build rental list query: %w", err)
	}
	return r.selectRentals(ctx, "ListByUsername", query, args...)
}

func (r *rentalRepository) GetByUID(ctx context.Context, username string, rentalUID uuid.UUID) (*domain.Rental, error) {
	query := `SELECT id, rental_uid, username, payment_uid, car_uid, date_from, date_to, status
	          FROM rental WHERE rental_uid = $1 AND username = $2`
	logger.DatabaseCall("GetByUID", query, "rental_uid", rentalUID, "username", username)

	var rt domain.Rental
	err := r.db.GetContext(ctx, &rt, query, rentalUID, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("rental", rentalUID.String())
	}
	if err != nil {
		logger.DatabaseResult("GetByUID", 0, err)
		return nil, fmt.Errorf("failed to get rental: %w", err)
	}
	toUTC(&rt)
	return &rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rental (rental_uid, username, payment_uid, car_uid, date_from, date_to, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	logger.DatabaseCall("Create", query, "rental_uid", rt.RentalUID)

	err := r.db.QueryRowxContext(ctx, query,
		rt.RentalUID, rt.Username, rt.PaymentUID, rt.CarUID, rt.DateFrom.UTC(), rt.DateTo.UTC(), rt.Status,
	).Scan(&rt.ID)
	if isUniqueViolation(err) {
		return domain.NewConflictError("rental", "rental_uid", rt.RentalUID)
	}
	logger.DatabaseResult("Create", 1, err)
	if err != nil {
		return fmt.Errorf("failed to create rental: %w", err)
	}
	return nil
}

func (r *rentalRepository) Patch(ctx context.Context, rt *domain.Rental, expected domain.RentalStatus) error {
	query := `UPDATE rental SET payment_uid=$1, car_uid=$2, date_from=$3, date_to=$4, status=$5
	          WHERE rental_uid=$6 AND status=$7`
	logger.DatabaseCall("Patch", query, "rental_uid", rt.RentalUID, "expected_status", expected)

	res, err := r.db.ExecContext(ctx, query,
		rt.PaymentUID, rt.CarUID, rt.DateFrom.UTC(), rt.DateTo.UTC(), rt.Status, rt.RentalUID, expected,
	)
	if err != nil {
		logger.DatabaseResult("Patch", 0, err)
		return fmt.Errorf("failed to patch rental: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read patch result: %w", err)
	}
	logger.DatabaseResult("Patch", affected, nil)
	if affected == 1 {
		return nil
	}

	// Nothing matched: either the rental is gone or its status moved on.
	var current string
	err = r.db.GetContext(ctx, &current, `SELECT status FROM rental WHERE rental_uid = $1`, rt.RentalUID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError("rental", rt.RentalUID.String())
	}
	if err != nil {
		return fmt.Errorf("failed to check rental status: %w", err)
	}
	return &domain.ConflictError{Message: fmt.Sprintf("rental status was changed concurrently to %s", current)}
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.RentalStatus, endedBefore time.Time) ([]domain.Rental, error) {
	query, args, err := dialect.From(rentalTable).
		Select(rentalColumns...).
		Where(
			goqu.Ex{"status": string(status)},
			goqu.C("date_to").Lt(endedBefore.UTC()),
		).
		Order(goqu.I("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build rental status query: %w", err)
	}
	return r.selectRentals(ctx, "ListByStatus", query, args...)
}

func (r *rentalRepository) selectRentals(ctx context.Context, operation, query string, args ...interface{}) ([]domain.Rental, error) {
	logger.DatabaseCall(operation, query)

	rentals := make([]domain.Rental, 0)
	if err := r.db.SelectContext(ctx, &rentals, query, args...); err != nil {
		logger.DatabaseResult(operation, 0, err)
		return nil, fmt.Errorf("failed to list rentals: %w", err)
	}
	logger.DatabaseResult(operation, int64(len(rentals)), nil)

	for i := range rentals {
		toUTC(&rentals[i])
	}
	return rentals, nil
}

func toUTC(rt *domain.Rental) {
	rt.DateFrom = rt.DateFrom.UTC()
	rt.DateTo = rt.DateTo.UTC()
}
