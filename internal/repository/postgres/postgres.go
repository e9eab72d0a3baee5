package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentals-service/internal/config"
	"rentals-service/internal/logger"
	"rentals-service/internal/repository"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

var dialect = goqu.Dialect("postgres")

type Store struct {
	db *sqlx.DB
	repository.RentalRepository
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:               db,
		RentalRepository: NewRentalRepository(db),
	}
}

// Open connects with the configured driver ("postgres" is lib/pq, "pgx" is
// the pgx stdlib adapter) and verifies the connection.
func Open(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open(cfg.Database.Driver, cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxOpenConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS rental
(
    id          SERIAL PRIMARY KEY,
    rental_uid  uuid UNIQUE              NOT NULL,
    username    VARCHAR(80)              NOT NULL,
    payment_uid uuid                     NOT NULL,
    car_uid     uuid                     NOT NULL,
    date_from   TIMESTAMP WITH TIME ZONE NOT NULL,
    date_to     TIMESTAMP WITH TIME ZONE NOT NULL,
    status      VARCHAR(20)              NOT NULL
        CHECK (status IN ('PENDING', 'IN_PROGRESS', 'FINISHED', 'CANCELLED')),
    CHECK (date_from <= date_to)
);
CREATE INDEX IF NOT EXISTS idx_rental_username ON rental (username);
`

// Migrate creates the rental table if it does not exist
func (s *Store) Migrate(ctx context.Context) error {
	logger.DatabaseCall("Migrate", "CREATE TABLE IF NOT EXISTS rental")
	_, err := s.db.ExecContext(ctx, schema)
	logger.DatabaseResult("Migrate", 0, err)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// isUniqueViolation recognizes SQLSTATE 23505 from either driver
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}
