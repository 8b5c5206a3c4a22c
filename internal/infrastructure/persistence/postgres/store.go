// Package postgres implements the persistence interfaces on PostgreSQL via
// pgxpool, with goose-managed embedded migrations.
package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seenlyhq/seenly/internal/auth"
	"github.com/seenlyhq/seenly/internal/service"
)

// Store provides the PostgreSQL implementation of all repository interfaces.
type Store struct {
	pool *pgxpool.Pool
}

// Compile-time verification that Store implements the repository interfaces.
var (
	_ service.Store   = (*Store)(nil)
	_ auth.Repository = (*Store)(nil)
)

// NewStore creates a new PostgreSQL store with the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool returns the underlying connection pool.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// checkRowsAffected validates that an UPDATE/DELETE affected exactly one row.
func checkRowsAffected(tag pgconn.CommandTag, notFound error, entityID string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", notFound, entityID)
	}
	return nil
}

// isUniqueViolation checks whether an error is a PostgreSQL unique violation
// on the named constraint (any constraint when empty).
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 is unique_violation
		if pgErr.Code == "23505" {
			return constraint == "" || strings.Contains(pgErr.ConstraintName, constraint)
		}
	}
	return false
}
