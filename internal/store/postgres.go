/**
 * @description
 * This file provides the shared pieces of the PostgreSQL implementation of
 * the repository interfaces: the repository struct, its constructor, and the
 * sentinel errors the service layer matches on.
 *
 * @dependencies
 * - github.com/jackc/pgx/v5: the PostgreSQL driver.
 */

package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrGoalNotFound        = errors.New("goal not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
)

// PostgresRepository is the concrete implementation of all repository
// interfaces for PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new instance of PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}
