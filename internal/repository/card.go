// Package repository provides the data access layer for the card ledger.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mlvance/cardbank/internal/models"
)

// Querier abstracts over *db.DB and *sql.Tx so the same repository can run
// standalone or inside a service-owned transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CardRepository defines the interface for card ledger data access
type CardRepository interface {
	FindByNumber(ctx context.Context, number string) (*models.Account, error)
	Insert(ctx context.Context, number, pin string, balance int64) error
	AdjustBalance(ctx context.Context, number string, delta int64) error
	Delete(ctx context.Context, number string) error
	Exists(ctx context.Context, number string) (bool, error)
}

// cardRepository implements CardRepository
type cardRepository struct {
	q Querier
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(q Querier) CardRepository {
	return &cardRepository{q: q}
}

// FindByNumber retrieves an account by its full card number
func (r *cardRepository) FindByNumber(ctx context.Context, number string) (*models.Account, error) {
	query := `
		SELECT id, number, pin, balance
		FROM card
		WHERE number = ?
	`

	var account models.Account
	err := r.q.QueryRowContext(ctx, query, number).Scan(
		&account.ID,
		&account.Number,
		&account.PIN,
		&account.Balance,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find card by number: %w", err)
	}

	return &account, nil
}

// Insert stores a new card with its PIN and opening balance
func (r *cardRepository) Insert(ctx context.Context, number, pin string, balance int64) error {
	query := `
		INSERT INTO card (number, pin, balance)
		VALUES (?, ?, ?)
	`

	if _, err := r.q.ExecContext(ctx, query, number, pin, balance); err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateCard
		}
		return fmt.Errorf("failed to insert card: %w", err)
	}

	return nil
}

// AdjustBalance atomically adjusts the card balance by the given delta
func (r *cardRepository) AdjustBalance(ctx context.Context, number string, delta int64) error {
	query := `
		UPDATE card
		SET balance = balance + ?
		WHERE number = ?
	`

	result, err := r.q.ExecContext(ctx, query, delta, number)
	if err != nil {
		return fmt.Errorf("failed to adjust card balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Delete permanently removes a card and its balance
func (r *cardRepository) Delete(ctx context.Context, number string) error {
	query := `
		DELETE FROM card
		WHERE number = ?
	`

	result, err := r.q.ExecContext(ctx, query, number)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Exists reports whether a card with the given number is stored
func (r *cardRepository) Exists(ctx context.Context, number string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM card
		WHERE number = ?
	`

	var count int
	if err := r.q.QueryRowContext(ctx, query, number).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check card existence: %w", err)
	}

	return count > 0, nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure from
// the sqlite driver.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
