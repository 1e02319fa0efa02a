package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/mlvance/cardbank/internal/config"
	"github.com/mlvance/cardbank/internal/db"
	"github.com/mlvance/cardbank/internal/models"
	"github.com/mlvance/cardbank/internal/repository"
)

// IssuerService creates new card accounts: it draws candidate card numbers
// under the configured BIN, keeps only Luhn-valid ones that are not already
// stored, and persists the accepted card with a zero opening balance.
type IssuerService struct {
	db  *db.DB
	cfg config.IssuerConfig
	log *slog.Logger
}

// NewIssuerService creates a new IssuerService
func NewIssuerService(database *db.DB, cfg config.IssuerConfig, log *slog.Logger) *IssuerService {
	return &IssuerService{
		db:  database,
		cfg: cfg,
		log: log,
	}
}

// Issue creates and persists a new account, returning its card number and PIN
func (s *IssuerService) Issue(ctx context.Context) (*models.Account, error) {
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		number := s.drawCardNumber()
		if ValidateLuhn(number) != nil {
			continue
		}

		account, err := s.createCard(ctx, number, s.drawPIN())
		if err != nil {
			if errors.Is(err, models.ErrDuplicateCard) {
				// Collision with an existing card; draw again.
				continue
			}
			return nil, err
		}

		s.log.Info("card issued", "attempts", attempt)
		return account, nil
	}

	return nil, &ServiceError{
		Code:    ErrCodeKeyspaceExhausted,
		Message: fmt.Sprintf("no unique card number found in %d attempts", s.cfg.MaxAttempts),
	}
}

// createCard stores the candidate card, checking for existence and inserting
// within one transaction so the uniqueness pre-check and the insert cannot
// interleave with another mutation.
func (s *IssuerService) createCard(ctx context.Context, number, pin string) (*models.Account, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeInternalError,
			Message: "failed to start transaction",
			Err:     err,
		}
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	repo := repository.NewCardRepository(tx)

	exists, err := repo.Exists(ctx, number)
	if err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeInternalError,
			Message: "failed to check card existence",
			Err:     err,
		}
	}
	if exists {
		return nil, models.ErrDuplicateCard
	}

	if err := repo.Insert(ctx, number, pin, 0); err != nil {
		if errors.Is(err, models.ErrDuplicateCard) {
			return nil, err
		}
		return nil, &ServiceError{
			Code:    ErrCodeInternalError,
			Message: "failed to store card",
			Err:     err,
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeInternalError,
			Message: "failed to commit transaction",
			Err:     err,
		}
	}

	return &models.Account{Number: number, PIN: pin, Balance: 0}, nil
}

// drawCardNumber appends a random account identifier to the issuer BIN,
// zero-padded so the full number is always 16 digits.
func (s *IssuerService) drawCardNumber() string {
	width := cardNumberLength - len(s.cfg.BIN)

	var max int64 = 1
	for i := 0; i < width; i++ {
		max *= 10
	}

	return fmt.Sprintf("%s%0*d", s.cfg.BIN, width, rand.Int64N(max))
}

// drawPIN concatenates PINLength distinct digits drawn without repetition.
func (s *IssuerService) drawPIN() string {
	var b strings.Builder
	for _, d := range rand.Perm(10)[:s.cfg.PINLength] {
		b.WriteByte(byte('0' + d))
	}
	return b.String()
}
