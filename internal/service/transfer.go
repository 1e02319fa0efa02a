package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/mlvance/cardbank/internal/db"
	"github.com/mlvance/cardbank/internal/models"
	"github.com/mlvance/cardbank/internal/repository"
)

// TransferService moves funds between two cards under conservation and
// solvency invariants
type TransferService struct {
	db  *db.DB
	log *slog.Logger
}

// NewTransferService creates a new TransferService
func NewTransferService(database *db.DB, log *slog.Logger) *TransferService {
	return &TransferService{
		db:  database,
		log: log,
	}
}

// Transfer debits fromNumber and credits toNumber by amount. Both legs run
// inside one database transaction, so a failure after the debit rolls the
// debit back and total balance is conserved.
func (s *TransferService) Transfer(ctx context.Context, fromNumber, toNumber string, amount int64) error {
	if err := s.validateTransferRequest(fromNumber, toNumber, amount); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return &ServiceError{
			Code:    ErrCodeInternalError,
			Message: "failed to start transaction",
			Err:     err,
		}
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	txRepo := repository.NewCardRepository(tx)

	if err := s.performTransfer(ctx, txRepo, fromNumber, toNumber, amount); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return &ServiceError{
			Code:    ErrCodeInternalError,
			Message: "failed to commit transaction",
			Err:     err,
		}
	}

	s.log.Info("transfer completed", "amount", amount)
	return nil
}

// performTransfer contains the core transfer business logic. The solvency
// check reads the sender's balance inside the transaction, never from a
// session snapshot.
func (s *TransferService) performTransfer(
	ctx context.Context,
	repo repository.CardRepository,
	fromNumber, toNumber string,
	amount int64,
) error {
	exists, err := repo.Exists(ctx, toNumber)
	if err != nil {
		return &ServiceError{
			Code:    ErrCodeInternalError,
			Message: "failed to check destination card",
			Err:     err,
		}
	}
	if !exists {
		return &ServiceError{
			Code:    ErrCodeDestinationNotFound,
			Message: "destination card does not exist",
		}
	}

	sender, err := repo.FindByNumber(ctx, fromNumber)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return &ServiceError{
				Code:    ErrCodeNotFound,
				Message: "card not found",
			}
		}
		return &ServiceError{
			Code:    ErrCodeInternalError,
			Message: "failed to read sender balance",
			Err:     err,
		}
	}

	if sender.Balance < amount {
		return &ServiceError{
			Code:    ErrCodeInsufficientFunds,
			Message: "insufficient funds",
		}
	}

	if err := repo.AdjustBalance(ctx, fromNumber, -amount); err != nil {
		return &ServiceError{
			Code:    ErrCodeInternalError,
			Message: "failed to debit sender",
			Err:     err,
		}
	}

	if err := repo.AdjustBalance(ctx, toNumber, amount); err != nil {
		return &ServiceError{
			Code:    ErrCodeInternalError,
			Message: "failed to credit receiver",
			Err:     err,
		}
	}

	return nil
}

// validateTransferRequest runs the checks that need no storage access. The
// SameAccount and InvalidDestination checks short-circuit in this order;
// existence and solvency are checked inside the transaction.
func (s *TransferService) validateTransferRequest(fromNumber, toNumber string, amount int64) error {
	if err := ValidateAmount(amount); err != nil {
		return &ServiceError{
			Code:    ErrCodeInvalidAmount,
			Message: err.Error(),
		}
	}

	if fromNumber == toNumber {
		return &ServiceError{
			Code:    ErrCodeSameAccount,
			Message: "cannot transfer to the same account",
		}
	}

	if err := ValidateCardNumber(toNumber); err != nil {
		return &ServiceError{
			Code:    ErrCodeInvalidDestination,
			Message: err.Error(),
		}
	}

	return nil
}
