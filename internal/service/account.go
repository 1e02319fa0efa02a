package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mlvance/cardbank/internal/models"
	"github.com/mlvance/cardbank/internal/repository"
)

// AccountService handles balance inquiry, deposits and account closure
type AccountService struct {
	repo repository.CardRepository
	log  *slog.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(repo repository.CardRepository, log *slog.Logger) *AccountService {
	return &AccountService{repo: repo, log: log}
}

// Balance returns the current stored balance for the card
func (s *AccountService) Balance(ctx context.Context, number string) (int64, error) {
	account, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return 0, &ServiceError{
				Code:    ErrCodeNotFound,
				Message: "card not found",
			}
		}
		return 0, &ServiceError{
			Code:    ErrCodeInternalError,
			Message: "failed to read balance",
			Err:     err,
		}
	}

	return account.Balance, nil
}

// Deposit credits the card with a positive amount
func (s *AccountService) Deposit(ctx context.Context, number string, amount int64) error {
	if err := ValidateAmount(amount); err != nil {
		return &ServiceError{
			Code:    ErrCodeInvalidAmount,
			Message: err.Error(),
		}
	}

	if err := s.repo.AdjustBalance(ctx, number, amount); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return &ServiceError{
				Code:    ErrCodeNotFound,
				Message: "card not found",
			}
		}
		return &ServiceError{
			Code:    ErrCodeInternalError,
			Message: "failed to credit balance",
			Err:     err,
		}
	}

	s.log.Info("income added", "amount", amount)
	return nil
}

// Close permanently deletes the account; no history is retained
func (s *AccountService) Close(ctx context.Context, number string) error {
	if err := s.repo.Delete(ctx, number); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return &ServiceError{
				Code:    ErrCodeNotFound,
				Message: "card not found",
			}
		}
		return &ServiceError{
			Code:    ErrCodeInternalError,
			Message: "failed to delete card",
			Err:     err,
		}
	}

	s.log.Info("account closed")
	return nil
}
