package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mlvance/cardbank/internal/models"
	"github.com/mlvance/cardbank/internal/repository"
)

// AuthService verifies card credentials against the ledger store
type AuthService struct {
	repo repository.CardRepository
	log  *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(repo repository.CardRepository, log *slog.Logger) *AuthService {
	return &AuthService{repo: repo, log: log}
}

// Authenticate checks a (card number, PIN) pair and returns a read snapshot
// of the account. The snapshot's balance may go stale; callers must re-read
// it from the store before displaying or spending it.
func (s *AuthService) Authenticate(ctx context.Context, number, pin string) (*models.Account, error) {
	account, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{
				Code:    ErrCodeNotFound,
				Message: "card not found",
			}
		}
		return nil, &ServiceError{
			Code:    ErrCodeInternalError,
			Message: "failed to look up card",
			Err:     err,
		}
	}

	if account.PIN != pin {
		s.log.Warn("login rejected", "reason", "pin mismatch")
		return nil, &ServiceError{
			Code:    ErrCodeInvalidPIN,
			Message: "PIN does not match",
		}
	}

	return account, nil
}
