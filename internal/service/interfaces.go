package service

import (
	"context"

	"github.com/mlvance/cardbank/internal/models"
)

// Issuer creates new card accounts
type Issuer interface {
	Issue(ctx context.Context) (*models.Account, error)
}

// Authenticator verifies card credentials
type Authenticator interface {
	Authenticate(ctx context.Context, number, pin string) (*models.Account, error)
}

// Accounter handles balance inquiry, deposits and closure
type Accounter interface {
	Balance(ctx context.Context, number string) (int64, error)
	Deposit(ctx context.Context, number string, amount int64) error
	Close(ctx context.Context, number string) error
}

// Transferrer moves funds between two cards
type Transferrer interface {
	Transfer(ctx context.Context, fromNumber, toNumber string, amount int64) error
}

// Ensure concrete types implement interfaces
var (
	_ Issuer        = (*IssuerService)(nil)
	_ Authenticator = (*AuthService)(nil)
	_ Accounter     = (*AccountService)(nil)
	_ Transferrer   = (*TransferService)(nil)
)
