package repository

import (
	"context"
	"testing"

	"github.com/mlvance/cardbank/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardRepository_FindByNumber(t *testing.T) {
	database := setupTestDB(t)
	seedCards(t, database)
	repo := NewCardRepository(database)
	ctx := context.Background()

	t.Run("existing card", func(t *testing.T) {
		account, err := repo.FindByNumber(ctx, testCardA)

		require.NoError(t, err)
		assert.Equal(t, testCardA, account.Number)
		assert.Equal(t, "1234", account.PIN)
		assert.Equal(t, int64(500), account.Balance)
		assert.NotZero(t, account.ID)
	})

	t.Run("unknown card", func(t *testing.T) {
		account, err := repo.FindByNumber(ctx, "4000000000000000")

		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.Nil(t, account)
	})
}

func TestCardRepository_Insert(t *testing.T) {
	database := setupTestDB(t)
	repo := NewCardRepository(database)
	ctx := context.Background()

	t.Run("new card", func(t *testing.T) {
		err := repo.Insert(ctx, testCardA, "1234", 0)
		require.NoError(t, err)

		account, err := repo.FindByNumber(ctx, testCardA)
		require.NoError(t, err)
		assert.Equal(t, int64(0), account.Balance)
	})

	t.Run("duplicate number", func(t *testing.T) {
		err := repo.Insert(ctx, testCardA, "0000", 0)
		assert.ErrorIs(t, err, models.ErrDuplicateCard)
	})
}

func TestCardRepository_AdjustBalance(t *testing.T) {
	database := setupTestDB(t)
	seedCards(t, database)
	repo := NewCardRepository(database)
	ctx := context.Background()

	t.Run("credit and debit", func(t *testing.T) {
		require.NoError(t, repo.AdjustBalance(ctx, testCardB, 100))
		require.NoError(t, repo.AdjustBalance(ctx, testCardB, 50))
		require.NoError(t, repo.AdjustBalance(ctx, testCardB, -30))

		account, err := repo.FindByNumber(ctx, testCardB)
		require.NoError(t, err)
		assert.Equal(t, int64(120), account.Balance)
	})

	t.Run("unknown card", func(t *testing.T) {
		err := repo.AdjustBalance(ctx, "4000000000000000", 100)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestCardRepository_Delete(t *testing.T) {
	database := setupTestDB(t)
	seedCards(t, database)
	repo := NewCardRepository(database)
	ctx := context.Background()

	t.Run("existing card", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, testCardC))

		exists, err := repo.Exists(ctx, testCardC)
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = repo.FindByNumber(ctx, testCardC)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("unknown card", func(t *testing.T) {
		err := repo.Delete(ctx, "4000000000000000")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestCardRepository_Exists(t *testing.T) {
	database := setupTestDB(t)
	seedCards(t, database)
	repo := NewCardRepository(database)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, testCardA)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "4000000000000000")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCardRepository_InsideTransaction(t *testing.T) {
	database := setupTestDB(t)
	seedCards(t, database)
	ctx := context.Background()

	tx, err := database.BeginTx(ctx, nil)
	require.NoError(t, err)

	txRepo := NewCardRepository(tx)
	require.NoError(t, txRepo.AdjustBalance(ctx, testCardA, -200))
	require.NoError(t, txRepo.AdjustBalance(ctx, testCardB, 200))
	require.NoError(t, tx.Rollback())

	// Rolled-back legs must leave both balances untouched.
	repo := NewCardRepository(database)
	a, err := repo.FindByNumber(ctx, testCardA)
	require.NoError(t, err)
	b, err := repo.FindByNumber(ctx, testCardB)
	require.NoError(t, err)
	assert.Equal(t, int64(500), a.Balance)
	assert.Equal(t, int64(0), b.Balance)
}
