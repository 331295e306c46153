package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/domain"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/database"
)

// BalancesRepository is the balance ledger: one row per user, every
// mutation a single guarded statement so the row never goes negative.
type BalancesRepository struct {
}

func NewBalancesRepository() *BalancesRepository {
	return &BalancesRepository{}
}

func (br *BalancesRepository) GetBalance(ctx context.Context, querier database.Querier, userID int) (int, error) {
	selectSQL := `SELECT balance FROM balances WHERE user_id = $1`

	var balance int
	err := querier.QueryRow(ctx, selectSQL, userID).Scan(&balance)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, &domain.UserNotFoundError{Msg: fmt.Sprintf("user with id %d not found", userID)}
		}

		return 0, fmt.Errorf("failed to get user balance: %w", err)
	}

	return balance, nil
}

func (br *BalancesRepository) LockAndGetBalance(ctx context.Context, querier database.Querier, userID int) (int, error) {
	lockUserSQL := `SELECT balance FROM balances WHERE user_id = $1 FOR UPDATE`

	var balance int
	err := querier.QueryRow(ctx, lockUserSQL, userID).Scan(&balance)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, &domain.UserNotFoundError{Msg: fmt.Sprintf("user with id %d not found", userID)}
		}

		return 0, fmt.Errorf("failed to lock user row: %w", err)
	}

	return balance, nil
}

func (br *BalancesRepository) AddToBalance(ctx context.Context, querier database.Querier, userID int, amount int) (int, error) {
	updateSQL := `UPDATE balances SET balance = balance + $1 WHERE user_id = $2 RETURNING balance`

	var newBalance int
	err := querier.QueryRow(ctx, updateSQL, amount, userID).Scan(&newBalance)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, &domain.UserNotFoundError{Msg: fmt.Sprintf("user with id %d not found", userID)}
		}

		return 0, fmt.Errorf("failed to add to user balance: %w", err)
	}

	return newBalance, nil
}

func (br *BalancesRepository) ZeroBalance(ctx context.Context, executor database.Executor, userID int) error {
	updateSQL := `UPDATE balances SET balance = 0 WHERE user_id = $1`

	tag, err := executor.Exec(ctx, updateSQL, userID)
	if err != nil {
		return fmt.Errorf("failed to zero user balance: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return &domain.UserNotFoundError{Msg: fmt.Sprintf("user with id %d not found", userID)}
	}

	return nil
}
