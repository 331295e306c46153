package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/domain"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/database"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/logging"
)

const uniqueViolationCode = "23505"

type UsersRepository struct {
	txBeginner database.QueryTxBeginner
	logger     logging.Logger
}

func NewUsersRepository(txBeginner database.QueryTxBeginner, logger logging.Logger) *UsersRepository {
	return &UsersRepository{
		txBeginner: txBeginner,
		logger:     logger,
	}
}

// CreateUser registers the account together with its zero balance so a
// user can never exist without a balance row.
func (r *UsersRepository) CreateUser(ctx context.Context, username, passwordHash, role string) (domain.UserAccount, error) {
	tx, err := r.txBeginner.BeginTx(ctx, pgx.TxOptions{
		IsoLevel: pgx.ReadCommitted,
	})
	if err != nil {
		return domain.UserAccount{}, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		err := tx.Rollback(ctx)
		if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			r.logger.Error("failed to rollback user creation transaction", "error", err)
		}
	}()

	account, err := createNewUser(ctx, tx, username, passwordHash, role)
	if err != nil {
		return domain.UserAccount{}, err
	}

	err = createUserBalance(ctx, tx, account.ID)
	if err != nil {
		return domain.UserAccount{}, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return domain.UserAccount{}, fmt.Errorf("failed to commit user creation transaction: %w", err)
	}

	return account, nil
}

func (r *UsersRepository) TryGetUserByUsername(ctx context.Context, username string) (domain.UserAccount, bool, error) {
	querySQL := `SELECT id, username, password_hash, role FROM users WHERE username = $1`

	var account domain.UserAccount
	row := r.txBeginner.QueryRow(ctx, querySQL, username)
	err := row.Scan(&account.ID, &account.Username, &account.PasswordHash, &account.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UserAccount{}, false, nil
		}

		return domain.UserAccount{}, false, fmt.Errorf("failed to find user: %w", err)
	}

	return account, true, nil
}

func (r *UsersRepository) GetUserByID(ctx context.Context, querier database.Querier, userID int) (domain.UserAccount, error) {
	querySQL := `SELECT id, username, password_hash, role FROM users WHERE id = $1`

	var account domain.UserAccount
	row := querier.QueryRow(ctx, querySQL, userID)
	err := row.Scan(&account.ID, &account.Username, &account.PasswordHash, &account.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UserAccount{}, &domain.UserNotFoundError{Msg: fmt.Sprintf("user with id %d not found", userID)}
		}

		return domain.UserAccount{}, fmt.Errorf("failed to find user: %w", err)
	}

	return account, nil
}

func createNewUser(ctx context.Context, querier database.Querier, username, passwordHash, role string) (domain.UserAccount, error) {
	creationSQL := `INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3) RETURNING id, username, password_hash, role`

	var account domain.UserAccount
	row := querier.QueryRow(ctx, creationSQL, username, passwordHash, role)
	err := row.Scan(&account.ID, &account.Username, &account.PasswordHash, &account.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domain.UserAccount{}, &domain.InvalidArgumentsError{Msg: fmt.Sprintf("username already exists: %s", username)}
		}

		return domain.UserAccount{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return account, nil
}

func createUserBalance(ctx context.Context, executor database.Executor, userID int) error {
	creationSQL := `INSERT INTO balances (user_id, balance) VALUES ($1, 0)`

	_, err := executor.Exec(ctx, creationSQL, userID)
	if err != nil {
		return fmt.Errorf("failed to insert user balance: %w", err)
	}

	return nil
}
