package domain

import (
	"context"

	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/database"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

type UserAccount struct {
	ID           int
	Username     string
	PasswordHash string
	Role         string
}

// UserProfile is what an authenticated user sees about themselves.
type UserProfile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Deposit  int    `json:"deposit"`
}

type UsersRepository interface {
	// CreateUser registers the account and its zero balance in one
	// transaction.
	CreateUser(ctx context.Context, username, passwordHash, role string) (UserAccount, error)
	TryGetUserByUsername(ctx context.Context, username string) (UserAccount, bool, error)
	GetUserByID(ctx context.Context, querier database.Querier, userID int) (UserAccount, error)
}

// BalanceLedger is the buyer-side collaborator of the transaction
// engine. All mutations are per-row atomic; LockAndGetBalance takes the
// row lock callers rely on for multi-statement updates.
type BalanceLedger interface {
	GetBalance(ctx context.Context, querier database.Querier, userID int) (int, error)
	LockAndGetBalance(ctx context.Context, querier database.Querier, userID int) (int, error)
	AddToBalance(ctx context.Context, querier database.Querier, userID int, amount int) (int, error)
	ZeroBalance(ctx context.Context, executor database.Executor, userID int) error
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hashedPassword string) (bool, error)
}
