package application

import (
	"context"

	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/domain"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/database"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/logging"
	"golang.org/x/sync/errgroup"
)

type UserInfoCase struct {
	db       database.Querier
	users    domain.UsersRepository
	balances domain.BalanceLedger
	logger   logging.Logger
}

func NewUserInfoCase(
	db database.Querier,
	users domain.UsersRepository,
	balances domain.BalanceLedger,
	logger logging.Logger,
) *UserInfoCase {
	return &UserInfoCase{
		db:       db,
		users:    users,
		balances: balances,
		logger:   logger,
	}
}

func (uic *UserInfoCase) GetUserInfo(ctx context.Context, userID int) (domain.UserProfile, error) {
	group, groupCtx := errgroup.WithContext(ctx)

	var account domain.UserAccount
	var balance int

	group.Go(func() error {
		var err error
		account, err = uic.users.GetUserByID(groupCtx, uic.db, userID)
		return err
	})

	group.Go(func() error {
		var err error
		balance, err = uic.balances.GetBalance(groupCtx, uic.db, userID)
		return err
	})

	err := group.Wait()
	if err != nil {
		return domain.UserProfile{}, err
	}

	return domain.UserProfile{
		ID:       account.ID,
		Username: account.Username,
		Role:     account.Role,
		Deposit:  balance,
	}, nil
}
