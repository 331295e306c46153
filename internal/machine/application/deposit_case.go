package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/domain"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/database"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/logging"
)

type DepositCase struct {
	db       database.Querier
	balances domain.BalanceLedger
	logger   logging.Logger
}

func NewDepositCase(db database.Querier, balances domain.BalanceLedger, logger logging.Logger) *DepositCase {
	return &DepositCase{
		db:       db,
		balances: balances,
		logger:   logger,
	}
}

// Deposit validates the coin before touching the ledger, so a rejected
// coin can never change the balance. The add itself is a single guarded
// UPDATE and needs no surrounding transaction.
func (dc *DepositCase) Deposit(ctx context.Context, buyerID, rawCoinValue int) (domain.DepositReceipt, error) {
	coin, err := domain.ValidateCoin(rawCoinValue)
	if err != nil {
		return domain.DepositReceipt{}, err
	}

	newBalance, err := dc.balances.AddToBalance(ctx, dc.db, buyerID, int(coin))
	if err != nil {
		return domain.DepositReceipt{}, err
	}

	dc.logger.Info("deposit accepted", "userId", buyerID, "coin", int(coin), "newBalance", newBalance)

	return domain.DepositReceipt{
		ReceiptID:  uuid.NewString(),
		NewBalance: newBalance,
	}, nil
}
