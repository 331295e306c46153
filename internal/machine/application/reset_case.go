package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/domain"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/database"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/logging"
)

type ResetCase struct {
	txManager database.TxManager
	balances  domain.BalanceLedger
	logger    logging.Logger
}

func NewResetCase(txManager database.TxManager, balances domain.BalanceLedger, logger logging.Logger) *ResetCase {
	return &ResetCase{
		txManager: txManager,
		balances:  balances,
		logger:    logger,
	}
}

// Reset returns the buyer's whole deposit as coins. Resetting an empty
// balance is rejected without touching the ledger.
func (rc *ResetCase) Reset(ctx context.Context, buyerID int) (domain.ResetReceipt, error) {
	var receipt domain.ResetReceipt

	err := rc.txManager.WithinTransaction(ctx, func(ctx context.Context, tx database.QueryExecuter) error {
		balance, err := rc.balances.LockAndGetBalance(ctx, tx, buyerID)
		if err != nil {
			return err
		}

		if balance == 0 {
			return &domain.InvalidOperationError{Msg: "no deposit to reset"}
		}

		err = rc.balances.ZeroBalance(ctx, tx, buyerID)
		if err != nil {
			return err
		}

		receipt = domain.ResetReceipt{
			ReceiptID:      uuid.NewString(),
			ReturnedAmount: balance,
			Change:         domain.MakeChange(balance),
		}

		return nil
	})
	if err != nil {
		return domain.ResetReceipt{}, err
	}

	rc.logger.Info("deposit reset", "userId", buyerID, "returnedAmount", receipt.ReturnedAmount)

	return receipt, nil
}
