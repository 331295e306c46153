package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/domain"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/database"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/logging"
)

type PurchaseCase struct {
	txManager database.TxManager
	balances  domain.BalanceLedger
	stock     domain.StockLedger
	logger    logging.Logger
}

func NewPurchaseCase(
	txManager database.TxManager,
	balances domain.BalanceLedger,
	stock domain.StockLedger,
	logger logging.Logger,
) *PurchaseCase {
	return &PurchaseCase{
		txManager: txManager,
		balances:  balances,
		stock:     stock,
		logger:    logger,
	}
}

// Buy runs the whole purchase as one transaction. Rows are always
// locked buyer first, product second; every buy takes them in the same
// order, so two concurrent purchases can never deadlock. All checks
// happen before the first mutating statement, so a failed buy leaves
// both ledgers untouched.
//
// The buyer's entire balance is consumed on success and the remainder
// is returned as change, never retained as credit. That mirrors a
// single-slot physical vending machine and is deliberate.
func (pc *PurchaseCase) Buy(ctx context.Context, buyerID, productID, quantity int) (domain.PurchaseReceipt, error) {
	if quantity < 1 {
		return domain.PurchaseReceipt{}, &domain.InvalidOperationError{Msg: "quantity must be at least 1"}
	}

	var receipt domain.PurchaseReceipt

	err := pc.txManager.WithinTransaction(ctx, func(ctx context.Context, tx database.QueryExecuter) error {
		balance, err := pc.balances.LockAndGetBalance(ctx, tx, buyerID)
		if err != nil {
			return err
		}

		product, err := pc.stock.LockAndGetProduct(ctx, tx, productID)
		if err != nil {
			return err
		}

		if product.AvailableAmount < quantity {
			return &domain.InsufficientStockError{Msg: "insufficient stock"}
		}

		totalCost := product.Cost * quantity
		if balance < totalCost {
			return &domain.InsufficientFundsError{Msg: "insufficient funds"}
		}

		newAmount, err := pc.stock.DecrementStock(ctx, tx, productID, quantity)
		if err != nil {
			return err
		}

		err = pc.balances.ZeroBalance(ctx, tx, buyerID)
		if err != nil {
			return err
		}

		product.AvailableAmount = newAmount

		receipt = domain.PurchaseReceipt{
			ReceiptID:         uuid.NewString(),
			TotalSpent:        totalCost,
			QuantityPurchased: quantity,
			Change:            domain.MakeChange(balance - totalCost),
			Product:           product,
		}

		return nil
	})
	if err != nil {
		return domain.PurchaseReceipt{}, err
	}

	pc.logger.Info("purchase completed",
		"userId", buyerID,
		"productId", productID,
		"quantity", quantity,
		"totalSpent", receipt.TotalSpent,
	)

	return receipt, nil
}
