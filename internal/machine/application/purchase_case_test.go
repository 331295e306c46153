package application

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/domain"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/infrastructure/postgres"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/database"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/logging"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPurchaseCase(mock pgxmock.PgxConnIface) *PurchaseCase {
	return NewPurchaseCase(
		database.NewDelegateTxManager(mock, logging.DiscardLogger),
		postgres.NewBalancesRepository(),
		postgres.NewProductsRepository(),
		logging.DiscardLogger,
	)
}

func TestPurchaseCase_Buy(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name      string
		buyerID   int
		productID int
		quantity  int

		expectedReceipt domain.PurchaseReceipt
		expectedErr     error

		prepareFn func(t *testing.T, mock pgxmock.PgxConnIface)
	}

	tests := []testCase{
		{
			name:      "successful purchase drains balance and returns change",
			buyerID:   1,
			productID: 10,
			quantity:  1,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				// lock buyer balance first
				balanceRows := pgxmock.NewRows([]string{"balance"}).
					AddRow(150)
				mock.ExpectQuery("SELECT").
					WithArgs(1).
					WillReturnRows(balanceRows)
				// then lock the product row
				productRows := pgxmock.NewRows([]string{"id", "name", "available_amount", "cost", "seller_id"}).
					AddRow(10, "cola", 10, 60, 2)
				mock.ExpectQuery("SELECT").
					WithArgs(10).
					WillReturnRows(productRows)
				// decrement stock
				decrementRows := pgxmock.NewRows([]string{"available_amount"}).
					AddRow(9)
				mock.ExpectQuery("UPDATE").
					WithArgs(1, 10).
					WillReturnRows(decrementRows)
				// zero balance
				mock.ExpectExec("UPDATE").
					WithArgs(1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit()
				mock.ExpectRollback().WillReturnError(pgx.ErrTxClosed)
			},
			expectedReceipt: domain.PurchaseReceipt{
				TotalSpent:        60,
				QuantityPurchased: 1,
				Change:            domain.Change{domain.CoinFifty: 1, domain.CoinTwenty: 2},
				Product:           domain.Product{ID: 10, Name: "cola", AvailableAmount: 9, Cost: 60, SellerID: 2},
			},
			expectedErr: nil,
		},
		{
			name:      "balance exactly covers the cost",
			buyerID:   1,
			productID: 10,
			quantity:  2,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				balanceRows := pgxmock.NewRows([]string{"balance"}).
					AddRow(120)
				mock.ExpectQuery("SELECT").
					WithArgs(1).
					WillReturnRows(balanceRows)
				productRows := pgxmock.NewRows([]string{"id", "name", "available_amount", "cost", "seller_id"}).
					AddRow(10, "cola", 5, 60, 2)
				mock.ExpectQuery("SELECT").
					WithArgs(10).
					WillReturnRows(productRows)
				decrementRows := pgxmock.NewRows([]string{"available_amount"}).
					AddRow(3)
				mock.ExpectQuery("UPDATE").
					WithArgs(2, 10).
					WillReturnRows(decrementRows)
				mock.ExpectExec("UPDATE").
					WithArgs(1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit()
				mock.ExpectRollback().WillReturnError(pgx.ErrTxClosed)
			},
			expectedReceipt: domain.PurchaseReceipt{
				TotalSpent:        120,
				QuantityPurchased: 2,
				Change:            domain.Change{},
				Product:           domain.Product{ID: 10, Name: "cola", AvailableAmount: 3, Cost: 60, SellerID: 2},
			},
			expectedErr: nil,
		},
		{
			name:        "invalid quantity rejected before any query",
			buyerID:     1,
			productID:   10,
			quantity:    0,
			prepareFn:   func(t *testing.T, mock pgxmock.PgxConnIface) { t.Helper() },
			expectedErr: &domain.InvalidOperationError{},
		},
		{
			name:      "buyer not found",
			buyerID:   999,
			productID: 10,
			quantity:  1,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				mock.ExpectQuery("SELECT").
					WithArgs(999).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectRollback()
			},
			expectedErr: &domain.UserNotFoundError{},
		},
		{
			name:      "product not found",
			buyerID:   1,
			productID: 999,
			quantity:  1,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				balanceRows := pgxmock.NewRows([]string{"balance"}).
					AddRow(150)
				mock.ExpectQuery("SELECT").
					WithArgs(1).
					WillReturnRows(balanceRows)
				mock.ExpectQuery("SELECT").
					WithArgs(999).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectRollback()
			},
			expectedErr: &domain.ProductNotFoundError{},
		},
		{
			name:      "insufficient stock leaves both ledgers untouched",
			buyerID:   1,
			productID: 10,
			quantity:  5,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				balanceRows := pgxmock.NewRows([]string{"balance"}).
					AddRow(500)
				mock.ExpectQuery("SELECT").
					WithArgs(1).
					WillReturnRows(balanceRows)
				productRows := pgxmock.NewRows([]string{"id", "name", "available_amount", "cost", "seller_id"}).
					AddRow(10, "cola", 2, 60, 2)
				mock.ExpectQuery("SELECT").
					WithArgs(10).
					WillReturnRows(productRows)
				mock.ExpectRollback()
			},
			expectedErr: &domain.InsufficientStockError{},
		},
		{
			name:      "insufficient funds leaves both ledgers untouched",
			buyerID:   1,
			productID: 10,
			quantity:  1,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				balanceRows := pgxmock.NewRows([]string{"balance"}).
					AddRow(50)
				mock.ExpectQuery("SELECT").
					WithArgs(1).
					WillReturnRows(balanceRows)
				productRows := pgxmock.NewRows([]string{"id", "name", "available_amount", "cost", "seller_id"}).
					AddRow(10, "cola", 10, 60, 2)
				mock.ExpectQuery("SELECT").
					WithArgs(10).
					WillReturnRows(productRows)
				mock.ExpectRollback()
			},
			expectedErr: &domain.InsufficientFundsError{},
		},
		{
			name:      "commit error",
			buyerID:   1,
			productID: 10,
			quantity:  1,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				balanceRows := pgxmock.NewRows([]string{"balance"}).
					AddRow(150)
				mock.ExpectQuery("SELECT").
					WithArgs(1).
					WillReturnRows(balanceRows)
				productRows := pgxmock.NewRows([]string{"id", "name", "available_amount", "cost", "seller_id"}).
					AddRow(10, "cola", 10, 60, 2)
				mock.ExpectQuery("SELECT").
					WithArgs(10).
					WillReturnRows(productRows)
				decrementRows := pgxmock.NewRows([]string{"available_amount"}).
					AddRow(9)
				mock.ExpectQuery("UPDATE").
					WithArgs(1, 10).
					WillReturnRows(decrementRows)
				mock.ExpectExec("UPDATE").
					WithArgs(1).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit().WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			expectedErr: assert.AnError,
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock, err := pgxmock.NewConn()
			require.NoError(t, err)
			defer mock.Close(t.Context())

			tt.prepareFn(t, mock)

			purchaseCase := newPurchaseCase(mock)
			receipt, err := purchaseCase.Buy(t.Context(), tt.buyerID, tt.productID, tt.quantity)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, receipt.ReceiptID)

				receipt.ReceiptID = ""
				assert.Equal(t, tt.expectedReceipt, receipt)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
