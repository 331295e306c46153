package application

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/domain"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/infrastructure/postgres"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/logging"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositCase_Deposit(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name    string
		buyerID int
		rawCoin int

		expectedBalance int
		expectedErr     error

		prepareFn func(t *testing.T, mock pgxmock.PgxConnIface)
	}

	tests := []testCase{
		{
			name:    "successful deposit",
			buyerID: 1,
			rawCoin: 100,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				rows := pgxmock.NewRows([]string{"balance"}).
					AddRow(100)
				mock.ExpectQuery("UPDATE").
					WithArgs(100, 1).
					WillReturnRows(rows)
			},
			expectedBalance: 100,
		},
		{
			name:    "second deposit accumulates",
			buyerID: 1,
			rawCoin: 50,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				rows := pgxmock.NewRows([]string{"balance"}).
					AddRow(150)
				mock.ExpectQuery("UPDATE").
					WithArgs(50, 1).
					WillReturnRows(rows)
			},
			expectedBalance: 150,
		},
		{
			name:        "invalid coin rejected before the ledger is touched",
			buyerID:     1,
			rawCoin:     25,
			prepareFn:   func(t *testing.T, mock pgxmock.PgxConnIface) { t.Helper() },
			expectedErr: &domain.InvalidCoinError{},
		},
		{
			name:    "buyer not found",
			buyerID: 999,
			rawCoin: 5,
			prepareFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				mock.ExpectQuery("UPDATE").
					WithArgs(5, 999).
					WillReturnError(pgx.ErrNoRows)
			},
			expectedErr: &domain.UserNotFoundError{},
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

			depositCase := NewDepositCase(mock, postgres.NewBalancesRepository(), logging.DiscardLogger)
			receipt, err := depositCase.Deposit(t.Context(), tt.buyerID, tt.rawCoin)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, receipt.ReceiptID)
				assert.Equal(t, tt.expectedBalance, receipt.NewBalance)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
