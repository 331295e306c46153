package application

import (
	"testing"

	"github.com/golang/mock/gomock"
	mocks "github.com/mahmoudAmagdy/VendingMachine/gen/mocks/machine"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/domain"
	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/infrastructure/postgres"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/logging"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserInfoCase_GetUserInfo(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name   string
		userID int

		expectedProfile domain.UserProfile
		expectedErr     error

		prepareUsersFn   func(t *testing.T, ctrl *gomock.Controller) domain.UsersRepository
		prepareBalanceFn func(t *testing.T, mock pgxmock.PgxConnIface)
	}

	tests := []testCase{
		{
			name:   "profile combines account and balance",
			userID: 7,
			prepareUsersFn: func(t *testing.T, ctrl *gomock.Controller) domain.UsersRepository {
				users := mocks.NewMockUsersRepository(ctrl)
				users.EXPECT().
					GetUserByID(gomock.Any(), gomock.Any(), 7).
					Return(domain.UserAccount{ID: 7, Username: "alice", Role: domain.RoleBuyer}, nil).
					Times(1)
				return users
			},
			prepareBalanceFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				balanceRows := pgxmock.NewRows([]string{"balance"}).
					AddRow(45)
				mock.ExpectQuery("SELECT").
					WithArgs(7).
					WillReturnRows(balanceRows)
			},
			expectedProfile: domain.UserProfile{ID: 7, Username: "alice", Role: domain.RoleBuyer, Deposit: 45},
		},
		{
			name:   "account fetch error wins",
			userID: 99,
			prepareUsersFn: func(t *testing.T, ctrl *gomock.Controller) domain.UsersRepository {
				users := mocks.NewMockUsersRepository(ctrl)
				users.EXPECT().
					GetUserByID(gomock.Any(), gomock.Any(), 99).
					Return(domain.UserAccount{}, &domain.UserNotFoundError{Msg: "user not found"}).
					Times(1)
				return users
			},
			prepareBalanceFn: func(t *testing.T, mock pgxmock.PgxConnIface) {
				t.Helper()
				balanceRows := pgxmock.NewRows([]string{"balance"}).
					AddRow(0)
				mock.ExpectQuery("SELECT").
					WithArgs(99).
					WillReturnRows(balanceRows)
			},
			expectedErr: &domain.UserNotFoundError{},
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mock, err := pgxmock.NewConn()
			require.NoError(t, err)
			defer mock.Close(t.Context())

			tt.prepareBalanceFn(t, mock)

			userInfoCase := NewUserInfoCase(
				mock,
				tt.prepareUsersFn(t, ctrl),
				postgres.NewBalancesRepository(),
				logging.DiscardLogger,
			)

			profile, err := userInfoCase.GetUserInfo(t.Context(), tt.userID)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedProfile, profile)
			}
		})
	}
}
