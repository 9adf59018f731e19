package ledgerrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/internal/pg"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB, mockTxManager), mockDB, mockTxManager
}

func passThrough(tx *pg.MockTXManager) {
	tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
		return fn(ctx)
	})
}

var (
	updateBalance = regexp.QuoteMeta(`UPDATE accounts SET balance = balance + $1 WHERE id = $2 AND balance + $1 >= 0 RETURNING balance`)
	insertEntry   = regexp.QuoteMeta(`INSERT INTO ledger_entries`)
	accountExists = regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`)
)

func TestRepository_Apply(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name          string
		delta         domain.LedgerDelta
		mockSetup     func(mock pgxmock.PgxPoolIface, tx *pg.MockTXManager)
		expectedError error
		expectErr     bool
		result        *domain.LedgerEntry
	}{
		{
			name:  "Credit records entry with previous and new balance",
			delta: domain.LedgerDelta{AccountID: 7, Amount: 2000, Reference: "42", Description: "Order settlement"},
			mockSetup: func(mock pgxmock.PgxPoolIface, tx *pg.MockTXManager) {
				passThrough(tx)
				mock.ExpectQuery(updateBalance).
					WithArgs(int64(2000), int64(7)).
					WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(2000)))
				mock.ExpectQuery(insertEntry).
					WithArgs(int64(7), "42", int64(2000), "in", "Order settlement", int64(0), int64(2000)).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))
			},
			result: &domain.LedgerEntry{
				ID: 1, AccountID: 7, Reference: "42", Amount: 2000, Type: domain.EntryIn,
				Description: "Order settlement", PreviousBalance: 0, NewBalance: 2000, CreatedAt: now,
			},
		},
		{
			name:  "Debit stores positive amount with out type",
			delta: domain.LedgerDelta{AccountID: 3, Amount: -2500, Reference: "9", Description: "Order placement"},
			mockSetup: func(mock pgxmock.PgxPoolIface, tx *pg.MockTXManager) {
				passThrough(tx)
				mock.ExpectQuery(updateBalance).
					WithArgs(int64(-2500), int64(3)).
					WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(2500)))
				mock.ExpectQuery(insertEntry).
					WithArgs(int64(3), "9", int64(2500), "out", "Order placement", int64(5000), int64(2500)).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(2), now))
			},
			result: &domain.LedgerEntry{
				ID: 2, AccountID: 3, Reference: "9", Amount: 2500, Type: domain.EntryOut,
				Description: "Order placement", PreviousBalance: 5000, NewBalance: 2500, CreatedAt: now,
			},
		},
		{
			name:  "Overdraft is rejected",
			delta: domain.LedgerDelta{AccountID: 3, Amount: -6000, Reference: "9"},
			mockSetup: func(mock pgxmock.PgxPoolIface, tx *pg.MockTXManager) {
				passThrough(tx)
				mock.ExpectQuery(updateBalance).
					WithArgs(int64(-6000), int64(3)).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectQuery(accountExists).
					WithArgs(int64(3)).
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
			},
			expectedError: domain.ErrInsufficientBalance,
		},
		{
			name:  "Unknown account",
			delta: domain.LedgerDelta{AccountID: 99, Amount: 100},
			mockSetup: func(mock pgxmock.PgxPoolIface, tx *pg.MockTXManager) {
				passThrough(tx)
				mock.ExpectQuery(updateBalance).
					WithArgs(int64(100), int64(99)).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectQuery(accountExists).
					WithArgs(int64(99)).
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
			},
			expectedError: domain.ErrNotFound,
		},
		{
			name:          "Zero delta",
			delta:         domain.LedgerDelta{AccountID: 1},
			mockSetup:     func(pgxmock.PgxPoolIface, *pg.MockTXManager) {},
			expectedError: domain.ErrValidation,
		},
		{
			name:  "Insert failure",
			delta: domain.LedgerDelta{AccountID: 1, Amount: 10},
			mockSetup: func(mock pgxmock.PgxPoolIface, tx *pg.MockTXManager) {
				passThrough(tx)
				mock.ExpectQuery(updateBalance).
					WithArgs(int64(10), int64(1)).
					WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(10)))
				mock.ExpectQuery(insertEntry).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, tx := NewMock(t)
			tt.mockSetup(mock, tx)

			result, err := repo.Apply(context.Background(), tt.delta)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			case tt.expectErr:
				assert.Error(t, err)
				assert.Nil(t, result)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_History(t *testing.T) {
	now := time.Now()
	columns := []string{"id", "account_id", "reference", "amount", "type", "description", "previous_balance", "new_balance", "created_at"}
	query := regexp.QuoteMeta(`FROM ledger_entries WHERE account_id = $1`)

	t.Run("Returns entries", func(t *testing.T) {
		repo, mock, _ := NewMock(t)
		mock.ExpectQuery(query).
			WithArgs(int64(5), 100).
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(int64(2), int64(5), "AdminFund", int64(300), domain.EntryIn, "Admin top up", int64(100), int64(400), now).
				AddRow(int64(1), int64(5), "ref-1", int64(100), domain.EntryIn, "Wallet top up", int64(0), int64(100), now))

		entries, err := repo.History(context.Background(), 5, 0)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "AdminFund", entries[0].Reference)
		assert.Equal(t, int64(400), entries[0].NewBalance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty history is not nil", func(t *testing.T) {
		repo, mock, _ := NewMock(t)
		mock.ExpectQuery(query).
			WithArgs(int64(5), 10).
			WillReturnRows(pgxmock.NewRows(columns))

		entries, err := repo.History(context.Background(), 5, 10)
		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})

	t.Run("Query error", func(t *testing.T) {
		repo, mock, _ := NewMock(t)
		mock.ExpectQuery(query).WillReturnError(errors.New("database error"))

		entries, err := repo.History(context.Background(), 5, 10)
		assert.Error(t, err)
		assert.Nil(t, entries)
	})
}
