package paymentrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func TestRepository_IsProcessed(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM processed_payment_refs WHERE reference = $1)`)

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expected  bool
		expectErr bool
	}{
		{
			name: "Known reference",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(query).WithArgs("ref-1").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
			},
			expected: true,
		},
		{
			name: "New reference",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(query).WithArgs("ref-1").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
			},
		},
		{
			name: "Database error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(query).WithArgs("ref-1").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			ok, err := repo.IsProcessed(context.Background(), "ref-1")
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestRepository_MarkProcessed(t *testing.T) {
	query := regexp.QuoteMeta(`INSERT INTO processed_payment_refs (reference, account_id) VALUES ($1, $2) ON CONFLICT (reference) DO NOTHING`)

	t.Run("First claim wins", func(t *testing.T) {
		repo, mock := NewMock(t)
		mock.ExpectQuery(query).WithArgs("ref-1", int64(3)).WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

		ok, err := repo.MarkProcessed(context.Background(), "ref-1", 3)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Duplicate delivery", func(t *testing.T) {
		repo, mock := NewMock(t)
		mock.ExpectQuery(query).WithArgs("ref-1", int64(3)).WillReturnError(pgx.ErrNoRows)

		ok, err := repo.MarkProcessed(context.Background(), "ref-1", 3)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Database error", func(t *testing.T) {
		repo, mock := NewMock(t)
		mock.ExpectQuery(query).WillReturnError(errors.New("database error"))

		ok, err := repo.MarkProcessed(context.Background(), "ref-1", 3)
		assert.Error(t, err)
		assert.False(t, ok)
	})
}
