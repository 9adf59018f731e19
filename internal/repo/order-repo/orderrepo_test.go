package orderrepo

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

var (
	orderCols = []string{"id", "user_id", "subtotal", "service_fee", "delivery_fee", "university", "address", "phone",
		"delivery_note", "vendor_note", "order_option", "status", "rider_id", "created_at", "updated_at"}
	packCols = []string{"id", "order_id", "name", "vendor_id", "vendor_name", "pack_type", "accepted"}
	itemCols = []string{"id", "pack_id", "name", "price", "quantity", "image", "category", "vendor_id", "vendor_name"}

	selectPacks = regexp.QuoteMeta(`FROM packs WHERE order_id = ANY($1)`)
	selectItems = regexp.QuoteMeta(`FROM pack_items WHERE pack_id = ANY($1)`)
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB, mockTxManager), mockDB, mockTxManager
}

func orderRow(rows *pgxmock.Rows, id int64, status domain.OrderStatus, riderID *int64, now time.Time) *pgxmock.Rows {
	return rows.AddRow(id, int64(1), int64(2000), int64(200), int64(300), "UNILAG", "Hall 3", "080",
		"", "", "delivery", status, riderID, now, now)
}

func TestRepository_Create(t *testing.T) {
	now := time.Now()
	small := domain.PackSmall

	newOrder := func() *domain.Order {
		return &domain.Order{
			UserID: 1, Subtotal: 2000, ServiceFee: 200, DeliveryFee: 300, Status: domain.StatusPending,
			Packs: []domain.Pack{{
				Name: "Pack 1", VendorID: 4, VendorName: "Mama Put", PackType: &small,
				Items: []domain.Item{
					{Name: "Rice", Price: 500, Quantity: 2, Category: "carbohydrate", VendorID: 4, VendorName: "Mama Put"},
					{Name: "Chicken", Price: 1000, Quantity: 1, Category: "protein", VendorID: 4, VendorName: "Mama Put"},
				},
			}},
		}
	}

	t.Run("Inserts order, packs and items", func(t *testing.T) {
		repo, mock, tx := NewMock(t)
		tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			return fn(ctx)
		})
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO orders`)).
			WithArgs(int64(1), int64(2000), int64(200), int64(300), "", "", "", "", "", "", "Pending").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO packs`)).
			WithArgs(int64(42), "Pack 1", int64(4), "Mama Put", &small, (*bool)(nil)).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO pack_items`)).
			WithArgs(int64(7), "Rice", int64(500), int64(2), "", "carbohydrate", int64(4), "Mama Put").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO pack_items`)).
			WithArgs(int64(7), "Chicken", int64(1000), int64(1), "", "protein", int64(4), "Mama Put").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(12)))

		order := newOrder()
		require.NoError(t, repo.Create(context.Background(), order))
		assert.Equal(t, int64(42), order.ID)
		assert.Equal(t, int64(42), order.Packs[0].OrderID)
		assert.Equal(t, int64(7), order.Packs[0].Items[1].PackID)
		assert.Equal(t, int64(12), order.Packs[0].Items[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Pack insert failure aborts", func(t *testing.T) {
		repo, mock, tx := NewMock(t)
		tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			return fn(ctx)
		})
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO orders`)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO packs`)).
			WillReturnError(errors.New("database error"))

		assert.Error(t, repo.Create(context.Background(), newOrder()))
	})
}

func TestRepository_FindByID(t *testing.T) {
	now := time.Now()
	accepted := true
	big := domain.PackBig
	riderID := int64(9)

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr bool
		check     func(t *testing.T, order *domain.Order)
	}{
		{
			name: "Order with packs and items",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE id = $1`)).
					WithArgs(int64(42)).
					WillReturnRows(orderRow(pgxmock.NewRows(orderCols), 42, domain.StatusProcessing, &riderID, now))
				mock.ExpectQuery(selectPacks).
					WithArgs([]int64{42}).
					WillReturnRows(pgxmock.NewRows(packCols).
						AddRow(int64(7), int64(42), "Pack 1", int64(4), "Mama Put", &big, &accepted).
						AddRow(int64(8), int64(42), "Pack 2", int64(5), "Buka", nil, nil))
				mock.ExpectQuery(selectItems).
					WithArgs([]int64{7, 8}).
					WillReturnRows(pgxmock.NewRows(itemCols).
						AddRow(int64(1), int64(7), "Rice", int64(500), int64(2), "", "carbohydrate", int64(4), "Mama Put").
						AddRow(int64(2), int64(8), "Zobo", int64(300), int64(1), "", "drink", int64(5), "Buka"))
			},
			check: func(t *testing.T, order *domain.Order) {
				require.NotNil(t, order)
				assert.Equal(t, domain.StatusProcessing, order.Status)
				assert.Equal(t, &riderID, order.RiderID)
				require.Len(t, order.Packs, 2)
				assert.Equal(t, int64(1000), order.Packs[0].LineTotal())
				assert.Nil(t, order.Packs[1].Accepted)
				assert.Nil(t, order.Packs[1].PackType)
				assert.Equal(t, "Zobo", order.Packs[1].Items[0].Name)
			},
		},
		{
			name: "Order missing",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE id = $1`)).
					WithArgs(int64(42)).
					WillReturnError(pgx.ErrNoRows)
			},
			check: func(t *testing.T, order *domain.Order) {
				assert.Nil(t, order)
			},
		},
		{
			name: "Packs query fails",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE id = $1`)).
					WithArgs(int64(42)).
					WillReturnRows(orderRow(pgxmock.NewRows(orderCols), 42, domain.StatusPending, nil, now))
				mock.ExpectQuery(selectPacks).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			check: func(t *testing.T, order *domain.Order) {
				assert.Nil(t, order)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, _ := NewMock(t)
			tt.mockSetup(mock)

			order, err := repo.FindByID(context.Background(), 42)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			tt.check(t, order)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByIDForUpdate(t *testing.T) {
	repo, mock, _ := NewMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(3)).
		WillReturnRows(orderRow(pgxmock.NewRows(orderCols), 3, domain.StatusPending, nil, time.Now()))
	mock.ExpectQuery(selectPacks).
		WithArgs([]int64{3}).
		WillReturnRows(pgxmock.NewRows(packCols))

	order, err := repo.FindByIDForUpdate(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, order.RiderAssigned())
	assert.Empty(t, order.Packs)
}

func TestRepository_List(t *testing.T) {
	now := time.Now()

	t.Run("Returns page with total", func(t *testing.T) {
		repo, mock, _ := NewMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders`)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(51)))
		rows := pgxmock.NewRows(orderCols)
		orderRow(rows, 2, domain.StatusPending, nil, now)
		orderRow(rows, 1, domain.StatusDelivered, nil, now)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM orders ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`)).
			WithArgs(50, 50).
			WillReturnRows(rows)
		mock.ExpectQuery(selectPacks).
			WithArgs([]int64{2, 1}).
			WillReturnRows(pgxmock.NewRows(packCols))

		orders, total, err := repo.List(context.Background(), 50, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(51), total)
		assert.Len(t, orders, 2)
	})

	t.Run("Count fails", func(t *testing.T) {
		repo, mock, _ := NewMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders`)).WillReturnError(errors.New("database error"))

		orders, total, err := repo.List(context.Background(), 50, 0)
		assert.Error(t, err)
		assert.Nil(t, orders)
		assert.Zero(t, total)
	})
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock, _ := NewMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE user_id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(orderCols))

	orders, err := repo.FindByUserID(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	query := regexp.QuoteMeta(`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`)

	repo, mock, _ := NewMock(t)
	mock.ExpectExec(query).WithArgs("Delivered", int64(4)).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.UpdateStatus(context.Background(), 4, domain.StatusDelivered))

	mock.ExpectExec(query).WithArgs("Delivered", int64(5)).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), 5, domain.StatusDelivered), domain.ErrNotFound)
}

func TestRepository_SetVendorDecision(t *testing.T) {
	repo, mock, _ := NewMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE packs SET accepted = $1 WHERE order_id = $2 AND vendor_id = $3`)).
		WithArgs(false, int64(4), int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	n, err := repo.SetVendorDecision(context.Background(), 4, 7, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestRepository_AssignRider(t *testing.T) {
	query := regexp.QuoteMeta(`UPDATE orders SET rider_id = $1`)

	repo, mock, _ := NewMock(t)
	mock.ExpectExec(query).WithArgs(int64(9), int64(4)).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.AssignRider(context.Background(), 4, 9))

	mock.ExpectExec(query).WithArgs(int64(9), int64(5)).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.AssignRider(context.Background(), 5, 9), domain.ErrOrderNotFound)

	mock.ExpectExec(query).WillReturnError(errors.New("database error"))
	assert.Error(t, repo.AssignRider(context.Background(), 6, 9))
}

func TestRepository_Messages(t *testing.T) {
	now := time.Now()
	repo, mock, _ := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO order_messages`)).
		WithArgs(int64(4), "Rider is close", true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))
	msg := &domain.OrderMessage{OrderID: 4, Text: "Rider is close", FromAdmin: true}
	require.NoError(t, repo.AddMessage(context.Background(), msg))
	assert.Equal(t, int64(1), msg.ID)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM order_messages WHERE order_id = $1`)).
		WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "order_id", "text", "from_admin", "created_at"}).
			AddRow(int64(1), int64(4), "Rider is close", true, now))
	messages, err := repo.Messages(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, []domain.OrderMessage{*msg}, messages)
}
