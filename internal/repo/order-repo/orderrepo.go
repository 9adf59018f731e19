package orderrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/internal/pg"
)

const orderColumns = `id, user_id, subtotal, service_fee, delivery_fee, university, address, phone,
	delivery_note, vendor_note, order_option, status, rider_id, created_at, updated_at`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Subtotal, &o.ServiceFee, &o.DeliveryFee, &o.University, &o.Address,
		&o.Phone, &o.DeliveryNote, &o.VendorNote, &o.OrderOption, &o.Status, &o.RiderID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts the order with its packs and items. Ids and timestamps are
// written back into order.
func (r *Repository) Create(ctx context.Context, order *domain.Order) error {
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		query := `
			INSERT INTO orders (user_id, subtotal, service_fee, delivery_fee, university, address, phone,
				delivery_note, vendor_note, order_option, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id, created_at, updated_at
		`
		err := r.db.QueryRow(ctx, query,
			order.UserID, order.Subtotal, order.ServiceFee, order.DeliveryFee, order.University, order.Address,
			order.Phone, order.DeliveryNote, order.VendorNote, order.OrderOption, string(order.Status),
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			zap.L().Error("can't save order", zap.Error(err))
			return err
		}

		for i := range order.Packs {
			pack := &order.Packs[i]
			pack.OrderID = order.ID
			err := r.db.QueryRow(ctx,
				`INSERT INTO packs (order_id, name, vendor_id, vendor_name, pack_type, accepted)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
				order.ID, pack.Name, pack.VendorID, pack.VendorName, pack.PackType, pack.Accepted,
			).Scan(&pack.ID)
			if err != nil {
				zap.L().Error("can't save pack", zap.Error(err))
				return err
			}

			for j := range pack.Items {
				item := &pack.Items[j]
				item.PackID = pack.ID
				err := r.db.QueryRow(ctx,
					`INSERT INTO pack_items (pack_id, name, price, quantity, image, category, vendor_id, vendor_name)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
					pack.ID, item.Name, item.Price, item.Quantity, item.Image, item.Category, item.VendorID, item.VendorName,
				).Scan(&item.ID)
				if err != nil {
					zap.L().Error("can't save pack item", zap.Error(err))
					return err
				}
			}
		}
		return nil
	})
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.find(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// FindByIDForUpdate locks the order row until the surrounding transaction
// ends. It must be called inside TXManager.Begin.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return r.find(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *Repository) find(ctx context.Context, query string, id int64) (*domain.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find order", zap.Int64("order_id", id), zap.Error(err))
		return nil, err
	}
	orders := []domain.Order{*order}
	if err := r.loadPacks(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	orders, err := r.list(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return orders, r.loadPacks(ctx, orders)
}

// List returns one page of all orders, newest first, and the total count.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]domain.Order, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		zap.L().Error("can't count orders", zap.Error(err))
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	orders, err := r.list(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if err := r.loadPacks(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			zap.L().Error("can't scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *Repository) loadPacks(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	byOrder := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byOrder[o.ID] = i
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, name, vendor_id, vendor_name, pack_type, accepted
		FROM packs
		WHERE order_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		zap.L().Error("can't get packs", zap.Error(err))
		return err
	}
	var packs []domain.Pack
	for rows.Next() {
		var p domain.Pack
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Name, &p.VendorID, &p.VendorName, &p.PackType, &p.Accepted); err != nil {
			rows.Close()
			zap.L().Error("can't scan pack row", zap.Error(err))
			return err
		}
		packs = append(packs, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	if len(packs) == 0 {
		return nil
	}

	packIDs := make([]int64, len(packs))
	byPack := make(map[int64]int, len(packs))
	for i, p := range packs {
		packIDs[i] = p.ID
		byPack[p.ID] = i
	}

	rows, err = r.db.Query(ctx, `
		SELECT id, pack_id, name, price, quantity, image, category, vendor_id, vendor_name
		FROM pack_items
		WHERE pack_id = ANY($1)
		ORDER BY id
	`, packIDs)
	if err != nil {
		zap.L().Error("can't get pack items", zap.Error(err))
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var it domain.Item
		err := rows.Scan(&it.ID, &it.PackID, &it.Name, &it.Price, &it.Quantity, &it.Image, &it.Category,
			&it.VendorID, &it.VendorName)
		if err != nil {
			zap.L().Error("can't scan pack item row", zap.Error(err))
			return err
		}
		p := &packs[byPack[it.PackID]]
		p.Items = append(p.Items, it)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, p := range packs {
		o := &orders[byOrder[p.OrderID]]
		o.Packs = append(o.Packs, p)
	}
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, string(status), id)
	if err != nil {
		zap.L().Error("failed to update order status", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// SetVendorDecision marks every pack of vendorID in the order and returns the
// number of packs touched.
func (r *Repository) SetVendorDecision(ctx context.Context, orderID, vendorID int64, accepted bool) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE packs SET accepted = $1 WHERE order_id = $2 AND vendor_id = $3`,
		accepted, orderID, vendorID)
	if err != nil {
		zap.L().Error("failed to update pack decision", zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) AssignRider(ctx context.Context, orderID, riderID int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET rider_id = $1, updated_at = NOW() WHERE id = $2`, riderID, orderID)
	if err != nil {
		zap.L().Error("failed to assign rider", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *Repository) AddMessage(ctx context.Context, msg *domain.OrderMessage) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO order_messages (order_id, text, from_admin) VALUES ($1, $2, $3) RETURNING id, created_at`,
		msg.OrderID, msg.Text, msg.FromAdmin,
	).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		zap.L().Error("can't save order message", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Messages(ctx context.Context, orderID int64) ([]domain.OrderMessage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, order_id, text, from_admin, created_at FROM order_messages WHERE order_id = $1 ORDER BY created_at, id`,
		orderID)
	if err != nil {
		zap.L().Error("can't get order messages", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	messages := make([]domain.OrderMessage, 0)
	for rows.Next() {
		var m domain.OrderMessage
		if err := rows.Scan(&m.ID, &m.OrderID, &m.Text, &m.FromAdmin, &m.CreatedAt); err != nil {
			zap.L().Error("can't scan order message row", zap.Error(err))
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
