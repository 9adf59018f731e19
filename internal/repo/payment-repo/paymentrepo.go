package paymentrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mealsection/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) IsProcessed(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM processed_payment_refs WHERE reference = $1)`, reference,
	).Scan(&exists)
	if err != nil {
		zap.L().Error("can't check payment reference", zap.String("reference", reference), zap.Error(err))
		return false, err
	}
	return exists, nil
}

// MarkProcessed claims the reference for accountID. It reports false when
// another delivery of the same event already claimed it.
func (r *Repository) MarkProcessed(ctx context.Context, reference string, accountID int64) (bool, error) {
	query := `
		INSERT INTO processed_payment_refs (reference, account_id)
		VALUES ($1, $2)
		ON CONFLICT (reference) DO NOTHING
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query, reference, accountID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		zap.L().Error("can't save payment reference", zap.String("reference", reference), zap.Error(err))
		return false, err
	}
	return true, nil
}
