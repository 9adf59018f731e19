package withdrawalrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/internal/pg"
)

const columns = `id, account_id, account_name, role, amount, status, created_at, resolved_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scan(row pgx.Row) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	err := row.Scan(&w.ID, &w.AccountID, &w.AccountName, &w.Role, &w.Amount, &w.Status, &w.CreatedAt, &w.ResolvedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repository) Create(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error) {
	query := `
		INSERT INTO withdrawals (account_id, account_name, role, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, withdrawal.AccountID, withdrawal.AccountName, string(withdrawal.Role), withdrawal.Amount).
		Scan(&withdrawal.ID, &withdrawal.CreatedAt)
	if err != nil {
		zap.L().Error("can't save withdrawal", zap.Error(err))
		return nil, err
	}
	return withdrawal, nil
}

// FindByIDForUpdate locks the withdrawal row for the rest of the surrounding
// transaction.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int64, role domain.Role) (*domain.Withdrawal, error) {
	query := `SELECT ` + columns + ` FROM withdrawals WHERE id = $1 AND role = $2 FOR UPDATE`
	w, err := scan(r.db.QueryRow(ctx, query, id, string(role)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find withdrawal", zap.Error(err))
		return nil, err
	}
	return w, nil
}

func (r *Repository) Resolve(ctx context.Context, id int64, status bool) (*domain.Withdrawal, error) {
	query := `
		UPDATE withdrawals
		SET status = $1, resolved_at = NOW()
		WHERE id = $2
		RETURNING ` + columns
	w, err := scan(r.db.QueryRow(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWithdrawalNotFound
		}
		zap.L().Error("failed to resolve withdrawal", zap.Error(err))
		return nil, err
	}
	return w, nil
}

func (r *Repository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Withdrawal, error) {
	return r.list(ctx, `SELECT `+columns+` FROM withdrawals WHERE role = $1 ORDER BY created_at DESC, id DESC`, string(role))
}

func (r *Repository) ListByAccount(ctx context.Context, accountID int64) ([]domain.Withdrawal, error) {
	return r.list(ctx, `SELECT `+columns+` FROM withdrawals WHERE account_id = $1 ORDER BY created_at DESC, id DESC`, accountID)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Withdrawal, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	withdrawals := make([]domain.Withdrawal, 0)
	for rows.Next() {
		w, err := scan(rows)
		if err != nil {
			zap.L().Error("failed to scan withdrawal row", zap.Error(err))
			return nil, err
		}
		withdrawals = append(withdrawals, *w)
	}
	return withdrawals, rows.Err()
}
