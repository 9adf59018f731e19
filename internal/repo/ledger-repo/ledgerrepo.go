package ledgerrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/internal/pg"
)

const defaultHistoryLimit = 100

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

// Apply is the only write path to accounts.balance. The balance update and
// the history entry land in the same transaction; a debit that would take the
// balance below zero fails with domain.ErrInsufficientBalance.
func (r *Repository) Apply(ctx context.Context, delta domain.LedgerDelta) (*domain.LedgerEntry, error) {
	if delta.Amount == 0 {
		return nil, fmt.Errorf("%w: ledger delta must be non-zero", domain.ErrValidation)
	}

	entry := domain.LedgerEntry{
		AccountID:   delta.AccountID,
		Reference:   delta.Reference,
		Amount:      abs(delta.Amount),
		Type:        delta.EntryType(),
		Description: delta.Description,
	}

	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		query := `
			UPDATE accounts
			SET balance = balance + $1
			WHERE id = $2 AND balance + $1 >= 0
			RETURNING balance
		`
		err := r.db.QueryRow(ctx, query, delta.Amount, delta.AccountID).Scan(&entry.NewBalance)
		if errors.Is(err, pgx.ErrNoRows) {
			return r.rejection(ctx, delta.AccountID)
		}
		if err != nil {
			zap.L().Error("failed to apply balance delta", zap.Int64("account_id", delta.AccountID), zap.Error(err))
			return err
		}
		entry.PreviousBalance = entry.NewBalance - delta.Amount

		query = `
			INSERT INTO ledger_entries (account_id, reference, amount, type, description, previous_balance, new_balance)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at
		`
		err = r.db.QueryRow(ctx, query,
			entry.AccountID, entry.Reference, entry.Amount, string(entry.Type),
			entry.Description, entry.PreviousBalance, entry.NewBalance,
		).Scan(&entry.ID, &entry.CreatedAt)
		if err != nil {
			zap.L().Error("failed to record ledger entry", zap.Int64("account_id", delta.AccountID), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *Repository) rejection(ctx context.Context, accountID int64) error {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, accountID).Scan(&exists)
	if err != nil {
		zap.L().Error("failed to check account", zap.Int64("account_id", accountID), zap.Error(err))
		return err
	}
	if !exists {
		return domain.ErrAccountNotFound
	}
	return domain.ErrInsufficientBalance
}

func (r *Repository) History(ctx context.Context, accountID int64, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	query := `
		SELECT id, account_id, reference, amount, type, description, previous_balance, new_balance, created_at
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, accountID, limit)
	if err != nil {
		zap.L().Error("failed to fetch ledger history", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		var e domain.LedgerEntry
		err := rows.Scan(&e.ID, &e.AccountID, &e.Reference, &e.Amount, &e.Type, &e.Description,
			&e.PreviousBalance, &e.NewBalance, &e.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan ledger entry", zap.Error(err))
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
