package accountrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/internal/pg"
)

const uniqueViolation = "23505"

const columns = `id, role, name, email, password_hash, university, phone, fcm_token, balance, valid,
	bank_account_number, bank_account_name, bank_name, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scan(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Role, &a.Name, &a.Email, &a.PasswordHash, &a.University, &a.Phone,
		&a.FCMToken, &a.Balance, &a.Valid, &a.BankAccountNumber, &a.BankAccountName, &a.BankName, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) findOne(ctx context.Context, query string, args ...any) (*domain.Account, error) {
	account, err := scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find account", zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.findOne(ctx, `SELECT `+columns+` FROM accounts WHERE id = $1`, id)
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, `SELECT `+columns+` FROM accounts WHERE lower(email) = lower($1)`, email)
}

// FindByRoleAndName resolves a vendor by store name, a rider by user name and
// so on.
func (r *Repository) FindByRoleAndName(ctx context.Context, role domain.Role, name string) (*domain.Account, error) {
	return r.findOne(ctx, `SELECT `+columns+` FROM accounts WHERE role = $1 AND name = $2 ORDER BY id LIMIT 1`, string(role), name)
}

func (r *Repository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	query := `
		INSERT INTO accounts (role, name, email, password_hash, university, phone, fcm_token, valid,
			bank_account_number, bank_account_name, bank_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, balance, created_at
	`
	err := r.db.QueryRow(ctx, query,
		string(account.Role), account.Name, account.Email, account.PasswordHash, account.University,
		account.Phone, account.FCMToken, account.Valid,
		account.BankAccountNumber, account.BankAccountName, account.BankName,
	).Scan(&account.ID, &account.Balance, &account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrConflict
		}
		zap.L().Error("can't save account", zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (r *Repository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	return r.list(ctx, `SELECT `+columns+` FROM accounts WHERE role = $1 ORDER BY created_at DESC`, string(role))
}

// ListByRoleAndUniversity returns approved accounts of the role on one campus.
func (r *Repository) ListByRoleAndUniversity(ctx context.Context, role domain.Role, university string) ([]domain.Account, error) {
	return r.list(ctx, `SELECT `+columns+` FROM accounts WHERE role = $1 AND university = $2 AND valid IS TRUE ORDER BY id`,
		string(role), university)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't list accounts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			zap.L().Error("can't scan account row", zap.Error(err))
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

// SetValid records a manager's approval decision. Only vendor and rider
// accounts carry the flag; nil is returned for any other id.
func (r *Repository) SetValid(ctx context.Context, id int64, valid bool) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET valid = $1
		WHERE id = $2 AND role IN ('vendor', 'rider')
		RETURNING ` + columns
	return r.findOne(ctx, query, valid, id)
}

func (r *Repository) UpdateFCMToken(ctx context.Context, id int64, token string) error {
	_, err := r.db.Exec(ctx, `UPDATE accounts SET fcm_token = $1 WHERE id = $2`, token, id)
	if err != nil {
		zap.L().Error("can't update fcm token", zap.Error(err))
		return err
	}
	return nil
}
