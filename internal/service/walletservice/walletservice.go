package walletservice

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mealsection/internal/dispatch"
	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/internal/pg"
	"github.com/GlebRadaev/mealsection/internal/realtime"
)

const (
	ReferenceAdminFund   = "AdminFund"
	ReferenceAdminRemove = "AdminRemove"
)

type AccountRepo interface {
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
}

type LedgerRepo interface {
	Apply(ctx context.Context, delta domain.LedgerDelta) (*domain.LedgerEntry, error)
	History(ctx context.Context, accountID int64, limit int) ([]domain.LedgerEntry, error)
}

type WithdrawalRepo interface {
	Create(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error)
	FindByIDForUpdate(ctx context.Context, id int64, role domain.Role) (*domain.Withdrawal, error)
	Resolve(ctx context.Context, id int64, status bool) (*domain.Withdrawal, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Withdrawal, error)
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Withdrawal, error)
}

type BalanceUpdate struct {
	UserID       int64 `json:"userId"`
	AvailableBal int64 `json:"availableBal"`
}

type Service struct {
	accountRepo    AccountRepo
	ledgerRepo     LedgerRepo
	withdrawalRepo WithdrawalRepo
	txManager      pg.TXManager
	broadcaster    realtime.Broadcaster
	dispatcher     dispatch.Dispatcher
}

func New(accountRepo AccountRepo, ledgerRepo LedgerRepo, withdrawalRepo WithdrawalRepo, txManager pg.TXManager, broadcaster realtime.Broadcaster, dispatcher dispatch.Dispatcher) *Service {
	return &Service{
		accountRepo:    accountRepo,
		ledgerRepo:     ledgerRepo,
		withdrawalRepo: withdrawalRepo,
		txManager:      txManager,
		broadcaster:    broadcaster,
		dispatcher:     dispatcher,
	}
}

func (s *Service) Profile(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		zap.L().Error("can't find account", zap.Int64("account_id", accountID), zap.Error(err))
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

func (s *Service) History(ctx context.Context, accountID int64, limit int) ([]domain.LedgerEntry, error) {
	return s.ledgerRepo.History(ctx, accountID, limit)
}

func (s *Service) AddFunds(ctx context.Context, accountID, amount int64) (*domain.LedgerEntry, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than 0", domain.ErrValidation)
	}
	return s.adjust(ctx, accountID, amount, ReferenceAdminFund, "Funds added by manager")
}

// RemoveFunds debits an account on behalf of a manager. It never overdraws.
func (s *Service) RemoveFunds(ctx context.Context, accountID, amount int64) (*domain.LedgerEntry, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than 0", domain.ErrValidation)
	}
	return s.adjust(ctx, accountID, -amount, ReferenceAdminRemove, "Funds removed by manager")
}

func (s *Service) adjust(ctx context.Context, accountID, delta int64, reference, description string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.Apply(ctx, domain.LedgerDelta{
		AccountID:   accountID,
		Amount:      delta,
		Reference:   reference,
		Description: description,
	})
	if err != nil {
		zap.L().Error("can't adjust balance", zap.Int64("account_id", accountID), zap.Int64("delta", delta), zap.Error(err))
		return nil, err
	}
	s.balanceUpdated(accountID, entry.NewBalance)
	zap.L().Info("balance adjusted by manager", zap.Int64("account_id", accountID), zap.Int64("delta", delta))
	return entry, nil
}

func (s *Service) balanceUpdated(accountID, balance int64) {
	s.dispatcher.Submit("balance-updated", func(ctx context.Context) error {
		s.broadcaster.Emit(realtime.EventUserBalanceUpdate, BalanceUpdate{UserID: accountID, AvailableBal: balance})
		return nil
	})
}

func canWithdraw(role domain.Role) bool {
	return role == domain.RoleVendor || role == domain.RoleRider
}

// RequestWithdrawal moves amount out of the account into a pending
// withdrawal. The debit and the withdrawal row are written together.
func (s *Service) RequestWithdrawal(ctx context.Context, accountID int64, role domain.Role, amount int64) (*domain.Withdrawal, error) {
	if !canWithdraw(role) {
		return nil, fmt.Errorf("%w: %s accounts can't withdraw", domain.ErrForbidden, role)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than 0", domain.ErrValidation)
	}

	var created *domain.Withdrawal
	var balance int64
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		account, err := s.accountRepo.FindByID(ctx, accountID)
		if err != nil {
			return err
		}
		if account == nil || account.Role != role {
			return domain.ErrAccountNotFound
		}
		if account.Balance < amount {
			return domain.ErrInsufficientBalance
		}

		created, err = s.withdrawalRepo.Create(ctx, &domain.Withdrawal{
			AccountID:   accountID,
			AccountName: account.Name,
			Role:        role,
			Amount:      amount,
		})
		if err != nil {
			return err
		}

		entry, err := s.ledgerRepo.Apply(ctx, domain.LedgerDelta{
			AccountID:   accountID,
			Amount:      -amount,
			Reference:   strconv.FormatInt(created.ID, 10),
			Description: "Withdrawal request",
		})
		if err != nil {
			return err
		}
		balance = entry.NewBalance
		return nil
	})
	if err != nil {
		zap.L().Error("can't request withdrawal", zap.Int64("account_id", accountID), zap.Int64("amount", amount), zap.Error(err))
		return nil, err
	}

	s.balanceUpdated(accountID, balance)
	zap.L().Info("withdrawal requested", zap.Int64("withdrawal_id", created.ID), zap.Int64("account_id", accountID))
	return created, nil
}

// ResolveWithdrawal approves or rejects a pending withdrawal. A rejection
// returns the escrowed amount to the account.
func (s *Service) ResolveWithdrawal(ctx context.Context, id int64, role domain.Role, approve bool) (*domain.Withdrawal, error) {
	if !canWithdraw(role) {
		return nil, fmt.Errorf("%w: unknown withdrawal role %q", domain.ErrValidation, role)
	}

	var resolved *domain.Withdrawal
	var refund *domain.LedgerEntry
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		w, err := s.withdrawalRepo.FindByIDForUpdate(ctx, id, role)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.ErrWithdrawalNotFound
		}
		if !w.Pending() {
			return fmt.Errorf("%w: withdrawal already resolved", domain.ErrConflict)
		}

		if resolved, err = s.withdrawalRepo.Resolve(ctx, id, approve); err != nil {
			return err
		}
		if approve {
			return nil
		}
		refund, err = s.ledgerRepo.Apply(ctx, domain.LedgerDelta{
			AccountID:   w.AccountID,
			Amount:      w.Amount,
			Reference:   strconv.FormatInt(w.ID, 10),
			Description: "Withdrawal rejected",
		})
		return err
	})
	if err != nil {
		zap.L().Error("can't resolve withdrawal", zap.Int64("withdrawal_id", id), zap.Error(err))
		return nil, err
	}

	if refund != nil {
		s.balanceUpdated(refund.AccountID, refund.NewBalance)
	}
	zap.L().Info("withdrawal resolved", zap.Int64("withdrawal_id", id), zap.Bool("approved", approve))
	return resolved, nil
}

func (s *Service) Withdrawals(ctx context.Context, role domain.Role) ([]domain.Withdrawal, error) {
	if !canWithdraw(role) {
		return nil, fmt.Errorf("%w: unknown withdrawal role %q", domain.ErrValidation, role)
	}
	return s.withdrawalRepo.ListByRole(ctx, role)
}

func (s *Service) AccountWithdrawals(ctx context.Context, accountID int64) ([]domain.Withdrawal, error) {
	return s.withdrawalRepo.ListByAccount(ctx, accountID)
}
