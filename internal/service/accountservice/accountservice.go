package accountservice

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mealsection/internal/dispatch"
	"github.com/GlebRadaev/mealsection/internal/domain"
)

type Repo interface {
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error)
	SetValid(ctx context.Context, id int64, valid bool) (*domain.Account, error)
}

type Notifier interface {
	AccountApproval(ctx context.Context, account *domain.Account, approved bool) error
}

type Service struct {
	repo       Repo
	notifier   Notifier
	dispatcher dispatch.Dispatcher
}

func New(repo Repo, notifier Notifier, dispatcher dispatch.Dispatcher) *Service {
	return &Service{
		repo:       repo,
		notifier:   notifier,
		dispatcher: dispatcher,
	}
}

func (s *Service) Accounts(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	return s.repo.ListByRole(ctx, role)
}

// SetApproval locks or unlocks a vendor or rider account.
func (s *Service) SetApproval(ctx context.Context, id int64, valid bool) (*domain.Account, error) {
	account, err := s.repo.SetValid(ctx, id, valid)
	if err != nil {
		zap.L().Error("can't update account approval", zap.Int64("account_id", id), zap.Error(err))
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}

	s.dispatcher.Submit("account-approval", func(ctx context.Context) error {
		return s.notifier.AccountApproval(ctx, account, valid)
	})
	zap.L().Info("account approval updated", zap.Int64("account_id", id), zap.Bool("valid", valid))
	return account, nil
}
