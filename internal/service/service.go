package service

import (
	"go.uber.org/zap"

	"github.com/GlebRadaev/mealsection/internal/config"
	"github.com/GlebRadaev/mealsection/internal/dispatch"
	"github.com/GlebRadaev/mealsection/internal/handlers/accounts"
	"github.com/GlebRadaev/mealsection/internal/handlers/auth"
	"github.com/GlebRadaev/mealsection/internal/handlers/orders"
	"github.com/GlebRadaev/mealsection/internal/handlers/payments"
	"github.com/GlebRadaev/mealsection/internal/handlers/wallet"
	"github.com/GlebRadaev/mealsection/internal/notify"
	"github.com/GlebRadaev/mealsection/internal/pg"
	"github.com/GlebRadaev/mealsection/internal/realtime"
	"github.com/GlebRadaev/mealsection/internal/repo"
	"github.com/GlebRadaev/mealsection/internal/service/accountservice"
	"github.com/GlebRadaev/mealsection/internal/service/authservice"
	"github.com/GlebRadaev/mealsection/internal/service/orderservice"
	"github.com/GlebRadaev/mealsection/internal/service/paymentservice"
	"github.com/GlebRadaev/mealsection/internal/service/walletservice"
	pkgauth "github.com/GlebRadaev/mealsection/pkg/auth"
)

type Services struct {
	AuthService    auth.Service
	OrderService   orders.Service
	WalletService  wallet.Service
	AccountService accounts.Service
	PaymentService payments.Service
}

// Deps are the collaborators shared by every service.
type Deps struct {
	TXManager   pg.TXManager
	JWT         pkgauth.JWTServiceInterface
	Notifier    *notify.Notifier
	Broadcaster realtime.Broadcaster
	Dispatcher  dispatch.Dispatcher
	Verifier    paymentservice.Verifier
	AuditLog    *zap.Logger
}

func New(cfg *config.Config, repo *repo.Repositories, deps Deps) *Services {
	authService := authservice.New(cfg, repo.AccountRepo, &pkgauth.HashService{}, deps.JWT, deps.Notifier, deps.Dispatcher)
	orderService := orderservice.New(cfg, repo.OrderRepo, repo.AccountRepo, repo.LedgerRepo,
		deps.TXManager, deps.Notifier, deps.Broadcaster, deps.Dispatcher)
	walletService := walletservice.New(repo.AccountRepo, repo.LedgerRepo, repo.WithdrawalRepo,
		deps.TXManager, deps.Broadcaster, deps.Dispatcher)
	accountService := accountservice.New(repo.AccountRepo, deps.Notifier, deps.Dispatcher)
	paymentService := paymentservice.New(cfg.PaystackSecret, deps.AuditLog, repo.AccountRepo, repo.PaymentRepo,
		repo.LedgerRepo, deps.TXManager, deps.Verifier, deps.Notifier, deps.Broadcaster, deps.Dispatcher)

	return &Services{
		AuthService:    authService,
		OrderService:   orderService,
		WalletService:  walletService,
		AccountService: accountService,
		PaymentService: paymentService,
	}
}
