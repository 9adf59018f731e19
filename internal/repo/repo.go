package repo

import (
	"github.com/GlebRadaev/mealsection/internal/pg"
	accountrepo "github.com/GlebRadaev/mealsection/internal/repo/account-repo"
	ledgerrepo "github.com/GlebRadaev/mealsection/internal/repo/ledger-repo"
	orderrepo "github.com/GlebRadaev/mealsection/internal/repo/order-repo"
	paymentrepo "github.com/GlebRadaev/mealsection/internal/repo/payment-repo"
	withdrawalrepo "github.com/GlebRadaev/mealsection/internal/repo/withdrawal-repo"
)

type Repositories struct {
	AccountRepo    *accountrepo.Repository
	LedgerRepo     *ledgerrepo.Repository
	OrderRepo      *orderrepo.Repository
	WithdrawalRepo *withdrawalrepo.Repository
	PaymentRepo    *paymentrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		AccountRepo:    accountrepo.New(conn),
		LedgerRepo:     ledgerrepo.New(conn, txManager),
		OrderRepo:      orderrepo.New(conn, txManager),
		WithdrawalRepo: withdrawalrepo.New(conn),
		PaymentRepo:    paymentrepo.New(conn),
	}
}
