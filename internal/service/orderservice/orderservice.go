package orderservice

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mealsection/internal/config"
	"github.com/GlebRadaev/mealsection/internal/dispatch"
	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/internal/pg"
	"github.com/GlebRadaev/mealsection/internal/realtime"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

type Repo interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	FindByUserID(ctx context.Context, userID int64) ([]domain.Order, error)
	List(ctx context.Context, limit, offset int) ([]domain.Order, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	SetVendorDecision(ctx context.Context, orderID, vendorID int64, accepted bool) (int64, error)
	AssignRider(ctx context.Context, orderID, riderID int64) error
	AddMessage(ctx context.Context, msg *domain.OrderMessage) error
	Messages(ctx context.Context, orderID int64) ([]domain.OrderMessage, error)
}

type AccountRepo interface {
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	FindByRoleAndName(ctx context.Context, role domain.Role, name string) (*domain.Account, error)
	ListByRoleAndUniversity(ctx context.Context, role domain.Role, university string) ([]domain.Account, error)
}

type LedgerRepo interface {
	Apply(ctx context.Context, delta domain.LedgerDelta) (*domain.LedgerEntry, error)
}

type Notifier interface {
	VendorNewOrder(ctx context.Context, vendor *domain.Account, order *domain.Order, summary domain.VendorSummary) error
	RidersPackDecision(ctx context.Context, riders []domain.Account, order *domain.Order, vendorName string, accepted bool) error
	RidersOrderAvailable(ctx context.Context, riders []domain.Account, order *domain.Order) error
	CustomerOrderRejected(ctx context.Context, customer *domain.Account, order *domain.Order, refunded int64) error
	CustomerOrderUpdate(ctx context.Context, customer *domain.Account, order *domain.Order) error
	CustomerOrderPickedUp(ctx context.Context, customer *domain.Account, order *domain.Order, riderName string) error
	RiderAssigned(ctx context.Context, rider *domain.Account, order *domain.Order) error
}

type Service struct {
	repo           Repo
	accountRepo    AccountRepo
	ledgerRepo     LedgerRepo
	txManager      pg.TXManager
	notifier       Notifier
	broadcaster    realtime.Broadcaster
	dispatcher     dispatch.Dispatcher
	settlementMode string
}

func New(cfg *config.Config, repo Repo, accountRepo AccountRepo, ledgerRepo LedgerRepo, txManager pg.TXManager, notifier Notifier, broadcaster realtime.Broadcaster, dispatcher dispatch.Dispatcher) *Service {
	return &Service{
		repo:           repo,
		accountRepo:    accountRepo,
		ledgerRepo:     ledgerRepo,
		txManager:      txManager,
		notifier:       notifier,
		broadcaster:    broadcaster,
		dispatcher:     dispatcher,
		settlementMode: cfg.SettlementMode,
	}
}

func reference(orderID int64) string {
	return strconv.FormatInt(orderID, 10)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrValidation}, args...)...)
}

// validatePacks checks each pack in turn; the first failure wins.
func validatePacks(packs []domain.Pack) error {
	if len(packs) == 0 {
		return invalid("no packs provided")
	}
	for _, p := range packs {
		if strings.TrimSpace(p.Name) == "" {
			return invalid("pack missing name")
		}
		if strings.TrimSpace(p.VendorName) == "" {
			return invalid("pack missing vendorName")
		}
		if len(p.Items) == 0 {
			return invalid("pack %q has no items", p.Name)
		}
		for _, it := range p.Items {
			if it.NeedsPackType() && (p.PackType == nil || !p.PackType.Valid()) {
				return invalid("pack %q is missing a valid packType, select small or big for packs with protein or carbohydrate", p.Name)
			}
		}
		for _, it := range p.Items {
			if it.VendorName != "" && it.VendorName != p.VendorName {
				return invalid("item vendor mismatch in pack %q, all items must belong to %s", p.Name, p.VendorName)
			}
		}
	}
	return nil
}

func validateAmounts(order *domain.Order) error {
	if order.Subtotal <= 0 {
		return invalid("subtotal must be greater than 0")
	}
	if order.ServiceFee < 0 || order.DeliveryFee < 0 {
		return invalid("fees can't be negative")
	}
	for _, p := range order.Packs {
		for _, it := range p.Items {
			if it.Price < 0 || it.Quantity <= 0 {
				return invalid("item %q has an invalid price or quantity", it.Name)
			}
		}
	}
	return nil
}

// resolveVendors binds every pack to an approved vendor account, by id when
// the client sent one and by store name otherwise.
func (s *Service) resolveVendors(ctx context.Context, packs []domain.Pack) (map[int64]*domain.Account, error) {
	vendors := make(map[int64]*domain.Account)
	byName := make(map[string]*domain.Account)
	for i := range packs {
		p := &packs[i]
		name := p.VendorName

		var vendor *domain.Account
		var err error
		switch {
		case p.VendorID != 0 && vendors[p.VendorID] != nil:
			vendor = vendors[p.VendorID]
		case p.VendorID != 0:
			vendor, err = s.accountRepo.FindByID(ctx, p.VendorID)
		case byName[name] != nil:
			vendor = byName[name]
		default:
			vendor, err = s.accountRepo.FindByRoleAndName(ctx, domain.RoleVendor, name)
		}
		if err != nil {
			return nil, err
		}
		if vendor == nil || vendor.Role != domain.RoleVendor || !vendor.CanAuthenticate() {
			return nil, invalid("vendor %q is not available", name)
		}

		vendors[vendor.ID] = vendor
		byName[name] = vendor
		p.VendorID = vendor.ID
		p.VendorName = vendor.Name
		for j := range p.Items {
			p.Items[j].VendorID = vendor.ID
			p.Items[j].VendorName = vendor.Name
		}
	}
	return vendors, nil
}

// Place validates the order, debits the customer's wallet for the full
// total and stores the order as Pending with every pack undecided.
func (s *Service) Place(ctx context.Context, customerID int64, order *domain.Order) (*domain.Order, error) {
	if err := validatePacks(order.Packs); err != nil {
		return nil, err
	}
	if err := validateAmounts(order); err != nil {
		return nil, err
	}
	vendors, err := s.resolveVendors(ctx, order.Packs)
	if err != nil {
		zap.L().Info("order rejected", zap.Int64("customer_id", customerID), zap.Error(err))
		return nil, err
	}

	customer, err := s.accountRepo.FindByID(ctx, customerID)
	if err != nil {
		zap.L().Error("can't find customer", zap.Int64("customer_id", customerID), zap.Error(err))
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrAccountNotFound
	}
	total := order.Total()
	if customer.Balance < total {
		zap.L().Info("insufficient balance for order", zap.Int64("customer_id", customerID), zap.Int64("total", total), zap.Int64("balance", customer.Balance))
		return nil, domain.ErrInsufficientBalance
	}

	order.UserID = customerID
	order.Status = domain.StatusPending
	order.RiderID = nil
	if order.University == "" {
		order.University = customer.University
	}
	for i := range order.Packs {
		order.Packs[i].Accepted = nil
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, order); err != nil {
			return err
		}
		_, err := s.ledgerRepo.Apply(ctx, domain.LedgerDelta{
			AccountID:   customerID,
			Amount:      -total,
			Reference:   reference(order.ID),
			Description: "Order placement",
		})
		return err
	})
	if err != nil {
		zap.L().Error("can't place order", zap.Int64("customer_id", customerID), zap.Error(err))
		return nil, err
	}

	s.afterPlace(order, vendors)
	zap.L().Info("order placed", zap.Int64("order_id", order.ID), zap.Int64("customer_id", customerID), zap.Int64("total", total))
	return order, nil
}

// Order returns an order the account is allowed to see.
func (s *Service) Order(ctx context.Context, orderID, accountID int64, role domain.Role) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		zap.L().Error("can't find order", zap.Int64("order_id", orderID), zap.Error(err))
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !canView(order, accountID, role) {
		return nil, fmt.Errorf("%w: order belongs to another account", domain.ErrForbidden)
	}
	return order, nil
}

func canView(order *domain.Order, accountID int64, role domain.Role) bool {
	switch role {
	case domain.RoleManager, domain.RoleRider:
		return true
	case domain.RoleCustomer:
		return order.UserID == accountID
	case domain.RoleVendor:
		_, ok := order.VendorPack(accountID)
		return ok
	}
	return false
}

func (s *Service) UserOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// List pages through every order, newest first. Page numbers start at 1.
func (s *Service) List(ctx context.Context, page, limit int) ([]domain.Order, int64, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if page <= 0 {
		page = 1
	}
	return s.repo.List(ctx, limit, (page-1)*limit)
}

func (s *Service) AddMessage(ctx context.Context, orderID int64, text string, fromAdmin bool) (*domain.OrderMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("message text is required")
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	msg := &domain.OrderMessage{OrderID: orderID, Text: text, FromAdmin: fromAdmin}
	if err := s.repo.AddMessage(ctx, msg); err != nil {
		zap.L().Error("can't add order message", zap.Int64("order_id", orderID), zap.Error(err))
		return nil, err
	}
	s.emit("order-message", realtime.EventOrderMessage, MessageEvent{
		OrderID:   orderID,
		Text:      msg.Text,
		FromAdmin: msg.FromAdmin,
		CreatedAt: msg.CreatedAt,
	})
	return msg, nil
}

func (s *Service) Messages(ctx context.Context, orderID, accountID int64, role domain.Role) ([]domain.OrderMessage, error) {
	if _, err := s.Order(ctx, orderID, accountID, role); err != nil {
		return nil, err
	}
	return s.repo.Messages(ctx, orderID)
}
