package orderservice

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mealsection/internal/config"
	"github.com/GlebRadaev/mealsection/internal/domain"
)

// settlement is what the accepting vendor is credited.
func (s *Service) settlement(order *domain.Order, vendorID int64) int64 {
	if s.settlementMode == config.SettlementVendorItems {
		return order.VendorLineTotal(vendorID)
	}
	return order.Subtotal
}

// DecidePack records a vendor's accept or reject for their packs. Accepting
// credits the vendor; when every pack ends up rejected the customer gets the
// full total back and the order is cancelled. Repeating a decision is a no-op.
func (s *Service) DecidePack(ctx context.Context, orderID, vendorID int64, accepted bool) (*domain.Order, error) {
	var order *domain.Order
	var changed bool
	var refunded int64
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if order.Status.Terminal() {
			return fmt.Errorf("%w: order is %s", domain.ErrConflict, order.Status)
		}
		pack, ok := order.VendorPack(vendorID)
		if !ok {
			return domain.ErrVendorPackNotFound
		}
		if pack.Accepted != nil {
			if *pack.Accepted == accepted {
				return nil
			}
			return fmt.Errorf("%w: packs were already decided", domain.ErrConflict)
		}

		changed = true
		if _, err := s.repo.SetVendorDecision(ctx, orderID, vendorID, accepted); err != nil {
			return err
		}
		order.SetVendorDecision(vendorID, accepted)

		if accepted {
			amount := s.settlement(order, vendorID)
			if amount <= 0 {
				return nil
			}
			_, err := s.ledgerRepo.Apply(ctx, domain.LedgerDelta{
				AccountID:   vendorID,
				Amount:      amount,
				Reference:   reference(order.ID),
				Description: "Order accepted",
			})
			return err
		}

		if !order.AllPacks(false) {
			return nil
		}
		refunded = order.Total()
		if _, err := s.ledgerRepo.Apply(ctx, domain.LedgerDelta{
			AccountID:   order.UserID,
			Amount:      refunded,
			Reference:   reference(order.ID),
			Description: "Order rejected refund",
		}); err != nil {
			return err
		}
		if err := s.repo.UpdateStatus(ctx, orderID, domain.StatusCancelled); err != nil {
			return err
		}
		order.Status = domain.StatusCancelled
		return nil
	})
	if err != nil {
		zap.L().Error("can't apply vendor decision", zap.Int64("order_id", orderID), zap.Int64("vendor_id", vendorID), zap.Error(err))
		return nil, err
	}

	if !changed {
		zap.L().Info("vendor decision already recorded", zap.Int64("order_id", orderID), zap.Int64("vendor_id", vendorID))
		return order, nil
	}
	s.afterDecision(order, vendorID, accepted, refunded)
	zap.L().Info("vendor decision recorded", zap.Int64("order_id", orderID), zap.Int64("vendor_id", vendorID), zap.Bool("accepted", accepted))
	return order, nil
}

// UpdateStatus moves the order along its lifecycle. Delivery pays the
// assigned rider half of the delivery fee in the same transaction.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, status string) (*domain.Order, error) {
	next, err := domain.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	var order *domain.Order
	var changed bool
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if order.Status == next {
			return nil
		}
		if !order.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: can't move order from %s to %s", domain.ErrConflict, order.Status, next)
		}

		changed = true
		if err := s.repo.UpdateStatus(ctx, orderID, next); err != nil {
			return err
		}
		order.Status = next
		if next != domain.StatusDelivered {
			return nil
		}
		if !order.RiderAssigned() {
			zap.L().Warn("order delivered without a rider, no payout", zap.Int64("order_id", orderID))
			return nil
		}
		payout := order.DeliveryFee / 2
		if payout <= 0 {
			return nil
		}
		_, err = s.ledgerRepo.Apply(ctx, domain.LedgerDelta{
			AccountID:   *order.RiderID,
			Amount:      payout,
			Reference:   reference(order.ID),
			Description: "Delivery payout",
		})
		return err
	})
	if err != nil {
		zap.L().Error("can't update order status", zap.Int64("order_id", orderID), zap.String("status", status), zap.Error(err))
		return nil, err
	}

	if changed {
		s.afterStatus(order)
		zap.L().Info("order status updated", zap.Int64("order_id", orderID), zap.String("status", string(next)))
	}
	return order, nil
}

// AssignRider attaches an approved rider to the order.
func (s *Service) AssignRider(ctx context.Context, orderID, riderID int64) (*domain.Order, error) {
	rider, err := s.accountRepo.FindByID(ctx, riderID)
	if err != nil {
		zap.L().Error("can't find rider", zap.Int64("rider_id", riderID), zap.Error(err))
		return nil, err
	}
	if rider == nil || rider.Role != domain.RoleRider || !rider.CanAuthenticate() {
		return nil, fmt.Errorf("rider %w", domain.ErrNotFound)
	}

	var order *domain.Order
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}
		if order.Status.Terminal() {
			return fmt.Errorf("%w: order is %s", domain.ErrConflict, order.Status)
		}
		return s.repo.AssignRider(ctx, orderID, riderID)
	})
	if err != nil {
		zap.L().Error("can't assign rider", zap.Int64("order_id", orderID), zap.Int64("rider_id", riderID), zap.Error(err))
		return nil, err
	}
	order.RiderID = &riderID

	s.afterAssign(order, rider)
	zap.L().Info("rider assigned", zap.Int64("order_id", orderID), zap.Int64("rider_id", riderID))
	return order, nil
}
