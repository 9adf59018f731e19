package orderservice

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/internal/realtime"
)

type OrderEvent struct {
	OrderID    int64              `json:"orderId"`
	UserID     int64              `json:"userId"`
	University string             `json:"university"`
	Total      int64              `json:"total"`
	Status     domain.OrderStatus `json:"status"`
	VendorIDs  []int64            `json:"vendorIds"`
}

type PacksEvent struct {
	OrderID  int64              `json:"orderId"`
	VendorID int64              `json:"vendorId"`
	Accepted bool               `json:"accepted"`
	Status   domain.OrderStatus `json:"status"`
}

type StatusEvent struct {
	OrderID int64              `json:"orderId"`
	Status  domain.OrderStatus `json:"status"`
	RiderID *int64             `json:"riderId"`
}

type AssignEvent struct {
	OrderID   int64  `json:"orderId"`
	RiderID   int64  `json:"riderId"`
	RiderName string `json:"riderName"`
}

type MessageEvent struct {
	OrderID   int64     `json:"orderId"`
	Text      string    `json:"text"`
	FromAdmin bool      `json:"fromAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Service) emit(name, event string, payload any) {
	s.dispatcher.Submit(name, func(context.Context) error {
		s.broadcaster.Emit(event, payload)
		return nil
	})
}

func (s *Service) customer(ctx context.Context, order *domain.Order) (*domain.Account, error) {
	customer, err := s.accountRepo.FindByID(ctx, order.UserID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrAccountNotFound
	}
	return customer, nil
}

func (s *Service) afterPlace(order *domain.Order, vendors map[int64]*domain.Account) {
	summaries := order.VendorSummaries()
	ids := make([]int64, 0, len(summaries))
	for _, sum := range summaries {
		ids = append(ids, sum.VendorID)
	}
	s.emit("order-new", realtime.EventOrderNew, OrderEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		University: order.University,
		Total:      order.Total(),
		Status:     order.Status,
		VendorIDs:  ids,
	})

	for _, sum := range summaries {
		vendor := vendors[sum.VendorID]
		if vendor == nil {
			continue
		}
		s.dispatcher.Submit("vendor-new-order", func(ctx context.Context) error {
			return s.notifier.VendorNewOrder(ctx, vendor, order, sum)
		})
	}
}

func (s *Service) afterDecision(order *domain.Order, vendorID int64, accepted bool, refunded int64) {
	s.emit("packs-updated", realtime.EventPacksUpdated, PacksEvent{
		OrderID:  order.ID,
		VendorID: vendorID,
		Accepted: accepted,
		Status:   order.Status,
	})

	vendorName := ""
	if p, ok := order.VendorPack(vendorID); ok {
		vendorName = p.VendorName
	}
	allAccepted := order.AllPacks(true)

	s.dispatcher.Submit("pack-decision-riders", func(ctx context.Context) error {
		riders, err := s.accountRepo.ListByRoleAndUniversity(ctx, domain.RoleRider, order.University)
		if err != nil {
			return err
		}
		err = s.notifier.RidersPackDecision(ctx, riders, order, vendorName, accepted)
		if allAccepted {
			err = errors.Join(err, s.notifier.RidersOrderAvailable(ctx, riders, order))
		}
		return err
	})

	if allAccepted {
		s.dispatcher.Submit("order-accepted-customer", func(ctx context.Context) error {
			customer, err := s.customer(ctx, order)
			if err != nil {
				return err
			}
			return s.notifier.CustomerOrderUpdate(ctx, customer, order)
		})
	}

	if refunded > 0 {
		s.emit("order-status", realtime.EventOrderStatus, StatusEvent{OrderID: order.ID, Status: order.Status, RiderID: order.RiderID})
		s.dispatcher.Submit("order-rejected-customer", func(ctx context.Context) error {
			customer, err := s.customer(ctx, order)
			if err != nil {
				return err
			}
			return s.notifier.CustomerOrderRejected(ctx, customer, order, refunded)
		})
	}
}

func (s *Service) afterStatus(order *domain.Order) {
	s.emit("order-status", realtime.EventOrderStatus, StatusEvent{OrderID: order.ID, Status: order.Status, RiderID: order.RiderID})

	s.dispatcher.Submit("order-status-customer", func(ctx context.Context) error {
		customer, err := s.customer(ctx, order)
		if err != nil {
			return err
		}
		var pickupErr error
		if order.Status == domain.StatusProcessing {
			pickupErr = s.notifier.CustomerOrderPickedUp(ctx, customer, order, s.riderName(ctx, order))
		}
		return errors.Join(pickupErr, s.notifier.CustomerOrderUpdate(ctx, customer, order))
	})
}

func (s *Service) riderName(ctx context.Context, order *domain.Order) string {
	if !order.RiderAssigned() {
		return "your rider"
	}
	rider, err := s.accountRepo.FindByID(ctx, *order.RiderID)
	if err != nil || rider == nil {
		return "your rider"
	}
	return rider.Name
}

func (s *Service) afterAssign(order *domain.Order, rider *domain.Account) {
	s.emit("order-assign-rider", realtime.EventOrderAssignRider, AssignEvent{
		OrderID:   order.ID,
		RiderID:   rider.ID,
		RiderName: rider.Name,
	})
	s.dispatcher.Submit("rider-assigned", func(ctx context.Context) error {
		return s.notifier.RiderAssigned(ctx, rider, order)
	})
}
