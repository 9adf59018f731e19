package notify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/mealsection/internal/domain"
)

const fanOutLimit = 8

type Pusher interface {
	Push(ctx context.Context, token string, msg PushMessage) error
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type TokenStore interface {
	UpdateFCMToken(ctx context.Context, id int64, token string) error
}

// Notifier turns domain events into pushes and emails.
type Notifier struct {
	pusher     Pusher
	mailer     Mailer
	tokens     TokenStore
	adminEmail string
}

func New(pusher Pusher, mailer Mailer, tokens TokenStore, adminEmail string) *Notifier {
	return &Notifier{
		pusher:     pusher,
		mailer:     mailer,
		tokens:     tokens,
		adminEmail: adminEmail,
	}
}

// ShortRef is the last six characters of the order id, as shown to riders.
func ShortRef(orderID int64) string {
	s := strconv.FormatInt(orderID, 10)
	if len(s) > 6 {
		return s[len(s)-6:]
	}
	return s
}

func naira(amount int64) string {
	return fmt.Sprintf("₦%d", amount)
}

func (n *Notifier) push(ctx context.Context, account *domain.Account, msg PushMessage) error {
	if account.FCMToken == "" {
		zap.L().Debug("account has no fcm token", zap.Int64("account_id", account.ID))
		return nil
	}
	if msg.Data == nil {
		msg.Data = map[string]string{}
	}
	msg.Data["timestamp"] = time.Now().UTC().Format(time.RFC3339)

	err := n.pusher.Push(ctx, account.FCMToken, msg)
	if errors.Is(err, ErrInvalidToken) {
		zap.L().Info("clearing invalid fcm token", zap.Int64("account_id", account.ID))
		return n.tokens.UpdateFCMToken(ctx, account.ID, "")
	}
	return err
}

func (n *Notifier) mail(ctx context.Context, to, subject string, v mailView) error {
	if to == "" {
		return nil
	}
	html, err := render(v)
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, Email{To: []string{to}, Subject: subject, HTML: html})
}

func orderRows(order *domain.Order) []row {
	return []row{
		{Label: "Order", Value: "#" + ShortRef(order.ID)},
		{Label: "Address", Value: order.Address},
		{Label: "Phone", Value: order.Phone},
		{Label: "Total", Value: naira(order.Total())},
	}
}

func (n *Notifier) VendorNewOrder(ctx context.Context, vendor *domain.Account, order *domain.Order, summary domain.VendorSummary) error {
	orderID := strconv.FormatInt(order.ID, 10)
	pushErr := n.push(ctx, vendor, PushMessage{
		Title: "🔔 New Order Received!",
		Body:  fmt.Sprintf("You have a new order for %d item(s) - %s", summary.ItemCount, naira(summary.Amount)),
		Data:  map[string]string{"type": "NEW_ORDER", "orderId": orderID, "storeName": vendor.Name},
	})
	mailErr := n.mail(ctx, vendor.Email, "🔔 New Order Received - MealSection", mailView{
		Emoji:    "🔔",
		Title:    "New Order Received",
		Greeting: "Hello " + vendor.Name + ",",
		Message:  "A customer just placed an order with your store. Please accept or reject it from your dashboard.",
		Rows: []row{
			{Label: "Order", Value: "#" + ShortRef(order.ID)},
			{Label: "Items", Value: strconv.Itoa(summary.ItemCount)},
			{Label: "Amount", Value: naira(summary.Amount)},
			{Label: "Note", Value: order.VendorNote},
		},
	})
	return errors.Join(pushErr, mailErr)
}

func (n *Notifier) fanOut(ctx context.Context, accounts []domain.Account, send func(ctx context.Context, a *domain.Account) error) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs error
	)
	g.SetLimit(fanOutLimit)
	for i := range accounts {
		a := &accounts[i]
		g.Go(func() error {
			if err := send(ctx, a); err != nil {
				mu.Lock()
				errs = errors.Join(errs, fmt.Errorf("account %d: %w", a.ID, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

// RidersPackDecision pushes a vendor's accept or reject to every rider on the
// order's campus.
func (n *Notifier) RidersPackDecision(ctx context.Context, riders []domain.Account, order *domain.Order, vendorName string, accepted bool) error {
	msg := PushMessage{
		Title: "❌ Order Rejected",
		Body:  fmt.Sprintf("Order #%s was rejected by %s", ShortRef(order.ID), vendorName),
		Data:  map[string]string{"type": "ORDER_REJECTED"},
	}
	if accepted {
		msg = PushMessage{
			Title: "🛵 New Delivery Available!",
			Body:  fmt.Sprintf("Order #%s accepted by %s - Ready for pickup", ShortRef(order.ID), vendorName),
			Data:  map[string]string{"type": "ORDER_ACCEPTED", "address": order.Address},
		}
	}
	return n.fanOut(ctx, riders, func(ctx context.Context, rider *domain.Account) error {
		m := msg
		m.Data = map[string]string{
			"orderId":    strconv.FormatInt(order.ID, 10),
			"vendorName": vendorName,
			"university": order.University,
		}
		for k, v := range msg.Data {
			m.Data[k] = v
		}
		return n.push(ctx, rider, m)
	})
}

// RidersOrderAvailable emails every rider on campus once all packs are accepted.
func (n *Notifier) RidersOrderAvailable(ctx context.Context, riders []domain.Account, order *domain.Order) error {
	return n.fanOut(ctx, riders, func(ctx context.Context, rider *domain.Account) error {
		return n.mail(ctx, rider.Email, "🚀 New Delivery Available - MealSection", mailView{
			Emoji:    "🚀",
			Title:    "New Delivery Available",
			Greeting: "Hello " + rider.Name + ",",
			Message:  "An order on your campus has been accepted by every vendor and is ready for pickup.",
			Rows:     orderRows(order),
		})
	})
}

func (n *Notifier) CustomerOrderRejected(ctx context.Context, customer *domain.Account, order *domain.Order, refunded int64) error {
	return n.mail(ctx, customer.Email, "❌ Order Declined - Refund Processed - MealSection", mailView{
		Emoji:    "❌",
		Title:    "Order Declined",
		Greeting: "Hello " + customer.Name + ",",
		Message:  "Unfortunately the vendors could not fulfil your order. The full amount has been refunded to your wallet.",
		Rows: []row{
			{Label: "Order", Value: "#" + ShortRef(order.ID)},
			{Label: "Refunded", Value: naira(refunded)},
		},
	})
}

func (n *Notifier) CustomerOrderUpdate(ctx context.Context, customer *domain.Account, order *domain.Order) error {
	v := mailView{
		Emoji:    "📦",
		Title:    "Order Update",
		Greeting: "Hello " + customer.Name + ",",
		Message:  "Your order status has been updated.",
		Rows:     append(orderRows(order), row{Label: "Status", Value: string(order.Status)}),
	}
	subject := "📦 Order Update - MealSection"
	switch {
	case order.Status == domain.StatusProcessing:
		subject = "👨‍🍳 Your Order is Being Prepared!"
		v.Emoji, v.Title = "👨‍🍳", "Order Processing"
		v.Message = "Your order has been accepted and is being prepared by the vendor."
	case order.Status == domain.StatusDelivered:
		subject = "✅ Your Order Has Been Delivered!"
		v.Emoji, v.Title = "✅", "Order Delivered"
		v.Message = "Your order has been successfully delivered. Enjoy your meal!"
	case order.RiderAssigned():
		subject = "🛵 Rider Assigned to Your Order!"
		v.Emoji, v.Title = "🛵", "Rider on the Way"
		v.Message = "A rider has been assigned and will pick up your order shortly."
	}
	rider := domain.NotAssigned
	if order.RiderAssigned() {
		rider = "Assigned"
	}
	v.Rows = append(v.Rows, row{Label: "Rider", Value: rider})
	return n.mail(ctx, customer.Email, subject, v)
}

func (n *Notifier) CustomerOrderPickedUp(ctx context.Context, customer *domain.Account, order *domain.Order, riderName string) error {
	pushErr := n.push(ctx, customer, PushMessage{
		Title: "🛵 Your Order is On the Way!",
		Body:  fmt.Sprintf("Your order has been picked up by %s. It will arrive soon!", riderName),
		Data: map[string]string{
			"type":      "ORDER_PICKED_UP",
			"orderId":   strconv.FormatInt(order.ID, 10),
			"riderName": riderName,
		},
	})
	mailErr := n.mail(ctx, customer.Email, "🛵 Your Order Is On The Way! - MealSection", mailView{
		Emoji:    "🛵",
		Title:    "Your Order Is On The Way",
		Greeting: "Hello " + customer.Name + ",",
		Message:  riderName + " has picked up your order and is heading to you.",
		Rows:     orderRows(order),
	})
	return errors.Join(pushErr, mailErr)
}

func (n *Notifier) RiderAssigned(ctx context.Context, rider *domain.Account, order *domain.Order) error {
	pushErr := n.push(ctx, rider, PushMessage{
		Title: "🛵 New Delivery Assignment!",
		Body:  "You have been assigned a new delivery to " + order.Address,
		Data: map[string]string{
			"type":      "NEW_ASSIGNMENT",
			"orderId":   strconv.FormatInt(order.ID, 10),
			"riderName": rider.Name,
		},
	})
	mailErr := n.mail(ctx, rider.Email, "🛵 New Delivery Assignment - MealSection", mailView{
		Emoji:    "🛵",
		Title:    "New Delivery Assignment",
		Greeting: "Hello " + rider.Name + ",",
		Message:  "You have been assigned a new delivery.",
		Rows:     append(orderRows(order), row{Label: "Delivery note", Value: order.DeliveryNote}),
	})
	return errors.Join(pushErr, mailErr)
}

func (n *Notifier) Welcome(ctx context.Context, account *domain.Account) error {
	msg := "Your account is ready. Top up your wallet and order from your favourite campus vendors."
	if account.Role.NeedsApproval() {
		msg = "Your account has been created and is awaiting approval by the MealSection team."
	}
	return n.mail(ctx, account.Email, "🎉 Welcome to MealSection!", mailView{
		Emoji:    "🎉",
		Title:    "Welcome to MealSection",
		Greeting: "Hello " + account.Name + ",",
		Message:  msg,
	})
}

func (n *Notifier) AccountApproval(ctx context.Context, account *domain.Account, approved bool) error {
	title, msg := "Account Approved", "Your account has been approved. You can now log in and start receiving orders."
	if !approved {
		title, msg = "Account Not Approved", "Your account has not been approved. Contact the MealSection team for details."
	}
	pushErr := n.push(ctx, account, PushMessage{
		Title: title,
		Body:  msg,
		Data:  map[string]string{"type": "ACCOUNT_APPROVAL", "approved": strconv.FormatBool(approved)},
	})
	mailErr := n.mail(ctx, account.Email, title+" - MealSection", mailView{
		Emoji:    "✅",
		Title:    title,
		Greeting: "Hello " + account.Name + ",",
		Message:  msg,
	})
	return errors.Join(pushErr, mailErr)
}

// OperatorAlert emails the operations inbox. Without one configured the alert
// is only logged.
func (n *Notifier) OperatorAlert(ctx context.Context, subject, detail string) error {
	if n.adminEmail == "" {
		zap.L().Error("operator alert", zap.String("subject", subject), zap.String("detail", detail))
		return nil
	}
	return n.mail(ctx, n.adminEmail, subject, mailView{
		Emoji:   "⚠️",
		Title:   subject,
		Message: detail,
		Footer:  time.Now().UTC().Format(time.RFC3339),
	})
}
