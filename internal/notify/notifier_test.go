package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/mealsection/internal/domain"
)

func NewMock(t *testing.T) (*Notifier, *MockPusher, *MockMailer, *MockTokenStore) {
	ctrl := gomock.NewController(t)
	pusher := NewMockPusher(ctrl)
	mailer := NewMockMailer(ctrl)
	tokens := NewMockTokenStore(ctrl)
	return New(pusher, mailer, tokens, "ops@mealsection.com"), pusher, mailer, tokens
}

func testOrder() *domain.Order {
	return &domain.Order{ID: 1234567, Subtotal: 2000, ServiceFee: 200, DeliveryFee: 300, Address: "Hall 3", University: "UNILAG"}
}

func TestShortRef(t *testing.T) {
	assert.Equal(t, "234567", ShortRef(1234567))
	assert.Equal(t, "42", ShortRef(42))
}

func TestNotifier_VendorNewOrder(t *testing.T) {
	n, pusher, mailer, _ := NewMock(t)
	vendor := &domain.Account{ID: 4, Name: "Mama Put", Email: "mama@mail.test", FCMToken: "vendor-token"}

	pusher.EXPECT().Push(gomock.Any(), "vendor-token", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, msg PushMessage) error {
			assert.Equal(t, "🔔 New Order Received!", msg.Title)
			assert.Equal(t, "You have a new order for 3 item(s) - ₦1500", msg.Body)
			assert.Equal(t, "1234567", msg.Data["orderId"])
			assert.NotEmpty(t, msg.Data["timestamp"])
			return nil
		})
	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, email Email) error {
			assert.Equal(t, []string{"mama@mail.test"}, email.To)
			assert.Equal(t, "🔔 New Order Received - MealSection", email.Subject)
			assert.Contains(t, email.HTML, "₦1500")
			return nil
		})

	err := n.VendorNewOrder(context.Background(), vendor, testOrder(), domain.VendorSummary{VendorID: 4, ItemCount: 3, Amount: 1500})
	assert.NoError(t, err)
}

func TestNotifier_InvalidTokenIsCleared(t *testing.T) {
	n, pusher, mailer, tokens := NewMock(t)
	customer := &domain.Account{ID: 9, Name: "Ada", Email: "ada@mail.test", FCMToken: "stale"}

	pusher.EXPECT().Push(gomock.Any(), "stale", gomock.Any()).Return(ErrInvalidToken)
	tokens.EXPECT().UpdateFCMToken(gomock.Any(), int64(9), "").Return(nil)
	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, n.CustomerOrderPickedUp(context.Background(), customer, testOrder(), "Tobi"))
}

func TestNotifier_RidersPackDecision(t *testing.T) {
	riders := []domain.Account{
		{ID: 1, Name: "Tobi", FCMToken: "t1"},
		{ID: 2, Name: "Kemi", FCMToken: "t2"},
		{ID: 3, Name: "No token"},
	}

	tests := []struct {
		name     string
		accepted bool
		title    string
		body     string
	}{
		{
			name:     "Accepted",
			accepted: true,
			title:    "🛵 New Delivery Available!",
			body:     "Order #234567 accepted by Mama Put - Ready for pickup",
		},
		{
			name:  "Rejected",
			title: "❌ Order Rejected",
			body:  "Order #234567 was rejected by Mama Put",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, pusher, _, _ := NewMock(t)
			var mu sync.Mutex
			seen := map[string]bool{}
			pusher.EXPECT().Push(gomock.Any(), gomock.Any(), gomock.Any()).Times(2).
				DoAndReturn(func(_ context.Context, token string, msg PushMessage) error {
					mu.Lock()
					seen[token] = true
					mu.Unlock()
					assert.Equal(t, tt.title, msg.Title)
					assert.Equal(t, tt.body, msg.Body)
					assert.Equal(t, "Mama Put", msg.Data["vendorName"])
					return nil
				})

			require.NoError(t, n.RidersPackDecision(context.Background(), riders, testOrder(), "Mama Put", tt.accepted))
			assert.Equal(t, map[string]bool{"t1": true, "t2": true}, seen)
		})
	}
}

func TestNotifier_RidersOrderAvailable_ReportsFailure(t *testing.T) {
	n, _, mailer, _ := NewMock(t)
	riders := []domain.Account{{ID: 1, Email: "a@mail.test"}, {ID: 2, Email: "b@mail.test"}}

	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("brevo down")).Times(2)

	err := n.RidersOrderAvailable(context.Background(), riders, testOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account 1")
	assert.Contains(t, err.Error(), "account 2")
}

func TestNotifier_RidersPackDecision_FailureDoesNotStopOthers(t *testing.T) {
	n, pusher, _, _ := NewMock(t)
	riders := []domain.Account{{ID: 1, FCMToken: "bad"}}
	for i := 2; i <= 20; i++ {
		riders = append(riders, domain.Account{ID: int64(i), FCMToken: fmt.Sprintf("t%d", i)})
	}

	var mu sync.Mutex
	delivered := 0
	pusher.EXPECT().Push(gomock.Any(), gomock.Any(), gomock.Any()).Times(len(riders)).
		DoAndReturn(func(ctx context.Context, token string, _ PushMessage) error {
			if token == "bad" {
				return errors.New("fcm: 500 internal")
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(10 * time.Millisecond):
			}
			mu.Lock()
			delivered++
			mu.Unlock()
			return nil
		})

	err := n.RidersPackDecision(context.Background(), riders, testOrder(), "Mama Put", true)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fcm: 500 internal")
	assert.Equal(t, 19, delivered)
}

func TestNotifier_CustomerOrderUpdate(t *testing.T) {
	riderID := int64(5)

	tests := []struct {
		name    string
		status  domain.OrderStatus
		rider   *int64
		subject string
		rowText string
	}{
		{name: "Processing", status: domain.StatusProcessing, subject: "👨‍🍳 Your Order is Being Prepared!", rowText: domain.NotAssigned},
		{name: "Delivered", status: domain.StatusDelivered, rider: &riderID, subject: "✅ Your Order Has Been Delivered!", rowText: "Assigned"},
		{name: "Rider assigned", status: domain.StatusPending, rider: &riderID, subject: "🛵 Rider Assigned to Your Order!", rowText: "Assigned"},
		{name: "Cancelled", status: domain.StatusCancelled, subject: "📦 Order Update - MealSection", rowText: domain.NotAssigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, _, mailer, _ := NewMock(t)
			order := testOrder()
			order.Status = tt.status
			order.RiderID = tt.rider

			mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, email Email) error {
					assert.Equal(t, tt.subject, email.Subject)
					assert.Contains(t, email.HTML, tt.rowText)
					return nil
				})

			assert.NoError(t, n.CustomerOrderUpdate(context.Background(), &domain.Account{Email: "ada@mail.test"}, order))
		})
	}
}

func TestNotifier_OperatorAlert(t *testing.T) {
	n, _, mailer, _ := NewMock(t)
	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, email Email) error {
			assert.Equal(t, []string{"ops@mealsection.com"}, email.To)
			assert.Contains(t, email.HTML, "user not found")
			return nil
		})
	assert.NoError(t, n.OperatorAlert(context.Background(), "Paystack webhook error", "user not found"))

	silent := New(nil, nil, nil, "")
	assert.NoError(t, silent.OperatorAlert(context.Background(), "x", "y"))
}

func TestNotifier_TemplateEscapesInput(t *testing.T) {
	n, _, mailer, _ := NewMock(t)
	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, email Email) error {
			assert.NotContains(t, email.HTML, "<script>")
			assert.Contains(t, email.HTML, "&lt;script&gt;")
			return nil
		})

	assert.NoError(t, n.Welcome(context.Background(), &domain.Account{Name: "<script>", Email: "x@mail.test", Role: domain.RoleCustomer}))
}

func TestNotifier_AccountApproval(t *testing.T) {
	n, pusher, mailer, _ := NewMock(t)
	rider := &domain.Account{ID: 11, Name: "Bolu", Email: "bolu@mail.test", FCMToken: "rider-token", Role: domain.RoleRider}

	pusher.EXPECT().Push(gomock.Any(), "rider-token", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, msg PushMessage) error {
			assert.Equal(t, "Account Not Approved", msg.Title)
			assert.Equal(t, "false", msg.Data["approved"])
			return nil
		})
	mailer.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, email Email) error {
			assert.Equal(t, []string{"bolu@mail.test"}, email.To)
			assert.Equal(t, "Account Not Approved - MealSection", email.Subject)
			return nil
		})

	assert.NoError(t, n.AccountApproval(context.Background(), rider, false))
}
