package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/mealsection/internal/handlers/accounts"
	authhandlers "github.com/GlebRadaev/mealsection/internal/handlers/auth"
	"github.com/GlebRadaev/mealsection/internal/handlers/orders"
	"github.com/GlebRadaev/mealsection/internal/handlers/payments"
	"github.com/GlebRadaev/mealsection/internal/handlers/wallet"
	"github.com/GlebRadaev/mealsection/internal/service"
	"github.com/GlebRadaev/mealsection/pkg/auth"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	services := &service.Services{
		AuthService:    authhandlers.NewMockService(ctrl),
		OrderService:   orders.NewMockService(ctrl),
		WalletService:  wallet.NewMockService(ctrl),
		AccountService: accounts.NewMockService(ctrl),
		PaymentService: payments.NewMockService(ctrl),
	}

	h := New(services, auth.NewJWTService("secret"), NewMockRealtimeHandler(ctrl), NewMockRateLimiter(ctrl))
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.OrderHandler)
	assert.NotNil(t, h.RealtimeHandler)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockOrderHandler := NewMockOrderHandler(ctrl)
	mockWalletHandler := NewMockWalletHandler(ctrl)
	mockAccountHandler := NewMockAccountHandler(ctrl)
	mockPaymentHandler := NewMockPaymentHandler(ctrl)
	mockRealtimeHandler := NewMockRealtimeHandler(ctrl)
	mockLimiter := NewMockRateLimiter(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().GetOrder(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().GetMyOrders(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().ListOrders(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().DecidePack(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().AssignRider(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().AddMessage(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().GetMessages(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().GetProfile(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().GetHistory(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().AddFunds(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().RemoveFunds(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().RequestWithdrawal(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().GetMyWithdrawals(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().ListWithdrawals(gomock.Any(), gomock.Any()).AnyTimes()
	mockWalletHandler.EXPECT().ResolveWithdrawal(gomock.Any(), gomock.Any()).AnyTimes()
	mockAccountHandler.EXPECT().ListAccounts(gomock.Any(), gomock.Any()).AnyTimes()
	mockAccountHandler.EXPECT().SetApproval(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentHandler.EXPECT().Webhook(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentHandler.EXPECT().Verify(gomock.Any(), gomock.Any()).AnyTimes()
	mockPaymentHandler.EXPECT().ConfirmTopUp(gomock.Any(), gomock.Any()).AnyTimes()
	mockRealtimeHandler.EXPECT().ServeWS(gomock.Any(), gomock.Any()).AnyTimes()
	mockLimiter.EXPECT().Middleware(gomock.Any()).
		DoAndReturn(func(next http.Handler) http.Handler { return next }).AnyTimes()

	jwtService := auth.NewJWTService("secret")
	h := &Handlers{
		AuthHandler:     mockAuthHandler,
		OrderHandler:    mockOrderHandler,
		WalletHandler:   mockWalletHandler,
		AccountHandler:  mockAccountHandler,
		PaymentHandler:  mockPaymentHandler,
		RealtimeHandler: mockRealtimeHandler,
		tokens:          jwtService,
		limiter:         mockLimiter,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	token := func(id int64, role string) string {
		tok, err := jwtService.GenerateJWT(id, role, time.Now().Add(time.Hour))
		require.NoError(t, err)
		return tok
	}
	customer := token(3, "customer")
	vendor := token(7, "vendor")
	rider := token(11, "rider")
	manager := token(1, "manager")

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{"POST", "/api/customer/signup", "", http.StatusOK},
		{"POST", "/api/vendor/signup", "", http.StatusOK},
		{"POST", "/api/auth/login", "", http.StatusOK},
		{"POST", "/webhook/paystack", "", http.StatusOK},
		{"GET", "/ws", "", http.StatusOK},

		{"GET", "/api/account/profile", "", http.StatusUnauthorized},
		{"GET", "/api/account/profile", "not-a-jwt", http.StatusUnauthorized},
		{"GET", "/api/account/profile", customer, http.StatusOK},
		{"GET", "/api/account/history", rider, http.StatusOK},
		{"POST", "/api/payments/verify", customer, http.StatusOK},
		{"POST", "/api/payments/confirm", customer, http.StatusOK},

		{"POST", "/api/orders", customer, http.StatusOK},
		{"POST", "/api/orders", vendor, http.StatusForbidden},
		{"GET", "/api/orders/mine", customer, http.StatusOK},
		{"GET", "/api/orders/41", vendor, http.StatusOK},
		{"GET", "/api/orders/41/messages", customer, http.StatusOK},
		{"PATCH", "/api/orders/41/status", rider, http.StatusOK},
		{"PATCH", "/api/orders/41/status", manager, http.StatusOK},
		{"PATCH", "/api/orders/41/status", customer, http.StatusForbidden},
		{"PATCH", "/api/vendor/orders/41/decision", vendor, http.StatusOK},
		{"PATCH", "/api/vendor/orders/41/decision", rider, http.StatusForbidden},

		{"POST", "/api/withdrawals", vendor, http.StatusOK},
		{"GET", "/api/withdrawals/mine", rider, http.StatusOK},
		{"POST", "/api/withdrawals", customer, http.StatusForbidden},

		{"GET", "/api/admin/orders", manager, http.StatusOK},
		{"GET", "/api/admin/orders", customer, http.StatusForbidden},
		{"PATCH", "/api/admin/orders/41/rider", manager, http.StatusOK},
		{"POST", "/api/admin/orders/41/messages", manager, http.StatusOK},
		{"POST", "/api/admin/wallet/add", manager, http.StatusOK},
		{"POST", "/api/admin/wallet/remove", vendor, http.StatusForbidden},
		{"GET", "/api/admin/withdrawals/vendor", manager, http.StatusOK},
		{"PATCH", "/api/admin/withdrawals/rider/4", manager, http.StatusOK},
		{"GET", "/api/admin/accounts/rider", manager, http.StatusOK},
		{"PATCH", "/api/admin/accounts/7/valid", manager, http.StatusOK},
		{"PATCH", "/api/admin/accounts/7/valid", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
