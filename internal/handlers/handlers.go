package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/mealsection/docs"
	"github.com/GlebRadaev/mealsection/internal/domain"
	accounthandlers "github.com/GlebRadaev/mealsection/internal/handlers/accounts"
	authhandlers "github.com/GlebRadaev/mealsection/internal/handlers/auth"
	orderhandlers "github.com/GlebRadaev/mealsection/internal/handlers/orders"
	paymenthandlers "github.com/GlebRadaev/mealsection/internal/handlers/payments"
	wallethandlers "github.com/GlebRadaev/mealsection/internal/handlers/wallet"
	"github.com/GlebRadaev/mealsection/internal/service"
	"github.com/GlebRadaev/mealsection/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	PlaceOrder(w http.ResponseWriter, r *http.Request)
	GetOrder(w http.ResponseWriter, r *http.Request)
	GetMyOrders(w http.ResponseWriter, r *http.Request)
	ListOrders(w http.ResponseWriter, r *http.Request)
	DecidePack(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	AssignRider(w http.ResponseWriter, r *http.Request)
	AddMessage(w http.ResponseWriter, r *http.Request)
	GetMessages(w http.ResponseWriter, r *http.Request)
}

type WalletHandler interface {
	GetProfile(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	AddFunds(w http.ResponseWriter, r *http.Request)
	RemoveFunds(w http.ResponseWriter, r *http.Request)
	RequestWithdrawal(w http.ResponseWriter, r *http.Request)
	GetMyWithdrawals(w http.ResponseWriter, r *http.Request)
	ListWithdrawals(w http.ResponseWriter, r *http.Request)
	ResolveWithdrawal(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	ListAccounts(w http.ResponseWriter, r *http.Request)
	SetApproval(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Webhook(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	ConfirmTopUp(w http.ResponseWriter, r *http.Request)
}

type RealtimeHandler interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

type RateLimiter interface {
	Middleware(next http.Handler) http.Handler
}

type Handlers struct {
	AuthHandler     AuthHandler
	OrderHandler    OrderHandler
	WalletHandler   WalletHandler
	AccountHandler  AccountHandler
	PaymentHandler  PaymentHandler
	RealtimeHandler RealtimeHandler

	tokens  auth.TokenValidator
	limiter RateLimiter
}

func New(s *service.Services, tokens auth.TokenValidator, realtime RealtimeHandler, limiter RateLimiter) *Handlers {
	return &Handlers{
		AuthHandler:     authhandlers.New(s.AuthService),
		OrderHandler:    orderhandlers.New(s.OrderService),
		WalletHandler:   wallethandlers.New(s.WalletService),
		AccountHandler:  accounthandlers.New(s.AccountService),
		PaymentHandler:  paymenthandlers.New(s.PaymentService),
		RealtimeHandler: realtime,
		tokens:          tokens,
		limiter:         limiter,
	}
}

func roles(rs ...domain.Role) func(http.Handler) http.Handler {
	names := make([]string, 0, len(rs))
	for _, r := range rs {
		names = append(names, string(r))
	}
	return auth.RequireRole(names...)
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Get("/ws", h.RealtimeHandler.ServeWS)
	r.With(h.limiter.Middleware).Post("/webhook/paystack", h.PaymentHandler.Webhook)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.limiter.Middleware)
			r.Post("/{role}/signup", h.AuthHandler.Register)
			r.Post("/auth/login", h.AuthHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(h.tokens))

			r.Route("/account", func(r chi.Router) {
				r.Get("/profile", h.WalletHandler.GetProfile)
				r.Get("/history", h.WalletHandler.GetHistory)
			})
			r.Route("/payments", func(r chi.Router) {
				r.Post("/verify", h.PaymentHandler.Verify)
				r.Post("/confirm", h.PaymentHandler.ConfirmTopUp)
			})
			r.Route("/orders", func(r chi.Router) {
				r.With(roles(domain.RoleCustomer)).Post("/", h.OrderHandler.PlaceOrder)
				r.With(roles(domain.RoleCustomer)).Get("/mine", h.OrderHandler.GetMyOrders)
				r.Get("/{id}", h.OrderHandler.GetOrder)
				r.Get("/{id}/messages", h.OrderHandler.GetMessages)
				r.With(roles(domain.RoleManager, domain.RoleRider)).Patch("/{id}/status", h.OrderHandler.UpdateStatus)
			})
			r.With(roles(domain.RoleVendor)).Patch("/vendor/orders/{id}/decision", h.OrderHandler.DecidePack)
			r.Route("/withdrawals", func(r chi.Router) {
				r.Use(roles(domain.RoleVendor, domain.RoleRider))
				r.Post("/", h.WalletHandler.RequestWithdrawal)
				r.Get("/mine", h.WalletHandler.GetMyWithdrawals)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(roles(domain.RoleManager))
				r.Get("/orders", h.OrderHandler.ListOrders)
				r.Patch("/orders/{id}/rider", h.OrderHandler.AssignRider)
				r.Post("/orders/{id}/messages", h.OrderHandler.AddMessage)
				r.Post("/wallet/add", h.WalletHandler.AddFunds)
				r.Post("/wallet/remove", h.WalletHandler.RemoveFunds)
				r.Get("/withdrawals/{role}", h.WalletHandler.ListWithdrawals)
				r.Patch("/withdrawals/{role}/{id}", h.WalletHandler.ResolveWithdrawal)
				r.Get("/accounts/{role}", h.AccountHandler.ListAccounts)
				r.Patch("/accounts/{id}/valid", h.AccountHandler.SetApproval)
			})
		})
	})

	return r
}
