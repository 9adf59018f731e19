package wallet

import (
	"context"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/internal/dto"
	"github.com/GlebRadaev/mealsection/internal/handlers/httpx"
	"github.com/GlebRadaev/mealsection/pkg/auth"
	"github.com/GlebRadaev/mealsection/pkg/utils"
)

type Service interface {
	Profile(ctx context.Context, accountID int64) (*domain.Account, error)
	History(ctx context.Context, accountID int64, limit int) ([]domain.LedgerEntry, error)
	AddFunds(ctx context.Context, accountID, amount int64) (*domain.LedgerEntry, error)
	RemoveFunds(ctx context.Context, accountID, amount int64) (*domain.LedgerEntry, error)
	RequestWithdrawal(ctx context.Context, accountID int64, role domain.Role, amount int64) (*domain.Withdrawal, error)
	ResolveWithdrawal(ctx context.Context, id int64, role domain.Role, approve bool) (*domain.Withdrawal, error)
	Withdrawals(ctx context.Context, role domain.Role) ([]domain.Withdrawal, error)
	AccountWithdrawals(ctx context.Context, accountID int64) ([]domain.Withdrawal, error)
}

type WalletHandler struct {
	walletService Service
}

func New(walletService Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// GetProfile godoc
//
//	@Summary		Get the current account
//	@Description	Retrieve the authenticated account with its available balance.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.AccountResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Account not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/account/profile [get]
func (h *WalletHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	account, err := h.walletService.Profile(r.Context(), auth.AccountID(r.Context()))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewAccountResponse(account))
}

// GetHistory godoc
//
//	@Summary	Get wallet history
//	@Tags		Wallet
//	@Security	BearerAuth
//	@Produce	json
//	@Param		limit	query		int	false	"Number of entries, newest first"
//	@Success	200		{array}		dto.LedgerEntryResponseDTO
//	@Failure	400		{object}	utils.Response	"Invalid limit"
//	@Failure	401		{object}	utils.Response	"User not authorized"
//	@Failure	500		{object}	utils.Response	"Internal server error"
//	@Router		/api/account/history [get]
func (h *WalletHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = v
	}
	entries, err := h.walletService.History(r.Context(), auth.AccountID(r.Context()), limit)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	resp := make([]dto.LedgerEntryResponseDTO, 0, len(entries))
	for i := range entries {
		resp = append(resp, dto.NewLedgerEntryResponse(&entries[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// AddFunds godoc
//
//	@Summary	Credit an account
//	@Tags		Admin
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.FundsRequestDTO	true	"Account and amount"
//	@Success	200		{object}	dto.LedgerEntryResponseDTO
//	@Failure	400		{object}	utils.Response	"Invalid request body"
//	@Failure	404		{object}	utils.Response	"Account not found"
//	@Failure	500		{object}	utils.Response	"Internal server error"
//	@Router		/api/admin/wallet/add [post]
func (h *WalletHandler) AddFunds(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.walletService.AddFunds)
}

// RemoveFunds godoc
//
//	@Summary	Debit an account
//	@Tags		Admin
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.FundsRequestDTO	true	"Account and amount"
//	@Success	200		{object}	dto.LedgerEntryResponseDTO
//	@Failure	400		{object}	utils.Response	"Invalid request body or insufficient balance"
//	@Failure	404		{object}	utils.Response	"Account not found"
//	@Failure	500		{object}	utils.Response	"Internal server error"
//	@Router		/api/admin/wallet/remove [post]
func (h *WalletHandler) RemoveFunds(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.walletService.RemoveFunds)
}

func (h *WalletHandler) adjust(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64, int64) (*domain.LedgerEntry, error)) {
	var req dto.FundsRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	entry, err := fn(r.Context(), req.AccountID, req.Amount)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewLedgerEntryResponse(entry))
}

// RequestWithdrawal godoc
//
//	@Summary		Request a withdrawal
//	@Description	Move funds out of a vendor or rider wallet into a pending withdrawal for a manager to resolve.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawalRequestDTO	true	"Amount"
//	@Success		201		{object}	dto.WithdrawalResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount or insufficient balance"
//	@Failure		403		{object}	utils.Response	"Role can't withdraw"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/withdrawals [post]
func (h *WalletHandler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawalRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	ctx := r.Context()
	withdrawal, err := h.walletService.RequestWithdrawal(ctx, auth.AccountID(ctx), domain.Role(auth.Role(ctx)), req.Amount)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewWithdrawalResponse(withdrawal))
}

// GetMyWithdrawals godoc
//
//	@Summary	List own withdrawals
//	@Tags		Wallet
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		dto.WithdrawalResponseDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/withdrawals/mine [get]
func (h *WalletHandler) GetMyWithdrawals(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.walletService.AccountWithdrawals(r.Context(), auth.AccountID(r.Context()))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewWithdrawalsResponse(withdrawals))
}

// ListWithdrawals godoc
//
//	@Summary	List withdrawals of a role
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Param		role	path		string	true	"Account role"	Enums(vendor, rider)
//	@Success	200		{array}		dto.WithdrawalResponseDTO
//	@Failure	400		{object}	utils.Response	"Unknown role"
//	@Failure	500		{object}	utils.Response	"Internal server error"
//	@Router		/api/admin/withdrawals/{role} [get]
func (h *WalletHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	role, ok := httpx.RoleParam(w, r)
	if !ok {
		return
	}
	withdrawals, err := h.walletService.Withdrawals(r.Context(), role)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewWithdrawalsResponse(withdrawals))
}

// ResolveWithdrawal godoc
//
//	@Summary		Approve or reject a withdrawal
//	@Description	Rejection returns the amount to the account's wallet. A withdrawal can only be resolved once.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			role	path		string							true	"Account role"	Enums(vendor, rider)
//	@Param			id		path		int								true	"Withdrawal ID"
//	@Param			request	body		dto.ResolveWithdrawalRequestDTO	true	"Decision"
//	@Success		200		{object}	dto.WithdrawalResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		404		{object}	utils.Response	"Withdrawal not found"
//	@Failure		409		{object}	utils.Response	"Withdrawal already resolved"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/withdrawals/{role}/{id} [patch]
func (h *WalletHandler) ResolveWithdrawal(w http.ResponseWriter, r *http.Request) {
	role, ok := httpx.RoleParam(w, r)
	if !ok {
		return
	}
	id, ok := httpx.IDParam(w, r, "id")
	if !ok {
		return
	}
	var req dto.ResolveWithdrawalRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	withdrawal, err := h.walletService.ResolveWithdrawal(r.Context(), id, role, *req.Approve)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewWithdrawalResponse(withdrawal))
}
