package accounts

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/internal/dto"
	"github.com/GlebRadaev/mealsection/internal/handlers/httpx"
	"github.com/GlebRadaev/mealsection/pkg/utils"
)

type Service interface {
	Accounts(ctx context.Context, role domain.Role) ([]domain.Account, error)
	SetApproval(ctx context.Context, id int64, valid bool) (*domain.Account, error)
}

type AccountHandler struct {
	accountService Service
}

func New(accountService Service) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// ListAccounts godoc
//
//	@Summary	List accounts of a role
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Param		role	path		string	true	"Account role"	Enums(customer, vendor, rider, manager)
//	@Success	200		{array}		dto.AccountResponseDTO
//	@Failure	400		{object}	utils.Response	"Unknown role"
//	@Failure	500		{object}	utils.Response	"Internal server error"
//	@Router		/api/admin/accounts/{role} [get]
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	role, ok := httpx.RoleParam(w, r)
	if !ok {
		return
	}
	accounts, err := h.accountService.Accounts(r.Context(), role)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	resp := make([]dto.AccountResponseDTO, 0, len(accounts))
	for i := range accounts {
		resp = append(resp, dto.NewAccountResponse(&accounts[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// SetApproval godoc
//
//	@Summary		Approve or lock a vendor or rider
//	@Description	Unapproved vendor and rider accounts can't log in.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Account ID"
//	@Param			request	body		dto.ApproveAccountRequestDTO	true	"Approval"
//	@Success		200		{object}	dto.AccountResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		404		{object}	utils.Response	"Account not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/accounts/{id}/valid [patch]
func (h *AccountHandler) SetApproval(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IDParam(w, r, "id")
	if !ok {
		return
	}
	var req dto.ApproveAccountRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	account, err := h.accountService.SetApproval(r.Context(), id, *req.Valid)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewAccountResponse(account))
}
