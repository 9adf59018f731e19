package auth

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/internal/dto"
	"github.com/GlebRadaev/mealsection/internal/handlers/httpx"
	"github.com/GlebRadaev/mealsection/pkg/utils"
)

const ManagerKeyHeader = "X-Manager-Key"

type Service interface {
	Register(ctx context.Context, account *domain.Account, password, managerKey string) (*domain.Account, error)
	Authenticate(ctx context.Context, role domain.Role, email, password, fcmToken string) (*domain.Account, error)
	GenerateToken(account *domain.Account) (string, error)
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register godoc
//
//	@Summary		Register a new account
//	@Description	Create a customer, vendor, rider or manager account. Vendor and rider accounts stay locked until a manager approves them. Manager signup requires the X-Manager-Key header.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			role			path		string				true	"Account role"	Enums(customer, vendor, rider, manager)
//	@Param			X-Manager-Key	header		string				false	"Manager signup key"
//	@Param			request			body		dto.SignupRequestDTO	true	"Signup request body"
//	@Success		201				{object}	dto.AccountResponseDTO
//	@Failure		400				{object}	utils.Response	"Invalid request body"
//	@Failure		403				{object}	utils.Response	"Invalid manager key"
//	@Failure		409				{object}	utils.Response	"Account already exists"
//	@Failure		500				{object}	utils.Response	"Internal server error"
//	@Router			/api/{role}/signup [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	role, ok := httpx.RoleParam(w, r)
	if !ok {
		return
	}
	var req dto.SignupRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	account, err := h.authService.Register(r.Context(), req.Account(role), req.Password, r.Header.Get(ManagerKeyHeader))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewAccountResponse(account))
}

// Login godoc
//
//	@Summary		Authenticate an account
//	@Description	Log in with role, email and password and get a JWT token. The optional FCM token is stored for push notifications.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login request body"
//	@Success		200		{object}	dto.AuthResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Invalid credentials"
//	@Failure		403		{object}	utils.Response	"Account awaiting approval"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	account, err := h.authService.Authenticate(r.Context(), domain.Role(req.Role), req.Email, req.Password, req.FCMToken)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	token, err := h.authService.GenerateToken(account)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusOK, dto.AuthResponseDTO{
		Token:   token,
		Account: dto.NewAccountResponse(account),
	})
}
