package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/internal/paystack"
	"github.com/GlebRadaev/mealsection/pkg/utils"
	"github.com/GlebRadaev/mealsection/pkg/validate"
)

const InternalError = "Internal server error"

// Decode reads a JSON body into dst and runs its validate tags. On failure the
// response is already written.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// IDParam parses a positive int64 URL parameter.
func IDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func RoleParam(w http.ResponseWriter, r *http.Request) (domain.Role, bool) {
	role := domain.Role(strings.ToLower(chi.URLParam(r, "role")))
	if !role.Valid() {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid role")
		return "", false
	}
	return role, true
}

func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, paystack.ErrNotSuccessful),
		errors.Is(err, paystack.ErrReferenceNotFound):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSignatureInvalid),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Error maps a service error onto a status code. Unclassified errors are
// logged and hidden behind a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	code := Status(err)
	if code == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
		utils.RespondWithError(w, code, InternalError)
		return
	}
	utils.RespondWithError(w, code, err.Error())
}
