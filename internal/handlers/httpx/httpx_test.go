package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/internal/paystack"
	"github.com/GlebRadaev/mealsection/pkg/utils"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: no packs provided", domain.ErrValidation), http.StatusBadRequest},
		{domain.ErrInsufficientBalance, http.StatusBadRequest},
		{paystack.ErrNotSuccessful, http.StatusBadRequest},
		{paystack.ErrReferenceNotFound, http.StatusBadRequest},
		{domain.ErrOrderNotFound, http.StatusNotFound},
		{domain.ErrVendorPackNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: already resolved", domain.ErrConflict), http.StatusConflict},
		{domain.ErrSignatureInvalid, http.StatusUnauthorized},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("%w: timeout", domain.ErrUpstream), http.StatusBadGateway},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestError(t *testing.T) {
	t.Run("client error keeps message", func(t *testing.T) {
		rr := httptest.NewRecorder()
		Error(rr, httptest.NewRequest(http.MethodGet, "/", nil), domain.ErrOrderNotFound)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		var resp utils.Response
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "order not found", resp.Error)
	})

	t.Run("internal error is hidden", func(t *testing.T) {
		rr := httptest.NewRecorder()
		Error(rr, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("pq: deadlock"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		var resp utils.Response
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, InternalError, resp.Error)
	})
}

type payload struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		ok       bool
		wantCode int
		wantErr  string
	}{
		{name: "valid", body: `{"amount":100}`, ok: true},
		{name: "malformed", body: `{amount`, wantCode: http.StatusBadRequest, wantErr: "Invalid request body"},
		{name: "fails validation", body: `{"amount":0}`, wantCode: http.StatusBadRequest, wantErr: "Amount is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			var p payload
			ok := Decode(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)), &p)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, int64(100), p.Amount)
				return
			}
			assert.Equal(t, tt.wantCode, rr.Code)
			var resp utils.Response
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.wantErr, resp.Error)
		})
	}
}

func withParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestIDParam(t *testing.T) {
	rr := httptest.NewRecorder()
	id, ok := IDParam(rr, withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "41"), "id")
	assert.True(t, ok)
	assert.Equal(t, int64(41), id)

	for _, bad := range []string{"abc", "0", "-3"} {
		rr := httptest.NewRecorder()
		_, ok := IDParam(rr, withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", bad), "id")
		assert.False(t, ok, bad)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	}
}

func TestRoleParam(t *testing.T) {
	rr := httptest.NewRecorder()
	role, ok := RoleParam(rr, withParam(httptest.NewRequest(http.MethodGet, "/", nil), "role", "Vendor"))
	assert.True(t, ok)
	assert.Equal(t, domain.RoleVendor, role)

	rr = httptest.NewRecorder()
	_, ok = RoleParam(rr, withParam(httptest.NewRequest(http.MethodGet, "/", nil), "role", "chef"))
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
