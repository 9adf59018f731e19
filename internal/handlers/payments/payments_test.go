package payments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/mealsection/internal/domain"
	"github.com/GlebRadaev/mealsection/internal/dto"
	"github.com/GlebRadaev/mealsection/internal/paystack"
	"github.com/GlebRadaev/mealsection/internal/service/paymentservice"
	"github.com/GlebRadaev/mealsection/pkg/utils"
)

func NewMock(t *testing.T) (*PaymentHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

func TestWebhookHandler(t *testing.T) {
	handler, service := NewMock(t)
	body := `{"event":"charge.success","data":{"reference":"T1","amount":510000,"customer":{"email":"ada@unilag.edu.ng"}}}`

	tests := []struct {
		name            string
		signature       string
		prepareMock     func()
		expectedCode    int
		expectedMessage string
		expectedError   string
	}{
		{
			name:      "credited",
			signature: "good",
			prepareMock: func() {
				service.EXPECT().HandleWebhook(gomock.Any(), []byte(body), "good").Return(paymentservice.ResultCredited, nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "Wallet credited",
		},
		{
			name:      "duplicate",
			signature: "good",
			prepareMock: func() {
				service.EXPECT().HandleWebhook(gomock.Any(), []byte(body), "good").Return(paymentservice.ResultAlreadyProcessed, nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "Already processed",
		},
		{
			name:      "bad signature",
			signature: "bad",
			prepareMock: func() {
				service.EXPECT().HandleWebhook(gomock.Any(), []byte(body), "bad").Return(paymentservice.WebhookResult(""), domain.ErrSignatureInvalid)
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "invalid signature",
		},
		{
			name:      "unknown customer",
			signature: "good",
			prepareMock: func() {
				service.EXPECT().HandleWebhook(gomock.Any(), []byte(body), "good").Return(paymentservice.WebhookResult(""), domain.ErrAccountNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "account not found",
		},
		{
			name:      "processing failure",
			signature: "good",
			prepareMock: func() {
				service.EXPECT().HandleWebhook(gomock.Any(), []byte(body), "good").Return(paymentservice.WebhookResult(""), fmt.Errorf("tx aborted"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewReader([]byte(body)))
			req.Header.Set(paystack.SignatureHeader, tt.signature)
			rr := httptest.NewRecorder()
			handler.Webhook(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Error)
				return
			}
			var resp utils.MessageResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.Equal(t, tt.expectedMessage, resp.Message)
		})
	}
}

func TestWebhookHandler_OversizedBodyIsAudited(t *testing.T) {
	handler, service := NewMock(t)
	body := bytes.Repeat([]byte("a"), maxWebhookBody+1)

	service.EXPECT().AuditUnreadable(gomock.Any(), gomock.Any()).
		Do(func(got []byte, err error) {
			assert.NotEmpty(t, got)
			assert.LessOrEqual(t, len(got), maxWebhookBody)
			assert.Error(t, err)
		})

	req := httptest.NewRequest(http.MethodPost, "/webhook/paystack", bytes.NewReader(body))
	req.Header.Set(paystack.SignatureHeader, "good")
	rr := httptest.NewRecorder()
	handler.Webhook(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var resp utils.Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Failed to read request body", resp.Error)
}

func TestVerifyHandler(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("successful", func(t *testing.T) {
		service.EXPECT().Verify(gomock.Any(), "T1").Return(&paystack.VerifyResponse{
			Status: true,
			Data:   paystack.Transaction{Reference: "T1", Status: "success", Amount: 500000, Currency: "NGN"},
		}, nil)

		rr := httptest.NewRecorder()
		handler.Verify(rr, httptest.NewRequest(http.MethodPost, "/api/payments/verify", bytes.NewReader([]byte(`{"reference":"T1"}`))))
		assert.Equal(t, http.StatusOK, rr.Code)
		var resp dto.PaymentResponseDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, int64(500000), resp.Amount)
		assert.Equal(t, "success", resp.Status)
	})

	t.Run("not successful", func(t *testing.T) {
		service.EXPECT().Verify(gomock.Any(), "T2").Return(&paystack.VerifyResponse{Status: true, Data: paystack.Transaction{Status: "failed"}}, paystack.ErrNotSuccessful)

		rr := httptest.NewRecorder()
		handler.Verify(rr, httptest.NewRequest(http.MethodPost, "/api/payments/verify", bytes.NewReader([]byte(`{"reference":"T2"}`))))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("paystack down", func(t *testing.T) {
		service.EXPECT().Verify(gomock.Any(), "T3").Return(nil, fmt.Errorf("%w: paystack unavailable", domain.ErrUpstream))

		rr := httptest.NewRecorder()
		handler.Verify(rr, httptest.NewRequest(http.MethodPost, "/api/payments/verify", bytes.NewReader([]byte(`{"reference":"T3"}`))))
		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})

	t.Run("missing reference", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.Verify(rr, httptest.NewRequest(http.MethodPost, "/api/payments/verify", bytes.NewReader([]byte(`{}`))))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestConfirmTopUpHandler(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().ConfirmTopUp(gomock.Any(), "T1", int64(5000)).Return(&paystack.VerifyResponse{
		Status: true,
		Data:   paystack.Transaction{Reference: "T1", Status: "success", Amount: 500000},
	}, nil)
	rr := httptest.NewRecorder()
	handler.ConfirmTopUp(rr, httptest.NewRequest(http.MethodPost, "/api/payments/confirm", bytes.NewReader([]byte(`{"reference":"T1","amount":5000}`))))
	assert.Equal(t, http.StatusOK, rr.Code)

	service.EXPECT().ConfirmTopUp(gomock.Any(), "T1", int64(4000)).
		Return(nil, fmt.Errorf("%w: verification failed or amount mismatch", paystack.ErrNotSuccessful))
	rr = httptest.NewRecorder()
	handler.ConfirmTopUp(rr, httptest.NewRequest(http.MethodPost, "/api/payments/confirm", bytes.NewReader([]byte(`{"reference":"T1","amount":4000}`))))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var resp utils.Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "payment not successful: verification failed or amount mismatch", resp.Error)
}
