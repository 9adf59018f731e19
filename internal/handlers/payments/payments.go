package payments

import (
	"context"
	"io"
	"net/http"

	"github.com/GlebRadaev/mealsection/internal/dto"
	"github.com/GlebRadaev/mealsection/internal/handlers/httpx"
	"github.com/GlebRadaev/mealsection/internal/paystack"
	"github.com/GlebRadaev/mealsection/internal/service/paymentservice"
	"github.com/GlebRadaev/mealsection/pkg/utils"
)

const maxWebhookBody = 1 << 20

type Service interface {
	HandleWebhook(ctx context.Context, body []byte, signature string) (paymentservice.WebhookResult, error)
	AuditUnreadable(body []byte, err error)
	Verify(ctx context.Context, reference string) (*paystack.VerifyResponse, error)
	ConfirmTopUp(ctx context.Context, reference string, amount int64) (*paystack.VerifyResponse, error)
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Webhook godoc
//
//	@Summary		Paystack webhook
//	@Description	Verify the x-paystack-signature HMAC of the raw body and credit the customer's wallet once per charge.success reference.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			x-paystack-signature	header		string	true	"HMAC-SHA512 of the body"
//	@Success		200						{object}	utils.MessageResponse	"Wallet credited, already processed or ignored"
//	@Failure		400						{object}	utils.Response			"Malformed event"
//	@Failure		401						{object}	utils.Response			"Invalid signature"
//	@Failure		404						{object}	utils.Response			"No account for the customer email"
//	@Failure		500						{object}	utils.Response			"Internal server error"
//	@Router			/webhook/paystack [post]
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		h.paymentService.AuditUnreadable(body, err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	result, err := h.paymentService.HandleWebhook(r.Context(), body, r.Header.Get(paystack.SignatureHeader))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithMessage(w, http.StatusOK, string(result))
}

// Verify godoc
//
//	@Summary		Verify a Paystack transaction
//	@Description	Look the reference up with Paystack. The wallet is credited by the webhook only.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.VerifyPaymentRequestDTO	true	"Payment reference"
//	@Success		200		{object}	dto.PaymentResponseDTO
//	@Failure		400		{object}	utils.Response	"Payment not successful"
//	@Failure		502		{object}	utils.Response	"Paystack unavailable"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/payments/verify [post]
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyPaymentRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	resp, err := h.paymentService.Verify(r.Context(), req.Reference)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, paymentResponse(resp))
}

// ConfirmTopUp godoc
//
//	@Summary		Confirm a wallet top-up
//	@Description	Check that the reference paid exactly the given amount. Fresh references are retried once.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ConfirmTopUpRequestDTO	true	"Reference and amount in naira"
//	@Success		200		{object}	dto.PaymentResponseDTO
//	@Failure		400		{object}	utils.Response	"Verification failed or amount mismatch"
//	@Failure		502		{object}	utils.Response	"Paystack unavailable"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/payments/confirm [post]
func (h *PaymentHandler) ConfirmTopUp(w http.ResponseWriter, r *http.Request) {
	var req dto.ConfirmTopUpRequestDTO
	if !httpx.Decode(w, r, &req) {
		return
	}
	resp, err := h.paymentService.ConfirmTopUp(r.Context(), req.Reference, req.Amount)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, paymentResponse(resp))
}

func paymentResponse(resp *paystack.VerifyResponse) dto.PaymentResponseDTO {
	return dto.PaymentResponseDTO{
		Reference:       resp.Data.Reference,
		Status:          resp.Data.Status,
		Amount:          resp.Data.Amount,
		Currency:        resp.Data.Currency,
		GatewayResponse: resp.Data.GatewayResponse,
	}
}
