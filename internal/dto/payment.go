package dto

type VerifyPaymentRequestDTO struct {
	Reference string `json:"reference" validate:"required" example:"T123456789"`
}

type ConfirmTopUpRequestDTO struct {
	Reference string `json:"reference" validate:"required" example:"T123456789"`
	Amount    int64  `json:"amount" validate:"required,gt=0" example:"5000"`
}

type PaymentResponseDTO struct {
	Reference       string `json:"reference" example:"T123456789"`
	Status          string `json:"status" example:"success"`
	Amount          int64  `json:"amount" example:"500000"`
	Currency        string `json:"currency" example:"NGN"`
	GatewayResponse string `json:"gatewayResponse" example:"Successful"`
}
