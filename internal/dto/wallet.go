package dto

import (
	"time"

	"github.com/GlebRadaev/mealsection/internal/domain"
)

type LedgerEntryResponseDTO struct {
	ID              int64     `json:"id" example:"12"`
	Reference       string    `json:"reference" example:"41"`
	Amount          int64     `json:"amount" example:"2500"`
	Type            string    `json:"type" example:"out"`
	Description     string    `json:"description" example:"Order placement"`
	PreviousBalance int64     `json:"previousBalance" example:"5000"`
	NewBalance      int64     `json:"newBalance" example:"2500"`
	CreatedAt       time.Time `json:"createdAt" example:"2024-03-01T10:00:00Z"`
}

func NewLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponseDTO {
	return LedgerEntryResponseDTO{
		ID:              e.ID,
		Reference:       e.Reference,
		Amount:          e.Amount,
		Type:            string(e.Type),
		Description:     e.Description,
		PreviousBalance: e.PreviousBalance,
		NewBalance:      e.NewBalance,
		CreatedAt:       e.CreatedAt,
	}
}

type FundsRequestDTO struct {
	AccountID int64 `json:"accountId" validate:"required,gt=0" example:"7"`
	Amount    int64 `json:"amount" validate:"required,gt=0" example:"1000"`
}

type WithdrawalRequestDTO struct {
	Amount int64 `json:"amount" validate:"required,gt=0" example:"2000"`
}

type ResolveWithdrawalRequestDTO struct {
	Approve *bool `json:"approve" validate:"required" example:"true"`
}

type WithdrawalResponseDTO struct {
	ID          int64      `json:"id" example:"3"`
	AccountID   int64      `json:"accountId" example:"7"`
	AccountName string     `json:"accountName" example:"Mama Put"`
	Role        string     `json:"role" example:"vendor"`
	Amount      int64      `json:"amount" example:"2000"`
	Status      *bool      `json:"status" example:"true"`
	CreatedAt   time.Time  `json:"createdAt" example:"2024-03-01T10:00:00Z"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty" example:"2024-03-02T10:00:00Z"`
}

func NewWithdrawalResponse(w *domain.Withdrawal) WithdrawalResponseDTO {
	return WithdrawalResponseDTO{
		ID:          w.ID,
		AccountID:   w.AccountID,
		AccountName: w.AccountName,
		Role:        string(w.Role),
		Amount:      w.Amount,
		Status:      w.Status,
		CreatedAt:   w.CreatedAt,
		ResolvedAt:  w.ResolvedAt,
	}
}

func NewWithdrawalsResponse(ws []domain.Withdrawal) []WithdrawalResponseDTO {
	resp := make([]WithdrawalResponseDTO, 0, len(ws))
	for i := range ws {
		resp = append(resp, NewWithdrawalResponse(&ws[i]))
	}
	return resp
}
