package dto

import (
	"time"

	"github.com/GlebRadaev/mealsection/internal/domain"
)

type SignupRequestDTO struct {
	Name              string `json:"name" validate:"required,min=2,max=100" example:"Mama Put"`
	Email             string `json:"email" validate:"required,email" example:"mamaput@unilag.edu.ng"`
	Password          string `json:"password" validate:"required,min=8" example:"s3cretpass"`
	University        string `json:"university" validate:"required" example:"UNILAG"`
	Phone             string `json:"phone" validate:"omitempty,min=7,max=20" example:"08030000000"`
	BankAccountNumber string `json:"bankAccountNumber" validate:"omitempty,numeric,len=10" example:"0123456789"`
	BankAccountName   string `json:"bankAccountName" example:"Mama Put Ventures"`
	BankName          string `json:"bankName" example:"GTBank"`
}

func (r SignupRequestDTO) Account(role domain.Role) *domain.Account {
	return &domain.Account{
		Role:              role,
		Name:              r.Name,
		Email:             r.Email,
		University:        r.University,
		Phone:             r.Phone,
		BankAccountNumber: r.BankAccountNumber,
		BankAccountName:   r.BankAccountName,
		BankName:          r.BankName,
	}
}

type LoginRequestDTO struct {
	Role     string `json:"role" validate:"required,oneof=customer vendor rider manager" example:"customer"`
	Email    string `json:"email" validate:"required,email" example:"ada@unilag.edu.ng"`
	Password string `json:"password" validate:"required,min=8" example:"s3cretpass"`
	FCMToken string `json:"fcmToken" example:"fcm-device-token"`
}

type AccountResponseDTO struct {
	ID                int64     `json:"id" example:"7"`
	Role              string    `json:"role" example:"vendor"`
	Name              string    `json:"name" example:"Mama Put"`
	Email             string    `json:"email" example:"mamaput@unilag.edu.ng"`
	University        string    `json:"university" example:"UNILAG"`
	Phone             string    `json:"phone,omitempty" example:"08030000000"`
	Balance           int64     `json:"availableBal" example:"5000"`
	Valid             *bool     `json:"valid,omitempty" example:"true"`
	BankAccountNumber string    `json:"bankAccountNumber,omitempty" example:"0123456789"`
	BankAccountName   string    `json:"bankAccountName,omitempty" example:"Mama Put Ventures"`
	BankName          string    `json:"bankName,omitempty" example:"GTBank"`
	CreatedAt         time.Time `json:"createdAt" example:"2024-03-01T10:00:00Z"`
}

func NewAccountResponse(a *domain.Account) AccountResponseDTO {
	return AccountResponseDTO{
		ID:                a.ID,
		Role:              string(a.Role),
		Name:              a.Name,
		Email:             a.Email,
		University:        a.University,
		Phone:             a.Phone,
		Balance:           a.Balance,
		Valid:             a.Valid,
		BankAccountNumber: a.BankAccountNumber,
		BankAccountName:   a.BankAccountName,
		BankName:          a.BankName,
		CreatedAt:         a.CreatedAt,
	}
}

type AuthResponseDTO struct {
	Token   string             `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	Account AccountResponseDTO `json:"account"`
}

type ApproveAccountRequestDTO struct {
	Valid *bool `json:"valid" validate:"required" example:"true"`
}
