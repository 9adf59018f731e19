package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrAccountNotFound     = fmt.Errorf("account %w", ErrNotFound)
	ErrOrderNotFound       = fmt.Errorf("order %w", ErrNotFound)
	ErrWithdrawalNotFound  = fmt.Errorf("withdrawal %w", ErrNotFound)
	ErrVendorPackNotFound  = fmt.Errorf("vendor pack %w", ErrNotFound)
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrConflict            = errors.New("conflict")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrSignatureInvalid    = errors.New("invalid signature")
	ErrUpstream            = errors.New("upstream failure")
)
