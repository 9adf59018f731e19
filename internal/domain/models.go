package domain

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleRider    Role = "rider"
	RoleManager  Role = "manager"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleRider, RoleManager:
		return true
	}
	return false
}

// NeedsApproval reports whether accounts of this role stay locked until a
// manager sets Valid to true.
func (r Role) NeedsApproval() bool {
	return r == RoleVendor || r == RoleRider
}

type Account struct {
	ID                int64     `db:"id"`
	Role              Role      `db:"role"`
	Name              string    `db:"name"`
	Email             string    `db:"email"`
	PasswordHash      string    `db:"password_hash"`
	University        string    `db:"university"`
	Phone             string    `db:"phone"`
	FCMToken          string    `db:"fcm_token"`
	Balance           int64     `db:"balance"`
	Valid             *bool     `db:"valid"`
	BankAccountNumber string    `db:"bank_account_number"`
	BankAccountName   string    `db:"bank_account_name"`
	BankName          string    `db:"bank_name"`
	CreatedAt         time.Time `db:"created_at"`
}

func (a *Account) CanAuthenticate() bool {
	if !a.Role.NeedsApproval() {
		return true
	}
	return a.Valid != nil && *a.Valid
}

type EntryType string

const (
	EntryIn  EntryType = "in"
	EntryOut EntryType = "out"
)

type LedgerEntry struct {
	ID              int64     `db:"id"`
	AccountID       int64     `db:"account_id"`
	Reference       string    `db:"reference"`
	Amount          int64     `db:"amount"`
	Type            EntryType `db:"type"`
	Description     string    `db:"description"`
	PreviousBalance int64     `db:"previous_balance"`
	NewBalance      int64     `db:"new_balance"`
	CreatedAt       time.Time `db:"created_at"`
}

// LedgerDelta is a signed balance change for one account. Positive amounts
// credit, negative amounts debit.
type LedgerDelta struct {
	AccountID   int64
	Amount      int64
	Reference   string
	Description string
}

func (d LedgerDelta) EntryType() EntryType {
	if d.Amount < 0 {
		return EntryOut
	}
	return EntryIn
}

type Withdrawal struct {
	ID          int64      `db:"id"`
	AccountID   int64      `db:"account_id"`
	AccountName string     `db:"account_name"`
	Role        Role       `db:"role"`
	Amount      int64      `db:"amount"`
	Status      *bool      `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ResolvedAt  *time.Time `db:"resolved_at"`
}

func (w *Withdrawal) Pending() bool {
	return w.Status == nil
}

type ProcessedPaymentRef struct {
	ID        int64     `db:"id"`
	Reference string    `db:"reference"`
	AccountID int64     `db:"account_id"`
	CreatedAt time.Time `db:"created_at"`
}
