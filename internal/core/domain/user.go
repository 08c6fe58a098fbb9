package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents an account holder: identity plus the base-currency (PLN)
// balance that all trades are valued against. The balance is mutated only by
// Purchase/Sell on the ledger service.
type User struct {
	UserID       string          `json:"userID"` // Primary Key (UUID)
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Balance      decimal.Decimal `json:"balance"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
