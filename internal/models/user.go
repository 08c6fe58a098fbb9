package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents an account holder row in the users table.
type User struct {
	UserID       string          `db:"user_id"`
	Username     string          `db:"username"`
	Email        string          `db:"email"`
	PasswordHash string          `db:"password_hash"`
	Balance      decimal.Decimal `db:"balance"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
