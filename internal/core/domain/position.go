package domain

// Position is a held quantity of one non-base currency. There is exactly one
// position per (user, currency code) pair; repeated purchases accumulate into
// it and it is deleted when the quantity reaches zero.
type Position struct {
	PositionID   string `json:"positionID"` // Primary Key (UUID)
	UserID       string `json:"userID"`
	CurrencyCode string `json:"currencyCode"` // ISO 4217, upper case
	Quantity     int64  `json:"quantity"`     // Always >= 0
	AuditFields
}
