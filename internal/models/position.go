package models

// Position is one row of the positions table. The (user_id, currency_code)
// pair is unique; the quantity column carries a CHECK (quantity > 0) since
// zero-quantity positions are deleted, not kept.
type Position struct {
	PositionID   string `db:"position_id"`
	UserID       string `db:"user_id"`
	CurrencyCode string `db:"currency_code"`
	Quantity     int64  `db:"quantity"`
	AuditFields
}
