package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cantordev/cantor_backend/internal/apperrors"
	"github.com/cantordev/cantor_backend/internal/core/domain"
	portsrepo "github.com/cantordev/cantor_backend/internal/core/ports/repositories"
	"github.com/cantordev/cantor_backend/internal/models"
	"github.com/cantordev/cantor_backend/internal/utils/mapping"
	"github.com/cantordev/cantor_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTradeRepository struct {
	BaseRepository
}

// newPgxTradeRepository creates a new repository for trade, position, and
// ledger data.
func newPgxTradeRepository(pool *pgxpool.Pool) portsrepo.TradeRepositoryFacade {
	return &PgxTradeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TradeRepositoryFacade = (*PgxTradeRepository)(nil)

// ExecuteTrade applies a buy or sell as a single database transaction. The
// user row is locked FOR UPDATE first, which serializes concurrent trades on
// one account; the balance and holdings checks below are therefore
// authoritative even when the caller's precondition check raced another
// request.
func (r *PgxTradeRepository) ExecuteTrade(ctx context.Context, exec portsrepo.TradeExecution) (*domain.User, *domain.Position, *domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	// Ignored if the transaction commits.
	defer r.Rollback(ctx, tx)

	// 1. Lock the user row and fetch the current balance.
	var modelUser models.User
	err = tx.QueryRow(ctx, `
		SELECT user_id, username, email, password_hash, balance, created_at, last_updated_at, deleted_at
		FROM users
		WHERE user_id = $1 AND deleted_at IS NULL
		FOR UPDATE;
	`, exec.UserID).Scan(
		&modelUser.UserID,
		&modelUser.Username,
		&modelUser.Email,
		&modelUser.PasswordHash,
		&modelUser.Balance,
		&modelUser.CreatedAt,
		&modelUser.LastUpdatedAt,
		&modelUser.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, nil, apperrors.NewAppError(500, "failed to lock user "+exec.UserID, err)
	}

	newBalance := modelUser.Balance.Add(exec.BalanceDelta)
	if newBalance.IsNegative() {
		return nil, nil, nil, apperrors.ErrInsufficientFunds
	}

	// 2. Locate the position for (user, currency), locking it if present.
	var modelPos models.Position
	havePosition := true
	err = tx.QueryRow(ctx, `
		SELECT position_id, user_id, currency_code, quantity, created_at, last_updated_at
		FROM positions
		WHERE user_id = $1 AND currency_code = $2
		FOR UPDATE;
	`, exec.UserID, exec.CurrencyCode).Scan(
		&modelPos.PositionID,
		&modelPos.UserID,
		&modelPos.CurrencyCode,
		&modelPos.Quantity,
		&modelPos.CreatedAt,
		&modelPos.LastUpdatedAt,
	)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil, apperrors.NewAppError(500, "failed to lock position for "+exec.UserID, err)
		}
		havePosition = false
	}

	currentQty := int64(0)
	if havePosition {
		currentQty = modelPos.Quantity
	}
	newQty := currentQty + exec.QuantityDelta
	if newQty < 0 {
		return nil, nil, nil, apperrors.ErrInsufficientHoldings
	}

	// 3. Apply the balance change.
	_, err = tx.Exec(ctx, `
		UPDATE users SET balance = $2, last_updated_at = $3 WHERE user_id = $1;
	`, exec.UserID, newBalance, exec.ExecutedAt)
	if err != nil {
		return nil, nil, nil, apperrors.NewAppError(500, "failed to update balance for "+exec.UserID, err)
	}
	modelUser.Balance = newBalance
	modelUser.LastUpdatedAt = exec.ExecutedAt

	// 4. Upsert or delete the position. One row per (user, currency): the
	// unique constraint backs this up, but the locate-and-update above is
	// what keeps repeated buys in a single row.
	var resultPos *models.Position
	switch {
	case !havePosition:
		modelPos = models.Position{
			PositionID:   uuid.NewString(),
			UserID:       exec.UserID,
			CurrencyCode: exec.CurrencyCode,
			Quantity:     newQty,
			AuditFields: models.AuditFields{
				CreatedAt:     exec.ExecutedAt,
				LastUpdatedAt: exec.ExecutedAt,
			},
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO positions (position_id, user_id, currency_code, quantity, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6);
		`, modelPos.PositionID, modelPos.UserID, modelPos.CurrencyCode, modelPos.Quantity, modelPos.CreatedAt, modelPos.LastUpdatedAt)
		if err != nil {
			return nil, nil, nil, apperrors.NewAppError(500, "failed to insert position for "+exec.UserID, err)
		}
		resultPos = &modelPos
	case newQty == 0:
		_, err = tx.Exec(ctx, `DELETE FROM positions WHERE position_id = $1;`, modelPos.PositionID)
		if err != nil {
			return nil, nil, nil, apperrors.NewAppError(500, "failed to delete position "+modelPos.PositionID, err)
		}
		resultPos = nil
	default:
		_, err = tx.Exec(ctx, `
			UPDATE positions SET quantity = $2, last_updated_at = $3 WHERE position_id = $1;
		`, modelPos.PositionID, newQty, exec.ExecutedAt)
		if err != nil {
			return nil, nil, nil, apperrors.NewAppError(500, "failed to update position "+modelPos.PositionID, err)
		}
		modelPos.Quantity = newQty
		modelPos.LastUpdatedAt = exec.ExecutedAt
		resultPos = &modelPos
	}

	// 5. Append exactly one ledger entry.
	modelEntry := models.LedgerEntry{
		EntryID:      uuid.NewString(),
		UserID:       exec.UserID,
		CurrencyCode: exec.CurrencyCode,
		CurrencyName: exec.CurrencyName,
		Quantity:     exec.QuantityDelta,
		Price:        exec.Price,
		ExecutedAt:   exec.ExecutedAt,
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO ledger_entries (entry_id, user_id, currency_code, currency_name, quantity, price, executed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, modelEntry.EntryID, modelEntry.UserID, modelEntry.CurrencyCode, modelEntry.CurrencyName, modelEntry.Quantity, modelEntry.Price, modelEntry.ExecutedAt)
	if err != nil {
		return nil, nil, nil, apperrors.NewAppError(500, "failed to append ledger entry for "+exec.UserID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, nil, err
	}

	domainUser := mapping.ToDomainUser(modelUser)
	domainEntry := mapping.ToDomainLedgerEntry(modelEntry)
	var domainPos *domain.Position
	if resultPos != nil {
		p := mapping.ToDomainPosition(*resultPos)
		domainPos = &p
	}
	return &domainUser, domainPos, &domainEntry, nil
}

// FindPosition retrieves the position for (user, currency code).
func (r *PgxTradeRepository) FindPosition(ctx context.Context, userID string, currencyCode string) (*domain.Position, error) {
	var modelPos models.Position
	err := r.Pool.QueryRow(ctx, `
		SELECT position_id, user_id, currency_code, quantity, created_at, last_updated_at
		FROM positions
		WHERE user_id = $1 AND currency_code = $2;
	`, userID, currencyCode).Scan(
		&modelPos.PositionID,
		&modelPos.UserID,
		&modelPos.CurrencyCode,
		&modelPos.Quantity,
		&modelPos.CreatedAt,
		&modelPos.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find position for "+userID, err)
	}

	domainPos := mapping.ToDomainPosition(modelPos)
	return &domainPos, nil
}

// ListPositionsByUserID retrieves all of a user's open positions.
func (r *PgxTradeRepository) ListPositionsByUserID(ctx context.Context, userID string) ([]domain.Position, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT position_id, user_id, currency_code, quantity, created_at, last_updated_at
		FROM positions
		WHERE user_id = $1
		ORDER BY currency_code;
	`, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query positions for "+userID, err)
	}
	defer rows.Close()

	positions := []models.Position{}
	for rows.Next() {
		var p models.Position
		if err := rows.Scan(
			&p.PositionID,
			&p.UserID,
			&p.CurrencyCode,
			&p.Quantity,
			&p.CreatedAt,
			&p.LastUpdatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan position row for "+userID, err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating position rows for "+userID, err)
	}

	return mapping.ToDomainPositionSlice(positions), nil
}

// ListLedgerEntriesByUserID retrieves a page of ledger entries for the user,
// newest first, using token-based cursor pagination.
func (r *PgxTradeRepository) ListLedgerEntriesByUserID(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT entry_id, user_id, currency_code, currency_name, quantity, price, executed_at
		FROM ledger_entries
		WHERE user_id = $1
	`
	// Ordering must be stable; entry_id breaks executed_at ties.
	orderByClause := `ORDER BY executed_at DESC, entry_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{userID}

	if nextToken != nil && *nextToken != "" {
		lastExecutedAt, lastEntryID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}

		cursorClause := `AND (executed_at, entry_id) < ($2, $3)`
		args = append(args, lastExecutedAt, lastEntryID)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger entries for "+userID, err)
	}
	defer rows.Close()

	entries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(
			&e.EntryID,
			&e.UserID,
			&e.CurrencyCode,
			&e.CurrencyName,
			&e.Quantity,
			&e.Price,
			&e.ExecutedAt,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger entry row for "+userID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger entry rows for "+userID, err)
	}

	var nextTokenVal *string
	results := entries
	if len(entries) > limit {
		last := entries[limit-1] // The actual last item of the current page
		token := pagination.EncodeToken(last.ExecutedAt, last.EntryID)
		nextTokenVal = &token
		results = entries[:limit]
	}

	return mapping.ToDomainLedgerEntrySlice(results), nextTokenVal, nil
}
