package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cantordev/cantor_backend/internal/apperrors"
	"github.com/cantordev/cantor_backend/internal/core/domain"
	portssvc "github.com/cantordev/cantor_backend/internal/core/ports/services"
	"github.com/cantordev/cantor_backend/internal/dto"
	"github.com/cantordev/cantor_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tradeHandler handles buy and sell requests against the account ledger.
type tradeHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newTradeHandler(ls portssvc.LedgerSvcFacade) *tradeHandler {
	return &tradeHandler{ledgerService: ls}
}

// registerTradeRoutes registers the trade execution routes.
func registerTradeRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newTradeHandler(ledgerService)

	trades := rg.Group("/trades")
	{
		trades.POST("/buy", h.buy)
		trades.POST("/sell", h.sell)
	}
}

func (h *tradeHandler) buy(c *gin.Context) {
	h.execute(c, h.ledgerService.Purchase)
}

func (h *tradeHandler) sell(c *gin.Context) {
	h.execute(c, h.ledgerService.Sell)
}

// execute runs either side of a trade; Purchase and Sell share their
// request shape and error mapping.
func (h *tradeHandler) execute(c *gin.Context, trade func(ctx context.Context, userID string, currencyCode string, quantity int64) (*domain.TradeResult, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for trade", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := trade(c.Request.Context(), userID, req.CurrencyCode, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient funds"})
		case errors.Is(err, apperrors.ErrInsufficientHoldings):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient holdings"})
		case errors.Is(err, apperrors.ErrRateUnavailable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Exchange rate unavailable for " + req.CurrencyCode})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			logger.Error("Failed to execute trade", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to execute trade"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTradeResponse(result))
}
