package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cantordev/cantor_backend/internal/apperrors"
	portssvc "github.com/cantordev/cantor_backend/internal/core/ports/services"
	"github.com/cantordev/cantor_backend/internal/dto"
	"github.com/cantordev/cantor_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// portfolioHandler serves the portfolio snapshot and the trade history.
type portfolioHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newPortfolioHandler(ls portssvc.LedgerSvcFacade) *portfolioHandler {
	return &portfolioHandler{ledgerService: ls}
}

// registerPortfolioRoutes registers the portfolio and history routes.
func registerPortfolioRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newPortfolioHandler(ledgerService)

	rg.GET("/portfolio", h.getPortfolio)
	rg.GET("/history", h.listHistory)
}

func (h *portfolioHandler) getPortfolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	portfolio, err := h.ledgerService.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error("Failed to get portfolio", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get portfolio"})
		return
	}

	c.JSON(http.StatusOK, portfolio)
}

func (h *portfolioHandler) listHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if params.Limit < 1 || params.Limit > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
		return
	}

	history, err := h.ledgerService.ListHistory(c.Request.Context(), userID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list history"})
		return
	}

	c.JSON(http.StatusOK, history)
}
