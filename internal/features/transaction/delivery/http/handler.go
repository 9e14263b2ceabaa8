package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"investment-bot-backend/internal/common/logger"
	"investment-bot-backend/internal/common/middleware"
	"investment-bot-backend/internal/common/response"
	"investment-bot-backend/internal/features/auth/token"
	"investment-bot-backend/internal/features/transaction/models"
	"investment-bot-backend/internal/features/transaction/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type TransactionHandler struct {
	transactions repository.TransactionRepository
	tokens       *token.Service
}

func NewTransactionHandler(transactions repository.TransactionRepository, tokens *token.Service) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		tokens:       tokens,
	}
}

func (h *TransactionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/transactions", middleware.RequireAuth(h.tokens), h.list)
}

// @Summary Paginated transaction history
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, starting at 1"
// @Param limit query int false "Page size, max 100"
// @Success 200 {object} response.Envelope "transactions, total, page, limit, hasMore"
// @Router /transactions [get]
func (h *TransactionHandler) list(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	page := queryInt(c, "page", defaultPage)
	limit := queryInt(c, "limit", defaultLimit)
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	transactions, total, err := h.transactions.ListByUser(c.Request.Context(), userID, page, limit)
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load transactions")
		response.Fail(c, http.StatusInternalServerError, "Failed to load transactions")
		return
	}

	out := make([]*models.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, tx.ToResponse())
	}

	response.OK(c, http.StatusOK, models.Page{
		Transactions: out,
		Total:        total,
		PageNum:      page,
		Limit:        limit,
		HasMore:      page*limit < total,
	})
}

func queryInt(c *gin.Context, key string, fallback int64) int64 {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}
