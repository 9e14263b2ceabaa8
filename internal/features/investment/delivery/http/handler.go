package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"investment-bot-backend/internal/common/logger"
	"investment-bot-backend/internal/common/middleware"
	"investment-bot-backend/internal/common/response"
	"investment-bot-backend/internal/features/auth/token"
	"investment-bot-backend/internal/features/investment/service"
	userrepo "investment-bot-backend/internal/features/user/repository"
)

type InvestmentHandler struct {
	investments service.InvestmentService
	users       userrepo.UserRepository
	tokens      *token.Service
}

func NewInvestmentHandler(investments service.InvestmentService, users userrepo.UserRepository, tokens *token.Service) *InvestmentHandler {
	return &InvestmentHandler{
		investments: investments,
		users:       users,
		tokens:      tokens,
	}
}

func (h *InvestmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	investments := router.Group("/investments", middleware.RequireAuth(h.tokens))
	{
		investments.GET("/plans", h.plans)
		investments.GET("/history", h.history)
		investments.POST("", h.invest)
	}
}

type investRequest struct {
	PlanID string  `json:"planId" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// @Summary List investment plans
// @Tags investments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope "plans"
// @Router /investments/plans [get]
func (h *InvestmentHandler) plans(c *gin.Context) {
	plans, err := h.investments.Plans(c.Request.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load plans")
		response.Fail(c, http.StatusInternalServerError, "Failed to load plans")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"plans": plans})
}

// @Summary List the authenticated user's investments
// @Tags investments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope "investments"
// @Router /investments/history [get]
func (h *InvestmentHandler) history(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	history, err := h.investments.History(c.Request.Context(), userID)
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load investment history")
		response.Fail(c, http.StatusInternalServerError, "Failed to load investment history")
		return
	}
	response.OK(c, http.StatusOK, gin.H{"investments": history})
}

// @Summary Invest in a plan
// @Tags investments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body investRequest true "Plan and amount"
// @Success 201 {object} response.Envelope "investment"
// @Failure 400 {object} response.Envelope "Validation or balance error"
// @Router /investments [post]
func (h *InvestmentHandler) invest(c *gin.Context) {
	var body investRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "planId and a positive amount are required")
		return
	}

	userID, _ := middleware.UserID(c)
	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found")
			return
		}
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load user")
		response.Fail(c, http.StatusInternalServerError, "Failed to load user")
		return
	}

	investment, err := h.investments.Invest(c.Request.Context(), user, body.PlanID, body.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			response.Fail(c, http.StatusNotFound, "Investment plan not found")
		case errors.Is(err, service.ErrAmountOutOfRange):
			response.Fail(c, http.StatusBadRequest, "Amount is outside the plan limits")
		case errors.Is(err, service.ErrInsufficientBalance):
			response.Fail(c, http.StatusBadRequest, "Insufficient balance")
		default:
			logger.Error().Err(err).Str("user_id", userID).Msg("Investment failed")
			response.Fail(c, http.StatusInternalServerError, "Investment failed")
		}
		return
	}

	response.OK(c, http.StatusCreated, gin.H{"investment": investment})
}
