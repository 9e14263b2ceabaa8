package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"investment-bot-backend/internal/common/cache"
	"investment-bot-backend/internal/common/logger"
	"investment-bot-backend/internal/common/middleware"
	"investment-bot-backend/internal/common/response"
	"investment-bot-backend/internal/features/auth/token"
	investmentrepo "investment-bot-backend/internal/features/investment/repository"
	userrepo "investment-bot-backend/internal/features/user/repository"
)

const statsCacheTTL = time.Minute

// Stats is the aggregate shown on the dashboard home screen.
type Stats struct {
	TotalInvested     float64 `json:"totalInvested"`
	TotalEarned       float64 `json:"totalEarned"`
	AvailableBalance  float64 `json:"availableBalance"`
	ReferralEarnings  float64 `json:"referralEarnings"`
	ActiveInvestments int64   `json:"activeInvestments"`
}

type DashboardHandler struct {
	users       userrepo.UserRepository
	investments investmentrepo.InvestmentRepository
	cache       cache.Cache
	tokens      *token.Service
}

func NewDashboardHandler(
	users userrepo.UserRepository,
	investments investmentrepo.InvestmentRepository,
	c cache.Cache,
	tokens *token.Service,
) *DashboardHandler {
	return &DashboardHandler{
		users:       users,
		investments: investments,
		cache:       c,
		tokens:      tokens,
	}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard/stats", middleware.RequireAuth(h.tokens), h.stats)
}

// @Summary Dashboard aggregates for the authenticated user
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope "totals and active investment count"
// @Router /dashboard/stats [get]
func (h *DashboardHandler) stats(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	ctx := c.Request.Context()
	cacheKey := fmt.Sprintf("dashboard:stats:%s", userID)

	var cached Stats
	if err := h.cache.Get(ctx, cacheKey, &cached); err == nil {
		response.OK(c, http.StatusOK, cached)
		return
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.Warn().Err(err).Msg("Dashboard cache read failed")
	}

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found")
			return
		}
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load user")
		response.Fail(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	active, err := h.investments.CountActiveByUser(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to count active investments")
		response.Fail(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	stats := Stats{
		TotalInvested:     user.TotalInvested,
		TotalEarned:       user.TotalEarned,
		AvailableBalance:  user.AvailableBalance,
		ReferralEarnings:  user.ReferralEarnings,
		ActiveInvestments: active,
	}

	if err := h.cache.Set(ctx, cacheKey, stats, statsCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Dashboard cache write failed")
	}

	response.OK(c, http.StatusOK, stats)
}
