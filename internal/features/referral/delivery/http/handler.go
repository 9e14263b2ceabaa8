package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"investment-bot-backend/internal/common/logger"
	"investment-bot-backend/internal/common/middleware"
	"investment-bot-backend/internal/common/response"
	"investment-bot-backend/internal/features/auth/token"
	"investment-bot-backend/internal/features/referral/service"
	userrepo "investment-bot-backend/internal/features/user/repository"
)

type ReferralHandler struct {
	referrals service.ReferralService
	users     userrepo.UserRepository
	tokens    *token.Service
}

func NewReferralHandler(referrals service.ReferralService, users userrepo.UserRepository, tokens *token.Service) *ReferralHandler {
	return &ReferralHandler{
		referrals: referrals,
		users:     users,
		tokens:    tokens,
	}
}

func (h *ReferralHandler) RegisterRoutes(router *gin.RouterGroup) {
	referrals := router.Group("/referrals", middleware.RequireAuth(h.tokens))
	{
		referrals.GET("/stats", h.stats)
		referrals.GET("/users", h.referredUsers)
	}
}

// @Summary Referral statistics and invite link
// @Tags referrals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope "stats, referralCode"
// @Router /referrals/stats [get]
func (h *ReferralHandler) stats(c *gin.Context) {
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

	stats, err := h.referrals.Stats(c.Request.Context(), user)
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load referral stats")
		response.Fail(c, http.StatusInternalServerError, "Failed to load referral stats")
		return
	}

	response.OK(c, http.StatusOK, stats)
}

// @Summary Users invited by the authenticated account
// @Tags referrals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope "referrals"
// @Router /referrals/users [get]
func (h *ReferralHandler) referredUsers(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	users, err := h.referrals.ReferredUsers(c.Request.Context(), userID)
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load referred users")
		response.Fail(c, http.StatusInternalServerError, "Failed to load referred users")
		return
	}

	response.OK(c, http.StatusOK, gin.H{"referrals": users})
}
