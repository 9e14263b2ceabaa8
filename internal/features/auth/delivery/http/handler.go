package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"investment-bot-backend/internal/common/logger"
	"investment-bot-backend/internal/common/middleware"
	"investment-bot-backend/internal/common/response"
	"investment-bot-backend/internal/features/auth/initdata"
	"investment-bot-backend/internal/features/auth/service"
	"investment-bot-backend/internal/features/auth/token"
)

type AuthHandler struct {
	auth     service.AuthService
	tokens   *token.Service
	botToken string
}

func NewAuthHandler(auth service.AuthService, tokens *token.Service, botToken string) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		tokens:   tokens,
		botToken: botToken,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/telegram", h.telegramAuth)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)
		auth.GET("/verify", middleware.RequireAuth(h.tokens), h.verify)
	}
}

type telegramAuthRequest struct {
	TelegramData string `json:"telegramData"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// @Summary Authenticate via Telegram Mini App init data
// @Description Verifies the signed init data payload, finds or creates the account and issues a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param X-Telegram-Init-Data header string false "Raw init data string"
// @Param body body telegramAuthRequest false "Init data in the request body"
// @Success 200 {object} response.Envelope "user, accessToken, refreshToken, expiresIn"
// @Failure 400 {object} response.Envelope "Missing or malformed init data"
// @Failure 401 {object} response.Envelope "Signature mismatch"
// @Failure 500 {object} response.Envelope "Storage unavailable"
// @Router /auth/telegram [post]
func (h *AuthHandler) telegramAuth(c *gin.Context) {
	raw := c.GetHeader("X-Telegram-Init-Data")
	if raw == "" {
		var body telegramAuthRequest
		if err := c.ShouldBindJSON(&body); err == nil {
			raw = body.TelegramData
		}
	}
	if raw == "" {
		response.Fail(c, http.StatusBadRequest, "Missing Telegram init data")
		return
	}

	identity, err := initdata.Verify(raw, h.botToken)
	if err != nil {
		// One terse message regardless of which verification step failed.
		if errors.Is(err, initdata.ErrSignatureMismatch) {
			response.Fail(c, http.StatusUnauthorized, "Invalid Telegram data")
		} else {
			response.Fail(c, http.StatusBadRequest, "Invalid Telegram data")
		}
		return
	}

	result, err := h.auth.Authenticate(c.Request.Context(), identity)
	if err != nil {
		logger.Error().Err(err).Int64("telegram_id", identity.ID).Msg("Authentication failed")
		response.Fail(c, http.StatusInternalServerError, "Authentication failed")
		return
	}

	response.OK(c, http.StatusOK, result)
}

// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body refreshRequest true "Refresh token"
// @Success 200 {object} response.Envelope "accessToken"
// @Failure 400 {object} response.Envelope "Missing refresh token"
// @Failure 401 {object} response.Envelope "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) refresh(c *gin.Context) {
	var body refreshRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.RefreshToken == "" {
		response.Fail(c, http.StatusBadRequest, "Missing refresh token")
		return
	}

	accessToken, err := h.auth.Refresh(body.RefreshToken)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	response.OK(c, http.StatusOK, gin.H{"accessToken": accessToken})
}

// @Summary Log out
// @Description Sessions are stateless; logout is a client-side token discard.
// @Tags auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) logout(c *gin.Context) {
	response.OK(c, http.StatusOK, gin.H{"ok": true})
}

// @Summary Echo the authenticated token claims
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope "userId, telegramId"
// @Failure 401 {object} response.Envelope
// @Router /auth/verify [get]
func (h *AuthHandler) verify(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	telegramID, _ := middleware.TelegramID(c)

	response.OK(c, http.StatusOK, gin.H{
		"userId":     userID,
		"telegramId": telegramID,
	})
}
