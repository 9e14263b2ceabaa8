package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"investment-bot-backend/internal/common/logger"
	"investment-bot-backend/internal/common/middleware"
	"investment-bot-backend/internal/common/response"
	"investment-bot-backend/internal/features/auth/token"
	usermodels "investment-bot-backend/internal/features/user/models"
	userrepo "investment-bot-backend/internal/features/user/repository"
	"investment-bot-backend/internal/features/wallet/service"
)

type WalletHandler struct {
	wallet service.WalletService
	users  userrepo.UserRepository
	tokens *token.Service
}

func NewWalletHandler(wallet service.WalletService, users userrepo.UserRepository, tokens *token.Service) *WalletHandler {
	return &WalletHandler{
		wallet: wallet,
		users:  users,
		tokens: tokens,
	}
}

func (h *WalletHandler) RegisterRoutes(router *gin.RouterGroup) {
	wallet := router.Group("/wallet", middleware.RequireAuth(h.tokens))
	{
		wallet.GET("/balance", h.balance)
		wallet.GET("/address", h.address)
		wallet.POST("/deposit", h.deposit)
		wallet.POST("/withdraw", h.withdraw)
	}
}

type amountRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

func (h *WalletHandler) currentUser(c *gin.Context) (*usermodels.User, bool) {
	userID, _ := middleware.UserID(c)
	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found")
		} else {
			logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load user")
			response.Fail(c, http.StatusInternalServerError, "Failed to load user")
		}
		return nil, false
	}
	return user, true
}

// @Summary Wallet balance
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope "available, locked, total, address"
// @Router /wallet/balance [get]
func (h *WalletHandler) balance(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	response.OK(c, http.StatusOK, h.wallet.Balance(c.Request.Context(), user))
}

// @Summary Deposit address
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope "address, currency, network"
// @Router /wallet/address [get]
func (h *WalletHandler) address(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	response.OK(c, http.StatusOK, service.AddressInfo{
		Address:  user.WalletAddress,
		Currency: service.Currency,
		Network:  service.Network,
	})
}

// @Summary Deposit funds
// @Tags wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body amountRequest true "Amount"
// @Success 200 {object} response.Envelope "receipt"
// @Failure 400 {object} response.Envelope
// @Router /wallet/deposit [post]
func (h *WalletHandler) deposit(c *gin.Context) {
	var body amountRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "A positive amount is required")
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	receipt, err := h.wallet.Deposit(c.Request.Context(), user, body.Amount)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			response.Fail(c, http.StatusBadRequest, "A positive amount is required")
			return
		}
		logger.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("Deposit failed")
		response.Fail(c, http.StatusInternalServerError, "Deposit failed")
		return
	}
	response.OK(c, http.StatusOK, receipt)
}

// @Summary Withdraw funds
// @Tags wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body amountRequest true "Amount"
// @Success 200 {object} response.Envelope "receipt"
// @Failure 400 {object} response.Envelope "Below minimum or insufficient balance"
// @Router /wallet/withdraw [post]
func (h *WalletHandler) withdraw(c *gin.Context) {
	var body amountRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "A positive amount is required")
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	receipt, err := h.wallet.Withdraw(c.Request.Context(), user, body.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			response.Fail(c, http.StatusBadRequest, "A positive amount is required")
		case errors.Is(err, service.ErrBelowMinWithdrawal):
			response.Fail(c, http.StatusBadRequest, "Minimum withdrawal is 10 USDT")
		case errors.Is(err, service.ErrInsufficientBalance):
			response.Fail(c, http.StatusBadRequest, "Insufficient balance")
		default:
			logger.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("Withdrawal failed")
			response.Fail(c, http.StatusInternalServerError, "Withdrawal failed")
		}
		return
	}
	response.OK(c, http.StatusOK, receipt)
}
