package http

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"

	"investment-bot-backend/internal/common/logger"
	"investment-bot-backend/internal/common/middleware"
	"investment-bot-backend/internal/common/response"
	"investment-bot-backend/internal/features/auth/token"
	"investment-bot-backend/internal/features/user/models"
	"investment-bot-backend/internal/features/user/repository"
)

type UserHandler struct {
	users  repository.UserRepository
	tokens *token.Service
}

func NewUserHandler(users repository.UserRepository, tokens *token.Service) *UserHandler {
	return &UserHandler{
		users:  users,
		tokens: tokens,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users", middleware.RequireAuth(h.tokens))
	{
		users.GET("/profile", h.profile)
		users.PUT("/profile", h.updateProfile)
	}
}

// @Summary Current user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope "user"
// @Failure 404 {object} response.Envelope
// @Router /users/profile [get]
func (h *UserHandler) profile(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found")
			return
		}
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load profile")
		response.Fail(c, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	response.OK(c, http.StatusOK, gin.H{"user": user.ToResponse()})
}

// @Summary Update the current user profile
// @Description Only firstName, lastName and email are editable. Omitted fields keep their value.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body models.ProfileUpdate true "Editable fields"
// @Success 200 {object} response.Envelope "user"
// @Failure 400 {object} response.Envelope "Invalid email"
// @Router /users/profile [put]
func (h *UserHandler) updateProfile(c *gin.Context) {
	var body models.ProfileUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if body.Email != "" {
		if _, err := mail.ParseAddress(body.Email); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid email address")
			return
		}
	}

	userID, _ := middleware.UserID(c)
	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "User not found")
			return
		}
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load profile")
		response.Fail(c, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	if v := strings.TrimSpace(body.FirstName); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(body.LastName); v != "" {
		user.LastName = v
	}
	if body.Email != "" {
		user.Email = body.Email
	}

	if err := h.users.Update(c.Request.Context(), user); err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to update profile")
		response.Fail(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	response.OK(c, http.StatusOK, gin.H{"user": user.ToResponse()})
}
