package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"investment-bot-backend/internal/common/response"
	"investment-bot-backend/internal/features/auth/token"
)

// Context keys populated by RequireAuth.
const (
	CtxUserID     = "userID"
	CtxTelegramID = "telegramID"
)

// RequireAuth gates a route behind a bearer access token. On success the
// authenticated subject and telegram id are placed in the gin context. No
// refresh is attempted here; expired tokens always fail.
func RequireAuth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Fail(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		scheme, credentials, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || credentials == "" {
			response.Fail(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := tokens.VerifyAccess(credentials)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxTelegramID, claims.TelegramID)
		c.Next()
	}
}

// UserID returns the authenticated subject set by RequireAuth.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// TelegramID returns the authenticated telegram id set by RequireAuth.
func TelegramID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(CtxTelegramID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
