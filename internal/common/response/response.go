package response

import "github.com/gin-gonic/gin"

// Envelope is the response shape shared by every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK writes a successful envelope with the given payload.
func OK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// Fail writes an error envelope and aborts the request. The error string is
// client-safe; internal detail belongs in server-side logs only.
func Fail(c *gin.Context, status int, err string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: err})
}

// FailWithMessage writes an error envelope with an extra human-readable hint.
func FailWithMessage(c *gin.Context, status int, err, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: err, Message: message})
}
