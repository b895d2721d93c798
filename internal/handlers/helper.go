package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/quizbank-service/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHeader carries the anonymous browser session id.
const SessionHeader = "X-Session-ID"

const sessionIDKey = "session_id"

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := c.Param(param)
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return idStr
}

// SessionMiddleware reads the session id header, issuing a new id when absent,
// and echoes it back on the response.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		c.Header(SessionHeader, sessionID)
		c.Set(sessionIDKey, sessionID)
		c.Request = c.Request.WithContext(services.WithSessionID(c.Request.Context(), sessionID))
		c.Next()
	}
}

// sessionID returns the id set by SessionMiddleware, or "" outside it.
func sessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
