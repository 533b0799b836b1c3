package middleware

import (
	"github.com/flexprice/billing-engine/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID stamps every request with an x-request-id, generating one
// when the caller didn't supply it, and echoes it back on the response.
func RequestID(c *gin.Context) {
	id := c.GetHeader(types.HeaderRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	ctx := types.WithRequestID(c.Request.Context(), id)
	c.Request = c.Request.WithContext(ctx)
	c.Header(types.HeaderRequestID, id)
	c.Next()
}
