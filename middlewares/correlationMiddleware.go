package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/restobooks/backoffice_backend/utils"
)

const CorrelationHeader = "X-Correlation-Id"

// CorrelationMiddleware tags every request with a correlation id, taking
// the caller's header when present and echoing it on the response.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationId := c.Request.Header.Get(CorrelationHeader)
		if correlationId == "" {
			correlationId = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), correlationId))
		c.Writer.Header().Set(CorrelationHeader, correlationId)
		c.Next()
	}
}
