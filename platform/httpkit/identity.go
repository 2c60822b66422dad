package httpkit

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AgentID returns the authenticated agent set by AuthRequired.
func AgentID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(ContextAgentIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
