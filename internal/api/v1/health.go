package v1

import (
	"net/http"

	"github.com/flexprice/billing-engine/internal/postgres"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	db *postgres.DB
}

func NewHealthHandler(db *postgres.DB) *HealthHandler { return &HealthHandler{db: db} }

// Health implements §6's GET /healthz: 200 when Postgres is reachable,
// 503 otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
