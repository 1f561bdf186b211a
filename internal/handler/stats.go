package handler

import (
	"context"
	"net/http"

	"carewatch/internal/model"

	"github.com/gin-gonic/gin"
)

type StatsStore interface {
	Hospital(ctx context.Context) (*model.HospitalStats, error)
}

type StatsHandler struct{ stats StatsStore }

func NewStatsHandler(stats StatsStore) *StatsHandler { return &StatsHandler{stats: stats} }

// GET /api/hospital/stats
func (h *StatsHandler) Hospital(c *gin.Context) {
	st, err := h.stats.Hospital(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}
