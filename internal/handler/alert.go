package handler

import (
	"context"
	"net/http"
	"strconv"

	"carewatch/internal/logger"
	"carewatch/internal/model"

	"github.com/gin-gonic/gin"
)

type AlertStore interface {
	ListOpen(ctx context.Context) ([]model.AlertView, error)
	Acknowledge(ctx context.Context, id int) error
}

type AlertHandler struct{ alerts AlertStore }

func NewAlertHandler(alerts AlertStore) *AlertHandler { return &AlertHandler{alerts: alerts} }

// GET /api/alerts
func (h *AlertHandler) List(c *gin.Context) {
	alerts, err := h.alerts.ListOpen(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if alerts == nil {
		alerts = []model.AlertView{}
	}
	c.JSON(http.StatusOK, alerts)
}

// POST /api/alerts/:id/acknowledge
func (h *AlertHandler) Acknowledge(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.alerts.Acknowledge(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	logger.Info("alert.acknowledged", "id", id, "by", c.GetInt("user_id"))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
