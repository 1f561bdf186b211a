package handler

import (
	"context"
	"errors"
	"net/http"

	"carewatch/internal/logger"
	"carewatch/internal/model"
	"carewatch/internal/service"

	"github.com/gin-gonic/gin"
)

type CheckinStore interface {
	Record(ctx context.Context, req model.CheckinRequest) (*model.Conversation, error)
}

// WebhookHandler is the ingress for the external risk-assessment agent.
type WebhookHandler struct{ checkins CheckinStore }

func NewWebhookHandler(checkins CheckinStore) *WebhookHandler {
	return &WebhookHandler{checkins: checkins}
}

// POST /webhook/checkin
func (h *WebhookHandler) Checkin(c *gin.Context) {
	var req model.CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone and message required"})
		return
	}

	conv, err := h.checkins.Record(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrPatientNotRegistered) {
			c.JSON(http.StatusNotFound, gin.H{"error": "patient not registered"})
			return
		}
		logger.Error("checkin.failed", "phone", req.Phone, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logger.Info("checkin.recorded", "conversation_id", conv.ID, "risk", conv.RiskLevel)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "conversation_id": conv.ID})
}
