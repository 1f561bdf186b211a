package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"carewatch/internal/model"

	"gorm.io/gorm"
)

var ErrPatientNotRegistered = errors.New("patient not registered")

// CheckinService records conversations posted by the external
// risk-assessment agent and raises alerts for high-risk check-ins.
type CheckinService struct {
	db     *gorm.DB
	alerts *AlertService
}

func NewCheckinService(db *gorm.DB, alerts *AlertService) *CheckinService {
	return &CheckinService{db: db, alerts: alerts}
}

func (s *CheckinService) Record(ctx context.Context, req model.CheckinRequest) (*model.Conversation, error) {
	var p model.Patient
	err := s.db.WithContext(ctx).
		Where("phone = ? AND is_active = ?", req.Phone, true).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPatientNotRegistered
	}
	if err != nil {
		return nil, fmt.Errorf("query patient: %w", err)
	}

	symptoms, _ := json.Marshal(map[string]interface{}{
		"symptoms":   req.Symptoms,
		"pain_level": req.PainLevel,
	})
	conv := model.Conversation{
		PatientID:         p.ID,
		Channel:           "webhook",
		PatientMessage:    req.Message,
		AgentResponse:     req.Response,
		ExtractedSymptoms: string(symptoms),
		PainLevel:         req.PainLevel,
		RiskLevel:         strings.ToUpper(req.Risk),
	}
	if err := s.db.WithContext(ctx).Create(&conv).Error; err != nil {
		return nil, fmt.Errorf("insert conversation: %w", err)
	}

	if conv.RiskLevel == "HIGH" {
		if _, err := s.alerts.Open(ctx, p.ID, "HIGH_RISK", req.Message); err != nil {
			return nil, err
		}
	}
	return &conv, nil
}
