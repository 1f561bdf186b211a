package service

import (
	"context"
	"fmt"
	"time"

	"carewatch/internal/model"

	"gorm.io/gorm"
)

type AlertService struct{ db *gorm.DB }

func NewAlertService(db *gorm.DB) *AlertService { return &AlertService{db: db} }

// ListOpen returns unacknowledged alerts joined with the patient name,
// newest first. The order here is the order clients display.
func (s *AlertService) ListOpen(ctx context.Context) ([]model.AlertView, error) {
	var out []model.AlertView
	err := s.db.WithContext(ctx).Model(&model.Alert{}).
		Select("alerts.id, patients.name, alerts.alert_type, alerts.reason, alerts.acknowledged, alerts.created_at").
		Joins("JOIN patients ON alerts.patient_id = patients.id").
		Where("alerts.acknowledged = ?", false).
		Order("alerts.created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	return out, nil
}

// Acknowledge retires an alert. Acknowledging an already-acknowledged or
// unknown id is a no-op; the server is the authority and stays idempotent.
func (s *AlertService) Acknowledge(ctx context.Context, id int) error {
	now := time.Now()
	err := s.db.WithContext(ctx).Model(&model.Alert{}).
		Where("id = ? AND acknowledged = ?", id, false).
		Updates(map[string]interface{}{"acknowledged": true, "acknowledged_at": now}).Error
	if err != nil {
		return fmt.Errorf("acknowledge alert: %w", err)
	}
	return nil
}

func (s *AlertService) Open(ctx context.Context, patientID int, alertType, reason string) (*model.Alert, error) {
	a := model.Alert{PatientID: patientID, AlertType: alertType, Reason: reason}
	if err := s.db.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}
	return &a, nil
}

// OpenCount feeds the admin dashboard's aggregate card.
func (s *AlertService) OpenCount(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Alert{}).
		Where("acknowledged = ?", false).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count alerts: %w", err)
	}
	return n, nil
}
