package service

import (
	"context"
	"fmt"

	"carewatch/internal/model"

	"gorm.io/gorm"
)

type StatsService struct{ db *gorm.DB }

func NewStatsService(db *gorm.DB) *StatsService { return &StatsService{db: db} }

func (s *StatsService) Hospital(ctx context.Context) (*model.HospitalStats, error) {
	var st model.HospitalStats
	db := s.db.WithContext(ctx)

	if err := db.Model(&model.Patient{}).Count(&st.Patients).Error; err != nil {
		return nil, fmt.Errorf("count patients: %w", err)
	}
	if err := db.Model(&model.Patient{}).Where("is_active = ?", true).Count(&st.ActivePatients).Error; err != nil {
		return nil, fmt.Errorf("count active patients: %w", err)
	}
	if err := db.Model(&model.Alert{}).Where("acknowledged = ?", false).Count(&st.OpenAlerts).Error; err != nil {
		return nil, fmt.Errorf("count open alerts: %w", err)
	}
	if err := db.Model(&model.Doctor{}).Count(&st.Doctors).Error; err != nil {
		return nil, fmt.Errorf("count doctors: %w", err)
	}
	return &st, nil
}
