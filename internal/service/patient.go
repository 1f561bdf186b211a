package service

import (
	"context"
	"errors"
	"fmt"

	"carewatch/internal/model"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

type PatientService struct{ db *gorm.DB }

func NewPatientService(db *gorm.DB) *PatientService { return &PatientService{db: db} }

func (s *PatientService) List(ctx context.Context) ([]model.PatientSummary, error) {
	var out []model.PatientSummary
	err := s.db.WithContext(ctx).Model(&model.Patient{}).
		Select("id, name, phone, COALESCE(DATE_FORMAT(surgery_date, '%Y-%m-%d'), '') AS surgery_date, is_active").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("query patients: %w", err)
	}
	return out, nil
}

func (s *PatientService) Get(ctx context.Context, id int) (*model.Patient, error) {
	var p model.Patient
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query patient: %w", err)
	}
	return &p, nil
}

func (s *PatientService) Conversations(ctx context.Context, patientID int) ([]model.Conversation, error) {
	var convs []model.Conversation
	err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&convs).Error
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	return convs, nil
}

// PainTrend returns one point per check-in that carried a pain level,
// oldest first, for charting.
func (s *PatientService) PainTrend(ctx context.Context, patientID int) ([]model.PainPoint, error) {
	var points []model.PainPoint
	err := s.db.WithContext(ctx).Model(&model.Conversation{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS date, pain_level AS pain").
		Where("patient_id = ? AND pain_level IS NOT NULL", patientID).
		Order("date").
		Find(&points).Error
	if err != nil {
		return nil, fmt.Errorf("query pain trend: %w", err)
	}
	return points, nil
}
