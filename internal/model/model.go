package model

import "time"

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	PatientID *int   `json:"patient_id"`
	DoctorID  *int   `json:"doctor_id"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

// AlertView is the /api/alerts row: an unacknowledged alert joined with
// the patient it belongs to.
type AlertView struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	AlertType    string    `json:"alert_type"`
	Reason       string    `json:"reason"`
	Acknowledged bool      `json:"acknowledged"`
	CreatedAt    time.Time `json:"created_at"`
}

type PatientSummary struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	SurgeryDate string `json:"surgery_date"`
	IsActive    bool   `json:"is_active"`
}

type PainPoint struct {
	Date string `json:"date"`
	Pain int    `json:"pain"`
}

type HospitalStats struct {
	Patients       int64 `json:"patients"`
	ActivePatients int64 `json:"active_patients"`
	OpenAlerts     int64 `json:"open_alerts"`
	Doctors        int64 `json:"doctors"`
}

// CheckinRequest is what the external risk-assessment agent posts after it
// has processed a patient message. Risk and symptoms arrive pre-computed;
// this service only records and raises alerts.
type CheckinRequest struct {
	Phone     string   `json:"phone" binding:"required"`
	Message   string   `json:"message" binding:"required"`
	Response  string   `json:"response"`
	Symptoms  []string `json:"symptoms"`
	PainLevel *int     `json:"pain_level"`
	Risk      string   `json:"risk"`
}
