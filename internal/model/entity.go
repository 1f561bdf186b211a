package model

import "time"

type Hospital struct {
	ID      int    `gorm:"primaryKey" json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type Doctor struct {
	ID         int    `gorm:"primaryKey" json:"id"`
	Name       string `json:"name"`
	Phone      string `gorm:"uniqueIndex" json:"phone"`
	Email      string `json:"email"`
	Specialty  string `json:"specialty"`
	HospitalID int    `json:"hospital_id"`
}

type Patient struct {
	ID              int        `gorm:"primaryKey" json:"id"`
	Phone           string     `gorm:"uniqueIndex" json:"phone"`
	Name            string     `json:"name"`
	DateOfBirth     *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	SurgeryDate     *time.Time `gorm:"type:date" json:"surgery_date,omitempty"`
	SurgeryType     string     `json:"surgery_type"`
	HospitalID      int        `json:"hospital_id"`
	PrimaryDoctorID int        `json:"primary_doctor_id"`
	IsActive        bool       `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type Conversation struct {
	ID                int       `gorm:"primaryKey" json:"id"`
	PatientID         int       `json:"patient_id"`
	DoctorID          int       `json:"doctor_id,omitempty"`
	Channel           string    `json:"channel"`
	PatientMessage    string    `json:"patient_message"`
	AgentResponse     string    `json:"agent_response"`
	ExtractedSymptoms string    `json:"extracted_symptoms"`
	PainLevel         *int      `json:"pain_level,omitempty"`
	RiskLevel         string    `json:"risk_level"`
	CreatedAt         time.Time `json:"created_at"`
}

type Alert struct {
	ID             int        `gorm:"primaryKey" json:"id"`
	PatientID      int        `json:"patient_id"`
	DoctorID       int        `json:"doctor_id,omitempty"`
	AlertType      string     `json:"alert_type"`
	Reason         string     `json:"reason"`
	Acknowledged   bool       `gorm:"default:false" json:"acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type User struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex" json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	PatientID    *int      `json:"patient_id,omitempty"`
	DoctorID     *int      `json:"doctor_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Hospital) TableName() string     { return "hospitals" }
func (Doctor) TableName() string       { return "doctors" }
func (Patient) TableName() string      { return "patients" }
func (Conversation) TableName() string { return "conversations" }
func (Alert) TableName() string        { return "alerts" }
func (User) TableName() string         { return "users" }
