package service

import (
	"context"
	"errors"
	"fmt"

	"carewatch/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
)

type AuthService struct{ db *gorm.DB }

func NewAuthService(db *gorm.DB) *AuthService { return &AuthService{db: db} }

func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// Register creates a patient account. The phone links the account to an
// enrolled patient record; when none exists yet one is created so the
// check-in webhook can find it later.
func (s *AuthService) Register(ctx context.Context, username, password, phone string) error {
	var existing model.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("query user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Patient
		err := tx.Where("phone = ?", phone).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			p = model.Patient{Phone: phone, Name: username, IsActive: true}
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("create patient: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("query patient: %w", err)
		}

		u := model.User{
			Username:     username,
			PasswordHash: string(hash),
			Role:         model.RolePatient,
			PatientID:    &p.ID,
		}
		if err := tx.Create(&u).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
}
