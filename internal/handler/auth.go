package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"carewatch/internal/logger"
	"carewatch/internal/middleware"
	"carewatch/internal/model"
	"carewatch/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthStore interface {
	Login(ctx context.Context, username, password string) (*model.User, error)
	Register(ctx context.Context, username, password, phone string) error
}

type AuthHandler struct {
	auth     AuthStore
	tokenTTL time.Duration
}

func NewAuthHandler(auth AuthStore, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, tokenTTL: tokenTTL}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	u, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logger.Warn("login.failed", "username", req.Username)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := middleware.GenerateToken(u.ID, u.Role, u.PatientID, u.DoctorID, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	logger.Info("login.ok", "uid", u.ID, "role", u.Role)
	c.JSON(http.StatusOK, model.LoginResponse{
		Token:     token,
		Role:      u.Role,
		PatientID: u.PatientID,
		DoctorID:  u.DoctorID,
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, password and phone required"})
		return
	}

	if err := h.auth.Register(c.Request.Context(), req.Username, req.Password, req.Phone); err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
			return
		}
		logger.Error("register.failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logger.Info("register.ok", "username", req.Username)
	c.JSON(http.StatusCreated, gin.H{"status": "ok"})
}
