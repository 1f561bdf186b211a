package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"carewatch/internal/model"
	"carewatch/internal/service"

	"github.com/gin-gonic/gin"
)

type PatientStore interface {
	List(ctx context.Context) ([]model.PatientSummary, error)
	Get(ctx context.Context, id int) (*model.Patient, error)
	Conversations(ctx context.Context, patientID int) ([]model.Conversation, error)
	PainTrend(ctx context.Context, patientID int) ([]model.PainPoint, error)
}

type PatientHandler struct{ patients PatientStore }

func NewPatientHandler(patients PatientStore) *PatientHandler {
	return &PatientHandler{patients: patients}
}

// GET /api/patients
func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.patients.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if patients == nil {
		patients = []model.PatientSummary{}
	}
	c.JSON(http.StatusOK, patients)
}

// GET /api/patients/:id
func (h *PatientHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	p, err := h.patients.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// GET /api/patients/:id/conversations
func (h *PatientHandler) Conversations(c *gin.Context) {
	id, ok := h.authorizedPatientID(c)
	if !ok {
		return
	}
	convs, err := h.patients.Conversations(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if convs == nil {
		convs = []model.Conversation{}
	}
	c.JSON(http.StatusOK, convs)
}

// GET /api/patients/:id/pain-trend
func (h *PatientHandler) PainTrend(c *gin.Context) {
	id, ok := h.authorizedPatientID(c)
	if !ok {
		return
	}
	points, err := h.patients.PainTrend(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if points == nil {
		points = []model.PainPoint{}
	}
	c.JSON(http.StatusOK, points)
}

// authorizedPatientID parses :id and enforces that patient accounts only
// reach their own record. Doctors and admins see any patient.
func (h *PatientHandler) authorizedPatientID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	if c.GetString("role") == model.RolePatient && c.GetInt("patient_id") != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return 0, false
	}
	return id, true
}
