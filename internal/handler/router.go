package handler

import (
	"net/http"

	"carewatch/internal/middleware"
	"carewatch/internal/model"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the REST surface. Role gates follow the dashboard scopes:
// alerts and patient lists are clinical-staff only, per-patient reads allow
// the owning patient too.
func NewRouter(auth *AuthHandler, patients *PatientHandler, alerts *AlertHandler, stats *StatsHandler, webhook *WebhookHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/api/login", auth.Login)
	r.POST("/api/register", auth.Register)
	r.POST("/webhook/checkin", webhook.Checkin)

	api := r.Group("/api", middleware.JWTAuth())

	staff := api.Group("", middleware.RequireRole(model.RoleDoctor, model.RoleAdmin))
	staff.GET("/patients", patients.List)
	staff.GET("/patients/:id", patients.Get)
	staff.GET("/alerts", alerts.List)
	staff.POST("/alerts/:id/acknowledge", alerts.Acknowledge)

	shared := api.Group("", middleware.RequireRole(model.RolePatient, model.RoleDoctor, model.RoleAdmin))
	shared.GET("/patients/:id/conversations", patients.Conversations)
	shared.GET("/patients/:id/pain-trend", patients.PainTrend)

	admin := api.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.GET("/hospital/stats", stats.Hospital)

	return r
}
