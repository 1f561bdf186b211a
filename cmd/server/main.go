package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"carewatch/internal/config"
	"carewatch/internal/handler"
	"carewatch/internal/logger"
	"carewatch/internal/middleware"
	"carewatch/internal/migrations"
	"carewatch/internal/service"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)
	middleware.SetJWTSecret(cfg.Auth.JWTSecret)

	if err := migrations.Run(cfg.DSN()); err != nil {
		slog.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	authSvc := service.NewAuthService(db)
	patientSvc := service.NewPatientService(db)
	alertSvc := service.NewAlertService(db)
	statsSvc := service.NewStatsService(db)
	checkinSvc := service.NewCheckinService(db, alertSvc)

	r := handler.NewRouter(
		handler.NewAuthHandler(authSvc, time.Duration(cfg.Auth.TokenTTLHrs)*time.Hour),
		handler.NewPatientHandler(patientSvc),
		handler.NewAlertHandler(alertSvc),
		handler.NewStatsHandler(statsSvc),
		handler.NewWebhookHandler(checkinSvc),
	)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
