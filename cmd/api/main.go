package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/medisys/clinical-api/internal/config"
	doctorHandler "github.com/medisys/clinical-api/internal/handler/doctor"
	examinationHandler "github.com/medisys/clinical-api/internal/handler/examination"
	healthHandler "github.com/medisys/clinical-api/internal/handler/health"
	medicalhistoryHandler "github.com/medisys/clinical-api/internal/handler/medicalhistory"
	medicalimageHandler "github.com/medisys/clinical-api/internal/handler/medicalimage"
	patientHandler "github.com/medisys/clinical-api/internal/handler/patient"
	prescriptionHandler "github.com/medisys/clinical-api/internal/handler/prescription"
	"github.com/medisys/clinical-api/internal/middleware"
	"github.com/medisys/clinical-api/internal/repository/postgres"
	"github.com/medisys/clinical-api/internal/router"
	doctorService "github.com/medisys/clinical-api/internal/service/doctor"
	examinationService "github.com/medisys/clinical-api/internal/service/examination"
	medicalhistoryService "github.com/medisys/clinical-api/internal/service/medicalhistory"
	medicalimageService "github.com/medisys/clinical-api/internal/service/medicalimage"
	patientService "github.com/medisys/clinical-api/internal/service/patient"
	prescriptionService "github.com/medisys/clinical-api/internal/service/prescription"
	"github.com/medisys/clinical-api/pkg/blob"
	"github.com/medisys/clinical-api/pkg/logger"
	"github.com/medisys/clinical-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(cfg.Log.Level)

	if err := validator.Register(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validation rules")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	blobs, err := blob.NewFSStore(cfg.Upload.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open upload directory")
	}

	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	examinationRepo := postgres.NewExaminationRepository(db)
	historyRepo := postgres.NewMedicalHistoryRepository(db)
	imageRepo := postgres.NewMedicalImageRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)

	patientSvc := patientService.NewService(patientRepo)
	doctorSvc := doctorService.NewService(doctorRepo)
	examinationSvc := examinationService.NewService(examinationRepo, patientRepo, doctorRepo)
	historySvc := medicalhistoryService.NewService(historyRepo, patientRepo)
	imageSvc := medicalimageService.NewService(imageRepo, examinationRepo, blobs)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo, examinationRepo, patientRepo, doctorRepo)

	r := router.NewRouter(
		router.Config{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			Timeout:          time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:       middleware.DefaultCORSConfig(),
			MetricsPrefix:    "clinical_api",
		},
		healthHandler.NewHandler(db),
		patientHandler.NewHandler(patientSvc),
		doctorHandler.NewHandler(doctorSvc),
		examinationHandler.NewHandler(examinationSvc),
		medicalhistoryHandler.NewHandler(historySvc),
		medicalimageHandler.NewHandler(imageSvc),
		prescriptionHandler.NewHandler(prescriptionSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
