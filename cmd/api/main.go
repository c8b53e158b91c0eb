package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ugwucharles/Scam-reporter-sub000/internal/config"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/domain/auth"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/domain/evidence"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/domain/report"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/domain/screening"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/domain/search"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/middleware"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/activity"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/database"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/emailverify"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/jwt"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/partner"
	pkgresponse "github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/response"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/scamdb"
	"github.com/ugwucharles/Scam-reporter-sub000/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Scam Reporter API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	// External verification clients
	scamDBClient := scamdb.NewClient(cfg.ScamDBBaseURL, cfg.ScamDBAPIKey, cfg.ExternalTimeout)
	emailClient := emailverify.NewClient(cfg.EmailVerifyBaseURL, cfg.EmailVerifyAPIKey, cfg.ExternalTimeout)
	partnerClient := partner.NewClient(cfg.PartnerBaseURL, cfg.PartnerAPIKey, cfg.ExternalTimeout)

	activityLogger := activity.NewLogger(redisClient)

	// Evidence storage backend
	var store storage.Storage
	switch cfg.StorageBackend {
	case "s3":
		store, err = storage.NewS3Storage(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			PublicURL: cfg.StoragePublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 storage")
		}
	default:
		store, err = storage.NewLocalStorage(cfg.LocalStoragePath, cfg.StoragePublicURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create local storage")
		}
	}

	// ---------- Repositories ----------
	reportRepo := report.NewRepository(db)
	authRepo := auth.NewRepository(db)
	evidenceRepo := evidence.NewRepository(db)

	// ---------- Services ----------
	reportService := report.NewService(reportRepo)
	authService := auth.NewService(authRepo, jwtService)

	pipeline := screening.NewPipeline(reportRepo, scamDBClient, emailClient, partnerClient, screening.Config{
		HighTargetThreshold: cfg.HighTargetThreshold,
	})

	riskEngine := search.NewRiskEngine(reportRepo, search.DefaultRiskConfig())
	searchService := search.NewService(reportRepo, riskEngine, activityLogger)

	evidenceService := evidence.NewService(evidenceRepo, reportRepo, store, cfg.MaxEvidenceBytes)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	reportHandler := report.NewHandler(reportService, &screenerAdapter{pipeline: pipeline})
	searchHandler := search.NewHandler(searchService)
	evidenceHandler := evidence.NewHandler(evidenceService)

	authMiddleware := middleware.Auth(jwtService)
	moderatorOnly := middleware.RequireModerator()

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())
		r.Mount("/scams", reportHandler.Routes(authMiddleware, moderatorOnly))
		r.Route("/scams/{id}/evidence", func(r chi.Router) {
			r.Post("/", evidenceHandler.Upload)
			r.Get("/", evidenceHandler.List)
		})
		r.Mount("/evidence", evidenceHandler.Routes(authMiddleware, moderatorOnly))
		r.Mount("/search", searchHandler.Routes(authMiddleware, moderatorOnly))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

// screenerAdapter bridges the screening pipeline to the report handler
type screenerAdapter struct {
	pipeline *screening.Pipeline
}

func (a *screenerAdapter) Run(ctx context.Context, reportID uuid.UUID) report.ScreenResult {
	res := a.pipeline.Run(ctx, reportID)
	return report.ScreenResult{Success: res.Success, Message: res.Message}
}

func (a *screenerAdapter) RunPartnerCheck(ctx context.Context, reportID uuid.UUID) report.ScreenResult {
	res := a.pipeline.RunPartnerCheck(ctx, reportID)
	return report.ScreenResult{Success: res.Success, Message: res.Message}
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
