// internal/router/router.go
package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/packscan/packscan-backend/internal/config"
	"github.com/packscan/packscan-backend/internal/extraction"
	"github.com/packscan/packscan-backend/internal/handlers"
	"github.com/packscan/packscan-backend/internal/middleware"
	"github.com/packscan/packscan-backend/internal/repository"
	"github.com/packscan/packscan-backend/internal/services"
	"github.com/packscan/packscan-backend/internal/utils"
)

const version = "1.0.0"

// Services is the wired use-case layer behind the HTTP API.
type Services struct {
	Auth      *services.AuthService
	Audit     *services.AuditService
	Settings  *services.SettingsService
	Lists     *services.ListService
	Entries   *services.EntryService
	Reviews   *services.ReviewService
	Analytics *services.AnalyticsService
	Export    *services.ExportService
}

// NewServices wires the services over db. oracle may be nil, in which case the Gemini
// client is built from configuration.
func NewServices(db *gorm.DB, cfg *config.Config, oracle extraction.Oracle) (*Services, error) {
	repo := repository.NewGormRepository(db)

	storage, err := services.NewStorageService(cfg.AWS)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if oracle == nil {
		oracle = extraction.NewGeminiClient(extraction.Config{
			APIKey:         cfg.Gemini.APIKey,
			BaseURL:        cfg.Gemini.BaseURL,
			Model:          cfg.Gemini.Model,
			TimeoutSeconds: cfg.Gemini.TimeoutSeconds,
		}, extraction.WithRetry(cfg.Gemini.MaxAttempts, time.Second, 10*time.Second))
	}

	audit := services.NewAuditService(db)
	settings := services.NewSettingsService(repo, cfg.Inspection, audit)
	notifications := services.NewNotificationService(cfg.Email)

	return &Services{
		Auth:      services.NewAuthService(db, cfg.JWT),
		Audit:     audit,
		Settings:  settings,
		Lists:     services.NewListService(repo, settings, storage, notifications, audit),
		Entries:   services.NewEntryService(repo, oracle, settings, storage, audit),
		Reviews:   services.NewReviewService(repo, audit, cfg.Inspection.ReviewConcurrency),
		Analytics: services.NewAnalyticsService(repo, cfg.Inspection.DefaultRankingSize),
		Export:    services.NewExportService(repo),
	}, nil
}

// Initialize builds the engine with the production wiring. Rate limiter state is swept
// until ctx is done.
func Initialize(ctx context.Context, db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	svc, err := NewServices(db, cfg, nil)
	if err != nil {
		return nil, err
	}
	return Setup(ctx, cfg, svc), nil
}

func Setup(ctx context.Context, cfg *config.Config, svc *Services) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Auth)
	listHandler := handlers.NewListHandler(svc.Lists)
	entryHandler := handlers.NewEntryHandler(svc.Entries)
	reviewHandler := handlers.NewReviewHandler(svc.Reviews)
	settingsHandler := handlers.NewSettingsHandler(svc.Settings, svc.Audit)
	analyticsHandler := handlers.NewAnalyticsHandler(svc.Analytics, svc.Export)

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	generalLimiter := middleware.NewGeneralLimiter(cfg.RateLimit)
	extractionLimiter := middleware.NewExtractionLimiter(cfg.RateLimit)
	go generalLimiter.Cleanup(ctx.Done())
	go extractionLimiter.Cleanup(ctx.Done())

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg.Frontend.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(generalLimiter.Middleware())
	r.Use(middleware.AuditLogMiddleware(svc.Audit))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
		})
	})

	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		protected := v1.Group("")
		protected.Use(middleware.AuthRequired())
		{
			lists := protected.Group("/lists")
			{
				lists.GET("", listHandler.GetLists)
				lists.POST("", listHandler.CreateList)
				lists.GET("/:id", listHandler.GetList)
				lists.DELETE("/:id", listHandler.DeleteList)
				lists.POST("/:id/submit", listHandler.SubmitList)
				lists.POST("/:id/entries", extractionLimiter.Middleware(), entryHandler.ProcessPhotos)
			}

			entries := protected.Group("/entries")
			{
				entries.PUT("/:id", entryHandler.UpdateEntry)
				entries.DELETE("/:id", entryHandler.DeleteEntry)
				entries.PUT("/:id/review", reviewHandler.ReviewEntry)
			}

			protected.GET("/analytics", analyticsHandler.GetReport)
			protected.GET("/export.csv", analyticsHandler.ExportCSV)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminRequired())
			{
				admin.POST("/review/bulk", reviewHandler.BulkReview)
				admin.POST("/review/approve-pending", reviewHandler.ApprovePending)
				admin.GET("/settings", settingsHandler.GetSettings)
				admin.PUT("/settings", settingsHandler.UpdateSettings)
				admin.GET("/audit-logs", settingsHandler.GetAuditLogs)
			}
		}
	}

	return r
}
