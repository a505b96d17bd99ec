package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sitecms/internal/auth"
	"sitecms/internal/config"
	"sitecms/internal/database"
	"sitecms/internal/database/migration"
	"sitecms/internal/email"
	handlers "sitecms/internal/http/handler"
	"sitecms/internal/http/middleware"
	"sitecms/internal/media"
	"sitecms/internal/otel"
	"sitecms/internal/repository/postgres"
	"sitecms/internal/service"
	"sitecms/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	// Tracing (no-op exporter setup unless OTLP endpoint env vars are present)
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// File storage: local disk by default, MinIO as a deployment option.
	var store storage.Storage
	switch cfg.Storage.Driver {
	case "minio":
		store, err = storage.NewMinIO(cfg.MinIO)
	default:
		store, err = storage.NewLocal(cfg.Storage.LocalRoot, media.Dirs()...)
	}
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}

	// Media pipeline and URL resolution
	pipeline := media.NewPipeline(store, media.ImagePolicy(), cfg.Media.WebPQuality)
	retention := media.NewRetention(store)
	env := media.EnvDevelopment
	if cfg.IsProduction() {
		env = media.EnvProduction
	}
	resolver := media.NewResolver(env, cfg.APIBaseURL)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMin)*time.Minute)
	mailer := email.NewMailer(cfg.SMTP)

	// Repositories and services
	svcs := handlers.Services{
		DB:       db,
		Tokens:   tokens,
		Resolver: resolver,
		Auth:     service.NewAuthService(postgres.NewUserPostgres(db), tokens, mailer, cfg.PortalBaseURL),
		Team:     service.NewTeamService(postgres.NewTeamPostgres(db), pipeline, retention),
		Testimonial: service.NewTestimonialService(
			postgres.NewTestimonialPostgres(db), pipeline, retention),
		Offering: service.NewOfferingService(postgres.NewServicePostgres(db), pipeline, retention),
		Project:  service.NewProjectService(postgres.NewProjectPostgres(db), pipeline, retention),
		Gallery:  service.NewGalleryService(postgres.NewGalleryPostgres(db), pipeline, retention),
		Blog:     service.NewBlogService(postgres.NewBlogPostgres(db), pipeline, retention),
		Submission: service.NewSubmissionService(
			postgres.NewContactPostgres(db), postgres.NewQuotePostgres(db), mailer),
		Dashboard: service.NewDashboardService(postgres.NewDashboardPostgres(db)),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    64 << 20,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	httpMetrics, err := middleware.NewHTTPMetrics(registry)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}
	app.Use(httpMetrics.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Serve uploaded files directly when backed by the local disk.
	if root, ok := storage.LocalRoot(store); ok {
		app.Static("/uploads", root)
	}

	handlers.RegisterRoutes(app, svcs)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
