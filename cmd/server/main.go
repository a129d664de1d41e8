package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordarena/internal/config"
	"wordarena/internal/database"
	"wordarena/internal/handlers"
	"wordarena/internal/models"
	"wordarena/internal/repository"
	"wordarena/internal/security"
	"wordarena/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	wordRepo := repository.NewWordRepository(db)
	gameRepo := repository.NewGameRepository(db)
	reportRepo := repository.NewReportRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Seed the default word pool on first run
	if added, err := wordRepo.SeedDefaultWords(); err != nil {
		log.Printf("Warning: Failed to seed word pool: %v", err)
	} else if added > 0 {
		log.Printf("Seeded word pool with %d default words", added)
	}

	// Initialize services
	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.SessionDuration)
	csrfTokens := security.NewCSRFTokenStore(cfg.SessionDuration)
	authService := service.NewAuthService(userRepo, tokens, settingsRepo, cfg.SessionDuration)

	wordSource := service.NewRandomWordSource(wordRepo, rand.New(rand.NewSource(time.Now().UnixNano())))
	sessionService := service.NewSessionService(gameRepo, wordSource)
	guessService := service.NewGuessService(sessionService, gameRepo)
	reportService := service.NewReportService(reportRepo, userRepo)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	oauthProviders := map[string]handlers.OAuthProvider{
		"google": handlers.GoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret),
	}

	// Initialize handlers
	loginLimiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(authService, csrfTokens, loginLimiter)
	authHandler := handlers.NewAuthHandler(authService, csrfTokens, oauthProviders, cfg.OAuthRedirectBaseURL)
	gameHandler := handlers.NewGameHandler(sessionService, guessService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/logout", authHandler.Logout)
	mux.HandleFunc("GET /auth/{provider}/start", middleware.RateLimit(authHandler.StartOAuth))
	mux.HandleFunc("GET /auth/{provider}/callback", middleware.RateLimit(authHandler.OAuthCallback))

	// Authenticated routes
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("POST /api/session/new", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.StartSession)))
	mux.HandleFunc("POST /api/guess", middleware.RequireAuth(middleware.CSRFProtect(gameHandler.SubmitGuess)))

	// Report routes
	mux.HandleFunc("GET /api/report/today", middleware.RequireAdmin(reportHandler.DailySummary))
	mux.HandleFunc("GET /api/report/me", middleware.RequireAuth(reportHandler.MyHistory))
	mux.HandleFunc("GET /api/report/user/{username}", middleware.RequireAuth(reportHandler.UserHistory))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background workers
	go cleanupExpiredSessions(authService)
	go sendDailySummaries(reportRepo, emailService, cfg.ReportToEmail)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupExpiredSessions periodically removes expired cookie sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired sessions cleaned up")
		}
	}
}

// sendDailySummaries mails the previous day's statistics shortly after
// midnight. Disabled unless both SES and a recipient are configured.
func sendDailySummaries(reportRepo *repository.ReportRepository, emailService *service.EmailService, toEmail string) {
	if !emailService.IsEnabled() || toEmail == "" {
		return
	}

	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 0, 5, 0, 0, now.Location()).AddDate(0, 0, 1)
		time.Sleep(time.Until(next))

		yesterday := models.DayKey(time.Now().AddDate(0, 0, -1))
		summary, err := reportRepo.DailySummary(yesterday)
		if err != nil {
			log.Printf("Error building daily summary: %v", err)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := emailService.SendDailySummaryEmail(ctx, toEmail, summary); err != nil {
			log.Printf("Error sending daily summary email: %v", err)
		}
		cancel()
	}
}
