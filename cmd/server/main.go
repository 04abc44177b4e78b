package main

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"langlab/internal/config"
	"langlab/internal/content"
	"langlab/internal/handlers"
	"langlab/internal/security"
	"langlab/internal/service"
	"langlab/internal/session"
	"langlab/internal/speech"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Curriculum content and the speech client
	store := content.NewStore(nil)
	azure := speech.NewAzureClient(cfg.AzureSpeechKey, cfg.AzureSpeechRegion, cfg.SpeechVoice)

	log.Printf("Speech client configured (region: %s, voice: %s)", cfg.AzureSpeechRegion, cfg.SpeechVoice)

	// Initialize session manager and services
	sessions := session.NewManager(store.PickVocabItem, nil, cfg.SessionIdle)
	practiceService := service.NewPracticeService(store, azure, sessions)

	// Initialize handlers
	attemptLimiter := security.NewRateLimiter(cfg.AttemptRateLimit, time.Minute)
	middleware := handlers.NewMiddleware(cfg.SessionSecret, cfg.SessionIdle, attemptLimiter)
	practiceHandler := handlers.NewPracticeHandler(practiceService, store, templates)
	quizHandler := handlers.NewQuizHandler(practiceService)
	exportHandler := handlers.NewExportHandler(practiceService)

	// Setup routes
	mux := http.NewServeMux()

	// Page
	mux.HandleFunc("GET /", middleware.EnsureSession(practiceHandler.Home))

	// Lesson routes
	mux.HandleFunc("GET /api/curriculum", middleware.EnsureSession(practiceHandler.Curriculum))
	mux.HandleFunc("GET /api/state", middleware.EnsureSession(practiceHandler.State))
	mux.HandleFunc("POST /api/lesson/select", middleware.EnsureSession(practiceHandler.SelectLesson))
	mux.HandleFunc("GET /api/lesson/audio", middleware.EnsureSession(middleware.RateLimit(practiceHandler.LessonAudio)))

	// Attempt and progress routes
	mux.HandleFunc("POST /api/attempt", middleware.EnsureSession(middleware.RateLimit(practiceHandler.SubmitAttempt)))
	mux.HandleFunc("POST /api/goal", middleware.EnsureSession(practiceHandler.SetGoal))
	mux.HandleFunc("POST /api/reset", middleware.EnsureSession(practiceHandler.Reset))

	// Vocabulary quiz routes
	mux.HandleFunc("GET /api/quiz", middleware.EnsureSession(quizHandler.Active))
	mux.HandleFunc("POST /api/quiz/answer", middleware.EnsureSession(quizHandler.Check))
	mux.HandleFunc("POST /api/quiz/new", middleware.EnsureSession(quizHandler.New))

	// Export routes
	mux.HandleFunc("GET /export/history.csv", middleware.EnsureSession(exportHandler.HistoryCSV))
	mux.HandleFunc("GET /export/history.xlsx", middleware.EnsureSession(exportHandler.HistoryXLSX))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

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

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	pattern := filepath.Join(templatesPath, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no templates found in %s", templatesPath)
	}

	// Define template functions
	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"formatTime": func(t time.Time) string {
			return t.Format("15:04")
		},
		"printfPct": func(v int) string {
			return fmt.Sprintf("%d%%", v)
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFiles(matches...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return tmpl, nil
}
