package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"google.golang.org/api/option"

	"github.com/dvloznov/monarch/internal/api/handlers"
	"github.com/dvloznov/monarch/internal/api/middleware"
	"github.com/dvloznov/monarch/internal/assistant"
	"github.com/dvloznov/monarch/internal/auth"
	"github.com/dvloznov/monarch/internal/config"
	"github.com/dvloznov/monarch/internal/logger"
	"github.com/dvloznov/monarch/internal/records"
	"github.com/dvloznov/monarch/internal/store"
)

func main() {
	cfg := config.Load()

	log := logger.NewWithLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("No Gemini API key configured - assistant replies with a configuration notice")
	}

	ctx := context.Background()

	// Select the storage backend
	var kv store.KV
	switch cfg.DataBackend {
	case config.BackendFile:
		fileKV, err := store.NewFileKV(cfg.DataDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Failed to open data directory")
		}
		kv = fileKV
	case config.BackendGCS:
		gcsKV, err := store.NewGCSKV(ctx, cfg.GCSBucket, cfg.GCSPrefix, gcsOptions(cfg)...)
		if err != nil {
			log.Fatal().Err(err).Str("bucket", cfg.GCSBucket).Msg("Failed to create GCS store")
		}
		defer gcsKV.Close()
		kv = gcsKV
	default:
		kv = store.NewMemoryKV()
	}
	st := store.New(kv, store.DefaultNamespace(), log)

	// Initialize services
	provider := auth.NewMemoryProvider()
	txService := records.NewTransactionService(ctx, st, log)
	budgetService := records.NewBudgetService(ctx, st, log)
	goalService := records.NewGoalService(ctx, st, log)
	profileService := records.NewProfileService(st, provider, log)
	themeService := records.NewThemeService(st, log)

	gateway := assistant.NewGateway(
		assistant.NewGeminiGenerator(cfg.GeminiAPIKey, cfg.GeminiModel), log)

	// Initialize handlers
	transactionsHandler := handlers.NewTransactionsHandler(txService, log)
	budgetsHandler := handlers.NewBudgetsHandler(budgetService, log)
	goalsHandler := handlers.NewGoalsHandler(goalService, log)
	summaryHandler := handlers.NewSummaryHandler(txService, budgetService, goalService, log)
	profileHandler := handlers.NewProfileHandler(profileService, themeService, log)
	chatHandler := handlers.NewChatHandler(gateway, txService, budgetService, goalService, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.ListTransactions(w, r)
		case http.MethodPost:
			transactionsHandler.CreateTransaction(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		id, ok := recordID(w, r.URL.Path, "/api/transactions/")
		if !ok {
			return
		}
		switch r.Method {
		case http.MethodPut:
			transactionsHandler.UpdateTransaction(w, r, id)
		case http.MethodDelete:
			transactionsHandler.DeleteTransaction(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/budgets", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			budgetsHandler.ListBudgets(w, r)
		case http.MethodPost:
			budgetsHandler.CreateBudget(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/budgets/", func(w http.ResponseWriter, r *http.Request) {
		id, ok := recordID(w, r.URL.Path, "/api/budgets/")
		if !ok {
			return
		}
		switch r.Method {
		case http.MethodPut:
			budgetsHandler.UpdateBudget(w, r, id)
		case http.MethodDelete:
			budgetsHandler.DeleteBudget(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/goals", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			goalsHandler.ListGoals(w, r)
		case http.MethodPost:
			goalsHandler.CreateGoal(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/goals/", func(w http.ResponseWriter, r *http.Request) {
		id, ok := recordID(w, r.URL.Path, "/api/goals/")
		if !ok {
			return
		}
		switch r.Method {
		case http.MethodPut:
			goalsHandler.UpdateGoal(w, r, id)
		case http.MethodDelete:
			goalsHandler.DeleteGoal(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/summary", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			summaryHandler.GetSummary(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/profile", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			profileHandler.GetProfile(w, r)
		case http.MethodPut:
			profileHandler.UpdateProfile(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/theme", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			profileHandler.GetTheme(w, r)
		case http.MethodPut:
			profileHandler.UpdateTheme(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			chatHandler.Chat(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.DataBackend).Msg("Starting dashboard server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// gcsOptions translates the optional endpoint override (e.g. a local
// emulator) into storage client options.
func gcsOptions(cfg *config.Config) []option.ClientOption {
	if cfg.GCSEndpoint == "" {
		return nil
	}
	return []option.ClientOption{option.WithEndpoint(cfg.GCSEndpoint)}
}

// recordID extracts the numeric record id from the request path.
func recordID(w http.ResponseWriter, path, prefix string) (int, bool) {
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Record ID is required")
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Record ID must be a number")
		return 0, false
	}
	return id, true
}
