package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/fdg312/fitcoach/internal/ai"
	"github.com/fdg312/fitcoach/internal/auth"
	"github.com/fdg312/fitcoach/internal/blob"
	"github.com/fdg312/fitcoach/internal/config"
	"github.com/fdg312/fitcoach/internal/conversation"
	"github.com/fdg312/fitcoach/internal/plangen"
	"github.com/fdg312/fitcoach/internal/plans"
	"github.com/fdg312/fitcoach/internal/reports"
	"github.com/fdg312/fitcoach/internal/storage"
	"github.com/fdg312/fitcoach/internal/storage/memory"
	"github.com/fdg312/fitcoach/internal/storage/postgres"
)

// Server представляет HTTP сервер
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	storage        storage.Storage
	authMiddleware *auth.Middleware
}

// New создаёт новый HTTP сервер
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	// Инициализируем storage
	s.initStorage()

	// Регистрируем маршруты
	s.routes()
	return s
}

// initStorage инициализирует storage (Memory или Postgres)
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("Используется in-memory storage")
		s.storage = memory.New()
	} else {
		log.Println("Подключение к PostgreSQL...")
		ctx := context.Background()
		pgStorage, err := postgres.New(ctx, s.config.DatabaseURL)
		if err != nil {
			log.Printf("Ошибка подключения к PostgreSQL: %v", err)
			log.Println("Fallback на in-memory storage")
			s.storage = memory.New()
		} else {
			log.Println("PostgreSQL подключен успешно")
			s.storage = pgStorage
		}
	}
}

// routes регистрирует все HTTP маршруты
func (s *Server) routes() {
	// Health check
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Auth (dev-режим)
	authService := auth.NewService(s.config)
	authHandlers := auth.NewHandlers(authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)
	s.mux.HandleFunc("POST /v1/auth/dev", authHandlers.HandleDevAuth)

	aiProvider := ai.NewProvider(s.config)
	generator := plangen.New()

	// Chat: интервью для сбора профиля
	conversationService := conversation.NewService(s.storage, aiProvider, generator, s.config.ChatHistoryLimit)
	conversationHandler := conversation.NewHandler(conversationService)
	s.mux.HandleFunc("POST /v1/chat/start", conversationHandler.HandleStart)
	s.mux.HandleFunc("POST /v1/chat/message", conversationHandler.HandleMessage)
	s.mux.HandleFunc("GET /v1/chat/sessions/{id}", conversationHandler.HandleGetSession)
	s.mux.HandleFunc("GET /v1/chat/sessions/{id}/messages", conversationHandler.HandleListMessages)

	// Users & plans: создание профиля одним запросом, без диалога
	plansService := plans.NewService(s.storage, aiProvider, generator)
	plansHandler := plans.NewHandler(plansService)
	s.mux.HandleFunc("POST /v1/users", plansHandler.HandleCreateUser)
	s.mux.HandleFunc("GET /v1/users/{id}", plansHandler.HandleGetUser)
	s.mux.HandleFunc("GET /v1/users/{id}/plan", plansHandler.HandleGetPlan)

	// Reports: экспорт плана в PDF/CSV
	reportsService := reports.NewService(s.storage, s.initReportsBlobStore(), s.config.Blob.S3.PresignTTLSeconds)
	reportsHandler := reports.NewHandler(reportsService)
	s.mux.HandleFunc("GET /v1/users/{id}/plan/report", reportsHandler.HandlePlanReport)
}

// initReportsBlobStore выбирает blob store для экспорта отчётов.
// При mode=local возвращает nil — отчёты отдаются inline в ответе.
func (s *Server) initReportsBlobStore() blob.Store {
	blobCfg := s.config.Blob
	blobCfg.Mode = blobCfg.EffectiveReportsMode()

	store, mode, err := blob.NewBlobStore(blobCfg, log.Default())
	if err != nil {
		log.Printf("WARNING: reports blob store init failed, falling back to inline delivery: %v", err)
		return nil
	}
	log.Printf("Reports delivery mode: %s", mode)
	return store
}

// handleHealthz обрабатывает GET /healthz
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Start запускает HTTP сервер
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("Сервер запущен на %s", addr)
	log.Printf("Health check: http://localhost%s/healthz", addr)

	var handler http.Handler = s.mux
	handler = s.authMiddleware.RequireAuth(handler)
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)

	return http.ListenAndServe(addr, handler)
}

// Close закрывает соединения сервера
func (s *Server) Close() {
	if s.storage != nil {
		s.storage.Close()
	}
}
