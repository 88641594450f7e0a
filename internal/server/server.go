// Package server provides the HTTP API for QuoteDeck.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/quotedeck/quotedeck/internal/auth"
	"github.com/quotedeck/quotedeck/internal/config"
	"github.com/quotedeck/quotedeck/internal/export"
	"github.com/quotedeck/quotedeck/internal/quote"
	"github.com/quotedeck/quotedeck/internal/store"
	"github.com/quotedeck/quotedeck/internal/transcribe"
	"github.com/quotedeck/quotedeck/internal/transcript"
)

// Server is the HTTP server for the QuoteDeck API.
type Server struct {
	store       *store.Store
	resolver    *auth.Resolver
	transcripts *transcript.Service
	quotes      *quote.Service
	exports     *export.Service
	simulator   *transcribe.Simulator
	config      *config.ServerConfig
	logger      *zap.Logger
	validate    *validator.Validate
	server      *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	st *store.Store,
	resolver *auth.Resolver,
	transcripts *transcript.Service,
	quotes *quote.Service,
	exports *export.Service,
	simulator *transcribe.Simulator,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		store:       st,
		resolver:    resolver,
		transcripts: transcripts,
		quotes:      quotes,
		exports:     exports,
		simulator:   simulator,
		config:      cfg,
		logger:      logger,
		validate:    validator.New(),
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/", s.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Get("/me", s.handleMe)
	})

	r.Route("/api/uploads", func(r chi.Router) {
		r.Post("/", s.handleUpload)
		r.Get("/", s.handleListAssets)
		r.Get("/{assetID}", s.handleGetAsset)
		r.Get("/{assetID}/status", s.handleUploadStatus)
	})

	r.Route("/api/transcripts", func(r chi.Router) {
		r.Post("/", s.handleCreateTranscript)
		r.Get("/", s.handleListTranscripts)
		r.Get("/{transcriptID}", s.handleGetTranscript)
		r.Put("/{transcriptID}", s.handleUpdateTranscript)
		r.Get("/{transcriptID}/versions", s.handleTranscriptVersions)
		r.Get("/{transcriptID}/audit", s.handleTranscriptAudit)
		r.Post("/{transcriptID}/segments", s.handleAppendSegment)
	})

	r.Route("/api/quotes", func(r chi.Router) {
		r.Post("/", s.handleCreateQuote)
		r.Post("/extract", s.handleExtractQuotes)
		r.Get("/", s.handleListQuotes)
		r.Get("/{quoteID}", s.handleGetQuote)
		r.Patch("/{quoteID}", s.handleUpdateQuote)
		r.Delete("/{quoteID}", s.handleDeleteQuote)
	})

	r.Route("/api/exports", func(r chi.Router) {
		r.Post("/", s.handleCreateExport)
		r.Get("/", s.handleListExports)
		r.Get("/{exportID}", s.handleGetExport)
	})

	r.Get("/api/status", s.handleServiceStatus)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "Healthy"})
}
