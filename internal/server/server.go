package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/internship-matcher/internal/catalog"
	"github.com/jonathan/internship-matcher/internal/config"
	"github.com/jonathan/internship-matcher/internal/db"
	"github.com/jonathan/internship-matcher/internal/modelstore"
	"github.com/jonathan/internship-matcher/internal/pipeline"
	"github.com/jonathan/internship-matcher/internal/server/middleware"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	matcher     Matcher
	matchStore  MatchStore
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	log         zerolog.Logger
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	Catalog     string
	ModelDir    string
	TopN        int
	Clusters    int
	Log         zerolog.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(context.Background()); err != nil {
		database.Close()
		return nil, err
	}

	s := &Server{
		db:         database,
		matchStore: database,
		log:        cfg.Log,
	}

	s.matcher = pipeline.New(pipeline.Options{
		Postings: &catalog.FileSource{Path: cfg.Catalog, Log: cfg.Log},
		Models:   modelstore.New(cfg.ModelDir, cfg.Log),
		Saver:    database,
		TopN:     cfg.TopN,
		Clusters: cfg.Clusters,
		Log:      cfg.Log,
	})

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.HandleRegister)
	mux.HandleFunc("POST /auth/login", s.authHandler.HandleLogin)

	authed := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	mux.Handle("POST /matches/run", authed(http.HandlerFunc(s.handleRunMatch)))
	mux.Handle("GET /matches", authed(http.HandlerFunc(s.handleMatches)))
	mux.Handle("GET /resumes", authed(http.HandlerFunc(s.handleResumes)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}

	return s, nil
}

// Start runs the server until an interrupt or terminate signal arrives, then
// shuts down gracefully.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		s.db.Close()
		return fmt.Errorf("server failed: %w", err)
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.db.Close()
	if err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	s.log.Info().Msg("server stopped")
	return nil
}
