package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	database "github.com/wavdex/backend/db"
	"github.com/wavdex/backend/internal/artist"
	"github.com/wavdex/backend/internal/auth"
	"github.com/wavdex/backend/internal/config"
	"github.com/wavdex/backend/internal/investment"
	"github.com/wavdex/backend/internal/marketdata"
	"github.com/wavdex/backend/internal/user"
	"github.com/wavdex/backend/internal/valuation"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router            *http.ServeMux
	authHandler       *auth.Handler
	authService       auth.Service
	userHandler       *user.Handler
	artistHandler     *artist.Handler
	investmentHandler *investment.Handler
	engine            *valuation.Engine
}

func NewServer(
	authHandler *auth.Handler,
	authService auth.Service,
	userHandler *user.Handler,
	artistHandler *artist.Handler,
	investmentHandler *investment.Handler,
	engine *valuation.Engine,
) *Server {
	return &Server{
		router:            http.NewServeMux(),
		authHandler:       authHandler,
		authService:       authService,
		userHandler:       userHandler,
		artistHandler:     artistHandler,
		investmentHandler: investmentHandler,
		engine:            engine,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// handleRunValuation lets an operator trigger a valuation pass without
// waiting for the cron schedule. The engine skips the trigger when a pass is
// already running.
func (s *Server) handleRunValuation(w http.ResponseWriter, _ *http.Request) {
	go s.engine.RunPass(context.Background())
	respondJSON(w, http.StatusAccepted, map[string]string{
		"status":  "success",
		"message": "Valuation pass triggered.",
	})
}

func (s *Server) RegisterRoutes() {
	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("GET /api/artists", http.HandlerFunc(s.artistHandler.ListArtists))
	publicRoutes.Handle("GET /api/artists/{artistID}", http.HandlerFunc(s.artistHandler.GetArtist))
	publicRoutes.Handle("POST /api/artists", http.HandlerFunc(s.artistHandler.CreateArtist))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()
	protectedRoutes.Handle("GET /api/protected/profile",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.userHandler.HandleGetUserProfile)))

	protectedRoutes.Handle("GET /api/protected/investments",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.investmentHandler.ListInvestments)))

	protectedRoutes.Handle("POST /api/protected/investments",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.investmentHandler.CreateInvestment)))

	protectedRoutes.Handle("DELETE /api/protected/investments/{investmentID}",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.investmentHandler.DeleteInvestment)))

	protectedRoutes.Handle("POST /api/protected/valuation/run",
		s.authService.JWTAccessTokenMiddleware()(http.HandlerFunc(s.handleRunValuation)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func checkConfiguration(cfg *config.Config) error {
	if cfg.JWTSecret == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	if cfg.DBConnectionString == "" {
		return errors.New("no DB_CONNECTION_STRING Provided")
	}
	if cfg.SpotifyClientID == "" || cfg.SpotifySecret == "" {
		return errors.New("no Spotify credentials Provided")
	}
	if cfg.YouTubeAPIKey == "" {
		return errors.New("no YOUTUBE_API_KEY Provided")
	}
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}
	if err := checkConfiguration(cfg); err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	dbService, err := database.NewDBService(cfg.DBConnectionString)
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	spotifyClient := marketdata.NewSpotifyClient(cfg.SpotifyClientID, cfg.SpotifySecret)
	youtubeClient := marketdata.NewYouTubeClient(cfg.YouTubeAPIKey)
	signalFetcher := marketdata.NewArtistSignalFetcher(spotifyClient, youtubeClient, cfg.ProviderTimeout)

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(userService, respondJSON, respondError)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret)
	authService := auth.NewAuthService(userService, jwtManager)
	authHandler := auth.NewHandler(authService, respondJSON, respondError)

	artistRepo := artist.NewArtistRepository(dbService.DB)
	artistService := artist.NewArtistService(artistRepo, signalFetcher)
	artistHandler := artist.NewArtistHandler(artistService, respondJSON, respondError)

	investmentRepo := investment.NewInvestmentRepository(dbService.DB)
	investmentService := investment.NewInvestmentService(investmentRepo, artistService)
	investmentHandler := investment.NewInvestmentHandler(investmentService, respondJSON, respondError)

	engine := valuation.NewEngine(artistService, signalFetcher)

	server := NewServer(authHandler, authService, userHandler, artistHandler, investmentHandler, engine)
	server.RegisterRoutes()

	err = StartValuationScheduler(engine, cfg.ValuationCron)
	if err != nil {
		log.Fatalf("Scheduler didn't start, stoping the app ...")
	}

	handler := loggingMiddleware(http.HandlerFunc(server.router.ServeHTTP))
	log.Printf("Server starting on %s...", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// StartValuationScheduler runs the valuation pass on the configured
// schedule. RunPass carries its own catch-all, a failing pass never needs
// handling here.
func StartValuationScheduler(engine *valuation.Engine, cronSpec string) error {
	c := cron.New()
	_, err := c.AddFunc(cronSpec, func() {
		engine.RunPass(context.Background())
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}
