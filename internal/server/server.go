package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/careerconnect/internal/config"
	"github.com/jonathan/careerconnect/internal/db"
	"github.com/jonathan/careerconnect/internal/embedding"
	"github.com/jonathan/careerconnect/internal/fetch"
	"github.com/jonathan/careerconnect/internal/harvest"
	"github.com/jonathan/careerconnect/internal/llm"
	"github.com/jonathan/careerconnect/internal/matching"
	"github.com/jonathan/careerconnect/internal/pool"
	"github.com/jonathan/careerconnect/internal/profile"
	"github.com/jonathan/careerconnect/internal/server/middleware"
	"github.com/jonathan/careerconnect/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	recommender Recommender
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	authHandler *AuthHandler
	log         *zap.Logger
	closers     []func()
}

// New creates a server wired to a database and the recommendation engine.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:  database,
		log: log,
	}

	engine, err := s.buildEngine(ctx, cfg)
	if err != nil {
		database.Close()
		return nil, err
	}
	s.recommender = engine

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.DefaultConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(NewUserService(database, passwordConfig), s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.PortOrDefault()),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // recommendation requests fan out to providers
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// buildEngine assembles the recommendation engine from configured
// credentials. Providers without credentials are simply absent and the
// matching signals they back degrade per the scoring rules.
func (s *Server) buildEngine(ctx context.Context, cfg *config.Config) (*matching.Engine, error) {
	var providers []embedding.Provider
	if cfg.GeminiAPIKey != "" {
		gemini, err := embedding.NewGeminiProvider(ctx, cfg.GeminiAPIKey, embedding.DefaultGeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini embedding provider: %w", err)
		}
		providers = append(providers, gemini)
		s.closers = append(s.closers, func() { _ = gemini.Close() })
	}
	if cfg.OpenAIAPIKey != "" {
		openai, err := embedding.NewOpenAIProvider(cfg.OpenAIAPIKey, embedding.DefaultOpenAIModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai embedding provider: %w", err)
		}
		providers = append(providers, openai)
	}

	var embedder matching.Embedder
	if len(providers) > 0 {
		chain, err := embedding.NewChain(s.log, providers...)
		if err != nil {
			return nil, err
		}
		embedder = embedding.NewCache(chain, embedding.DefaultCacheTTL, embedding.DefaultCacheSize)
	} else {
		s.log.Warn("no embedding credentials configured, semantic matching disabled")
	}

	var extractor profile.Extractor
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, llm.DefaultModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		s.closers = append(s.closers, func() { _ = client.Close() })

		extractor, err = llm.NewResumeExtractor(client, s.log)
		if err != nil {
			return nil, err
		}
	} else {
		s.log.Warn("no gemini credentials configured, structured resume extraction disabled")
	}

	linkedInOpts := []harvest.LinkedInOption{}
	if cfg.UseBrowser {
		linkedInOpts = append(linkedInOpts, harvest.WithBrowserFallback())
	}
	harvesters := []harvest.Harvester{harvest.NewLinkedIn(s.log, linkedInOpts...)}

	aggregator := pool.NewAggregator(s.db, harvesters, s.log, pool.WithDefaultLocation(cfg.DefaultLocation))
	builder := profile.NewBuilder(extractor, s.log)

	opts := &matching.Options{Concurrency: cfg.Concurrency}
	return matching.NewEngine(s.db, aggregator, fetch.NewResumeSource(), builder, embedder, s.log, opts), nil
}

// routes builds the handler chain.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /health", s.handleHealth)

	auth := middleware.Auth(s.jwtService.AsTokenValidator())
	mux.Handle("GET /api/recommendations", auth(http.HandlerFunc(s.handleRecommendations)))

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.log.Info("server stopped")
	return nil
}

// Close releases the database, provider clients, and the rate limiter.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	for _, closeFn := range s.closers {
		closeFn()
	}
	if s.db != nil {
		s.db.Close()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}

// extractClientID extracts the client identifier from the request. Uses
// the IP from RemoteAddr; a trusted-proxy X-Forwarded-For scheme could
// replace this behind a load balancer.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}
	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"error":    "rate_limit_exceeded",
		"message":  "Rate limit exceeded. Please try again later.",
		"limit":    info.Limit,
		"reset_at": info.ResetTime.Format(time.RFC3339),
	})
}
