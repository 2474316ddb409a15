// Package httpd provides the base HTTP server, CLI flags, middleware, and
// response helpers for the twindial server binary.
package httpd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Config holds the server configuration, parsed from CLI flags.
type Config struct {
	Port        int
	AccountSID  string
	AuthToken   string
	FixtureFile string
	CallbackURL string
	Verbose     bool
	Name        string // server name for logging
}

// ParseFlags parses CLI flags and returns a Config.
func ParseFlags(name string) *Config {
	cfg := &Config{Name: name}
	flag.IntVar(&cfg.Port, "port", 0, "HTTP listen port (default: $PORT)")
	flag.StringVar(&cfg.AccountSID, "account-sid", "", "Account SID echoed in responses")
	flag.StringVar(&cfg.AuthToken, "auth-token", "", "Auth token used to sign status callbacks")
	flag.StringVar(&cfg.FixtureFile, "fixture", "", "Path to a YAML fixture for initial configuration")
	flag.StringVar(&cfg.CallbackURL, "callback-url", "", "URL to deliver status callbacks to")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable request/response logging")
	flag.Parse()

	if cfg.Port == 0 {
		if p := os.Getenv("PORT"); p != "" {
			fmt.Sscanf(p, "%d", &cfg.Port)
		}
	}

	return cfg
}

// Server wraps a chi router with common middleware and lifecycle management.
type Server struct {
	Config *Config
	Router *chi.Mux
	Logger *slog.Logger
	ReqLog *RequestLog
}

// New creates a Server with the given config.
func New(cfg *Config) *Server {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	reqLog := NewRequestLog(defaultRequestLogSize)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(LogRequests(logger, reqLog))

	return &Server{
		Config: cfg,
		Router: r,
		Logger: logger,
		ReqLog: reqLog,
	}
}

// Serve starts the HTTP server and blocks until a shutdown signal.
func (s *Server) Serve() error {
	addr := fmt.Sprintf(":%d", s.Config.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.Logger.Info("starting server", "name", s.Config.Name, "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-done
	s.Logger.Info("shutting down", "name", s.Config.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// ServeHTTP implements http.Handler so the server can be mounted directly in
// tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// Error writes a generic JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]any{
		"error": map[string]any{
			"message": message,
			"type":    http.StatusText(status),
			"code":    status,
		},
	})
}

// TwilioError writes an error response in the provider's error format.
func TwilioError(w http.ResponseWriter, status, code int, message string) {
	JSON(w, status, map[string]any{
		"code":      code,
		"message":   message,
		"more_info": fmt.Sprintf("https://www.twilio.com/docs/errors/%d", code),
		"status":    status,
	})
}
