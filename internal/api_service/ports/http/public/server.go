package public

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/langowen/converter/deploy/config"
	mwLogger "github.com/langowen/converter/internal/api_service/ports/http/public/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	Server  *http.Server
	cfg     *config.Config
	service Service
}

func NewServer(server *http.Server, cfg *config.Config, service Service) *Server {
	return &Server{
		Server:  server,
		cfg:     cfg,
		service: service,
	}
}

// NewRouter wires the public routes for service.
func NewRouter(service Service, cfg *config.Config) http.Handler {
	server := NewServer(nil, cfg, service)

	return server.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mwLogger.New())
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", s.Index)

	r.Route("/api", func(r chi.Router) {
		r.Get("/currencies", s.GetCurrencies)
		r.Get("/rates", s.GetRates)
		r.Get("/convert", s.GetConversion)
		r.Get("/session", s.GetSession)
		r.Put("/session", s.PutSession)
	})

	return r
}

func StartServer(ctx context.Context, service Service, cfg *config.Config) <-chan struct{} {
	server := NewServer(nil, cfg, service)

	server.Server = &http.Server{
		Addr:         ":" + cfg.HTTPServer.Port,
		Handler:      server.routes(),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	doneChan := make(chan struct{})

	go func() {
		if err := server.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Http server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to stop server", "error", err)
		}

		close(doneChan)
	}()

	return doneChan
}

func RespondWithJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func RespondWithError(w http.ResponseWriter, code int, message string, details ...string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)

	errorText := message
	if len(details) > 0 {
		errorText += "\nDetails: " + details[0]
	}

	if _, err := w.Write([]byte(errorText)); err != nil {
		slog.Error("Failed to write error response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
