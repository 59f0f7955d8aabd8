// Package health runs a minimal HTTP responder so hosting platforms that
// probe the process (e.g. Render) consider the bot alive.
package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/waznabudget/masarifbot/core/logger"
	"log/slog"
)

// Server wraps the health-check HTTP listener lifecycle.
type Server struct {
	srv *http.Server
}

// New builds a health server listening on the given port.
func New(port int) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Bot is running!"))
	})
	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start begins serving in a background goroutine.
func (s *Server) Start() {
	go func() {
		logger.Health.Info("health responder listening",
			slog.String("event", "listen"),
			slog.String("listen", s.srv.Addr),
		)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Health.Error("health responder failed",
				slog.String("event", "serve"),
				slog.String("err", err.Error()),
			)
		}
	}()
}

// Stop shuts the listener down, waiting up to the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
