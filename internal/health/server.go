package health

import (
	"context"
	"net/http"
	"time"

	"relay_bot/internal/logger"
)

// Server is a trivial liveness endpoint: any GET path answers 200
// "Bot is alive!". It shares no state with the rest of the process.
type Server struct {
	srv *http.Server
}

// New creates a liveness server bound to addr.
func New(addr string) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Bot is alive!"))
	})

	return &Server{
		srv: &http.Server{Addr: addr, Handler: mux},
	}
}

// Start serves until ctx is cancelled. It blocks and is meant to run on
// its own goroutine.
func (s *Server) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
	}()

	logger.L().Infof("Health endpoint listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L().Errorf("Health endpoint stopped: %v", err)
	}
}
