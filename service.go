package harness

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/harnesslab/harness/metrics"
)

// MetricsServer exposes the Prometheus metrics endpoint for long-lived or
// externally scraped runs. Disabled unless an address was configured.
type MetricsServer struct {
	log    zerolog.Logger
	server *http.Server
}

func NewMetricsServer(log zerolog.Logger) *MetricsServer {
	return &MetricsServer{log: log}
}

// Start serves /metrics on addr in the background. An empty addr is a
// no-op.
func (s *MetricsServer) Start(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	s.server = &http.Server{Addr: addr, Handler: mux}

	go func() {
		s.log.Info().Str("addr", addr).Msg("starting metrics server")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("error starting metrics server")
			metrics.RecordError("error starting metrics server")
		}
	}()
}

// Shutdown stops the server, waiting briefly for in-flight scrapes.
func (s *MetricsServer) Shutdown() {
	if s.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(ctx)
	s.log.Info().Msg("metrics server stopped")
}
