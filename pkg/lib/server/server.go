// Package server exposes the health, metrics and profiling endpoints of
// a long running check.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/bvmc/bvmc/pkg/lib/profile"
)

// Option applies a configuration option to the given config.
type Option func(s *serverConfig)

func WithLogger(logger logrus.FieldLogger) Option {
	return func(sc *serverConfig) {
		sc.logger = logger
	}
}

// WithProfiling adds the pprof endpoints.
func WithProfiling(enabled bool) Option {
	return func(sc *serverConfig) {
		sc.profiling = enabled
	}
}

type serverConfig struct {
	logger    logrus.FieldLogger
	profiling bool
}

// Server serves on a listener until its context is done.
type Server struct {
	http *http.Server
	ln   net.Listener
	log  logrus.FieldLogger
}

// Listen binds addr and prepares the mux. Use ":0" for an ephemeral port.
func Listen(addr string, options ...Option) (*Server, error) {
	sc := serverConfig{logger: logrus.StandardLogger()}
	for _, o := range options {
		o(&sc)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())
	if sc.profiling {
		profile.RegisterHandlers(mux)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		http: &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second},
		ln:   ln,
		log:  sc.logger,
	}, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Serve blocks until ctx is done, then shuts the server down.
func (s *Server) Serve(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.http.Serve(s.ln)
	}()
	s.log.WithField("addr", s.Addr()).Info("serving metrics")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
