// Package server exposes the sensing cache over HTTP for debugging: a JSON
// snapshot, condition results, prometheus metrics and a websocket stream.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zeusync/raysense/internal/core/conditions"
	"github.com/zeusync/raysense/internal/core/observability/log"
	"github.com/zeusync/raysense/internal/core/sensing"
)

// Source is what the server reads from, normally *sensing.Cache.
type Source interface {
	conditions.Reader
	Snapshot() sensing.Snapshot
	Version() uint64
}

// Server is the debug HTTP server.
type Server struct {
	source     Source
	conditions conditions.Set
	gatherer   prometheus.Gatherer

	httpServer *http.Server
	listener   net.Listener

	// Stream clients
	clients     sync.Map // map[string]*streamClient
	clientCount int64    // atomic

	// Server state
	running int32 // atomic bool
	closed  int32 // atomic bool

	config Config
	logger log.Log

	workerGroup sync.WaitGroup
	stopChan    chan struct{}
}

// Config holds server configuration
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	MaxClients int    `yaml:"max_clients"`

	// StreamInterval is the minimum spacing of websocket pushes and
	// StreamBurst how many may go out back to back.
	StreamInterval time.Duration `yaml:"stream_interval"`
	StreamBurst    int           `yaml:"stream_burst"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`

	// KeepAlive resends an unchanged snapshot after this long. Zero only
	// sends on change.
	KeepAlive time.Duration `yaml:"keep_alive"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// Token, when set, must be passed as ?token= to open a stream.
	Token string `yaml:"token"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() Config {
	return Config{
		ListenAddr:      "127.0.0.1:8090",
		MaxClients:      16,
		StreamInterval:  100 * time.Millisecond,
		StreamBurst:     1,
		WriteTimeout:    2 * time.Second,
		KeepAlive:       time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

func (c Config) Validate() error {
	switch {
	case c.ListenAddr == "":
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	case c.MaxClients <= 0:
		return fmt.Errorf("%w: max clients must be positive", ErrInvalidConfig)
	case c.StreamInterval <= 0:
		return fmt.Errorf("%w: stream interval must be positive", ErrInvalidConfig)
	case c.StreamBurst <= 0:
		return fmt.Errorf("%w: stream burst must be positive", ErrInvalidConfig)
	case c.KeepAlive < 0:
		return fmt.Errorf("%w: negative keep alive", ErrInvalidConfig)
	}
	return nil
}

type Option func(*Server)

func WithLogger(l log.Log) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithConditions makes the server evaluate set on /conditions and in the stream.
func WithConditions(set conditions.Set) Option {
	return func(s *Server) { s.conditions = set }
}

// WithGatherer selects the registry served on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		if g != nil {
			s.gatherer = g
		}
	}
}

// NewServer creates a debug server reading from source
func NewServer(config Config, source Source, opts ...Option) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidConfig)
	}

	s := &Server{
		source:   source,
		gatherer: prometheus.DefaultGatherer,
		config:   config,
		logger:   log.NewNop(),
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(log.String("component", "server"))

	s.httpServer = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info("Server created",
		log.String("listen_addr", config.ListenAddr),
		log.Int("max_clients", config.MaxClients),
		log.Int("conditions", len(s.conditions)))

	return s, nil
}

// Start binds the listener and serves in the background
func (s *Server) Start(_ context.Context) error {
	if atomic.LoadInt32(&s.closed) == 1 {
		return ErrServerClosed
	}

	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}

	listener, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		atomic.StoreInt32(&s.running, 0)
		s.logger.Error("Failed to create listener", log.Error(err))
		return fmt.Errorf("%w: %w", ErrListenerFailed, err)
	}
	s.listener = listener

	s.workerGroup.Add(1)
	go func() {
		defer s.workerGroup.Done()
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server failed", log.Error(err))
		}
	}()

	s.logger.Info("Server listening", log.String("addr", listener.Addr().String()))
	return nil
}

// Addr is the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop stops the server. A stopped server cannot be started again.
func (s *Server) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 1, 0) {
		return ErrServerNotRunning
	}

	s.logger.Info("Stopping server")
	atomic.StoreInt32(&s.closed, 1)

	// Signal stream writers
	close(s.stopChan)

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()
	}
	err := s.httpServer.Shutdown(ctx)

	// Hijacked websocket connections are not tracked by Shutdown
	s.clients.Range(func(_, value any) bool {
		value.(*streamClient).close()
		return true
	})

	s.workerGroup.Wait()
	s.logger.Info("Server stopped")
	return err
}

// Close stops the server if needed and prevents restarting it
func (s *Server) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil // Already closed
	}

	if atomic.LoadInt32(&s.running) == 1 {
		return s.Stop(context.Background())
	}
	return nil
}

// GetStats returns server statistics
func (s *Server) GetStats() Stats {
	return Stats{
		ClientCount: atomic.LoadInt64(&s.clientCount),
		Running:     atomic.LoadInt32(&s.running) == 1,
	}
}

// Stats contains server statistics
type Stats struct {
	ClientCount int64 `json:"client_count"`
	Running     bool  `json:"running"`
}
