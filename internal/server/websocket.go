package server

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/zeusync/raysense/internal/core/observability/log"
	"github.com/zeusync/raysense/internal/core/sensing"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// StreamMessage is one websocket push.
type StreamMessage struct {
	ClientID   string            `json:"client_id"`
	Seq        uint64            `json:"seq"`
	Version    uint64            `json:"version"`
	Time       time.Time         `json:"time"`
	Snapshot   sensing.Snapshot  `json:"snapshot"`
	Conditions []ConditionResult `json:"conditions,omitempty"`
}

type streamClient struct {
	id        string
	conn      *websocket.Conn
	closeOnce sync.Once
	done      chan struct{}
}

func (c *streamClient) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func (s *Server) authorize(r *http.Request) error {
	if s.config.Token == "" {
		return nil
	}
	if r.URL.Query().Get("token") != s.config.Token {
		return ErrUnauthorized
	}
	return nil
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if err := s.authorize(r); err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	// Reserve a slot before upgrading.
	if int(atomic.AddInt64(&s.clientCount, 1)) > s.config.MaxClients {
		atomic.AddInt64(&s.clientCount, -1)
		s.logger.Warn("Maximum clients reached, rejecting stream", log.String("remote_addr", r.RemoteAddr))
		http.Error(w, "too many clients", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		atomic.AddInt64(&s.clientCount, -1)
		s.logger.Warn("Websocket upgrade failed", log.Error(err))
		return
	}

	client := &streamClient{id: uuid.NewString(), conn: conn, done: make(chan struct{})}
	s.clients.Store(client.id, client)

	clientLogger := s.logger.With(log.String("client_id", client.id))
	clientLogger.Info("Stream client connected",
		log.String("remote_addr", r.RemoteAddr),
		log.Int64("total_clients", atomic.LoadInt64(&s.clientCount)))

	defer func() {
		client.close()
		s.clients.Delete(client.id)
		atomic.AddInt64(&s.clientCount, -1)
		clientLogger.Info("Stream client disconnected",
			log.Int64("total_clients", atomic.LoadInt64(&s.clientCount)))
	}()

	// Drain reads so close frames are seen.
	go func() {
		defer client.close()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	s.stream(client, clientLogger)
}

func (s *Server) stream(client *streamClient, logger log.Log) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-client.done:
		case <-s.stopChan:
		}
		cancel()
	}()

	limiter := rate.NewLimiter(rate.Every(s.config.StreamInterval), s.config.StreamBurst)
	var (
		seq      uint64
		lastVer  uint64
		lastSent time.Time
	)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		// Read the version before the snapshot so a concurrent write is
		// sent again on the next push.
		version := s.source.Version()
		now := time.Now()
		if seq > 0 && version == lastVer &&
			(s.config.KeepAlive == 0 || now.Sub(lastSent) < s.config.KeepAlive) {
			continue
		}
		seq++
		lastVer, lastSent = version, now
		msg := StreamMessage{
			ClientID:   client.id,
			Seq:        seq,
			Version:    version,
			Time:       now.UTC(),
			Snapshot:   s.source.Snapshot(),
			Conditions: s.evaluateConditions(),
		}
		if s.config.WriteTimeout > 0 {
			_ = client.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		}
		if err := client.conn.WriteJSON(msg); err != nil {
			logger.Debug("Stream write failed", log.Error(err))
			return
		}
	}
}
