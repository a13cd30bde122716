package kvserver

import (
	"bufio"
	"context"
	"crypto/rand"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/keywire-go/internal/store"
	"github.com/yndnr/keywire-go/internal/telemetry/logger"
	"github.com/yndnr/keywire-go/internal/telemetry/metric"
)

// ErrServerClosed is returned by Start on a server that was shut down.
var ErrServerClosed = errors.New("kvserver: server closed")

// Config holds the KV server configuration.
type Config struct {
	// Addr is the plaintext TCP listen address.
	Addr string
	// TLSAddr enables an additional TLS listener when non-empty.
	TLSAddr string
	// TLSConfig is the TLS configuration (required if TLSAddr is set).
	TLSConfig *tls.Config
	// ReadTimeout bounds reading a command line once bytes start
	// arriving (default: 30s). Helps against slowloris peers.
	ReadTimeout time.Duration
	// WriteTimeout bounds flushing a response (default: 30s).
	WriteTimeout time.Duration
	// IdleTimeout closes connections with no pending command
	// (default: 5m).
	IdleTimeout time.Duration
	// RateLimit is the accepted connections per second per client IP.
	// 0 disables rate limiting (default).
	RateLimit int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:         "127.0.0.1:6379",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  5 * time.Minute,
		RateLimit:    0,
	}
}

// Server is the KeyWire line protocol server.
type Server struct {
	cfg     *Config
	handler *CommandHandler
	logger  logger.Logger
	metrics *metric.Metrics

	plainLn net.Listener
	tlsLn   net.Listener
	limiter *ipLimiter

	running atomic.Bool
	stopped atomic.Bool
	wg      sync.WaitGroup

	// conns tracks live connections by ID so shutdown can force-close
	// stragglers after the drain deadline.
	conns sync.Map // conn ID -> *Conn
}

// Conn is a single client connection.
type Conn struct {
	id      string
	netConn net.Conn
	br      *bufio.Reader
	bw      *bufio.Writer

	closed atomic.Bool
}

func newConn(c net.Conn) *Conn {
	return &Conn{
		id:      newConnID(),
		netConn: c,
		br:      bufio.NewReader(c),
		bw:      bufio.NewWriter(c),
	}
}

// newConnID generates a ULID for log correlation.
func newConnID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return fmt.Sprintf("conn-%d", time.Now().UnixNano())
	}
	return strings.ToLower(id.String())
}

// Close closes the underlying connection. Safe to call more than once.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

// RemoteAddr returns the client address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// New creates a KV server serving the given store.
func New(cfg *Config, st *store.Store, log logger.Logger, metrics *metric.Metrics) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.Default()
	}
	if metrics == nil {
		metrics = metric.New()
	}

	s := &Server{
		cfg:     cfg,
		logger:  log,
		metrics: metrics,
	}
	if cfg.RateLimit > 0 {
		s.limiter = newIPLimiter(cfg.RateLimit)
	}
	s.handler = NewCommandHandler(st, log, metrics)

	return s
}

// Start binds the configured listeners and begins accepting
// connections. Bind failures are returned to the caller; nothing is
// left running in that case.
func (s *Server) Start(ctx context.Context) error {
	if s.stopped.Load() {
		return ErrServerClosed
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.cfg.Addr, err)
	}
	s.plainLn = ln
	s.logger.Info("kv server listening", "addr", ln.Addr().String())

	if s.cfg.TLSAddr != "" {
		if s.cfg.TLSConfig == nil {
			_ = ln.Close()
			return fmt.Errorf("tls listener %s: missing TLS config", s.cfg.TLSAddr)
		}
		tlsLn, err := tls.Listen("tcp", s.cfg.TLSAddr, s.cfg.TLSConfig)
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("bind %s: %w", s.cfg.TLSAddr, err)
		}
		s.tlsLn = tlsLn
		s.logger.Info("kv server listening (tls)", "addr", tlsLn.Addr().String())
	}

	s.running.Store(true)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx, s.plainLn); err != nil && s.running.Load() {
			s.logger.Error("kv accept loop failed", "error", err)
		}
	}()

	if s.tlsLn != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.acceptLoop(ctx, s.tlsLn); err != nil && s.running.Load() {
				s.logger.Error("kv tls accept loop failed", "error", err)
			}
		}()
	}

	return nil
}

// Shutdown stops accepting connections and waits for live ones to
// drain. When ctx expires first, remaining connections are closed
// outright.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopped.Store(true)
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	var firstErr error

	// Close listeners to break the accept loops.
	if s.plainLn != nil {
		if err := s.plainLn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.tlsLn != nil {
		if err := s.tlsLn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("drain deadline passed, closing connections", "live", s.ConnCount())
		s.conns.Range(func(_, v any) bool {
			_ = v.(*Conn).Close()
			return true
		})
		<-done
	}

	return firstErr
}

// Addr returns the bound address of the plain listener, or the
// configured address before Start.
func (s *Server) Addr() string {
	if s.plainLn != nil {
		return s.plainLn.Addr().String()
	}
	return s.cfg.Addr
}

// TLSAddr returns the bound address of the TLS listener, or the
// configured address before Start. Empty when TLS is disabled.
func (s *Server) TLSAddr() string {
	if s.tlsLn != nil {
		return s.tlsLn.Addr().String()
	}
	return s.cfg.TLSAddr
}

// ConnCount returns the number of live client connections.
func (s *Server) ConnCount() int {
	n := 0
	s.conns.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		c, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		if s.limiter != nil && !s.limiter.allow(remoteIP(c)) {
			s.metrics.ConnectionsRejected.Inc()
			s.logger.Debug("connection rejected by rate limiter", "remote", c.RemoteAddr().String())
			_ = c.Close()
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(newConn(c))
		}()
	}
}

// remoteIP extracts the bare IP from a connection's remote address.
func remoteIP(c net.Conn) string {
	host, _, err := net.SplitHostPort(c.RemoteAddr().String())
	if err != nil {
		return c.RemoteAddr().String()
	}
	return host
}

// serveConn runs the per-connection loop: read one line, dispatch,
// flush the reply, repeat until EOF, error, or shutdown. Commands
// pipelined into one segment are answered in order, one reply per
// line.
func (s *Server) serveConn(c *Conn) {
	log := s.logger.With("conn_id", c.id, "remote", c.RemoteAddr().String())

	s.conns.Store(c.id, c)
	s.metrics.ConnectionsTotal.Inc()
	s.metrics.ConnectionsActive.Inc()
	log.Debug("connection accepted")

	defer func() {
		s.conns.Delete(c.id)
		s.metrics.ConnectionsActive.Dec()
		_ = c.Close()
		log.Debug("connection closed")
	}()

	readTimeout := s.cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 30 * time.Second
	}
	writeTimeout := s.cfg.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 30 * time.Second
	}
	idleTimeout := s.cfg.IdleTimeout
	if idleTimeout == 0 {
		idleTimeout = 5 * time.Minute
	}

	for {
		// Stop picking up new commands once shutdown starts; anything
		// already buffered is still answered.
		if !s.running.Load() && c.br.Buffered() == 0 {
			return
		}

		// First byte: allow the idle timeout (connections may sit
		// quiet between commands).
		if err := c.netConn.SetReadDeadline(time.Now().Add(idleTimeout)); err != nil {
			return
		}
		if _, err := c.br.Peek(1); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				log.Debug("connection idle timeout")
				return
			}
			log.Debug("connection read error", "error", err)
			return
		}

		// After the first byte: tighten to the per-command read
		// timeout (slowloris protection).
		if err := c.netConn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return
		}

		verb, args, err := ReadCommand(c.br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				log.Debug("connection read timeout")
				return
			}
			if errors.Is(err, ErrLimitExceeded) {
				log.Warn("request line over limit", "error", err)
				_ = c.netConn.SetWriteDeadline(time.Now().Add(writeTimeout))
				_ = WriteError(c.bw, "line too long")
				_ = c.bw.Flush()
				return
			}
			log.Debug("connection read error", "error", err)
			return
		}

		s.handler.Handle(c, verb, args)

		if err := c.netConn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return
		}
		if err := c.bw.Flush(); err != nil {
			log.Debug("connection write error", "error", err)
			return
		}
	}
}
