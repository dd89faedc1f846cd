package live

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	clientdist "github.com/smallie-dev/smallie/client/dist"
	"github.com/smallie-dev/smallie/internal/errors"
	"github.com/smallie-dev/smallie/pkg/dom"
	"github.com/smallie-dev/smallie/pkg/metrics"
)

// Routes served by the live server.
const (
	ClientPath  = "/_smallie/client.js"
	SocketPath  = "/_smallie/ws"
	MetricsPath = "/metrics"
	HealthPath  = "/healthz"
)

// AppFunc builds one app instance into doc. It is called once per session,
// and once per page load for the server-rendered shell.
type AppFunc func(doc *dom.Document)

// Server mirrors a per-session document into connected browsers.
type Server struct {
	app      AppFunc
	router   chi.Router
	upgrader websocket.Upgrader
	logger   *slog.Logger

	registry       *prometheus.Registry
	namespace      string
	metricsRoute   bool
	metrics        *liveMetrics
	tracer         trace.Tracer
	tracerName     string
	tracingEnabled bool

	allowedOrigins []string
	maxSessions    int
	readTimeout    time.Duration
	writeTimeout   time.Duration
	heartbeat      time.Duration
	maxMessageSize int64
	eventQueue     int

	active     atomic.Int64
	wg         sync.WaitGroup
	baseCtx    context.Context
	cancel     context.CancelFunc
	httpServer *http.Server
	mu         sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistry registers metrics in reg and serves it at /metrics instead of
// the default registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithNamespace sets the metrics namespace (default: "smallie").
func WithNamespace(namespace string) Option {
	return func(s *Server) {
		s.namespace = namespace
	}
}

// WithMetricsEndpoint enables or disables the /metrics route.
func WithMetricsEndpoint(enabled bool) Option {
	return func(s *Server) {
		s.metricsRoute = enabled
	}
}

// WithTracing enables or disables event spans and sets the tracer name.
func WithTracing(enabled bool, tracerName string) Option {
	return func(s *Server) {
		s.tracingEnabled = enabled
		s.tracerName = tracerName
	}
}

// WithAllowedOrigins sets the origins allowed to open a session. "*" allows
// any origin. With no origins only same-origin requests are accepted.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// WithMaxSessions caps concurrent sessions. Zero means no limit.
func WithMaxSessions(n int) Option {
	return func(s *Server) {
		s.maxSessions = n
	}
}

// WithTimeouts sets the WebSocket read and write timeouts. Pings are sent at
// half the read timeout.
func WithTimeouts(read, write time.Duration) Option {
	return func(s *Server) {
		if read > 0 {
			s.readTimeout = read
		}
		if write > 0 {
			s.writeTimeout = write
		}
	}
}

// New creates a live server for app.
func New(app AppFunc, opts ...Option) *Server {
	s := &Server{
		app:            app,
		logger:         slog.Default().With("component", "live"),
		namespace:      "smallie",
		metricsRoute:   true,
		tracingEnabled: true,
		tracerName:     defaultTracerName,
		readTimeout:    60 * time.Second,
		writeTimeout:   10 * time.Second,
		maxMessageSize: 64 * 1024,
		eventQueue:     64,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.heartbeat = s.readTimeout / 2

	var reg prometheus.Registerer
	if s.registry != nil {
		reg = s.registry
	}
	s.metrics = metricsFor(reg, s.namespace)
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := metrics.Register(reg, s.namespace); err != nil {
		s.logger.Warn("runtime metrics not registered", "error", err)
	}
	s.tracer = newTracer(s.tracerName, s.tracingEnabled)

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	s.baseCtx, s.cancel = context.WithCancel(context.Background())

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handlePage)
	r.Get(ClientPath, s.handleClient)
	r.Get(SocketPath, s.handleSocket)
	r.Get(HealthPath, s.handleHealth)
	if s.metricsRoute {
		r.Handle(MetricsPath, s.metricsHandler())
	}
	s.router = r

	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Sessions returns the number of connected sessions.
func (s *Server) Sessions() int {
	return int(s.active.Load())
}

// ListenAndServe serves on addr until Shutdown is called.
func (s *Server) ListenAndServe(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Serve accepts connections on l until Shutdown is called.
func (s *Server) Serve(l net.Listener) error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	s.logger.Info("live server listening", "address", l.Addr().String())
	err := srv.Serve(l)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting connections, closes every session and waits for
// them to finish or for ctx to end.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()

	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}
	return err
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if len(s.allowedOrigins) == 0 {
		return strings.EqualFold(strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://"), r.Host)
	}
	for _, allowed := range s.allowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

func (s *Server) metricsHandler() http.Handler {
	if s.registry != nil {
		return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}

func (s *Server) startSpan(ctx context.Context, sessionID string, msg ClientMessage) (context.Context, trace.Span) {
	return startEventSpan(ctx, s.tracer, sessionID, msg)
}

// handlePage renders a fresh app instance with the client script, so the
// page is readable before the socket connects.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	doc, err := s.renderShell()
	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := dom.Render(w, doc.Root(), dom.WithProperties()); err != nil {
		s.logger.Debug("page write failed", "error", err)
	}
}

func (s *Server) renderShell() (doc *dom.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("app render panic", "panic", r, "stack", string(debug.Stack()))
			err = errors.New("E020").WithDetail(fmt.Sprintf("Rendering the app panicked: %v", r))
		}
	}()

	doc = dom.NewDocument()
	s.app(doc)

	script := dom.NewElement("script")
	script.SetAttr("src", ClientPath)
	script.SetAttr("defer", "")
	doc.Head().AppendChild(script)
	return doc, nil
}

func (s *Server) handleClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(clientdist.LiveJS)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.Sessions(),
	})
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	if s.baseCtx.Err() != nil {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	if s.maxSessions > 0 && s.active.Load() >= int64(s.maxSessions) {
		err := errors.New("E062").WithDetail(fmt.Sprintf("The server allows %d concurrent sessions.", s.maxSessions))
		s.logger.Warn("session rejected", "error", err)
		s.metrics.recordError("session_limit")
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.Warn("websocket upgrade failed", "error", errors.New("E060").Wrap(err))
		return
	}

	s.wg.Add(1)
	s.active.Add(1)
	s.metrics.sessionStarted()
	defer func() {
		conn.Close()
		s.metrics.sessionEnded()
		s.active.Add(-1)
		s.wg.Done()
	}()

	ss := newSession(conn, s)
	ss.logger.Info("session started", "remote", r.RemoteAddr)
	start := time.Now()
	err = ss.serve(s.baseCtx)
	ss.logger.Info("session ended", "duration", time.Since(start), "error", err)
}
