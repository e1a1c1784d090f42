// Package server wires the mock API's routes, components and lifecycle.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"

	"github.com/aaira-a/mock-api-files/pkg/blobstore"
	"github.com/aaira-a/mock-api-files/pkg/callback"
	"github.com/aaira-a/mock-api-files/pkg/config"
	"github.com/aaira-a/mock-api-files/pkg/logging"
	"github.com/aaira-a/mock-api-files/pkg/scheduler"
)

// Server is the mock API server. Every route is an independent, stateless
// handler; the only component whose lifecycle outlives a request is the
// deferred callback dispatcher.
type Server struct {
	cfg        *config.Config
	log        *slog.Logger
	clock      clockwork.Clock
	sched      scheduler.Scheduler
	dispatcher *callback.Dispatcher
	store      blobstore.Store
	client     *http.Client

	httpServer *http.Server
	handler    http.Handler

	mu      sync.RWMutex
	running bool
}

// Option is a functional option for configuring a Server.
type Option func(*Server)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithBlobStore sets the blob store used for callback audit records.
func WithBlobStore(store blobstore.Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithClock sets the clock driving the sleep route and the callback
// scheduler. Tests inject a fake clock here.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Server) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithScheduler overrides the deferred task scheduler. When unset, a
// scheduler is built from the server clock.
func WithScheduler(sched scheduler.Scheduler) Option {
	return func(s *Server) {
		s.sched = sched
	}
}

// WithHTTPClient sets the client for outbound requests (URI fetches and
// callback POSTs).
func WithHTTPClient(client *http.Client) Option {
	return func(s *Server) {
		if client != nil {
			s.client = client
		}
	}
}

// New creates a Server with the given configuration.
func New(cfg *config.Config, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Server{
		cfg:    cfg,
		log:    logging.Nop(),
		clock:  clockwork.NewRealClock(),
		client: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.sched == nil {
		s.sched = scheduler.New(s.clock)
	}

	dispatcherOpts := []callback.Option{
		callback.WithHTTPClient(s.client),
		callback.WithDelay(cfg.CallbackDelay),
		callback.WithLogger(s.log.With("subcomponent", "dispatcher")),
		callback.WithClock(s.clock),
	}
	if s.store != nil {
		dispatcherOpts = append(dispatcherOpts, callback.WithAuditStore(s.store, cfg.BlobStore.InstanceID))
	}
	s.dispatcher = callback.New(s.sched, dispatcherOpts...)

	s.handler = s.routes()
	return s
}

// Handler returns the root http.Handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start starts the HTTP server. It does not block.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("server is already running")
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.HTTPPort),
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	s.log.Info("starting HTTP server", "port", s.cfg.HTTPPort)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("HTTP server error", "error", err)
		}
	}()

	s.running = true
	return nil
}

// Stop gracefully shuts down the server. Pending deferred callbacks are not
// cancelled; they fire or fail on their own.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	s.running = false
	return err
}

// IsRunning reports whether the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// routes builds the router. Each route maps to exactly one handler and each
// handler performs exactly one response write.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)
	r.Use(stripGatewayEventHeader)

	r.Route("/api", func(r chi.Router) {
		r.Get("/hello", s.handleHello)
		r.Get("/docs/{name}", s.handleDocs)

		r.HandleFunc("/echo", s.handleEcho)
		r.HandleFunc("/echo/{status}", s.handleEcho)
		r.HandleFunc("/echo-from-text", s.handleEchoFromText)
		r.HandleFunc("/echo-from-text/{status}", s.handleEchoFromText)

		r.Post("/all-types", s.handleAllTypes)
		r.Get("/all-types/object", s.handleAllTypesObject)
		r.Get("/all-types/array", s.handleAllTypesArray)

		r.Post("/all-parameter-types/{string_path}/{integer_path}/{boolean_path}", s.handleAllParameterTypes)
		r.Post("/path-encoding/{text}", s.handlePathEncoding)
		r.Post("/query-encoding", s.handleQueryEncoding)
		r.Post("/form-urlencoded/{string_path}/parsed", s.handleFormURLEncoded)

		r.Get("/files/errors/{status}", s.handleFileError)
		r.Get("/files/download/base64", s.handleDownloadBase64)
		r.Get("/files/download/uri", s.handleDownloadURI)
		r.Post("/files/download/octet-stream", s.handleDownloadOctetStream)
		r.Post("/files/upload/base64", s.handleUploadBase64)
		r.Post("/files/upload/form-data", s.handleUploadFormData)
		r.Post("/files/upload/octet-stream", s.handleUploadOctetStream)
		r.Post("/files/upload/uri", s.handleUploadURI)

		r.Post("/async-callback", s.handleAsyncCallback)
		r.Get("/callback-records/{instanceId}", s.handleCallbackRecords)

		r.Get("/sleep", s.handleSleep)
	})

	return r
}
