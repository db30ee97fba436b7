package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
	"golang.org/x/sync/semaphore"

	"github.com/vk/stagefinder/internal/ctxlog"
	"github.com/vk/stagefinder/internal/finder"
	"github.com/vk/stagefinder/internal/parts"
	"github.com/vk/stagefinder/internal/report"
)

// Event names.
const (
	EventFind    = "find"
	EventDesigns = "designs"
	EventError   = "find_error"
)

// Options configure a Server.
type Options struct {
	// Workers is passed on to every search. Zero means GOMAXPROCS.
	Workers int
	// MaxSearches bounds the number of searches running at once. Further
	// queries wait for a free slot. Zero means one.
	MaxSearches int64
}

// Server answers design queries. The zero value is not usable; call New.
type Server struct {
	ctx        context.Context
	catalog    *parts.Catalog
	opts       Options
	io         *socket.Server
	mux        *http.ServeMux
	searches   *semaphore.Weighted
	httpServer *http.Server
}

// New creates a server searching catalog. ctx carries the logger and bounds
// the lifetime of running searches.
func New(ctx context.Context, catalog *parts.Catalog, opts Options) *Server {
	if opts.MaxSearches <= 0 {
		opts.MaxSearches = 1
	}
	s := &Server{
		ctx:      ctx,
		catalog:  catalog,
		opts:     opts,
		searches: semaphore.NewWeighted(opts.MaxSearches),
		mux:      http.NewServeMux(),
	}
	s.httpServer = &http.Server{Handler: s.mux, ReadHeaderTimeout: 10 * time.Second}

	c := socket.DefaultServerOptions()
	c.SetServeClient(false)
	c.SetTransports(types.NewSet("polling", "websocket"))
	s.io = socket.NewServer(nil, nil)
	s.io.On("connection", func(clients ...any) {
		client, ok := clients[0].(*socket.Socket)
		if !ok {
			return
		}
		s.onConnection(client)
	})

	s.mux.HandleFunc("/health", s.healthHandler)
	s.mux.Handle("/socket.io/", s.io.ServeHandler(c))
	return s
}

// Handler returns the HTTP handler serving /health and socket.io.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// healthHandler answers liveness checks.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(s.ctx)
	logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// Serve accepts connections on ln until Shutdown is called. It returns
// immediately when Shutdown already ran.
func (s *Server) Serve(ln net.Listener) error {
	logger := ctxlog.FromContext(s.ctx)
	logger.Info("🛰️ Query server starting", "address", ln.Addr().String())
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("query server failed: %w", err)
	}
	return nil
}

// ListenAndServe listens on addr and serves until Shutdown is called.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ln)
}

// Shutdown closes all socket.io clients and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	logger := ctxlog.FromContext(s.ctx)
	logger.Info("🛰️ Shutting down query server...")
	s.io.Close(nil)
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Query server shutdown failed", "error", err)
		return err
	}
	logger.Debug("Query server shut down gracefully.")
	return nil
}

func (s *Server) onConnection(client *socket.Socket) {
	ctx, logger := ctxlog.With(s.ctx, "sid", string(client.Id()))
	logger.Debug("Client connected.")

	client.On(EventFind, func(args ...any) {
		if len(args) == 0 {
			client.Emit(EventError, errorMessage(errors.New("empty query")))
			return
		}
		go s.answer(ctx, client, args[0])
	})
	client.On("disconnect", func(...any) {
		logger.Debug("Client disconnected.")
	})
}

func (s *Server) answer(ctx context.Context, client *socket.Socket, arg any) {
	logger := ctxlog.FromContext(ctx)
	doc, err := s.search(ctx, arg)
	if err != nil {
		logger.Info("Query failed.", "error", err)
		client.Emit(EventError, errorMessage(err))
		return
	}
	client.Emit(EventDesigns, doc)
}

// search runs one query and returns the result as a plain JSON document.
// A panic during the query is returned as an error.
func (s *Server) search(ctx context.Context, arg any) (doc any, err error) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.FromContext(ctx).Error("Query panicked.", "panic", r)
			doc, err = nil, fmt.Errorf("internal error: %v", r)
		}
	}()

	q, err := decodeQuery(arg)
	if err != nil {
		return nil, err
	}
	mission, err := q.mission()
	if err != nil {
		return nil, err
	}
	profile, err := mission.Profile(ctx)
	if err != nil {
		return nil, err
	}
	f, err := finder.New(s.catalog, profile, mission.Preferences.Options(s.opts.Workers))
	if err != nil {
		return nil, err
	}

	if err := s.searches.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.searches.Release(1)

	start := time.Now()
	designs, err := f.Find(ctx, !mission.Preferences.ShowAll, mission.Preferences.Cheapest)
	if err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Query answered.", "designs", len(designs), slog.Duration("elapsed", time.Since(start)))

	data, err := report.NewResult(designs, f.Lint()).MarshalJSON()
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func errorMessage(err error) map[string]any {
	return map[string]any{"message": err.Error()}
}
