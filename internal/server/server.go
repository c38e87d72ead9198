// Package server exposes the numerology engine over HTTP: a JSON API, the
// personal-year calendar feed and Prometheus metrics.
package server

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/corpus"
	"github.com/tartampluch/go-numerology/internal/engine"
	"github.com/tartampluch/go-numerology/internal/locale"
	"github.com/tartampluch/go-numerology/internal/search"
)

// Options wires a Server. Zero values get working defaults.
type Options struct {
	BindAddr    string
	Port        string
	Corpus      *corpus.Corpus
	Texts       *locale.Translator
	Clock       engine.Clock
	Language    string
	CacheTTL    time.Duration
	CORSOrigins []string

	// Registry receives the HTTP and search metrics. A private registry
	// with the Go and process collectors is created when nil.
	Registry *prometheus.Registry
}

// Server serves the API and the calendar feed.
type Server struct {
	// The calendar is read on every feed poll and replaced only on refresh,
	// so readers load it lock-free.
	calendar atomic.Pointer[cacheItem]

	peopleMu sync.RWMutex
	people   []engine.Contact

	Addr     string
	corpus   *corpus.Corpus
	texts    *locale.Translator
	clock    engine.Clock
	language string
	origins  []string
	profiles *cache.Cache

	registry      *prometheus.Registry
	searchMetrics *search.Metrics
	requests      *prometheus.CounterVec
}

// New builds a Server from opts.
func New(opts Options) (*Server, error) {
	if opts.Port == "" {
		return nil, errors.New(config.ErrPortRequired)
	}

	c := opts.Corpus
	if c == nil {
		var err error
		if c, err = corpus.Load(); err != nil {
			return nil, err
		}
	}

	texts := opts.Texts
	if texts == nil {
		texts = locale.New()
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	clock := opts.Clock
	if clock == nil {
		clock = engine.RealClock{}
	}

	ttl := cmp.Or(opts.CacheTTL, config.ProfileCacheTTL)

	s := &Server{
		Addr:          cmp.Or(opts.BindAddr, config.LocalhostBindAddr) + config.AddrSeparator + opts.Port,
		corpus:        c,
		texts:         texts,
		clock:         clock,
		language:      texts.Normalize(cmp.Or(opts.Language, config.DefaultLanguage)),
		origins:       opts.CORSOrigins,
		profiles:      cache.New(ttl, max(ttl*2, config.ProfileCacheSweep)),
		registry:      reg,
		searchMetrics: search.NewMetrics(reg),
		requests:      newRequestCounter(reg),
	}
	return s, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	if len(s.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.origins,
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", config.HeaderContentType},
			ExposedHeaders: []string{config.HeaderETag, config.HeaderLastModified},
			MaxAge:         config.CORSMaxAge,
		}))
	}

	r.Get(config.RouteHealth, s.handleHealth)
	r.HandleFunc(config.RouteCalendar, s.handleCalendarRequest)
	r.Handle(config.RouteMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))

	r.Route(config.RouteAPI, func(r chi.Router) {
		r.Post(config.RouteProfile, handler(s.postProfile))
		r.Post(config.RouteReport, handler(s.postReport))
		r.Post(config.RouteCompat, handler(s.postCompat))
		r.Post(config.RouteSearch, handler(s.postSearch))
		r.Get(config.RouteDictionary, handler(s.getDictionary))
		r.Get(config.RoutePeople, handler(s.getPeople))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound)
	})

	return r
}

// Start listens on s.Addr and blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyAddr, s.Addr,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// SetPeople replaces the imported contacts listed by the people endpoint.
func (s *Server) SetPeople(contacts []engine.Contact) {
	s.peopleMu.Lock()
	s.people = contacts
	s.peopleMu.Unlock()
}

func (s *Server) snapshotPeople() []engine.Contact {
	s.peopleMu.RLock()
	defer s.peopleMu.RUnlock()
	out := make([]engine.Contact, len(s.people))
	copy(out, s.people)
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": config.HTTPStatusOK})
}
