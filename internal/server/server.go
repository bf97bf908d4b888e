package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"cyber-oasis/internal/config"
	"cyber-oasis/internal/ids"
	"cyber-oasis/internal/models"
	"cyber-oasis/internal/notify"
	"cyber-oasis/internal/notify/logsink"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Store is the slice of the sheet adapter the handlers need.
type Store interface {
	Append(ctx context.Context, rec models.Record) error
	ReadAll(ctx context.Context, kind models.TableKind) ([][]string, error)
}

type Server struct {
	cfg   config.Config
	store Store // nil when no spreadsheet is configured
	sink  notify.Sink
	ids   *ids.Generator
	log   *zap.Logger
	now   func() time.Time
}

type Option func(*Server)

func WithIDs(g *ids.Generator) Option { return func(s *Server) { s.ids = g } }

func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

func NewServer(cfg config.Config, store Store, sink notify.Sink, log *zap.Logger, opts ...Option) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = 10 * time.Second
	}
	if cfg.Notify.Timeout <= 0 {
		cfg.Notify.Timeout = 5 * time.Second
	}
	if sink == nil {
		sink = logsink.New(log)
	}
	s := &Server{
		cfg:   cfg,
		store: store,
		sink:  sink,
		ids:   ids.New(),
		log:   log,
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// New wires the handlers into an *http.Server listening on cfg.HTTPAddr.
func New(cfg config.Config, store Store, sink notify.Sink, log *zap.Logger) *http.Server {
	s := NewServer(cfg, store, sink, log)
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Submissions. /api/form-handler is where the site's plain HTML form posts.
	mux.Handle("/api/register", methods(s.handleRegister, http.MethodPost))
	mux.Handle("/api/form-handler", methods(s.handleRegister, http.MethodPost))
	mux.Handle("/api/contact", methods(s.handleContact, http.MethodPost))

	// Admin
	mux.Handle("/api/admin", methods(s.handleAdmin, http.MethodGet))
	mux.Handle("/api/admin/export.csv", methods(s.handleExportCSV, http.MethodGet))

	// Diagnostics
	mux.Handle("/api/health", methods(s.handleHealth, http.MethodGet))
	mux.Handle("/api/test", methods(s.handleTest, http.MethodGet, http.MethodPost))
	mux.Handle("/api/debug", methods(s.handleDebug, http.MethodGet, http.MethodPost))
	mux.Handle("/api/env-check", methods(s.handleEnvCheck, http.MethodGet))

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
	})
	mux.Handle("/", methods(s.static().ServeHTTP, http.MethodGet, http.MethodHead))

	return s.wrap(mux)
}

// wrap applies the middleware chain. requestLog sits outermost so responses
// written by recoverer are logged with their request id too.
func (s *Server) wrap(h http.Handler) http.Handler {
	return s.requestLog(s.recoverer(cors(h)))
}
