package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/patrickmn/go-cache"

	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/publisher"
	"github.com/shouni/go-coloring-kit/pkg/workflow"
)

const (
	defaultSessionTTL     = 24 * time.Hour
	sessionCleanupPeriod  = 1 * time.Hour
	defaultRequestLimit   = 60
	defaultRateWindow     = 1 * time.Minute
	shutdownTimeout       = 10 * time.Second
	readHeaderTimeout     = 10 * time.Second
	paramSessionID        = "sessionID"
	paramBookID           = "bookID"
	paramPageIndex        = "index"
	contentDispositionFmt = `attachment; filename="%s"`
)

// BookStore はサーバーが使うライブラリ操作です。
type BookStore interface {
	List(ctx context.Context) ([]domain.Book, error)
	Get(ctx context.Context, id string) (domain.Book, bool, error)
	Delete(ctx context.Context, id string) error
}

// Options はサーバーの動作設定です。
type Options struct {
	SessionTTL   time.Duration
	RequestLimit int // IP ごとの RateWindow あたりの上限。0 以下で無制限
	RateWindow   time.Duration
}

// DefaultOptions は serve コマンドの既定値です。
func DefaultOptions() Options {
	return Options{
		SessionTTL:   defaultSessionTTL,
		RequestLimit: defaultRequestLimit,
		RateWindow:   defaultRateWindow,
	}
}

// Server は Orchestrator をセッション単位で操作する JSON API です。
type Server struct {
	router       chi.Router
	sessions     *cache.Cache
	orchestrator *workflow.Orchestrator
	library      BookStore
	assembler    *publisher.PDFAssembler
	opts         Options

	// spawn は受け付けた Job を実行します。既定ではバックグラウンドで動かします。
	spawn func(workflow.Job)

	baseCtx context.Context
	cancel  context.CancelFunc
	jobs    sync.WaitGroup
}

// New はルーティングを設定した Server を返します。
func New(orch *workflow.Orchestrator, library BookStore, opts Options) *Server {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		router:       chi.NewRouter(),
		sessions:     cache.New(opts.SessionTTL, sessionCleanupPeriod),
		orchestrator: orch,
		library:      library,
		assembler:    publisher.NewPDFAssembler(),
		opts:         opts,
		baseCtx:      ctx,
		cancel:       cancel,
	}
	s.spawn = s.runInBackground
	s.setupRoutes()
	return s
}

// Handler はルーターを返します。
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if s.opts.RequestLimit > 0 {
		r.Use(httprate.LimitByIP(s.opts.RequestLimit, s.opts.RateWindow))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/themes", s.handleThemes)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Route("/{"+paramSessionID+"}", func(r chi.Router) {
				r.Get("/", s.withSession(s.handleGetSession))
				r.Post("/tab", s.withSession(s.handleSelectTab))
				r.Post("/new", s.withSession(s.handleNewBook))
				r.Post("/theme", s.withSession(s.handleSelectTheme))
				r.Put("/draft", s.withSession(s.handleUpdateDraft))
				r.Delete("/notice", s.withSession(s.handleDismissNotice))
				r.Post("/generate", s.withSession(s.handleGenerate))
				r.Post("/regenerate/cover", s.withSession(s.handleRegenerateCover))
				r.Post("/regenerate/all", s.withSession(s.handleRegenerateAll))
				r.Post("/regenerate/pages/{"+paramPageIndex+"}", s.withSession(s.handleRegeneratePage))
				r.Get("/download", s.withSession(s.handleDownloadWorkingBook))
			})
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", s.handleListBooks)
			r.Route("/{"+paramBookID+"}", func(r chi.Router) {
				r.Get("/", s.handleGetBook)
				r.Delete("/", s.handleDeleteBook)
				r.Get("/download", s.handleDownloadBook)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

func (s *Server) runInBackground(job workflow.Job) {
	s.jobs.Add(1)
	go func() {
		defer s.jobs.Done()
		job(s.baseCtx)
	}()
}

// Close は実行中の Job をキャンセルし、終了を待ちます。
func (s *Server) Close() {
	s.cancel()
	s.jobs.Wait()
}

// ListenAndServe は ctx がキャンセルされるまで addr で待ち受けます。
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	slog.Info("HTTP server stopped")
	return err
}
