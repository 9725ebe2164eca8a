package ui

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"trendtruth/domain/core"
	"trendtruth/domain/dashboard"
	"trendtruth/domain/trend"
	"trendtruth/ports"
)

// App is the standalone dashboard frontend. It polls the analyze backend
// through a BatchFetcher and serves the rendered page; it holds no analysis
// logic of its own.
type App struct {
	router     *chi.Mux
	controller *DashboardController
	page       *pageRenderer
}

// AppConfig holds dashboard frontend configuration.
type AppConfig struct {
	Limit        int
	PollInterval time.Duration
}

// NewApp creates the dashboard application around a batch fetcher.
func NewApp(fetcher ports.BatchFetcher, cfg AppConfig) (*App, error) {
	if cfg.Limit <= 0 {
		cfg.Limit = 20
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Minute
	}

	page, err := newPageRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dashboard renderer: %w", err)
	}

	a := &App{
		router:     chi.NewRouter(),
		controller: NewDashboardController(fetcher, page, cfg.Limit),
		page:       page,
	}

	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Get("/", a.handleDashboard)
	a.router.Post("/refresh", a.handleRefresh)
	a.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return a, nil
}

// Controller exposes the dashboard controller so the caller can drive the
// poll loop.
func (a *App) Controller() *DashboardController { return a.controller }

// Start begins listening on the given port.
func (a *App) Start(port string) error {
	addr := ":" + port
	log.Printf("[Dashboard] Listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Handler exposes the router for tests.
func (a *App) Handler() http.Handler { return a.router }

func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" &&
		trend.NormalizeCategory(category) != a.controller.SelectedCategory() {
		if err := a.controller.SelectCategory(r.Context(), category); err != nil &&
			!errors.Is(err, core.ErrRefreshInFlight) {
			log.Printf("[Dashboard] Category switch refresh failed: %v", err)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(a.page.Snapshot())
}

func (a *App) handleRefresh(w http.ResponseWriter, r *http.Request) {
	err := a.controller.Refresh(r.Context(), true)
	if errors.Is(err, core.ErrRefreshInFlight) {
		// a refresh is already running; let it settle
	} else if err != nil {
		log.Printf("[Dashboard] Forced refresh failed: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// pageRenderer is the production DashboardRenderer: it renders the view-model
// to HTML and keeps the last successful paint for serving.
type pageRenderer struct {
	tmpl *template.Template

	mu   sync.RWMutex
	last []byte
}

type pageData struct {
	VM         dashboard.ViewModel
	Categories []trend.Category
}

func newPageRenderer() (*pageRenderer, error) {
	tmpl, err := template.ParseFS(embeddedFiles, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}
	p := &pageRenderer{tmpl: tmpl}

	// seed an empty paint so the page is never blank before the first fetch
	if err := p.Render(dashboard.ViewModel{
		SelectedCategory: trend.CategoryAll,
		StatusLine:       "Analyzing All trends...",
	}); err != nil {
		return nil, err
	}
	return p, nil
}

// Render paints a complete view-model. A template failure keeps the previous
// paint in place.
func (p *pageRenderer) Render(vm dashboard.ViewModel) error {
	var buf bytes.Buffer
	data := pageData{VM: vm, Categories: trend.KnownCategories()}
	if err := p.tmpl.ExecuteTemplate(&buf, "dashboard.html", data); err != nil {
		return fmt.Errorf("dashboard render failed: %w", err)
	}

	p.mu.Lock()
	p.last = buf.Bytes()
	p.mu.Unlock()
	return nil
}

// Snapshot returns the last successful paint.
func (p *pageRenderer) Snapshot() []byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}
