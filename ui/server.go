package ui

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	mdparser "github.com/gomarkdown/markdown/parser"

	"trendtruth/app"
	"trendtruth/domain/analysis"
	"trendtruth/domain/core"
	"trendtruth/domain/trend"
	apperrors "trendtruth/internal/errors"
	"trendtruth/internal/insights"
	"trendtruth/ports"
)

//go:embed templates/* docs/*
var embeddedFiles embed.FS

// Server is the JSON API for the analyze backend plus the hosted dashboard
// and the operator pages (methodology, spreadsheet export) that hang off it.
type Server struct {
	router      *gin.Engine
	service     *app.AnalyzeService
	runs        ports.RunRepository // optional
	controller  *DashboardController
	page        *pageRenderer
	methodology *template.Template
}

// serviceFetcher is the in-process BatchFetcher for the hosted dashboard:
// same port the remote frontend uses, without the HTTP hop.
type serviceFetcher struct {
	service *app.AnalyzeService
}

func (f serviceFetcher) FetchBatch(ctx context.Context, req ports.BatchRequest) (*analysis.Batch, error) {
	return f.service.Analyze(ctx, app.AnalyzeRequest{
		Limit:        req.Limit,
		Category:     req.Category,
		ForceRefresh: req.ForceRefresh,
	})
}

// NewServer creates the API server and registers its routes.
func NewServer(service *app.AnalyzeService, runs ports.RunRepository) (*Server, error) {
	methodology, err := template.ParseFS(embeddedFiles, "templates/methodology.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	page, err := newPageRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dashboard renderer: %w", err)
	}

	s := &Server{
		router:      gin.Default(),
		service:     service,
		runs:        runs,
		controller:  NewDashboardController(serviceFetcher{service}, page, 0),
		page:        page,
		methodology: methodology,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.router.GET("/api/health", s.handleHealth)
	s.router.GET("/api/categories", s.handleCategories)
	s.router.GET("/api/analyze", s.handleAnalyze)
	s.router.GET("/api/insights", s.handleInsights)
	s.router.GET("/api/runs", s.handleRuns)
	s.router.GET("/api/export.xlsx", s.handleExport)
	s.router.GET("/methodology", s.handleMethodology)

	s.router.GET("/", s.handleDashboardPage)
	s.router.POST("/api/dashboard/refresh", s.handleDashboardRefresh)
	s.router.POST("/api/dashboard/category", s.handleDashboardCategory)
}

// Run starts the HTTP server on the given address.
func (s *Server) Run(addr string) error {
	log.Printf("[Server] Listening on %s", addr)
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": trend.KnownCategories()})
}

// analyzeRequest reads the shared analyze query parameters. Malformed
// numbers degrade to zero and let the service apply its defaults.
func analyzeRequest(c *gin.Context) app.AnalyzeRequest {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return app.AnalyzeRequest{
		Limit:        limit,
		Category:     c.Query("category"),
		ForceRefresh: c.Query("refresh") == "true",
	}
}

func (s *Server) handleAnalyze(c *gin.Context) {
	batch, err := s.service.Analyze(c.Request.Context(), analyzeRequest(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (s *Server) handleInsights(c *gin.Context) {
	batch, err := s.service.Analyze(c.Request.Context(), analyzeRequest(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, insights.Compute(batch.Results))
}

func (s *Server) handleRuns(c *gin.Context) {
	if s.runs == nil {
		c.JSON(http.StatusOK, gin.H{"runs": []any{}})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	runs, err := s.runs.ListRecent(c.Request.Context(), limit)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if runs == nil {
		runs = []analysis.Run{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) handleExport(c *gin.Context) {
	batch, err := s.service.Analyze(c.Request.Context(), analyzeRequest(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	buf, err := BuildWorkbook(batch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="trendtruth_analysis.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (s *Server) handleMethodology(c *gin.Context) {
	src, err := embeddedFiles.ReadFile("docs/methodology.md")
	if err != nil {
		s.writeError(c, err)
		return
	}

	p := mdparser.NewWithExtensions(mdparser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	body := markdown.ToHTML(src, p, renderer)

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.methodology.ExecuteTemplate(c.Writer, "methodology.html", gin.H{
		"Body": template.HTML(body),
	}); err != nil {
		log.Printf("[Server] Template render failed: %v", err)
	}
}

func (s *Server) handleDashboardPage(c *gin.Context) {
	// first visit triggers a synchronous fill so the page is never empty
	if s.controller.ViewModel().UpdatedAt == "" {
		if err := s.controller.Refresh(c.Request.Context(), false); err != nil &&
			!errors.Is(err, core.ErrRefreshInFlight) {
			log.Printf("[Server] Dashboard refresh failed: %v", err)
		}
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", s.page.Snapshot())
}

func (s *Server) handleDashboardRefresh(c *gin.Context) {
	err := s.controller.Refresh(c.Request.Context(), true)
	vm := s.controller.ViewModel()
	if errors.Is(err, core.ErrRefreshInFlight) {
		c.JSON(http.StatusAccepted, gin.H{"status_line": vm.StatusLine, "in_flight": true})
		return
	}
	c.JSON(http.StatusOK, vm)
}

func (s *Server) handleDashboardCategory(c *gin.Context) {
	category := c.PostForm("category")
	if category == "" {
		category = c.Query("category")
	}
	err := s.controller.SelectCategory(c.Request.Context(), category)
	vm := s.controller.ViewModel()
	if errors.Is(err, core.ErrRefreshInFlight) {
		c.JSON(http.StatusAccepted, gin.H{"status_line": vm.StatusLine, "in_flight": true})
		return
	}
	c.JSON(http.StatusOK, vm)
}

// writeError maps application errors onto HTTP statuses. Unknown errors
// become 500 without leaking internals.
func (s *Server) writeError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}
	if core.IsNotFoundError(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[Server] Request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
