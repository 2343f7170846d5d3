// Package web serves the question-bank form as an HTML page and as a
// JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/qbank-ai/qbank/internal/questionbank"
)

//go:embed templates/*.html
var templateFS embed.FS

// Generator runs one question-bank generation.
type Generator interface {
	Generate(ctx context.Context, req questionbank.Request) (*questionbank.Result, error)
	Limits() questionbank.Limits
	ModelID() string
}

// Options configures a Server.
type Options struct {
	// Mode is the gin mode: "debug", "release" or "test".
	Mode string

	// RatePerMinute caps generations across all clients. Zero disables it.
	RatePerMinute int

	Logger *zap.Logger
}

// Server is the HTTP surface.
type Server struct {
	gen     Generator
	logger  *zap.Logger
	limiter *rate.Limiter
	metrics *Metrics
	engine  *gin.Engine
}

// New builds a Server and its routes.
func New(gen Generator, opts Options) *Server {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		gen:     gen,
		logger:  logger.Named("web"),
		limiter: newGenerationLimiter(opts.RatePerMinute),
		metrics: NewMetrics(),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(s.logger), s.metrics.Middleware())
	engine.SetHTMLTemplate(template.Must(template.New("").ParseFS(templateFS, "templates/*.html")))

	engine.GET("/", s.handleIndex)
	engine.POST("/generate", s.handleGenerateForm)
	engine.GET("/healthz", s.handleHealth)
	engine.GET("/metrics", s.metrics.Handler())

	api := engine.Group("/api/v1")
	{
		api.POST("/questions", s.handleGenerateAPI)
		api.POST("/check", s.handleCheckAPI)
	}

	s.engine = engine
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr), zap.String("model", s.gen.ModelID()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
