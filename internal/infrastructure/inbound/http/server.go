package delivery_http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/handlers"

	ports "pinstack-post-page/internal/domain/ports/output"
	"pinstack-post-page/internal/infrastructure/config"
	"pinstack-post-page/internal/infrastructure/logger"
)

type Server struct {
	server  *http.Server
	address string
	port    int
	log     *logger.Logger
}

// NewRouter wires the page routes behind logging, identity and recovery.
func NewRouter(pageHandler *PageHandler, jwtSecret string, log *logger.Logger, metrics ports.MetricsProvider) (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)
	engine.Use(
		RequestLogger(log, metrics),
		gin.Recovery(),
		IdentityMiddleware(jwtSecret, log),
	)

	engine.GET("/", pageHandler.ShowPage)
	engine.POST("/modal/open", pageHandler.OpenModal)
	engine.POST("/modal/cancel", pageHandler.CancelModal)
	engine.POST("/draft", pageHandler.UpdateDraft)
	engine.POST("/draft/submit", pageHandler.SubmitDraft)
	engine.GET("/previews/:id", pageHandler.ShowPreview)
	engine.GET("/healthz", pageHandler.Health)

	return engine, nil
}

func NewServer(router http.Handler, cfg config.HTTPServer, log *logger.Logger) *Server {
	address := fmt.Sprintf("%s:%d", cfg.Address, cfg.Port)
	return &Server{
		server: &http.Server{
			Addr:         address,
			Handler:      handlers.CompressHandler(router),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  time.Minute,
		},
		address: cfg.Address,
		port:    cfg.Port,
		log:     log,
	}
}

func (s *Server) Run() error {
	s.log.Info("Starting HTTP server", slog.String("address", s.address), slog.Int("port", s.port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
