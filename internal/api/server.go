package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/riceguard/riceguard-go/internal/chatbot"
	"github.com/riceguard/riceguard-go/internal/conf"
	"github.com/riceguard/riceguard-go/internal/datastore"
	"github.com/riceguard/riceguard-go/internal/errors"
	"github.com/riceguard/riceguard-go/internal/logging"
	"github.com/riceguard/riceguard-go/internal/report"
)

// shutdownTimeout bounds the graceful drain of in-flight requests.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP server for RiceGuard. It owns the Echo instance,
// middleware and the API controller.
type Server struct {
	echo       *echo.Echo
	settings   *conf.Settings
	logger     *slog.Logger
	dataStore  datastore.Interface
	detector   Detector
	controller *Controller
}

// ServerOption is a functional option for configuring the Server.
type ServerOption func(*Server)

// WithDataStore sets the datastore for the server.
func WithDataStore(ds datastore.Interface) ServerOption {
	return func(s *Server) {
		s.dataStore = ds
	}
}

// WithDetector sets the disease detector for the server.
func WithDetector(d Detector) ServerOption {
	return func(s *Server) {
		s.detector = d
	}
}

// NewServer creates a fully wired HTTP server.
func NewServer(settings *conf.Settings, opts ...ServerOption) *Server {
	s := &Server{
		echo:     echo.New(),
		settings: settings,
		logger:   logging.ForService("http"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.initMiddleware()

	s.controller = New(s.echo, s.dataStore, settings, s.detector,
		chatbot.New(), report.New(settings.Output.Reports))

	return s
}

// Controller exposes the API controller, mainly for tests.
func (s *Server) Controller() *Controller {
	return s.controller
}

func (s *Server) initMiddleware() {
	s.echo.Use(echomw.Recover())
	s.echo.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, "X-Admin-Token"},
	}))
	// Keep the framework limit above the 5 MB upload validation so handlers
	// report the size error instead of a bare 413.
	s.echo.Use(echomw.BodyLimit("6M"))
	s.echo.Use(s.requestLogger())
}

// requestLogger logs each request with method, path, status and latency.
func (s *Server) requestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"ip", c.RealIP(),
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error.Error())
				s.logger.Error("request", attrs...)
			} else {
				s.logger.Info("request", attrs...)
			}
			return nil
		},
	})
}

// Start runs the server until ctx is cancelled or SIGINT/SIGTERM arrives,
// then drains in-flight requests within the shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%s", s.settings.WebServer.Host, s.settings.WebServer.Port)

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- errors.New(err).
				Component("api").
				Category(errors.CategoryHTTP).
				Context("addr", addr).
				Build()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		s.logger.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		s.logger.Info("server context cancelled")
	}

	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(ctx); err != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
		return err
	}
	s.logger.Info("http server stopped")
	return s.controller.Shutdown()
}
