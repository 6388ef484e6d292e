// Package api implements the HTTP surface of RiceGuard: detection uploads,
// history, feedback, forum, chatbot, report generation, contact form and the
// admin dashboard.
package api

import (
	"crypto/rand"
	"image"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/riceguard/riceguard-go/internal/chatbot"
	"github.com/riceguard/riceguard-go/internal/conf"
	"github.com/riceguard/riceguard-go/internal/datastore"
	"github.com/riceguard/riceguard-go/internal/logging"
	"github.com/riceguard/riceguard-go/internal/report"
	"github.com/riceguard/riceguard-go/internal/ricenet"
)

// Detector runs inference on an image file and returns the decoded image
// together with the detected boxes.
type Detector interface {
	DetectFile(path string) (image.Image, []ricenet.Box, error)
}

// Controller manages the API routes and handlers.
type Controller struct {
	Echo     *echo.Echo
	DS       datastore.Interface
	Settings *conf.Settings
	Detector Detector
	Chatbot  *chatbot.Engine
	Reports  *report.Generator

	logger        *slog.Logger
	loggerClose   func() error
	logLevel      *slog.LevelVar
	overviewCache *cache.Cache // admin overview aggregates, 1 minute TTL
	upgrader      websocket.Upgrader
	startTime     time.Time
}

// New creates a Controller and registers all routes on e.
func New(e *echo.Echo, ds datastore.Interface, settings *conf.Settings,
	detector Detector, bot *chatbot.Engine, reports *report.Generator) *Controller {

	c := &Controller{
		Echo:          e,
		DS:            ds,
		Settings:      settings,
		Detector:      detector,
		Chatbot:       bot,
		Reports:       reports,
		logLevel:      new(slog.LevelVar),
		overviewCache: cache.New(time.Minute, 5*time.Minute),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The chat widget is served from arbitrary dev hosts.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		startTime: time.Now(),
	}

	if settings.WebServer.Debug {
		c.logLevel.Set(slog.LevelDebug)
	}

	logPath := filepath.Join(settings.Output.Logs, "web.log")
	logger, closeFunc, err := logging.NewFileLogger(logPath, "api", c.logLevel)
	if err != nil {
		logging.Error("failed to initialize API file logger, falling back to default",
			"error", err, "path", logPath)
		c.logger = logging.ForService("api")
		c.loggerClose = func() error { return nil }
	} else {
		c.logger = logger
		c.loggerClose = closeFunc
	}

	c.initRoutes()
	return c
}

// Shutdown releases resources held by the controller, closing the rotating
// log file.
func (c *Controller) Shutdown() error {
	return c.loggerClose()
}

// initRoutes registers all API endpoints.
func (c *Controller) initRoutes() {
	// A zero rate limit disables throttling on the detect endpoint.
	var detectMiddleware []echo.MiddlewareFunc
	if c.Settings.WebServer.RateLimit > 0 {
		detectMiddleware = append(detectMiddleware, middleware.RateLimiter(
			middleware.NewRateLimiterMemoryStore(rate.Limit(c.Settings.WebServer.RateLimit))))
	}

	c.Echo.POST("/detect", c.HandleDetect, detectMiddleware...)
	c.Echo.GET("/history", c.HandleHistory)
	c.Echo.DELETE("/delete/:id", c.HandleDelete)
	c.Echo.POST("/feedback", c.HandleFeedback)
	c.Echo.GET("/forum", c.HandleForumList)
	c.Echo.POST("/forum", c.HandleForumPost)
	c.Echo.POST("/chatbot", c.HandleChatbot)
	c.Echo.POST("/generate_report", c.HandleGenerateReport)
	c.Echo.POST("/contact", c.HandleContact)
	c.Echo.GET("/admin/overview", c.HandleAdminOverview)
	c.Echo.GET("/ws/chat", c.HandleChatSocket)
	c.Echo.GET("/health", c.HandleHealth)

	c.Echo.Static("/uploads", c.Settings.Output.Uploads)
	c.Echo.Static("/results", c.Settings.Output.Results)
	c.Echo.Static("/reports", c.Settings.Output.Reports)
}

// ErrorResponse is the JSON shape of every error this API returns.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Code          int    `json:"code"`
	CorrelationID string `json:"correlation_id"`
}

// NewErrorResponse creates a new API error response with a correlation ID.
func NewErrorResponse(err error, message string, code int) *ErrorResponse {
	errorStr := message
	if err != nil {
		errorStr = err.Error()
	}
	return &ErrorResponse{
		Error:         errorStr,
		Message:       message,
		Code:          code,
		CorrelationID: generateCorrelationID(),
	}
}

// generateCorrelationID creates a short random identifier for error tracking.
func generateCorrelationID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 8

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "ERR-RAND"
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}

// HandleError logs err and returns a JSON error response. Internal error
// details stay in the server log; the client sees only message.
func (c *Controller) HandleError(ctx echo.Context, err error, message string, code int) error {
	resp := NewErrorResponse(err, message, code)

	var errorStr string
	if err != nil {
		errorStr = err.Error()
	} else {
		errorStr = message
	}
	c.logger.Error("request failed",
		"correlation_id", resp.CorrelationID,
		"message", message,
		"error", errorStr,
		"code", code,
		"path", ctx.Request().URL.Path,
		"method", ctx.Request().Method,
		"ip", ctx.RealIP(),
	)

	if code >= http.StatusInternalServerError {
		// Never leak inference or database details to the client.
		resp.Error = message
	}
	return ctx.JSON(code, resp)
}
