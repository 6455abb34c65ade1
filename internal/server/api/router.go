package api

import (
	"errors"
	"log/slog"
	"net/http"

	"relaybox/internal/server/config"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SetupRouter creates and configures the echo router with all routes and
// middleware.
func SetupRouter(handler *Handler, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = envelopeErrorHandler

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))
	e.Use(RequestLogger())

	// Static assets
	e.Static("/", "public")

	// Health
	e.GET("/api/health", handler.HandleHealth)

	// Mail
	e.POST("/api/mail/send", handler.HandleSendMail)

	// Storage. The body cap rejects oversized uploads at the transport
	// layer, before the handler buffers anything.
	e.POST("/api/storage/upload", handler.HandleUpload,
		middleware.BodyLimit(cfg.MaxUploadSize),
		UploadRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)
	e.GET("/api/storage/files", handler.HandleListFiles)
	e.DELETE("/api/storage/files/:filename", handler.HandleDeleteFile)
	e.GET("/api/storage/download/:filename", handler.HandleDownloadFile)

	return e
}

// envelopeErrorHandler shapes errors raised outside the handlers (body
// limit, unknown routes, method mismatches) into the same JSON envelope
// the handlers produce.
func envelopeErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if err := c.JSON(code, echo.Map{
		"success": false,
		"message": message,
	}); err != nil {
		slog.Error("failed to write error response", "error", err)
	}
}
