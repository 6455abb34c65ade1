package api

import (
	"errors"
	"log/slog"
	"net/http"

	"relaybox/internal/server/service"

	"github.com/labstack/echo/v4"
)

// Handler contains the HTTP handlers for the gateway API.
type Handler struct {
	storage *service.StorageService
	mail    *service.MailService
}

// NewHandler creates a new handler with the given service dependencies.
func NewHandler(storage *service.StorageService, mail *service.MailService) *Handler {
	return &Handler{storage: storage, mail: mail}
}

// HandleHealth handles GET /api/health.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"message": "Server is running",
	})
}

// HandleSendMail handles POST /api/mail/send.
// Accepts a JSON body with to, subject and at least one of text/html.
func (h *Handler) HandleSendMail(c echo.Context) error {
	var req service.SendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	messageID, err := h.mail.Send(c.Request().Context(), req)
	if err != nil {
		return mapServiceError(c, err, "Failed to send email")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Email sent successfully",
		"messageId": messageID,
	})
}

// HandleUpload handles POST /api/storage/upload.
// Accepts a multipart form with a single "file" field. The body-size cap
// is enforced by middleware before this handler runs.
func (h *Handler) HandleUpload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return mapServiceError(c, service.ErrNoFile, "Failed to upload file")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return mapServiceError(c, err, "Failed to upload file")
	}
	defer src.Close()

	result, err := h.storage.Upload(fileHeader.Filename, src)
	if err != nil {
		return mapServiceError(c, err, "Failed to upload file")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "File uploaded successfully",
		"file":    result,
	})
}

// HandleListFiles handles GET /api/storage/files.
func (h *Handler) HandleListFiles(c echo.Context) error {
	files, err := h.storage.List()
	if err != nil {
		return mapServiceError(c, err, "Failed to list files")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"files":   files,
	})
}

// HandleDeleteFile handles DELETE /api/storage/files/:filename.
func (h *Handler) HandleDeleteFile(c echo.Context) error {
	if err := h.storage.Delete(c.Param("filename")); err != nil {
		return mapServiceError(c, err, "Failed to delete file")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "File deleted successfully",
	})
}

// HandleDownloadFile handles GET /api/storage/download/:filename.
// Streams the stored bytes with an attachment disposition carrying the
// stored name; the original name is not recoverable from storage.
func (h *Handler) HandleDownloadFile(c echo.Context) error {
	storedName := c.Param("filename")

	path, err := h.storage.DownloadPath(storedName)
	if err != nil {
		return mapServiceError(c, err, "Failed to download file")
	}

	return c.Attachment(path, storedName)
}

// mapServiceError translates service-layer errors into the JSON envelope.
// Unknown errors become a 500 with the underlying message in the "error"
// field, matching the gateway's trust model of an internal tool.
func mapServiceError(c echo.Context, err error, failMessage string) error {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Missing required fields: to, subject, and text/html",
		})
	case errors.Is(err, service.ErrNoFile):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "No file uploaded",
		})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"success": false,
			"message": "File not found",
		})
	default:
		slog.Error("request failed",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": failMessage,
			"error":   err.Error(),
		})
	}
}
