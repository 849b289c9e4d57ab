// Package api contains the HTTP handlers for the methods explorer service.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CalleFreme/ai-methods-explorer/internal/inference"
	"github.com/CalleFreme/ai-methods-explorer/internal/logging"
	"github.com/CalleFreme/ai-methods-explorer/internal/service"
	"github.com/CalleFreme/ai-methods-explorer/internal/webui"
	"github.com/CalleFreme/ai-methods-explorer/pkg/models"
)

// ServiceName labels the health endpoint and the root banner.
const ServiceName = "ai-methods-explorer"

// Server holds the dependencies for the API server.
type Server struct {
	service *service.AnalysisService
	logger  *logging.Logger
}

// NewServer creates a new Server.
func NewServer(svc *service.AnalysisService, logger *logging.Logger) *Server {
	return &Server{service: svc, logger: logger}
}

// RegisterHandlers mounts every route of the service on e.
func RegisterHandlers(e *echo.Echo, s *Server) {
	e.GET("/", s.Root)
	e.GET("/healthz", s.Health)
	e.GET("/tools/:id", s.ToolPage)
	e.GET("/api/methods", s.ListMethods)
	e.POST("/api/summarize", s.Summarize)
	e.POST("/api/sentiment", s.Sentiment)
	e.GET("/api/history", s.History)
}

// Root answers the banner for API clients and the catalog page for
// browsers, decided by the Accept header.
// (GET /)
func (s *Server) Root(c echo.Context) error {
	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML) {
		return c.HTML(http.StatusOK, webui.RenderCatalog())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "AI Methods Explorer API"})
}

// Health returns basic health status (always returns 200 OK).
// (GET /healthz)
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Service:   ServiceName,
		Version:   "1.0.0",
	})
}

// ListMethods returns the catalog of analysis methods.
// (GET /api/methods)
func (s *Server) ListMethods(c echo.Context) error {
	return c.JSON(http.StatusOK, models.MethodsResponse{Methods: s.service.Methods()})
}

// Summarize runs the summarization method on the posted text.
// (POST /api/summarize)
func (s *Server) Summarize(c echo.Context) error {
	var input models.TextInput
	if err := c.Bind(&input); err != nil {
		return problem(c, http.StatusBadRequest, "Invalid Request Body", err.Error())
	}

	result, err := s.service.Summarize(c.Request().Context(), input.Text)
	if err != nil {
		return s.analysisProblem(c, "summarize", err)
	}
	return c.JSON(http.StatusOK, result)
}

// Sentiment runs the sentiment method on the posted text.
// (POST /api/sentiment)
func (s *Server) Sentiment(c echo.Context) error {
	var input models.TextInput
	if err := c.Bind(&input); err != nil {
		return problem(c, http.StatusBadRequest, "Invalid Request Body", err.Error())
	}

	result, err := s.service.Sentiment(c.Request().Context(), input.Text)
	if err != nil {
		return s.analysisProblem(c, "sentiment", err)
	}
	return c.JSON(http.StatusOK, result)
}

// History returns the most recent analysis requests, newest first.
// (GET /api/history?limit=N)
func (s *Server) History(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return problem(c, http.StatusBadRequest, "Invalid Query Parameter", "limit must be an integer")
		}
		limit = n
	}

	records, err := s.service.History(c.Request().Context(), limit)
	if err != nil {
		s.logger.Error("Failed to read request history: %v", err)
		return problem(c, http.StatusInternalServerError, "History Unavailable", "could not read request history")
	}
	return c.JSON(http.StatusOK, models.HistoryResponse{Requests: records})
}

// ToolPage serves the per-method page. Unknown ids get a not-found page
// that navigates back to the catalog after a short delay.
// (GET /tools/:id)
func (s *Server) ToolPage(c echo.Context) error {
	id := c.Param("id")
	for _, method := range s.service.Methods() {
		if method.ID == id {
			return c.HTML(http.StatusOK, webui.RenderTool(method))
		}
	}
	return c.HTML(http.StatusNotFound, webui.RenderNotFound(id))
}

// analysisProblem maps a failed analysis to its problem document: 413 with
// the shorten-your-text message for oversized payloads, 404 for unknown
// methods, 502 naming the method for everything else.
func (s *Server) analysisProblem(c echo.Context, methodID string, err error) error {
	switch {
	case errors.Is(err, inference.ErrPayloadTooLarge):
		return problem(c, http.StatusRequestEntityTooLarge, "Payload Too Large",
			"Text is too long. Please use a shorter text (maximum 512 words).")
	case errors.Is(err, service.ErrUnknownMethod):
		return problem(c, http.StatusNotFound, "Method Not Found",
			fmt.Sprintf("no analysis method %q is configured", methodID))
	default:
		s.logger.Error("Analysis %q failed: %v", methodID, err)
		return problem(c, http.StatusBadGateway, "Analysis Failed",
			fmt.Sprintf("method %q: %v", methodID, err))
	}
}

// problem writes an RFC 7807 Problem Details response.
func problem(c echo.Context, status int, title, detail string) error {
	doc := models.ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return c.Blob(status, "application/problem+json", body)
}

// ErrorHandler renders errors that escape the handlers (echo middleware
// rejections included, BodyLimit's 413 among them) as problem documents.
func (s *Server) ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	detail := "internal server error"
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		detail = fmt.Sprintf("%v", httpErr.Message)
	}
	if status == http.StatusRequestEntityTooLarge {
		detail = "Text is too long. Please use a shorter text (maximum 512 words)."
	}

	if writeErr := problem(c, status, http.StatusText(status), detail); writeErr != nil {
		s.logger.Error("Failed to write error response: %v", writeErr)
	}
}
