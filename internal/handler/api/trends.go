package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ashishpawar00/KeywordResearchTool/internal/chart"
	"github.com/ashishpawar00/KeywordResearchTool/internal/domain/models"
	"github.com/ashishpawar00/KeywordResearchTool/internal/service/stream"
	"github.com/ashishpawar00/KeywordResearchTool/internal/usecase"
	xhttp "github.com/ashishpawar00/KeywordResearchTool/pkg/http"
	applogger "github.com/ashishpawar00/KeywordResearchTool/pkg/logger"
	"github.com/ashishpawar00/KeywordResearchTool/pkg/util"
)

// TrendsHandler serves the JSON API: analyze, health, history and the
// websocket event stream.
type TrendsHandler struct {
	logger    *applogger.Logger
	analyzer  *usecase.Analyzer
	auditor   *usecase.Auditor
	hub       *stream.Hub
	chartPath string
}

func NewTrendsHandler(l *applogger.Logger, analyzer *usecase.Analyzer, auditor *usecase.Auditor, hub *stream.Hub, chartPath string) *TrendsHandler {
	return &TrendsHandler{
		logger:    l,
		analyzer:  analyzer,
		auditor:   auditor,
		hub:       hub,
		chartPath: chartPath,
	}
}

func (h *TrendsHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/analyze", h.Analyze)
	e.GET("/test", h.Health)
	e.GET("/api/history", h.History)
	if h.hub != nil {
		e.GET("/ws", h.hub.Serve)
	}
}

// Analyze runs the fetch pipeline for the posted keyword and returns the
// raw series as JSON.
func (h *TrendsHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Please enter a keyword"})
	}
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Please enter a keyword"})
	}

	out, err := h.analyzer.Run(c.Request().Context(), keyword)
	if err != nil {
		if errors.Is(err, usecase.ErrNoData) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: `No trend data found for "` + keyword + `". Try more common keywords like "python", "music", or "travel".`,
			})
		}
		h.logger.Error("analyze failed", applogger.String("keyword", keyword), applogger.Error(err))
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Server error: " + err.Error() + ". Please try again later.",
		})
	}

	if err := chart.WriteFile(h.chartPath, out.ChartPNG); err != nil {
		h.logger.Error("chart write failed", applogger.Error(err))
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Server error: " + err.Error() + ". Please try again later.",
		})
	}

	return c.JSON(http.StatusOK, models.NewAnalyzeResponse(out.Result))
}

// Health reports liveness with a server timestamp.
func (h *TrendsHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "success",
		Message:   "API is working correctly",
		Timestamp: float64(time.Now().UnixNano()) / float64(time.Second),
	})
}

// History returns the recent fetch audit trail.
func (h *TrendsHandler) History(c echo.Context) error {
	limit := util.ParseIntDefault(c.QueryParam("limit"), 50)
	events, err := h.auditor.History(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("history query failed", applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("history unavailable").WithError(err))
	}
	if events == nil {
		events = []models.FetchEvent{}
	}
	return xhttp.SuccessResponse(c, events)
}
