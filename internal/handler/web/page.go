package web

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ashishpawar00/KeywordResearchTool/internal/chart"
	"github.com/ashishpawar00/KeywordResearchTool/internal/usecase"
	applogger "github.com/ashishpawar00/KeywordResearchTool/pkg/logger"
	"github.com/ashishpawar00/KeywordResearchTool/pkg/util"
)

//go:embed templates/*.html
var templateFS embed.FS

// ValidationMessage is shown when the form is submitted without a keyword.
const ValidationMessage = "Please enter a keyword to search."

const recentRows = 10

// PageHandler drives the browser flow: empty form on GET, analysis results
// or an error message on POST.
type PageHandler struct {
	logger    *applogger.Logger
	analyzer  *usecase.Analyzer
	chartPath string
	templates *template.Template
}

func NewPageHandler(l *applogger.Logger, analyzer *usecase.Analyzer, chartPath string) (*PageHandler, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &PageHandler{
		logger:    l,
		analyzer:  analyzer,
		chartPath: chartPath,
		templates: tpl,
	}, nil
}

func (h *PageHandler) RegisterRoutes(e *echo.Echo) {
	e.Renderer = h
	e.GET("/", h.Index)
	e.POST("/", h.Index)
	e.Static("/static", filepath.Dir(h.chartPath))
}

// Render implements echo.Renderer.
func (h *PageHandler) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return h.templates.ExecuteTemplate(w, name, data)
}

type tableRow struct {
	Date  string
	Value int
}

type pageData struct {
	Keyword     string
	Error       string
	HasResults  bool
	IsDemoData  bool
	WindowLabel string
	Rows        []tableRow
	ChartURL    string
}

// Index shows the form and, on POST, the analysis outcome. Every pipeline
// failure surfaces as a message on the page; the handler never lets an
// error escape.
func (h *PageHandler) Index(c echo.Context) error {
	data := pageData{}

	if c.Request().Method == http.MethodPost {
		keyword := strings.TrimSpace(c.FormValue("keyword"))
		if keyword == "" {
			data.Error = ValidationMessage
		} else {
			h.analyze(c, keyword, &data)
		}
	}

	return c.Render(http.StatusOK, "index.html", data)
}

func (h *PageHandler) analyze(c echo.Context, keyword string, data *pageData) {
	data.Keyword = keyword

	out, err := h.analyzer.Run(c.Request().Context(), keyword)
	if err != nil {
		if errors.Is(err, usecase.ErrNoData) {
			data.Error = `No trend data found for "` + keyword + `". ` +
				"Possible reasons: the keyword is too niche or has no search volume, " +
				"or the provider is temporarily unavailable. " +
				`Try more common keywords like "python", "music", or "travel", ` +
				"and wait 10+ seconds between searches."
			return
		}
		h.logger.Error("page analysis failed", applogger.String("keyword", keyword), applogger.Error(err))
		data.Error = "Error processing your request. Please try again in 30 seconds."
		return
	}

	if err := chart.WriteFile(h.chartPath, out.ChartPNG); err != nil {
		h.logger.Error("chart write failed", applogger.Error(err))
		data.Error = "Error processing your request. Please try again in 30 seconds."
		return
	}

	res := out.Result
	recent := res.Series.Tail(recentRows)
	rows := make([]tableRow, len(recent))
	for i, p := range recent {
		rows[i] = tableRow{Date: util.FormatDate(p.Time), Value: p.Value}
	}

	data.HasResults = true
	data.IsDemoData = res.IsDemo()
	data.WindowLabel = res.WindowLabel
	data.Rows = rows
	// Cache-busting query so the browser re-fetches the overwritten file.
	data.ChartURL = "/static/" + filepath.Base(h.chartPath) + "?t=" + time.Now().UTC().Format("20060102150405")
}
