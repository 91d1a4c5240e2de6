package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashishpawar00/KeywordResearchTool/internal/domain/models"
	"github.com/ashishpawar00/KeywordResearchTool/internal/service/demo"
	"github.com/ashishpawar00/KeywordResearchTool/internal/service/ratelimit"
	"github.com/ashishpawar00/KeywordResearchTool/internal/usecase"
	applogger "github.com/ashishpawar00/KeywordResearchTool/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordFetch(models.Origin, string) {}
func (nopMetrics) RecordFetchLatency(float64)        {}
func (nopMetrics) RecordRateLimitWait(time.Duration) {}
func (nopMetrics) RecordCandidateFailure(string)     {}

func newTestPage(t *testing.T) (*echo.Echo, string) {
	t.Helper()
	fetcher := usecase.NewTrendFetcher(nil, demo.NewGenerator(), applogger.Nop(), nopMetrics{})
	analyzer := usecase.NewAnalyzer(ratelimit.New(0), fetcher, nil, nopMetrics{}, applogger.Nop(), 400, 200)

	chartPath := filepath.Join(t.TempDir(), "chart.png")
	h, err := NewPageHandler(applogger.Nop(), analyzer, chartPath)
	require.NoError(t, err)

	e := echo.New()
	h.RegisterRoutes(e)
	return e, chartPath
}

func TestIndexGetShowsForm(t *testing.T) {
	e, _ := newTestPage(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="keyword"`)
	assert.NotContains(t, rec.Body.String(), ValidationMessage)
}

func TestIndexPostEmptyKeyword(t *testing.T) {
	e, chartPath := newTestPage(t)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(url.Values{"keyword": {"  "}}.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ValidationMessage)

	// A rejected submission must not touch the chart file.
	_, err := os.Stat(chartPath)
	assert.True(t, os.IsNotExist(err))
}

func TestIndexPostRendersResults(t *testing.T) {
	e, chartPath := newTestPage(t)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(url.Values{"keyword": {"python"}}.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "python")
	assert.Contains(t, body, models.DemoWindowLabel)
	assert.Contains(t, body, "/static/chart.png?t=")
	// The last ten days of the series feed the table.
	assert.Equal(t, 10, strings.Count(body, "</td><td>"))

	png, err := os.ReadFile(chartPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(png), "\x89PNG"))
}
