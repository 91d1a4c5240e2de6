package api

import (
	"encoding/json"
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

func newTestHandler(t *testing.T) (*TrendsHandler, *echo.Echo) {
	t.Helper()
	return newTestHandlerAt(t, filepath.Join(t.TempDir(), "chart.png"))
}

func newTestHandlerAt(t *testing.T, chartPath string) (*TrendsHandler, *echo.Echo) {
	t.Helper()
	// nil source: the provider is unreachable, every fetch goes synthetic.
	fetcher := usecase.NewTrendFetcher(nil, demo.NewGenerator(), applogger.Nop(), nopMetrics{})
	analyzer := usecase.NewAnalyzer(ratelimit.New(0), fetcher, nil, nopMetrics{}, applogger.Nop(), 400, 200)
	auditor := usecase.NewAuditor(nil, nil, nil, applogger.Nop())

	h := NewTrendsHandler(applogger.Nop(), analyzer, auditor, nil, chartPath)
	e := echo.New()
	h.RegisterRoutes(e)
	return h, e
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeWithFailingProviderReturnsDemoData(t *testing.T) {
	_, e := newTestHandler(t)

	rec := postForm(e, "/analyze", url.Values{"keyword": {"python"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.IsDemoData)
	assert.Equal(t, "python", resp.Keyword)
	assert.Equal(t, models.DemoWindowLabel, resp.WindowLabel)
	assert.Len(t, resp.Dates, 91)
	assert.Len(t, resp.Values, 91)
	for _, v := range resp.Values {
		assert.GreaterOrEqual(t, v, 10)
	}
}

func TestAnalyzeMissingKeyword(t *testing.T) {
	_, e := newTestHandler(t)

	rec := postForm(e, "/analyze", url.Values{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Please enter a keyword", resp.Error)
}

func TestAnalyzeBlankKeyword(t *testing.T) {
	_, e := newTestHandler(t)

	rec := postForm(e, "/analyze", url.Values{"keyword": {"   "}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeChartWriteFailure(t *testing.T) {
	// A regular file where the chart directory should be makes the write fail.
	blocker := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, e := newTestHandlerAt(t, filepath.Join(blocker, "chart.png"))
	rec := postForm(e, "/analyze", url.Values{"keyword": {"python"}})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "Server error:")
	assert.Contains(t, resp.Error, "Please try again later.")
}

func TestHealthEndpoint(t *testing.T) {
	_, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.NotZero(t, resp.Timestamp)
}

func TestHistoryWithoutStoreIsEmpty(t *testing.T) {
	_, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}
