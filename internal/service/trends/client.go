package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ashishpawar00/KeywordResearchTool/internal/domain/models"
	drepo "github.com/ashishpawar00/KeywordResearchTool/internal/domain/repository"
	xhttp "github.com/ashishpawar00/KeywordResearchTool/pkg/http"
	"github.com/ashishpawar00/KeywordResearchTool/pkg/util"
)

// Client talks to the Google Trends private JSON API. Every call is a
// two-step dance: explore issues a widget token, widgetdata/multiline
// returns the timeline for that token.
type Client struct {
	baseURL  string
	language string
	timezone int
	http     *xhttp.Client
}

// New creates a trends client with a fixed request timeout so a hung
// provider call cannot pin a worker indefinitely.
func New(baseURL, language string, timezone int, timeout time.Duration) *Client {
	return &Client{
		baseURL:  baseURL,
		language: language,
		timezone: timezone,
		http:     xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type exploreRequest struct {
	ComparisonItem []comparisonItem `json:"comparisonItem"`
	Category       int              `json:"category"`
	Property       string           `json:"property"`
}

type comparisonItem struct {
	Keyword string `json:"keyword"`
	Geo     string `json:"geo"`
	Time    string `json:"time"`
}

type exploreResponse struct {
	Widgets []widget `json:"widgets"`
}

type widget struct {
	ID      string          `json:"id"`
	Token   string          `json:"token"`
	Request json.RawMessage `json:"request"`
}

type multilineResponse struct {
	Default struct {
		TimelineData []timelinePoint `json:"timelineData"`
	} `json:"default"`
}

type timelinePoint struct {
	Time    string `json:"time"` // unix seconds as decimal string
	Value   []int  `json:"value"`
	HasData []bool `json:"hasData"`
}

// BuildPayload registers the keyword/timeframe pair with the provider and
// returns the TIMESERIES widget carrying the access token.
func (c *Client) BuildPayload(ctx context.Context, keyword string, tf drepo.Timeframe) (*widget, error) {
	req, err := json.Marshal(exploreRequest{
		ComparisonItem: []comparisonItem{{Keyword: keyword, Time: string(tf)}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal explore request: %w", err)
	}

	var raw []byte
	err = c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/trends/api/explore",
		QueryParams: map[string][]string{
			"hl":  {c.language},
			"tz":  {strconv.Itoa(c.timezone)},
			"req": {string(req)},
		},
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("explore: %w", err)
	}

	var resp exploreResponse
	if err := json.Unmarshal(stripXSSIPrefix(raw), &resp); err != nil {
		return nil, fmt.Errorf("decode explore: %w", err)
	}
	for i := range resp.Widgets {
		if resp.Widgets[i].ID == "TIMESERIES" {
			return &resp.Widgets[i], nil
		}
	}
	return nil, fmt.Errorf("explore: no TIMESERIES widget for %q", keyword)
}

// InterestOverTime fetches the interest series for keyword over tf.
// Missing values are coerced to 0; point times are strictly increasing.
func (c *Client) InterestOverTime(ctx context.Context, keyword string, tf drepo.Timeframe) (models.Series, error) {
	w, err := c.BuildPayload(ctx, keyword, tf)
	if err != nil {
		return nil, err
	}

	var raw []byte
	err = c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/trends/api/widgetdata/multiline",
		QueryParams: map[string][]string{
			"hl":    {c.language},
			"tz":    {strconv.Itoa(c.timezone)},
			"req":   {string(w.Request)},
			"token": {w.Token},
		},
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("widgetdata: %w", err)
	}

	var resp multilineResponse
	if err := json.Unmarshal(stripXSSIPrefix(raw), &resp); err != nil {
		return nil, fmt.Errorf("decode widgetdata: %w", err)
	}

	series := make(models.Series, 0, len(resp.Default.TimelineData))
	var last time.Time
	for _, p := range resp.Default.TimelineData {
		t, ok := util.ParseUnixSeconds(p.Time)
		if !ok {
			continue
		}
		if !t.After(last) {
			continue
		}
		v := 0
		if len(p.Value) > 0 && p.Value[0] > 0 {
			v = p.Value[0]
		}
		series = append(series, models.Point{Time: t, Value: v})
		last = t
	}
	return series, nil
}

// Google prefixes JSON bodies with a )]}' guard line; drop everything up to
// the first brace.
func stripXSSIPrefix(b []byte) []byte {
	for i, c := range b {
		if c == '{' || c == '[' {
			return b[i:]
		}
	}
	return b
}
