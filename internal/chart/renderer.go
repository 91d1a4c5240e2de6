package chart

import (
	"bytes"
	"fmt"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ashishpawar00/KeywordResearchTool/internal/domain/models"
)

var lineColor = drawing.Color{R: 0x43, G: 0x61, B: 0xee, A: 255}

// Title builds the chart heading, which varies by series origin.
func Title(keyword string, origin models.Origin) string {
	if origin == models.OriginSynthetic {
		return fmt.Sprintf("Demo Trend Data: %q", keyword)
	}
	return fmt.Sprintf("Google Trends: %q", keyword)
}

// Render draws the series as a PNG line chart and returns the encoded
// bytes. Persistence is the caller's problem.
func Render(series models.Series, title string, width, height int) ([]byte, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("render: empty series")
	}
	if width <= 0 {
		width = 1200
	}
	if height <= 0 {
		height = 600
	}

	times := make([]time.Time, len(series))
	values := make([]float64, len(series))
	for i, p := range series {
		times[i] = p.Time
		values[i] = float64(p.Value)
	}
	// go-chart refuses single-point series; pad with a flat second point.
	if len(times) == 1 {
		times = append(times, times[0].Add(time.Second))
		values = append(values, values[0])
	}

	ch := chart.Chart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 30, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Search Interest",
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    title,
				XValues: times,
				YValues: values,
				Style: chart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
