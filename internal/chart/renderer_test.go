package chart

import (
	"bytes"
	"testing"
	"time"

	"github.com/ashishpawar00/KeywordResearchTool/internal/domain/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func sampleSeries(n int) models.Series {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := make(models.Series, n)
	for i := range s {
		s[i] = models.Point{Time: start.AddDate(0, 0, i), Value: 40 + i%30}
	}
	return s
}

func TestRenderProducesPNG(t *testing.T) {
	b, err := Render(sampleSeries(30), Title("python", models.OriginReal), 800, 400)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(b, pngMagic) {
		t.Fatalf("not a PNG, first bytes %v", b[:4])
	}
}

func TestRenderSinglePoint(t *testing.T) {
	b, err := Render(sampleSeries(1), "one point", 400, 200)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(b) == 0 {
		t.Fatalf("empty output")
	}
}

func TestRenderEmptySeries(t *testing.T) {
	if _, err := Render(nil, "empty", 400, 200); err == nil {
		t.Fatalf("expected error for empty series")
	}
}

func TestTitleByOrigin(t *testing.T) {
	if got := Title("go", models.OriginReal); got != `Google Trends: "go"` {
		t.Fatalf("real title: %s", got)
	}
	if got := Title("go", models.OriginSynthetic); got != `Demo Trend Data: "go"` {
		t.Fatalf("demo title: %s", got)
	}
}
