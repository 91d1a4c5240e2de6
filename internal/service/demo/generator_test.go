package demo

import (
	"testing"
	"time"
)

func TestGenerateShape(t *testing.T) {
	g := NewGenerator()
	end := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := g.Generate("python", end)

	if len(s) != 91 {
		t.Fatalf("want 91 points, got %d", len(s))
	}
	for i, p := range s {
		if p.Value < 10 {
			t.Fatalf("point %d below floor: %d", i, p.Value)
		}
		if i > 0 && !s[i-1].Time.Before(p.Time) {
			t.Fatalf("dates not strictly increasing at %d: %v >= %v", i, s[i-1].Time, p.Time)
		}
	}
}

func TestGenerateOneDayApart(t *testing.T) {
	g := NewGenerator()
	s := g.Generate("music", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	for i := 1; i < len(s); i++ {
		if got := s[i].Time.Sub(s[i-1].Time); got != 24*time.Hour {
			t.Fatalf("gap at %d: %v", i, got)
		}
	}
}

func TestGenerateFloorsExtremeJitter(t *testing.T) {
	// Force the most negative offset everywhere; values must still respect
	// the floor since the lowest anchor is 50.
	g := NewGeneratorWithRand(func(int) int { return 0 }) // offset -10
	s := g.Generate("travel", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	for i, p := range s {
		if p.Value < 10 {
			t.Fatalf("point %d below floor: %d", i, p.Value)
		}
		if p.Value > 90+10 {
			t.Fatalf("point %d above pattern ceiling: %d", i, p.Value)
		}
	}
}
