package demo

import (
	"math/rand"
	"time"

	"github.com/ashishpawar00/KeywordResearchTool/internal/domain/models"
	"github.com/ashishpawar00/KeywordResearchTool/pkg/util"
)

// basePattern is the repeating anchor shape of the synthetic series: a ramp
// up to 90 and back down.
var basePattern = []int{50, 55, 60, 65, 70, 75, 80, 85, 90, 85, 80, 75, 70, 65, 60}

const (
	windowDays = 90
	jitter     = 10 // uniform offset in [-jitter, jitter]
	floorValue = 10
)

// Generator produces a synthetic daily interest series used whenever the
// real provider is unavailable. It never fails and performs no I/O.
type Generator struct {
	intn func(n int) int
}

// NewGenerator returns a generator with time-seeded randomness.
func NewGenerator() *Generator {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Generator{intn: r.Intn}
}

// NewGeneratorWithRand injects the randomness source. Test hook.
func NewGeneratorWithRand(intn func(n int) int) *Generator {
	return &Generator{intn: intn}
}

// Generate returns one point per day over the 90-day window ending at end,
// inclusive on both ends (91 points). The keyword does not influence the
// shape; it is accepted to mirror the real source's call signature.
func (g *Generator) Generate(_ string, end time.Time) models.Series {
	start := util.DaysBack(end, windowDays)
	series := make(models.Series, 0, windowDays+1)
	for i := 0; i <= windowDays; i++ {
		v := basePattern[i%len(basePattern)] + g.intn(2*jitter+1) - jitter
		if v < floorValue {
			v = floorValue
		}
		series = append(series, models.Point{
			Time:  start.AddDate(0, 0, i),
			Value: v,
		})
	}
	return series
}
