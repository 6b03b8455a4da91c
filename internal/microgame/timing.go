package microgame

import (
	"math"
	"time"

	"neuroflash/internal/model"
)

const (
	timingPeriod    = 2 * time.Second // полный проход туда-обратно на 1 уровне
	timingZoneWidth = 30.0
	timingMinZone   = 10.0
)

// timingBar Остановить бегунок внутри подсвеченной зоны
type timingBar struct {
	base
	zoneFrom, zoneTo float64
	period           time.Duration
	stopped          bool
	stopAt           float64
}

func (g *timingBar) Activate(p Params, report Reporter) {
	g.activate(p, report)

	width := math.Max(timingMinZone, timingZoneWidth-2*float64(g.params.Difficulty-1))
	center := float64(randInt(g.params.Rand, 20, 80))
	g.zoneFrom = math.Max(0, center-width/2)
	g.zoneTo = math.Min(100, center+width/2)
	g.period = time.Duration(float64(timingPeriod) / scale(g.params.Difficulty, 0.1))
	g.stopped = false
	g.stopAt = 0
}

// position Позиция бегунка 0..100, движение "пила" туда-обратно
func (g *timingBar) position(now time.Time) float64 {
	if g.stopped {
		return g.stopAt
	}
	phase := math.Mod(float64(g.elapsed(now))/float64(g.period), 1)
	if phase < 0.5 {
		return phase * 200
	}
	return (1 - phase) * 200
}

func (g *timingBar) Input(a model.Action, now time.Time) {
	if !g.accepting() || a.Kind != model.ActionTap {
		return
	}
	g.stopAt = g.position(now)
	g.stopped = true
	g.finish(g.stopAt >= g.zoneFrom && g.stopAt <= g.zoneTo)
}

func (g *timingBar) View(now time.Time) map[string]any {
	v := g.view(model.GameTimingBar)
	v["position"] = g.position(now)
	v["zone"] = []float64{g.zoneFrom, g.zoneTo}
	return v
}
