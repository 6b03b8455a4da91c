package microgame

import (
	"time"

	"neuroflash/internal/model"
)

// reflex Дождаться сигнала и тапнуть. Тап до сигнала - проигрыш
type reflex struct {
	base
	goAt time.Time
}

func (g *reflex) Activate(p Params, report Reporter) {
	g.activate(p, report)

	// Сигнал появляется между 25% и 60% раунда, чтобы успеть отреагировать
	// даже на максимальной скорости
	d := p.Duration
	if d <= 0 {
		d = 4 * time.Second
	}
	lo := int(d.Milliseconds() / 4)
	hi := int(d.Milliseconds() * 3 / 5)
	g.goAt = g.params.Now.Add(time.Duration(randInt(g.params.Rand, lo, hi)) * time.Millisecond)
}

func (g *reflex) Input(a model.Action, now time.Time) {
	if !g.accepting() || a.Kind != model.ActionTap {
		return
	}
	g.finish(!now.Before(g.goAt))
}

func (g *reflex) View(now time.Time) map[string]any {
	v := g.view(model.GameReflex)
	if now.Before(g.goAt) {
		v["status"] = "WAIT"
	} else {
		v["status"] = "GO"
	}
	return v
}
