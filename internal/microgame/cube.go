package microgame

import (
	"math"
	"time"

	"neuroflash/internal/model"
)

const (
	// cubeDegreesPerSecond 4 градуса за кадр при 60 кадрах в секунду
	cubeDegreesPerSecond = 240.0
	// cubeTolerance Допуск от лицевой грани в градусах
	cubeTolerance = 45.0
)

// cube Остановить вращающийся куб, когда коробка смотрит на игрока
type cube struct {
	base
	offset  float64
	speed   float64
	stopped bool
	stopAt  float64
}

func (g *cube) Activate(p Params, report Reporter) {
	g.activate(p, report)

	// Начинаем с тыльной стороны, чтобы мгновенный тап не выигрывал
	g.offset = float64(randInt(g.params.Rand, 90, 270))
	g.speed = cubeDegreesPerSecond * scale(g.params.Difficulty, 0.05)
	g.stopped = false
	g.stopAt = 0
}

// angle Угол поворота в [0, 360)
func (g *cube) angle(now time.Time) float64 {
	if g.stopped {
		return g.stopAt
	}
	deg := g.offset + g.elapsed(now).Seconds()*g.speed
	return math.Mod(deg, 360)
}

func (g *cube) Input(a model.Action, now time.Time) {
	if !g.accepting() || a.Kind != model.ActionTap {
		return
	}
	g.stopAt = g.angle(now)
	g.stopped = true
	g.finish(g.stopAt <= cubeTolerance || g.stopAt >= 360-cubeTolerance)
}

func (g *cube) View(now time.Time) map[string]any {
	v := g.view(model.GameCube)
	v["angle"] = g.angle(now)
	v["stopped"] = g.stopped
	return v
}
