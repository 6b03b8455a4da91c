package microgame

import (
	"fmt"
	"time"

	"neuroflash/internal/model"
)

// mathQuiz Верно ли равенство a + b = c
type mathQuiz struct {
	base
	a, b, shown int
	correct     bool
}

func (g *mathQuiz) Activate(p Params, report Reporter) {
	g.activate(p, report)

	r := g.params.Rand
	// Слагаемые растут вместе со сложностью
	g.a = randInt(r, 2, 9+g.params.Difficulty)
	g.b = randInt(r, 2, 9+g.params.Difficulty)
	sum := g.a + g.b

	g.correct = r.IntN(2) == 0
	g.shown = sum
	if !g.correct {
		delta := randInt(r, 1, 3)
		if r.IntN(2) == 0 {
			delta = -delta
		}
		g.shown = sum + delta
	}
}

func (g *mathQuiz) Input(a model.Action, _ time.Time) {
	if !g.accepting() || a.Kind != model.ActionAnswer {
		return
	}
	var answer bool
	switch a.Value {
	case "true":
		answer = true
	case "false":
		answer = false
	default:
		return
	}
	g.finish(answer == g.correct)
}

func (g *mathQuiz) View(_ time.Time) map[string]any {
	v := g.view(model.GameMath)
	v["equation"] = fmt.Sprintf("%d + %d = %d", g.a, g.b, g.shown)
	return v
}
