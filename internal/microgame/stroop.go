package microgame

import (
	"time"

	"neuroflash/internal/model"
)

var stroopColors = []string{"RED", "BLUE", "GREEN", "YELLOW"}

// stroop Выбрать цвет чернил, а не слово
type stroop struct {
	base
	word    int
	ink     int
	options [2]int
}

func (g *stroop) Activate(p Params, report Reporter) {
	g.activate(p, report)

	r := g.params.Rand
	n := len(stroopColors)
	g.word = r.IntN(n)
	g.ink = r.IntN(n)

	// Второй вариант - любой цвет, кроме правильного
	wrong := r.IntN(n - 1)
	if wrong >= g.ink {
		wrong++
	}
	if r.IntN(2) == 0 {
		g.options = [2]int{g.ink, wrong}
	} else {
		g.options = [2]int{wrong, g.ink}
	}
}

func (g *stroop) Input(a model.Action, _ time.Time) {
	if !g.accepting() || a.Kind != model.ActionSelect {
		return
	}
	if a.Index < 0 || a.Index >= len(g.options) {
		return
	}
	g.finish(g.options[a.Index] == g.ink)
}

func (g *stroop) View(_ time.Time) map[string]any {
	v := g.view(model.GameStroop)
	v["word"] = stroopColors[g.word]
	v["ink"] = stroopColors[g.ink]
	v["options"] = []string{stroopColors[g.options[0]], stroopColors[g.options[1]]}
	return v
}
