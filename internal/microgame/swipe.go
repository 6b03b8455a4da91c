package microgame

import (
	"time"

	"neuroflash/internal/model"
)

var swipeDirections = []string{"up", "down", "left", "right"}

var swipeOpposite = map[string]string{
	"up":    "down",
	"down":  "up",
	"left":  "right",
	"right": "left",
}

// swipeReverseFrom С этого уровня иногда нужно свайпать в обратную сторону
const swipeReverseFrom = 4

// swipe Свайпнуть по стрелке (или против неё)
type swipe struct {
	base
	arrow   string
	reverse bool
}

func (g *swipe) Activate(p Params, report Reporter) {
	g.activate(p, report)

	r := g.params.Rand
	g.arrow = swipeDirections[r.IntN(len(swipeDirections))]
	g.reverse = g.params.Difficulty >= swipeReverseFrom && r.IntN(2) == 0
}

func (g *swipe) expected() string {
	if g.reverse {
		return swipeOpposite[g.arrow]
	}
	return g.arrow
}

func (g *swipe) Input(a model.Action, _ time.Time) {
	if !g.accepting() || a.Kind != model.ActionSwipe {
		return
	}
	if _, ok := swipeOpposite[a.Value]; !ok {
		return
	}
	g.finish(a.Value == g.expected())
}

func (g *swipe) View(_ time.Time) map[string]any {
	v := g.view(model.GameSwipe)
	v["arrow"] = g.arrow
	v["reverse"] = g.reverse
	return v
}
