package microgame

import (
	"time"

	"neuroflash/internal/model"
)

const (
	memoryCells       = 9
	memoryShowTime    = time.Second
	memoryBaseTargets = 3
	memoryMaxTargets  = 5
)

// memory Запомнить подсвеченные клетки 3x3 и повторить
type memory struct {
	base
	targets  [memoryCells]bool
	selected [memoryCells]bool
	count    int
}

func (g *memory) Activate(p Params, report Reporter) {
	g.activate(p, report)

	g.targets = [memoryCells]bool{}
	g.selected = [memoryCells]bool{}
	g.count = min(memoryMaxTargets, memoryBaseTargets+(g.params.Difficulty-1)/4)

	perm := g.params.Rand.Perm(memoryCells)
	for _, idx := range perm[:g.count] {
		g.targets[idx] = true
	}
}

// recall Фаза повторения наступает после показа
func (g *memory) recall(now time.Time) bool {
	return g.elapsed(now) >= memoryShowTime
}

func (g *memory) Input(a model.Action, now time.Time) {
	if !g.accepting() || a.Kind != model.ActionSelect || !g.recall(now) {
		return
	}
	if a.Index < 0 || a.Index >= memoryCells || g.selected[a.Index] {
		return
	}
	g.selected[a.Index] = true

	// Промах - сразу проигрыш
	if !g.targets[a.Index] {
		g.finish(false)
		return
	}

	found := 0
	for i := range g.targets {
		if g.targets[i] && g.selected[i] {
			found++
		}
	}
	if found == g.count {
		g.finish(true)
	}
}

func (g *memory) View(now time.Time) map[string]any {
	v := g.view(model.GameMemory)
	showing := !g.recall(now)

	grid := make([]bool, memoryCells)
	for i := range grid {
		if showing {
			grid[i] = g.targets[i]
		} else {
			grid[i] = g.targets[i] && g.selected[i]
		}
	}
	if showing {
		v["phase"] = "MEMORIZE"
	} else {
		v["phase"] = "RECALL"
	}
	v["grid"] = grid
	return v
}
