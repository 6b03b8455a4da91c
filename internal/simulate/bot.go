// Package simulate гоняет сессии без сети на виртуальном времени.
// Бот смотрит на View активной мини-игры и с заданной вероятностью
// играет правильно, иначе ошибается намеренно.
package simulate

import (
	"fmt"
	"math/rand/v2"

	"neuroflash/internal/model"
)

// cubeWindow Угол от лицевой грани, при котором бот останавливает куб
const cubeWindow = 30.0

// Bot Игрок для одной сессии. Не потокобезопасен
type Bot struct {
	accuracy float64
	rnd      *rand.Rand

	round   int
	correct bool
	// запомненные клетки MEMORY из фазы показа
	targets []bool
	picked  map[int]bool
}

func NewBot(accuracy float64, rnd *rand.Rand) *Bot {
	return &Bot{accuracy: accuracy, rnd: rnd}
}

// Act Действие на текущем кадре. false - ждать
func (b *Bot) Act(snap model.Snapshot) (model.Action, bool) {
	if snap.Phase != model.PhasePlaying || snap.View == nil {
		return model.Action{}, false
	}
	if snap.Round != b.round {
		b.round = snap.Round
		b.correct = b.rnd.Float64() < b.accuracy
		b.targets = nil
		b.picked = make(map[int]bool)
	}
	if done, _ := snap.View["done"].(bool); done {
		return model.Action{}, false
	}

	switch snap.ActiveGame.Type {
	case model.GameReflex:
		return b.reflex(snap.View)
	case model.GameMath:
		return b.math(snap.View)
	case model.GameStroop:
		return b.stroop(snap.View)
	case model.GameCube:
		return b.cube(snap.View)
	case model.GameMemory:
		return b.memory(snap.View)
	case model.GameTimingBar:
		return b.timing(snap.View)
	case model.GameSwipe:
		return b.swipe(snap.View)
	default:
		return model.Action{}, false
	}
}

func (b *Bot) reflex(v map[string]any) (model.Action, bool) {
	status, _ := v["status"].(string)
	// фальстарт тоже проигрыш
	if b.correct == (status == "GO") {
		return model.Action{Kind: model.ActionTap}, true
	}
	return model.Action{}, false
}

func (b *Bot) math(v map[string]any) (model.Action, bool) {
	eq, _ := v["equation"].(string)
	var x, y, shown int
	if _, err := fmt.Sscanf(eq, "%d + %d = %d", &x, &y, &shown); err != nil {
		return model.Action{}, false
	}
	right := x+y == shown
	if !b.correct {
		right = !right
	}
	return model.Action{Kind: model.ActionAnswer, Value: fmt.Sprint(right)}, true
}

func (b *Bot) stroop(v map[string]any) (model.Action, bool) {
	ink, _ := v["ink"].(string)
	options, _ := v["options"].([]string)
	for i, o := range options {
		if (o == ink) == b.correct {
			return model.Action{Kind: model.ActionSelect, Index: i}, true
		}
	}
	return model.Action{}, false
}

func (b *Bot) cube(v map[string]any) (model.Action, bool) {
	angle, _ := v["angle"].(float64)
	facing := angle <= cubeWindow || angle >= 360-cubeWindow
	// куб стартует тыльной стороной, так что ошибка - тап сразу
	if facing == b.correct {
		return model.Action{Kind: model.ActionTap}, true
	}
	return model.Action{}, false
}

func (b *Bot) memory(v map[string]any) (model.Action, bool) {
	phase, _ := v["phase"].(string)
	grid, _ := v["grid"].([]bool)
	if phase == "MEMORIZE" {
		b.targets = append(b.targets[:0], grid...)
		return model.Action{}, false
	}
	for i, target := range b.targets {
		if b.picked[i] || target != b.correct {
			continue
		}
		b.picked[i] = true
		return model.Action{Kind: model.ActionSelect, Index: i}, true
	}
	return model.Action{}, false
}

func (b *Bot) timing(v map[string]any) (model.Action, bool) {
	pos, _ := v["position"].(float64)
	zone, _ := v["zone"].([]float64)
	if len(zone) != 2 {
		return model.Action{}, false
	}
	inside := pos >= zone[0]+1 && pos <= zone[1]-1
	outside := pos < zone[0]-1 || pos > zone[1]+1
	if (b.correct && inside) || (!b.correct && outside) {
		return model.Action{Kind: model.ActionTap}, true
	}
	return model.Action{}, false
}

var opposite = map[string]string{"up": "down", "down": "up", "left": "right", "right": "left"}

func (b *Bot) swipe(v map[string]any) (model.Action, bool) {
	arrow, _ := v["arrow"].(string)
	reverse, _ := v["reverse"].(bool)
	dir := arrow
	if reverse != !b.correct {
		dir = opposite[arrow]
	}
	return model.Action{Kind: model.ActionSwipe, Value: dir}, true
}
