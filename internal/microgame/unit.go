// Package microgame содержит сами мини-игры. Каждая игра - независимый юнит,
// который получает сложность, принимает ввод игрока и ровно один раз
// сообщает вердикт. Оркестратор работает со всеми юнитами через интерфейс Unit.
package microgame

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"neuroflash/internal/model"
)

// ErrUnknownGame Для типа игры не зарегистрирован юнит
var ErrUnknownGame = errors.New("unknown game type")

// Params Входные данные юнита на время одного раунда
type Params struct {
	Difficulty int           // 1..10
	Score      int           // текущий счёт, для более тонкой настройки
	Language   string        // язык подписей
	Assets     *model.AssetPack
	Now        time.Time     // момент активации
	Duration   time.Duration // длительность раунда с учётом ускорения
	Rand       *rand.Rand
}

// Reporter Колбэк вердикта. Юнит вызывает его не больше одного раза за активацию
type Reporter func(success bool)

// Unit Контракт мини-игры.
// Все методы вызываются на горутине сессии, юнит не заводит своих горутин:
// внутренние таймеры выражены через время now, переданное снаружи
type Unit interface {
	// Activate заново инициализирует игру под новый раунд
	Activate(p Params, report Reporter)
	// Deactivate приостанавливает игру, дальнейший ввод игнорируется
	Deactivate()
	// Input передаёт действие игрока
	Input(a model.Action, now time.Time)
	// View описывает, что сейчас должен видеть игрок
	View(now time.Time) map[string]any
}

// Constructor Создаёт свежий экземпляр юнита
type Constructor func() Unit

// Factory Таблица юнитов по типу игры
type Factory map[model.GameType]Constructor

// DefaultFactory Все встроенные мини-игры
func DefaultFactory() Factory {
	return Factory{
		model.GameReflex:    func() Unit { return &reflex{} },
		model.GameMath:      func() Unit { return &mathQuiz{} },
		model.GameStroop:    func() Unit { return &stroop{} },
		model.GameCube:      func() Unit { return &cube{} },
		model.GameMemory:    func() Unit { return &memory{} },
		model.GameTimingBar: func() Unit { return &timingBar{} },
		model.GameSwipe:     func() Unit { return &swipe{} },
	}
}

// New Создать юнит для типа игры
func (f Factory) New(t model.GameType) (Unit, error) {
	c, ok := f[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, t)
	}
	return c(), nil
}

// Supports Проверяет, что для каждого типа есть юнит
func (f Factory) Supports(types ...model.GameType) error {
	for _, t := range types {
		if _, ok := f[t]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownGame, t)
		}
	}
	return nil
}

// base Общая часть юнитов: флаг активности и одноразовый вердикт
type base struct {
	params Params
	report Reporter
	active bool
	done   bool
}

func (b *base) activate(p Params, report Reporter) {
	if p.Rand == nil {
		p.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if p.Difficulty < 1 {
		p.Difficulty = 1
	}
	b.params = p
	b.report = report
	b.active = true
	b.done = false
}

func (b *base) Deactivate() {
	b.active = false
}

// accepting Игра активна и вердикт ещё не вынесен
func (b *base) accepting() bool {
	return b.active && !b.done
}

func (b *base) finish(success bool) {
	if !b.accepting() {
		return
	}
	b.done = true
	if b.report != nil {
		b.report(success)
	}
}

// elapsed Сколько прошло с активации
func (b *base) elapsed(now time.Time) time.Duration {
	d := now.Sub(b.params.Now)
	if d < 0 {
		return 0
	}
	return d
}

func (b *base) view(kind model.GameType) map[string]any {
	v := map[string]any{
		"game":       string(kind),
		"active":     b.active,
		"done":       b.done,
		"difficulty": b.params.Difficulty,
	}
	if a := b.params.Assets; a != nil {
		v["theme"] = a.ThemeName
		v["primary_icon"] = a.PrimaryIconRef
		v["secondary_icon"] = a.SecondaryIconRef
	}
	return v
}

// randInt Случайное число в диапазоне [lo, hi]
func randInt(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// scale Множитель скорости игры от сложности: +step за каждый уровень выше первого
func scale(difficulty int, step float64) float64 {
	return 1 + float64(difficulty-1)*step
}
