// Package registry хранит упорядоченный список мини-игр, из которого оркестратор
// выбирает игру на каждый раунд.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"neuroflash/internal/model"
)

var (
	// ErrEmptyRegistry В реестре нет ни одной игры - выбрать раунд невозможно
	ErrEmptyRegistry = errors.New("game registry is empty")
	// ErrInvalidDefinition Запись реестра заполнена неверно
	ErrInvalidDefinition = errors.New("invalid game definition")
)

// Registry Неизменяемый упорядоченный список определений игр
type Registry struct {
	defs  []model.GameDefinition
	index map[model.GameType]int
}

// New Проверяет определения и собирает реестр.
// Пустой список, дубликаты типов, неположительная длительность
// и отсутствие текста инструкции - ошибка
func New(defs []model.GameDefinition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyRegistry
	}

	r := &Registry{
		defs:  make([]model.GameDefinition, 0, len(defs)),
		index: make(map[model.GameType]int, len(defs)),
	}
	for i, d := range defs {
		if d.Type == "" {
			return nil, fmt.Errorf("%w: entry %d has no type", ErrInvalidDefinition, i)
		}
		if _, dup := r.index[d.Type]; dup {
			return nil, fmt.Errorf("%w: duplicate type %s", ErrInvalidDefinition, d.Type)
		}
		if d.BaseDuration <= 0 {
			return nil, fmt.Errorf("%w: %s has non-positive duration %s", ErrInvalidDefinition, d.Type, d.BaseDuration)
		}
		if len(d.Instruction) == 0 {
			return nil, fmt.Errorf("%w: %s has no instruction text", ErrInvalidDefinition, d.Type)
		}

		// копия карты, чтобы реестр не зависел от вызывающего
		instr := make(map[string]string, len(d.Instruction))
		for lang, text := range d.Instruction {
			instr[lang] = text
		}
		d.Instruction = instr

		r.index[d.Type] = len(r.defs)
		r.defs = append(r.defs, d)
	}

	return r, nil
}

// Len Количество игр
func (r *Registry) Len() int {
	return len(r.defs)
}

// At Определение по индексу
func (r *Registry) At(i int) model.GameDefinition {
	return r.defs[i]
}

// IndexOf Индекс игры по типу
func (r *Registry) IndexOf(t model.GameType) (int, bool) {
	i, ok := r.index[t]
	return i, ok
}

// Definitions Копия списка определений в порядке реестра
func (r *Registry) Definitions() []model.GameDefinition {
	out := make([]model.GameDefinition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Types Типы игр в порядке реестра
func (r *Registry) Types() []model.GameType {
	out := make([]model.GameType, len(r.defs))
	for i, d := range r.defs {
		out[i] = d.Type
	}
	return out
}

// Languages Все языки, на которые переведена хотя бы одна инструкция
func (r *Registry) Languages() []string {
	seen := map[string]bool{model.DefaultLanguage: true}
	out := []string{model.DefaultLanguage}
	for _, d := range r.defs {
		for lang := range d.Instruction {
			if !seen[lang] {
				seen[lang] = true
				out = append(out, lang)
			}
		}
	}
	slices.Sort(out[1:])
	return out
}

// DefaultDefinitions Встроенный набор игр
func DefaultDefinitions() []model.GameDefinition {
	return []model.GameDefinition{
		{
			Type:         model.GameReflex,
			Instruction:  map[string]string{"en": "WAIT... THEN TAP!", "ru": "ЖДИ... И ЖМИ!"},
			BaseDuration: 4000 * time.Millisecond,
		},
		{
			Type:         model.GameMath,
			Instruction:  map[string]string{"en": "IS IT TRUE?", "ru": "ЭТО ВЕРНО?"},
			BaseDuration: 5000 * time.Millisecond,
		},
		{
			Type:         model.GameStroop,
			Instruction:  map[string]string{"en": "MATCH THE COLOR!", "ru": "УГАДАЙ ЦВЕТ!"},
			BaseDuration: 3000 * time.Millisecond,
		},
		{
			Type:         model.GameCube,
			Instruction:  map[string]string{"en": "STOP ON BOX!", "ru": "ОСТАНОВИ НА КОРОБКЕ!"},
			BaseDuration: 5000 * time.Millisecond,
		},
		{
			Type:         model.GameMemory,
			Instruction:  map[string]string{"en": "WATCH CLOSELY!", "ru": "ЗАПОМИНАЙ!"},
			BaseDuration: 6000 * time.Millisecond,
		},
		{
			Type:         model.GameTimingBar,
			Instruction:  map[string]string{"en": "HIT THE ZONE!", "ru": "ПОПАДИ В ЗОНУ!"},
			BaseDuration: 4000 * time.Millisecond,
		},
		{
			Type:         model.GameSwipe,
			Instruction:  map[string]string{"en": "SWIPE IT!", "ru": "СВАЙПНИ!"},
			BaseDuration: 3000 * time.Millisecond,
		},
	}
}

// Default Реестр со встроенным набором игр
func Default() *Registry {
	r, err := New(DefaultDefinitions())
	if err != nil {
		panic("default registry is invalid: " + err.Error())
	}
	return r
}
