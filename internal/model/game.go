package model

import "time"

// DefaultLanguage Язык инструкций по умолчанию
const DefaultLanguage = "en"

// GameType Идентификатор вида мини-игры
type GameType string

const (
	GameReflex    GameType = "REFLEX"
	GameMath      GameType = "MATH"
	GameStroop    GameType = "STROOP"
	GameCube      GameType = "CUBE_3D"
	GameMemory    GameType = "MEMORY"
	GameTimingBar GameType = "TIMING_BAR"
	GameSwipe     GameType = "SWIPE"
)

// GameDefinition Запись реестра: тип игры, тексты инструкции и базовая длительность раунда
type GameDefinition struct {
	Type         GameType
	Instruction  map[string]string // язык -> текст
	BaseDuration time.Duration
}

// InstructionFor Текст инструкции на нужном языке.
// Если перевода нет - английский, если нет и его - любой доступный
func (d GameDefinition) InstructionFor(lang string) string {
	if s, ok := d.Instruction[lang]; ok {
		return s
	}
	if s, ok := d.Instruction[DefaultLanguage]; ok {
		return s
	}
	for _, s := range d.Instruction {
		return s
	}
	return string(d.Type)
}

// AssetPack Внешний набор иконок темы, просто пробрасывается в активную мини-игру
type AssetPack struct {
	ThemeName        string
	PrimaryIconRef   string
	SecondaryIconRef string
}
