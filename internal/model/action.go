package model

// ActionKind Вид действия игрока
type ActionKind string

const (
	ActionTap    ActionKind = "tap"    // тап по экрану / остановка
	ActionAnswer ActionKind = "answer" // ответ да/нет, Value = "true" | "false"
	ActionSelect ActionKind = "select" // выбор варианта или клетки по Index
	ActionSwipe  ActionKind = "swipe"  // свайп, Value = "up" | "down" | "left" | "right"
)

// Action Ввод игрока, который пробрасывается в активную мини-игру
type Action struct {
	Kind  ActionKind
	Value string
	Index int
}
