package model

import "time"

// ScoreEntry Запись таблицы рекордов
type ScoreEntry struct {
	Timestamp time.Time
	Score     int
}

// Snapshot Всё, что нужно внешнему рендеру для отрисовки сессии
type Snapshot struct {
	Phase            Phase
	Lives            int
	Score            int
	Round            int
	Difficulty       int
	SpeedMultiplier  float64
	TimeRemainingPct float64
	ActiveGame       GameDefinition
	Instruction      string
	LastResult       Result
	HighScores       []ScoreEntry
	Language         string
	Assets           *AssetPack
	View             map[string]any // состояние активной мини-игры
}

// Session Публичные данные созданной сессии
type Session struct {
	ID          string
	AccessToken string
	CreatedAt   time.Time
	Language    string
	Snapshot    Snapshot
}

// Cue Звуковой сигнал, о котором оповещается клиент
type Cue string

const (
	CueRoundStart Cue = "round_start"
	CueTick       Cue = "tick"
	CueWin        Cue = "win"
	CueLose       Cue = "lose"
	CueUIClick    Cue = "ui_click"
)

// EventKind Тип события в потоке сессии
type EventKind string

const (
	EventState EventKind = "state"
	EventCue   EventKind = "cue"
)

// Event Событие, рассылаемое подписчикам сессии
type Event struct {
	Kind     EventKind
	Snapshot *Snapshot
	Cue      Cue
	At       time.Time
}
