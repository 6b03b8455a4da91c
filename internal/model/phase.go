package model

// Phase Шаг конечного автомата игровой сессии
type Phase int

const (
	PhaseMenu        Phase = iota // стартовый экран
	PhaseInstruction              // показ инструкции перед раундом
	PhasePlaying                  // раунд идёт, тикает таймер
	PhaseResult                   // пауза с результатом раунда
	PhaseGameOver                 // жизни закончились
)

var phaseNames = map[Phase]string{
	PhaseMenu:        "MENU",
	PhaseInstruction: "INSTRUCTION",
	PhasePlaying:     "PLAYING",
	PhaseResult:      "RESULT",
	PhaseGameOver:    "GAME_OVER",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "UNKNOWN"
}

// Result Итог раунда для оверлея результата
type Result int

const (
	ResultNone Result = iota
	ResultWin
	ResultLose
)

func (r Result) String() string {
	switch r {
	case ResultWin:
		return "WIN"
	case ResultLose:
		return "LOSE"
	default:
		return ""
	}
}
