package arcade

type CreateSessionRequest struct {
	Language string      `json:"language,omitempty"` // явный выбор языка, иначе Accept-Language
	Assets   *AssetsBody `json:"assets,omitempty"`   // иконки темы, необязательно
}

type CreateSessionResponse struct {
	SessionID   string        `json:"session_id"`
	AccessToken string        `json:"access_token"` // Bearer токен для остальных запросов
	CreatedAt   string        `json:"created_at"`   // RFC3339
	State       StateResponse `json:"state"`
}

type AssetsBody struct {
	ThemeName        string `json:"theme_name"`
	PrimaryIconRef   string `json:"primary_icon_ref"`
	SecondaryIconRef string `json:"secondary_icon_ref"`
}

type LanguageRequest struct {
	Language string `json:"language"`
}

type InputRequest struct {
	Kind  string `json:"kind"`            // tap | answer | select | swipe
	Value string `json:"value,omitempty"` // ответ или направление
	Index int    `json:"index,omitempty"` // выбранный вариант или клетка
}

type GameResponse struct {
	Type           string            `json:"type"`
	Instruction    map[string]string `json:"instruction"`
	BaseDurationMs int64             `json:"base_duration_ms"`
}

type ScoreResponse struct {
	Timestamp string `json:"timestamp"` // RFC3339
	Score     int    `json:"score"`
}

type GamesResponse struct {
	Games     []GameResponse `json:"games"`
	Languages []string       `json:"languages"`
}

type HighScoresResponse struct {
	HighScores []ScoreResponse `json:"high_scores"`
}

type StateResponse struct {
	Phase            string          `json:"phase"`
	Lives            int             `json:"lives"`
	Score            int             `json:"score"`
	Round            int             `json:"round"`
	Difficulty       int             `json:"difficulty"`
	SpeedMultiplier  float64         `json:"speed_multiplier"`
	TimeRemainingPct float64         `json:"time_remaining_pct"`
	ActiveGame       string          `json:"active_game"`
	Instruction      string          `json:"instruction"`
	LastResult       *string         `json:"last_result"` // WIN | LOSE | null
	HighScores       []ScoreResponse `json:"high_scores"`
	Language         string          `json:"language"`
	Assets           *AssetsBody     `json:"assets,omitempty"`
	View             map[string]any  `json:"view,omitempty"` // что рисует активная мини-игра
}

type CueResponse struct {
	Cue string `json:"cue"`
	At  string `json:"at"`
}
