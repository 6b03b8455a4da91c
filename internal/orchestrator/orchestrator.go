// Package orchestrator - ядро аркады: конечный автомат сессии.
//
// Оркестратор ведёт сессию по фазам MENU -> INSTRUCTION -> PLAYING -> RESULT ->
// INSTRUCTION | GAME_OVER, считает жизни и очки, крутит таймер раунда и выбирает
// следующую мини-игру. Все методы и все колбэки таймеров должны выполняться на
// одной горутине (см. пакет loop): оркестратор - единственный писатель состояния.
package orchestrator

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"neuroflash/internal/feedback"
	"neuroflash/internal/loop"
	"neuroflash/internal/microgame"
	"neuroflash/internal/model"
	"neuroflash/internal/registry"
)

// ErrInvalidPhase Действие недоступно в текущей фазе
var ErrInvalidPhase = errors.New("action is not allowed in the current phase")

// Config Тайминги и правила сессии
type Config struct {
	Lives            int
	InstructionDelay time.Duration
	ResultDelay      time.Duration
	TickInterval     time.Duration
	SpeedCoefficient float64
	PointsPerLevel   int
	MaxDifficulty    int
}

// DefaultConfig Значения по умолчанию
func DefaultConfig() Config {
	return Config{
		Lives:            3,
		InstructionDelay: 1200 * time.Millisecond,
		ResultDelay:      1000 * time.Millisecond,
		TickInterval:     16 * time.Millisecond,
		SpeedCoefficient: 0.08,
		PointsPerLevel:   5,
		MaxDifficulty:    10,
	}
}

func (c Config) validate() error {
	switch {
	case c.Lives <= 0:
		return fmt.Errorf("lives must be positive, got %d", c.Lives)
	case c.InstructionDelay < 0 || c.ResultDelay < 0:
		return errors.New("transition delays must not be negative")
	case c.TickInterval <= 0:
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	case c.SpeedCoefficient < 0:
		return fmt.Errorf("speed coefficient must not be negative, got %v", c.SpeedCoefficient)
	case c.PointsPerLevel <= 0 || c.MaxDifficulty <= 0:
		return errors.New("difficulty settings must be positive")
	}
	return nil
}

// ScoreBoard Таблица рекордов, общая для всех сессий процесса
type ScoreBoard interface {
	Record(entry model.ScoreEntry) []model.ScoreEntry
	Top() []model.ScoreEntry
}

// Deps Зависимости оркестратора
type Deps struct {
	Config    Config
	Registry  *registry.Registry
	Units     microgame.Factory
	Scheduler loop.Scheduler
	Feedback  feedback.Feedback
	Board     ScoreBoard
	Rand      *rand.Rand
	Logger    *zap.Logger
	Language  string
}

// Orchestrator Конечный автомат одной игровой сессии
type Orchestrator struct {
	cfg      Config
	registry *registry.Registry
	units    microgame.Factory
	sched    loop.Scheduler
	fb       feedback.Feedback
	board    ScoreBoard
	rng      *rand.Rand
	logger   *zap.Logger

	phase            model.Phase
	lives            int
	score            int
	round            int
	activeIndex      int
	timeRemainingPct float64
	lastResult       model.Result
	language         string
	assets           *model.AssetPack

	// epoch растёт при каждой смене фазы; колбэки прошлых фаз сверяют его и молча выходят
	epoch  uint64
	timers []loop.Timer

	unit          microgame.Unit
	playStarted   time.Time
	roundDuration time.Duration
	secondsLeft   int
}

// New Создать оркестратор в фазе MENU.
// Пустой реестр или игра без юнита - ошибка конфигурации
func New(deps Deps) (*Orchestrator, error) {
	if deps.Registry == nil || deps.Registry.Len() == 0 {
		return nil, registry.ErrEmptyRegistry
	}
	if deps.Units == nil {
		deps.Units = microgame.DefaultFactory()
	}
	if err := deps.Units.Supports(deps.Registry.Types()...); err != nil {
		return nil, err
	}
	if deps.Scheduler == nil {
		return nil, errors.New("scheduler is required")
	}
	if deps.Board == nil {
		return nil, errors.New("score board is required")
	}
	if err := deps.Config.validate(); err != nil {
		return nil, fmt.Errorf("invalid arcade config: %w", err)
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Language == "" {
		deps.Language = model.DefaultLanguage
	}

	return &Orchestrator{
		cfg:              deps.Config,
		registry:         deps.Registry,
		units:            deps.Units,
		sched:            deps.Scheduler,
		fb:               feedback.Safe(deps.Feedback, deps.Logger),
		board:            deps.Board,
		rng:              deps.Rand,
		logger:           deps.Logger,
		phase:            model.PhaseMenu,
		lives:            deps.Config.Lives,
		timeRemainingPct: 100,
		language:         deps.Language,
	}, nil
}

// Start Кнопка Play в меню
func (o *Orchestrator) Start() error {
	if o.phase != model.PhaseMenu {
		return fmt.Errorf("%w: start from %s", ErrInvalidPhase, o.phase)
	}
	o.fb.OnUIClick()
	o.beginSession()
	return nil
}

// Restart Начать заново. Из GAME_OVER - обычный рестарт,
// из середины сессии - сессия бросается без записи рекорда
func (o *Orchestrator) Restart() error {
	if o.phase == model.PhaseMenu {
		return fmt.Errorf("%w: nothing to restart", ErrInvalidPhase)
	}
	o.fb.OnUIClick()
	o.enter(model.PhaseMenu)
	o.dropUnit()
	o.beginSession()
	return nil
}

// Input Передать действие игрока активной мини-игре
func (o *Orchestrator) Input(a model.Action) error {
	if o.phase != model.PhasePlaying || o.unit == nil {
		return fmt.Errorf("%w: input during %s", ErrInvalidPhase, o.phase)
	}
	o.unit.Input(a, o.sched.Now())
	return nil
}

// SetAssets Набор иконок для следующих активаций (nil - убрать)
func (o *Orchestrator) SetAssets(pack *model.AssetPack) {
	if pack == nil {
		o.assets = nil
		return
	}
	cp := *pack
	o.assets = &cp
}

// SetLanguage Язык инструкций и подписей
func (o *Orchestrator) SetLanguage(lang string) {
	if lang == "" {
		lang = model.DefaultLanguage
	}
	o.language = lang
}

// Close Гасит все таймеры. После Close оркестратор не используется
func (o *Orchestrator) Close() {
	o.cancelTimers()
	o.epoch++
	o.dropUnit()
}

func (o *Orchestrator) Phase() model.Phase { return o.phase }
func (o *Orchestrator) Lives() int         { return o.lives }
func (o *Orchestrator) Score() int         { return o.score }
func (o *Orchestrator) Round() int         { return o.round }
func (o *Orchestrator) ActiveIndex() int   { return o.activeIndex }

// Difficulty Текущий уровень, чистая функция от счёта
func (o *Orchestrator) Difficulty() int {
	return Difficulty(o.score, o.cfg.PointsPerLevel, o.cfg.MaxDifficulty)
}

// SpeedMultiplier Текущее ускорение раундов
func (o *Orchestrator) SpeedMultiplier() float64 {
	return SpeedMultiplier(o.Difficulty(), o.cfg.SpeedCoefficient)
}

// TimeRemainingPct Остаток таймера раунда в процентах
func (o *Orchestrator) TimeRemainingPct() float64 {
	return o.timeRemainingPct
}

// Snapshot Состояние для рендера
func (o *Orchestrator) Snapshot() model.Snapshot {
	def := o.registry.At(o.activeIndex)
	s := model.Snapshot{
		Phase:            o.phase,
		Lives:            o.lives,
		Score:            o.score,
		Round:            o.round,
		Difficulty:       o.Difficulty(),
		SpeedMultiplier:  o.SpeedMultiplier(),
		TimeRemainingPct: o.timeRemainingPct,
		ActiveGame:       def,
		Instruction:      def.InstructionFor(o.language),
		LastResult:       o.lastResult,
		HighScores:       o.board.Top(),
		Language:         o.language,
	}
	if o.assets != nil {
		cp := *o.assets
		s.Assets = &cp
	}
	if o.unit != nil && (o.phase == model.PhasePlaying || o.phase == model.PhaseResult) {
		s.View = o.unit.View(o.sched.Now())
	}
	return s
}

// beginSession Сброс сессии и первый раунд
func (o *Orchestrator) beginSession() {
	o.score = 0
	o.lives = o.cfg.Lives
	o.round = 0
	o.lastResult = model.ResultNone
	o.activeIndex = o.rng.IntN(o.registry.Len())
	o.enterInstruction()
}

// enterInstruction Фиксированная пауза с текстом инструкции
func (o *Orchestrator) enterInstruction() {
	o.enter(model.PhaseInstruction)
	o.dropUnit()
	o.round++
	o.timeRemainingPct = 100
	o.lastResult = model.ResultNone
	o.after(o.cfg.InstructionDelay, o.enterPlaying)
}

// enterPlaying Запуск раунда: активируем юнит, таймер тиков и дедлайн
func (o *Orchestrator) enterPlaying() {
	o.enter(model.PhasePlaying)

	def := o.registry.At(o.activeIndex)
	unit, err := o.units.New(def.Type)
	if err != nil {
		// New проверяет фабрику, сюда попасть нельзя
		panic(err)
	}

	o.unit = unit
	o.playStarted = o.sched.Now()
	o.roundDuration = ScaledDuration(def.BaseDuration, o.SpeedMultiplier())
	o.secondsLeft = int(math.Ceil(o.roundDuration.Seconds()))
	o.timeRemainingPct = 100

	// таймеры и сигнал старта ставятся до активации: юнит вправе вынести вердикт прямо в Activate
	o.every(o.cfg.TickInterval, o.tick)
	// Дедлайн ставится отдельно, чтобы таймаут не зависел от частоты тиков
	o.after(o.roundDuration, o.timeout)
	o.fb.OnRoundStart()

	epoch := o.epoch
	unit.Activate(microgame.Params{
		Difficulty: o.Difficulty(),
		Score:      o.score,
		Language:   o.language,
		Assets:     o.assets,
		Now:        o.playStarted,
		Duration:   o.roundDuration,
		Rand:       o.rng,
	}, func(success bool) {
		o.verdict(epoch, success)
	})
}

// verdict Вердикт юнита. Вердикт чужого или уже закрытого раунда игнорируется
func (o *Orchestrator) verdict(epoch uint64, success bool) {
	if epoch != o.epoch || o.phase != model.PhasePlaying {
		o.logger.Debug("late verdict ignored", zap.Bool("success", success))
		return
	}
	o.conclude(success)
}

func (o *Orchestrator) tick() {
	elapsed := o.sched.Now().Sub(o.playStarted)
	pct := RemainingPct(elapsed, o.roundDuration)
	if pct < o.timeRemainingPct {
		o.timeRemainingPct = pct
	}
	if pct <= 0 {
		o.timeout()
		return
	}

	// Звук отсчёта - каждый раз, когда уменьшается число целых секунд
	left := int(math.Ceil((o.roundDuration - elapsed).Seconds()))
	if left < o.secondsLeft {
		o.secondsLeft = left
		o.fb.OnTick()
	}
}

func (o *Orchestrator) timeout() {
	o.timeRemainingPct = 0
	o.conclude(false)
}

// conclude Раунд закончен ровно один раз: смена фазы отменяет тики и дедлайн
func (o *Orchestrator) conclude(success bool) {
	o.enter(model.PhaseResult)
	if o.unit != nil {
		o.unit.Deactivate()
	}

	if success {
		o.lastResult = model.ResultWin
		o.fb.OnWin()
	} else {
		o.lastResult = model.ResultLose
		o.fb.OnLose()
	}

	o.after(o.cfg.ResultDelay, func() {
		o.settle(success)
	})
}

// settle Итог раунда применяется после паузы с результатом
func (o *Orchestrator) settle(success bool) {
	if success {
		o.score++
	} else if o.lives > 0 {
		o.lives--
	}

	if o.lives == 0 {
		o.gameOver()
		return
	}

	o.activeIndex = NextIndex(o.rng, o.registry.Len(), o.activeIndex)
	o.enterInstruction()
}

func (o *Orchestrator) gameOver() {
	o.enter(model.PhaseGameOver)
	o.dropUnit()
	top := o.board.Record(model.ScoreEntry{
		Timestamp: o.sched.Now(),
		Score:     o.score,
	})
	o.logger.Info("session finished",
		zap.Int("score", o.score),
		zap.Int("rounds", o.round),
		zap.Int("board_size", len(top)),
	)
}

// enter Смена фазы: все таймеры старой фазы гасятся синхронно
func (o *Orchestrator) enter(phase model.Phase) {
	o.cancelTimers()
	o.epoch++
	o.logger.Debug("phase transition",
		zap.Stringer("from", o.phase),
		zap.Stringer("to", phase),
		zap.Int("round", o.round),
		zap.Int("score", o.score),
		zap.Int("lives", o.lives),
	)
	o.phase = phase
}

func (o *Orchestrator) cancelTimers() {
	for _, t := range o.timers {
		t.Stop()
	}
	o.timers = o.timers[:0]
}

func (o *Orchestrator) dropUnit() {
	if o.unit != nil {
		o.unit.Deactivate()
		o.unit = nil
	}
}

// after Отложенный колбэк, привязанный к текущей фазе
func (o *Orchestrator) after(d time.Duration, fn func()) {
	epoch := o.epoch
	o.timers = append(o.timers, o.sched.AfterFunc(d, func() {
		if epoch != o.epoch {
			return
		}
		fn()
	}))
}

// every Периодический колбэк, привязанный к текущей фазе
func (o *Orchestrator) every(d time.Duration, fn func()) {
	epoch := o.epoch
	o.timers = append(o.timers, o.sched.Every(d, func() {
		if epoch != o.epoch {
			return
		}
		fn()
	}))
}
