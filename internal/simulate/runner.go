package simulate

import (
	"context"
	"errors"
	"math/rand/v2"
	"runtime"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"neuroflash/internal/feedback"
	"neuroflash/internal/loop"
	"neuroflash/internal/microgame"
	"neuroflash/internal/model"
	"neuroflash/internal/orchestrator"
	"neuroflash/internal/registry"
	"neuroflash/internal/repository/highscore_repo"
)

const (
	// DefaultFrame Шаг виртуального времени, примерно кадр при 60 FPS
	DefaultFrame = 16 * time.Millisecond
	// DefaultMaxRounds Бот с точностью 1 играет бесконечно, поэтому сессию обрываем
	DefaultMaxRounds = 500
)

// Options Параметры прогона
type Options struct {
	Sessions  int
	Accuracy  float64
	Seed      uint64
	MaxRounds int
	Frame     time.Duration
	Workers   int
	Rules     orchestrator.Config
	Registry  *registry.Registry
	Units     microgame.Factory
	Logger    *zap.Logger
}

// GameStats Итоги раундов одной мини-игры
type GameStats struct {
	Wins   int
	Losses int
}

// SessionResult Итог одной сессии
type SessionResult struct {
	Score    int
	Rounds   int
	Capped   bool          // оборвана по MaxRounds, рекорд не записан
	Duration time.Duration // виртуальное время от Play до конца
}

// Report Сводка прогона
type Report struct {
	Sessions   []SessionResult
	Games      map[model.GameType]GameStats
	HighScores []model.ScoreEntry
}

var ErrInvalidOptions = errors.New("invalid simulation options")

func (o *Options) normalize() error {
	if o.Sessions <= 0 {
		return errors.Join(ErrInvalidOptions, errors.New("sessions must be positive"))
	}
	if o.Accuracy < 0 || o.Accuracy > 1 {
		return errors.Join(ErrInvalidOptions, errors.New("accuracy must be within 0..1"))
	}
	if o.MaxRounds <= 0 {
		o.MaxRounds = DefaultMaxRounds
	}
	if o.Frame <= 0 {
		o.Frame = DefaultFrame
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Rules == (orchestrator.Config{}) {
		o.Rules = orchestrator.DefaultConfig()
	}
	if o.Registry == nil {
		o.Registry = registry.Default()
	}
	if o.Units == nil {
		o.Units = microgame.DefaultFactory()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return nil
}

// Run Прогоняет Sessions сессий параллельно. Один и тот же Seed даёт тот же отчёт
func Run(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	results := make([]SessionResult, opts.Sessions)
	games := make([]map[model.GameType]GameStats, opts.Sessions)
	// у каждой сессии своя таблица, общая собирается после прогона в порядке сессий
	boards := make([]*highscore_repo.BoardRepo, opts.Sessions)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range opts.Sessions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			boards[i] = highscore_repo.NewHighScoreRepository(1)
			// у каждой сессии своё виртуальное время со сдвигом, чтобы рекорды различались по времени
			res, stats, err := runSession(gctx, opts, boards[i], start.Add(time.Duration(i)*time.Hour), opts.Seed+uint64(i))
			if err != nil {
				return err
			}
			results[i] = res
			games[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	board := highscore_repo.NewHighScoreRepository(highscore_repo.DefaultLimit)
	for _, b := range boards {
		for _, e := range b.Top() {
			board.Record(e)
		}
	}

	report := &Report{
		Sessions:   results,
		Games:      make(map[model.GameType]GameStats),
		HighScores: board.Top(),
	}
	for _, stats := range games {
		for t, s := range stats {
			acc := report.Games[t]
			acc.Wins += s.Wins
			acc.Losses += s.Losses
			report.Games[t] = acc
		}
	}
	opts.Logger.Debug("simulation finished", zap.Int("sessions", opts.Sessions))
	return report, nil
}

func runSession(ctx context.Context, opts Options, board orchestrator.ScoreBoard, start time.Time, seed uint64) (SessionResult, map[model.GameType]GameStats, error) {
	clock := loop.NewManual(start)
	orch, err := orchestrator.New(orchestrator.Deps{
		Config:    opts.Rules,
		Registry:  opts.Registry,
		Units:     opts.Units,
		Scheduler: clock,
		Feedback:  feedback.Nop{},
		Board:     board,
		Rand:      rand.New(rand.NewPCG(seed, 1)),
		Logger:    opts.Logger,
	})
	if err != nil {
		return SessionResult{}, nil, err
	}
	defer orch.Close()

	bot := NewBot(opts.Accuracy, rand.New(rand.NewPCG(seed, 2)))
	stats := make(map[model.GameType]GameStats)

	if err := orch.Start(); err != nil {
		return SessionResult{}, nil, err
	}

	prev := orch.Phase()
	for frame := 0; ; frame++ {
		if frame%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return SessionResult{}, nil, err
			}
		}

		phase := orch.Phase()
		if phase == model.PhaseResult && prev != model.PhaseResult {
			snap := orch.Snapshot()
			s := stats[snap.ActiveGame.Type]
			if snap.LastResult == model.ResultWin {
				s.Wins++
			} else {
				s.Losses++
			}
			stats[snap.ActiveGame.Type] = s
		}
		prev = phase

		if phase == model.PhaseGameOver {
			return SessionResult{Score: orch.Score(), Rounds: orch.Round(), Duration: clock.Now().Sub(start)}, stats, nil
		}
		if orch.Round() > opts.MaxRounds {
			return SessionResult{Score: orch.Score(), Rounds: opts.MaxRounds, Capped: true, Duration: clock.Now().Sub(start)}, stats, nil
		}

		// не больше одного действия за кадр
		if a, ok := bot.Act(orch.Snapshot()); ok {
			_ = orch.Input(a)
		}
		clock.Advance(opts.Frame)
	}
}

// Summary Агрегаты по сессиям
type Summary struct {
	Sessions  int
	Completed int
	Capped    int
	MeanScore float64
	Median    int
	MinScore  int
	MaxScore  int
	MeanRound float64
}

// Summarize Считает сводные числа отчёта
func (r *Report) Summarize() Summary {
	s := Summary{Sessions: len(r.Sessions)}
	if s.Sessions == 0 {
		return s
	}
	scores := make([]int, 0, len(r.Sessions))
	var total, rounds int
	for _, res := range r.Sessions {
		if res.Capped {
			s.Capped++
		} else {
			s.Completed++
		}
		scores = append(scores, res.Score)
		total += res.Score
		rounds += res.Rounds
	}
	slices.Sort(scores)
	s.MinScore = scores[0]
	s.MaxScore = scores[len(scores)-1]
	s.Median = scores[len(scores)/2]
	s.MeanScore = float64(total) / float64(s.Sessions)
	s.MeanRound = float64(rounds) / float64(s.Sessions)
	return s
}

// GameTypes Игры отчёта в стабильном порядке
func (r *Report) GameTypes() []model.GameType {
	out := make([]model.GameType, 0, len(r.Games))
	for t := range r.Games {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
