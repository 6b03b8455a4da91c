// Package arcade - серверная обвязка оркестратора: много независимых сессий,
// у каждой свой цикл событий, общая таблица рекордов и поток событий для клиентов.
package arcade

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"neuroflash/internal/feedback"
	"neuroflash/internal/locale"
	"neuroflash/internal/loop"
	"neuroflash/internal/microgame"
	"neuroflash/internal/model"
	"neuroflash/internal/orchestrator"
	"neuroflash/internal/registry"
	"neuroflash/internal/repository"
	"neuroflash/internal/service"
	"neuroflash/pkg/token"
)

// Deps Зависимости сервиса
type Deps struct {
	Registry          *registry.Registry
	Units             microgame.Factory
	Rules             orchestrator.Config
	Board             repository.HighScoreRepository
	Sessions          repository.SessionRepository
	Matcher           *locale.Matcher
	TokenSecret       []byte
	TokenTTL          time.Duration
	IdleTTL           time.Duration
	BroadcastInterval time.Duration
	Logger            *zap.Logger
	Now               func() time.Time
}

// session Живая сессия: цикл событий и всё, что на нём крутится
type session struct {
	id     string
	loop   *loop.Loop
	orch   *orchestrator.Orchestrator
	hub    *hub
	ticker loop.Timer
}

type serv struct {
	deps   Deps
	logger *zap.Logger
	now    func() time.Time

	mtx  sync.RWMutex
	live map[string]*session
}

// Service Сервис аркады с фоновой уборкой простаивающих сессий
type Service interface {
	service.ArcadeService
	ActiveSessions() int
	ReapIdle(ctx context.Context) (int, error)
	Run(ctx context.Context) error
	Close()
}

func NewArcadeService(deps Deps) (Service, error) {
	if deps.Registry == nil || deps.Registry.Len() == 0 {
		return nil, registry.ErrEmptyRegistry
	}
	if deps.Units == nil {
		deps.Units = microgame.DefaultFactory()
	}
	if err := deps.Units.Supports(deps.Registry.Types()...); err != nil {
		return nil, err
	}
	if deps.Board == nil || deps.Sessions == nil {
		return nil, errors.New("arcade service requires board and session repositories")
	}
	if len(deps.TokenSecret) == 0 {
		return nil, errors.New("token secret is required")
	}
	if deps.Matcher == nil {
		deps.Matcher = locale.NewMatcher(deps.Registry.Languages())
	}
	if deps.TokenTTL <= 0 {
		deps.TokenTTL = 24 * time.Hour
	}
	if deps.IdleTTL <= 0 {
		deps.IdleTTL = 15 * time.Minute
	}
	if deps.BroadcastInterval <= 0 {
		deps.BroadcastInterval = 50 * time.Millisecond
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &serv{
		deps:   deps,
		logger: deps.Logger,
		now:    deps.Now,
		live:   make(map[string]*session),
	}, nil
}

func (s *serv) CreateSession(ctx context.Context, params service.CreateSessionParams) (*model.Session, error) {
	id := uuid.NewString()
	lang := s.deps.Matcher.Match(params.Language, params.AcceptLanguage)
	logger := s.logger.With(zap.String("session_id", id))

	accessToken, err := token.GenerateAccessToken(id, s.deps.TokenSecret, s.deps.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	l := loop.New(logger)
	h := newHub()
	cues := feedback.Func(func(c model.Cue) {
		h.publish(model.Event{Kind: model.EventCue, Cue: c, At: s.now()})
	})

	orch, err := orchestrator.New(orchestrator.Deps{
		Config:    s.deps.Rules,
		Registry:  s.deps.Registry,
		Units:     s.deps.Units,
		Scheduler: l,
		Feedback:  feedback.Multi{feedback.Logging(logger), cues},
		Board:     s.deps.Board,
		Rand:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		Logger:    logger,
		Language:  lang,
	})
	if err != nil {
		return nil, err
	}
	orch.SetAssets(params.Assets)

	now := s.now()
	meta := model.Session{
		ID:          id,
		AccessToken: accessToken,
		CreatedAt:   now,
		Language:    lang,
		Snapshot:    orch.Snapshot(),
	}
	if err := s.deps.Sessions.Create(ctx, repository.SessionRecord{Session: meta, LastSeen: now}); err != nil {
		return nil, err
	}

	sess := &session{id: id, loop: l, orch: orch, hub: h}
	go l.Run()
	// снимки рассылаются по таймеру только тем, кто подписан
	sess.ticker = l.Every(s.deps.BroadcastInterval, func() {
		if h.len() == 0 {
			return
		}
		snap := orch.Snapshot()
		h.publish(model.Event{Kind: model.EventState, Snapshot: &snap, At: s.now()})
	})

	s.mtx.Lock()
	s.live[id] = sess
	s.mtx.Unlock()

	logger.Info("session created", zap.String("language", lang))
	return &meta, nil
}

func (s *serv) Snapshot(ctx context.Context, id string) (*model.Snapshot, error) {
	return s.do(ctx, id, nil)
}

func (s *serv) Start(ctx context.Context, id string) (*model.Snapshot, error) {
	return s.do(ctx, id, (*orchestrator.Orchestrator).Start)
}

func (s *serv) Restart(ctx context.Context, id string) (*model.Snapshot, error) {
	return s.do(ctx, id, (*orchestrator.Orchestrator).Restart)
}

func (s *serv) Input(ctx context.Context, id string, action model.Action) (*model.Snapshot, error) {
	switch action.Kind {
	case model.ActionTap, model.ActionAnswer, model.ActionSelect, model.ActionSwipe:
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", service.ErrInvalidAction, action.Kind)
	}
	return s.do(ctx, id, func(o *orchestrator.Orchestrator) error {
		return o.Input(action)
	})
}

func (s *serv) SetAssets(ctx context.Context, id string, pack *model.AssetPack) (*model.Snapshot, error) {
	return s.do(ctx, id, func(o *orchestrator.Orchestrator) error {
		o.SetAssets(pack)
		return nil
	})
}

func (s *serv) SetLanguage(ctx context.Context, id string, lang string) (*model.Snapshot, error) {
	matched := s.deps.Matcher.Match(lang, "")
	return s.do(ctx, id, func(o *orchestrator.Orchestrator) error {
		o.SetLanguage(matched)
		return nil
	})
}

func (s *serv) CloseSession(ctx context.Context, id string) error {
	s.mtx.Lock()
	sess, ok := s.live[id]
	delete(s.live, id)
	s.mtx.Unlock()
	if !ok {
		return repository.ErrSessionNotFound
	}

	if err := s.deps.Sessions.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		s.logger.Warn("failed to delete session record", zap.String("session_id", id), zap.Error(err))
	}
	s.shutdown(sess)
	s.logger.Info("session closed", zap.String("session_id", id))
	return nil
}

func (s *serv) Subscribe(ctx context.Context, id string) (<-chan model.Event, func(), error) {
	sess, err := s.get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel, ok := sess.hub.subscribe()
	if !ok {
		return nil, nil, service.ErrSessionClosed
	}
	return ch, cancel, nil
}

func (s *serv) Games() []model.GameDefinition {
	return s.deps.Registry.Definitions()
}

func (s *serv) Languages() []string {
	return s.deps.Matcher.Supported()
}

func (s *serv) HighScores() []model.ScoreEntry {
	return s.deps.Board.Top()
}

func (s *serv) ActiveSessions() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.live)
}

// ReapIdle Закрывает сессии, к которым давно не обращались.
// Сессии с открытым потоком событий считаются активными
func (s *serv) ReapIdle(ctx context.Context) (int, error) {
	now := s.now()
	ids, err := s.deps.Sessions.IdleSince(ctx, now.Add(-s.deps.IdleTTL))
	if err != nil {
		return 0, err
	}

	reaped := 0
	for _, id := range ids {
		s.mtx.RLock()
		sess, ok := s.live[id]
		s.mtx.RUnlock()
		if ok && sess.hub.len() > 0 {
			_ = s.deps.Sessions.Touch(ctx, id, now)
			continue
		}
		if err := s.CloseSession(ctx, id); err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				_ = s.deps.Sessions.Delete(ctx, id)
				continue
			}
			return reaped, err
		}
		reaped++
	}
	if reaped > 0 {
		s.logger.Info("idle sessions reaped", zap.Int("count", reaped))
	}
	return reaped, nil
}

// Run Периодически убирает простаивающие сессии до отмены ctx, затем закрывает все сессии
func (s *serv) Run(ctx context.Context) error {
	every := s.deps.IdleTTL / 4
	if every < time.Second {
		every = time.Second
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	defer s.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.ReapIdle(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("failed to reap idle sessions", zap.Error(err))
			}
		}
	}
}

// Close Закрывает все живые сессии
func (s *serv) Close() {
	s.mtx.Lock()
	all := make([]*session, 0, len(s.live))
	for id, sess := range s.live {
		all = append(all, sess)
		delete(s.live, id)
	}
	s.mtx.Unlock()

	for _, sess := range all {
		_ = s.deps.Sessions.Delete(context.Background(), sess.id)
		s.shutdown(sess)
	}
}

func (s *serv) get(ctx context.Context, id string) (*session, error) {
	s.mtx.RLock()
	sess, ok := s.live[id]
	s.mtx.RUnlock()
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	if err := s.deps.Sessions.Touch(ctx, id, s.now()); err != nil {
		return nil, err
	}
	return sess, nil
}

// do Выполняет fn на цикле сессии и возвращает снимок после неё.
// Изменившееся состояние сразу рассылается подписчикам
func (s *serv) do(ctx context.Context, id string, fn func(o *orchestrator.Orchestrator) error) (*model.Snapshot, error) {
	sess, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		snap  model.Snapshot
		opErr error
	)
	err = sess.loop.Call(ctx, func() {
		if fn != nil {
			if opErr = fn(sess.orch); opErr != nil {
				return
			}
		}
		snap = sess.orch.Snapshot()
		if fn != nil {
			ev := snap
			sess.hub.publish(model.Event{Kind: model.EventState, Snapshot: &ev, At: s.now()})
		}
	})
	if errors.Is(err, loop.ErrStopped) {
		return nil, service.ErrSessionClosed
	}
	if err != nil {
		return nil, err
	}
	if opErr != nil {
		return nil, opErr
	}
	return &snap, nil
}

func (s *serv) shutdown(sess *session) {
	_ = sess.loop.Call(context.Background(), func() {
		sess.orch.Close()
	})
	sess.ticker.Stop()
	sess.loop.Stop()
	<-sess.loop.Done()
	sess.hub.close()
}
