// Package tui - терминальный клиент одной сессии поверх сервиса аркады.
// Снимки и звуковые сигналы приходят из подписки, ввод уходит через сервис.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"neuroflash/internal/model"
	"neuroflash/internal/service"
)

// opTimeout Сколько ждать ответа сервиса на нажатие
const opTimeout = 2 * time.Second

// cueTTL Сколько показывать последний сигнал
const cueTTL = 600 * time.Millisecond

type eventMsg model.Event

type closedMsg struct{}

type snapMsg struct {
	snap *model.Snapshot
	err  error
}

// TickMsg Кадр перерисовки
type TickMsg time.Time

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model Состояние клиента bubbletea
type Model struct {
	serv      service.ArcadeService
	id        string
	events    <-chan model.Event
	languages []string

	snap   model.Snapshot
	cue    model.Cue
	cueAt  time.Time
	err    error
	now    func() time.Time
	titler cases.Caser
	done   bool
}

// New Клиент для уже созданной сессии и её подписки
func New(serv service.ArcadeService, sess *model.Session, events <-chan model.Event) Model {
	return Model{
		serv:      serv,
		id:        sess.ID,
		events:    events,
		languages: serv.Languages(),
		snap:      sess.Snapshot,
		now:       time.Now,
		titler:    cases.Title(language.English),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitEvent(), tickCmd(30))
}

func (m Model) waitEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

// call Выполнить операцию сервиса вне цикла bubbletea
func (m Model) call(op func(ctx context.Context) (*model.Snapshot, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		snap, err := op(ctx)
		return snapMsg{snap: snap, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case eventMsg:
		switch msg.Kind {
		case model.EventState:
			if msg.Snapshot != nil {
				m.snap = *msg.Snapshot
			}
		case model.EventCue:
			m.cue = msg.Cue
			m.cueAt = m.now()
		}
		return m, m.waitEvent()
	case snapMsg:
		m.err = msg.err
		if msg.snap != nil {
			m.snap = *msg.snap
		}
		return m, nil
	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tickCmd(30)
	case closedMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := k.String()
	switch key {
	case "ctrl+c", "q", "esc":
		m.done = true
		return m, tea.Quit
	case "enter":
		switch m.snap.Phase {
		case model.PhaseMenu:
			return m, m.call(func(ctx context.Context) (*model.Snapshot, error) { return m.serv.Start(ctx, m.id) })
		case model.PhaseGameOver:
			return m, m.call(func(ctx context.Context) (*model.Snapshot, error) { return m.serv.Restart(ctx, m.id) })
		}
		return m, nil
	case "r":
		return m, m.call(func(ctx context.Context) (*model.Snapshot, error) { return m.serv.Restart(ctx, m.id) })
	case "L":
		next := m.nextLanguage()
		return m, m.call(func(ctx context.Context) (*model.Snapshot, error) { return m.serv.SetLanguage(ctx, m.id, next) })
	}

	action, ok := actionFor(key)
	if !ok || m.snap.Phase != model.PhasePlaying {
		return m, nil
	}
	return m, m.call(func(ctx context.Context) (*model.Snapshot, error) { return m.serv.Input(ctx, m.id, action) })
}

func (m Model) nextLanguage() string {
	if len(m.languages) == 0 {
		return model.DefaultLanguage
	}
	for i, l := range m.languages {
		if l == m.snap.Language {
			return m.languages[(i+1)%len(m.languages)]
		}
	}
	return m.languages[0]
}

// actionFor Клавиша -> действие игрока
func actionFor(key string) (model.Action, bool) {
	switch key {
	case " ", "space":
		return model.Action{Kind: model.ActionTap}, true
	case "y":
		return model.Action{Kind: model.ActionAnswer, Value: "true"}, true
	case "n":
		return model.Action{Kind: model.ActionAnswer, Value: "false"}, true
	case "up", "down", "left", "right":
		return model.Action{Kind: model.ActionSwipe, Value: key}, true
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return model.Action{Kind: model.ActionSelect, Index: int(key[0] - '1')}, true
	}
	return model.Action{}, false
}

// Run Показывает сессию в терминале, пока игрок не выйдет или ctx не отменят.
// Сессия закрывается при выходе
func Run(ctx context.Context, serv service.ArcadeService, params service.CreateSessionParams, opts ...tea.ProgramOption) error {
	sess, err := serv.CreateSession(ctx, params)
	if err != nil {
		return err
	}
	defer func() {
		_ = serv.CloseSession(context.Background(), sess.ID)
	}()

	events, cancel, err := serv.Subscribe(ctx, sess.ID)
	if err != nil {
		return err
	}
	defer cancel()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err = tea.NewProgram(New(serv, sess, events), opts...).Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
