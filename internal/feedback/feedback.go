// Package feedback - звуковые и прочие сигналы сессии.
// Сигналы односторонние: оркестратор ничего не получает в ответ,
// а сломанный коллаборатор не должен влиять на игру.
package feedback

import (
	"go.uber.org/zap"

	"neuroflash/internal/model"
)

// Feedback Получатель сигналов сессии
type Feedback interface {
	OnRoundStart()
	OnTick()
	OnWin()
	OnLose()
	OnUIClick()
}

// Nop Ничего не делает
type Nop struct{}

func (Nop) OnRoundStart() {}
func (Nop) OnTick()       {}
func (Nop) OnWin()        {}
func (Nop) OnLose()       {}
func (Nop) OnUIClick()    {}

// Func Адаптер: все сигналы сводятся к одному колбэку с типом сигнала
type Func func(cue model.Cue)

func (f Func) OnRoundStart() { f(model.CueRoundStart) }
func (f Func) OnTick()       { f(model.CueTick) }
func (f Func) OnWin()        { f(model.CueWin) }
func (f Func) OnLose()       { f(model.CueLose) }
func (f Func) OnUIClick()    { f(model.CueUIClick) }

// Multi Рассылает сигнал всем получателям по очереди
type Multi []Feedback

func (m Multi) each(fn func(Feedback)) {
	for _, f := range m {
		fn(f)
	}
}

func (m Multi) OnRoundStart() { m.each(Feedback.OnRoundStart) }
func (m Multi) OnTick()       { m.each(Feedback.OnTick) }
func (m Multi) OnWin()        { m.each(Feedback.OnWin) }
func (m Multi) OnLose()       { m.each(Feedback.OnLose) }
func (m Multi) OnUIClick()    { m.each(Feedback.OnUIClick) }

// Logging Пишет сигналы в debug-лог
func Logging(logger *zap.Logger) Feedback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Func(func(cue model.Cue) {
		logger.Debug("feedback cue", zap.String("cue", string(cue)))
	})
}

// safe Гасит панику коллаборатора: игра продолжается без звука
type safe struct {
	next   Feedback
	logger *zap.Logger
}

// Safe Оборачивает получателя так, чтобы его сбои не доходили до оркестратора.
// Получатели Multi оборачиваются по одному: паника одного не мешает остальным.
// nil превращается в Nop
func Safe(f Feedback, logger *zap.Logger) Feedback {
	if f == nil {
		return Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	switch v := f.(type) {
	case *safe:
		return v
	case Multi:
		out := make(Multi, len(v))
		for i, m := range v {
			out[i] = Safe(m, logger)
		}
		return out
	}
	return &safe{next: f, logger: logger}
}

func (s *safe) call(cue model.Cue, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("feedback collaborator failed", zap.String("cue", string(cue)), zap.Any("panic", r))
		}
	}()
	fn()
}

func (s *safe) OnRoundStart() { s.call(model.CueRoundStart, s.next.OnRoundStart) }
func (s *safe) OnTick()       { s.call(model.CueTick, s.next.OnTick) }
func (s *safe) OnWin()        { s.call(model.CueWin, s.next.OnWin) }
func (s *safe) OnLose()       { s.call(model.CueLose, s.next.OnLose) }
func (s *safe) OnUIClick()    { s.call(model.CueUIClick, s.next.OnUIClick) }
