// Package loop содержит однопоточный цикл событий, на котором живёт игровая сессия.
// Все колбэки таймеров и внешние вызовы выполняются строго на одной горутине,
// поэтому состоянием сессии владеет единственный писатель.
package loop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrStopped Цикл остановлен, задача не будет выполнена
var ErrStopped = errors.New("event loop is stopped")

const defaultInboxSize = 256

// Timer Запланированный колбэк, который можно отменить
type Timer interface {
	// Stop отменяет таймер. Возвращает false, если таймер уже был остановлен.
	Stop() bool
}

// Scheduler Источник времени и отложенных колбэков для сессии
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
}

// Loop Реальный цикл событий поверх time.AfterFunc
type Loop struct {
	inbox    chan func()
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

// New Создать цикл. Запуск - через Run
func New(logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		inbox:  make(chan func(), defaultInboxSize),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Run Обрабатывает задачи до вызова Stop. Блокирует вызывающую горутину
func (l *Loop) Run() {
	defer close(l.done)
	for {
		select {
		case <-l.quit:
			return
		case fn := <-l.inbox:
			l.exec(fn)
		}
	}
}

// Stop Останавливает цикл и ждёт выхода из Run, если он был запущен
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.quit)
	})
}

// Done Закрывается, когда Run завершился
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("event loop task panicked", zap.Any("panic", r))
		}
	}()
	fn()
}

// Post Ставит задачу в очередь. false - цикл уже остановлен
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.quit:
		return false
	default:
	}
	select {
	case l.inbox <- fn:
		return true
	case <-l.quit:
		return false
	}
}

// Call Выполняет fn на цикле и ждёт завершения.
// Нельзя вызывать с самой горутины цикла - будет дедлок
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrStopped
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.quit:
		return ErrStopped
	}
}

func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc Колбэк будет выполнен на цикле через d.
// Stop, вызванный на цикле, гарантирует, что fn уже не выполнится,
// даже если системный таймер успел сработать и задача стоит в очереди
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.mu.Lock()
	t.t = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped.Load() {
				return
			}
			t.stopped.Store(true)
			fn()
		})
	})
	t.mu.Unlock()
	return t
}

// Every Периодический колбэк с интервалом d.
// Следующий запуск планируется от момента срабатывания, дрейф допустим
func (l *Loop) Every(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	var arm func()
	arm = func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.stopped.Load() {
			return
		}
		t.t = time.AfterFunc(d, func() {
			if !l.Post(func() {
				if t.stopped.Load() {
					return
				}
				fn()
			}) {
				return
			}
			arm()
		})
	}
	arm()
	return t
}

type loopTimer struct {
	mu      sync.Mutex
	t       *time.Timer
	stopped atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.t != nil {
		t.t.Stop()
	}
	return true
}
