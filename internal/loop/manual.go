package loop

import "time"

// Manual Планировщик с виртуальным временем.
// Время двигается только через Advance/Next, колбэки выполняются
// на вызывающей горутине. Не потокобезопасен: используется из одной горутины
// (тесты, симуляция).
type Manual struct {
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	m       *Manual
	at      time.Time
	seq     uint64
	every   time.Duration
	fn      func()
	stopped bool
}

// NewManual Создать планировщик, стартующий с момента start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	return m.schedule(d, 0, fn)
}

func (m *Manual) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	return m.schedule(d, d, fn)
}

func (m *Manual) schedule(d, every time.Duration, fn func()) *manualTimer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{m: m, at: m.now.Add(d), seq: m.seq, every: every, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Advance Сдвигает время на d, по порядку выполняя все созревшие колбэки.
// Колбэки, запланированные во время Advance, тоже выполняются, если успевают созреть
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		t := m.earliest()
		if t == nil || t.at.After(target) {
			break
		}
		m.fire(t)
	}
	m.now = target
}

// Next Выполняет ближайший колбэк, передвигая время к нему.
// false - ничего не запланировано
func (m *Manual) Next() bool {
	t := m.earliest()
	if t == nil {
		return false
	}
	m.fire(t)
	return true
}

// Pending Количество активных таймеров
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (m *Manual) earliest() *manualTimer {
	var best *manualTimer
	live := m.timers[:0]
	for _, t := range m.timers {
		if t.stopped {
			continue
		}
		live = append(live, t)
		if best == nil || t.at.Before(best.at) || (t.at.Equal(best.at) && t.seq < best.seq) {
			best = t
		}
	}
	for i := len(live); i < len(m.timers); i++ {
		m.timers[i] = nil
	}
	m.timers = live
	return best
}

func (m *Manual) fire(t *manualTimer) {
	if t.at.After(m.now) {
		m.now = t.at
	}
	if t.every > 0 {
		m.seq++
		t.at = t.at.Add(t.every)
		t.seq = m.seq
	} else {
		t.stopped = true
	}
	t.fn()
}

func (t *manualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}
