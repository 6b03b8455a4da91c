package loop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startLoop(t *testing.T) *Loop {
	t.Helper()
	l := New(nil)
	go l.Run()
	t.Cleanup(func() {
		l.Stop()
		<-l.Done()
	})
	return l
}

func TestLoopCallRunsTask(t *testing.T) {
	l := startLoop(t)

	ran := false
	err := l.Call(context.Background(), func() { ran = true })
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestLoopCallAfterStop(t *testing.T) {
	l := New(nil)
	go l.Run()
	l.Stop()
	<-l.Done()

	err := l.Call(context.Background(), func() {})
	assert.ErrorIs(t, err, ErrStopped)
	assert.False(t, l.Post(func() {}))
}

func TestLoopRecoversPanickingTask(t *testing.T) {
	l := startLoop(t)

	l.Post(func() { panic("boom") })
	ran := false
	require.NoError(t, l.Call(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

func TestLoopAfterFuncFiresOnLoop(t *testing.T) {
	l := startLoop(t)

	fired := make(chan struct{})
	l.AfterFunc(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestLoopStoppedTimerNeverFires(t *testing.T) {
	l := startLoop(t)
	ctx := context.Background()

	fired := false
	var timer Timer
	require.NoError(t, l.Call(ctx, func() {
		timer = l.AfterFunc(time.Millisecond, func() { fired = true })
	}))
	// системный таймер срабатывает, пока цикл занят; отмена происходит раньше,
	// чем цикл доберётся до поставленной в очередь задачи
	require.NoError(t, l.Call(ctx, func() {
		time.Sleep(10 * time.Millisecond)
		assert.True(t, timer.Stop())
	}))
	require.NoError(t, l.Call(ctx, func() {}))

	assert.False(t, fired)
}

func TestLoopEveryRepeatsUntilStopped(t *testing.T) {
	l := startLoop(t)

	ticks := make(chan struct{}, 16)
	var timer Timer
	require.NoError(t, l.Call(context.Background(), func() {
		timer = l.Every(2*time.Millisecond, func() {
			select {
			case ticks <- struct{}{}:
			default:
			}
		})
	}))

	for i := 0; i < 3; i++ {
		select {
		case <-ticks:
		case <-time.After(time.Second):
			t.Fatal("ticker stalled")
		}
	}
	require.NoError(t, l.Call(context.Background(), func() {
		assert.True(t, timer.Stop())
	}))
	assert.False(t, timer.Stop())
}

func TestManualAdvanceFiresInOrder(t *testing.T) {
	start := time.Unix(1000, 0)
	m := NewManual(start)

	var order []string
	m.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	m.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, start.Add(20*time.Millisecond), m.Now())

	m.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Zero(t, m.Pending())
}

func TestManualCallbackSeesItsOwnTime(t *testing.T) {
	start := time.Unix(0, 0)
	m := NewManual(start)

	var seen time.Time
	m.AfterFunc(7*time.Millisecond, func() { seen = m.Now() })
	m.Advance(time.Second)

	assert.Equal(t, start.Add(7*time.Millisecond), seen)
}

func TestManualNestedScheduling(t *testing.T) {
	m := NewManual(time.Unix(0, 0))

	count := 0
	m.AfterFunc(10*time.Millisecond, func() {
		count++
		m.AfterFunc(10*time.Millisecond, func() { count++ })
	})
	m.Advance(25 * time.Millisecond)

	assert.Equal(t, 2, count)
}

func TestManualEveryAndStop(t *testing.T) {
	m := NewManual(time.Unix(0, 0))

	count := 0
	timer := m.Every(10*time.Millisecond, func() { count++ })
	m.Advance(35 * time.Millisecond)
	assert.Equal(t, 3, count)

	assert.True(t, timer.Stop())
	m.Advance(time.Second)
	assert.Equal(t, 3, count)
	assert.False(t, timer.Stop())
}

func TestManualNext(t *testing.T) {
	start := time.Unix(0, 0)
	m := NewManual(start)
	assert.False(t, m.Next())

	fired := false
	m.AfterFunc(time.Minute, func() { fired = true })
	require.True(t, m.Next())
	assert.True(t, fired)
	assert.Equal(t, start.Add(time.Minute), m.Now())
}
