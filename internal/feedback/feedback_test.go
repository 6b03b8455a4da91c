package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"neuroflash/internal/model"
)

func TestFuncMapsCues(t *testing.T) {
	var got []model.Cue
	f := Func(func(c model.Cue) { got = append(got, c) })

	f.OnRoundStart()
	f.OnTick()
	f.OnWin()
	f.OnLose()
	f.OnUIClick()

	assert.Equal(t, []model.Cue{
		model.CueRoundStart, model.CueTick, model.CueWin, model.CueLose, model.CueUIClick,
	}, got)
}

func TestMultiFansOut(t *testing.T) {
	var a, b []model.Cue
	m := Multi{
		Func(func(c model.Cue) { a = append(a, c) }),
		Func(func(c model.Cue) { b = append(b, c) }),
	}
	m.OnWin()

	assert.Equal(t, []model.Cue{model.CueWin}, a)
	assert.Equal(t, []model.Cue{model.CueWin}, b)
}

func TestSafeSwallowsPanics(t *testing.T) {
	broken := Func(func(model.Cue) { panic("audio device gone") })
	f := Safe(broken, zap.NewNop())

	assert.NotPanics(t, func() {
		f.OnRoundStart()
		f.OnTick()
		f.OnWin()
		f.OnLose()
		f.OnUIClick()
	})
}

func TestSafeMultiIsolatesMembers(t *testing.T) {
	var after []model.Cue
	broken := Func(func(model.Cue) { panic("audio device gone") })
	f := Safe(Multi{broken, Func(func(c model.Cue) { after = append(after, c) })}, zap.NewNop())

	assert.NotPanics(t, func() {
		f.OnRoundStart()
		f.OnWin()
	})
	// паника первого получателя не отнимает сигнал у следующего
	assert.Equal(t, []model.Cue{model.CueRoundStart, model.CueWin}, after)
}

func TestSafeNilIsNop(t *testing.T) {
	f := Safe(nil, nil)
	assert.IsType(t, Nop{}, f)
	assert.NotPanics(t, f.OnWin)
}

func TestSafeDoesNotDoubleWrap(t *testing.T) {
	f := Safe(Nop{}, nil)
	assert.Same(t, f, Safe(f, nil))
}

func TestLoggingNilLogger(t *testing.T) {
	assert.NotPanics(t, Logging(nil).OnTick)
}
