package microgame

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuroflash/internal/model"
	"neuroflash/internal/registry"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// verdicts Записывает все вызовы репортера
type verdicts struct {
	got []bool
}

func (v *verdicts) report(success bool) {
	v.got = append(v.got, success)
}

func params(difficulty int, seed uint64) Params {
	return Params{
		Difficulty: difficulty,
		Now:        t0,
		Duration:   4 * time.Second,
		Rand:       rand.New(rand.NewPCG(seed, seed+1)),
	}
}

func activate(t *testing.T, u Unit, p Params) *verdicts {
	t.Helper()
	v := &verdicts{}
	u.Activate(p, v.report)
	return v
}

func TestDefaultFactoryCoversDefaultRegistry(t *testing.T) {
	f := DefaultFactory()
	require.NoError(t, f.Supports(registry.Default().Types()...))

	for _, typ := range registry.Default().Types() {
		u, err := f.New(typ)
		require.NoError(t, err)
		assert.NotNil(t, u)
	}

	_, err := f.New("PINBALL")
	assert.ErrorIs(t, err, ErrUnknownGame)
	assert.ErrorIs(t, f.Supports(model.GameMath, "PINBALL"), ErrUnknownGame)
}

func TestFactoryReturnsFreshUnits(t *testing.T) {
	f := DefaultFactory()
	a, _ := f.New(model.GameMemory)
	b, _ := f.New(model.GameMemory)
	assert.NotSame(t, a, b)
}

func TestReflex(t *testing.T) {
	t.Run("too early", func(t *testing.T) {
		g := &reflex{}
		v := activate(t, g, params(1, 1))
		assert.Equal(t, "WAIT", g.View(t0)["status"])

		g.Input(model.Action{Kind: model.ActionTap}, t0.Add(10*time.Millisecond))
		assert.Equal(t, []bool{false}, v.got)
	})

	t.Run("after signal", func(t *testing.T) {
		g := &reflex{}
		v := activate(t, g, params(1, 2))
		at := g.goAt.Add(50 * time.Millisecond)
		assert.Equal(t, "GO", g.View(at)["status"])

		g.Input(model.Action{Kind: model.ActionTap}, at)
		g.Input(model.Action{Kind: model.ActionTap}, at)
		assert.Equal(t, []bool{true}, v.got)
	})

	t.Run("signal window", func(t *testing.T) {
		for seed := uint64(0); seed < 50; seed++ {
			g := &reflex{}
			activate(t, g, params(1, seed))
			delay := g.goAt.Sub(t0)
			assert.GreaterOrEqual(t, delay, time.Second)
			assert.LessOrEqual(t, delay, 2400*time.Millisecond)
		}
	})
}

func TestMathQuiz(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		g := &mathQuiz{}
		v := activate(t, g, params(3, seed))

		assert.Equal(t, g.correct, g.a+g.b == g.shown)
		assert.LessOrEqual(t, g.a, 12)

		// мусорный ответ игнорируется
		g.Input(model.Action{Kind: model.ActionAnswer, Value: "maybe"}, t0)
		require.Empty(t, v.got)

		answer := "false"
		if g.correct {
			answer = "true"
		}
		g.Input(model.Action{Kind: model.ActionAnswer, Value: answer}, t0)
		assert.Equal(t, []bool{true}, v.got)
	}
}

func TestStroop(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		g := &stroop{}
		v := activate(t, g, params(1, seed))
		require.NotEqual(t, g.options[0], g.options[1])

		right := 0
		if g.options[1] == g.ink {
			right = 1
		}
		g.Input(model.Action{Kind: model.ActionSelect, Index: 1 - right}, t0)
		assert.Equal(t, []bool{false}, v.got)

		g2 := &stroop{}
		v2 := activate(t, g2, params(1, seed))
		g2.Input(model.Action{Kind: model.ActionSelect, Index: 5}, t0)
		g2.Input(model.Action{Kind: model.ActionSelect, Index: right}, t0)
		assert.Equal(t, []bool{true}, v2.got)
	}
}

func TestCube(t *testing.T) {
	t.Run("instant tap misses", func(t *testing.T) {
		g := &cube{}
		v := activate(t, g, params(1, 7))
		g.Input(model.Action{Kind: model.ActionTap}, t0)
		assert.Equal(t, []bool{false}, v.got)
	})

	t.Run("tap facing front", func(t *testing.T) {
		g := &cube{}
		v := activate(t, g, params(2, 8))
		secs := (360 - g.offset + 10) / g.speed
		at := t0.Add(time.Duration(secs * float64(time.Second)))

		g.Input(model.Action{Kind: model.ActionTap}, at)
		assert.Equal(t, []bool{true}, v.got)
		// после остановки угол больше не меняется
		assert.Equal(t, g.View(at)["angle"], g.View(at.Add(time.Second))["angle"])
	})
}

func TestMemory(t *testing.T) {
	t.Run("recall all targets", func(t *testing.T) {
		g := &memory{}
		v := activate(t, g, params(1, 3))
		require.Equal(t, 3, g.count)

		// во время показа клики игнорируются
		g.Input(model.Action{Kind: model.ActionSelect, Index: 0}, t0)
		assert.Equal(t, "MEMORIZE", g.View(t0)["phase"])

		at := t0.Add(memoryShowTime)
		assert.Equal(t, "RECALL", g.View(at)["phase"])
		for i, target := range g.targets {
			if target {
				g.Input(model.Action{Kind: model.ActionSelect, Index: i}, at)
			}
		}
		assert.Equal(t, []bool{true}, v.got)
	})

	t.Run("wrong cell", func(t *testing.T) {
		g := &memory{}
		v := activate(t, g, params(1, 4))
		at := t0.Add(memoryShowTime)
		for i, target := range g.targets {
			if !target {
				g.Input(model.Action{Kind: model.ActionSelect, Index: i}, at)
				break
			}
		}
		assert.Equal(t, []bool{false}, v.got)
	})

	t.Run("more targets on higher difficulty", func(t *testing.T) {
		g := &memory{}
		activate(t, g, params(10, 5))
		assert.Equal(t, 5, g.count)
	})
}

func TestTimingBar(t *testing.T) {
	g := &timingBar{}
	v := activate(t, g, params(1, 9))
	require.Less(t, g.zoneFrom, g.zoneTo)

	center := (g.zoneFrom + g.zoneTo) / 2
	at := t0.Add(time.Duration(center / 200 * float64(g.period)))
	assert.InDelta(t, center, g.position(at), 0.5)

	g.Input(model.Action{Kind: model.ActionTap}, at)
	assert.Equal(t, []bool{true}, v.got)

	miss := &timingBar{}
	mv := activate(t, miss, params(1, 9))
	miss.Input(model.Action{Kind: model.ActionTap}, t0)
	assert.Equal(t, []bool{false}, mv.got)
}

func TestSwipe(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		g := &swipe{}
		v := activate(t, g, params(6, seed))
		g.Input(model.Action{Kind: model.ActionSwipe, Value: "diagonal"}, t0)
		require.Empty(t, v.got)

		g.Input(model.Action{Kind: model.ActionSwipe, Value: g.expected()}, t0)
		assert.Equal(t, []bool{true}, v.got)
	}

	g := &swipe{}
	activate(t, g, params(1, 1))
	assert.False(t, g.reverse)
}

func TestDeactivatedUnitIgnoresInput(t *testing.T) {
	for typ, ctor := range DefaultFactory() {
		t.Run(string(typ), func(t *testing.T) {
			u := ctor()
			v := activate(t, u, params(1, 11))
			u.Deactivate()

			late := t0.Add(2 * time.Second)
			u.Input(model.Action{Kind: model.ActionTap}, late)
			u.Input(model.Action{Kind: model.ActionAnswer, Value: "true"}, late)
			u.Input(model.Action{Kind: model.ActionSelect, Index: 0}, late)
			u.Input(model.Action{Kind: model.ActionSwipe, Value: "up"}, late)
			assert.Empty(t, v.got)

			view := u.View(late)
			assert.Equal(t, false, view["active"])
			assert.Equal(t, string(typ), view["game"])
		})
	}
}

func TestViewCarriesAssets(t *testing.T) {
	p := params(1, 1)
	p.Assets = &model.AssetPack{ThemeName: "space", PrimaryIconRef: "rocket.png", SecondaryIconRef: "ufo.png"}

	u := &swipe{}
	activate(t, u, p)
	view := u.View(t0)
	assert.Equal(t, "space", view["theme"])
	assert.Equal(t, "rocket.png", view["primary_icon"])
	assert.Equal(t, "ufo.png", view["secondary_icon"])
}
