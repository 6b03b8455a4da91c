package orchestrator

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDifficulty(t *testing.T) {
	cases := []struct {
		score, want int
	}{
		{0, 1}, {4, 1}, {5, 2}, {9, 2}, {10, 3}, {44, 9}, {45, 10}, {1000, 10}, {-3, 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Difficulty(c.score, 5, 10), "score %d", c.score)
	}

	for score := 0; score <= 200; score++ {
		assert.Equal(t, min(10, score/5+1), Difficulty(score, 5, 10))
	}
}

func TestSpeedAndScaledDuration(t *testing.T) {
	assert.InDelta(t, 1.08, SpeedMultiplier(1, 0.08), 1e-9)
	assert.InDelta(t, 1.8, SpeedMultiplier(10, 0.08), 1e-9)
	assert.InDelta(t, 2.0, SpeedMultiplier(10, 0.1), 1e-9)

	assert.Equal(t, 2500*time.Millisecond, ScaledDuration(5*time.Second, 2))
	assert.Equal(t, 5*time.Second, ScaledDuration(5*time.Second, 0))
}

func TestRemainingPct(t *testing.T) {
	total := 4 * time.Second
	assert.InDelta(t, 100, RemainingPct(0, total), 1e-9)
	assert.InDelta(t, 75, RemainingPct(time.Second, total), 1e-9)
	assert.InDelta(t, 0, RemainingPct(total, total), 1e-9)
	assert.InDelta(t, 0, RemainingPct(10*time.Second, total), 1e-9)
	assert.InDelta(t, 100, RemainingPct(-time.Second, total), 1e-9)
	assert.InDelta(t, 0, RemainingPct(time.Second, 0), 1e-9)
}

func TestNextIndexNeverRepeats(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for n := 2; n <= 7; n++ {
		seen := make(map[int]bool)
		prev := 0
		for i := 0; i < 500; i++ {
			next := NextIndex(r, n, prev)
			assert.NotEqual(t, prev, next)
			assert.GreaterOrEqual(t, next, 0)
			assert.Less(t, next, n)
			seen[next] = true
			prev = next
		}
		assert.Len(t, seen, n)
	}

	assert.Equal(t, 0, NextIndex(r, 1, 0))
	assert.Equal(t, 0, NextIndex(r, 0, 0))
}
