package highscore_repo

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuroflash/internal/model"
)

func entry(minute, score int) model.ScoreEntry {
	return model.ScoreEntry{
		Timestamp: time.Date(2026, 1, 1, 12, minute, 0, 0, time.UTC),
		Score:     score,
	}
}

func TestRecordSortsDescendingAndTruncates(t *testing.T) {
	r := NewHighScoreRepository(5)

	for i, s := range []int{3, 9, 1, 7, 5, 8, 2} {
		top := r.Record(entry(i, s))
		require.LessOrEqual(t, len(top), 5)
		for j := 1; j < len(top); j++ {
			assert.GreaterOrEqual(t, top[j-1].Score, top[j].Score)
		}
	}

	scores := make([]int, 0, 5)
	for _, e := range r.Top() {
		scores = append(scores, e.Score)
	}
	assert.Equal(t, []int{9, 8, 7, 5, 3}, scores)
}

func TestRecordTiesKeepInsertionOrder(t *testing.T) {
	r := NewHighScoreRepository(3)

	r.Record(entry(1, 4))
	r.Record(entry(2, 4))
	r.Record(entry(3, 4))
	top := r.Record(entry(4, 4))

	require.Len(t, top, 3)
	assert.Equal(t, entry(1, 4), top[0])
	assert.Equal(t, entry(2, 4), top[1])
	assert.Equal(t, entry(3, 4), top[2])
}

func TestTopReturnsCopy(t *testing.T) {
	r := NewHighScoreRepository(0)
	r.Record(entry(0, 10))

	top := r.Top()
	top[0].Score = -1

	assert.Equal(t, 10, r.Top()[0].Score)
}

func TestDefaultLimit(t *testing.T) {
	r := NewHighScoreRepository(-1)
	for i := 0; i < 10; i++ {
		r.Record(entry(i, i))
	}
	assert.Len(t, r.Top(), DefaultLimit)
}

func TestConcurrentRecord(t *testing.T) {
	r := NewHighScoreRepository(5)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Record(entry(i%60, i))
		}(i)
	}
	wg.Wait()

	top := r.Top()
	require.Len(t, top, 5)
	assert.Equal(t, 49, top[0].Score)
}
