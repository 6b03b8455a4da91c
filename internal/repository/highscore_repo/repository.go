package highscore_repo

import (
	"slices"
	"sync"

	"neuroflash/internal/model"
	"neuroflash/internal/repository"
)

// DefaultLimit Сколько лучших результатов хранит таблица
const DefaultLimit = 5

// BoardRepo Таблица рекордов в памяти процесса.
// Отсортирована по убыванию счёта, при равенстве выше тот, кто записан раньше
type BoardRepo struct {
	mtx     sync.RWMutex
	limit   int
	entries []model.ScoreEntry
}

var _ repository.HighScoreRepository = (*BoardRepo)(nil)

// NewHighScoreRepository Конструктор таблицы с ограничением limit записей
func NewHighScoreRepository(limit int) *BoardRepo {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &BoardRepo{
		limit:   limit,
		entries: make([]model.ScoreEntry, 0, limit+1),
	}
}

// Record Добавляет результат, пересортировывает и обрезает таблицу.
// Возвращает копию таблицы после записи
func (r *BoardRepo) Record(entry model.ScoreEntry) []model.ScoreEntry {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.entries = append(r.entries, entry)
	slices.SortStableFunc(r.entries, func(a, b model.ScoreEntry) int {
		return b.Score - a.Score
	})
	if len(r.entries) > r.limit {
		r.entries = r.entries[:r.limit]
	}
	return slices.Clone(r.entries)
}

// Top Копия текущей таблицы
func (r *BoardRepo) Top() []model.ScoreEntry {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return slices.Clone(r.entries)
}
