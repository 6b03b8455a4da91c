package repository

import (
	"context"
	"errors"
	"time"

	"neuroflash/internal/model"
)

// ErrSessionNotFound Сессии с таким ID нет (или её уже удалили)
var ErrSessionNotFound = errors.New("session not found")

// HighScoreRepository Общая для процесса таблица рекордов
type HighScoreRepository interface {
	Record(entry model.ScoreEntry) []model.ScoreEntry
	Top() []model.ScoreEntry
}

// SessionRecord Запись о живой сессии
type SessionRecord struct {
	Session  model.Session
	LastSeen time.Time
}

// SessionRepository Реестр живых сессий в памяти
type SessionRepository interface {
	Create(ctx context.Context, rec SessionRecord) error
	Get(ctx context.Context, id string) (SessionRecord, error)
	Touch(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]SessionRecord, error)
	// IdleSince Сессии, к которым не обращались с момента before
	IdleSince(ctx context.Context, before time.Time) ([]string, error)
}
