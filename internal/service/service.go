package service

import (
	"context"
	"errors"

	"neuroflash/internal/model"
)

var (
	// ErrInvalidAction Действие игрока не распознано
	ErrInvalidAction = errors.New("invalid player action")
	// ErrSessionClosed Сессия закрыта, пока обрабатывался запрос
	ErrSessionClosed = errors.New("session is closed")
)

// CreateSessionParams Пожелания клиента к новой сессии
type CreateSessionParams struct {
	Language       string // явный выбор
	AcceptLanguage string // заголовок Accept-Language
	Assets         *model.AssetPack
}

type ArcadeService interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (*model.Session, error)
	Snapshot(ctx context.Context, id string) (*model.Snapshot, error)
	Start(ctx context.Context, id string) (*model.Snapshot, error)
	Restart(ctx context.Context, id string) (*model.Snapshot, error)
	Input(ctx context.Context, id string, action model.Action) (*model.Snapshot, error)
	SetAssets(ctx context.Context, id string, pack *model.AssetPack) (*model.Snapshot, error)
	SetLanguage(ctx context.Context, id string, lang string) (*model.Snapshot, error)
	CloseSession(ctx context.Context, id string) error

	// Subscribe Поток событий сессии. Канал закрывается при закрытии сессии
	// или вызове функции отписки
	Subscribe(ctx context.Context, id string) (<-chan model.Event, func(), error)

	Games() []model.GameDefinition
	Languages() []string
	HighScores() []model.ScoreEntry
}
