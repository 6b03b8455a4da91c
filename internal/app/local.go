package app

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"neuroflash/internal/config/env"
	"neuroflash/internal/microgame"
	"neuroflash/internal/repository/highscore_repo"
	"neuroflash/internal/repository/session_repo"
	"neuroflash/internal/service/arcade"
)

// NewLocalService Сервис аркады для одного процесса без HTTP.
// Токены наружу не уходят, поэтому секрет одноразовый
func NewLocalService(logger *zap.Logger) (arcade.Service, error) {
	cfg, err := env.NewArcadeConfig()
	if err != nil {
		return nil, err
	}
	reg, err := LoadRegistry(cfg.RegistryPath())
	if err != nil {
		return nil, err
	}
	return arcade.NewArcadeService(arcade.Deps{
		Registry:    reg,
		Units:       microgame.DefaultFactory(),
		Rules:       RulesFromConfig(cfg),
		Board:       highscore_repo.NewHighScoreRepository(cfg.HighScoreLimit()),
		Sessions:    session_repo.NewSessionRepository(),
		TokenSecret: []byte(uuid.NewString()),
		Logger:      logger,
	})
}
