package app

import (
	"context"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	arcadeAPI "neuroflash/internal/api/arcade"
	"neuroflash/internal/api/health"
	"neuroflash/internal/api/stream"
	"neuroflash/internal/config"
	"neuroflash/internal/config/env"
	"neuroflash/internal/locale"
	"neuroflash/internal/microgame"
	"neuroflash/internal/orchestrator"
	"neuroflash/internal/registry"
	"neuroflash/internal/repository"
	"neuroflash/internal/repository/highscore_repo"
	"neuroflash/internal/repository/session_repo"
	"neuroflash/internal/service/arcade"
)

type ServiceProvider struct {
	logger  *zap.Logger
	version string

	// Configs
	httpCfg    config.HTTPConfig
	arcadeCfg  config.ArcadeConfig
	tokenCfg   config.TokenConfig
	sessionCfg config.SessionConfig

	// Game bits
	registry *registry.Registry
	matcher  *locale.Matcher

	// Repositories
	highScoreRepo repository.HighScoreRepository
	sessionRepo   repository.SessionRepository

	// Arcade bits
	arcadeServ arcade.Service
	arcadeHand *arcadeAPI.Handler
	streamHand *stream.Handler
	healthHand *health.Handler

	router chi.Router
}

func newServiceProvider(logger *zap.Logger, version string) *ServiceProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServiceProvider{logger: logger, version: version}
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	return sp.logger
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) ArcadeCfg() config.ArcadeConfig {
	if sp.arcadeCfg == nil {
		cfg, err := env.NewArcadeConfig()
		if err != nil {
			panic("failed to get arcade config: " + err.Error())
		}
		sp.arcadeCfg = cfg
	}
	return sp.arcadeCfg
}

func (sp *ServiceProvider) TokenCfg() config.TokenConfig {
	if sp.tokenCfg == nil {
		cfg, err := env.NewTokenConfig()
		if err != nil {
			panic("failed to get token config: " + err.Error())
		}
		sp.tokenCfg = cfg
	}
	return sp.tokenCfg
}

func (sp *ServiceProvider) SessionCfg() config.SessionConfig {
	if sp.sessionCfg == nil {
		cfg, err := env.NewSessionConfig()
		if err != nil {
			panic("failed to get session config: " + err.Error())
		}
		sp.sessionCfg = cfg
	}
	return sp.sessionCfg
}

// Registry Реестр из YAML файла, если он задан, иначе встроенный
func (sp *ServiceProvider) Registry() *registry.Registry {
	if sp.registry == nil {
		reg, err := LoadRegistry(sp.ArcadeCfg().RegistryPath())
		if err != nil {
			panic("failed to load game registry: " + err.Error())
		}
		sp.registry = reg
	}
	return sp.registry
}

func (sp *ServiceProvider) Matcher() *locale.Matcher {
	if sp.matcher == nil {
		sp.matcher = locale.NewMatcher(sp.Registry().Languages())
	}
	return sp.matcher
}

// Rules Правила оркестратора из конфига
func (sp *ServiceProvider) Rules() orchestrator.Config {
	return RulesFromConfig(sp.ArcadeCfg())
}

func (sp *ServiceProvider) HighScoreRepository() repository.HighScoreRepository {
	if sp.highScoreRepo == nil {
		sp.highScoreRepo = highscore_repo.NewHighScoreRepository(sp.ArcadeCfg().HighScoreLimit())
	}
	return sp.highScoreRepo
}

func (sp *ServiceProvider) SessionRepository() repository.SessionRepository {
	if sp.sessionRepo == nil {
		sp.sessionRepo = session_repo.NewSessionRepository()
	}
	return sp.sessionRepo
}

func (sp *ServiceProvider) ArcadeService() arcade.Service {
	if sp.arcadeServ == nil {
		s, err := arcade.NewArcadeService(arcade.Deps{
			Registry:          sp.Registry(),
			Units:             microgame.DefaultFactory(),
			Rules:             sp.Rules(),
			Board:             sp.HighScoreRepository(),
			Sessions:          sp.SessionRepository(),
			Matcher:           sp.Matcher(),
			TokenSecret:       sp.TokenCfg().AccessTokenSecretKey(),
			TokenTTL:          sp.TokenCfg().AccessTokenDuration(),
			IdleTTL:           sp.SessionCfg().IdleTTL(),
			BroadcastInterval: sp.SessionCfg().BroadcastInterval(),
			Logger:            sp.logger.Named("arcade"),
		})
		if err != nil {
			panic("failed to create arcade service: " + err.Error())
		}
		sp.arcadeServ = s
	}
	return sp.arcadeServ
}

func (sp *ServiceProvider) ArcadeHandler() *arcadeAPI.Handler {
	if sp.arcadeHand == nil {
		sp.arcadeHand = arcadeAPI.NewHandler(arcadeAPI.HandlerDeps{
			Serv:      sp.ArcadeService(),
			Logger:    sp.logger.Named("http"),
			CookieTTL: sp.TokenCfg().AccessTokenDuration(),
		})
	}
	return sp.arcadeHand
}

func (sp *ServiceProvider) StreamHandler() *stream.Handler {
	if sp.streamHand == nil {
		sp.streamHand = stream.NewHandler(stream.HandlerDeps{
			Serv:   sp.ArcadeService(),
			Logger: sp.logger.Named("stream"),
		})
	}
	return sp.streamHand
}

func (sp *ServiceProvider) HealthHandler() *health.Handler {
	if sp.healthHand == nil {
		sp.healthHand = health.NewHandler(health.HandlerDeps{
			Stats:   sp.ArcadeService(),
			Version: sp.version,
		})
	}
	return sp.healthHand
}

func (sp *ServiceProvider) Router(_ context.Context) chi.Router {
	if sp.router == nil {
		sp.router = NewRouter(RouterDeps{
			Arcade:      sp.ArcadeHandler(),
			Stream:      sp.StreamHandler(),
			Health:      sp.HealthHandler(),
			TokenSecret: sp.TokenCfg().AccessTokenSecretKey(),
			Logger:      sp.logger.Named("http"),
		})
	}
	return sp.router
}

// LoadRegistry Реестр из файла path или встроенный, если path пуст
func LoadRegistry(path string) (*registry.Registry, error) {
	if path == "" {
		return registry.New(registry.DefaultDefinitions())
	}
	cfg, err := env.NewRegistryConfigFromYAML(path)
	if err != nil {
		return nil, err
	}
	return registry.New(cfg.Definitions())
}

// RulesFromConfig Переводит настройки окружения в правила оркестратора
func RulesFromConfig(cfg config.ArcadeConfig) orchestrator.Config {
	rules := orchestrator.DefaultConfig()
	rules.Lives = cfg.Lives()
	rules.InstructionDelay = cfg.InstructionDelay()
	rules.ResultDelay = cfg.ResultDelay()
	rules.TickInterval = cfg.TickInterval()
	rules.SpeedCoefficient = cfg.SpeedCoefficient()
	return rules
}
