package config

import (
	"time"

	"github.com/joho/godotenv"

	"neuroflash/internal/model"
)

// Load Подгружает переменные окружения из .env файла
func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

// ArcadeConfig Правила и тайминги игровой сессии
type ArcadeConfig interface {
	Lives() int
	InstructionDelay() time.Duration
	ResultDelay() time.Duration
	TickInterval() time.Duration
	SpeedCoefficient() float64
	HighScoreLimit() int
	RegistryPath() string
}

// RegistryConfig Список мини-игр для реестра
type RegistryConfig interface {
	Definitions() []model.GameDefinition
}

type TokenConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

// SessionConfig Жизненный цикл сессий на сервере
type SessionConfig interface {
	IdleTTL() time.Duration
	BroadcastInterval() time.Duration
}

type LoggerConfig interface {
	Level() string
	Format() string
}
