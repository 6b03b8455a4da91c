package env

import (
	"fmt"
	"os"
	"time"

	"neuroflash/internal/config"
)

const (
	livesEnvName            = "ARCADE_LIVES"
	instructionDelayEnvName = "ARCADE_INSTRUCTION_DELAY"
	resultDelayEnvName      = "ARCADE_RESULT_DELAY"
	tickIntervalEnvName     = "ARCADE_TICK_INTERVAL"
	speedCoefficientEnvName = "ARCADE_SPEED_COEFFICIENT"
	highScoreLimitEnvName   = "ARCADE_HIGHSCORE_LIMIT"
	registryPathEnvName     = "ARCADE_REGISTRY_PATH"
)

const (
	minResultDelay = 1000 * time.Millisecond
	maxResultDelay = 1200 * time.Millisecond
)

type arcadeConfig struct {
	lives            int
	instructionDelay time.Duration
	resultDelay      time.Duration
	tickInterval     time.Duration
	speedCoefficient float64
	highScoreLimit   int
	registryPath     string
}

func NewArcadeConfig() (config.ArcadeConfig, error) {
	lives, err := intOr(livesEnvName, 3)
	if err != nil {
		return nil, err
	}
	if lives <= 0 {
		return nil, fmt.Errorf("%s must be positive", livesEnvName)
	}

	instructionDelay, err := durationOr(instructionDelayEnvName, 1200*time.Millisecond)
	if err != nil {
		return nil, err
	}

	resultDelay, err := durationOr(resultDelayEnvName, minResultDelay)
	if err != nil {
		return nil, err
	}
	if resultDelay < minResultDelay || resultDelay > maxResultDelay {
		return nil, fmt.Errorf("%s must be within %s..%s, got %s", resultDelayEnvName, minResultDelay, maxResultDelay, resultDelay)
	}

	tickInterval, err := durationOr(tickIntervalEnvName, 16*time.Millisecond)
	if err != nil {
		return nil, err
	}
	if tickInterval <= 0 {
		return nil, fmt.Errorf("%s must be positive", tickIntervalEnvName)
	}

	coefficient, err := floatOr(speedCoefficientEnvName, 0.08)
	if err != nil {
		return nil, err
	}
	if coefficient < 0 {
		return nil, fmt.Errorf("%s must not be negative", speedCoefficientEnvName)
	}

	limit, err := intOr(highScoreLimitEnvName, 5)
	if err != nil {
		return nil, err
	}

	return &arcadeConfig{
		lives:            lives,
		instructionDelay: instructionDelay,
		resultDelay:      resultDelay,
		tickInterval:     tickInterval,
		speedCoefficient: coefficient,
		highScoreLimit:   limit,
		registryPath:     os.Getenv(registryPathEnvName),
	}, nil
}

func (a *arcadeConfig) Lives() int                      { return a.lives }
func (a *arcadeConfig) InstructionDelay() time.Duration { return a.instructionDelay }
func (a *arcadeConfig) ResultDelay() time.Duration      { return a.resultDelay }
func (a *arcadeConfig) TickInterval() time.Duration     { return a.tickInterval }
func (a *arcadeConfig) SpeedCoefficient() float64       { return a.speedCoefficient }
func (a *arcadeConfig) HighScoreLimit() int             { return a.highScoreLimit }
func (a *arcadeConfig) RegistryPath() string            { return a.registryPath }
