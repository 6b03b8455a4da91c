package env

import (
	"fmt"
	"os"
	"time"

	"neuroflash/internal/config"
)

const (
	accessTokenKeyEnvName      = "ACCESS_TOKEN"
	accessTokenDurationEnvName = "ACCESS_TOKEN_DURATION"
)

type tokenConfig struct {
	accessTokenSecretKey string
	accessTokenDuration  time.Duration
}

func NewTokenConfig() (config.TokenConfig, error) {
	accessToken := os.Getenv(accessTokenKeyEnvName)
	if len(accessToken) == 0 {
		return nil, fmt.Errorf("access token secret key not found")
	}

	accessTokenDuration, err := durationOr(accessTokenDurationEnvName, 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid access token duration: %w", err)
	}

	return &tokenConfig{
		accessTokenSecretKey: accessToken,
		accessTokenDuration:  accessTokenDuration,
	}, nil
}

func (j *tokenConfig) AccessTokenSecretKey() []byte {
	return []byte(j.accessTokenSecretKey)
}

func (j *tokenConfig) AccessTokenDuration() time.Duration {
	return j.accessTokenDuration
}
