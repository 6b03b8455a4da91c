package env

import (
	"fmt"
	"time"

	"neuroflash/internal/config"
)

const (
	sessionIdleTTLEnvName           = "SESSION_IDLE_TTL"
	sessionBroadcastIntervalEnvName = "SESSION_BROADCAST_INTERVAL"
)

type sessionConfig struct {
	idleTTL           time.Duration
	broadcastInterval time.Duration
}

func NewSessionConfig() (config.SessionConfig, error) {
	ttl, err := durationOr(sessionIdleTTLEnvName, 15*time.Minute)
	if err != nil {
		return nil, err
	}
	interval, err := durationOr(sessionBroadcastIntervalEnvName, 50*time.Millisecond)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 || interval <= 0 {
		return nil, fmt.Errorf("%s and %s must be positive", sessionIdleTTLEnvName, sessionBroadcastIntervalEnvName)
	}

	return &sessionConfig{
		idleTTL:           ttl,
		broadcastInterval: interval,
	}, nil
}

func (s *sessionConfig) IdleTTL() time.Duration {
	return s.idleTTL
}

func (s *sessionConfig) BroadcastInterval() time.Duration {
	return s.broadcastInterval
}
