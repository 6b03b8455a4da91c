package env

import (
	"net"

	"neuroflash/internal/config"
)

const (
	httpHostEnvName = "HTTP_HOST"
	httpPortEnvName = "HTTP_PORT"
)

type httpConfig struct {
	host string
	port string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	return &httpConfig{
		host: stringOr(httpHostEnvName, "0.0.0.0"),
		port: stringOr(httpPortEnvName, "8080"),
	}, nil
}

func (cfg *httpConfig) Address() string {
	return net.JoinHostPort(cfg.host, cfg.port)
}
