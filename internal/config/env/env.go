package env

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// durationOr Длительность из переменной name или значение по умолчанию
func durationOr(name string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}

func intOr(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}

func floatOr(name string, def float64) (float64, error) {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return f, nil
}

func stringOr(name, def string) string {
	if v := os.Getenv(name); len(v) != 0 {
		return v
	}
	return def
}
