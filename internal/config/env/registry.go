package env

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"neuroflash/internal/config"
	"neuroflash/internal/model"
)

type registryFile struct {
	Games []gameEntry `yaml:"games"`
}

type gameEntry struct {
	Type         string            `yaml:"type"`
	BaseDuration string            `yaml:"base_duration"`
	Instruction  map[string]string `yaml:"instruction"`
}

type registryConfig struct {
	defs []model.GameDefinition
}

// NewRegistryConfigFromYAML Читает список мини-игр из YAML файла.
// Порядок записей в файле сохраняется
func NewRegistryConfigFromYAML(path string) (config.RegistryConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}
	return parseRegistry(data)
}

func parseRegistry(data []byte) (config.RegistryConfig, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse registry file: %w", err)
	}

	defs := make([]model.GameDefinition, 0, len(file.Games))
	for i, g := range file.Games {
		d, err := time.ParseDuration(g.BaseDuration)
		if err != nil {
			return nil, fmt.Errorf("game #%d (%s): invalid base_duration: %w", i, g.Type, err)
		}
		defs = append(defs, model.GameDefinition{
			Type:         model.GameType(g.Type),
			Instruction:  g.Instruction,
			BaseDuration: d,
		})
	}

	return &registryConfig{defs: defs}, nil
}

func (r *registryConfig) Definitions() []model.GameDefinition {
	return r.defs
}
