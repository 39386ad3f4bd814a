// Package config loads analysis configuration from the project tree.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/prlens/prlens/internal/domain"
)

const fileName = ".prlens.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .prlens.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .prlens.yaml from projectPath. A missing file yields the
// defaults; a present file is unmarshalled over the defaults so partial
// configs only override what they name.
func (l *YAMLLoader) Load(projectPath string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return domain.Config{}, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return cfg, nil
}
