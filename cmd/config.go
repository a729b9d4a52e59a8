package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/leonardinius/treelox/internal/interpreter"
)

const (
	defaultConfigName  = ".treelox.yaml"
	defaultHistoryName = ".treelox_history"
)

// Config is the optional YAML file read at startup. Command line flags take
// precedence over it.
type Config struct {
	Prompt       string `yaml:"prompt"`
	HistoryFile  string `yaml:"history_file"`
	Strict       bool   `yaml:"strict"`
	Debug        bool   `yaml:"debug"`
	MaxCallDepth int    `yaml:"max_call_depth"`
}

func DefaultConfig() Config {
	cfg := Config{
		Prompt:       "> ",
		MaxCallDepth: interpreter.DefaultMaxCallDepth,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, defaultHistoryName)
	}

	return cfg
}

// LoadConfig decodes path on top of DefaultConfig. With an empty path the
// file in the home directory is used if it exists; an explicit path must
// exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, defaultConfigName)
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) resolverProfile() string {
	if c.Strict {
		return interpreter.ProfileStrict
	}
	return interpreter.ProfileDefault
}
