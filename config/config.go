// Package config locates the strategy data files.
//
// Values come from, highest precedence first: WORD32_* environment variables,
// an optional YAML file, and the defaults below.
//
//	WORD32_DATA_DIR          -> data_dir
//	WORD32_MASTER_FILE       -> master_file
//	WORD32_CATALOG_WORKERS   -> catalog_workers
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "WORD32_"

const maxConfigFileSize = 1024 * 1024

type Config struct {
	DataDir           string `koanf:"data_dir"`
	MasterFile        string `koanf:"master_file"`
	RankingFile       string `koanf:"ranking_file"`
	StrategiesDir     string `koanf:"strategies_dir"`
	ValidGuessesFile  string `koanf:"valid_guesses_file"`
	TargetsFile       string `koanf:"targets_file"`
	DefaultFirstGuess string `koanf:"default_first_guess"`
	CatalogWorkers    int    `koanf:"catalog_workers"`
}

func Default() Config {
	return Config{
		DataDir:           "data",
		MasterFile:        "phase3_lookup.json",
		RankingFile:       "phase2_naive_32.json",
		StrategiesDir:     "strategies",
		ValidGuessesFile:  "valid_guesses.txt",
		TargetsFile:       "targets.txt",
		DefaultFirstGuess: "ATONE",
		CatalogWorkers:    4,
	}
}

// Load reads the YAML file at path when path is not empty, then applies
// environment overrides. A path that does not exist is an error.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return Config{}, fmt.Errorf("config file: %w", err)
		}
		if info.Size() > maxConfigFileSize {
			return Config{}, fmt.Errorf("config file %s is larger than %d bytes", path, maxConfigFileSize)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// WORD32_DATA_DIR -> data_dir
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	for name, value := range map[string]string{
		"data_dir":            c.DataDir,
		"master_file":         c.MasterFile,
		"ranking_file":        c.RankingFile,
		"strategies_dir":      c.StrategiesDir,
		"default_first_guess": c.DefaultFirstGuess,
	} {
		if value == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", name))
		}
	}
	if len([]rune(c.DefaultFirstGuess)) != 5 && c.DefaultFirstGuess != "" {
		errs = append(errs, fmt.Errorf("default_first_guess %q is not a 5 letter word", c.DefaultFirstGuess))
	}
	if c.CatalogWorkers < 1 {
		errs = append(errs, fmt.Errorf("catalog_workers must be at least 1, got %d", c.CatalogWorkers))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c Config) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func (c Config) MasterPath() string       { return c.path(c.MasterFile) }
func (c Config) RankingPath() string      { return c.path(c.RankingFile) }
func (c Config) StrategiesPath() string   { return c.path(c.StrategiesDir) }
func (c Config) ValidGuessesPath() string { return c.path(c.ValidGuessesFile) }
func (c Config) TargetsPath() string      { return c.path(c.TargetsFile) }
