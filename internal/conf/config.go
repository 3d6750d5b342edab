package conf

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

func init() {
	sources := &ConfigSource{
		Path:      "/etc/denvar/config.toml",
		DropInDir: "/etc/denvar/config.toml.d/",
		EnvPrefix: "DENVAR_",
	}
	config, err := sources.Read()
	if err != nil {
		slog.Warn("falling back to default settings", "error", err)
		dto, parseErr := parseConfigDTO(defaultConfig)
		if parseErr != nil {
			panic(fmt.Sprintf("failed to parse embedded defaults: %v", parseErr))
		}
		config = Config{}
		config.Update(dto)
	}
	Configuration = config
}

// defaultConfig is the base layer applied before any file or variable.
//
//go:embed config.toml
var defaultConfig string

// Configuration is the global immutable state.
var Configuration Config

// Config holds the resolved tool settings.
type Config struct {
	LogLevel      slog.Level
	Source        string
	HerokuCommand string
}

// Update applies non-nil values from a configDTO. Unknown log levels are
// ignored.
func (c *Config) Update(dto configDTO) {
	if dto.LogLevel != nil {
		switch strings.ToUpper(*dto.LogLevel) {
		case "DEBUG":
			c.LogLevel = slog.LevelDebug
		case "INFO":
			c.LogLevel = slog.LevelInfo
		case "WARN":
			c.LogLevel = slog.LevelWarn
		case "ERROR":
			c.LogLevel = slog.LevelError
		}
	}
	if dto.Source != nil {
		c.Source = *dto.Source
	}
	if dto.HerokuCommand != nil {
		c.HerokuCommand = *dto.HerokuCommand
	}
}

// ConfigSource orchestrates loading settings from multiple sources.
// See the Read method.
type ConfigSource struct {
	Path      string
	DropInDir string
	// EnvPrefix enables the environment layer when non-empty.
	EnvPrefix string
}

// Read loads and returns the complete Config by merging all layers:
// 1. Embedded defaults
// 2. Main configuration file
// 3. Drop-in files
// 4. Environment variables
func (cs *ConfigSource) Read() (Config, error) {
	resolved := Config{}

	dto, err := parseConfigDTO(defaultConfig)
	if err != nil {
		return resolved, fmt.Errorf("failed to parse embedded defaults: %w", err)
	}
	resolved.Update(dto)

	data, err := os.ReadFile(cs.Path)
	if err != nil {
		// A missing main file is fine, an unreadable one is not.
		if !os.IsNotExist(err) {
			return resolved, fmt.Errorf("failed to load %s: %w", cs.Path, err)
		}
	} else {
		mainDTO, err := parseConfigDTO(string(data))
		if err != nil {
			return resolved, fmt.Errorf("failed to parse %s: %w", cs.Path, err)
		}
		resolved.Update(mainDTO)
	}

	dropInDTOs, err := cs.readDropIns()
	if err != nil {
		slog.Error("failed to load drop-in files", "error", err, "dir", cs.DropInDir)
		return resolved, err
	}
	for _, dropInDTO := range dropInDTOs {
		resolved.Update(dropInDTO)
	}

	if cs.EnvPrefix != "" {
		envDTO, err := parseEnvDTO(cs.EnvPrefix)
		if err != nil {
			return resolved, err
		}
		resolved.Update(envDTO)
	}

	return resolved, nil
}

type configDTO struct {
	LogLevel      *string `toml:"log-level"`
	Source        *string `toml:"source"`
	HerokuCommand *string `toml:"heroku-command"`
}

// parseConfigDTO parses a TOML string into a configDTO.
func parseConfigDTO(data string) (configDTO, error) {
	var dto configDTO

	if err := toml.Unmarshal([]byte(data), &dto); err != nil {
		return dto, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return dto, nil
}

// envSettings mirrors configDTO for environment variables. Empty or unset
// variables leave the lower layers untouched.
type envSettings struct {
	LogLevel      string `env:"LOG_LEVEL"`
	Source        string `env:"SOURCE"`
	HerokuCommand string `env:"HEROKU_COMMAND"`
}

// parseEnvDTO reads prefixed environment variables into a configDTO.
func parseEnvDTO(prefix string) (configDTO, error) {
	var settings envSettings
	if err := env.ParseWithOptions(&settings, env.Options{Prefix: prefix}); err != nil {
		return configDTO{}, fmt.Errorf("failed to parse environment settings: %w", err)
	}

	var dto configDTO
	if settings.LogLevel != "" {
		dto.LogLevel = &settings.LogLevel
	}
	if settings.Source != "" {
		dto.Source = &settings.Source
	}
	if settings.HerokuCommand != "" {
		dto.HerokuCommand = &settings.HerokuCommand
	}
	return dto, nil
}

// readDropIns decodes every *.toml file of DropInDir in lexicographic
// order. A missing directory yields no drop-ins. Unknown keys are logged and
// otherwise ignored.
func (cs *ConfigSource) readDropIns() ([]configDTO, error) {
	if cs.DropInDir == "" {
		return nil, nil
	}

	// Glob sorts its matches and returns none for a missing directory.
	paths, err := filepath.Glob(filepath.Join(cs.DropInDir, "*.toml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list drop-in files in %s: %w", cs.DropInDir, err)
	}

	dtos := make([]configDTO, 0, len(paths))
	for _, path := range paths {
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			continue
		}

		var dto configDTO
		meta, err := toml.DecodeFile(path, &dto)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for _, key := range meta.Undecoded() {
			slog.Warn("unknown setting in drop-in file", "file", path, "key", key.String())
		}

		dtos = append(dtos, dto)
	}

	return dtos, nil
}
