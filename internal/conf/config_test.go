package conf

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Helper functions for creating pointer values in DTO tests
func stringPtr(s string) *string { return &s }

var defaults = Config{
	LogLevel:      slog.LevelInfo,
	HerokuCommand: "heroku",
}

func TestConfig_Update(t *testing.T) {
	tests := []struct {
		name     string
		base     Config
		overlay  configDTO
		expected Config
	}{
		{
			name: "overlay replaces values",
			base: Config{
				HerokuCommand: "heroku",
				LogLevel:      slog.LevelInfo,
			},
			overlay: configDTO{
				HerokuCommand: stringPtr("/opt/heroku/bin/heroku"),
				LogLevel:      stringPtr("DEBUG"),
			},
			expected: Config{
				HerokuCommand: "/opt/heroku/bin/heroku",
				LogLevel:      slog.LevelDebug,
			},
		},
		{
			name: "overlay partial update",
			base: Config{
				Source:        "env.json",
				HerokuCommand: "heroku",
				LogLevel:      slog.LevelInfo,
			},
			overlay: configDTO{
				LogLevel: stringPtr("warn"),
			},
			expected: Config{
				Source:        "env.json",
				HerokuCommand: "heroku",
				LogLevel:      slog.LevelWarn,
			},
		},
		{
			name: "unknown log level is ignored",
			base: Config{
				LogLevel: slog.LevelError,
			},
			overlay: configDTO{
				LogLevel: stringPtr("LOUD"),
			},
			expected: Config{
				LogLevel: slog.LevelError,
			},
		},
		{
			name: "overlay can set empty strings",
			base: Config{
				Source: "/srv/app/env.json",
			},
			overlay: configDTO{
				Source: stringPtr(""),
			},
			expected: Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.base
			result.Update(tt.overlay)
			if diff := cmp.Diff(tt.expected, result); diff != "" {
				t.Errorf("Update() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfigSource_ReadFile(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name        string
		fileContent string
		setupFile   bool
		expectError bool
		expected    Config
	}{
		{
			name: "valid config file",
			fileContent: `source = "/srv/app/env.yaml"
log-level = "DEBUG"
`,
			setupFile: true,
			expected: Config{
				Source:        "/srv/app/env.yaml",
				LogLevel:      slog.LevelDebug,
				HerokuCommand: "heroku",
			},
		},
		{
			name:      "missing file uses defaults",
			setupFile: false,
			expected:  defaults,
		},
		{
			name:        "malformed file fails",
			fileContent: "log-level = ",
			setupFile:   true,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(tmpDir, "test-"+tt.name+".toml")

			if tt.setupFile {
				if err := os.WriteFile(testFile, []byte(tt.fileContent), 0644); err != nil {
					t.Fatalf("failed to write test file: %v", err)
				}
			}

			source := &ConfigSource{Path: testFile, DropInDir: filepath.Join(tmpDir, "nonexistent")}
			result, err := source.Read()

			if tt.expectError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.expectError {
				if diff := cmp.Diff(tt.expected, result); diff != "" {
					t.Errorf("Read() mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestParseConfigDTO(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    configDTO
	}{
		{
			name: "valid TOML string",
			input: `
source = "env.json"
heroku-command = "heroku"
`,
			expected: configDTO{
				Source:        stringPtr("env.json"),
				HerokuCommand: stringPtr("heroku"),
			},
		},
		{
			name:     "empty string",
			input:    "",
			expected: configDTO{},
		},
		{
			name:        "invalid TOML",
			input:       "not valid toml ===",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseConfigDTO(tt.input)

			if tt.expectError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.expectError {
				if diff := cmp.Diff(tt.expected, result); diff != "" {
					t.Errorf("parseConfigDTO() mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestEmbeddedDefault(t *testing.T) {
	dto, err := parseConfigDTO(defaultConfig)
	if err != nil {
		t.Fatalf("embedded default config is invalid: %v", err)
	}

	config := Config{}
	config.Update(dto)

	if diff := cmp.Diff(defaults, config); diff != "" {
		t.Errorf("embedded defaults mismatch (-want +got):\n%s", diff)
	}
}
