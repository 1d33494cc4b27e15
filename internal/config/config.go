package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// TitleRule is one regex replacement. Replacement may be one of the
// sentinels [unidecode], [remove] or [space].
type TitleRule struct {
	Pattern     string `toml:"pattern"`
	Replacement string `toml:"replacement"`
}

// Title holds the title rewriting rules.
type Title struct {
	// CleanRules feed the *_title_clean tokens. An empty list keeps the
	// built-in rules.
	CleanRules []TitleRule `toml:"clean_rules"`
	// OverrideRules run over the whole output in title (non-filename) mode.
	OverrideRules []TitleRule `toml:"override_rules"`
}

// Render contains the flatten-mode output policies and render inputs that
// do not come from metadata files.
type Render struct {
	ColonReplace            string `toml:"colon_replace"`
	UnfilledTokens          string `toml:"unfilled_tokens"`
	FilenameMode            bool   `toml:"filename_mode"`
	ParseFilenameAttributes bool   `toml:"parse_filename_attributes"`
	DummyScreenshots        bool   `toml:"dummy_screenshots"`
	ReleasersName           string `toml:"releaser_name"`
	// AudioConventions points at a TOML table that replaces the built-in
	// audio codec naming conventions.
	AudioConventions string `toml:"audio_conventions"`
	Title            Title  `toml:"title"`
}

// DynamicRange configures the video_dynamic_range token.
type DynamicRange struct {
	Enabled       bool              `toml:"enabled"`
	Resolutions   []string          `toml:"resolutions"`
	Types         []string          `toml:"types"`
	CustomStrings map[string]string `toml:"custom_strings"`
}

// FFprobe configures the embedded metadata probe.
type FFprobe struct {
	Binary string `toml:"binary"`
}

// Logging configures log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	// Dir receives a JSON copy of every log line when set.
	Dir string `toml:"dir"`
}

// Config encapsulates all configuration values for nfoforge.
type Config struct {
	Render       Render       `toml:"render"`
	DynamicRange DynamicRange `toml:"dynamic_range"`
	FFprobe      FFprobe      `toml:"ffprobe"`
	Logging      Logging      `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of the user configuration file.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/nfoforge/config.toml")
}

// Load locates, parses, and validates configuration. It returns the resolved
// path and whether the file exists; a missing file yields the defaults.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("nfoforge.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// FFprobeBinary returns the ffprobe executable to run.
func (c *Config) FFprobeBinary() string {
	if c == nil || strings.TrimSpace(c.FFprobe.Binary) == "" {
		return defaultFFprobeBinary
	}
	return c.FFprobe.Binary
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the sample configuration to path, creating parent
// directories as needed.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
