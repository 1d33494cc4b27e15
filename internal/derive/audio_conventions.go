package derive

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"nfoforge/internal/media"
)

//go:embed audio_conventions.toml
var defaultAudioConventions []byte

// AudioConvention names one embedded audio format. Variants are keyed by the
// detailed format or the commercial name of the track.
type AudioConvention struct {
	Format   string            `toml:"format"`
	Name     string            `toml:"name"`
	Variants map[string]string `toml:"variants"`
}

// AudioConventions maps embedded audio formats to release names.
type AudioConventions struct {
	byFormat map[string]AudioConvention
}

type conventionFile struct {
	Conventions []AudioConvention `toml:"convention"`
}

// ParseAudioConventions decodes a convention table.
func ParseAudioConventions(data []byte) (*AudioConventions, error) {
	var file conventionFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode audio conventions: %w", err)
	}
	out := &AudioConventions{byFormat: make(map[string]AudioConvention, len(file.Conventions))}
	for i, c := range file.Conventions {
		c.Format = strings.TrimSpace(c.Format)
		if c.Format == "" {
			return nil, fmt.Errorf("audio convention %d: format is required", i)
		}
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("audio convention %q: name is required", c.Format)
		}
		if _, dup := out.byFormat[c.Format]; dup {
			return nil, fmt.Errorf("audio convention %q: duplicate format", c.Format)
		}
		out.byFormat[c.Format] = c
	}
	return out, nil
}

// LoadAudioConventions reads a convention table from path. An empty path
// returns the built-in table.
func LoadAudioConventions(path string) (*AudioConventions, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultAudioConventions(), nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read audio conventions %s: %w", path, err)
	}
	return ParseAudioConventions(data)
}

var builtinConventions = func() *AudioConventions {
	c, err := ParseAudioConventions(defaultAudioConventions)
	if err != nil {
		panic("derive: embedded audio conventions: " + err.Error())
	}
	return c
}()

// DefaultAudioConventions returns the built-in table.
func DefaultAudioConventions() *AudioConventions {
	return builtinConventions
}

// Name returns the release name for track. Unknown formats pass through.
func (c *AudioConventions) Name(track media.Audio) string {
	if c == nil {
		c = builtinConventions
	}
	conv, ok := c.byFormat[track.Format]
	if !ok {
		return track.Format
	}
	for _, key := range []string{track.FormatDisplay, track.CommercialName} {
		if key == "" {
			continue
		}
		if name, ok := conv.Variants[key]; ok {
			return name
		}
	}
	return conv.Name
}
