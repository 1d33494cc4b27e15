package guess

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrLanguageParsing reports a language value that is neither a string, a
// language object, nor a list of either.
var ErrLanguageParsing = errors.New("unrecognized guess language value")

// Result holds the attributes guessed from a filename.
type Result struct {
	Title         string     `json:"title,omitempty"`
	Year          int        `json:"year,omitempty"`
	Type          string     `json:"type,omitempty"`
	Source        string     `json:"source,omitempty"`
	ScreenSize    string     `json:"screen_size,omitempty"`
	VideoCodec    string     `json:"video_codec,omitempty"`
	ColorDepth    string     `json:"color_depth,omitempty"`
	AudioCodec    StringList `json:"audio_codec,omitempty"`
	AudioChannels string     `json:"audio_channels,omitempty"`
	Edition       StringList `json:"edition,omitempty"`
	Other         StringList `json:"other,omitempty"`
	ReleaseGroup  string     `json:"release_group,omitempty"`
	Container     string     `json:"container,omitempty"`
	Season        *int       `json:"season,omitempty"`
	Episode       *int       `json:"episode,omitempty"`
	// Language is kept raw: guessit emits a code string, a language object
	// or a list of them depending on the filename.
	Language any `json:"language,omitempty"`
}

// StringList decodes either a single JSON string or a list of strings.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*l = nil
		} else {
			*l = StringList{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*l = many
	return nil
}

// Has reports whether value is in the list.
func (l StringList) Has(value string) bool {
	for _, item := range l {
		if item == value {
			return true
		}
	}
	return false
}

// Contains reports whether any item contains substr.
func (l StringList) Contains(substr string) bool {
	for _, item := range l {
		if strings.Contains(item, substr) {
			return true
		}
	}
	return false
}

// First returns the first item or "".
func (l StringList) First() string {
	if len(l) == 0 {
		return ""
	}
	return l[0]
}

// LanguageCode returns the guessed language as an upper-cased code. Plain
// strings are upper-cased; language objects yield alpha2, then alpha3, then
// name; lists use their first element. An empty result with a nil error
// means no language was guessed.
func (r Result) LanguageCode() (string, error) {
	return languageCode(r.Language)
}

func languageCode(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return strings.ToUpper(strings.TrimSpace(v)), nil
	case []string:
		if len(v) == 0 {
			return "", nil
		}
		return languageCode(v[0])
	case []any:
		if len(v) == 0 {
			return "", nil
		}
		return languageCode(v[0])
	case map[string]any:
		for _, key := range []string{"alpha2", "alpha3"} {
			if code, ok := v[key].(string); ok && code != "" {
				return strings.ToUpper(code), nil
			}
		}
		if name, ok := v["name"].(string); ok && name != "" {
			return name, nil
		}
		return "", fmt.Errorf("%w: language object without alpha2, alpha3 or name", ErrLanguageParsing)
	}
	return "", fmt.Errorf("%w: %T", ErrLanguageParsing, value)
}

// Load reads a guess document from a JSON file.
func Load(path string) (*Result, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read guess %s: %w", path, err)
	}
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse guess %s: %w", path, err)
	}
	return &result, nil
}
