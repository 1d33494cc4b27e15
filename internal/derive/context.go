package derive

import (
	"path/filepath"
	"strings"

	"nfoforge/internal/guess"
	"nfoforge/internal/media"
	"nfoforge/internal/metadata"
	"nfoforge/internal/tokens"
)

// Program identifies the tool in the program_info and shared_with tokens.
type Program struct {
	Name    string
	Version string
	URL     string
}

// DefaultProgram is used when a Context does not name one.
var DefaultProgram = Program{
	Name:    "NfoForge",
	Version: "0.1.0",
	URL:     "https://github.com/jlw4049/nfoforge",
}

// DynamicRange configures the video_dynamic_range token.
type DynamicRange struct {
	// Resolutions enables the token per bucket: "720p", "1080p", "2160p".
	Resolutions map[string]bool
	// Types enables individual labels: SDR, PQ, HLG, HDR10, HDR10+, DV,
	// "DV HDR10" and "DV HDR10+".
	Types map[string]bool
	// CustomStrings replaces a type's default label.
	CustomStrings map[string]string
}

// TitleRule is one regex replacement applied by the clean-title helpers.
// Replacement may use the sentinels [unidecode] (fold the whole string to
// ASCII, Pattern is ignored), [remove] and [space].
type TitleRule struct {
	Pattern     string
	Replacement string
}

// DefaultTitleCleanRules turn a title into plain alphanumerics and spaces.
var DefaultTitleCleanRules = []TitleRule{
	{"", "[unidecode]"},
	{"&", "and"},
	{"'", "[remove]"},
	{"[^a-zA-Z0-9]", "[space]"},
	{`\s{2,}`, "[space]"},
}

// EpisodeFile is one file of a series pack.
type EpisodeFile struct {
	Path    string
	Info    *media.Info
	Season  *int
	Episode *int
	// Name is the episode name to print; Record supplies the air date.
	Name   string
	Record *metadata.Episode
}

// Screenshots carries the uploaded screenshot data for the NFO tokens.
type Screenshots struct {
	Formatted  string
	Comparison string
	EvenObj    []tokens.Image
	OddObj     []tokens.Image
	EvenStr    []string
	OddStr     []string
}

// Context is everything a render may read. The caller owns it and must not
// mutate it while a render is running.
type Context struct {
	// PrimaryPath is the file being named or described.
	PrimaryPath string
	Primary     *media.Info
	// SourcePath and Source describe the optional comparison/source file.
	SourcePath string
	Source     *media.Info
	// InputDir is the series pack directory, when the input was a directory.
	InputDir string

	Guess       *guess.Result
	SourceGuess *guess.Result
	Search      *metadata.Search

	Season          *int
	Episode         *int
	EpisodeOrdering string
	EpisodeFiles    []EpisodeFile

	User      map[string]string
	Overrides map[string]string

	DynamicRange    *DynamicRange
	TitleCleanRules []TitleRule
	AudioCodecs     *AudioConventions

	Screenshots      Screenshots
	DummyScreenshots bool

	ReleasersName string
	ReleaseNotes  string
	RepackN       string
	RepackReason  string
	ProperN       string
	ProperReason  string

	Program Program

	ParseFilenameAttributes bool
}

func (c *Context) primaryName() string {
	if c.PrimaryPath == "" {
		return ""
	}
	return filepath.Base(c.PrimaryPath)
}

func (c *Context) primaryStem() string {
	return stem(c.primaryName())
}

func (c *Context) guess() *guess.Result {
	if c.Guess == nil {
		return &guess.Result{}
	}
	return c.Guess
}

func (c *Context) search() *metadata.Search {
	if c.Search == nil {
		return &metadata.Search{}
	}
	return c.Search
}

func (c *Context) program() Program {
	p := c.Program
	if p.Name == "" {
		p.Name = DefaultProgram.Name
	}
	if p.Version == "" {
		p.Version = DefaultProgram.Version
	}
	if p.URL == "" {
		p.URL = DefaultProgram.URL
	}
	return p
}

func (c *Context) override(name string) (string, bool) {
	v, ok := c.Overrides[name]
	return v, ok
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
