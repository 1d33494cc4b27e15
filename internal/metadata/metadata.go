// Package metadata holds the title-database search result a render draws
// ids, titles, dates and episode records from.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MediaType distinguishes movies from series.
type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeSeries MediaType = "series"
)

// Search is the merged result of the external title lookups.
type Search struct {
	MediaType MediaType `json:"media_type,omitempty"`
	IMDbID    string    `json:"imdb_id,omitempty"`
	TMDbID    string    `json:"tmdb_id,omitempty"`
	TVDbID    string    `json:"tvdb_id,omitempty"`
	MALID     string    `json:"mal_id,omitempty"`
	Title     string    `json:"title,omitempty"`
	Year      int       `json:"year,omitempty"`
	// OriginalLanguage is the language code the database reports, e.g. "en".
	OriginalLanguage string `json:"original_language,omitempty"`
	// ReleaseDate is the movie release date (movies only).
	ReleaseDate string `json:"release_date,omitempty"`
	// AKATitle is the localized IMDb title, when one was found.
	AKATitle string    `json:"aka_title,omitempty"`
	Genres   []string  `json:"genres,omitempty"`
	Seasons  []Season  `json:"seasons,omitempty"`
	Episodes []Episode `json:"episodes,omitempty"`
}

// Season is one season record; only the count is consumed.
type Season struct {
	Number int    `json:"number"`
	Name   string `json:"name,omitempty"`
}

// Episode is one episode record. Season and episode numbers are kept as raw
// JSON values because database payloads mix numbers and strings.
type Episode struct {
	SeasonNumber json.RawMessage `json:"seasonNumber,omitempty"`
	Number       json.RawMessage `json:"number,omitempty"`
	Name         string          `json:"name,omitempty"`
	Aired        string          `json:"aired,omitempty"`
	Overview     string          `json:"overview,omitempty"`
}

// Numbers returns the episode's season and episode numbers. ok is false when
// either is missing or not an integer.
func (e Episode) Numbers() (season, episode int, ok bool) {
	s, okS := rawInt(e.SeasonNumber)
	n, okN := rawInt(e.Number)
	if !okS || !okN {
		return 0, 0, false
	}
	return s, n, true
}

func rawInt(raw json.RawMessage) (int, bool) {
	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if text == "" || text == "null" {
		return 0, false
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, false
		}
		n = int(f)
	}
	return n, true
}

// IsSeries reports whether the search result describes a series.
func (s *Search) IsSeries() bool {
	return s != nil && s.MediaType == MediaTypeSeries
}

// IsMovie reports whether the search result describes a movie.
func (s *Search) IsMovie() bool {
	return s != nil && s.MediaType == MediaTypeMovie
}

// FindEpisode returns the first episode record matching season and episode.
// Records whose numbers do not parse as integers are skipped.
func (s *Search) FindEpisode(season, episode int) (Episode, bool) {
	if s == nil {
		return Episode{}, false
	}
	for _, ep := range s.Episodes {
		sn, en, ok := ep.Numbers()
		if !ok {
			continue
		}
		if sn == season && en == episode {
			return ep, true
		}
	}
	return Episode{}, false
}

// Load reads a search result from a JSON file.
func Load(path string) (*Search, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read metadata %s: %w", path, err)
	}
	var search Search
	if err := json.Unmarshal(data, &search); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", path, err)
	}
	return &search, nil
}
