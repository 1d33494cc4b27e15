package guess

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseMovieRelease(t *testing.T) {
	r := Parse("/media/Movie.Name.2024.BluRay.1080p.AVC-Group.mkv")
	if r.Year != 2024 {
		t.Errorf("Year = %d, want 2024", r.Year)
	}
	if r.ScreenSize != "1080p" {
		t.Errorf("ScreenSize = %q, want 1080p", r.ScreenSize)
	}
	if r.Source != "Blu-ray" {
		t.Errorf("Source = %q, want Blu-ray", r.Source)
	}
	if r.VideoCodec != "H.264" {
		t.Errorf("VideoCodec = %q, want H.264", r.VideoCodec)
	}
	if r.ReleaseGroup != "Group" {
		t.Errorf("ReleaseGroup = %q, want Group", r.ReleaseGroup)
	}
	if r.Season != nil || r.Type != "movie" {
		t.Errorf("expected movie without season, got type %q season %v", r.Type, r.Season)
	}
}

func TestParseFlagsFromName(t *testing.T) {
	r := Parse("Movie.2019.IMAX.Open.Matte.Hybrid.2160p.UHD.BluRay.REMUX.HEVC-GRP.mkv")
	for _, flag := range []string{"Remux", "Hybrid", "Open Matte"} {
		if !r.Other.Has(flag) {
			t.Errorf("expected other flag %q in %v", flag, r.Other)
		}
	}
	if !r.Edition.Has("IMAX") {
		t.Errorf("expected IMAX edition in %v", r.Edition)
	}
}

func TestSourceMapping(t *testing.T) {
	tests := []struct {
		quality, size, want string
	}{
		{"bluray", "1080p", "Blu-ray"},
		{"bluray remux", "2160p", "Ultra HD Blu-ray"},
		{"web-dl", "1080p", "Web"},
		{"webrip", "720p", "Web"},
		{"dvdrip", "", "DVD"},
		{"hdtv", "720p", "HDTV"},
		{"", "1080p", ""},
	}
	for _, tt := range tests {
		if got := source(tt.quality, tt.size); got != tt.want {
			t.Errorf("source(%q, %q) = %q, want %q", tt.quality, tt.size, got, tt.want)
		}
	}
}

func TestCodecAndDepthMapping(t *testing.T) {
	if got := videoCodec("hevc"); got != "H.265" {
		t.Errorf("videoCodec(hevc) = %q", got)
	}
	if got := videoCodec("vc-1"); got != "vc-1" {
		t.Errorf("videoCodec passthrough = %q", got)
	}
	if got := colorDepth("10bit"); got != "10-bit" {
		t.Errorf("colorDepth(10bit) = %q", got)
	}
	if got := colorDepth("deep"); got != "" {
		t.Errorf("colorDepth(deep) = %q", got)
	}
	if got := screenSize("4k"); got != "2160p" {
		t.Errorf("screenSize(4k) = %q", got)
	}
}

func TestLanguageCode(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "fr", "FR"},
		{"list of strings", []any{"en", "fr"}, "EN"},
		{"object alpha2", map[string]any{"alpha2": "de", "alpha3": "deu"}, "DE"},
		{"object alpha3 only", map[string]any{"alpha3": "mul"}, "MUL"},
		{"object name only", map[string]any{"name": "Klingon"}, "Klingon"},
		{"list of objects", []any{map[string]any{"alpha3": "jpn"}}, "JPN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Result{Language: tt.value}.LanguageCode()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("LanguageCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLanguageCodeRejectsUnknownShapes(t *testing.T) {
	for _, value := range []any{42.0, true, map[string]any{"code": 1}, []any{7.0}} {
		if _, err := (Result{Language: value}).LanguageCode(); !errors.Is(err, ErrLanguageParsing) {
			t.Errorf("LanguageCode(%v) error = %v, want ErrLanguageParsing", value, err)
		}
	}
}

func TestStringListDecodesBothShapes(t *testing.T) {
	var doc struct {
		Edition StringList `json:"edition"`
		Other   StringList `json:"other"`
	}
	if err := json.Unmarshal([]byte(`{"edition":"Extended","other":["Remux","HDR10"]}`), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(StringList{"Extended"}, doc.Edition); diff != "" {
		t.Errorf("edition mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(StringList{"Remux", "HDR10"}, doc.Other); diff != "" {
		t.Errorf("other mismatch (-want +got):\n%s", diff)
	}
	if !doc.Other.Contains("HDR") || doc.Other.First() != "Remux" {
		t.Errorf("unexpected helpers result for %v", doc.Other)
	}
	if err := json.Unmarshal([]byte(`{"edition":3}`), &doc); err == nil {
		t.Fatal("expected error for numeric edition")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guess.json")
	payload := `{"title":"Movie Name","year":2024,"source":"Blu-ray","season":1,"episode":2,"language":"en"}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if r.Title != "Movie Name" || r.Year != 2024 || r.Season == nil || *r.Season != 1 || *r.Episode != 2 {
		t.Fatalf("unexpected result: %+v", r)
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
