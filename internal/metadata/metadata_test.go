package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestFindEpisodeCoercesNumbers(t *testing.T) {
	var search Search
	payload := `{
	  "media_type": "series",
	  "episodes": [
	    {"seasonNumber": "x", "number": 1, "name": "Broken"},
	    {"seasonNumber": 1, "number": null, "name": "Missing"},
	    {"seasonNumber": "1", "number": "7", "name": "You Win or You Die", "aired": "2011-05-29"},
	    {"seasonNumber": 2, "number": 1, "name": "The North Remembers"}
	  ]
	}`
	if err := json.Unmarshal([]byte(payload), &search); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !search.IsSeries() || search.IsMovie() {
		t.Fatalf("expected series media type, got %q", search.MediaType)
	}

	ep, ok := search.FindEpisode(1, 7)
	if !ok {
		t.Fatal("expected to find S01E07")
	}
	if ep.Name != "You Win or You Die" || ep.Aired != "2011-05-29" {
		t.Fatalf("unexpected episode: %+v", ep)
	}
	if _, ok := search.FindEpisode(3, 1); ok {
		t.Fatal("did not expect a match for S03E01")
	}
	var nilSearch *Search
	if _, ok := nilSearch.FindEpisode(1, 1); ok {
		t.Fatal("nil search must not match")
	}
}

func TestEpisodeNumbers(t *testing.T) {
	tests := []struct {
		season, number string
		wantOK         bool
		wantS, wantN   int
	}{
		{"1", "2", true, 1, 2},
		{`"03"`, `"04"`, true, 3, 4},
		{"2.0", "5", true, 2, 5},
		{"2.5", "5", false, 0, 0},
		{"null", "1", false, 0, 0},
		{"", "1", false, 0, 0},
	}
	for _, tt := range tests {
		ep := Episode{SeasonNumber: json.RawMessage(tt.season), Number: json.RawMessage(tt.number)}
		s, n, ok := ep.Numbers()
		if ok != tt.wantOK || s != tt.wantS || n != tt.wantN {
			t.Errorf("Numbers(%s, %s) = (%d, %d, %v), want (%d, %d, %v)", tt.season, tt.number, s, n, ok, tt.wantS, tt.wantN, tt.wantOK)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "search.json")
	payload := `{"media_type":"movie","title":"Movie Name","year":2024,"imdb_id":"tt0000001","genres":["Drama"]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	search, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !search.IsMovie() || search.Title != "Movie Name" || search.Year != 2024 || len(search.Genres) != 1 {
		t.Fatalf("unexpected search: %+v", search)
	}
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
