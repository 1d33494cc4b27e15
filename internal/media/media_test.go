package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCleanseReport(t *testing.T) {
	report := "General\r\nComplete name                            : /mnt/media/Movie.2024.mkv\r\nFormat                                   : Matroska\r\n"
	got := CleanseReport(report)
	if strings.Contains(got, "/mnt/media") {
		t.Fatalf("expected directory stripped, got %q", got)
	}
	if !strings.Contains(got, ": Movie.2024.mkv\n") {
		t.Fatalf("expected file name retained, got %q", got)
	}
	if strings.Contains(got, "\r") {
		t.Fatalf("expected normalized line endings, got %q", got)
	}
}

func TestCleanseReportWithoutCompleteName(t *testing.T) {
	if got := CleanseReport("Video\nFormat : AVC"); got != "Video\nFormat : AVC" {
		t.Fatalf("unexpected rewrite: %q", got)
	}
}

func TestShortReport(t *testing.T) {
	info := &Info{
		General: &General{CompleteName: `C:\rips\Movie.mkv`, FileSizeDisplay: "7.89 GiB"},
		Video:   []Video{{Format: "AVC", Width: 1920, Height: 1080, FrameRate: "23.976", BitDepth: 8}},
		Audio:   []Audio{{Format: "AC-3", ChannelsDisplay: "6 channels", OtherLanguage: []string{"English"}}},
		Menu:    []Menu{{Chapters: []Chapter{{Start: "00:00:00.000", Name: "en:Chapter 01"}}}},
	}
	got := ShortReport(info)
	for _, want := range []string{
		"General\n",
		padLabel("Complete name") + ": Movie.mkv\n",
		padLabel("Width") + ": 1 920 pixels\n",
		padLabel("Frame rate") + ": 23.976 FPS\n",
		"Audio #1\n",
		padLabel("Language") + ": English\n",
		padLabel("00:00:00.000") + ": en:Chapter 01",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ShortReport missing %q in:\n%s", want, got)
		}
	}
	if ShortReport(nil) != "" {
		t.Fatal("expected empty report for nil info")
	}
}

func TestGroupDigits(t *testing.T) {
	tests := map[int]string{7: "7", 720: "720", 1920: "1 920", 15360: "15 360", 1234567: "1 234 567"}
	for in, want := range tests {
		if got := groupDigits(in); got != want {
			t.Errorf("groupDigits(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "info.json")
	payload := `{"general":{"file_size":42},"video":[{"format":"HEVC","height":2160}],"audio":[{"format":"E-AC-3","channels":"6"}]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	info, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	video, ok := info.FirstVideo()
	if !ok || video.Format != "HEVC" || video.Height != 2160 {
		t.Fatalf("unexpected video track: %+v", video)
	}
	if info.GeneralTrack().FileSize != 42 {
		t.Fatalf("unexpected general track: %+v", info.General)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
