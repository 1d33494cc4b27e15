package deps

import (
	"os"
	"path/filepath"
	"testing"

	"nfoforge/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	tests := []struct {
		name      string
		command   string
		available bool
		path      string
		detail    string
	}{
		{name: "present", command: present, available: true, path: present},
		{name: "missing", command: "clearly-not-present-binary", detail: `binary "clearly-not-present-binary" not found`},
		{name: "blank", command: "  ", detail: "command not configured"},
	}

	reqs := make([]Requirement, len(tests))
	for i, tt := range tests {
		reqs[i] = Requirement{Name: tt.name, Command: tt.command}
	}
	results := CheckBinaries(reqs)
	if len(results) != len(tests) {
		t.Fatalf("expected %d results, got %d", len(tests), len(results))
	}
	for i, tt := range tests {
		got := results[i]
		if got.Name != tt.name || got.Available != tt.available || got.Path != tt.path || got.Detail != tt.detail {
			t.Errorf("%s: got %#v", tt.name, got)
		}
	}
}

func TestRequirementsFollowConfig(t *testing.T) {
	cfg := config.Default()
	cfg.FFprobe.Binary = "/opt/ffmpeg/bin/ffprobe"

	reqs := Requirements(&cfg)
	if len(reqs) != 1 {
		t.Fatalf("expected one requirement, got %d", len(reqs))
	}
	if reqs[0].Command != "/opt/ffmpeg/bin/ffprobe" || !reqs[0].Optional {
		t.Fatalf("unexpected requirement %#v", reqs[0])
	}

	if got := Requirements(nil)[0].Command; got != "ffprobe" {
		t.Fatalf("expected default ffprobe command, got %q", got)
	}
}
