package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"nfoforge/internal/config"
	"nfoforge/internal/deps"
	"nfoforge/internal/derive"
	"nfoforge/internal/guess"
	"nfoforge/internal/logging"
	"nfoforge/internal/media"
	"nfoforge/internal/media/ffprobe"
	"nfoforge/internal/metadata"
	"nfoforge/internal/render"
	"nfoforge/internal/tokens"
)

var mediaExtensions = map[string]bool{
	".mkv":  true,
	".mp4":  true,
	".m4v":  true,
	".m2ts": true,
	".ts":   true,
	".avi":  true,
	".mov":  true,
}

// renderInputs are the render-context flags shared by the render command.
type renderInputs struct {
	mediaInfoPath    string
	probe            bool
	sourcePath       string
	sourceInfoPath   string
	guessPath        string
	sourceGuessPath  string
	searchPath       string
	season           int
	seasonSet        bool
	episode          int
	episodeSet       bool
	ordering         string
	user             map[string]string
	overrides        map[string]string
	releaser         string
	releaseNotesPath string
	repackN          string
	repackReason     string
	properN          string
	properReason     string
}

// buildContext gathers everything a render reads. target is a media file
// (which need not exist when metadata comes from JSON files) or a series
// pack directory.
func (in renderInputs) buildContext(ctx context.Context, cfg *config.Config, target string, logger *slog.Logger) (*derive.Context, error) {
	for name := range in.user {
		if !tokens.IsUserName(name) {
			return nil, fmt.Errorf("user token %q must start with %s or %s", name, tokens.UserPrefix, tokens.PromptPrefix)
		}
	}

	if in.probe {
		for _, status := range deps.CheckBinaries(deps.Requirements(cfg)) {
			if !status.Available {
				return nil, fmt.Errorf("--probe needs %s: %s", status.Name, status.Detail)
			}
		}
	}

	conventions, err := loadAudioConventions(cfg)
	if err != nil {
		return nil, err
	}

	rc := &derive.Context{
		User:                    in.user,
		Overrides:               in.overrides,
		DynamicRange:            render.DynamicRangeFromConfig(cfg.DynamicRange),
		TitleCleanRules:         render.TitleRules(cfg.Render.Title.CleanRules),
		AudioCodecs:             conventions,
		DummyScreenshots:        cfg.Render.DummyScreenshots,
		ReleasersName:           cfg.Render.ReleasersName,
		ParseFilenameAttributes: cfg.Render.ParseFilenameAttributes,
		EpisodeOrdering:         in.ordering,
		RepackN:                 in.repackN,
		RepackReason:            in.repackReason,
		ProperN:                 in.properN,
		ProperReason:            in.properReason,
	}
	if strings.TrimSpace(in.releaser) != "" {
		rc.ReleasersName = strings.TrimSpace(in.releaser)
	}
	if in.releaseNotesPath != "" {
		notes, err := os.ReadFile(filepath.Clean(in.releaseNotesPath))
		if err != nil {
			return nil, fmt.Errorf("read release notes: %w", err)
		}
		rc.ReleaseNotes = strings.TrimSpace(string(notes))
	}

	files, dir, err := resolveTarget(target)
	if err != nil {
		return nil, err
	}
	rc.InputDir = dir
	rc.PrimaryPath = files[0]

	if rc.Primary, err = loadInfo(ctx, cfg, in.mediaInfoPath, in.probe, rc.PrimaryPath); err != nil {
		return nil, err
	}
	if rc.Guess, err = loadGuess(in.guessPath, rc.PrimaryPath); err != nil {
		return nil, err
	}
	if in.searchPath != "" {
		if rc.Search, err = metadata.Load(in.searchPath); err != nil {
			return nil, err
		}
	}

	if in.sourcePath != "" {
		rc.SourcePath = in.sourcePath
		if rc.Source, err = loadInfo(ctx, cfg, in.sourceInfoPath, in.probe, in.sourcePath); err != nil {
			return nil, err
		}
		if rc.SourceGuess, err = loadGuess(in.sourceGuessPath, in.sourcePath); err != nil {
			return nil, err
		}
	}

	rc.Season, rc.Episode = rc.Guess.Season, rc.Guess.Episode
	if in.seasonSet {
		rc.Season = &in.season
	}
	if in.episodeSet {
		rc.Episode = &in.episode
	}

	if dir != "" {
		if rc.EpisodeFiles, err = episodeFiles(ctx, cfg, files, in.probe, rc.Search); err != nil {
			return nil, err
		}
	}

	logger.Debug("render inputs gathered",
		logging.String("primary", rc.PrimaryPath),
		logging.Bool("embedded_metadata", rc.Primary != nil),
		logging.Bool("search_metadata", rc.Search != nil),
		logging.Int("episode_files", len(rc.EpisodeFiles)),
	)
	return rc, nil
}

// resolveTarget returns the media files to render. A directory yields its
// media files in name order; a missing file is accepted as a bare name.
func resolveTarget(target string) ([]string, string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, "", errors.New("an input file or directory is required")
	}
	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{target}, "", nil
		}
		return nil, "", fmt.Errorf("inspect input %q: %w", target, err)
	}
	if !info.IsDir() {
		return []string{target}, "", nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, "", fmt.Errorf("read input directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !mediaExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		files = append(files, filepath.Join(target, entry.Name()))
	}
	if len(files) == 0 {
		return nil, "", fmt.Errorf("no media files in %s", target)
	}
	return files, target, nil
}

func loadInfo(ctx context.Context, cfg *config.Config, jsonPath string, probe bool, path string) (*media.Info, error) {
	switch {
	case jsonPath != "":
		return media.Load(jsonPath)
	case probe:
		result, err := ffprobe.Inspect(ctx, cfg.FFprobeBinary(), path)
		if err != nil {
			return nil, err
		}
		return ffprobe.ToInfo(result), nil
	}
	return nil, nil
}

func loadGuess(jsonPath, path string) (*guess.Result, error) {
	if jsonPath != "" {
		return guess.Load(jsonPath)
	}
	return guess.Parse(path), nil
}

func episodeFiles(ctx context.Context, cfg *config.Config, files []string, probe bool, search *metadata.Search) ([]derive.EpisodeFile, error) {
	out := make([]derive.EpisodeFile, 0, len(files))
	for _, path := range files {
		g := guess.Parse(path)
		ef := derive.EpisodeFile{Path: path, Season: g.Season, Episode: g.Episode}
		if probe {
			info, err := loadInfo(ctx, cfg, "", true, path)
			if err != nil {
				return nil, err
			}
			ef.Info = info
		}
		if ef.Season != nil && ef.Episode != nil {
			if rec, ok := search.FindEpisode(*ef.Season, *ef.Episode); ok {
				ef.Record = &rec
				ef.Name = rec.Name
			}
		}
		out = append(out, ef)
	}
	return out, nil
}

func loadAudioConventions(cfg *config.Config) (*derive.AudioConventions, error) {
	conventions, err := derive.LoadAudioConventions(cfg.Render.AudioConventions)
	if err != nil {
		return nil, fmt.Errorf("render.audio_conventions: %w", err)
	}
	return conventions, nil
}
