package derive

import (
	"path/filepath"
	"strconv"
	"strings"

	"nfoforge/internal/language"
	"nfoforge/internal/media"
	"nfoforge/internal/metadata"
	"nfoforge/internal/resolution"
	"nfoforge/internal/textutil"
)

func validNumber(n *int) (int, bool) {
	if n == nil || *n < 0 {
		return 0, false
	}
	return *n, true
}

func (s *State) seasonNumber() string {
	if n, ok := validNumber(s.ctx.Season); ok {
		return strconv.Itoa(n)
	}
	return ""
}

func (s *State) episodeNumber() string {
	if n, ok := validNumber(s.ctx.Episode); ok {
		return strconv.Itoa(n)
	}
	return ""
}

// currentEpisode looks up the search record for the render's season and
// episode.
func (s *State) currentEpisode() (metadata.Episode, bool) {
	season, okS := validNumber(s.ctx.Season)
	episode, okE := validNumber(s.ctx.Episode)
	if !okS || !okE || len(s.ctx.search().Episodes) == 0 {
		return metadata.Episode{}, false
	}
	return s.episode(season, episode)
}

func (s *State) airDate() string {
	if !s.ctx.Search.IsSeries() {
		return ""
	}
	return s.episodeAirDate()
}

func (s *State) episodeAirDate() string {
	ep, _ := s.currentEpisode()
	return ep.Aired
}

func (s *State) episodeTitleExact() string {
	ep, _ := s.currentEpisode()
	return ep.Name
}

func (s *State) episodeTitle() string {
	return textutil.StandardTitle(s.episodeTitleExact())
}

func (s *State) episodeTitleClean() string {
	return CleanTitle(s.episodeTitleExact(), s.titleRules())
}

func (s *State) totalSeasons() string {
	if n := len(s.ctx.search().Seasons); n > 0 {
		return strconv.Itoa(n)
	}
	return ""
}

func (s *State) totalEpisodes() string {
	if n := len(s.ctx.search().Episodes); n > 0 {
		return strconv.Itoa(n)
	}
	return ""
}

// synopsis summarizes one file: a video line followed by one line per audio
// track, fields joined with " / ".
func synopsis(info *media.Info) string {
	track, ok := info.FirstVideo()
	if !ok {
		return ""
	}
	video := []string{track.Format}
	if kbps := averageVideoBitRate(info); kbps > 0 {
		video = append(video, strconv.FormatInt(kbps, 10)+" kbps")
	}
	video = append(video, resolution.Detect(info, false))
	if track.FrameRate != "" {
		video = append(video, track.FrameRate+" FPS")
	}
	video = append(video, track.DisplayAspectRatio, track.FormatProfile)

	lines := []string{joinNonEmpty(video, " / ")}
	for _, a := range info.Audio {
		fields := []string{strings.TrimSpace(a.Format + " " + ChannelLayout(a))}
		if lang, ok := language.FromCandidates(a.Language, a.OtherLanguage); ok {
			fields = append(fields, lang.Name)
		}
		fields = append(fields, a.SamplingRateDisplay)
		if kbps := averageAudioBitRate(a); kbps > 0 {
			fields = append(fields, strconv.FormatInt(kbps, 10)+" kbps")
		}
		lines = append(lines, joinNonEmpty(fields, " / "))
	}
	return strings.Join(lines, "\n")
}

// episodeHeading renders "Season 01 Episode 02", or only the episode part
// when the season is unknown.
func episodeHeading(season, episode *int) string {
	var parts []string
	if season != nil && *season > 0 {
		parts = append(parts, "Season "+textutil.ZeroFill(strconv.Itoa(*season), 2))
	}
	if episode != nil && *episode > 0 {
		parts = append(parts, "Episode "+textutil.ZeroFill(strconv.Itoa(*episode), 2))
	}
	return strings.Join(parts, " ")
}

func episodeMetadataLines(f EpisodeFile) []string {
	var lines []string
	if h := episodeHeading(f.Season, f.Episode); h != "" {
		lines = append(lines, h)
	}
	if f.Name != "" {
		lines = append(lines, f.Name)
	}
	if f.Record != nil && f.Record.Aired != "" {
		lines = append(lines, f.Record.Aired)
	}
	return lines
}

func fileStem(path string) string {
	return stem(filepath.Base(path))
}

func (s *State) episodeMediaInfo() string {
	var blocks []string
	for _, f := range s.ctx.EpisodeFiles {
		if summary := synopsis(f.Info); summary != "" {
			blocks = append(blocks, fileStem(f.Path)+"\n"+summary)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func (s *State) episodeMetadata() string {
	var blocks []string
	for _, f := range s.ctx.EpisodeFiles {
		if lines := episodeMetadataLines(f); len(lines) > 0 {
			blocks = append(blocks, fileStem(f.Path)+"\n"+strings.Join(lines, "\n"))
		}
	}
	return strings.Join(blocks, "\n\n")
}

// episodeMetadataMediaInfo prints each file once with its synopsis and
// metadata; files with nothing beyond the name are left out.
func (s *State) episodeMetadataMediaInfo() string {
	var blocks []string
	for _, f := range s.ctx.EpisodeFiles {
		lines := []string{fileStem(f.Path)}
		if summary := synopsis(f.Info); summary != "" {
			lines = append(lines, strings.Split(summary, "\n")...)
		}
		lines = append(lines, episodeMetadataLines(f)...)
		if len(lines) > 1 {
			blocks = append(blocks, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(blocks, "\n\n")
}

func joinNonEmpty(values []string, sep string) string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}
