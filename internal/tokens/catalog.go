package tokens

import (
	"fmt"
	"strings"
)

// Category says whether a token is meant for filenames or NFO bodies.
type Category int

const (
	// FileToken values shape generated filenames.
	FileToken Category = iota + 1
	// NfoToken values shape free-text bodies. Enumerating NfoToken also
	// yields every FileToken.
	NfoToken
)

func (c Category) String() string {
	switch c {
	case FileToken:
		return "FileToken"
	case NfoToken:
		return "NfoToken"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Token is one catalog entry.
type Token struct {
	Name        string
	Category    Category
	Description string
}

// Bracketed returns the token as it appears in a template, e.g. "{title}".
func (t Token) Bracketed() string {
	return "{" + t.Name + "}"
}

// Token names referenced by name elsewhere in the module.
const (
	Edition                   = "edition"
	FrameSize                 = "frame_size"
	Hybrid                    = "hybrid"
	Remux                     = "remux"
	ReRelease                 = "re_release"
	Source                    = "source"
	TitleClean                = "title_clean"
	EpisodeTitleClean         = "episode_title_clean"
	IMDbAKAFallbackTitleClean = "imdb_aka_fallback_title_clean"
	UserPrefix                = "usr_"
	PromptPrefix              = "prompt_"
)

var catalog = []Token{
	{Edition, FileToken, "Edition"},
	{FrameSize, FileToken, "Frame size (IMAX/Open Matte)"},
	{Hybrid, FileToken, "HYBRID"},
	{"localization", FileToken, "Subbed/Dubbed"},
	{"audio_bitrate", FileToken, "Audio bitrate (640000)"},
	{"audio_bitrate_formatted", FileToken, "Audio bitrate formatted (640 kb/s)"},
	{"audio_channel_s", FileToken, "Audio channels (5.1)"},
	{"audio_channel_s_i", FileToken, "Audio channels (6)"},
	{"audio_channel_s_layout", FileToken, "Audio channel layout (L R C LFE Ls Rs)"},
	{"audio_codec", FileToken, "Audio codec"},
	{"audio_commercial_name", FileToken, "Audio commercial name (Dolby Digital Plus)"},
	{"audio_compression", FileToken, "Audio compression (Lossy)"},
	{"audio_format_info", FileToken, "Audio format info (6)"},
	{"audio_language_1_full", FileToken, "Audio language (first track 'English')"},
	{"audio_language_1_iso_639_1", FileToken, "Audio language (first track 'EN')"},
	{"audio_language_1_iso_639_2", FileToken, "Audio language (first track 'ENG')"},
	{"audio_language_2_iso_639_1", FileToken, "Audio languages (first two tracks EN+ES)"},
	{"audio_language_2_iso_639_2", FileToken, "Audio languages (first two tracks ENG+SPA)"},
	{"audio_language_all_iso_639_1", FileToken, "All audio languages (EN+ES+...)"},
	{"audio_language_all_iso_639_2", FileToken, "All audio languages (ENG+SPA+...)"},
	{"audio_language_all_full", FileToken, "All audio languages (English Spanish ...)"},
	{"audio_language_dual", FileToken, "'Dual Audio' when 2 or more tracks have distinct languages"},
	{"audio_language_multi", FileToken, "'Multi' when 3 or more tracks have distinct languages"},
	{"audio_sample_rate", FileToken, "Audio sample rate (48.0 kHz)"},
	{"video_3d", FileToken, "Video 3D"},
	{"video_bit_depth_space", FileToken, "Video bit depth (10 Bit)"},
	{"video_bit_depth_dash", FileToken, "Video bit depth (10-Bit)"},
	{"video_codec", FileToken, "Video codec (x264/H.265/HEVC)"},
	{"video_dynamic_range", FileToken, "Video dynamic range (HDR/SDR) per configuration"},
	{"video_dynamic_range_type", FileToken, "Video dynamic range type (DV, DV HDR, HDR, HDR10Plus, HLG, PQ)"},
	{"video_dynamic_range_type_inc_sdr", FileToken, "Video dynamic range type including SDR"},
	{"video_dynamic_range_type_inc_sdr_over_1080", FileToken, "Video dynamic range type including SDR, only above 1080p"},
	{"video_format", FileToken, "Video format (AVC/HEVC/MPEG Video)"},
	{"video_height", FileToken, "Video height (1080)"},
	{"video_language_full", FileToken, "Video language (English)"},
	{"video_language_iso_639_1", FileToken, "Video language (EN)"},
	{"video_language_iso_639_2", FileToken, "Video language (ENG)"},
	{"video_width", FileToken, "Video width (1920)"},
	{"title", FileToken, "Title with minimal formatting"},
	{TitleClean, FileToken, "Title cleaned by the title rules"},
	{"title_exact", FileToken, "Title with no modifications"},
	{"imdb_aka", FileToken, "IMDb AKA title"},
	{"imdb_aka_fallback_title", FileToken, "IMDb AKA title, falling back to the title"},
	{IMDbAKAFallbackTitleClean, FileToken, "IMDb AKA title, falling back to the clean title"},
	{"original_language", FileToken, "Original language (English)"},
	{"original_language_iso_639_1", FileToken, "Original language (EN)"},
	{"original_language_iso_639_2", FileToken, "Original language (ENG)"},
	{"imdb_id", FileToken, "IMDb ID"},
	{"tmdb_id", FileToken, "TMDB ID"},
	{"tvdb_id", FileToken, "TVDB ID"},
	{"mal_id", FileToken, "MAL ID"},
	{"original_filename", FileToken, "Original filename"},
	{"release_group", FileToken, "Release group"},
	{"releasers_name", FileToken, "Releaser's name (Anonymous)"},
	{"release_date", FileToken, "Release date (movies)"},
	{"release_year", FileToken, "Release year"},
	{"release_year_parentheses", FileToken, "Release year with parentheses"},
	{ReRelease, FileToken, "Repack/Proper"},
	{"resolution", FileToken, "Resolution (1080p)"},
	{Remux, FileToken, "REMUX"},
	{Source, FileToken, "Source media (BluRay/WEBDL/DVD)"},
	{"air_date", FileToken, "Air date of the episode (series)"},
	{"season_number", FileToken, "Season number"},
	{"episode_number", FileToken, "Episode number"},
	{"episode_air_date", FileToken, "Episode air date"},
	{"episode_title", FileToken, "Episode title with minimal formatting"},
	{EpisodeTitleClean, FileToken, "Episode title cleaned by the title rules"},
	{"episode_title_exact", FileToken, "Episode title with no modifications"},

	{"chapter_type", NfoToken, "Chapter type (Named / Numbered (1 - 10) / Tagged)"},
	{"format_profile", NfoToken, "Format profile (Main@L4)"},
	{"media_file", NfoToken, "Media filename with extension"},
	{"media_file_no_ext", NfoToken, "Media filename without extension"},
	{"source_file", NfoToken, "Source filename with extension"},
	{"source_file_no_ext", NfoToken, "Source filename without extension"},
	{"media_info", NfoToken, "MediaInfo output with file path cleansed"},
	{"media_info_short", NfoToken, "Shortened MediaInfo output"},
	{"video_bit_rate", NfoToken, "Average video bit rate (9975 kbps)"},
	{"video_bit_rate_num_only", NfoToken, "Average video bit rate, number only (9975)"},
	{"release_notes", NfoToken, "Release notes supplied for the job"},
	{"repack", NfoToken, "'REPACK' when a repack was detected"},
	{"repack_n", NfoToken, "Repack with number if present (REPACK2)"},
	{"repack_reason", NfoToken, "Reason for the repack, if provided"},
	{"proper", NfoToken, "'PROPER' when a proper was detected"},
	{"proper_n", NfoToken, "Proper with number if present (PROPER2)"},
	{"proper_reason", NfoToken, "Reason for the proper, if provided"},
	{"screen_shots", NfoToken, "Screenshots"},
	{"screen_shots_comparison", NfoToken, "Screenshots in comparison mode"},
	{"screen_shots_even_obj", NfoToken, "Even screenshots as objects (url, medium_url)"},
	{"screen_shots_odd_obj", NfoToken, "Odd screenshots as objects (url, medium_url)"},
	{"screen_shots_even_str", NfoToken, "Even screenshot URLs"},
	{"screen_shots_odd_str", NfoToken, "Odd screenshot URLs"},
	{"file_size_bytes", NfoToken, "File size in bytes (8469985859)"},
	{"file_size", NfoToken, "File size (7.89 GiB)"},
	{"duration_milliseconds", NfoToken, "Duration in milliseconds (8074065)"},
	{"duration_short", NfoToken, "Duration (2 h 14 min)"},
	{"duration_long", NfoToken, "Duration (2 h 14 min 34 s 65 ms)"},
	{"duration_detailed", NfoToken, "Duration (02:14:34.065)"},
	{"aspect_ratio", NfoToken, "Aspect ratio (2.40:1)"},
	{"video_frame_rate", NfoToken, "Frame rate (23.976)"},
	{"subtitle_s", NfoToken, "Subtitle languages (English, French, ...)"},
	{"episode_metadata", NfoToken, "Per-episode season/episode, name and air date"},
	{"episode_mediainfo", NfoToken, "Per-episode video and audio summary"},
	{"episode_metadata_mediainfo", NfoToken, "Per-episode summary and metadata combined"},
	{"total_seasons", NfoToken, "Total seasons"},
	{"total_episodes", NfoToken, "Total episodes"},
	{"genres", NfoToken, "Genres (Drama, Thriller)"},
	{"program_info", NfoToken, "NfoForge vX.Y.Z"},
	{"shared_with", NfoToken, "Shared with NfoForge vX.Y.Z"},
	{"shared_with_bbcode", NfoToken, "Shared with NfoForge vX.Y.Z (BBCode link)"},
	{"shared_with_html", NfoToken, "Shared with NfoForge vX.Y.Z (HTML link)"},
}

var byName = func() map[string]Token {
	m := make(map[string]Token, len(catalog))
	for _, t := range catalog {
		if _, dup := m[t.Name]; dup {
			panic("tokens: duplicate catalog entry " + t.Name)
		}
		m[t.Name] = t
	}
	return m
}()

// Lookup returns the catalog entry for name.
func Lookup(name string) (Token, bool) {
	t, ok := byName[name]
	return t, ok
}

// Known reports whether name is a catalog token.
func Known(name string) bool {
	_, ok := byName[name]
	return ok
}

// All returns catalog entries in declaration order. With no categories every
// token is returned; NfoToken includes FileToken entries.
func All(categories ...Category) []Token {
	wantFile, wantNfo := len(categories) == 0, len(categories) == 0
	for _, c := range categories {
		switch c {
		case FileToken:
			wantFile = true
		case NfoToken:
			wantFile, wantNfo = true, true
		}
	}
	out := make([]Token, 0, len(catalog))
	for _, t := range catalog {
		if (t.Category == FileToken && wantFile) || (t.Category == NfoToken && wantNfo) {
			out = append(out, t)
		}
	}
	return out
}

// Names returns every catalog token name in declaration order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, t := range catalog {
		names[i] = t.Name
	}
	return names
}

// EmptyValues returns a fresh computed-values record with every catalog
// token set to the empty value.
func EmptyValues() map[string]Value {
	values := make(map[string]Value, len(catalog))
	for _, t := range catalog {
		values[t.Name] = Value{}
	}
	return values
}

// IsUserName reports whether name is in the externally supplied user or
// prompt namespace.
func IsUserName(name string) bool {
	return strings.HasPrefix(name, UserPrefix) || strings.HasPrefix(name, PromptPrefix)
}
