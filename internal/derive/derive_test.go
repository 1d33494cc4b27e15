package derive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nfoforge/internal/guess"
	"nfoforge/internal/media"
	"nfoforge/internal/metadata"
	"nfoforge/internal/tokens"
)

func intPtr(v int) *int { return &v }

func resolve(t *testing.T, ctx *Context, name string) string {
	t.Helper()
	v, err := NewState(ctx, nil).Resolve(name)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", name, err)
	}
	return v.String()
}

func videoInfo(format string, width, height int) *media.Info {
	return &media.Info{Video: []media.Video{{Format: format, Width: width, Height: height}}}
}

func TestResolversCoverCatalog(t *testing.T) {
	names := tokens.Names()
	for _, name := range names {
		if _, ok := resolvers[name]; !ok {
			t.Errorf("catalog token %q has no resolver", name)
		}
	}
	if len(resolvers) != len(names) {
		t.Errorf("resolvers = %d entries, catalog = %d", len(resolvers), len(names))
	}
}

func TestResolveUnknownToken(t *testing.T) {
	if _, err := NewState(nil, nil).Resolve("no_such_token"); err == nil {
		t.Fatal("expected error for unknown token")
	}
}

func TestEmptyContextDegradesToEmpty(t *testing.T) {
	state := NewState(&Context{}, nil)
	nonEmpty := map[string]string{}
	for _, name := range tokens.Names() {
		v, err := state.Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", name, err)
		}
		if !v.IsEmpty() {
			nonEmpty[name] = v.String()
		}
	}
	want := map[string]string{
		"releasers_name":                   "Anonymous",
		"source":                           "BluRay",
		"video_dynamic_range_type_inc_sdr": "SDR",
		"program_info":                     "NfoForge v0.1.0",
		"shared_with":                      "Shared with NfoForge v0.1.0",
		"shared_with_bbcode":               "Shared with [url=https://github.com/jlw4049/nfoforge]NfoForge v0.1.0[/url]",
		"shared_with_html":                 `Shared with <a href="https://github.com/jlw4049/nfoforge">NfoForge v0.1.0</a>`,
	}
	if diff := cmp.Diff(want, nonEmpty); diff != "" {
		t.Fatalf("non-empty tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestQuality(t *testing.T) {
	hdr := videoInfo("HEVC", 1920, 1080)
	hdr.Video[0].HDRFormat = "SMPTE ST 2086, HDR10 compatible"
	tests := []struct {
		name string
		ctx  Context
		want string
	}{
		{"override", Context{Overrides: map[string]string{"source": "WEBDL"}}, "WEBDL"},
		{"override short form", Context{Overrides: map[string]string{"source": "uhd bluray"}}, "UHD-BluRay"},
		{"web-dl name", Context{PrimaryPath: "Movie.2024.1080p.WEB-DL.mkv", Guess: &guess.Result{Source: "Web"}}, "WEBDL"},
		{"webrip name", Context{PrimaryPath: "Movie.2024.1080p.WEBRip.mkv", Guess: &guess.Result{Source: "Web"}}, "WEBRip"},
		{"uhd guess", Context{Guess: &guess.Result{Source: "Ultra HD Blu-ray"}}, "UHD-BluRay"},
		{"hdtv guess", Context{Guess: &guess.Result{Source: "HDTV"}}, "HDTV"},
		{"source guess wins", Context{Guess: &guess.Result{Source: "Blu-ray"}, SourceGuess: &guess.Result{Source: "DVD"}}, "DVD"},
		{"avc bluray", Context{Guess: &guess.Result{Source: "Blu-ray"}, Primary: videoInfo("AVC", 1920, 1080)}, "BluRay"},
		{"hevc 2160p", Context{Guess: &guess.Result{Source: "Blu-ray"}, Primary: videoInfo("HEVC", 3840, 2160)}, "UHD-BluRay"},
		{"hevc hdr 1080p", Context{Primary: hdr}, "UHD-BluRay"},
		{"source file checked first", Context{Primary: videoInfo("HEVC", 3840, 2160), Source: videoInfo("AVC", 1920, 1080)}, "BluRay"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolve(t, &tt.ctx, "source"); got != tt.want {
				t.Fatalf("source = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseQuality(t *testing.T) {
	for _, name := range []string{"SDTV", "HDTV", "DVD", "WEBRip", "WEBDL", "BluRay", "UHD-BluRay"} {
		q, ok := ParseQuality(name)
		if !ok || q.String() != name {
			t.Errorf("ParseQuality(%q) = %v, %v", name, q, ok)
		}
	}
	if _, ok := ParseQuality("laserdisc"); ok {
		t.Error("expected unknown quality to fail")
	}
}

func TestVideoCodec(t *testing.T) {
	mpeg := videoInfo("MPEG Video", 720, 576)
	mpeg.Video[0].FormatVersion = "Version 2"
	tests := []struct {
		name string
		ctx  Context
		want string
	}{
		{"avc encode", Context{Primary: videoInfo("AVC", 1920, 1080)}, "x264"},
		{"hevc web-dl", Context{PrimaryPath: "Show.S01E01.WEB-DL.mkv", Guess: &guess.Result{Source: "Web"}, Primary: videoInfo("HEVC", 1920, 1080)}, "H.265"},
		{"avc hdtv", Context{Guess: &guess.Result{Source: "HDTV"}, Primary: videoInfo("AVC", 1280, 720)}, "H.264"},
		{"remux name", Context{PrimaryPath: "Movie.2024.BluRay.REMUX.mkv", Primary: videoInfo("HEVC", 3840, 2160)}, "HEVC"},
		{"remux override", Context{Overrides: map[string]string{"remux": "REMUX"}, Primary: videoInfo("AVC", 1920, 1080)}, "AVC"},
		{"mpeg-2", Context{Primary: mpeg}, "MPEG-2"},
		{"vc-1 passthrough", Context{Primary: videoInfo("VC-1", 1920, 1080)}, "VC-1"},
		{"guess fallback", Context{Guess: &guess.Result{VideoCodec: "H.265"}}, "x265"},
		{"unknown format falls back", Context{Guess: &guess.Result{VideoCodec: "ProRes"}, Primary: videoInfo("ProRes", 1920, 1080)}, "ProRes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolve(t, &tt.ctx, "video_codec"); got != tt.want {
				t.Fatalf("video_codec = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMPEGCodec(t *testing.T) {
	for version, want := range map[string]string{"": "MPEG", "Version 1": "MPEG", "Version 2": "MPEG-2", "4": "MPEG-4"} {
		if got := mpegCodec(version); got != want {
			t.Errorf("mpegCodec(%q) = %q, want %q", version, got, want)
		}
	}
}

func TestChannelLayout(t *testing.T) {
	tests := []struct {
		name  string
		track media.Audio
		want  string
	}{
		{"5.1", media.Audio{Channels: "6", ChannelPositions: "Front: L C R, Side: L R, LFE"}, "5.1"},
		{"stereo", media.Audio{Channels: "2", ChannelPositions: "Front: L R"}, "2.0"},
		{"lossless core", media.Audio{Channels: "8 / 6", ChannelLayoutOriginal: "L R C LFE Ls Rs Lb Rb"}, "7.1"},
		{"display count wins", media.Audio{Channels: "6", ChannelsDisplay: "8 channels", ChannelPositions: "LFE"}, "7.1"},
		{"original count", media.Audio{Channels: "6", ChannelsOriginal: "8", ChannelPositions: "Front: L C R, LFE"}, "7.1"},
		{"no channels", media.Audio{}, ""},
	}
	for _, tt := range tests {
		if got := ChannelLayout(tt.track); got != tt.want {
			t.Errorf("%s: ChannelLayout = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestAudioChannelTokens(t *testing.T) {
	ctx := &Context{
		Guess: &guess.Result{AudioChannels: "2.0"},
		Primary: &media.Info{Audio: []media.Audio{{
			Channels:         "6",
			ChannelPositions: "Front: L C R, Side: L R, LFE",
			ChannelLayout:    "L R C LFE Ls Rs",
		}}},
	}
	got := map[string]string{}
	for _, name := range []string{"audio_channel_s", "audio_channel_s_i", "audio_channel_s_layout", "audio_format_info"} {
		got[name] = resolve(t, ctx, name)
	}
	want := map[string]string{
		"audio_channel_s":        "5.1",
		"audio_channel_s_i":      "6",
		"audio_channel_s_layout": "L R C LFE Ls Rs",
		"audio_format_info":      "6",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("channel tokens mismatch (-want +got):\n%s", diff)
	}
	if got := resolve(t, &Context{Guess: &guess.Result{AudioChannels: "2.0"}}, "audio_channel_s"); got != "2.0" {
		t.Fatalf("guess fallback = %q", got)
	}
}

func uhdTrack(hdr, transfer string) *media.Info {
	info := videoInfo("HEVC", 3840, 2160)
	info.Video[0].HDRFormat = hdr
	info.Video[0].TransferCharacteristics = transfer
	return info
}

func TestDynamicRange(t *testing.T) {
	const dvHDR10 = "Dolby Vision, Version 1.0, dvhe.08.06, BL+RPU, HDR10 compatible / SMPTE ST 2086, HDR10 compatible"
	cfg := func(types ...string) *DynamicRange {
		d := &DynamicRange{
			Resolutions: map[string]bool{"2160p": true, "1080p": false},
			Types:       map[string]bool{},
		}
		for _, name := range types {
			d.Types[name] = true
		}
		return d
	}
	custom := cfg("DV HDR10", "PQ")
	custom.CustomStrings = map[string]string{"DV HDR10": "DoVi HDR"}
	tests := []struct {
		name    string
		primary *media.Info
		cfg     *DynamicRange
		want    string
	}{
		{"dv hdr10+ beats shorter labels", uhdTrack("Dolby Vision, dvhe.08.06 / SMPTE ST 2094 App 4, HDR10+ Profile A", "PQ"), cfg("HDR10", "DV HDR10+", "DV", "HDR10+"), "DV HDR10+"},
		{"most specific wins", uhdTrack(dvHDR10, "PQ"), cfg("DV", "HDR10", "DV HDR10"), "DV HDR10"},
		{"pq appended", uhdTrack(dvHDR10, "PQ"), cfg("DV", "HDR10", "DV HDR10", "PQ"), "DV HDR10 PQ"},
		{"custom string", uhdTrack(dvHDR10, "PQ"), custom, "DoVi HDR PQ"},
		{"falls through to hdr10", uhdTrack(dvHDR10, ""), cfg("HDR10"), "HDR10"},
		{"hdr10+", uhdTrack("SMPTE ST 2094 App 4, HDR10+ Profile B compatible", "PQ"), cfg("HDR10+", "HDR10"), "HDR10+"},
		{"sdr", uhdTrack("", "BT.709"), cfg("SDR", "HDR10"), "SDR"},
		{"hlg only", uhdTrack("", "HLG"), cfg("SDR", "HLG"), "HLG"},
		{"dv layer before transfer label", uhdTrack("Dolby Vision, Version 1.0, dvhe.08.06, BL+RPU", "HLG"), cfg("DV", "HLG"), "DV HLG"},
		{"bucket disabled", videoInfo("HEVC", 1920, 1080), cfg("SDR"), ""},
		{"not configured", uhdTrack(dvHDR10, "PQ"), nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &Context{Primary: tt.primary, DynamicRange: tt.cfg}
			if got := resolve(t, ctx, "video_dynamic_range"); got != tt.want {
				t.Fatalf("video_dynamic_range = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDynamicRangeType(t *testing.T) {
	tests := []struct {
		name  string
		ctx   Context
		token string
		want  string
	}{
		{"guess dv", Context{Guess: &guess.Result{Other: guess.StringList{"Dolby Vision"}}}, "video_dynamic_range_type", "DV"},
		{"guess hdr10", Context{Guess: &guess.Result{Other: guess.StringList{"HDR10"}}}, "video_dynamic_range_type", "HDR"},
		{"profile 5", Context{Primary: uhdTrack("Dolby Vision, Version 1.0, dvhe.05.06, BL+RPU", "")}, "video_dynamic_range_type", "DV"},
		{"profile 8", Context{Primary: uhdTrack("Dolby Vision, Version 1.0, dvhe.08.06, HDR10 compatible", "PQ")}, "video_dynamic_range_type", "DV HDR"},
		{"dv hdr10+", Context{Primary: uhdTrack("Dolby Vision, dvhe.08.06 / SMPTE ST 2094 App 4, HDR10+ Profile A", "PQ")}, "video_dynamic_range_type", "DV HDR10Plus"},
		{"hdr10+", Context{Primary: uhdTrack("SMPTE ST 2094 App 4, HDR10+ Profile B compatible", "PQ")}, "video_dynamic_range_type", "HDR10Plus"},
		{"hlg", Context{Primary: uhdTrack("", "HLG")}, "video_dynamic_range_type", "HLG"},
		{"pq", Context{Primary: uhdTrack("", "PQ")}, "video_dynamic_range_type", "PQ"},
		{"sdr excluded", Context{Primary: uhdTrack("", "BT.709")}, "video_dynamic_range_type", ""},
		{"sdr included", Context{Primary: uhdTrack("", "BT.709")}, "video_dynamic_range_type_inc_sdr", "SDR"},
		{"over 1080", Context{Primary: uhdTrack("", "BT.709")}, "video_dynamic_range_type_inc_sdr_over_1080", "SDR"},
		{"1080 suppressed", Context{Primary: videoInfo("AVC", 1920, 1080)}, "video_dynamic_range_type_inc_sdr_over_1080", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolve(t, &tt.ctx, tt.token); got != tt.want {
				t.Fatalf("%s = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestVideoDetails(t *testing.T) {
	info := videoInfo("HEVC", 1920, 1080)
	info.Video[0].BitDepth = 10
	info.Video[0].MultiviewCount = 2
	info.Video[0].Language = "en"
	ctx := &Context{Primary: info}
	want := map[string]string{
		"video_bit_depth_dash":     "10-Bit",
		"video_bit_depth_space":    "10 Bit",
		"video_3d":                 "3D",
		"video_format":             "HEVC",
		"video_width":              "1920",
		"video_height":             "1080",
		"video_language_full":      "English",
		"video_language_iso_639_1": "EN",
		"video_language_iso_639_2": "ENG",
		"resolution":               "1080p",
	}
	got := map[string]string{}
	for name := range want {
		got[name] = resolve(t, ctx, name)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("video tokens mismatch (-want +got):\n%s", diff)
	}

	guessed := &Context{Guess: &guess.Result{ColorDepth: "10-bit", ScreenSize: "720p"}}
	if got := resolve(t, guessed, "video_bit_depth_dash"); got != "10-Bit" {
		t.Errorf("guessed dash depth = %q", got)
	}
	if got := resolve(t, guessed, "video_bit_depth_space"); got != "10 Bit" {
		t.Errorf("guessed space depth = %q", got)
	}
	if got := resolve(t, guessed, "resolution"); got != "720p" {
		t.Errorf("guessed resolution = %q", got)
	}
	if got := resolve(t, &Context{PrimaryPath: "Movie.2012.3D.HSBS.1080p.BluRay.mkv"}, "video_3d"); got != "3D" {
		t.Errorf("3D from name = %q", got)
	}
	if got := resolve(t, &Context{PrimaryPath: "3D.Movie.1080p.mkv"}, "video_3d"); got != "" {
		t.Errorf("3D in title only = %q", got)
	}
}

func TestAudioLanguages(t *testing.T) {
	ctx := &Context{Primary: &media.Info{Audio: []media.Audio{
		{Language: "en"}, {Language: "fr"}, {Language: "en"}, {Language: "de"},
	}}}
	want := map[string]string{
		"audio_language_1_full":        "English",
		"audio_language_1_iso_639_1":   "EN",
		"audio_language_1_iso_639_2":   "ENG",
		"audio_language_2_iso_639_1":   "EN+FR",
		"audio_language_2_iso_639_2":   "ENG+FRE",
		"audio_language_all_iso_639_1": "EN+FR+DE",
		"audio_language_all_iso_639_2": "ENG+FRE+GER",
		"audio_language_all_full":      "English French German",
		"audio_language_dual":          "Dual Audio",
		"audio_language_multi":         "Multi",
	}
	got := map[string]string{}
	for name := range want {
		got[name] = resolve(t, ctx, name)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("language tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestAudioLanguageFromGuess(t *testing.T) {
	ctx := &Context{Guess: &guess.Result{Language: map[string]any{"alpha3": "spa"}}}
	if got := resolve(t, ctx, "audio_language_1_iso_639_1"); got != "ES" {
		t.Errorf("iso 639-1 from guess = %q", got)
	}
	if got := resolve(t, ctx, "audio_language_2_iso_639_2"); got != "SPA" {
		t.Errorf("iso 639-2 from guess = %q", got)
	}
	multi := &Context{Guess: &guess.Result{Language: "mul"}}
	if got := resolve(t, multi, "audio_language_multi"); got != "Multi" {
		t.Errorf("multi from guess = %q", got)
	}
	dual := &Context{Guess: &guess.Result{Other: guess.StringList{"Dual Audio"}}}
	if got := resolve(t, dual, "audio_language_dual"); got != "Dual Audio" {
		t.Errorf("dual from guess = %q", got)
	}
}

func TestMalformedGuessLanguageIsScopedToToken(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := &Context{
		Guess:   &guess.Result{Language: 42, Title: "Movie"},
		Primary: &media.Info{Audio: []media.Audio{{Format: "AC-3"}}},
	}
	state := NewState(ctx, logger)
	v, err := state.Resolve("audio_language_1_iso_639_1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !v.IsEmpty() {
		t.Fatalf("expected empty value, got %q", v.String())
	}
	if !strings.Contains(buf.String(), "audio_language_1_iso_639_1") || !strings.Contains(buf.String(), "level=WARN") {
		t.Fatalf("expected WARN naming the token, got %q", buf.String())
	}
	title, err := state.Resolve("title")
	if err != nil || title.String() != "Movie" {
		t.Fatalf("other tokens should be unaffected: %q, %v", title.String(), err)
	}
}

func TestAudioTokens(t *testing.T) {
	ctx := &Context{Primary: &media.Info{Audio: []media.Audio{{
		Format:              "E-AC-3",
		FormatDisplay:       "E-AC-3 JOC",
		CommercialName:      "Dolby Digital Plus with Dolby Atmos",
		BitRate:             768000,
		BitRateDisplay:      "768 kb/s",
		SamplingRateDisplay: "48.0 kHz",
		CompressionMode:     "Lossy",
	}}}}
	want := map[string]string{
		"audio_codec":             "DDP Atmos",
		"audio_commercial_name":   "Dolby Digital Plus with Dolby Atmos",
		"audio_bitrate":           "768000",
		"audio_bitrate_formatted": "768 kb/s",
		"audio_sample_rate":       "48.0 kHz",
		"audio_compression":       "Lossy",
	}
	got := map[string]string{}
	for name := range want {
		got[name] = resolve(t, ctx, name)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("audio tokens mismatch (-want +got):\n%s", diff)
	}
	if got := resolve(t, &Context{Guess: &guess.Result{AudioCodec: guess.StringList{"DTS-HD"}}}, "audio_codec"); got != "DTS-HD" {
		t.Errorf("guess audio codec fallback = %q", got)
	}
}

func TestAudioConventions(t *testing.T) {
	conv := DefaultAudioConventions()
	tests := []struct {
		track media.Audio
		want  string
	}{
		{media.Audio{Format: "AC-3"}, "DD"},
		{media.Audio{Format: "E-AC-3"}, "DDP"},
		{media.Audio{Format: "MLP FBA", FormatDisplay: "MLP FBA 16-ch"}, "TrueHD Atmos"},
		{media.Audio{Format: "MLP FBA", CommercialName: "Dolby TrueHD with Dolby Atmos"}, "TrueHD Atmos"},
		{media.Audio{Format: "DTS", FormatDisplay: "DTS XLL"}, "DTS-HD MA"},
		{media.Audio{Format: "DTS", FormatDisplay: "DTS XLL X"}, "DTS-X"},
		{media.Audio{Format: "PCM"}, "LPCM"},
		{media.Audio{Format: "ALAC"}, "ALAC"},
	}
	for _, tt := range tests {
		if got := conv.Name(tt.track); got != tt.want {
			t.Errorf("Name(%+v) = %q, want %q", tt.track, got, tt.want)
		}
	}
}

func TestParseAudioConventionsRejectsBadTables(t *testing.T) {
	bad := map[string]string{
		"missing format": "[[convention]]\nname = \"X\"\n",
		"missing name":   "[[convention]]\nformat = \"X\"\n",
		"duplicate":      "[[convention]]\nformat = \"X\"\nname = \"A\"\n[[convention]]\nformat = \"X\"\nname = \"B\"\n",
		"syntax":         "[[convention]\n",
	}
	for name, data := range bad {
		if _, err := ParseAudioConventions([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadAudioConventions(t *testing.T) {
	def, err := LoadAudioConventions("")
	if err != nil || def != DefaultAudioConventions() {
		t.Fatalf("empty path should return defaults, got %v, %v", def, err)
	}
	path := filepath.Join(t.TempDir(), "audio.toml")
	data := "[[convention]]\nformat = \"AC-3\"\nname = \"AC3\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	conv, err := LoadAudioConventions(path)
	if err != nil {
		t.Fatalf("LoadAudioConventions: %v", err)
	}
	if got := conv.Name(media.Audio{Format: "AC-3"}); got != "AC3" {
		t.Fatalf("custom convention = %q", got)
	}
	if _, err := LoadAudioConventions(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEdition(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
		want string
	}{
		{"from filename", Context{PrimaryPath: "/m/Movie.2001.Directors.Cut.Remastered.1080p.mkv"}, "Directors Cut Remastered"},
		{"table order", Context{PrimaryPath: "Movie.2001.Remastered.Extended.mkv"}, "Extended Cut Remastered"},
		{"guess normalized and raw", Context{Guess: &guess.Result{Edition: guess.StringList{"Criterion", "Fan Edit", "IMAX"}}}, "Criterion Edition Fan Edit"},
		{"deduplicated", Context{PrimaryPath: "Movie.Unrated.mkv", Guess: &guess.Result{Edition: guess.StringList{"Unrated"}}}, "Unrated"},
		{"none", Context{PrimaryPath: "Movie.2001.1080p.mkv"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolve(t, &tt.ctx, "edition"); got != tt.want {
				t.Fatalf("edition = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFrameSize(t *testing.T) {
	tests := []struct {
		name string
		ctx  Context
		want string
	}{
		{"imax edition", Context{Guess: &guess.Result{Edition: guess.StringList{"IMAX"}}}, "IMAX"},
		{"open matte other", Context{Guess: &guess.Result{Other: guess.StringList{"Open Matte"}}}, "Open Matte"},
		{"both from source guess", Context{SourceGuess: &guess.Result{Edition: guess.StringList{"IMAX Edition"}, Other: guess.StringList{"Open Matte"}}}, "IMAX Open Matte"},
		{"filename", Context{PrimaryPath: "Movie.2019.Open.Matte.1080p.mkv"}, "Open Matte"},
		{"none", Context{PrimaryPath: "Movie.2019.mkv"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolve(t, &tt.ctx, "frame_size"); got != tt.want {
				t.Fatalf("frame_size = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilenameFlags(t *testing.T) {
	ctx := &Context{PrimaryPath: "/m/Movie.2024.Hybrid.PROPER.REPACK2.Subbed.BluRay.Remux.1080p-GRP.mkv"}
	want := map[string]string{
		"hybrid":            "HYBRID",
		"remux":             "REMUX",
		"localization":      "Subbed",
		"re_release":        "PROPER REPACK2",
		"repack":            "REPACK",
		"repack_n":          "REPACK2",
		"proper":            "PROPER",
		"proper_n":          "PROPER",
		"media_file":        "Movie.2024.Hybrid.PROPER.REPACK2.Subbed.BluRay.Remux.1080p-GRP.mkv",
		"media_file_no_ext": "Movie.2024.Hybrid.PROPER.REPACK2.Subbed.BluRay.Remux.1080p-GRP",
	}
	got := map[string]string{}
	for name := range want {
		got[name] = resolve(t, ctx, name)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("filename flags mismatch (-want +got):\n%s", diff)
	}

	supplied := &Context{PrimaryPath: "Movie.2024.mkv", RepackN: "repack3", RepackReason: "audio sync"}
	if got := resolve(t, supplied, "repack_n"); got != "REPACK3" {
		t.Errorf("supplied repack_n = %q", got)
	}
	if got := resolve(t, supplied, "repack"); got != "REPACK" {
		t.Errorf("supplied repack = %q", got)
	}
	if got := resolve(t, supplied, "repack_reason"); got != "audio sync" {
		t.Errorf("repack_reason = %q", got)
	}
	if got := resolve(t, &Context{PrimaryPath: "Anime.Dubbed.mkv"}, "localization"); got != "Dubbed" {
		t.Errorf("dubbed localization = %q", got)
	}
}

func TestTitles(t *testing.T) {
	ctx := &Context{
		Search: &metadata.Search{Title: "Amélie & Friends: Part II", AKATitle: ""},
		Guess:  &guess.Result{Title: "Amelie"},
	}
	want := map[string]string{
		"title":                         "Amelie & Friends Part II",
		"title_clean":                   "Amelie and Friends Part II",
		"title_exact":                   "Amélie & Friends: Part II",
		"imdb_aka":                      "",
		"imdb_aka_fallback_title":       "Amelie & Friends Part II",
		"imdb_aka_fallback_title_clean": "Amelie and Friends Part II",
	}
	got := map[string]string{}
	for name := range want {
		got[name] = resolve(t, ctx, name)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("title tokens mismatch (-want +got):\n%s", diff)
	}

	aka := &Context{Search: &metadata.Search{Title: "Movie", AKATitle: "Le Film"}}
	if got := resolve(t, aka, "imdb_aka_fallback_title"); got != "Le Film" {
		t.Errorf("aka preferred = %q", got)
	}
	guessed := &Context{Guess: &guess.Result{Title: "Guessed Title"}}
	if got := resolve(t, guessed, "title"); got != "Guessed Title" {
		t.Errorf("guess title = %q", got)
	}
	noRules := &Context{Search: &metadata.Search{Title: "Movie"}, TitleCleanRules: []TitleRule{}}
	if got := resolve(t, noRules, "title_clean"); got != "" {
		t.Errorf("title_clean without rules = %q", got)
	}
}

func TestCleanTitleRules(t *testing.T) {
	rules := []TitleRule{
		{"", "[unidecode]"},
		{`\s+`, "[space]"},
		{`!`, "[remove]"},
		{`(`, "x"},
		{`(\w+) (\w+)`, "$2 $1"},
	}
	if got := CleanTitle("Pokémon  Go!", rules); got != "Go Pokemon" {
		t.Fatalf("CleanTitle = %q", got)
	}
}

func TestIdentifiersAndRelease(t *testing.T) {
	ctx := &Context{
		PrimaryPath: "/m/Movie.2024.1080p-GRP.mkv",
		Guess:       &guess.Result{ReleaseGroup: "-GRP", Year: 2023},
		Search: &metadata.Search{
			MediaType:        metadata.MediaTypeMovie,
			IMDbID:           "tt1234567",
			TMDbID:           "42",
			TVDbID:           "7",
			MALID:            "9",
			Year:             2024,
			OriginalLanguage: "fr",
			ReleaseDate:      "2024-03-01",
			Genres:           []string{"Drama", "Thriller"},
		},
	}
	want := map[string]string{
		"imdb_id":                     "tt1234567",
		"tmdb_id":                     "42",
		"tvdb_id":                     "7",
		"mal_id":                      "9",
		"release_group":               "GRP",
		"releasers_name":              "Anonymous",
		"release_year":                "2024",
		"release_year_parentheses":    "(2024)",
		"release_date":                "2024-03-01",
		"original_language":           "French",
		"original_language_iso_639_1": "FR",
		"original_language_iso_639_2": "FRE",
		"original_filename":           "Movie.2024.1080p-GRP",
		"genres":                      "Drama, Thriller",
	}
	got := map[string]string{}
	for name := range want {
		got[name] = resolve(t, ctx, name)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("identifier tokens mismatch (-want +got):\n%s", diff)
	}
	series := &Context{InputDir: "/packs/Show.S01.1080p/", Search: &metadata.Search{MediaType: metadata.MediaTypeSeries, ReleaseDate: "2020-01-01"}}
	if got := resolve(t, series, "original_filename"); got != "Show.S01.1080p" {
		t.Errorf("series original_filename = %q", got)
	}
	if got := resolve(t, series, "release_date"); got != "" {
		t.Errorf("series release_date = %q", got)
	}
}

func seriesSearch(t *testing.T) *metadata.Search {
	t.Helper()
	var search metadata.Search
	payload := `{
		"media_type": "series",
		"seasons":    [{"number": 1}, {"number": 2}],
		"episodes":   [
			{"seasonNumber": 1, "number": 1, "name": "Winter Is Coming", "aired": "2011-04-17"},
			{"seasonNumber": "1", "number": "2", "name": "Pilot: Part 2", "aired": "2011-04-24"},
			{"seasonNumber": 2, "number": 1, "name": "The North", "aired": "2012-04-01"}
		]
	}`
	if err := json.Unmarshal([]byte(payload), &search); err != nil {
		t.Fatalf("unmarshal search: %v", err)
	}
	return &search
}

func TestSeriesTokens(t *testing.T) {
	ctx := &Context{Search: seriesSearch(t), Season: intPtr(1), Episode: intPtr(2)}
	state := NewState(ctx, nil)
	want := map[string]string{
		"season_number":       "1",
		"episode_number":      "2",
		"air_date":            "2011-04-24",
		"episode_air_date":    "2011-04-24",
		"episode_title":       "Pilot Part 2",
		"episode_title_exact": "Pilot: Part 2",
		"episode_title_clean": "Pilot Part 2",
		"total_seasons":       "2",
		"total_episodes":      "3",
	}
	got := map[string]string{}
	for name := range want {
		v, err := state.Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", name, err)
		}
		got[name] = v.String()
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("series tokens mismatch (-want +got):\n%s", diff)
	}
	if _, ok := state.episodes[episodeKey{1, 2}]; !ok {
		t.Fatal("expected episode lookup to be cached")
	}
	if len(state.episodes) != 1 {
		t.Fatalf("cache holds %d entries, want 1", len(state.episodes))
	}

	missing := &Context{Search: seriesSearch(t), Season: intPtr(3), Episode: intPtr(1)}
	missState := NewState(missing, nil)
	if v, _ := missState.Resolve("episode_title"); !v.IsEmpty() {
		t.Fatalf("missing episode title = %q", v.String())
	}
	if len(missState.episodes) != 0 {
		t.Fatal("misses must not be cached")
	}
	negative := &Context{Search: seriesSearch(t), Season: intPtr(-1), Episode: intPtr(2)}
	if got := resolve(t, negative, "season_number"); got != "" {
		t.Fatalf("negative season = %q", got)
	}
	if got := resolve(t, negative, "episode_title"); got != "" {
		t.Fatalf("negative season title = %q", got)
	}
}

func TestEpisodeSummaries(t *testing.T) {
	info := &media.Info{
		Video: []media.Video{{
			Format: "AVC", Width: 1920, Height: 1080, FrameRate: "23.976",
			DisplayAspectRatio: "16:9", FormatProfile: "High@L4.1",
			StreamSize: 7_000_000_000, DurationMS: 8_074_065,
		}},
		Audio: []media.Audio{{
			Format: "AC-3", Channels: "6", ChannelPositions: "Front: L C R, Side: L R, LFE",
			Language: "en", SamplingRateDisplay: "48.0 kHz", BitRate: 640000,
		}},
	}
	ctx := &Context{EpisodeFiles: []EpisodeFile{
		{
			Path: "/pack/Show.S01E01.mkv", Info: info,
			Season: intPtr(1), Episode: intPtr(1), Name: "Pilot",
			Record: &metadata.Episode{Aired: "2020-01-01"},
		},
		{Path: "/pack/Show.S01E02.mkv"},
	}}
	wantSynopsis := "AVC / 6936 kbps / 1080p / 23.976 FPS / 16:9 / High@L4.1\nAC-3 5.1 / English / 48.0 kHz / 640 kbps"
	if got := resolve(t, ctx, "episode_mediainfo"); got != "Show.S01E01\n"+wantSynopsis {
		t.Errorf("episode_mediainfo = %q", got)
	}
	if got := resolve(t, ctx, "episode_metadata"); got != "Show.S01E01\nSeason 01 Episode 01\nPilot\n2020-01-01" {
		t.Errorf("episode_metadata = %q", got)
	}
	combined := "Show.S01E01\n" + wantSynopsis + "\nSeason 01 Episode 01\nPilot\n2020-01-01"
	if got := resolve(t, ctx, "episode_metadata_mediainfo"); got != combined {
		t.Errorf("episode_metadata_mediainfo = %q", got)
	}
	if got := episodeHeading(nil, intPtr(3)); got != "Episode 03" {
		t.Errorf("episodeHeading without season = %q", got)
	}
}

func TestChapterType(t *testing.T) {
	numbered := make([]media.Chapter, 0, 12)
	for i := 1; i <= 12; i++ {
		numbered = append(numbered, media.Chapter{Name: fmt.Sprintf("en:Chapter %02d", i)})
	}
	tests := []struct {
		name     string
		chapters []media.Chapter
		want     string
	}{
		{"numbered", numbered, "Numbered (1 - 12)"},
		{"tagged", []media.Chapter{{Name: "00:00:00.000"}, {Name: ""}}, "Tagged"},
		{"named", []media.Chapter{{Name: "Intro"}, {Name: "Chapter 2"}}, "Named"},
		{"none", nil, ""},
	}
	for _, tt := range tests {
		if got := ChapterType(tt.chapters); got != tt.want {
			t.Errorf("%s: ChapterType = %q, want %q", tt.name, got, tt.want)
		}
	}
	ctx := &Context{Primary: &media.Info{Menu: []media.Menu{{Chapters: numbered}}}}
	if got := resolve(t, ctx, "chapter_type"); got != "Numbered (1 - 12)" {
		t.Errorf("chapter_type = %q", got)
	}
}

func TestNfoFileTokens(t *testing.T) {
	ctx := &Context{
		PrimaryPath: "/m/Movie.2024.mkv",
		SourcePath:  "/src/Movie.2024.Source.m2ts",
		Primary: &media.Info{
			General: &media.General{
				FileSize:        8469985859,
				FileSizeDisplay: "7.89 GiB",
				DurationMS:      8074065,
				DurationDisplay: []string{"2 h 14 min", "2 h 14 min 34 s 65 ms", "2 h 14 min", "02:14:34.065"},
			},
			Video: []media.Video{{Format: "AVC", Width: 1920, Height: 800, DisplayAspectRatio: "2.40:1", FrameRate: "23.976", FormatProfile: "High@L4.1"}},
			Text: []media.Text{
				{Format: "PGS", Language: "fr"},
				{Format: "UTF-8", Language: "en"},
				{Format: "ASS", Language: "de"},
				{Format: "VobSub", Language: "en"},
			},
			Report: "General\nComplete name                            : /m/Movie.2024.mkv\n",
		},
		ReleaseNotes: "Notes",
	}
	want := map[string]string{
		"source_file":             "Movie.2024.Source.m2ts",
		"source_file_no_ext":      "Movie.2024.Source",
		"file_size_bytes":         "8469985859",
		"file_size":               "7.89 GiB",
		"duration_milliseconds":   "8074065",
		"duration_short":          "2 h 14 min",
		"duration_long":           "2 h 14 min 34 s 65 ms",
		"duration_detailed":       "02:14:34.065",
		"aspect_ratio":            "2.40:1",
		"video_frame_rate":        "23.976",
		"format_profile":          "High@L4.1",
		"subtitle_s":              "English, French",
		"video_bit_rate":          "7385 kbps",
		"video_bit_rate_num_only": "7385",
		"release_notes":           "Notes",
		"media_info":              "General\nComplete name                            : Movie.2024.mkv\n",
	}
	got := map[string]string{}
	for name := range want {
		got[name] = resolve(t, ctx, name)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("nfo tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScreenshots(t *testing.T) {
	dummy := NewState(&Context{DummyScreenshots: true}, nil)
	even, _ := dummy.Resolve("screen_shots_even_str")
	if len(even.List) != 6 || even.List[0] != "https://fakeimage.com/img/02.png" || even.List[5] != "https://fakeimage.com/img/12.png" {
		t.Fatalf("dummy even str = %v", even.List)
	}
	odd, _ := dummy.Resolve("screen_shots_odd_obj")
	if len(odd.Images) != 6 || odd.Images[0].MediumURL != "https://fakeimage.com/img/01md.png" {
		t.Fatalf("dummy odd obj = %v", odd.Images)
	}
	text, _ := dummy.Resolve("screen_shots")
	if !strings.HasPrefix(text.Text, "#### DUMMY SCREENSHOTS #### \n") {
		t.Fatalf("dummy screenshots = %q", text.Text)
	}
	cmpText, _ := dummy.Resolve("screen_shots_comparison")
	if !strings.Contains(cmpText.Text, "comparison tag") {
		t.Fatalf("dummy comparison = %q", cmpText.Text)
	}

	supplied := NewState(&Context{Screenshots: Screenshots{
		Formatted: "[img]a[/img]",
		EvenObj:   []tokens.Image{{URL: "https://img/2.png"}},
		OddStr:    []string{"https://img/1.png"},
	}}, nil)
	if v, _ := supplied.Resolve("screen_shots"); v.Text != "[img]a[/img]" {
		t.Errorf("screen_shots = %q", v.Text)
	}
	if v, _ := supplied.Resolve("screen_shots_even_obj"); len(v.Images) != 1 {
		t.Errorf("even obj = %v", v.Images)
	}
	if v, _ := supplied.Resolve("screen_shots_odd_str"); len(v.List) != 1 {
		t.Errorf("odd str = %v", v.List)
	}
	if v, _ := supplied.Resolve("screen_shots_even_str"); !v.IsEmpty() {
		t.Errorf("unset even str = %v", v.List)
	}
}

func TestProgramOverride(t *testing.T) {
	ctx := &Context{Program: Program{Name: "Forge", Version: "2.0", URL: "https://example.com"}}
	if got := resolve(t, ctx, "shared_with_bbcode"); got != "Shared with [url=https://example.com]Forge v2.0[/url]" {
		t.Fatalf("shared_with_bbcode = %q", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	calls := 0
	source := func(v string) func() string {
		return func() string {
			calls++
			return v
		}
	}
	if got := FirstNonEmpty(source(""), nil, source("b"), source("c")); got != "b" {
		t.Fatalf("FirstNonEmpty = %q", got)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
	if got := FirstNonEmpty(); got != "" {
		t.Fatalf("FirstNonEmpty() = %q", got)
	}
}
