package derive

import (
	"regexp"
	"strconv"
	"strings"

	"nfoforge/internal/language"
	"nfoforge/internal/media"
	"nfoforge/internal/resolution"
	"nfoforge/internal/textutil"
)

// videoCodec names the primary video stream for the release quality. The
// embedded format wins over the filename guess.
func (s *State) videoCodec() string {
	return FirstNonEmpty(
		func() string { return s.embeddedCodec(s.quality()) },
		s.guessedCodec,
	)
}

func (s *State) guessedCodec() string {
	codec := s.ctx.guess().VideoCodec
	switch codec {
	case "H.264", "H.265":
		return strings.Replace(codec, "H.", "x", 1)
	}
	return codec
}

func (s *State) isRemux() bool {
	if _, ok := s.ctx.override("remux"); ok {
		return true
	}
	return strings.Contains(strings.ToLower(s.ctx.primaryStem()), "remux")
}

func (s *State) embeddedCodec(q Quality) string {
	track, ok := s.ctx.Primary.FirstVideo()
	if !ok {
		return ""
	}
	switch track.Format {
	case "AV1", "VC-1", "VP8", "VP9":
		return track.Format
	case "AVC", "HEVC":
		remux := map[string]string{"AVC": "AVC", "HEVC": "HEVC"}
		broadcast := map[string]string{"AVC": "H.264", "HEVC": "H.265"}
		encode := map[string]string{"AVC": "x264", "HEVC": "x265"}
		switch {
		case s.isRemux():
			return remux[track.Format]
		case q == QualityWEBDL || q == QualityHDTV:
			return broadcast[track.Format]
		default:
			return encode[track.Format]
		}
	case "MPEG Video":
		return mpegCodec(track.FormatVersion)
	}
	return ""
}

var firstDigit = regexp.MustCompile(`\d`)

func mpegCodec(version string) string {
	if d := firstDigit.FindString(version); d != "" {
		if n, _ := strconv.Atoi(d); n > 1 {
			return "MPEG-" + d
		}
	}
	return "MPEG"
}

var dynamicRangeFallback = map[string]string{
	"SDR":       "SDR",
	"PQ":        "PQ",
	"HLG":       "HLG",
	"HDR10":     "HDR10",
	"HDR10+":    "HDR10+",
	"DV":        "DV",
	"DV HDR10":  "DV HDR10",
	"DV HDR10+": "DV HDR10+",
}

var dynamicRangeBuckets = []struct {
	height int
	label  string
}{
	{720, "720p"},
	{1080, "1080p"},
	{2160, "2160p"},
}

func normalizeRange(value string) string {
	return strings.ToLower(strings.ReplaceAll(value, " ", ""))
}

// dynamicRange produces the configured HDR label, or "" when the resolution
// bucket is disabled or nothing enabled matches.
func (s *State) dynamicRange() string {
	cfg := s.ctx.DynamicRange
	track, ok := s.ctx.Primary.FirstVideo()
	if cfg == nil || !ok {
		return ""
	}

	height := s.detectHeight(s.ctx.Primary)
	bucket := ""
	for _, b := range dynamicRangeBuckets {
		if absInt(height-b.height) < 100 {
			bucket = b.label
			break
		}
	}
	if bucket == "" || !cfg.Resolutions[bucket] {
		return ""
	}

	enabled := make(map[string]string, len(cfg.Types))
	for name, on := range cfg.Types {
		if on {
			enabled[normalizeRange(name)] = name
		}
	}
	label := func(name string) string {
		if custom := strings.TrimSpace(cfg.CustomStrings[name]); custom != "" {
			return custom
		}
		if fallback, ok := dynamicRangeFallback[name]; ok {
			return fallback
		}
		return name
	}

	// Candidates come most specific first, so "DV HDR10+" wins over "DV"
	// and a Dolby Vision layer wins over its transfer label.
	candidates := hdrCandidates(track)
	out := ""
	for _, candidate := range candidates {
		if name, ok := enabled[normalizeRange(candidate)]; ok {
			out = label(name)
			break
		}
	}
	if out == "" && cfg.Types["SDR"] && len(candidates) == 0 {
		out = label("SDR")
	}
	for _, t := range []string{"PQ", "HLG"} {
		if track.TransferCharacteristics != t || !cfg.Types[t] {
			continue
		}
		if strings.Contains(normalizeRange(out), normalizeRange(t)) {
			continue
		}
		if out == "" {
			out = label(t)
		} else {
			out += " " + label(t)
		}
	}
	return out
}

// hdrCandidates lists the HDR labels the track qualifies for, most specific
// first.
func hdrCandidates(track media.Video) []string {
	var out []string
	hdr := track.HDRFormat
	if hdr != "" {
		dv := strings.Contains(hdr, "Dolby Vision")
		plus := strings.Contains(hdr, "HDR10+")
		hdr10 := strings.Contains(hdr, "HDR10")
		switch {
		case dv && plus:
			out = append(out, "DV HDR10+")
		case dv && hdr10:
			out = append(out, "DV HDR10")
		case dv:
			out = append(out, "DV")
		}
		if plus {
			out = append(out, "HDR10+")
		} else if hdr10 {
			out = append(out, "HDR10")
		}
	}
	for _, t := range []string{"PQ", "HLG"} {
		if track.TransferCharacteristics == t {
			out = append(out, t)
		}
	}
	return out
}

// dynamicRangeType labels the HDR flavour from the guess flags, overridden
// by the embedded HDR format when the primary file reports one.
func (s *State) dynamicRangeType(includeSDR, over1080Only bool) string {
	if over1080Only && s.detectHeight(s.ctx.Primary) <= 1080 {
		return ""
	}
	other := s.ctx.guess().Other
	dv := other.Has("Dolby Vision")
	plus := other.Has("HDR10+")
	hdr10 := other.Has("HDR10")
	dvLabel := "DV"
	var hlg, pq bool

	if track, ok := s.ctx.Primary.FirstVideo(); ok {
		if hdr := track.HDRFormat; hdr != "" {
			dv = strings.Contains(hdr, "Dolby Vision")
			if dv && !strings.Contains(hdr, "dvhe.05") {
				dvLabel = "DV HDR"
			}
			plus = strings.Contains(hdr, "HDR10+")
			hdr10 = strings.Contains(hdr, "HDR10")
		}
		hlg = track.TransferCharacteristics == "HLG"
		pq = track.TransferCharacteristics == "PQ"
	}

	switch {
	case dv && !plus:
		return dvLabel
	case dv && plus:
		return "DV HDR10Plus"
	case plus:
		return "HDR10Plus"
	case hdr10:
		return "HDR"
	case hlg:
		return "HLG"
	case pq:
		return "PQ"
	case includeSDR:
		return "SDR"
	}
	return ""
}

var threeDPattern = regexp.MustCompile(`(?i)\b[12]\d{3}\b.*\b(3d|sbs|half[ .-]ou|half[ .-]sbs)\b|\b(BluRay3D|BD3D)\b`)

func (s *State) video3D() string {
	if threeDPattern.MatchString(s.ctx.primaryName()) {
		return "3D"
	}
	if track, ok := s.ctx.Primary.FirstVideo(); ok {
		if strings.Contains(track.FormatProfile, "Stereo") || track.MultiviewCount >= 2 {
			return "3D"
		}
	}
	return ""
}

// bitDepth returns "10-Bit" style depth; the dash form upper-cases any "b",
// the space form swaps the dash for a space and title-cases the result.
func (s *State) bitDepth(dash bool) string {
	depth := s.ctx.guess().ColorDepth
	if track, ok := s.ctx.Primary.FirstVideo(); ok && track.BitDepth > 0 {
		depth = strconv.Itoa(track.BitDepth) + "-Bit"
	}
	if dash {
		return strings.ReplaceAll(depth, "b", "B")
	}
	return textutil.TitleCase(strings.ReplaceAll(depth, "-", " "))
}

func (s *State) videoFormat() string {
	track, _ := s.ctx.Primary.FirstVideo()
	return track.Format
}

func (s *State) videoWidth() string {
	if track, ok := s.ctx.Primary.FirstVideo(); ok && track.Width > 0 {
		return strconv.Itoa(track.Width)
	}
	return ""
}

func (s *State) videoHeight() string {
	if track, ok := s.ctx.Primary.FirstVideo(); ok && track.Height > 0 {
		return strconv.Itoa(track.Height)
	}
	return ""
}

// videoLanguage resolves the primary video track's language; part 0 asks
// for the English name.
func (s *State) videoLanguage(part int) string {
	track, ok := s.ctx.Primary.FirstVideo()
	if !ok {
		return ""
	}
	lang, ok := language.FromCandidates(track.Language, track.OtherLanguage)
	if !ok {
		return ""
	}
	return languagePart(lang, part)
}

func languagePart(lang language.Language, part int) string {
	switch part {
	case 1:
		return lang.ISO1
	case 2:
		return lang.ISO2
	}
	return lang.Name
}

// commercialResolution is the "1080p"/"576i" label with the guessed screen
// size as a fallback.
func (s *State) commercialResolution() string {
	return FirstNonEmpty(
		func() string { return resolution.Detect(s.ctx.Primary, false) },
		func() string { return s.ctx.guess().ScreenSize },
	)
}

func (s *State) aspectRatio() string {
	track, _ := s.ctx.Primary.FirstVideo()
	return track.DisplayAspectRatio
}

func (s *State) frameRate() string {
	track, _ := s.ctx.Primary.FirstVideo()
	return track.FrameRate
}

func (s *State) formatProfile() string {
	track, _ := s.ctx.Primary.FirstVideo()
	return track.FormatProfile
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
