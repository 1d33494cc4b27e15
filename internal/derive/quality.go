package derive

import (
	"regexp"
	"strconv"
	"strings"

	"nfoforge/internal/media"
	"nfoforge/internal/resolution"
)

// Quality is the source medium a release was made from.
type Quality int

const (
	QualitySDTV Quality = iota + 1
	QualityHDTV
	QualityDVD
	QualityWEBRip
	QualityWEBDL
	QualityBluRay
	QualityUHDBluRay
)

var qualityNames = map[Quality]string{
	QualitySDTV:      "SDTV",
	QualityHDTV:      "HDTV",
	QualityDVD:       "DVD",
	QualityWEBRip:    "WEBRip",
	QualityWEBDL:     "WEBDL",
	QualityBluRay:    "BluRay",
	QualityUHDBluRay: "UHD-BluRay",
}

func (q Quality) String() string {
	if name, ok := qualityNames[q]; ok {
		return name
	}
	return ""
}

// ParseQuality maps an override value to a Quality. Matching ignores case
// and accepts both the short forms ("webdl", "uhd bluray") and the names
// String returns.
func ParseQuality(value string) (Quality, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "webdl", "web-dl":
		return QualityWEBDL, true
	case "webrip":
		return QualityWEBRip, true
	case "bluray":
		return QualityBluRay, true
	case "uhd bluray", "uhd-bluray":
		return QualityUHDBluRay, true
	case "dvd":
		return QualityDVD, true
	case "hdtv":
		return QualityHDTV, true
	case "sdtv":
		return QualitySDTV, true
	}
	return 0, false
}

var webDLPattern = regexp.MustCompile(`(?i)web[-_.]?dl`)

// quality resolves the source medium: an override wins, then the filename
// guess (the source file's guess when present), then a technical heuristic
// that can promote BluRay to UHD-BluRay.
func (s *State) quality() Quality {
	if v, ok := s.ctx.override("source"); ok {
		if q, ok := ParseQuality(v); ok {
			return q
		}
	}

	source := strings.ToLower(s.ctx.guess().Source)
	if s.ctx.SourceGuess != nil && s.ctx.SourceGuess.Source != "" {
		source = strings.ToLower(s.ctx.SourceGuess.Source)
	}

	var q Quality
	switch {
	case strings.Contains(source, "ultra hd blu-ray"):
		q = QualityUHDBluRay
	case strings.Contains(source, "blu-ray"):
		q = QualityBluRay
	case strings.Contains(source, "dvd"):
		q = QualityDVD
	case strings.Contains(source, "hdtv"):
		q = QualityHDTV
	case strings.Contains(source, "web"):
		if webDLPattern.MatchString(s.ctx.primaryName()) {
			q = QualityWEBDL
		} else {
			q = QualityWEBRip
		}
	default:
		q = QualityBluRay
	}

	if q == QualityBluRay {
		return s.blurayHeuristic()
	}
	return q
}

// blurayHeuristic inspects the source file (else the primary) and upgrades
// HDR HEVC or anything HEVC above 1080p to UHD-BluRay.
func (s *State) blurayHeuristic() Quality {
	info := s.ctx.Source
	track, ok := info.FirstVideo()
	if !ok {
		info = s.ctx.Primary
		track, ok = info.FirstVideo()
	}
	if !ok {
		return QualityBluRay
	}
	height := s.detectHeight(info)
	if height == 0 {
		return QualityBluRay
	}
	switch {
	case height <= 1080 && track.Format == "HEVC" && strings.Contains(track.HDRFormat, "HDR"):
		return QualityUHDBluRay
	case height > 1080 && track.Format == "HEVC":
		return QualityUHDBluRay
	}
	return QualityBluRay
}

// detectHeight is the commercial height of info, falling back to the guessed
// screen size.
func (s *State) detectHeight(info *media.Info) int {
	if h := resolution.DetectHeight(info); h > 0 {
		return h
	}
	return screenSizeHeight(s.ctx.guess().ScreenSize)
}

var leadingDigits = regexp.MustCompile(`^\d+`)

func screenSizeHeight(value string) int {
	n, err := strconv.Atoi(leadingDigits.FindString(value))
	if err != nil {
		return 0
	}
	return n
}
