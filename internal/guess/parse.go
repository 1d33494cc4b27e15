package guess

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/MunifTanjim/go-ptt"
)

var (
	remuxPattern  = regexp.MustCompile(`(?i)\bremux\b`)
	hybridPattern = regexp.MustCompile(`(?i)\bhybrid\b`)
	openMatte     = regexp.MustCompile(`(?i)\bopen[\s._-]*matte\b`)
	imaxPattern   = regexp.MustCompile(`(?i)\bimax\b`)
	editionWords  = []struct {
		pattern *regexp.Regexp
		name    string
	}{
		{regexp.MustCompile(`(?i)\bdirector'?s?[\s._-]*cut\b`), "Director's Cut"},
		{regexp.MustCompile(`(?i)\btheatrical\b`), "Theatrical"},
		{regexp.MustCompile(`(?i)\bcriterion\b`), "Criterion"},
		{regexp.MustCompile(`(?i)\bremastered\b`), "Remastered"},
	}
)

// Parse guesses release attributes from a file name or path. Only the base
// name is examined.
func Parse(filename string) *Result {
	name := filepath.Base(filename)
	info := ptt.Parse(name)

	r := &Result{
		Title:        strings.TrimSpace(info.Title),
		ScreenSize:   screenSize(info.Resolution),
		VideoCodec:   videoCodec(info.Codec),
		ColorDepth:   colorDepth(info.BitDepth),
		ReleaseGroup: info.Group,
		Container:    info.Container,
		Type:         "movie",
	}
	if year, err := strconv.Atoi(info.Year); err == nil {
		r.Year = year
	}
	if len(info.Seasons) > 0 {
		season := info.Seasons[0]
		r.Season = &season
		r.Type = "episode"
	}
	if len(info.Episodes) > 0 {
		episode := info.Episodes[0]
		r.Episode = &episode
		r.Type = "episode"
	}
	for _, audio := range info.Audio {
		r.AudioCodec = append(r.AudioCodec, audioCodec(audio))
	}
	if len(info.Channels) > 0 {
		r.AudioChannels = info.Channels[0]
	}

	quality := strings.ToLower(info.Quality)
	r.Source = source(quality, r.ScreenSize)
	if strings.Contains(quality, "remux") || remuxPattern.MatchString(name) {
		r.Other = append(r.Other, "Remux")
	}
	if strings.Contains(quality, "rip") {
		r.Other = append(r.Other, "Rip")
	}
	for _, hdr := range info.HDR {
		if flag := hdrFlag(hdr); flag != "" && !r.Other.Has(flag) {
			r.Other = append(r.Other, flag)
		}
	}
	if hybridPattern.MatchString(name) {
		r.Other = append(r.Other, "Hybrid")
	}
	if openMatte.MatchString(name) {
		r.Other = append(r.Other, "Open Matte")
	}
	if info.Proper {
		r.Other = append(r.Other, "Proper")
	}
	if info.ThreeD != "" {
		r.Other = append(r.Other, "3D")
	}

	if info.Extended {
		r.Edition = append(r.Edition, "Extended")
	}
	if info.Unrated {
		r.Edition = append(r.Edition, "Unrated")
	}
	if imaxPattern.MatchString(name) {
		r.Edition = append(r.Edition, "IMAX")
	}
	for _, ed := range editionWords {
		if ed.pattern.MatchString(name) {
			r.Edition = append(r.Edition, ed.name)
		}
	}

	var langs []string
	for _, lang := range info.Languages {
		switch strings.ToLower(lang) {
		case "multi audio", "multi subs", "multi":
			langs = append(langs, "mul")
		case "dual audio":
			r.Other = append(r.Other, "Dual Audio")
		default:
			langs = append(langs, lang)
		}
	}
	switch len(langs) {
	case 0:
	case 1:
		r.Language = langs[0]
	default:
		r.Language = langs
	}
	return r
}

func source(quality, screenSize string) string {
	switch {
	case quality == "":
		return ""
	case strings.Contains(quality, "bluray"), strings.Contains(quality, "bdrip"),
		strings.Contains(quality, "brrip"), strings.Contains(quality, "remux"):
		if screenSize == "2160p" {
			return "Ultra HD Blu-ray"
		}
		return "Blu-ray"
	case strings.Contains(quality, "web"):
		return "Web"
	case strings.Contains(quality, "dvd"):
		return "DVD"
	case strings.Contains(quality, "hdtv"), strings.Contains(quality, "pdtv"):
		return "HDTV"
	case strings.Contains(quality, "cam"):
		return "Camera"
	case strings.Contains(quality, "telesync"):
		return "Telesync"
	case strings.Contains(quality, "telecine"):
		return "Telecine"
	}
	return ""
}

func screenSize(resolution string) string {
	res := strings.ToLower(strings.TrimSpace(resolution))
	switch res {
	case "":
		return ""
	case "4k", "uhd":
		return "2160p"
	case "8k":
		return "4320p"
	}
	return res
}

func videoCodec(codec string) string {
	switch strings.ToLower(codec) {
	case "":
		return ""
	case "avc", "h264", "x264":
		return "H.264"
	case "hevc", "h265", "x265":
		return "H.265"
	case "av1":
		return "AV1"
	case "xvid":
		return "Xvid"
	case "divx":
		return "DivX"
	case "mpeg", "mpeg2":
		return "MPEG-2"
	}
	return codec
}

func audioCodec(audio string) string {
	lowered := strings.ToLower(audio)
	switch {
	case strings.Contains(lowered, "atmos"):
		return "Dolby Atmos"
	case strings.Contains(lowered, "truehd"):
		return "Dolby TrueHD"
	case strings.Contains(lowered, "dts lossless"), strings.Contains(lowered, "dts-hd"):
		return "DTS-HD"
	case strings.Contains(lowered, "dts"):
		return "DTS"
	case strings.Contains(lowered, "ddp"), strings.Contains(lowered, "eac3"), strings.Contains(lowered, "dd+"):
		return "Dolby Digital Plus"
	case strings.Contains(lowered, "dd"), strings.Contains(lowered, "ac3"):
		return "Dolby Digital"
	case strings.Contains(lowered, "aac"):
		return "AAC"
	case strings.Contains(lowered, "flac"):
		return "FLAC"
	case strings.Contains(lowered, "opus"):
		return "Opus"
	}
	return audio
}

func colorDepth(bitDepth string) string {
	digits := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(bitDepth)), "bit")
	if _, err := strconv.Atoi(digits); err != nil {
		return ""
	}
	return digits + "-bit"
}

func hdrFlag(hdr string) string {
	switch strings.ToUpper(hdr) {
	case "DV":
		return "Dolby Vision"
	case "HDR10+":
		return "HDR10+"
	case "HDR", "HDR10":
		return "HDR10"
	}
	return ""
}
