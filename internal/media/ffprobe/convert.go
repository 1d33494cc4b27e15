package ffprobe

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"nfoforge/internal/language"
	"nfoforge/internal/media"
)

var videoFormats = map[string]string{
	"h264":       "AVC",
	"hevc":       "HEVC",
	"av1":        "AV1",
	"vc1":        "VC-1",
	"vp8":        "VP8",
	"vp9":        "VP9",
	"mpeg1video": "MPEG Video",
	"mpeg2video": "MPEG Video",
	"mpeg4":      "MPEG-4 Visual",
}

var audioFormats = map[string]string{
	"ac3":    "AC-3",
	"eac3":   "E-AC-3",
	"truehd": "MLP FBA",
	"dts":    "DTS",
	"aac":    "AAC",
	"flac":   "FLAC",
	"opus":   "Opus",
	"mp2":    "MPEG Audio",
	"mp3":    "MPEG Audio",
	"vorbis": "Vorbis",
}

var textFormats = map[string]string{
	"subrip":            "UTF-8",
	"hdmv_pgs_subtitle": "PGS",
	"dvd_subtitle":      "VobSub",
	"ass":               "ASS",
	"mov_text":          "Timed Text",
}

// ToInfo maps an ffprobe result onto the MediaInfo-shaped track model. Fields
// ffprobe cannot report (stream sizes on most containers, compression mode)
// are left empty.
func ToInfo(r Result) *media.Info {
	info := &media.Info{General: convertGeneral(r)}
	for _, s := range r.Streams {
		switch strings.ToLower(s.CodecType) {
		case "video":
			if s.Disposition["attached_pic"] == 1 {
				continue
			}
			info.Video = append(info.Video, convertVideo(s))
		case "audio":
			info.Audio = append(info.Audio, convertAudio(s))
		case "subtitle":
			info.Text = append(info.Text, convertText(s))
		}
	}
	if len(r.Chapters) > 0 {
		menu := media.Menu{}
		for _, ch := range r.Chapters {
			menu.Chapters = append(menu.Chapters, media.Chapter{
				Start: formatClock(parseFloat(ch.StartTime)),
				Name:  ch.Tags["title"],
			})
		}
		info.Menu = append(info.Menu, menu)
	}
	return info
}

func convertGeneral(r Result) *media.General {
	durationMS := r.DurationSeconds() * 1000
	if math.IsNaN(durationMS) {
		durationMS = 0
	}
	g := &media.General{
		CompleteName:   r.Format.Filename,
		FileSize:       r.SizeBytes(),
		DurationMS:     durationMS,
		OverallBitRate: r.BitRate(),
	}
	if g.FileSize > 0 {
		g.FileSizeDisplay = formatSize(g.FileSize)
	}
	if durationMS > 0 {
		g.DurationDisplay = durationForms(durationMS)
	}
	if g.OverallBitRate > 0 {
		g.OverallBitRateDisplay = formatBitRate(g.OverallBitRate)
	}
	return g
}

func convertVideo(s Stream) media.Video {
	v := media.Video{
		ID:                 strconv.Itoa(s.Index + 1),
		Format:             videoFormats[strings.ToLower(s.CodecName)],
		FormatProfile:      s.Profile,
		Width:              s.Width,
		Height:             s.Height,
		DisplayAspectRatio: aspectRatio(s),
		FrameRate:          frameRate(s.AvgFrameRate),
		ScanType:           scanType(s.FieldOrder),
		BitDepth:           bitDepth(s),
		BitRate:            parseInt(s.BitRate),
		ColorSpace:         colorSpace(s.PixFmt),
	}
	if v.Format == "" {
		v.Format = strings.ToUpper(s.CodecName)
	}
	switch strings.ToLower(s.CodecName) {
	case "mpeg1video":
		v.FormatVersion = "Version 1"
	case "mpeg2video":
		v.FormatVersion = "Version 2"
	}
	if d := parseFloat(s.Duration); d > 0 && !math.IsNaN(d) {
		v.DurationMS = d * 1000
	}
	if v.BitRate > 0 {
		v.BitRateDisplay = formatBitRate(v.BitRate)
	}
	switch strings.ToLower(s.ColorTransfer) {
	case "smpte2084":
		v.TransferCharacteristics = "PQ"
	case "arib-std-b67":
		v.TransferCharacteristics = "HLG"
	}
	v.HDRFormat = hdrFormat(s, v.TransferCharacteristics)
	if strings.Contains(strings.ToLower(s.Profile), "stereo") {
		v.MultiviewCount = 2
	}
	applyLanguage(s.Tags, &v.Language, &v.OtherLanguage)
	return v
}

func convertAudio(s Stream) media.Audio {
	codec := strings.ToLower(s.CodecName)
	a := media.Audio{
		ID:            strconv.Itoa(s.Index + 1),
		Format:        audioFormats[codec],
		CodecID:       s.CodecTag,
		Channels:      strconv.Itoa(s.Channels),
		ChannelLayout: s.ChannelLayout,
		BitRate:       parseInt(s.BitRate),
		Title:         s.Tags["title"],
	}
	if strings.HasPrefix(codec, "pcm_") {
		a.Format = "PCM"
	}
	if a.Format == "" {
		a.Format = strings.ToUpper(s.CodecName)
	}
	if s.Channels > 0 {
		a.ChannelsDisplay = fmt.Sprintf("%d channel%s", s.Channels, pluralS(s.Channels))
	}
	a.ChannelPositions = channelPositions(s.ChannelLayout)
	if rate := parseInt(s.SampleRate); rate > 0 {
		a.SamplingRate = int(rate)
		a.SamplingRateDisplay = strconv.FormatFloat(float64(rate)/1000, 'f', 1, 64) + " kHz"
	}
	if a.BitRate > 0 {
		a.BitRateDisplay = formatBitRate(a.BitRate)
	}
	a.CommercialName, a.FormatDisplay = audioCommercial(codec, s.Profile)
	switch codec {
	case "flac", "truehd", "alac":
		a.CompressionMode = "Lossless"
	case "ac3", "eac3", "aac", "opus", "mp3", "mp2", "vorbis":
		a.CompressionMode = "Lossy"
	}
	if strings.HasPrefix(codec, "pcm_") {
		a.CompressionMode = "Lossless"
	}
	applyLanguage(s.Tags, &a.Language, &a.OtherLanguage)
	return a
}

func convertText(s Stream) media.Text {
	t := media.Text{
		ID:     strconv.Itoa(s.Index + 1),
		Format: textFormats[strings.ToLower(s.CodecName)],
		Title:  s.Tags["title"],
		Forced: "No",
	}
	if t.Format == "" {
		t.Format = strings.ToUpper(s.CodecName)
	}
	if s.Disposition["forced"] == 1 {
		t.Forced = "Yes"
	}
	applyLanguage(s.Tags, &t.Language, &t.OtherLanguage)
	return t
}

func applyLanguage(tags map[string]string, code *string, other *[]string) {
	raw := language.ExtractFromTags(tags)
	if raw == "" {
		return
	}
	*code = raw
	if lang, ok := language.Resolve(raw); ok {
		*other = []string{lang.Name, lang.ISO1, lang.ISO2}
	}
}

// hdrFormat builds a MediaInfo-style "HDR format" string from side data.
func hdrFormat(s Stream, transfer string) string {
	var parts []string
	var hdr10Plus bool
	for _, sd := range s.SideData {
		lowered := strings.ToLower(sd.Type)
		switch {
		case strings.Contains(lowered, "dovi configuration"):
			desc := fmt.Sprintf("Dolby Vision, Version %d.0, Profile %d (dvhe.%02d)", max(sd.DVVersionMaj, 1), sd.DVProfile, sd.DVProfile)
			if sd.DVProfile != 5 && transfer == "PQ" {
				desc += ", HDR10 compatible"
			}
			parts = append(parts, desc)
		case strings.Contains(lowered, "hdr10+"), strings.Contains(lowered, "2094-40"):
			hdr10Plus = true
		}
	}
	if hdr10Plus {
		parts = append(parts, "SMPTE ST 2094 App 4, HDR10+ Profile B compatible")
	}
	if len(parts) == 0 && transfer == "PQ" {
		parts = append(parts, "SMPTE ST 2086, HDR10 compatible")
	}
	return strings.Join(parts, " / ")
}

func audioCommercial(codec, profile string) (string, string) {
	p := strings.ToLower(profile)
	switch codec {
	case "ac3":
		return "Dolby Digital", ""
	case "eac3":
		if strings.Contains(p, "atmos") {
			return "Dolby Digital Plus with Dolby Atmos", "E-AC-3 JOC"
		}
		return "Dolby Digital Plus", ""
	case "truehd":
		if strings.Contains(p, "atmos") {
			return "Dolby TrueHD with Dolby Atmos", "MLP FBA 16-ch"
		}
		return "Dolby TrueHD", ""
	case "dts":
		switch {
		case strings.Contains(p, "dts:x"):
			return "DTS-HD Master Audio", "DTS XLL X"
		case strings.Contains(p, "ma"):
			return "DTS-HD Master Audio", "DTS XLL"
		case strings.Contains(p, "hra"), strings.Contains(p, "hi res"):
			return "DTS-HD High Resolution Audio", "DTS XBR"
		case strings.Contains(p, "es"):
			return "DTS-ES", "DTS ES"
		}
		return "DTS", ""
	}
	return "", ""
}

var layoutPositions = map[string]string{
	"mono":           "Front: C",
	"stereo":         "Front: L R",
	"2.1":            "Front: L R, LFE",
	"5.0":            "Front: L C R, Side: L R",
	"5.0(side)":      "Front: L C R, Side: L R",
	"5.1":            "Front: L C R, Side: L R, LFE",
	"5.1(side)":      "Front: L C R, Side: L R, LFE",
	"6.1":            "Front: L C R, Side: L R, Back: C, LFE",
	"7.1":            "Front: L C R, Side: L R, Back: L R, LFE",
	"7.1(wide)":      "Front: L C R, Side: L R, Back: L R, LFE",
	"7.1(wide-side)": "Front: L C R, Side: L R, Back: L R, LFE",
}

func channelPositions(layout string) string {
	layout = strings.ToLower(strings.TrimSpace(layout))
	if pos, ok := layoutPositions[layout]; ok {
		return pos
	}
	if strings.Contains(layout, "lfe") || strings.HasSuffix(layout, ".1") {
		return "LFE"
	}
	return ""
}

func aspectRatio(s Stream) string {
	if s.Width <= 0 || s.Height <= 0 {
		return ""
	}
	ratio := float64(s.Width) / float64(s.Height)
	if parts := strings.Split(s.DisplayAspect, ":"); len(parts) == 2 {
		num, errN := strconv.ParseFloat(parts[0], 64)
		den, errD := strconv.ParseFloat(parts[1], 64)
		if errN == nil && errD == nil && num > 0 && den > 0 {
			ratio = num / den
		}
	}
	switch {
	case math.Abs(ratio-16.0/9.0) < 0.01:
		return "16:9"
	case math.Abs(ratio-4.0/3.0) < 0.01:
		return "4:3"
	}
	return strconv.FormatFloat(ratio, 'f', 2, 64) + ":1"
}

func frameRate(avg string) string {
	parts := strings.Split(avg, "/")
	if len(parts) != 2 {
		return ""
	}
	num, errN := strconv.ParseFloat(parts[0], 64)
	den, errD := strconv.ParseFloat(parts[1], 64)
	if errN != nil || errD != nil || den == 0 || num == 0 {
		return ""
	}
	return strconv.FormatFloat(num/den, 'f', 3, 64)
}

func scanType(fieldOrder string) string {
	switch strings.ToLower(fieldOrder) {
	case "", "progressive", "unknown":
		return "Progressive"
	}
	return "Interlaced"
}

func bitDepth(s Stream) int {
	if n, err := strconv.Atoi(strings.TrimSpace(s.BitsPerRawSample)); err == nil && n > 0 {
		return n
	}
	switch {
	case strings.Contains(s.PixFmt, "12le"), strings.Contains(s.PixFmt, "12be"):
		return 12
	case strings.Contains(s.PixFmt, "10le"), strings.Contains(s.PixFmt, "10be"):
		return 10
	case s.PixFmt != "":
		return 8
	}
	return 0
}

func colorSpace(pixFmt string) string {
	switch {
	case strings.HasPrefix(pixFmt, "yuv"):
		return "YUV"
	case strings.HasPrefix(pixFmt, "rgb"), strings.HasPrefix(pixFmt, "gbr"):
		return "RGB"
	}
	return ""
}

func formatSize(bytes int64) string {
	const unit = 1024.0
	value := float64(bytes)
	units := []string{"Bytes", "KiB", "MiB", "GiB", "TiB"}
	idx := 0
	for value >= unit && idx < len(units)-1 {
		value /= unit
		idx++
	}
	if idx == 0 {
		return fmt.Sprintf("%d Bytes", bytes)
	}
	return strconv.FormatFloat(value, 'f', 2, 64) + " " + units[idx]
}

func formatBitRate(bps int64) string {
	kbps := float64(bps) / 1000
	if kbps >= 10000 {
		return strconv.FormatFloat(kbps/1000, 'f', 1, 64) + " Mb/s"
	}
	return strconv.FormatFloat(math.Round(kbps), 'f', 0, 64) + " kb/s"
}

// durationForms returns the MediaInfo other_duration forms: short, long,
// short again, clock and clock with frames omitted.
func durationForms(ms float64) []string {
	total := int64(math.Round(ms))
	h := total / 3_600_000
	m := (total / 60_000) % 60
	s := (total / 1000) % 60
	rem := total % 1000

	var short string
	switch {
	case h > 0:
		short = fmt.Sprintf("%d h %d min", h, m)
	case m > 0:
		short = fmt.Sprintf("%d min %d s", m, s)
	default:
		short = fmt.Sprintf("%d s %d ms", s, rem)
	}
	long := fmt.Sprintf("%d h %d min %d s %d ms", h, m, s, rem)
	if h == 0 {
		long = fmt.Sprintf("%d min %d s %d ms", m, s, rem)
	}
	clock := fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, rem)
	return []string{short, long, short, clock, clock}
}

func formatClock(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	return durationForms(seconds * 1000)[3]
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// FileName returns the base name ffprobe reported for the container.
func (r Result) FileName() string {
	if r.Format.Filename == "" {
		return ""
	}
	return filepath.Base(r.Format.Filename)
}
