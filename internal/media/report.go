package media

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const reportLabelWidth = 41

var completeNamePattern = regexp.MustCompile(`(?m)^Complete\sname\s+?:\s(.+?)\r?$`)

// CleanseReport rewrites the "Complete name" line of a MediaInfo report so it
// carries only the file name, and normalizes line endings.
func CleanseReport(report string) string {
	report = strings.ReplaceAll(report, "\r\n", "\n")
	match := completeNamePattern.FindStringSubmatchIndex(report)
	if match == nil {
		return report
	}
	full := strings.TrimSpace(report[match[2]:match[3]])
	base := filepath.Base(strings.ReplaceAll(full, "\\", "/"))
	return report[:match[2]] + base + report[match[3]:]
}

// ShortReport renders a stripped-down MediaInfo-style report from the
// structured tracks.
func ShortReport(info *Info) string {
	if info == nil {
		return ""
	}
	var b strings.Builder
	line := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(padLabel(label))
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte('\n')
	}

	if info.General != nil {
		g := info.General
		b.WriteString("General\n")
		if g.CompleteName != "" {
			line("Complete name", filepath.Base(strings.ReplaceAll(g.CompleteName, "\\", "/")))
		}
		line("File size", g.FileSizeDisplay)
		line("Duration", first(g.DurationDisplay))
		line("Overall bit rate mode", g.OverallBitRateMode)
		line("Overall bit rate", g.OverallBitRateDisplay)
		line("Frame rate", g.FrameRate)
		b.WriteByte('\n')
	}

	for _, v := range info.Video {
		b.WriteString("Video\n")
		line("ID", v.ID)
		line("Format", v.Format)
		line("Format profile", v.FormatProfile)
		line("HDR format", v.HDRFormat)
		line("Bit rate", v.BitRateDisplay)
		if v.Width > 0 {
			line("Width", groupDigits(v.Width)+" pixels")
		}
		if v.Height > 0 {
			line("Height", groupDigits(v.Height)+" pixels")
		}
		line("Display aspect ratio", v.DisplayAspectRatio)
		if v.FrameRate != "" {
			line("Frame rate", v.FrameRate+" FPS")
		}
		line("Color space", v.ColorSpace)
		line("Chroma subsampling", v.ChromaSubsampling)
		if v.BitDepth > 0 {
			line("Bit depth", strconv.Itoa(v.BitDepth)+" bits")
		}
		b.WriteByte('\n')
	}

	for idx, a := range info.Audio {
		fmt.Fprintf(&b, "Audio #%d\n", idx+1)
		line("ID", a.ID)
		line("Commercial name", a.CommercialName)
		line("Codec ID", a.CodecID)
		line("Bit rate", a.BitRateDisplay)
		line("Channel(s)", a.ChannelsDisplay)
		line("ChannelLayout_Original", a.ChannelLayout)
		line("Sampling rate", a.SamplingRateDisplay)
		if a.BitDepth > 0 {
			line("Bit depth", strconv.Itoa(a.BitDepth)+" bits")
		}
		line("Language", displayLanguage(a.Language, a.OtherLanguage))
		b.WriteByte('\n')
	}

	for idx, t := range info.Text {
		fmt.Fprintf(&b, "Text #%d\n", idx+1)
		line("ID", t.ID)
		line("Format", t.Format)
		line("Language", displayLanguage(t.Language, t.OtherLanguage))
		line("Title", t.Title)
		b.WriteByte('\n')
	}

	for _, m := range info.Menu {
		b.WriteString("Menu\n")
		for _, ch := range m.Chapters {
			b.WriteString(padLabel(ch.Start))
			b.WriteString(": ")
			b.WriteString(ch.Name)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n")
}

func padLabel(label string) string {
	if len(label) >= reportLabelWidth {
		return label
	}
	return label + strings.Repeat(" ", reportLabelWidth-len(label))
}

func displayLanguage(code string, other []string) string {
	if len(other) > 0 && other[0] != "" {
		return other[0]
	}
	return code
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// groupDigits formats n with MediaInfo's space thousands separator.
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
