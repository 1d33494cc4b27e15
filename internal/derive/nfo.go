package derive

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"nfoforge/internal/language"
	"nfoforge/internal/media"
	"nfoforge/internal/tokens"
)

// averageVideoBitRate estimates the video bit rate in kbps from the stream
// size, falling back to 88% of the whole file's rate.
func averageVideoBitRate(info *media.Info) int64 {
	track, ok := info.FirstVideo()
	if !ok {
		return 0
	}
	if track.StreamSize > 0 && track.DurationMS > 0 {
		return kbpsFromSize(float64(track.StreamSize), track.DurationMS, 1)
	}
	general := info.GeneralTrack()
	if general.FileSize > 0 && general.DurationMS > 0 {
		return kbpsFromSize(float64(general.FileSize), general.DurationMS, 0.88)
	}
	return 0
}

func averageAudioBitRate(track media.Audio) int64 {
	if track.StreamSize > 0 && track.DurationMS > 0 {
		return kbpsFromSize(float64(track.StreamSize), track.DurationMS, 1)
	}
	if track.BitRate > 0 {
		return int64(math.Round(float64(track.BitRate) / 1000))
	}
	return 0
}

func kbpsFromSize(bytes, durationMS, factor float64) int64 {
	return int64(math.Round(bytes / 1000 / ((durationMS / 60000) * 0.0075) / 1000 * factor))
}

func (s *State) videoBitRate(numOnly bool) string {
	kbps := averageVideoBitRate(s.ctx.Primary)
	if kbps <= 0 {
		return ""
	}
	if numOnly {
		return strconv.FormatInt(kbps, 10)
	}
	return strconv.FormatInt(kbps, 10) + " kbps"
}

var (
	numberedChapter  = regexp.MustCompile(`^(?:[a-z]{2,3}:)?Chapter\s*(\d+)$`)
	timestampChapter = regexp.MustCompile(`^(?:[a-z]{2,3}:)?\d{1,2}:\d{2}:\d{2}(?:[.:]\d+)?$`)
)

// ChapterType classifies the chapter names of a menu: "Numbered (1 - 12)"
// when every name is "Chapter N", "Tagged" when names are empty or
// timestamps, "Named" otherwise.
func ChapterType(chapters []media.Chapter) string {
	if len(chapters) == 0 {
		return ""
	}
	numbered, tagged := true, true
	lo, hi := math.MaxInt, math.MinInt
	for _, ch := range chapters {
		name := strings.TrimSpace(ch.Name)
		if m := numberedChapter.FindStringSubmatch(name); m != nil {
			n, _ := strconv.Atoi(m[1])
			lo, hi = min(lo, n), max(hi, n)
		} else {
			numbered = false
		}
		if name != "" && !timestampChapter.MatchString(name) {
			tagged = false
		}
	}
	switch {
	case numbered:
		return fmt.Sprintf("Numbered (%d - %d)", lo, hi)
	case tagged:
		return "Tagged"
	}
	return "Named"
}

func (s *State) chapterType() string {
	if s.ctx.Primary == nil {
		return ""
	}
	for _, menu := range s.ctx.Primary.Menu {
		if t := ChapterType(menu.Chapters); t != "" {
			return t
		}
	}
	return ""
}

func (s *State) sourceName() string {
	if s.ctx.SourcePath == "" {
		return ""
	}
	return filepath.Base(s.ctx.SourcePath)
}

func (s *State) mediaInfo() string {
	if s.ctx.Primary == nil {
		return ""
	}
	return media.CleanseReport(s.ctx.Primary.Report)
}

func (s *State) mediaInfoShort() string {
	return media.ShortReport(s.ctx.Primary)
}

func (s *State) fileSizeBytes() string {
	if size := s.ctx.Primary.GeneralTrack().FileSize; size > 0 {
		return strconv.FormatInt(size, 10)
	}
	return ""
}

func (s *State) fileSize() string {
	return s.ctx.Primary.GeneralTrack().FileSizeDisplay
}

func (s *State) durationMS() string {
	if d := s.ctx.Primary.GeneralTrack().DurationMS; d > 0 {
		return strconv.FormatFloat(d, 'f', -1, 64)
	}
	return ""
}

// duration returns one of the display forms: 0 short, 1 long, 3 detailed.
func (s *State) duration(index int) string {
	display := s.ctx.Primary.GeneralTrack().DurationDisplay
	if index < len(display) {
		return display[index]
	}
	return ""
}

// subtitles lists the languages of text and image subtitle tracks, sorted
// and deduplicated.
func (s *State) subtitles() string {
	if s.ctx.Primary == nil {
		return ""
	}
	seen := make(map[string]struct{})
	for _, track := range s.ctx.Primary.Text {
		switch strings.ToLower(track.Format) {
		case "utf-8", "pgs", "vobsub":
		default:
			continue
		}
		lang, ok := language.FromCandidates(track.Language, track.OtherLanguage)
		if !ok {
			continue
		}
		seen[lang.Name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

const (
	dummyScreenshots = "#### DUMMY SCREENSHOTS #### \n" +
		"(Real screenshots will be generated on the process page in the appropriate format for the tracker)" +
		"\nScreen1 Screen2\nScreen3 Screen4\n#### DUMMY SCREENSHOTS ####"
	dummyComparison = "#### DUMMY SCREENSHOTS #### \n" +
		"Note: You MUST fill in the comparison tag that is required!" +
		"(Real screenshots will be generated on the process page)" +
		"\nScreen1 Screen2\nScreen3 Screen4\n#### DUMMY SCREENSHOTS ####"
	dummyImageBase = "https://fakeimage.com/img/"
)

// dummyImages returns the placeholder images numbered from first to 12 in
// steps of two.
func dummyImages(first int) []tokens.Image {
	var out []tokens.Image
	for i := first; i <= 12; i += 2 {
		n := fmt.Sprintf("%02d", i)
		out = append(out, tokens.Image{
			URL:       dummyImageBase + n + ".png",
			MediumURL: dummyImageBase + n + "md.png",
		})
	}
	return out
}

func imageURLs(images []tokens.Image) []string {
	out := make([]string, len(images))
	for i, img := range images {
		out[i] = img.URL
	}
	return out
}

func (s *State) screenshots() string {
	if s.ctx.DummyScreenshots {
		return dummyScreenshots
	}
	return s.ctx.Screenshots.Formatted
}

func (s *State) screenshotsComparison() string {
	if s.ctx.DummyScreenshots {
		return dummyComparison
	}
	return s.ctx.Screenshots.Comparison
}

func (s *State) screenshotObjects(even bool) tokens.Value {
	switch {
	case s.ctx.DummyScreenshots && even:
		return tokens.Images(dummyImages(2))
	case s.ctx.DummyScreenshots:
		return tokens.Images(dummyImages(1))
	case even:
		return tokens.Images(s.ctx.Screenshots.EvenObj)
	}
	return tokens.Images(s.ctx.Screenshots.OddObj)
}

func (s *State) screenshotStrings(even bool) tokens.Value {
	switch {
	case s.ctx.DummyScreenshots && even:
		return tokens.List(imageURLs(dummyImages(2)))
	case s.ctx.DummyScreenshots:
		return tokens.List(imageURLs(dummyImages(1)))
	case even:
		return tokens.List(s.ctx.Screenshots.EvenStr)
	}
	return tokens.List(s.ctx.Screenshots.OddStr)
}

func (s *State) programInfo() string {
	p := s.ctx.program()
	return p.Name + " v" + p.Version
}

func (s *State) sharedWith() string {
	return "Shared with " + s.programInfo()
}

func (s *State) sharedWithBBCode() string {
	p := s.ctx.program()
	return fmt.Sprintf("Shared with [url=%s]%s[/url]", p.URL, s.programInfo())
}

func (s *State) sharedWithHTML() string {
	p := s.ctx.program()
	return fmt.Sprintf(`Shared with <a href="%s">%s</a>`, p.URL, s.programInfo())
}

func (s *State) genres() string {
	return strings.Join(s.ctx.search().Genres, ", ")
}
