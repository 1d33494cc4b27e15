package derive

import (
	"regexp"
	"strconv"
	"strings"

	"nfoforge/internal/language"
	"nfoforge/internal/media"
)

var digitRun = regexp.MustCompile(`\d+`)

// ChannelCount is the highest channel count the track reports across its
// plain, display and original channel fields.
func ChannelCount(track media.Audio) int {
	best := 0
	for _, run := range digitRun.FindAllString(track.Channels, -1) {
		if n, err := strconv.Atoi(run); err == nil && n > best {
			best = n
		}
	}
	if run := digitRun.FindString(track.ChannelsDisplay); run != "" {
		if n, err := strconv.Atoi(run); err == nil && n > best {
			best = n
		}
	}
	if n, err := strconv.Atoi(strings.TrimSpace(track.ChannelsOriginal)); err == nil && n > best {
		best = n
	}
	return best
}

// ChannelLayout renders the track as "5.1" or "2.0". The LFE channel is
// counted after the dot when the positions mention it.
func ChannelLayout(track media.Audio) string {
	count := ChannelCount(track)
	if count == 0 {
		return ""
	}
	positions := track.ChannelPositions
	if track.ChannelLayoutOriginal != "" {
		positions = track.ChannelLayoutOriginal
	}
	if strings.Contains(positions, "LFE") {
		return strconv.Itoa(count-1) + ".1"
	}
	return strconv.Itoa(count) + ".0"
}

func (s *State) firstAudio() (media.Audio, bool) {
	return s.ctx.Primary.FirstAudio()
}

func (s *State) audioChannels() string {
	return FirstNonEmpty(
		func() string {
			if track, ok := s.firstAudio(); ok && track.Channels != "" {
				return ChannelLayout(track)
			}
			return ""
		},
		func() string { return s.ctx.guess().AudioChannels },
	)
}

func (s *State) audioField(get func(media.Audio) string) string {
	track, ok := s.firstAudio()
	if !ok {
		return ""
	}
	return get(track)
}

func (s *State) audioBitrate() string {
	track, ok := s.firstAudio()
	if !ok || track.BitRate <= 0 {
		return ""
	}
	return strconv.FormatInt(track.BitRate, 10)
}

func (s *State) audioCodec() string {
	track, ok := s.firstAudio()
	if !ok {
		return s.ctx.guess().AudioCodec.First()
	}
	return s.ctx.AudioCodecs.Name(track)
}

// guessLanguage returns the guessed language code. A malformed guess value
// is logged and treated as absent.
func (s *State) guessLanguage() string {
	code, err := s.ctx.guess().LanguageCode()
	if err != nil {
		s.warn("filename guess language could not be parsed", err)
		return ""
	}
	return code
}

// guessLanguagePart converts the guessed code to the requested ISO part,
// keeping the raw code when it does not resolve.
func (s *State) guessLanguagePart(part int) string {
	code := s.guessLanguage()
	if code == "" {
		return ""
	}
	if lang, ok := language.Resolve(code); ok {
		if v := languagePart(lang, part); v != "" {
			return v
		}
	}
	if part == 0 {
		return ""
	}
	return code
}

// audioLanguages lists the distinct track languages in track order.
func (s *State) audioLanguages(part int) []string {
	if s.ctx.Primary == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, track := range s.ctx.Primary.Audio {
		lang, ok := language.FromCandidates(track.Language, track.OtherLanguage)
		if !ok {
			continue
		}
		v := languagePart(lang, part)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func (s *State) audioLanguageFirst(part int) string {
	if track, ok := s.firstAudio(); ok {
		if lang, ok := language.FromCandidates(track.Language, track.OtherLanguage); ok {
			if v := languagePart(lang, part); v != "" {
				return v
			}
		}
	}
	if part == 0 {
		return ""
	}
	return s.guessLanguagePart(part)
}

// audioLanguageJoined joins the first two (or all) distinct track languages.
// The separator is "+" for codes and a space for names.
func (s *State) audioLanguageJoined(part int, all bool) string {
	langs := s.audioLanguages(part)
	if len(langs) == 0 {
		return s.guessLanguagePart(part)
	}
	if !all && len(langs) > 2 {
		langs = langs[:2]
	}
	sep := "+"
	if part == 0 {
		sep = " "
	}
	return strings.Join(langs, sep)
}

func (s *State) audioLanguageDual() string {
	if s.ctx.guess().Other.Has("Dual Audio") || len(s.audioLanguages(2)) >= 2 {
		return "Dual Audio"
	}
	return ""
}

func (s *State) audioLanguageMulti() string {
	if strings.EqualFold(s.guessLanguage(), "mul") || len(s.audioLanguages(2)) >= 3 {
		return "Multi"
	}
	return ""
}
