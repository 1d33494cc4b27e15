package derive

import (
	"regexp"
	"strings"

	"nfoforge/internal/textutil"
)

const (
	ruleUnidecode = "[unidecode]"
	ruleRemove    = "[remove]"
	ruleSpace     = "[space]"
)

// CleanTitle applies rules in order. It returns "" when title is empty or
// there are no rules. A rule whose pattern does not compile is skipped.
func CleanTitle(title string, rules []TitleRule) string {
	if title == "" || len(rules) == 0 {
		return ""
	}
	for _, rule := range rules {
		if rule.Replacement == ruleUnidecode {
			title = textutil.FoldDiacritics(title)
			continue
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			continue
		}
		replacement := strings.ReplaceAll(rule.Replacement, ruleRemove, "")
		replacement = strings.ReplaceAll(replacement, ruleSpace, " ")
		title = re.ReplaceAllString(title, replacement)
	}
	return title
}

func (s *State) rawTitle() string {
	return FirstNonEmpty(
		func() string { return s.ctx.search().Title },
		func() string { return s.ctx.guess().Title },
	)
}

func (s *State) titleRules() []TitleRule {
	if s.ctx.TitleCleanRules == nil {
		return DefaultTitleCleanRules
	}
	return s.ctx.TitleCleanRules
}

func (s *State) title() string {
	return textutil.StandardTitle(s.rawTitle())
}

func (s *State) titleClean() string {
	return CleanTitle(s.rawTitle(), s.titleRules())
}

// imdbAKA returns the AKA title. With fallback set the search title stands
// in, cleaned when clean is set.
func (s *State) imdbAKA(fallback, clean bool) string {
	if aka := s.ctx.search().AKATitle; aka != "" {
		return aka
	}
	if !fallback {
		return ""
	}
	title := s.ctx.search().Title
	if clean {
		return CleanTitle(title, s.titleRules())
	}
	return textutil.StandardTitle(title)
}
