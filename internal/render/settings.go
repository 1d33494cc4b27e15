package render

import (
	"nfoforge/internal/config"
	"nfoforge/internal/derive"
)

// OptionsFromConfig builds engine options from the [render] section.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	colon, err := ParseColonPolicy(cfg.Render.ColonReplace)
	if err != nil {
		return Options{}, err
	}
	unfilled, err := ParseUnfilledPolicy(cfg.Render.UnfilledTokens)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Colon:              colon,
		Unfilled:           unfilled,
		FilenameMode:       cfg.Render.FilenameMode,
		TitleOverrideRules: TitleRules(cfg.Render.Title.OverrideRules),
	}, nil
}

// TitleRules converts configured rules. Nil stays nil so derivations fall
// back to their built-in rules.
func TitleRules(rules []config.TitleRule) []derive.TitleRule {
	if len(rules) == 0 {
		return nil
	}
	out := make([]derive.TitleRule, len(rules))
	for i, r := range rules {
		out[i] = derive.TitleRule{Pattern: r.Pattern, Replacement: r.Replacement}
	}
	return out
}

// DynamicRangeFromConfig converts the [dynamic_range] section. A disabled
// section returns nil, which turns the token off.
func DynamicRangeFromConfig(dr config.DynamicRange) *derive.DynamicRange {
	if !dr.Enabled {
		return nil
	}
	out := &derive.DynamicRange{
		Resolutions:   make(map[string]bool, len(dr.Resolutions)),
		Types:         make(map[string]bool, len(dr.Types)),
		CustomStrings: make(map[string]string, len(dr.CustomStrings)),
	}
	for _, r := range dr.Resolutions {
		out.Resolutions[r] = true
	}
	for _, t := range dr.Types {
		out.Types[t] = true
	}
	for k, v := range dr.CustomStrings {
		out.CustomStrings[k] = v
	}
	return out
}
