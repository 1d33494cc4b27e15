package render

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidToken reports an unfilled-token policy the assembler does
	// not know. It is fatal to the render call.
	ErrInvalidToken = errors.New("invalid unfilled token policy")
	// ErrInvalidColonPolicy reports an unknown colon replacement policy.
	ErrInvalidColonPolicy = errors.New("invalid colon replacement policy")
)

// ColonPolicy decides what happens to ":" in flatten output.
type ColonPolicy string

const (
	ColonKeep           ColonPolicy = "keep"
	ColonDelete         ColonPolicy = "delete"
	ColonDash           ColonPolicy = "dash"
	ColonSpaceDash      ColonPolicy = "space_dash"
	ColonSpaceDashSpace ColonPolicy = "space_dash_space"
)

var colonReplacements = map[ColonPolicy]string{
	ColonDelete:         "",
	ColonDash:           "-",
	ColonSpaceDash:      " -",
	ColonSpaceDashSpace: " - ",
}

// UnfilledPolicy decides what happens to bracket expressions left in the
// output once every recognized reference has been substituted.
type UnfilledPolicy string

const (
	UnfilledKeep       UnfilledPolicy = "keep"
	UnfilledTokenOnly  UnfilledPolicy = "token_only"
	UnfilledEntireLine UnfilledPolicy = "entire_line"
)

// ParseColonPolicy accepts the policy names case-insensitively, with spaces
// or dashes in place of underscores. Empty means keep.
func ParseColonPolicy(value string) (ColonPolicy, error) {
	p := ColonPolicy(canonicalPolicy(value))
	if p == "" {
		return ColonKeep, nil
	}
	if err := p.validate(); err != nil {
		return "", err
	}
	return p, nil
}

// ParseUnfilledPolicy is ParseColonPolicy for unfilled-token policies.
func ParseUnfilledPolicy(value string) (UnfilledPolicy, error) {
	p := UnfilledPolicy(canonicalPolicy(value))
	if p == "" {
		return UnfilledKeep, nil
	}
	if err := p.validate(); err != nil {
		return "", err
	}
	return p, nil
}

func canonicalPolicy(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(value)
}

func (p ColonPolicy) validate() error {
	if p == "" || p == ColonKeep {
		return nil
	}
	if _, ok := colonReplacements[p]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidColonPolicy, string(p))
	}
	return nil
}

func (p UnfilledPolicy) validate() error {
	switch p {
	case "", UnfilledKeep, UnfilledTokenOnly, UnfilledEntireLine:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidToken, string(p))
}

// bracketPattern matches one innermost {...} expression, recognized or not.
var bracketPattern = regexp.MustCompile(`\{[^{}]*\}`)

// apply rewrites colons outside pending bracket expressions, so references
// that are substituted later still match their raw text.
func (p ColonPolicy) apply(s string) string {
	replacement, ok := colonReplacements[p]
	if !ok || !strings.Contains(s, ":") {
		return s
	}
	var b strings.Builder
	last := 0
	for _, loc := range bracketPattern.FindAllStringIndex(s, -1) {
		b.WriteString(strings.ReplaceAll(s[last:loc[0]], ":", replacement))
		b.WriteString(s[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(strings.ReplaceAll(s[last:], ":", replacement))
	return b.String()
}

// apply removes what is left of unresolved bracket expressions.
func (p UnfilledPolicy) apply(s string) (string, error) {
	switch p {
	case "", UnfilledKeep:
		return s, nil
	case UnfilledTokenOnly:
		return bracketPattern.ReplaceAllString(s, ""), nil
	case UnfilledEntireLine:
		lines := strings.Split(s, "\n")
		kept := lines[:0]
		for i, line := range lines {
			if bracketPattern.MatchString(line) {
				continue
			}
			if i == len(lines)-1 && line == "" && len(kept) == 0 {
				continue
			}
			kept = append(kept, line)
		}
		return strings.Join(kept, "\n"), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidToken, string(p))
}
