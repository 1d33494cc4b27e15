package tokens

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"nfoforge/internal/textutil"
)

// FilterFunc is a caller-registered filter. args holds the parsed argument
// list and is nil when the filter was written without arguments.
type FilterFunc func(value string, args []any) (string, error)

// Registry maps filter names to user functions. Built-in names take
// precedence over registry entries.
type Registry map[string]FilterFunc

var (
	zfillPattern   = regexp.MustCompile(`(?i)^zfill\((\d+)\)`)
	replacePattern = regexp.MustCompile(`^replace\((['"])(.*?)(['"]),\s*(['"])(.*?)(['"])\)`)
)

const maxLiteralArgs = 200

// ApplyFilters runs the filter chain over value in order. Filters never fail
// the chain: an unknown filter or a filter error leaves the value as it was
// before that filter.
func ApplyFilters(value string, calls []FilterCall, registry Registry) string {
	for _, call := range calls {
		value = applyFilter(value, call, registry)
	}
	return value
}

func applyFilter(value string, call FilterCall, registry Registry) string {
	lowered := strings.ToLower(call.Raw)
	switch {
	case lowered == "upper":
		return strings.ToUpper(value)
	case lowered == "lower":
		return strings.ToLower(value)
	case lowered == "title":
		return textutil.TitleCase(value)
	case lowered == "swapcase":
		return textutil.SwapCase(value)
	case lowered == "capitalize":
		return textutil.Capitalize(value)
	case strings.HasPrefix(lowered, "zfill(") && strings.HasSuffix(lowered, ")"):
		m := zfillPattern.FindStringSubmatch(call.Raw)
		if m == nil {
			return value
		}
		width, err := strconv.Atoi(m[1])
		if err != nil {
			return value
		}
		return textutil.ZeroFill(value, width)
	case strings.HasPrefix(lowered, "replace(") && strings.HasSuffix(lowered, ")"):
		m := replacePattern.FindStringSubmatch(call.Raw)
		// RE2 has no backreferences, so matching quotes are checked here.
		if m == nil || m[1] != m[3] || m[4] != m[6] {
			return value
		}
		return strings.ReplaceAll(value, m[2], m[5])
	}
	return applyRegistered(value, call, registry)
}

func applyRegistered(value string, call FilterCall, registry Registry) (out string) {
	fn, ok := registry[call.Name]
	if !ok || fn == nil {
		return value
	}
	var args []any
	if call.HasArgs {
		args = ParseArgs(call.Args)
	}
	defer func() {
		if recover() != nil {
			out = value
		}
	}()
	result, err := fn(value, args)
	if err != nil {
		return value
	}
	return result
}

// ParseArgs parses filter argument text. Empty text yields nil. Text longer
// than 200 bytes is passed as a single raw string. Otherwise the text is read
// as a comma separated literal list (quoted strings, integers, floats,
// booleans, None/null); when that fails the text is passed as one string
// with surrounding quotes removed.
func ParseArgs(text string) []any {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) > maxLiteralArgs {
		return []any{text}
	}
	if args, err := parseLiteralList(text); err == nil {
		return args
	}
	trimmed := strings.TrimSpace(text)
	if len(trimmed) >= 2 {
		first, last := trimmed[0], trimmed[len(trimmed)-1]
		if (first == '"' || first == '\'') && first == last {
			return []any{trimmed[1 : len(trimmed)-1]}
		}
	}
	return []any{trimmed}
}

func parseLiteralList(text string) ([]any, error) {
	var args []any
	i := 0
	for {
		i = skipSpaces(text, i)
		if i >= len(text) {
			break
		}
		value, next, err := parseLiteral(text, i)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
		i = skipSpaces(text, next)
		if i >= len(text) {
			break
		}
		if text[i] != ',' {
			return nil, fmt.Errorf("expected ',' at offset %d", i)
		}
		i++
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("no literals in %q", text)
	}
	return args, nil
}

func parseLiteral(text string, start int) (any, int, error) {
	if q := text[start]; q == '"' || q == '\'' {
		var b strings.Builder
		for i := start + 1; i < len(text); i++ {
			c := text[i]
			switch {
			case c == '\\' && i+1 < len(text):
				i++
				b.WriteByte(unescape(text[i]))
			case c == q:
				return b.String(), i + 1, nil
			default:
				b.WriteByte(c)
			}
		}
		return nil, 0, fmt.Errorf("unterminated string at offset %d", start)
	}

	end := start
	for end < len(text) && text[end] != ',' {
		end++
	}
	word := strings.TrimSpace(text[start:end])
	switch word {
	case "True", "true":
		return true, end, nil
	case "False", "false":
		return false, end, nil
	case "None", "null":
		return nil, end, nil
	}
	if n, err := strconv.ParseInt(word, 10, 64); err == nil {
		return int(n), end, nil
	}
	if f, err := strconv.ParseFloat(word, 64); err == nil {
		return f, end, nil
	}
	return nil, 0, fmt.Errorf("invalid literal %q", word)
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	}
	return c
}

func skipSpaces(text string, i int) int {
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	return i
}
