package logging

import (
	"log/slog"
	"strings"
	"time"
)

type infoField struct {
	label string
	value string
}

// infoHighlightKeys are listed first, in this order, on INFO and above.
var infoHighlightKeys = []string{
	FieldEventType,
	FieldToken,
	FieldTokenSource,
	FieldFilter,
	"error",
	FieldErrorHint,
	FieldImpact,
	"policy",
	"output",
	"tokens",
	"elapsed",
	FieldConfigPath,
}

const maxInfoValue = 120

// selectInfoFields returns the formatted info-level fields and how many were
// hidden because they are debug-only or too long.
func selectInfoFields(attrs []kv) ([]infoField, int) {
	used := make([]bool, len(attrs))
	var result []infoField
	hidden := 0

	add := func(idx int) {
		used[idx] = true
		attr := attrs[idx]
		if skipInfoKey(attr.key) {
			return
		}
		if isDebugOnlyKey(attr.key) {
			hidden++
			return
		}
		value := formatValueForKey(attr.key, attr.value)
		if shouldHideInfoValue(attr.key, value) {
			hidden++
			return
		}
		result = append(result, infoField{label: displayLabel(attr.key), value: value})
	}

	for _, key := range infoHighlightKeys {
		for idx, attr := range attrs {
			if !used[idx] && attr.key == key {
				add(idx)
				break
			}
		}
	}
	for idx := range attrs {
		if !used[idx] {
			add(idx)
		}
	}
	return result, hidden
}

func formatValueForKey(key string, v slog.Value) string {
	v = v.Resolve()
	if v.Kind() == slog.KindDuration && isDurationKey(key) {
		return formatDurationHuman(v.Duration())
	}
	if v.Kind() == slog.KindBool {
		if v.Bool() {
			return "yes"
		}
		return "no"
	}
	value := formatValue(v)
	if key == "error" {
		value = truncateErrorValue(value)
	}
	return value
}

func isDurationKey(key string) bool {
	return key == "elapsed" || strings.HasSuffix(key, "_duration") || strings.HasSuffix(key, "_elapsed")
}

// formatDurationHuman keeps microsecond precision below a second and rounds
// longer durations to a tenth of a second.
func formatDurationHuman(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Microsecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}

func truncateErrorValue(value string) string {
	value = strings.TrimSpace(value)
	const maxLen = 200
	if len(value) > maxLen {
		value = value[:maxLen] + "..."
	}
	return value
}

func skipInfoKey(key string) bool {
	switch key {
	case "", FieldComponent, FieldRenderID, FieldMode:
		return true
	}
	return false
}

func isDebugOnlyKey(key string) bool {
	switch key {
	case FieldConfigPath:
		return false
	case "template", "context_keys":
		return true
	}
	return strings.Contains(key, "_path") || strings.Contains(key, "_dir") || strings.HasSuffix(key, "_id")
}

func shouldHideInfoValue(key, value string) bool {
	switch key {
	case "error", "output":
		return false
	}
	return len(value) > maxInfoValue
}

func displayLabel(key string) string {
	switch key {
	case FieldEventType:
		return "Event"
	case FieldErrorHint:
		return "Hint"
	case FieldTokenSource:
		return "Source"
	case FieldConfigPath:
		return "Config"
	}
	return titleizeKey(key)
}

func titleizeKey(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
	}
	return strings.Join(parts, " ")
}

func attrValue(attrs []kv, key string) string {
	for _, kv := range attrs {
		if kv.key == key {
			return attrString(kv.value)
		}
	}
	return ""
}
