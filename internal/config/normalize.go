package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeRender()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDynamicRange()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeRender() {
	c.Render.ColonReplace = normalizePolicy(c.Render.ColonReplace, defaultColonReplace)
	c.Render.UnfilledTokens = normalizePolicy(c.Render.UnfilledTokens, defaultUnfilledTokens)
	c.Render.ReleasersName = strings.TrimSpace(c.Render.ReleasersName)
	if c.Render.ReleasersName == "" {
		c.Render.ReleasersName = strings.TrimSpace(os.Getenv("NFOFORGE_RELEASER_NAME"))
	}
}

// normalizePolicy lower-cases a policy name and accepts "Token only" style
// spellings for "token_only".
func normalizePolicy(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	value = strings.NewReplacer(" ", "_", "-", "_").Replace(value)
	return value
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Render.AudioConventions != "" {
		if c.Render.AudioConventions, err = expandPath(c.Render.AudioConventions); err != nil {
			return fmt.Errorf("render.audio_conventions: %w", err)
		}
	}
	if c.Logging.Dir != "" {
		if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
	}
	if strings.HasPrefix(c.FFprobe.Binary, "~") {
		if c.FFprobe.Binary, err = expandPath(c.FFprobe.Binary); err != nil {
			return fmt.Errorf("ffprobe.binary: %w", err)
		}
	}
	c.FFprobe.Binary = strings.TrimSpace(c.FFprobe.Binary)
	if c.FFprobe.Binary == "" {
		c.FFprobe.Binary = defaultFFprobeBinary
	}
	return nil
}

func (c *Config) normalizeDynamicRange() {
	c.DynamicRange.Resolutions = normalizeList(c.DynamicRange.Resolutions, strings.ToLower)
	c.DynamicRange.Types = normalizeList(c.DynamicRange.Types, canonicalRangeType)
	if len(c.DynamicRange.CustomStrings) == 0 {
		return
	}
	custom := make(map[string]string, len(c.DynamicRange.CustomStrings))
	for k, v := range c.DynamicRange.CustomStrings {
		if v = strings.TrimSpace(v); v != "" {
			custom[canonicalRangeType(k)] = v
		}
	}
	c.DynamicRange.CustomStrings = custom
}

// canonicalRangeType maps "dv hdr10+" or "DVHDR10+" to "DV HDR10+". Unknown
// labels are returned trimmed so validation can name them.
func canonicalRangeType(value string) string {
	value = strings.TrimSpace(value)
	key := strings.ToLower(strings.ReplaceAll(value, " ", ""))
	for _, known := range DynamicRangeTypes {
		if strings.ToLower(strings.ReplaceAll(known, " ", "")) == key {
			return known
		}
	}
	return value
}

func normalizeList(values []string, canon func(string) string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = canon(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	if level == "warning" {
		level = "warn"
	}
	c.Logging.Level = level
}
