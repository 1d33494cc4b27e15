package config

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateTitleRules(); err != nil {
		return err
	}
	if err := c.validateDynamicRange(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRender() error {
	if !slices.Contains(ColonPolicies, c.Render.ColonReplace) {
		return fmt.Errorf("render.colon_replace must be one of %s", strings.Join(ColonPolicies, ", "))
	}
	if !slices.Contains(UnfilledPolicies, c.Render.UnfilledTokens) {
		return fmt.Errorf("render.unfilled_tokens must be one of %s", strings.Join(UnfilledPolicies, ", "))
	}
	return nil
}

func (c *Config) validateTitleRules() error {
	check := func(key string, rules []TitleRule) error {
		for i, rule := range rules {
			if rule.Replacement == "[unidecode]" {
				continue
			}
			if rule.Pattern == "" {
				return fmt.Errorf("render.title.%s[%d].pattern must be set", key, i)
			}
			if _, err := regexp.Compile(rule.Pattern); err != nil {
				return fmt.Errorf("render.title.%s[%d].pattern must be a valid regular expression: %w", key, i, err)
			}
		}
		return nil
	}
	if err := check("clean_rules", c.Render.Title.CleanRules); err != nil {
		return err
	}
	return check("override_rules", c.Render.Title.OverrideRules)
}

func (c *Config) validateDynamicRange() error {
	for _, res := range c.DynamicRange.Resolutions {
		if !slices.Contains(DynamicRangeResolutions, res) {
			return fmt.Errorf("dynamic_range.resolutions must only contain %s (got %q)", strings.Join(DynamicRangeResolutions, ", "), res)
		}
	}
	for _, t := range c.DynamicRange.Types {
		if !slices.Contains(DynamicRangeTypes, t) {
			return fmt.Errorf("dynamic_range.types must only contain %s (got %q)", strings.Join(DynamicRangeTypes, ", "), t)
		}
	}
	for k := range c.DynamicRange.CustomStrings {
		if !slices.Contains(DynamicRangeTypes, k) {
			return fmt.Errorf("dynamic_range.custom_strings key %q must be a dynamic range type", k)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return errors.New("logging.format must be console or json")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("logging.level must be debug, info, warn or error")
	}
	return nil
}
