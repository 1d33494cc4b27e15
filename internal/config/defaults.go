package config

const (
	defaultColonReplace   = "dash"
	defaultUnfilledTokens = "keep"
	defaultFFprobeBinary  = "ffprobe"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Colon and unfilled-token policy names accepted in [render].
var (
	ColonPolicies    = []string{"keep", "delete", "dash", "space_dash", "space_dash_space"}
	UnfilledPolicies = []string{"keep", "token_only", "entire_line"}
)

// Dynamic range buckets and labels accepted in [dynamic_range].
var (
	DynamicRangeResolutions = []string{"720p", "1080p", "2160p"}
	DynamicRangeTypes       = []string{"SDR", "PQ", "HLG", "HDR10", "HDR10+", "DV", "DV HDR10", "DV HDR10+"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Render: Render{
			ColonReplace:   defaultColonReplace,
			UnfilledTokens: defaultUnfilledTokens,
			FilenameMode:   true,
		},
		DynamicRange: DynamicRange{
			Enabled:     true,
			Resolutions: []string{"2160p"},
			Types:       []string{"HDR10", "HDR10+", "DV", "DV HDR10", "DV HDR10+", "HLG"},
		},
		FFprobe: FFprobe{
			Binary: defaultFFprobeBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
