package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dkoosis/marquee/pkg/marquee"
)

// Source names where a resolved value came from.
const (
	SourceCLI     = "cli"
	SourceEnv     = "env"
	SourceDefault = "default"
)

var (
	ErrInvalidSpeed = fmt.Errorf("speed must be between 1 and %d milliseconds", marquee.MaxSpeed)
	ErrInvalidWidth = errors.New("width must not be negative")
)

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	Text        string
	Speed       int
	Width       int
	Plain       bool
	NoColor     bool
	Debug       bool
	LogFile     string
	MetricsFile string

	// Flags to track if they were explicitly set by the user
	TextSet    bool
	SpeedSet   bool
	WidthSet   bool
	PlainSet   bool
	NoColorSet bool
	DebugSet   bool
}

// ResolvedConfig holds the final configuration after applying all priority rules.
type ResolvedConfig struct {
	Marquee marquee.Config

	Width       int // 0 follows the terminal
	Plain       bool
	NoColor     bool
	Debug       bool
	LogFile     string
	MetricsFile string

	// Resolution metadata (for debugging)
	TextSource    string
	SpeedSource   string
	WidthSource   string
	PlainSource   string
	NoColorSource string
}

// ResolveConfig resolves configuration with explicit priority: CLI > env > defaults.
func ResolveConfig(cli CliFlags) (*ResolvedConfig, error) {
	def := marquee.DefaultConfig()
	resolved := &ResolvedConfig{
		Marquee:       def,
		LogFile:       cli.LogFile,
		MetricsFile:   cli.MetricsFile,
		TextSource:    SourceDefault,
		SpeedSource:   SourceDefault,
		WidthSource:   SourceDefault,
		PlainSource:   SourceDefault,
		NoColorSource: SourceDefault,
	}

	// Text: CLI > ENV > default
	if cli.TextSet {
		resolved.Marquee.Text = cli.Text
		resolved.TextSource = SourceCLI
	} else if v := os.Getenv("MARQUEE_TEXT"); v != "" {
		resolved.Marquee.Text = v
		resolved.TextSource = SourceEnv
	}
	if resolved.Marquee.Text == "" {
		resolved.Marquee.Text = " "
	}

	// Speed: CLI > ENV > default
	if cli.SpeedSet {
		resolved.Marquee.SpeedMS = cli.Speed
		resolved.SpeedSource = SourceCLI
	} else if v, err := getEnvInt("MARQUEE_SPEED"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpeed, err)
	} else if v != nil {
		resolved.Marquee.SpeedMS = *v
		resolved.SpeedSource = SourceEnv
	}

	// Width: CLI > ENV > default
	if cli.WidthSet {
		resolved.Width = cli.Width
		resolved.WidthSource = SourceCLI
	} else if v, err := getEnvInt("MARQUEE_WIDTH"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWidth, err)
	} else if v != nil {
		resolved.Width = *v
		resolved.WidthSource = SourceEnv
	}

	// Plain: CLI > ENV > default
	if cli.PlainSet {
		resolved.Plain = cli.Plain
		resolved.PlainSource = SourceCLI
	} else if v := getEnvBool("MARQUEE_PLAIN"); v != nil {
		resolved.Plain = *v
		resolved.PlainSource = SourceEnv
	}

	// NoColor: CLI > ENV > default
	if cli.NoColorSet {
		resolved.NoColor = cli.NoColor
		resolved.NoColorSource = SourceCLI
	} else if v := getEnvBool("MARQUEE_NO_COLOR", "NO_COLOR"); v != nil {
		resolved.NoColor = *v
		resolved.NoColorSource = SourceEnv
	}

	// Debug: CLI > ENV > default
	if cli.DebugSet {
		resolved.Debug = cli.Debug
	} else if os.Getenv("MARQUEE_DEBUG") != "" {
		resolved.Debug = true
	}

	if err := validateResolvedConfig(resolved); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return resolved, nil
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}

// getEnvInt reads an integer from an environment variable.
// Returns nil if the variable is unset or empty.
func getEnvInt(key string) (*int, error) {
	val := os.Getenv(key)
	if val == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return nil, fmt.Errorf("%s=%q: %w", key, val, err)
	}
	return &n, nil
}

func validateResolvedConfig(cfg *ResolvedConfig) error {
	if cfg.Marquee.SpeedMS <= 0 || cfg.Marquee.SpeedMS > marquee.MaxSpeed {
		return fmt.Errorf("%w, got: %d", ErrInvalidSpeed, cfg.Marquee.SpeedMS)
	}
	if cfg.Width < 0 {
		return fmt.Errorf("%w, got: %d", ErrInvalidWidth, cfg.Width)
	}
	return nil
}
