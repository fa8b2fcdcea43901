// Package engine compiles finished pattern literals into matchers.
//
// Two engines are available:
//   - RE2: coregex, an accelerated RE2-compatible engine (linear time)
//   - Backtrack: regexp2, a backtracking engine with lookaround support
//
// Strategy selection is automatic unless forced through Config. Patterns that
// the RE2 grammar accepts run on coregex; everything else (lookahead
// assertions, repeat counts above the RE2 limit) falls back to regexp2.
package engine

import (
	"time"

	"github.com/coregx/coregex"
	"github.com/coregx/coregex/meta"
	"github.com/rs/zerolog"
)

// Config controls how a literal is turned into a Matcher.
//
// Example:
//
//	config := engine.DefaultConfig()
//	config.Strategy = engine.UseBacktrack // always use regexp2
//	m, err := engine.Compile(`a(?=b)`, engine.Flags{}, config)
type Config struct {
	// Strategy forces an engine. UseAuto picks one per pattern.
	// Default: UseAuto
	Strategy Strategy

	// MatchTimeout bounds a single backtracking match.
	// Zero means no timeout. Ignored by the RE2 engine, which is linear.
	// Default: 0
	MatchTimeout time.Duration

	// RE2 is handed to coregex unchanged.
	// Default: coregex.DefaultConfig()
	RE2 meta.Config

	// Logger receives strategy decisions at debug level.
	// Default: zerolog.Nop()
	Logger zerolog.Logger
}

// DefaultConfig returns a configuration with automatic strategy selection,
// no match timeout and a silent logger.
func DefaultConfig() Config {
	return Config{
		Strategy:     UseAuto,
		MatchTimeout: 0,
		RE2:          coregex.DefaultConfig(),
		Logger:       zerolog.Nop(),
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - Strategy: UseAuto, UseRE2 or UseBacktrack
//   - MatchTimeout: >= 0
//   - RE2: whatever coregex's meta.Config.Validate accepts
func (c Config) Validate() error {
	switch c.Strategy {
	case UseAuto, UseRE2, UseBacktrack:
	default:
		return &ConfigError{
			Field:   "Strategy",
			Message: "must be UseAuto, UseRE2 or UseBacktrack",
		}
	}

	if c.MatchTimeout < 0 {
		return &ConfigError{
			Field:   "MatchTimeout",
			Message: "must not be negative",
		}
	}

	if err := c.RE2.Validate(); err != nil {
		return &ConfigError{
			Field:   "RE2",
			Message: err.Error(),
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "rxbuild: invalid config: " + e.Field + ": " + e.Message
}
