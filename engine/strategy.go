package engine

import (
	"regexp/syntax"
	"strings"
)

// Strategy represents the engine a literal is compiled with.
//
// The selector chooses between:
//   - UseRE2: coregex, for everything the RE2 grammar accepts
//   - UseBacktrack: regexp2, for lookaround and oversized repeat counts
type Strategy int

const (
	// UseAuto lets SelectStrategy inspect the pattern.
	UseAuto Strategy = iota

	// UseRE2 compiles with coregex.
	// Selected for:
	//   - Patterns built only from quantified clauses, classes, anchors and
	//     alternations
	//   - Repeat counts up to 1000
	UseRE2

	// UseBacktrack compiles with regexp2.
	// Selected for:
	//   - Patterns carrying (?=...) or (?!...) assertions
	//   - Repeat counts above 1000
	//   - Any other construct regexp/syntax rejects
	UseBacktrack
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseAuto:
		return "UseAuto"
	case UseRE2:
		return "UseRE2"
	case UseBacktrack:
		return "UseBacktrack"
	default:
		return "Unknown"
	}
}

// ParseStrategy maps the short names used on command lines ("auto", "re2",
// "backtrack") to a Strategy.
func ParseStrategy(name string) (Strategy, bool) {
	switch strings.ToLower(name) {
	case "", "auto":
		return UseAuto, true
	case "re2":
		return UseRE2, true
	case "backtrack":
		return UseBacktrack, true
	default:
		return UseAuto, false
	}
}

// Flags are the pattern-wide options a builder can request.
type Flags struct {
	CaseInsensitive bool
	MultiLine       bool
}

// String renders the flags as letters: "i" before "m".
func (f Flags) String() string {
	var s string
	if f.CaseInsensitive {
		s += "i"
	}
	if f.MultiLine {
		s += "m"
	}
	return s
}

// inline returns the flags as an RE2 inline group prefix, e.g. "(?im)".
func (f Flags) inline() string {
	if s := f.String(); s != "" {
		return "(?" + s + ")"
	}
	return ""
}

// SelectStrategy chooses the engine for expr.
//
// A strategy forced in cfg always wins. Otherwise the pattern is parsed with
// the RE2 grammar: if it parses, coregex can run it; if not, regexp2 is the
// only engine that may.
func SelectStrategy(expr string, flags Flags, cfg Config) Strategy {
	if cfg.Strategy != UseAuto {
		return cfg.Strategy
	}

	if hasLookaround(expr) {
		return UseBacktrack
	}

	if _, err := syntax.Parse(flags.inline()+expr, syntax.Perl); err != nil {
		cfg.Logger.Debug().
			Str("pattern", expr).
			Err(err).
			Msg("pattern outside RE2 grammar, falling back to backtracking")
		return UseBacktrack
	}

	return UseRE2
}

// hasLookaround reports whether expr contains an unescaped (?= or (?! group
// outside a character class.
func hasLookaround(expr string) bool {
	found := false
	scanOperators(expr, func(i int) bool {
		if expr[i] == '(' && i+2 < len(expr) && expr[i+1] == '?' &&
			(expr[i+2] == '=' || expr[i+2] == '!') {
			found = true
			return false
		}
		return true
	})
	return found
}

// absoluteEnd replaces every unescaped $ outside a character class with \z,
// so the end anchor ignores a trailing newline as it does under RE2.
func absoluteEnd(expr string) string {
	var sb strings.Builder
	last := 0
	scanOperators(expr, func(i int) bool {
		if expr[i] == '$' {
			sb.WriteString(expr[last:i])
			sb.WriteString(`\z`)
			last = i + 1
		}
		return true
	})
	if last == 0 {
		return expr
	}
	sb.WriteString(expr[last:])
	return sb.String()
}

// scanOperators calls fn with the index of every byte of expr that is
// neither escaped nor inside a bracketed class. Scanning stops when fn
// returns false.
func scanOperators(expr string, fn func(i int) bool) {
	inClass := false
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
			// A leading ^ negates and a ] right after the opening is a member.
			if i+1 < len(expr) && expr[i+1] == '^' {
				i++
			}
			if i+1 < len(expr) && expr[i+1] == ']' {
				i++
			}
		default:
			if !fn(i) {
				return
			}
		}
	}
}
