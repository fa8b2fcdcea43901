package engine

import (
	"fmt"

	"github.com/coregx/coregex"
	"github.com/dlclark/regexp2"
)

// Matcher is a compiled pattern, independent of the engine behind it.
//
// Implementations are safe for concurrent use.
type Matcher interface {
	// MatchString reports whether s contains any match.
	MatchString(s string) (bool, error)

	// FindStringSubmatchIndex returns byte offsets of the leftmost match and
	// of every capturing group, -1 for groups that did not participate, or
	// nil when there is no match.
	FindStringSubmatchIndex(s string) ([]int, error)

	// NumSubexp returns the number of capturing groups.
	NumSubexp() int

	// String returns the source literal, without flags.
	String() string

	// Strategy reports which engine runs the pattern.
	Strategy() Strategy
}

// CompileError wraps compilation errors with the pattern and engine involved.
type CompileError struct {
	Pattern  string
	Strategy Strategy
	Err      error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("rxbuild: compiling %q with %s: %v", e.Pattern, e.Strategy, e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Compile turns expr into a Matcher honouring flags.
//
// Example:
//
//	m, err := engine.Compile(`(?:(?:dart){1,1})(?=lang)`, engine.Flags{}, engine.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ok, _ := m.MatchString("dartlang") // true, via regexp2
func Compile(expr string, flags Flags, cfg Config) (Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	strategy := SelectStrategy(expr, flags, cfg)
	cfg.Logger.Debug().
		Str("pattern", expr).
		Str("flags", flags.String()).
		Stringer("strategy", strategy).
		Msg("compiling pattern")

	switch strategy {
	case UseRE2:
		return compileRE2(expr, flags, cfg)
	default:
		return compileBacktrack(expr, flags, cfg)
	}
}

// re2Matcher runs patterns on coregex.
type re2Matcher struct {
	re   *coregex.Regex
	expr string
}

func compileRE2(expr string, flags Flags, cfg Config) (*re2Matcher, error) {
	re, err := coregex.CompileWithConfig(flags.inline()+expr, cfg.RE2)
	if err != nil {
		return nil, &CompileError{Pattern: expr, Strategy: UseRE2, Err: err}
	}
	return &re2Matcher{re: re, expr: expr}, nil
}

func (m *re2Matcher) MatchString(s string) (bool, error) {
	return m.re.MatchString(s), nil
}

func (m *re2Matcher) FindStringSubmatchIndex(s string) ([]int, error) {
	return m.re.FindStringSubmatchIndex(s), nil
}

// NumSubexp excludes group 0, which coregex counts.
func (m *re2Matcher) NumSubexp() int {
	return m.re.NumSubexp() - 1
}

func (m *re2Matcher) String() string     { return m.expr }
func (m *re2Matcher) Strategy() Strategy { return UseRE2 }

// backtrackMatcher runs patterns on regexp2.
type backtrackMatcher struct {
	re   *regexp2.Regexp
	expr string
}

func compileBacktrack(expr string, flags Flags, cfg Config) (*backtrackMatcher, error) {
	opts := regexp2.None
	if flags.CaseInsensitive {
		opts |= regexp2.IgnoreCase
	}
	if flags.MultiLine {
		opts |= regexp2.Multiline
	}

	// regexp2's $ also matches before a final newline; RE2's does not.
	source := expr
	if !flags.MultiLine {
		source = absoluteEnd(expr)
	}

	re, err := regexp2.Compile(source, opts)
	if err != nil {
		return nil, &CompileError{Pattern: expr, Strategy: UseBacktrack, Err: err}
	}
	if cfg.MatchTimeout > 0 {
		re.MatchTimeout = cfg.MatchTimeout
	}
	return &backtrackMatcher{re: re, expr: expr}, nil
}

func (m *backtrackMatcher) MatchString(s string) (bool, error) {
	return m.re.MatchString(s)
}

func (m *backtrackMatcher) FindStringSubmatchIndex(s string) ([]int, error) {
	match, err := m.re.FindStringMatch(s)
	if err != nil || match == nil {
		return nil, err
	}

	// regexp2 reports positions in runes.
	offsets := runeOffsets(s)
	n := match.GroupCount()
	loc := make([]int, 2*n)
	loc[0], loc[1] = offsets[match.Index], offsets[match.Index+match.Length]
	for i := 1; i < n; i++ {
		g := match.GroupByNumber(i)
		if g == nil || len(g.Captures) == 0 {
			loc[2*i], loc[2*i+1] = -1, -1
			continue
		}
		loc[2*i] = offsets[g.Index]
		loc[2*i+1] = offsets[g.Index+g.Length]
	}
	return loc, nil
}

func (m *backtrackMatcher) NumSubexp() int {
	return len(m.re.GetGroupNumbers()) - 1
}

func (m *backtrackMatcher) String() string     { return m.expr }
func (m *backtrackMatcher) Strategy() Strategy { return UseBacktrack }

// runeOffsets maps rune index i to the byte offset of that rune in s. The
// final entry is len(s).
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}
