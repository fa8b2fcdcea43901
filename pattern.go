package rxbuild

import (
	"github.com/coregx/rxbuild/engine"
)

// Pattern is a compiled builder chain.
//
// A Pattern is safe to use concurrently from multiple goroutines.
//
// Methods without an error result treat a failed match (a backtracking
// timeout) as no match. Use the *Err variants to observe those failures.
type Pattern struct {
	expr   string
	flags  engine.Flags
	search engine.Matcher
	whole  engine.Matcher
}

// Compile compiles an already assembled literal with the given flags letters
// ("i", "m"). It is the entry point for literals obtained from
// Builder.Literal and stored elsewhere.
func Compile(expr, flags string) (*Pattern, error) {
	var f engine.Flags
	for _, c := range flags {
		switch c {
		case 'i':
			f.CaseInsensitive = true
		case 'm':
			f.MultiLine = true
		default:
			return nil, &BuildError{Op: "compile", Err: &engine.ConfigError{
				Field:   "flags",
				Message: "unknown flag " + string(c),
			}}
		}
	}
	return compile(expr, f, engine.DefaultConfig())
}

func compile(expr string, flags engine.Flags, config engine.Config) (*Pattern, error) {
	search, err := engine.Compile(expr, flags, config)
	if err != nil {
		return nil, err
	}
	whole, err := engine.Compile(`\A(?:`+expr+`)\z`, flags, config)
	if err != nil {
		return nil, err
	}
	return &Pattern{
		expr:   expr,
		flags:  flags,
		search: search,
		whole:  whole,
	}, nil
}

// String returns the source literal.
func (p *Pattern) String() string {
	return p.expr
}

// Flags returns the flag letters the pattern was compiled with.
func (p *Pattern) Flags() string {
	return p.flags.String()
}

// Strategy reports the engine that runs the pattern.
func (p *Pattern) Strategy() engine.Strategy {
	return p.search.Strategy()
}

// NumSubexp returns the number of capturing groups.
func (p *Pattern) NumSubexp() int {
	return p.search.NumSubexp()
}

// MatchString reports whether s contains any match of the pattern.
func (p *Pattern) MatchString(s string) bool {
	ok, _ := p.search.MatchString(s)
	return ok
}

// MatchStringErr is MatchString with engine errors reported.
func (p *Pattern) MatchStringErr(s string) (bool, error) {
	return p.search.MatchString(s)
}

// Matches reports whether the pattern matches all of s.
func (p *Pattern) Matches(s string) bool {
	ok, _ := p.whole.MatchString(s)
	return ok
}

// MatchesErr is Matches with engine errors reported.
func (p *Pattern) MatchesErr(s string) (bool, error) {
	return p.whole.MatchString(s)
}

// FindString returns the text of the leftmost match in s, or "" if there is
// none.
func (p *Pattern) FindString(s string) string {
	loc := p.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	return s[loc[0]:loc[1]]
}

// FindStringIndex returns the byte offsets of the leftmost match in s, or
// nil if there is none.
func (p *Pattern) FindStringIndex(s string) []int {
	loc := p.FindStringSubmatchIndex(s)
	if loc == nil {
		return nil
	}
	return loc[0:2]
}

// FindStringSubmatch returns the leftmost match and the text of each
// capturing group. Groups that did not participate are "".
func (p *Pattern) FindStringSubmatch(s string) []string {
	loc := p.FindStringSubmatchIndex(s)
	if loc == nil {
		return nil
	}
	out := make([]string, len(loc)/2)
	for i := range out {
		if loc[2*i] >= 0 {
			out[i] = s[loc[2*i]:loc[2*i+1]]
		}
	}
	return out
}

// FindStringSubmatchIndex returns byte offset pairs for the leftmost match
// and each capturing group, -1 for groups that did not participate.
func (p *Pattern) FindStringSubmatchIndex(s string) []int {
	loc, _ := p.search.FindStringSubmatchIndex(s)
	return loc
}

// FindStringSubmatchIndexErr is FindStringSubmatchIndex with engine errors
// reported.
func (p *Pattern) FindStringSubmatchIndexErr(s string) ([]int, error) {
	return p.search.FindStringSubmatchIndex(s)
}
