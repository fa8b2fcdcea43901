// Package rxbuild assembles regular expressions from named, chainable
// operations instead of raw pattern syntax.
//
// A chain is read as a sequence of clauses. Each clause starts with a
// quantity (Exactly, Min, Max), names what is repeated (Of, OfAny, From,
// NotFrom, Like) and may add modifiers (Reluctantly, AsCapturingGroup,
// PrecededBy, NotPrecededBy). Starting the next quantity finalizes the
// previous clause into a fragment; Literal and Compile finalize the last one.
//
// Basic usage:
//
//	re, err := rxbuild.New().
//	    Start().
//	    Min(1).From('a', 'b', 'c').
//	    Exactly(1).Of(".").
//	    Between(2, 4).OfAny().
//	    End().
//	    Compile()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.MatchString("abc.xyz") // true
//
// Composition:
//
//	word := func(b *rxbuild.Builder) *rxbuild.Builder {
//	    return b.Min(1).From('a', 'b', 'c')
//	}
//	re := rxbuild.New().
//	    Either(word).
//	    Or(func(b *rxbuild.Builder) *rxbuild.Builder { return b.Exactly(3).OfAny() }).
//	    MustCompile()
//
// Compiled patterns run on coregex when the RE2 grammar can express them and
// on regexp2 otherwise (lookahead assertions). See package engine.
//
// A Builder is not safe for concurrent use. A compiled Pattern is.
package rxbuild

import (
	"strings"

	"github.com/coregx/rxbuild/engine"
	"github.com/hashicorp/go-multierror"
)

// SubPattern builds a nested pattern on the fresh Builder it receives and
// returns that Builder. It is used by Like, Either, Or and the lookahead
// operations; the nested Builder shares no state with its parent.
type SubPattern func(b *Builder) *Builder

// Builder accumulates a pattern. Every method returns the receiver so calls
// can be chained.
type Builder struct {
	fragments []string
	pending   clause
	flags     engine.Flags
	errs      *multierror.Error
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{pending: newClause()}
}

// Reset discards all fragments, pending state, flags and recorded errors.
func (b *Builder) Reset() *Builder {
	b.fragments = b.fragments[:0]
	b.pending = newClause()
	b.flags = engine.Flags{}
	b.errs = nil
	return b
}

// CaseInsensitive makes the compiled pattern ignore case.
func (b *Builder) CaseInsensitive() *Builder {
	b.flags.CaseInsensitive = true
	return b
}

// MultiLine makes ^ and $ anchors in the compiled pattern match at line
// boundaries.
func (b *Builder) MultiLine() *Builder {
	b.flags.MultiLine = true
	return b
}

// Start anchors the following fragments at the start of input. It does not
// finalize the pending clause.
func (b *Builder) Start() *Builder {
	b.fragments = append(b.fragments, "(?:^)")
	return b
}

// End finalizes the pending clause and anchors at the end of input.
func (b *Builder) End() *Builder {
	b.flush()
	b.fragments = append(b.fragments, "(?:$)")
	return b
}

// Either finalizes the pending clause and records the left side of an
// alternation. The alternation is emitted by the following Or; an Either
// that never sees its Or is dropped and reported as ErrEitherWithoutOr.
func (b *Builder) Either(p SubPattern) *Builder {
	b.flush()
	if b.pending.haveEither {
		b.fail("either", ErrEitherWithoutOr)
	}
	b.pending.either = b.sub("either", p)
	b.pending.haveEither = true
	return b
}

// Or emits (?:(?:left)|(?:right)) where left comes from the preceding Either.
// The alternation carries no quantity or modifiers, and anything set on the
// pending clause since Either is discarded.
func (b *Builder) Or(p SubPattern) *Builder {
	if !b.pending.haveEither {
		b.fail("or", ErrOrWithoutEither)
	}
	left := b.pending.either
	right := b.sub("or", p)
	b.fragments = append(b.fragments, "(?:(?:"+left+")|(?:"+right+"))")
	b.pending = newClause()
	return b
}

// Exactly starts a clause repeated exactly n times.
func (b *Builder) Exactly(n int) *Builder {
	b.flush()
	b.pending.min = b.count("exactly", n)
	b.pending.max = b.pending.min
	return b
}

// Min starts a clause repeated at least n times, or sets the lower bound of
// a clause whose character spec is not yet given.
func (b *Builder) Min(n int) *Builder {
	b.flush()
	b.pending.min = b.count("min", n)
	return b
}

// Max starts a clause repeated at most n times, or sets the upper bound of
// a clause whose character spec is not yet given.
func (b *Builder) Max(n int) *Builder {
	b.flush()
	b.pending.max = b.count("max", n)
	return b
}

// Between is shorthand for Min(min).Max(max).
func (b *Builder) Between(min, max int) *Builder {
	return b.Min(min).Max(max)
}

// Of repeats the literal text s. Special characters are escaped.
func (b *Builder) Of(s string) *Builder {
	b.setSpec(specText, QuoteLiteral(s))
	return b
}

// OfAny repeats any single character.
func (b *Builder) OfAny() *Builder {
	b.pending.spec = charSpec{kind: specAny}
	return b
}

// From repeats any one of chars.
func (b *Builder) From(chars ...rune) *Builder {
	b.setSpec(specSet, QuoteClass(string(chars)))
	return b
}

// NotFrom repeats any character except chars.
func (b *Builder) NotFrom(chars ...rune) *Builder {
	b.setSpec(specNotSet, QuoteClass(string(chars)))
	return b
}

// Like repeats the pattern built by p.
func (b *Builder) Like(p SubPattern) *Builder {
	b.setSpec(specLike, b.sub("like", p))
	return b
}

// Reluctantly makes the clause's quantifier prefer the shortest match.
func (b *Builder) Reluctantly() *Builder {
	b.pending.reluctant = true
	return b
}

// AsCapturingGroup wraps the clause in a capturing group.
func (b *Builder) AsCapturingGroup() *Builder {
	b.pending.capturing = true
	return b
}

// PrecededBy requires the pattern built by p to match right AFTER the
// clause. The name is historical: the assertion is a lookahead (?=...)
// placed after the clause, not a lookbehind. FollowedBy is the same
// operation under an accurate name.
func (b *Builder) PrecededBy(p SubPattern) *Builder {
	b.pending.ahead = b.sub("preceded by", p)
	return b
}

// NotPrecededBy requires the pattern built by p NOT to match right after
// the clause, as a negative lookahead (?!...). See PrecededBy for the
// naming caveat; NotFollowedBy is the accurately named alias.
func (b *Builder) NotPrecededBy(p SubPattern) *Builder {
	b.pending.notAhead = b.sub("not preceded by", p)
	return b
}

// FollowedBy is PrecededBy.
func (b *Builder) FollowedBy(p SubPattern) *Builder {
	return b.PrecededBy(p)
}

// NotFollowedBy is NotPrecededBy.
func (b *Builder) NotFollowedBy(p SubPattern) *Builder {
	return b.NotPrecededBy(p)
}

// Literal finalizes the pending clause and returns the pattern text. Calling
// it again without further changes returns the same string.
func (b *Builder) Literal() string {
	b.flush()
	if b.pending.haveEither {
		b.fail("literal", ErrEitherWithoutOr)
		b.pending.either, b.pending.haveEither = "", false
	}
	return strings.Join(b.fragments, "")
}

// String implements fmt.Stringer. It is the same as Literal.
func (b *Builder) String() string {
	return b.Literal()
}

// Flags returns the pattern-wide flags as letters: "i" for case-insensitive
// followed by "m" for multi-line.
func (b *Builder) Flags() string {
	return b.flags.String()
}

// Err returns every error recorded by the chain so far, or nil.
func (b *Builder) Err() error {
	return b.errs.ErrorOrNil()
}

// Compile finalizes the chain and compiles it with the default engine
// configuration.
func (b *Builder) Compile() (*Pattern, error) {
	return b.CompileWithConfig(engine.DefaultConfig())
}

// CompileWithConfig finalizes the chain and compiles it with config.
// Errors recorded by the chain are returned before compilation is attempted.
func (b *Builder) CompileWithConfig(config engine.Config) (*Pattern, error) {
	expr := b.Literal()
	if err := b.Err(); err != nil {
		return nil, err
	}
	return compile(expr, b.flags, config)
}

// MustCompile is like Compile but panics if the chain or the pattern is
// invalid.
func (b *Builder) MustCompile() *Pattern {
	p, err := b.Compile()
	if err != nil {
		panic("rxbuild: Compile(`" + b.Literal() + "`): " + err.Error())
	}
	return p
}

// flush turns an eligible pending clause into a fragment and resets it.
func (b *Builder) flush() {
	if !b.pending.eligible() {
		return
	}

	c := &b.pending
	if c.haveEither {
		b.fail("flush", ErrEitherWithoutOr)
	}
	switch {
	case c.min == -1 && c.max == -1:
		b.fail("flush", ErrMissingQuantity)
	case c.min != -1 && c.max != -1 && c.min > c.max:
		b.fail("flush", ErrInvertedBounds)
	}

	b.fragments = append(b.fragments, c.fragment())
	b.pending = newClause()
}

// setSpec replaces the clause's character spec. Empty input leaves the
// current spec untouched.
func (b *Builder) setSpec(kind specKind, value string) {
	if value == "" {
		return
	}
	b.pending.spec = charSpec{kind: kind, value: value}
}

// sub runs p on a fresh Builder and returns its literal, adopting any errors
// it recorded.
func (b *Builder) sub(op string, p SubPattern) string {
	if p == nil {
		b.fail(op, ErrNilSubPattern)
		return ""
	}
	nested := p(New())
	if nested == nil {
		b.fail(op, ErrNilSubPattern)
		return ""
	}
	lit := nested.Literal()
	if err := nested.Err(); err != nil {
		b.errs = multierror.Append(b.errs, err)
	}
	return lit
}

// count validates a repetition bound. Negative values are recorded and
// clamped to zero.
func (b *Builder) count(op string, n int) int {
	if n < 0 {
		b.fail(op, ErrNegativeCount)
		return 0
	}
	return n
}

func (b *Builder) fail(op string, err error) {
	b.errs = multierror.Append(b.errs, &BuildError{Op: op, Err: err})
}
