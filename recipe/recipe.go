// Package recipe describes builder chains as YAML documents.
//
// A recipe is a list of steps. Every step may carry several fields; they are
// applied to the builder in a fixed order: start, quantity, character spec,
// modifiers, alternation, end.
//
//	flags: [case_insensitive]
//	steps:
//	  - start: true
//	    exactly: 1
//	    of: "p"
//	  - either:
//	      steps: [{exactly: 1, of: "q"}]
//	    or:
//	      steps: [{exactly: 2, of: "r"}]
//	    end: true
package recipe

import (
	"errors"
	"fmt"
	"os"

	"github.com/coregx/rxbuild"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Flag names accepted in the flags list.
const (
	FlagCaseInsensitive = "case_insensitive"
	FlagMultiLine       = "multi_line"
)

var (
	// ErrUnknownFlag indicates a flag name outside FlagCaseInsensitive and FlagMultiLine.
	ErrUnknownFlag = errors.New("unknown flag")

	// ErrUnpairedAlternation indicates a step with either but no or, or the reverse.
	ErrUnpairedAlternation = errors.New("either and or must appear together")

	// ErrConflictingSpec indicates a step naming more than one character spec.
	ErrConflictingSpec = errors.New("more than one of of, any, from, not_from, like")
)

// Recipe is a parsed chain description.
type Recipe struct {
	Flags []string `yaml:"flags,omitempty"`
	Steps []Step   `yaml:"steps"`
}

// Step is one link of the chain.
type Step struct {
	Start bool `yaml:"start,omitempty"`

	Exactly *int `yaml:"exactly,omitempty"`
	Min     *int `yaml:"min,omitempty"`
	Max     *int `yaml:"max,omitempty"`

	Of      *string `yaml:"of,omitempty"`
	Any     bool    `yaml:"any,omitempty"`
	From    *string `yaml:"from,omitempty"`
	NotFrom *string `yaml:"not_from,omitempty"`
	Like    *Recipe `yaml:"like,omitempty"`

	Reluctant     bool    `yaml:"reluctant,omitempty"`
	Capture       bool    `yaml:"capture,omitempty"`
	FollowedBy    *Recipe `yaml:"followed_by,omitempty"`
	NotFollowedBy *Recipe `yaml:"not_followed_by,omitempty"`

	Either *Recipe `yaml:"either,omitempty"`
	Or     *Recipe `yaml:"or,omitempty"`

	End bool `yaml:"end,omitempty"`
}

// Parse decodes and validates a YAML recipe.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("recipe: decode: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Load reads and parses the recipe at path.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recipe: %w", err)
	}
	return Parse(data)
}

// Validate reports every structural problem in the recipe and its nested
// recipes.
func (r *Recipe) Validate() error {
	var errs *multierror.Error
	r.validate("", &errs)
	return errs.ErrorOrNil()
}

func (r *Recipe) validate(path string, errs **multierror.Error) {
	for _, f := range r.Flags {
		if f != FlagCaseInsensitive && f != FlagMultiLine {
			*errs = multierror.Append(*errs, fmt.Errorf("%sflags: %w: %q", path, ErrUnknownFlag, f))
		}
	}

	for i := range r.Steps {
		s := &r.Steps[i]
		at := fmt.Sprintf("%ssteps[%d]", path, i)

		if s.specCount() > 1 {
			*errs = multierror.Append(*errs, fmt.Errorf("%s: %w", at, ErrConflictingSpec))
		}
		if (s.Either == nil) != (s.Or == nil) {
			*errs = multierror.Append(*errs, fmt.Errorf("%s: %w", at, ErrUnpairedAlternation))
		}

		for _, n := range []struct {
			name   string
			recipe *Recipe
		}{
			{"like", s.Like},
			{"followed_by", s.FollowedBy},
			{"not_followed_by", s.NotFollowedBy},
			{"either", s.Either},
			{"or", s.Or},
		} {
			if n.recipe != nil {
				n.recipe.validate(at+"."+n.name+".", errs)
			}
		}
	}
}

func (s *Step) specCount() int {
	n := 0
	for _, set := range []bool{s.Of != nil, s.Any, s.From != nil, s.NotFrom != nil, s.Like != nil} {
		if set {
			n++
		}
	}
	return n
}

// Builder replays the recipe onto a new builder.
func (r *Recipe) Builder() *rxbuild.Builder {
	return r.apply(rxbuild.New())
}

func (r *Recipe) apply(b *rxbuild.Builder) *rxbuild.Builder {
	for _, f := range r.Flags {
		switch f {
		case FlagCaseInsensitive:
			b.CaseInsensitive()
		case FlagMultiLine:
			b.MultiLine()
		}
	}
	for i := range r.Steps {
		r.Steps[i].apply(b)
	}
	return b
}

func (s *Step) apply(b *rxbuild.Builder) {
	if s.Start {
		b.Start()
	}

	switch {
	case s.Exactly != nil:
		b.Exactly(*s.Exactly)
	case s.Min != nil && s.Max != nil:
		b.Between(*s.Min, *s.Max)
	case s.Min != nil:
		b.Min(*s.Min)
	case s.Max != nil:
		b.Max(*s.Max)
	}

	switch {
	case s.Of != nil:
		b.Of(*s.Of)
	case s.Any:
		b.OfAny()
	case s.From != nil:
		b.From([]rune(*s.From)...)
	case s.NotFrom != nil:
		b.NotFrom([]rune(*s.NotFrom)...)
	case s.Like != nil:
		b.Like(s.Like.sub())
	}

	if s.Reluctant {
		b.Reluctantly()
	}
	if s.Capture {
		b.AsCapturingGroup()
	}
	if s.FollowedBy != nil {
		b.FollowedBy(s.FollowedBy.sub())
	}
	if s.NotFollowedBy != nil {
		b.NotFollowedBy(s.NotFollowedBy.sub())
	}

	if s.Either != nil {
		b.Either(s.Either.sub())
	}
	if s.Or != nil {
		b.Or(s.Or.sub())
	}

	if s.End {
		b.End()
	}
}

// sub adapts a nested recipe to a SubPattern. Nested flags are ignored:
// flags apply to whole patterns only.
func (r *Recipe) sub() rxbuild.SubPattern {
	return func(b *rxbuild.Builder) *rxbuild.Builder {
		for i := range r.Steps {
			r.Steps[i].apply(b)
		}
		return b
	}
}
