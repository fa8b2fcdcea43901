package rxbuild

import (
	"strconv"
	"strings"
)

// specKind tags the active variant of a clause's character spec.
type specKind int

const (
	specNone specKind = iota
	specText          // Of: escaped literal text
	specAny           // OfAny: any single character
	specSet           // From: escaped inclusion set
	specNotSet        // NotFrom: escaped exclusion set
	specLike          // Like: nested pattern literal
)

// charSpec is what a quantified clause matches. Exactly one variant is
// active; setting another replaces it.
type charSpec struct {
	kind  specKind
	value string
}

// literal renders the spec as pattern text.
func (c charSpec) literal() string {
	switch c.kind {
	case specAny:
		return "."
	case specSet:
		return "[" + c.value + "]"
	case specNotSet:
		return "[^" + c.value + "]"
	default:
		return c.value
	}
}

// clause is the pending, not yet flushed part of a chain.
type clause struct {
	min, max   int // -1 when unset
	spec       charSpec
	reluctant  bool
	capturing  bool
	ahead      string
	notAhead   string
	either     string
	haveEither bool
}

func newClause() clause {
	return clause{min: -1, max: -1}
}

// eligible reports whether the clause would produce a fragment.
func (c *clause) eligible() bool {
	return c.spec.kind != specNone
}

// quantity renders the repetition bounds. With neither bound set the result
// is the malformed "{0,-1}"; callers report ErrMissingQuantity for it.
func (c *clause) quantity() string {
	if c.min != -1 {
		if c.max != -1 {
			return "{" + strconv.Itoa(c.min) + "," + strconv.Itoa(c.max) + "}"
		}
		return "{" + strconv.Itoa(c.min) + ",}"
	}
	return "{0," + strconv.Itoa(c.max) + "}"
}

// fragment renders the clause:
//
//	( ?: (?:X) {q} ? ) (?=A) (?!B)
func (c *clause) fragment() string {
	var sb strings.Builder
	sb.WriteByte('(')
	if !c.capturing {
		sb.WriteString("?:")
	}
	sb.WriteString("(?:")
	sb.WriteString(c.spec.literal())
	sb.WriteByte(')')
	sb.WriteString(c.quantity())
	if c.reluctant {
		sb.WriteByte('?')
	}
	sb.WriteByte(')')
	if c.ahead != "" {
		sb.WriteString("(?=" + c.ahead + ")")
	}
	if c.notAhead != "" {
		sb.WriteString("(?!" + c.notAhead + ")")
	}
	return sb.String()
}
