package rxbuild

import (
	"strings"
	"testing"
)

func TestQuoteLiteral(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"plain", "plain"},
		{"a.b", `a\.b`},
		{"^$", `\^\$`},
		{"*+?", `\*\+\?`},
		{"()[{", `\(\)\[\{`},
		{`\d`, `\\d`},
		// Closing brackets and class-only specials pass through.
		{"]}-", "]}-"},
		{"héllo.wörld", `héllo\.wörld`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := QuoteLiteral(tt.input); got != tt.want {
				t.Errorf("QuoteLiteral(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestQuoteClass(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"pqr", "pqr"},
		{"^-]", `\^\-\]`},
		{`\`, `\\`},
		// Outside-only specials pass through inside a class.
		{".$*+?()[{", ".$*+?()[{"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := QuoteClass(tt.input); got != tt.want {
				t.Errorf("QuoteClass(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestOfEscapesEverySpecial checks each outside-class special appears
// backslash-escaped in the literal and still matches itself.
func TestOfEscapesEverySpecial(t *testing.T) {
	for i := 0; i < len(specialOutsideClass); i++ {
		c := string(specialOutsideClass[i])
		t.Run(c, func(t *testing.T) {
			b := New().Start().Exactly(1).Of(c).End()
			if lit := b.Literal(); !strings.Contains(lit, `\`+c) {
				t.Errorf("Literal() = %q, want it to contain %q", lit, `\`+c)
			}
			p, err := b.Compile()
			if err != nil {
				t.Fatalf("Compile() error: %v", err)
			}
			if !p.Matches(c) {
				t.Errorf("Matches(%q) = false, want true", c)
			}
		})
	}
}

// TestClassSpecialsOnlyEscapedInClass checks that ^ - ] are escaped by From
// but - and ] are left alone by Of.
func TestClassSpecialsOnlyEscapedInClass(t *testing.T) {
	for _, c := range []rune{'-', ']'} {
		if lit := New().Exactly(1).Of(string(c)).Literal(); strings.Contains(lit, `\`) {
			t.Errorf("Of(%q) literal %q contains an escape", c, lit)
		}
		if lit := New().Exactly(1).From(c).Literal(); !strings.Contains(lit, `\`+string(c)) {
			t.Errorf("From(%q) literal %q lacks an escape", c, lit)
		}
	}
}

// TestBackslashNeverStartsEscape checks a backslash supplied to Of or From
// is matched literally rather than forming an escape such as \d.
func TestBackslashNeverStartsEscape(t *testing.T) {
	of := New().Start().Exactly(1).Of(`\d`).End().MustCompile()
	checkMatches(t, of, []matchCase{{`\d`, true}, {"5", false}})

	from := New().Start().Exactly(2).From('\\', 'd').End().MustCompile()
	checkMatches(t, from, []matchCase{{`\d`, true}, {`d\`, true}, {"55", false}})
}
