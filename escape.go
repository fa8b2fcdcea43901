package rxbuild

// Characters escaped when text is matched literally, outside a class.
const specialOutsideClass = `\.^$*+?()[{`

// Characters escaped inside a bracketed character class.
const specialInsideClass = `\^-]`

// QuoteLiteral escapes s for use as literal text outside a character class.
// This is the escaping Of applies. Backslash is escaped too, so Of(`\d`)
// matches a backslash followed by d rather than a digit.
//
// Example:
//
//	rxbuild.QuoteLiteral("1+1=2?") // `1\+1=2\?`
func QuoteLiteral(s string) string {
	return escape(s, specialOutsideClass)
}

// QuoteClass escapes s for use between the brackets of a character class.
// This is the escaping From and NotFrom apply. Backslash is escaped too, so
// a backslash passed to From is a member of the class and never starts an
// escape sequence.
//
// Example:
//
//	rxbuild.QuoteClass("a-z") // `a\-z`
func QuoteClass(s string) string {
	return escape(s, specialInsideClass)
}

// escape prepends a backslash to every byte of s found in special.
func escape(s, special string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}

	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

// isSpecial returns true if c is in the special characters string.
func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}
