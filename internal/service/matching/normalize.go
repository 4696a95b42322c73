package matching

import (
	"regexp"
	"strings"
	"unicode"
)

var abbreviations = []struct {
	re   *regexp.Regexp
	full string
}{
	{regexp.MustCompile(`\bBB\b`), "BALL BEARING"},
	{regexp.MustCompile(`\bZZ\b`), "DOUBLE SHIELDED"},
}

var qualifiers = map[string]struct{}{
	"DOUBLE":   {},
	"SINGLE":   {},
	"SHIELDED": {},
	"SEALED":   {},
	"OPEN":     {},
	"TYPE":     {},
}

// NormalizePart maps a free-form part number to its catalog key: abbreviations
// expanded, qualifiers dropped, alphabetic tokens first and numeric tokens last,
// all joined without separators. NormalizePart(NormalizePart(x)) == NormalizePart(x).
func NormalizePart(part string) string {
	cur := normalizeOnce(part)
	for i := 0; i < 4; i++ {
		next := normalizeOnce(cur)
		if next == cur {
			return cur
		}
		cur = next
	}
	return cur
}

func normalizeOnce(part string) string {
	s := strings.ToUpper(strings.TrimSpace(part))
	if s == "" {
		return ""
	}
	for _, a := range abbreviations {
		s = a.re.ReplaceAllString(s, a.full)
	}

	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})

	var alpha, numeric []string
	for _, tok := range tokens {
		if _, skip := qualifiers[tok]; skip {
			continue
		}
		if isDigits(tok) {
			numeric = append(numeric, tok)
			continue
		}
		alpha = append(alpha, tok)
	}
	return strings.Join(alpha, "") + strings.Join(numeric, "")
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
