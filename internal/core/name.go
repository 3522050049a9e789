package core

// name.go cleans free-text customer names.
//
// The pipeline handles the messy reality of dealer lead exports: model codes
// autofilled into the name field, letter-spaced entries ("S U R A J"),
// run-together PascalCase imports, exotic Unicode whitespace, and outright
// junk values. Rules run in a fixed order; reordering them changes results.

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/revoltmotors/leadclean/internal/schema"
)

var (
	// Hyphen variants collapse without inserting a space, so "Mary-Anne"
	// becomes "MaryAnne" rather than two words.
	hyphenReplacer = strings.NewReplacer("-", "", "–", "", "—", "")

	// Punctuation stripped from names. Apostrophes survive (O'Brien).
	punctRegex = regexp.MustCompile("[.,_/\\\\()\\[\\]{}:;!?@#$%^&*+=|~<>\"`]")

	// Three or more single-letter tokens separated by whitespace.
	spacedLettersRegex = regexp.MustCompile(`^\p{L}(?:\s+\p{L}){2,}$`)

	// An uppercase letter directly after a lowercase one marks a word
	// boundary lost on import: "RameshKumar" -> "Ramesh Kumar".
	camelBoundaryRegex = regexp.MustCompile(`(\p{Ll})(\p{Lu})`)
)

// NameRules carries the product-specific fixtures for name cleaning: model
// codes to strip and the junk-name blacklist. Blacklist entries match by
// exact equality, case-insensitive, never substring.
type NameRules struct {
	junk    map[string]struct{}
	modelRe *regexp.Regexp
}

// NewNameRules builds NameRules from explicit fixture lists. Longer model
// tokens are matched before shorter ones.
func NewNameRules(modelTokens, junkNames []string) NameRules {
	junk := make(map[string]struct{}, len(junkNames))
	for _, w := range junkNames {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			junk[w] = struct{}{}
		}
	}

	var parts []string
	for _, t := range modelTokens {
		if t = strings.TrimSpace(t); t != "" {
			parts = append(parts, t)
		}
	}
	sort.SliceStable(parts, func(i, j int) bool { return len(parts[i]) > len(parts[j]) })
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}

	var modelRe *regexp.Regexp
	if len(parts) > 0 {
		modelRe = regexp.MustCompile(`(?i)(?:` + strings.Join(parts, "|") + `)`)
	}

	return NameRules{junk: junk, modelRe: modelRe}
}

// DefaultNameRules returns rules built from the stock fixtures.
func DefaultNameRules() NameRules {
	return NewNameRules(schema.DefaultModelTokens, schema.DefaultJunkNames)
}

// CleanName runs the full cleaning pipeline over raw free-text input.
// It returns the cleaned display name, or "" plus a reason code when the
// value is rejected. Already-clean names pass through unchanged.
func (r NameRules) CleanName(raw string) (cleaned, reason string) {
	s := strings.TrimSpace(raw)
	if s == "" || isNAToken(s) {
		return "", ReasonEmptyInput
	}

	if r.modelRe != nil {
		s = r.modelRe.ReplaceAllString(s, "")
	}

	s = hyphenReplacer.Replace(s)
	s = punctRegex.ReplaceAllString(s, "")
	s = normalizeSpaces(s)

	// Letter-spaced data entry: collapse "S U R A J" into one word.
	if spacedLettersRegex.MatchString(s) {
		s = strings.ReplaceAll(s, " ", "")
	}

	if s != "" && isAllDigits(strings.ReplaceAll(s, " ", "")) {
		return "", ReasonPurelyNumeric
	}

	s = keepNameRunes(s)
	s = normalizeSpaces(s)
	if s == "" {
		return "", ReasonNoValidChars
	}

	s = camelBoundaryRegex.ReplaceAllString(s, "$1 $2")
	s = titleCaseWords(s)

	if reason := r.checkSensible(s); reason != "" {
		return "", reason
	}
	return s, ""
}

// checkSensible rejects cleaned names that cannot be a real person.
func (r NameRules) checkSensible(name string) string {
	if name == "" {
		return ReasonEmptyInput
	}
	lower := strings.ToLower(name)
	if _, ok := r.junk[lower]; ok {
		return ReasonBlacklistPrefix + lower
	}
	if utf8.RuneCountInString(name) < 2 {
		return ReasonTooShort
	}
	if isAllDigits(name) {
		return ReasonNumeric
	}
	if !strings.ContainsAny(lower, "aeiou") {
		return ReasonNoVowels
	}
	return ""
}

// normalizeSpaces maps every Unicode space separator, plus zero-width
// joiners and BOMs, to a single ASCII space and collapses runs.
func normalizeSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\u200b' || r == '\u200c' || r == '\u200d' || r == '\ufeff' {
			if !space {
				b.WriteByte(' ')
				space = true
			}
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// keepNameRunes drops everything except letters, spaces, and apostrophes.
func keepNameRunes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || r == ' ' || r == '\'' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// titleCaseWords uppercases the first rune of each word and lowercases the
// rest. "SURAJ" -> "Suraj", "ramesh kumar" -> "Ramesh Kumar".
func titleCaseWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
