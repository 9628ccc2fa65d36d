package scanner

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/opencurator/contentgate/internal/report"
)

// unicodeIssues scans text for Unicode smuggling indicators: invisible
// characters, bidirectional overrides, tag characters, unsafe controls, and
// script homoglyphs. Only the first occurrence per category is reported.
func unicodeIssues(text string, skipLines bool) []report.ValidationIssue {
	var issues []report.ValidationIssue
	seen := make(map[string]bool)

	emit := func(typ string, severity report.Severity, detail string, pos int) {
		if seen[typ] {
			return
		}
		seen[typ] = true
		issue := report.ValidationIssue{
			Severity: severity,
			Type:     typ,
			Details:  detail,
		}
		if !skipLines {
			issue.Line = strings.Count(text[:pos], "\n") + 1
		}
		issues = append(issues, issue)
	}

	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])

		if r == utf8.RuneError && size == 1 {
			emit("invalid_utf8", report.SeverityCritical,
				fmt.Sprintf("Invalid UTF-8 byte 0x%02X", text[i]), i)
			i++
			continue
		}

		switch {
		case isZeroWidth(r):
			emit("unicode_zero_width", report.SeverityCritical,
				fmt.Sprintf("Zero-width character U+%04X can hide content from display", r), i)
		case isBidiOverride(r):
			emit("unicode_bidi_override", report.SeverityCritical,
				fmt.Sprintf("Bidirectional override U+%04X can make displayed text differ from stored text", r), i)
		case isTagCharacter(r):
			emit("unicode_tag_char", report.SeverityCritical,
				fmt.Sprintf("Unicode tag character U+%04X can smuggle hidden instructions", r), i)
		case isUnsafeControl(r):
			emit("unicode_control_char", report.SeverityCritical,
				fmt.Sprintf("Control character U+%04X should not appear in content", r), i)
		default:
			if latin, ok := homoglyphOf(r); ok {
				emit("unicode_homoglyph", report.SeverityMedium,
					fmt.Sprintf("Character U+%04X looks like Latin '%c' (possible homoglyph)", r, latin), i)
			}
		}
		i += size
	}

	return issues
}

func isZeroWidth(r rune) bool {
	switch r {
	case '\u200B', // ZERO WIDTH SPACE
		'\u200C', // ZERO WIDTH NON-JOINER
		'\u200D', // ZERO WIDTH JOINER
		'\uFEFF', // ZERO WIDTH NO-BREAK SPACE (BOM)
		'\u2060', // WORD JOINER
		'\u180E', // MONGOLIAN VOWEL SEPARATOR
		'\u200E', // LEFT-TO-RIGHT MARK
		'\u200F': // RIGHT-TO-LEFT MARK
		return true
	}
	return false
}

func isBidiOverride(r rune) bool {
	switch r {
	case '\u202A', // LEFT-TO-RIGHT EMBEDDING
		'\u202B', // RIGHT-TO-LEFT EMBEDDING
		'\u202C', // POP DIRECTIONAL FORMATTING
		'\u202D', // LEFT-TO-RIGHT OVERRIDE
		'\u202E', // RIGHT-TO-LEFT OVERRIDE
		'\u2066', // LEFT-TO-RIGHT ISOLATE
		'\u2067', // RIGHT-TO-LEFT ISOLATE
		'\u2068', // FIRST STRONG ISOLATE
		'\u2069': // POP DIRECTIONAL ISOLATE
		return true
	}
	return false
}

func isTagCharacter(r rune) bool {
	return r >= 0xE0001 && r <= 0xE007F
}

func isUnsafeControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	if r <= 0x1F || r == 0x7F {
		return true
	}
	return r >= 0x80 && r <= 0x9F
}

// homoglyphOf reports the Latin letter a Cyrillic/Greek rune is visually
// confusable with, as used in homograph attacks.
func homoglyphOf(r rune) (rune, bool) {
	if unicode.Is(unicode.Cyrillic, r) {
		latin, ok := cyrillicHomoglyphs[r]
		return latin, ok
	}
	if unicode.Is(unicode.Greek, r) {
		latin, ok := greekHomoglyphs[r]
		return latin, ok
	}
	return 0, false
}

var cyrillicHomoglyphs = map[rune]rune{
	'а': 'a', 'А': 'A',
	'В': 'B',
	'с': 'c', 'С': 'C',
	'е': 'e', 'Е': 'E',
	'Н': 'H',
	'і': 'i', 'І': 'I',
	'К': 'K',
	'М': 'M',
	'о': 'o', 'О': 'O',
	'р': 'p', 'Р': 'P',
	'Т': 'T',
	'х': 'x', 'Х': 'X',
	'у': 'y', 'У': 'Y',
}

var greekHomoglyphs = map[rune]rune{
	'Α': 'A', 'Β': 'B', 'Ε': 'E', 'Η': 'H', 'Ι': 'I',
	'Κ': 'K', 'Μ': 'M', 'Ν': 'N', 'Ο': 'O', 'ο': 'o',
	'Ρ': 'P', 'Τ': 'T', 'Χ': 'X', 'Υ': 'Y', 'Ζ': 'Z',
}
