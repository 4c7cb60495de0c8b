// Package langhint normalizes transcript language tags and infers a best-effort
// language for untagged lines.
package langhint

import (
	"sort"
	"strings"

	"golang.org/x/text/language"

	"carelens/internal/core/sdoh"
)

// DefaultLang is assumed when a transcript carries no usable hints
const DefaultLang = "en"

// aliases maps tags the upstream channels actually send to 2-letter codes.
// language.Parse covers the ISO forms; this table covers the human ones
var aliases = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"español":    "es",
	"espanol":    "es",
	"castellano": "es",
	"ingles":     "en",
	"inglés":     "en",
}

// Normalize collapses a language tag to a lowercase 2-letter code.
// Alias table first, then BCP-47/ISO canonicalization, then the first two
// characters lowercased. Empty input normalizes to empty
func Normalize(tag string) string {
	t := strings.ToLower(strings.TrimSpace(tag))
	if t == "" {
		return ""
	}
	if v, ok := aliases[t]; ok {
		return v
	}
	if parsed, err := language.Parse(t); err == nil {
		if base, conf := parsed.Base(); conf > language.No {
			return base.String()
		}
	}
	if len(t) > 2 {
		t = t[:2]
	}
	return t
}

// spanishMarks are diacritics and punctuation that only show up in Spanish
// text across our supported channels
const spanishMarks = "áéíóúñü¿¡"

// Infer guesses a language for an untagged line. Spanish-specific marks are
// decisive; everything else falls back to English
func Infer(text string) string {
	if strings.ContainsAny(strings.ToLower(text), spanishMarks) {
		return "es"
	}
	return DefaultLang
}

// ForLine resolves the effective language of a line: its explicit tag when
// present, otherwise inference from the text
func ForLine(line sdoh.TranscriptLine) string {
	if tag := Normalize(line.Language); tag != "" {
		return tag
	}
	return Infer(line.Text)
}

// Summary returns the sorted set of distinct languages observed across lines,
// defaulting to ["en"] for an empty transcript
func Summary(lines []sdoh.TranscriptLine) []string {
	set := make(map[string]struct{}, 2)
	for _, ln := range lines {
		if strings.TrimSpace(ln.Text) == "" {
			continue
		}
		set[ForLine(ln)] = struct{}{}
	}
	if len(set) == 0 {
		return []string{DefaultLang}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
