// Package catalog loads and compiles the SDOH pattern catalog from the
// embedded patterns.json. Definitions are compiled once at process start and
// never mutated afterwards, so the catalog is safe for concurrent readers
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"carelens/internal/core/sdoh"
)

//go:embed patterns.json
var embedded []byte

type rawMatcher struct {
	Literal string `json:"literal,omitempty"`
	Regex   string `json:"regex,omitempty"`
}

type rawMatchers struct {
	Base   []rawMatcher            `json:"base"`
	ByLang map[string][]rawMatcher `json:"by_lang,omitempty"`
}

type rawPattern struct {
	Code           string      `json:"code"`
	Label          string      `json:"label"`
	Domain         string      `json:"domain"`
	Severity       string      `json:"severity"`
	Urgency        string      `json:"urgency"`
	BaseConfidence float64     `json:"base_confidence"`
	EstimatedValue float64     `json:"estimated_value"`
	Matchers       rawMatchers `json:"matchers"`
}

type rawCatalog struct {
	Version  int            `json:"version"`
	Meta     map[string]any `json:"meta"`
	Patterns []rawPattern   `json:"patterns"`
}

// Matcher is one compiled matcher: a lowercased literal substring or a regex.
// Regexes test the raw line text so authors can keep case-sensitive cues;
// literals test the lowercased text
type Matcher struct {
	literal string
	re      *regexp.Regexp
}

// Matches reports whether this matcher hits the line.
// raw is the original text, lowered its lowercased form
func (m Matcher) Matches(raw, lowered string) bool {
	if m.re != nil {
		return m.re.MatchString(raw)
	}
	return strings.Contains(lowered, m.literal)
}

// Definition is one compiled risk category
type Definition struct {
	Code           string
	Label          string
	Domain         string
	Severity       sdoh.Severity
	Urgency        sdoh.Urgency
	BaseConfidence float64
	EstimatedValue float64

	base   []Matcher
	byLang map[string][]Matcher
}

// Pool returns the matcher pool for a normalized 2-letter language tag:
// the base matchers plus any per-language additions
func (d *Definition) Pool(lang string) []Matcher {
	extra := d.byLang[lang]
	if len(extra) == 0 {
		return d.base
	}
	pool := make([]Matcher, 0, len(d.base)+len(extra))
	pool = append(pool, d.base...)
	pool = append(pool, extra...)
	return pool
}

// Languages returns the language tags this definition has extra matchers for
func (d *Definition) Languages() []string {
	out := make([]string, 0, len(d.byLang))
	for k := range d.byLang {
		out = append(out, k)
	}
	return out
}

// Catalog is the compiled, immutable set of pattern definitions
type Catalog struct {
	Version int
	Meta    map[string]any

	defs []Definition
}

// Definitions returns the ordered definition list. Callers must not mutate it
func (c *Catalog) Definitions() []Definition { return c.defs }

// Len returns the number of pattern definitions
func (c *Catalog) Len() int { return len(c.defs) }

// ByCode returns the definition for code, or nil when unknown
func (c *Catalog) ByCode(code string) *Definition {
	for i := range c.defs {
		if c.defs[i].Code == code {
			return &c.defs[i]
		}
	}
	return nil
}

// Load compiles the embedded patterns.json into a Catalog
func Load() (*Catalog, error) {
	var rc rawCatalog
	if err := json.Unmarshal(embedded, &rc); err != nil {
		return nil, fmt.Errorf("catalog: parse patterns.json: %w", err)
	}
	if rc.Version != 1 {
		return nil, fmt.Errorf("catalog: unsupported patterns.json version %d (want 1)", rc.Version)
	}

	c := &Catalog{Version: rc.Version, Meta: rc.Meta}
	seen := make(map[string]struct{}, len(rc.Patterns))

	for _, rp := range rc.Patterns {
		if rp.Code == "" {
			return nil, fmt.Errorf("catalog: pattern with empty code")
		}
		if _, dup := seen[rp.Code]; dup {
			return nil, fmt.Errorf("catalog: duplicate code %q", rp.Code)
		}
		seen[rp.Code] = struct{}{}

		sev, err := parseSeverity(rp.Severity)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", rp.Code, err)
		}
		urg, err := parseUrgency(rp.Urgency)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", rp.Code, err)
		}
		if rp.BaseConfidence < 0 || rp.BaseConfidence > 1 {
			return nil, fmt.Errorf("catalog: %s: base_confidence %v out of [0,1]", rp.Code, rp.BaseConfidence)
		}

		def := Definition{
			Code:           rp.Code,
			Label:          rp.Label,
			Domain:         rp.Domain,
			Severity:       sev,
			Urgency:        urg,
			BaseConfidence: rp.BaseConfidence,
			EstimatedValue: rp.EstimatedValue,
		}

		def.base, err = compileMatchers(rp.Matchers.Base)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: %w", rp.Code, err)
		}
		if len(rp.Matchers.ByLang) > 0 {
			def.byLang = make(map[string][]Matcher, len(rp.Matchers.ByLang))
			for lang, ms := range rp.Matchers.ByLang {
				tag := strings.ToLower(strings.TrimSpace(lang))
				compiled, err := compileMatchers(ms)
				if err != nil {
					return nil, fmt.Errorf("catalog: %s[%s]: %w", rp.Code, lang, err)
				}
				def.byLang[tag] = compiled
			}
		}

		c.defs = append(c.defs, def)
	}

	return c, nil
}

func compileMatchers(in []rawMatcher) ([]Matcher, error) {
	out := make([]Matcher, 0, len(in))
	for _, rm := range in {
		switch {
		case rm.Regex != "":
			re, err := regexp.Compile(rm.Regex)
			if err != nil {
				return nil, fmt.Errorf("compile %q: %w", rm.Regex, err)
			}
			out = append(out, Matcher{re: re})
		case rm.Literal != "":
			out = append(out, Matcher{literal: strings.ToLower(strings.TrimSpace(rm.Literal))})
		default:
			return nil, fmt.Errorf("matcher with neither literal nor regex")
		}
	}
	return out, nil
}

func parseSeverity(s string) (sdoh.Severity, error) {
	switch sdoh.Severity(strings.ToLower(strings.TrimSpace(s))) {
	case sdoh.SeverityLow:
		return sdoh.SeverityLow, nil
	case sdoh.SeverityModerate:
		return sdoh.SeverityModerate, nil
	case sdoh.SeverityHigh:
		return sdoh.SeverityHigh, nil
	default:
		return "", fmt.Errorf("unknown severity %q", s)
	}
}

func parseUrgency(s string) (sdoh.Urgency, error) {
	switch sdoh.Urgency(strings.ToLower(strings.TrimSpace(s))) {
	case sdoh.UrgencyLow:
		return sdoh.UrgencyLow, nil
	case sdoh.UrgencyMedium:
		return sdoh.UrgencyMedium, nil
	case sdoh.UrgencyHigh:
		return sdoh.UrgencyHigh, nil
	default:
		return "", fmt.Errorf("unknown urgency %q", s)
	}
}
