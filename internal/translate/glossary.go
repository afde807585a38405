package translate

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

// Glossary maps source phrases to translations, per target language.
//
//	languages:
//	  fr:
//	    "Your headline": "Votre titre"
//	    swipe: glissez
type Glossary struct {
	Languages map[string]map[string]string `yaml:"languages"`
}

// LoadGlossary reads a YAML glossary file.
func LoadGlossary(path string) (*Glossary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glossary %s: %w", path, err)
	}
	return ParseGlossary(path, data)
}

// ParseGlossary decodes glossary YAML. path is only used in errors.
func ParseGlossary(path string, data []byte) (*Glossary, error) {
	var g Glossary
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, carouselerrors.NewParseError(path, yamlLine(err), err)
	}
	if len(g.Languages) == 0 {
		return nil, carouselerrors.NewValidationError("languages", "glossary defines no languages", nil)
	}
	return &g, nil
}

var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

func yamlLine(err error) int {
	m := yamlLinePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	line, _ := strconv.Atoi(m[1])
	return line
}

// GlossaryTranslator translates offline from a glossary. A string that
// matches an entry exactly is replaced whole; otherwise every entry found on
// word boundaries is replaced, longest entries first. Anything left over is
// kept as is.
type GlossaryTranslator struct {
	glossary *Glossary
}

// NewGlossaryTranslator wraps g.
func NewGlossaryTranslator(g *Glossary) *GlossaryTranslator {
	return &GlossaryTranslator{glossary: g}
}

// Translate implements Translator.
func (t *GlossaryTranslator) Translate(ctx context.Context, texts []string, target string) ([]string, error) {
	terms, ok := t.glossary.Languages[target]
	if !ok {
		return nil, fmt.Errorf("glossary has no %q entries", target)
	}

	keys := make([]string, 0, len(terms))
	for k := range terms {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	patterns := make([]*regexp.Regexp, len(keys))
	for i, k := range keys {
		patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)
	}

	out := make([]string, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if whole, ok := terms[strings.TrimSpace(text)]; ok {
			out[i] = whole
			continue
		}
		out[i] = replaceTerms(text, keys, patterns, terms)
	}
	return out, nil
}

// replaceTerms substitutes in one pass so a translation is never translated
// again by a shorter entry.
func replaceTerms(text string, keys []string, patterns []*regexp.Regexp, terms map[string]string) string {
	type hit struct{ start, end int }
	var hits []hit
	taken := func(s, e int) bool {
		for _, h := range hits {
			if s < h.end && e > h.start {
				return true
			}
		}
		return false
	}
	replacement := make(map[int]string)
	for i, re := range patterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if taken(loc[0], loc[1]) {
				continue
			}
			hits = append(hits, hit{loc[0], loc[1]})
			replacement[loc[0]] = terms[keys[i]]
		}
	}
	if len(hits) == 0 {
		return text
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })
	var b strings.Builder
	last := 0
	for _, h := range hits {
		b.WriteString(text[last:h.start])
		b.WriteString(replacement[h.start])
		last = h.end
	}
	b.WriteString(text[last:])
	return b.String()
}
