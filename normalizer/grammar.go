package normalizer

import (
	"strings"

	"github.com/hanlingo/hanlingo/content"
)

// GrammarPatterns renders each pattern as its name, the joined pattern
// segments, the formula, and one labeled explanation per language.
func GrammarPatterns(patterns []content.GrammarPattern) []Item {
	items := make([]Item, 0, len(patterns))
	for _, p := range patterns {
		items = append(items, grammarPattern(p))
	}
	return items
}

func grammarPattern(p content.GrammarPattern) Item {
	var parts []string

	if name := strings.TrimSpace(p.Name); len(name) > 0 {
		parts = append(parts, name)
	}

	segments := make([]string, 0, len(p.Segments))
	for _, seg := range p.Segments {
		if seg = strings.TrimSpace(seg); len(seg) > 0 {
			segments = append(segments, seg)
		}
	}
	if len(segments) > 0 {
		parts = append(parts, "Pattern: "+strings.Join(segments, " + "))
	}

	if formula := strings.TrimSpace(p.Formula); len(formula) > 0 {
		parts = append(parts, "Formula: "+formula)
	}

	for _, e := range p.Explanations {
		text := strings.TrimSpace(e.Text)
		if len(text) == 0 {
			continue
		}
		if lang := strings.TrimSpace(e.Language); len(lang) > 0 {
			parts = append(parts, "Explanation ("+lang+"): "+text)
		} else {
			parts = append(parts, "Explanation: "+text)
		}
	}

	metadata := map[string]any{}
	if p.HskLevel > 0 {
		metadata["hskLevel"] = p.HskLevel
	}

	return Item{
		SourceType: content.SourceGrammar,
		SourceId:   p.Id,
		Text:       strings.Join(parts, ". "),
		Metadata:   metadata,
	}
}
