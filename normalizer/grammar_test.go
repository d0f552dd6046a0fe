package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanlingo/hanlingo/content"
)

func TestGrammarPatterns(t *testing.T) {
	t.Run("renders name, segments, formula, and explanations", func(t *testing.T) {
		items := GrammarPatterns([]content.GrammarPattern{{
			Id:       "g-1",
			Name:     "把 sentence",
			Segments: []string{"Subject", "把", "Object", "Verb"},
			Formula:  "S + 把 + O + V",
			HskLevel: 3,
			Explanations: []content.Explanation{
				{Language: "en", Text: "Moves the object before the verb"},
				{Language: "ru", Text: "Выносит дополнение перед глагол"},
			},
		}})

		require.Len(t, items, 1)

		item := items[0]
		assert.Equal(t, content.SourceGrammar, item.SourceType)
		assert.Equal(t, "g-1", item.SourceId)
		assert.Equal(t,
			"把 sentence. Pattern: Subject + 把 + Object + Verb. Formula: S + 把 + O + V. "+
				"Explanation (en): Moves the object before the verb. "+
				"Explanation (ru): Выносит дополнение перед глагол",
			item.Text)
		assert.Equal(t, 3, item.Metadata["hskLevel"])
	})

	t.Run("skips empty segments and blank explanations", func(t *testing.T) {
		items := GrammarPatterns([]content.GrammarPattern{{
			Id:       "g-2",
			Name:     "了 particle",
			Segments: []string{"Verb", "", "了"},
			Explanations: []content.Explanation{
				{Language: "en", Text: "  "},
			},
		}})

		require.Len(t, items, 1)
		assert.Equal(t, "了 particle. Pattern: Verb + 了", items[0].Text)
		assert.NotContains(t, items[0].Metadata, "hskLevel")
	})

	t.Run("an explanation without a language drops the parenthetical", func(t *testing.T) {
		items := GrammarPatterns([]content.GrammarPattern{{
			Id:   "g-3",
			Name: "吗 question",
			Explanations: []content.Explanation{
				{Text: "Turns a statement into a yes-no question"},
			},
		}})

		require.Len(t, items, 1)
		assert.Equal(t, "吗 question. Explanation: Turns a statement into a yes-no question", items[0].Text)
	})
}
