package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanlingo/hanlingo/content"
)

func TestWords(t *testing.T) {
	t.Run("renders headword, pinyin, and senses", func(t *testing.T) {
		items := Words([]content.Word{{
			Id:       "w-1",
			Headword: "你好",
			Pinyin:   "nǐ hǎo",
			HskLevel: 1,
			AudioUrl: "https://cdn.example.com/nihao.mp3",
			Senses: []content.Sense{
				{PartOfSpeech: "interjection", Translations: []string{"hello", "hi"}},
			},
		}})

		require.Len(t, items, 1)

		item := items[0]
		assert.Equal(t, content.SourceWord, item.SourceType)
		assert.Equal(t, "w-1", item.SourceId)
		assert.Equal(t, "你好 (nǐ hǎo) | interjection: hello, hi", item.Text)
		assert.Equal(t, true, item.Metadata["hasAudio"])
		assert.Equal(t, 1, item.Metadata["hskLevel"])
	})

	t.Run("joins multiple senses with pipes", func(t *testing.T) {
		items := Words([]content.Word{{
			Id:       "w-2",
			Headword: "打",
			Pinyin:   "dǎ",
			Senses: []content.Sense{
				{PartOfSpeech: "verb", Translations: []string{"to hit"}},
				{PartOfSpeech: "verb", Translations: []string{"to play"}},
			},
		}})

		require.Len(t, items, 1)
		assert.Equal(t, "打 (dǎ) | verb: to hit | verb: to play", items[0].Text)
	})

	t.Run("tolerates missing pinyin and senses", func(t *testing.T) {
		items := Words([]content.Word{{Id: "w-3", Headword: "水"}})

		require.Len(t, items, 1)
		assert.Equal(t, "水", items[0].Text)
		assert.Equal(t, false, items[0].Metadata["hasAudio"])
		assert.NotContains(t, items[0].Metadata, "hskLevel")
	})

	t.Run("a sense without a part of speech keeps its translations", func(t *testing.T) {
		items := Words([]content.Word{{
			Id:       "w-4",
			Headword: "茶",
			Senses:   []content.Sense{{Translations: []string{"tea"}}},
		}})

		require.Len(t, items, 1)
		assert.Equal(t, "茶 | tea", items[0].Text)
	})
}
