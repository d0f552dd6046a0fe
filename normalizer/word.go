package normalizer

import (
	"strings"

	"github.com/hanlingo/hanlingo/content"
)

// Words flattens each word into the headword followed by a pipe-joined
// summary of each sense, e.g. "你好 (nǐ hǎo) | interjection: hello, hi".
func Words(words []content.Word) []Item {
	items := make([]Item, 0, len(words))
	for _, w := range words {
		items = append(items, word(w))
	}
	return items
}

func word(w content.Word) Item {
	var parts []string

	headword := strings.TrimSpace(w.Headword)
	if len(headword) > 0 {
		if pinyin := strings.TrimSpace(w.Pinyin); len(pinyin) > 0 {
			headword += " (" + pinyin + ")"
		}
		parts = append(parts, headword)
	}

	for _, sense := range w.Senses {
		translations := strings.Join(sense.Translations, ", ")
		pos := strings.TrimSpace(sense.PartOfSpeech)
		switch {
		case len(pos) > 0 && len(translations) > 0:
			parts = append(parts, pos+": "+translations)
		case len(translations) > 0:
			parts = append(parts, translations)
		case len(pos) > 0:
			parts = append(parts, pos)
		}
	}

	metadata := map[string]any{
		"hasAudio": len(w.AudioUrl) > 0,
	}
	if w.HskLevel > 0 {
		metadata["hskLevel"] = w.HskLevel
	}

	return Item{
		SourceType: content.SourceWord,
		SourceId:   w.Id,
		Text:       strings.Join(parts, " | "),
		Metadata:   metadata,
	}
}
