package normalizer

import (
	"strings"

	"github.com/hanlingo/hanlingo/content"
	getsafe "github.com/hanlingo/hanlingo/util/get_safe"
)

// lessonSections is the fixed vocabulary of recognized lesson payload keys,
// in render order. Unknown keys are ignored; a payload with no recognized
// keys yields an empty text.
var lessonSections = []struct {
	key    string
	render func(payload map[string]any) string
}{
	{"title", renderTitle},
	{"text", renderText},
	{"dialog", renderDialog},
	{"vocabulary", renderVocabulary},
	{"examples", renderExamples},
}

// LessonBlocks renders the recognized sections of each lesson block into a
// single labeled paragraph.
func LessonBlocks(blocks []content.LessonBlock) []Item {
	items := make([]Item, 0, len(blocks))
	for _, b := range blocks {
		items = append(items, lessonBlock(b))
	}
	return items
}

func lessonBlock(b content.LessonBlock) Item {
	var sb strings.Builder
	for _, section := range lessonSections {
		sb.WriteString(section.render(b.Payload))
	}

	metadata := map[string]any{
		"lessonId": b.LessonId,
	}
	if b.HskLevel > 0 {
		metadata["hskLevel"] = b.HskLevel
	}
	if blockType := getsafe.String(b.Payload, "type"); len(blockType) > 0 {
		metadata["blockType"] = blockType
	}

	return Item{
		SourceType: content.SourceContent,
		SourceId:   b.Id,
		Text:       strings.TrimSpace(sb.String()),
		Metadata:   metadata,
	}
}

func renderTitle(payload map[string]any) string {
	if title := strings.TrimSpace(getsafe.String(payload, "title")); len(title) > 0 {
		return "Title: " + title + ". "
	}
	return ""
}

func renderText(payload map[string]any) string {
	if text := strings.TrimSpace(getsafe.String(payload, "text")); len(text) > 0 {
		return "Text: " + text + ". "
	}
	return ""
}

func renderDialog(payload map[string]any) string {
	lines := getsafe.Maps(payload, "dialog")
	if len(lines) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, line := range lines {
		text := strings.TrimSpace(getsafe.String(line, "text"))
		if len(text) == 0 {
			continue
		}
		if speaker := strings.TrimSpace(getsafe.String(line, "speaker")); len(speaker) > 0 {
			sb.WriteString(speaker + ": ")
		}
		sb.WriteString(text + ". ")
	}

	if sb.Len() == 0 {
		return ""
	}
	return "Dialog: " + sb.String()
}

func renderVocabulary(payload map[string]any) string {
	var entries []string

	for _, item := range getsafe.Slice(payload, "vocabulary") {
		switch v := item.(type) {
		case string:
			if v = strings.TrimSpace(v); len(v) > 0 {
				entries = append(entries, v)
			}
		case map[string]any:
			word := strings.TrimSpace(getsafe.String(v, "word"))
			if len(word) == 0 {
				continue
			}
			if translation := strings.TrimSpace(getsafe.String(v, "translation")); len(translation) > 0 {
				word += " (" + translation + ")"
			}
			entries = append(entries, word)
		}
	}

	if len(entries) == 0 {
		return ""
	}
	return "Vocabulary: " + strings.Join(entries, ", ") + ". "
}

func renderExamples(payload map[string]any) string {
	var entries []string

	for _, item := range getsafe.Slice(payload, "examples") {
		switch v := item.(type) {
		case string:
			if v = strings.TrimSpace(v); len(v) > 0 {
				entries = append(entries, v)
			}
		case map[string]any:
			sentence := strings.TrimSpace(getsafe.String(v, "sentence"))
			if len(sentence) == 0 {
				continue
			}
			if translation := strings.TrimSpace(getsafe.String(v, "translation")); len(translation) > 0 {
				sentence += " (" + translation + ")"
			}
			entries = append(entries, sentence)
		}
	}

	if len(entries) == 0 {
		return ""
	}
	return "Examples: " + strings.Join(entries, " ") + ". "
}
