package query

import (
	"fmt"
	"strings"

	"github.com/hanlingo/hanlingo/content"
	"github.com/hanlingo/hanlingo/index"
)

const (
	persona = "You are a friendly Mandarin Chinese tutor helping English-speaking learners."

	outputInstructions = "Answer in English, quoting Chinese examples with pinyin where helpful. " +
		"Ground your answer in the study material you were given and keep it concise. " +
		"If the material does not cover the question, say so instead of guessing."
)

var sourceTypeLabels = map[content.SourceType]string{
	content.SourceWord:     "Word",
	content.SourceGrammar:  "Grammar",
	content.SourceContent:  "Lesson",
	content.SourceQuestion: "Exercise",
}

// buildContextBlock renders each ranked result as
// "{rank}. [{label}{ (HSK n)}] {text}". Caller-supplied current content,
// if any, is prepended under its own labeled section.
func buildContextBlock(results []index.Result, currentContext string) string {
	var sb strings.Builder

	if current := strings.TrimSpace(currentContext); len(current) > 0 {
		sb.WriteString("Current study material:\n")
		sb.WriteString(current)
		sb.WriteString("\n\n")
	}

	if len(results) > 0 {
		sb.WriteString("Relevant study material:\n")
		for i, r := range results {
			label := sourceTypeLabels[r.Record.SourceType]
			if len(label) == 0 {
				label = string(r.Record.SourceType)
			}
			if level := index.MetadataInt(r.Record.Metadata, "hskLevel"); level > 0 {
				label = fmt.Sprintf("%s (HSK %d)", label, level)
			}
			sb.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, label, r.Record.ContentText))
		}
	}

	return strings.TrimSpace(sb.String())
}

func buildPrompt(query string) string {
	var sb strings.Builder
	sb.WriteString(persona)
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(query)
	sb.WriteString("\n\n")
	sb.WriteString(outputInstructions)
	return sb.String()
}
