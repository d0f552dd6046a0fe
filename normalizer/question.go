package normalizer

import (
	"fmt"
	"strings"

	"github.com/hanlingo/hanlingo/content"
	getsafe "github.com/hanlingo/hanlingo/util/get_safe"
)

// questionTag is the decoded compound type of an exercise question,
// action_inputType_outputType, e.g. "selection_audio_text".
type questionTag struct {
	Action     string
	InputType  string
	OutputType string
}

func parseQuestionTag(raw string) questionTag {
	parts := strings.Split(raw, "_")
	if len(parts) < 3 {
		return questionTag{Action: "UNKNOWN", InputType: "TEXT", OutputType: "TEXT"}
	}
	return questionTag{
		Action:     strings.ToUpper(parts[0]),
		InputType:  strings.ToUpper(parts[1]),
		OutputType: strings.ToUpper(parts[2]),
	}
}

var actionLabels = map[string]string{
	"SELECTION": "Multiple choice",
	"FILL":      "Fill in the blank",
	"MATCHING":  "Matching",
	"INPUT":     "Free answer",
	"UNKNOWN":   "Exercise",
}

func (t questionTag) label() string {
	label, ok := actionLabels[t.Action]
	if !ok {
		label = "Exercise"
	}
	return fmt.Sprintf("%s (%s to %s)", label, strings.ToLower(t.InputType), strings.ToLower(t.OutputType))
}

// questionSections is the fixed set of recognized payload shapes, in render
// order. Unrecognized payload keys are ignored.
var questionSections = []func(payload map[string]any) string{
	renderQuestionText,
	renderMediaRefs,
	renderOptions,
	renderFillBlank,
	renderPairs,
	renderCorrectAnswer,
}

// Questions renders each exercise question with a semantic label derived
// from its compound type tag, plus one labeled sentence per recognized
// payload shape.
func Questions(questions []content.Question) []Item {
	items := make([]Item, 0, len(questions))
	for _, q := range questions {
		items = append(items, question(q))
	}
	return items
}

func question(q content.Question) Item {
	tag := parseQuestionTag(q.Type)

	var sb strings.Builder
	for _, render := range questionSections {
		sb.WriteString(render(q.Payload))
	}

	text := strings.TrimSpace(sb.String())
	if len(text) > 0 {
		text = tag.label() + ". " + text
	}

	hasAudio := tag.InputType == "AUDIO" || tag.OutputType == "AUDIO" ||
		len(getsafe.String(q.Payload, "audioUrl")) > 0
	hasImage := tag.InputType == "IMAGE" || tag.OutputType == "IMAGE" ||
		len(getsafe.String(q.Payload, "imageUrl")) > 0

	metadata := map[string]any{
		"action":     tag.Action,
		"inputType":  tag.InputType,
		"outputType": tag.OutputType,
		"hasAudio":   hasAudio,
		"hasImage":   hasImage,
	}
	if q.HskLevel > 0 {
		metadata["hskLevel"] = q.HskLevel
	}

	return Item{
		SourceType: content.SourceQuestion,
		SourceId:   q.Id,
		Text:       text,
		Metadata:   metadata,
	}
}

func renderQuestionText(payload map[string]any) string {
	var sb strings.Builder
	for _, key := range []struct{ key, label string }{
		{"question", "Question"},
		{"prompt", "Prompt"},
		{"instruction", "Instruction"},
	} {
		if text := strings.TrimSpace(getsafe.String(payload, key.key)); len(text) > 0 {
			sb.WriteString(key.label + ": " + text + ". ")
		}
	}
	return sb.String()
}

func renderMediaRefs(payload map[string]any) string {
	var sb strings.Builder
	if len(getsafe.String(payload, "audioUrl")) > 0 {
		sb.WriteString("Includes audio. ")
	}
	if len(getsafe.String(payload, "imageUrl")) > 0 {
		sb.WriteString("Includes an image. ")
	}
	return sb.String()
}

// renderOptions letters multiple-choice options A, B, C, ...
func renderOptions(payload map[string]any) string {
	options := getsafe.Strings(payload, "options")
	if len(options) == 0 {
		return ""
	}

	lettered := make([]string, 0, len(options))
	for i, option := range options {
		lettered = append(lettered, fmt.Sprintf("%c) %s", 'A'+i, option))
	}
	return "Options: " + strings.Join(lettered, ", ") + ". "
}

func renderFillBlank(payload map[string]any) string {
	segments := getsafe.Strings(payload, "segments")
	blanks := getsafe.Strings(payload, "blanks")
	answers := getsafe.Strings(payload, "answers")
	if len(segments) == 0 && len(blanks) == 0 && len(answers) == 0 {
		return ""
	}

	var sb strings.Builder
	if len(segments) > 0 {
		sb.WriteString("Sentence: " + strings.Join(segments, " ___ ") + ". ")
	}
	if len(blanks) > 0 {
		sb.WriteString("Blanks: " + strings.Join(blanks, ", ") + ". ")
	}
	if len(answers) > 0 {
		sb.WriteString("Answers: " + strings.Join(answers, ", ") + ". ")
	}
	return sb.String()
}

func renderPairs(payload map[string]any) string {
	pairs := getsafe.Maps(payload, "pairs")
	if len(pairs) == 0 {
		return ""
	}

	entries := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		left := strings.TrimSpace(getsafe.String(pair, "left"))
		right := strings.TrimSpace(getsafe.String(pair, "right"))
		if len(left) == 0 || len(right) == 0 {
			continue
		}
		entries = append(entries, left+" = "+right)
	}

	if len(entries) == 0 {
		return ""
	}
	return "Match: " + strings.Join(entries, "; ") + ". "
}

func renderCorrectAnswer(payload map[string]any) string {
	if answer := strings.TrimSpace(getsafe.String(payload, "correctAnswer")); len(answer) > 0 {
		return "Answer: " + answer + ". "
	}
	if answers := getsafe.Strings(payload, "correctAnswer"); len(answers) > 0 {
		return "Answer: " + strings.Join(answers, ", ") + ". "
	}
	return ""
}
