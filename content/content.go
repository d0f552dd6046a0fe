package content

import "context"

// SourceType is the category of underlying content an embedding is derived
// from.
type SourceType string

const (
	SourceWord     SourceType = "WORD"
	SourceGrammar  SourceType = "GRAMMAR"
	SourceContent  SourceType = "CONTENT"
	SourceQuestion SourceType = "QUESTION"
)

func ParseSourceType(s string) (SourceType, bool) {
	switch SourceType(s) {
	case SourceWord, SourceGrammar, SourceContent, SourceQuestion:
		return SourceType(s), true
	default:
		return "", false
	}
}

// AllSourceTypes lists every category, in a stable order.
func AllSourceTypes() []SourceType {
	return []SourceType{SourceWord, SourceGrammar, SourceContent, SourceQuestion}
}

// Store is the read-only boundary to the course-management side of the
// system. Each listing returns records with their immediate relations
// already loaded so that extraction never goes back to the database.
type Store interface {
	Words(ctx context.Context) ([]Word, error)
	GrammarPatterns(ctx context.Context) ([]GrammarPattern, error)
	LessonBlocks(ctx context.Context) ([]LessonBlock, error)
	Questions(ctx context.Context) ([]Question, error)
}

type Word struct {
	Id       string  `json:"id"`
	Headword string  `json:"headword"`
	Pinyin   string  `json:"pinyin"`
	HskLevel int     `json:"hsk_level"`
	AudioUrl string  `json:"audio_url,omitempty"`
	Senses   []Sense `json:"senses"`
}

type Sense struct {
	PartOfSpeech string   `json:"part_of_speech"`
	Translations []string `json:"translations"`
}

type GrammarPattern struct {
	Id           string        `json:"id"`
	Name         string        `json:"name"`
	Segments     []string      `json:"segments"`
	Formula      string        `json:"formula,omitempty"`
	HskLevel     int           `json:"hsk_level"`
	Explanations []Explanation `json:"explanations"`
}

type Explanation struct {
	Language string `json:"language"`
	Text     string `json:"text"`
}

// LessonBlock carries an open payload: lesson authoring produces blocks of
// heterogeneous shapes and only a fixed vocabulary of keys is meaningful to
// extraction.
type LessonBlock struct {
	Id       string         `json:"id"`
	LessonId string         `json:"lesson_id"`
	HskLevel int            `json:"hsk_level"`
	Payload  map[string]any `json:"payload"`
}

// Question carries a compound type tag of the form
// action_inputType_outputType (e.g. "selection_audio_text") plus an open
// payload of exercise fields.
type Question struct {
	Id       string         `json:"id"`
	Type     string         `json:"type"`
	HskLevel int            `json:"hsk_level"`
	Payload  map[string]any `json:"payload"`
}
