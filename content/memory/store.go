package memory

import (
	"context"

	"github.com/hanlingo/hanlingo/content"
)

type memoryStore struct {
	words    []content.Word
	grammar  []content.GrammarPattern
	blocks   []content.LessonBlock
	question []content.Question
}

func (s *memoryStore) Words(ctx context.Context) ([]content.Word, error) {
	return append([]content.Word(nil), s.words...), nil
}

func (s *memoryStore) GrammarPatterns(ctx context.Context) ([]content.GrammarPattern, error) {
	return append([]content.GrammarPattern(nil), s.grammar...), nil
}

func (s *memoryStore) LessonBlocks(ctx context.Context) ([]content.LessonBlock, error) {
	return append([]content.LessonBlock(nil), s.blocks...), nil
}

func (s *memoryStore) Questions(ctx context.Context) ([]content.Question, error) {
	return append([]content.Question(nil), s.question...), nil
}

func NewStore(
	words []content.Word,
	grammar []content.GrammarPattern,
	blocks []content.LessonBlock,
	questions []content.Question,
) content.Store {
	return &memoryStore{
		words:    words,
		grammar:  grammar,
		blocks:   blocks,
		question: questions,
	}
}
