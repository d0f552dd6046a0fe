package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanlingo/hanlingo/content"
)

func TestParseQueryType(t *testing.T) {
	assert.Equal(t, Word, ParseQueryType("word"))
	assert.Equal(t, Grammar, ParseQueryType("grammar"))
	assert.Equal(t, Lesson, ParseQueryType("lesson"))
	assert.Equal(t, General, ParseQueryType("general"))
	assert.Equal(t, General, ParseQueryType(""))
	assert.Equal(t, General, ParseQueryType("nonsense"))
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name      string
		queryType QueryType
		hskLevel  int
		expected  Plan
	}{
		{
			name:      "word baseline",
			queryType: Word,
			hskLevel:  0,
			expected:  Plan{MinSimilarity: 0.7, MaxResults: 3},
		},
		{
			name:      "grammar baseline",
			queryType: Grammar,
			hskLevel:  0,
			expected:  Plan{MinSimilarity: 0.6, MaxResults: 7},
		},
		{
			name:      "lesson baseline",
			queryType: Lesson,
			hskLevel:  0,
			expected:  Plan{MinSimilarity: 0.5, MaxResults: 10},
		},
		{
			name:      "general baseline",
			queryType: General,
			hskLevel:  0,
			expected:  Plan{MinSimilarity: 0.6, MaxResults: 5},
		},
		{
			name:      "beginner loosens the threshold and widens results",
			queryType: Word,
			hskLevel:  1,
			expected:  Plan{MinSimilarity: 0.6, MaxResults: 5},
		},
		{
			name:      "hsk 2 still counts as beginner",
			queryType: Grammar,
			hskLevel:  2,
			expected:  Plan{MinSimilarity: 0.5, MaxResults: 9},
		},
		{
			name:      "beginner discount respects the floor",
			queryType: Lesson,
			hskLevel:  1,
			expected:  Plan{MinSimilarity: 0.4, MaxResults: 12},
		},
		{
			name:      "hsk 3 keeps the baseline",
			queryType: Word,
			hskLevel:  3,
			expected:  Plan{MinSimilarity: 0.7, MaxResults: 3},
		},
		{
			name:      "advanced learner keeps the baseline",
			queryType: General,
			hskLevel:  6,
			expected:  Plan{MinSimilarity: 0.6, MaxResults: 5},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			plan := New(tc.queryType, tc.hskLevel)

			require.InDelta(t, tc.expected.MinSimilarity, plan.MinSimilarity, 1e-9)
			require.Equal(t, tc.expected.MaxResults, plan.MaxResults)
		})
	}
}

func TestSourceTypes(t *testing.T) {
	assert.Equal(t, []content.SourceType{content.SourceWord}, SourceTypes(Word))
	assert.Equal(t, []content.SourceType{content.SourceGrammar}, SourceTypes(Grammar))
	assert.Equal(t, []content.SourceType{content.SourceContent, content.SourceQuestion}, SourceTypes(Lesson))
	assert.ElementsMatch(t, content.AllSourceTypes(), SourceTypes(General))
}
