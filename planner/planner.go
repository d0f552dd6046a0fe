// Package planner tunes retrieval parameters to the query type and the
// learner's proficiency. Beginners get broader, more lenient retrieval at
// the cost of precision.
package planner

import "github.com/hanlingo/hanlingo/content"

type QueryType string

const (
	General QueryType = "general"
	Word    QueryType = "word"
	Grammar QueryType = "grammar"
	Lesson  QueryType = "lesson"
)

func ParseQueryType(s string) QueryType {
	switch QueryType(s) {
	case Word, Grammar, Lesson:
		return QueryType(s)
	default:
		return General
	}
}

type Plan struct {
	MinSimilarity float64
	MaxResults    int
}

const (
	beginnerMaxLevel    = 2
	similarityFloor     = 0.4
	similarityDiscount  = 0.1
	resultBonus         = 2
	resultCap           = 20
)

// baselines per query type: word favors precision with few sources, lesson
// favors broad recall, general sits in between.
var baselines = map[QueryType]Plan{
	Word:    {MinSimilarity: 0.7, MaxResults: 3},
	Grammar: {MinSimilarity: 0.6, MaxResults: 7},
	Lesson:  {MinSimilarity: 0.5, MaxResults: 10},
	General: {MinSimilarity: 0.6, MaxResults: 5},
}

// New derives the retrieval plan. An hskLevel of 0 means unknown
// proficiency and leaves the baseline untouched.
func New(queryType QueryType, hskLevel int) Plan {
	plan, ok := baselines[queryType]
	if !ok {
		plan = baselines[General]
	}

	if hskLevel > 0 && hskLevel <= beginnerMaxLevel {
		plan.MinSimilarity -= similarityDiscount
		if plan.MinSimilarity < similarityFloor {
			plan.MinSimilarity = similarityFloor
		}
		plan.MaxResults += resultBonus
		if plan.MaxResults > resultCap {
			plan.MaxResults = resultCap
		}
	}

	return plan
}

// SourceTypes maps a query type to the categories worth searching: word and
// grammar queries stay within their own corpus, lesson queries span lesson
// content and exercises, general queries span everything.
func SourceTypes(queryType QueryType) []content.SourceType {
	switch queryType {
	case Word:
		return []content.SourceType{content.SourceWord}
	case Grammar:
		return []content.SourceType{content.SourceGrammar}
	case Lesson:
		return []content.SourceType{content.SourceContent, content.SourceQuestion}
	default:
		return content.AllSourceTypes()
	}
}
