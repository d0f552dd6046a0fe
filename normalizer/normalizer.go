// Package normalizer turns structured course content into flat (text,
// metadata) items suitable for embedding. Every extractor is total and
// side-effect-free: input that yields no recognizable text produces an item
// with an empty Text, which the caller must drop rather than embed.
package normalizer

import "github.com/hanlingo/hanlingo/content"

// Item is one unit of extracted text ready for embedding.
type Item struct {
	SourceType content.SourceType
	SourceId   string
	Text       string
	Metadata   map[string]any
}
