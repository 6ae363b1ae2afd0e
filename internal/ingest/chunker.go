// Package ingest handles loading source documents, chunking them with
// page metadata, and LLM structured extraction of per-category claims.
// It is a collaborator of the drift engine: the engine only consumes
// the category -> claim map this package produces.
package ingest

import "strings"

// Chunk is a page-tagged text segment of a source document.
type Chunk struct {
	Text  string `json:"text"`
	Page  int    `json:"page"`  // 1-based page number
	Index int    `json:"index"` // chunk index within the document
}

// Chunker splits document text into overlapping chunks. Page breaks
// are form-feed characters, preserved as metadata for citation.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a chunker. Zero or negative values fall back to
// 2000-rune chunks with a 200-rune overlap. An overlap that is not
// smaller than the chunk size is clamped to a tenth of the size so the
// window always advances.
func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = 2000
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 10
	}
	return &Chunker{size: size, overlap: overlap}
}

// Split chunks the document text, tagging each chunk with its page.
func (c *Chunker) Split(text string) []Chunk {
	var chunks []Chunk
	index := 0

	for pageNum, page := range strings.Split(text, "\f") {
		runes := []rune(strings.TrimSpace(page))
		if len(runes) == 0 {
			continue
		}

		step := c.size - c.overlap
		for start := 0; start < len(runes); start += step {
			end := start + c.size
			if end > len(runes) {
				end = len(runes)
			}

			chunks = append(chunks, Chunk{
				Text:  string(runes[start:end]),
				Page:  pageNum + 1,
				Index: index,
			})
			index++

			if end == len(runes) {
				break
			}
		}
	}

	return chunks
}

// FilterRelevant keeps chunks containing at least one keyword
// (case-insensitive). An empty keyword list keeps everything.
func FilterRelevant(chunks []Chunk, keywords []string) []Chunk {
	if len(keywords) == 0 {
		return chunks
	}

	var relevant []Chunk
	for _, chunk := range chunks {
		lower := strings.ToLower(chunk.Text)
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				relevant = append(relevant, chunk)
				break
			}
		}
	}
	return relevant
}

// JoinChunks concatenates chunk texts, capped at maxRunes to bound
// the extraction context.
func JoinChunks(chunks []Chunk, maxRunes int) string {
	var buf strings.Builder
	for _, chunk := range chunks {
		buf.WriteString(chunk.Text)
		buf.WriteString("\n")
	}

	runes := []rune(buf.String())
	if maxRunes > 0 && len(runes) > maxRunes {
		runes = runes[:maxRunes]
	}
	return string(runes)
}

// DefaultKeywords is the sustainability pre-filter applied before
// extraction.
var DefaultKeywords = []string{
	"principle 6", "emission", "ghg", "scope 1", "scope 2", "scope 3",
	"water", "waste", "hazardous", "recycl", "co2", "environment",
}
