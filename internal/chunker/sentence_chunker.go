package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"docq/internal/domain"
)

// SentenceChunker groups whole sentences into chunks, overlapping by a
// number of sentences instead of bytes. Offsets are located by scanning
// forward through the source text, so they survive the regex split.
type SentenceChunker struct {
	sentencesPerChunk int
	overlapSentences  int
	splitter          *regexp.Regexp
}

func NewSentenceChunker(sentencesPerChunk, overlapSentences int) *SentenceChunker {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = 5
	}
	if overlapSentences < 0 {
		overlapSentences = 0
	}
	if overlapSentences >= sentencesPerChunk {
		overlapSentences = sentencesPerChunk - 1
	}
	return &SentenceChunker{
		sentencesPerChunk: sentencesPerChunk,
		overlapSentences:  overlapSentences,
		splitter:          regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
	}
}

func (c *SentenceChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	content := document.Content
	sentences := c.splitter.FindAllString(content, -1)
	if len(sentences) == 0 {
		trimmed := strings.TrimSpace(content)
		if trimmed == "" {
			return nil, nil
		}
		sentences = []string{trimmed}
	}
	// Locate each sentence in the source before trimming it. The scan
	// runs on bytes; recorded offsets are in characters.
	starts := make([]int, len(sentences))
	ends := make([]int, len(sentences))
	cursor := 0
	for i, s := range sentences {
		at := strings.Index(content[cursor:], s)
		if at < 0 {
			at = 0
		}
		byteStart := cursor + at
		byteEnd := byteStart + len(s)
		starts[i] = utf8.RuneCountInString(content[:byteStart])
		ends[i] = utf8.RuneCountInString(content[:byteEnd])
		cursor = byteEnd
		sentences[i] = strings.TrimSpace(s)
	}
	var chunks []domain.Chunk
	i := 0
	idx := 0
	for i < len(sentences) {
		end := i + c.sentencesPerChunk
		if end > len(sentences) {
			end = len(sentences)
		}
		chunks = append(chunks, domain.Chunk{
			SourceID:    document.ID,
			Text:        strings.Join(sentences[i:end], " "),
			Index:       idx,
			StartOffset: starts[i],
			EndOffset:   ends[end-1],
		})
		if end == len(sentences) {
			break
		}
		next := end - c.overlapSentences
		if next <= i {
			break
		}
		i = next
		idx++
	}
	return chunks, nil
}
