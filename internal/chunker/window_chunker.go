package chunker

import (
	"strings"
	"unicode/utf8"

	"docq/internal/domain"
)

// WindowChunker splits text into fixed-size character windows with overlap.
// Consecutive windows from the same document advance by size-overlap, so a
// window shares its first overlap characters with the tail of the previous
// one. Windows are measured in runes, never splitting multibyte text.
type WindowChunker struct {
	size         int
	overlap      int
	minChunkSize int
}

func NewWindowChunker(size, overlap, minChunkSize int) *WindowChunker {
	if size <= 0 {
		size = 500
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 4
	}
	if minChunkSize < 0 {
		minChunkSize = 0
	}
	return &WindowChunker{size: size, overlap: overlap, minChunkSize: minChunkSize}
}

func (c *WindowChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	if strings.TrimSpace(document.Content) == "" {
		return nil, nil
	}
	text := []rune(document.Content)
	if len(text) <= c.size {
		return []domain.Chunk{{
			SourceID:    document.ID,
			Text:        strings.TrimSpace(document.Content),
			Index:       0,
			StartOffset: 0,
			EndOffset:   len(text),
		}}, nil
	}
	var chunks []domain.Chunk
	idx := 0
	start := 0
	for start < len(text) {
		end := start + c.size
		if end > len(text) {
			end = len(text)
		}
		piece := strings.TrimSpace(string(text[start:end]))
		if piece != "" && utf8.RuneCountInString(piece) >= c.minChunkSize {
			chunks = append(chunks, domain.Chunk{
				SourceID:    document.ID,
				Text:        piece,
				Index:       idx,
				StartOffset: start,
				EndOffset:   end,
			})
			idx++
		}
		if end == len(text) {
			break
		}
		// The next window must start strictly past the current one;
		// otherwise a short tail with a large overlap would loop forever.
		next := end - c.overlap
		if next <= start {
			break
		}
		start = next
	}
	return chunks, nil
}
