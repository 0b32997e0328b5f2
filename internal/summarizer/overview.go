package summarizer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"docq/internal/domain"
)

// KeywordSummarizer condenses the ingested corpus into a single header
// line: document count, corpus size and the most frequent content words.
type KeywordSummarizer struct {
	maxKeywords  int
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

func NewKeywordSummarizer(maxKeywords int) *KeywordSummarizer {
	if maxKeywords <= 0 {
		maxKeywords = 6
	}
	return &KeywordSummarizer{
		maxKeywords:  maxKeywords,
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

func (s *KeywordSummarizer) Summarize(documents []domain.Document) string {
	if len(documents) == 0 {
		return "no documents loaded"
	}
	freq := make(map[string]int)
	totalBytes := 0
	for _, doc := range documents {
		totalBytes += len(doc.Content)
		for _, tok := range s.tokenPattern.FindAllString(strings.ToLower(doc.Content), -1) {
			if _, isStop := s.stopwords[tok]; isStop {
				continue
			}
			if len(tok) < 3 {
				continue
			}
			freq[tok]++
		}
	}
	terms := make([]string, 0, len(freq))
	for term := range freq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > s.maxKeywords {
		terms = terms[:s.maxKeywords]
	}
	head := fmt.Sprintf("%d document(s), %s", len(documents), formatSize(totalBytes))
	if len(terms) == 0 {
		return head
	}
	return head + " | key terms: " + strings.Join(terms, ", ")
}

func formatSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now", "you", "your", "not", "have", "has",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
