package answer

import (
	"context"
	"strings"
)

// Answerer produces a natural-language answer from ordered context chunks
// and a question. Context order is preserved in the prompt: earlier chunks
// ranked closer to the question.
type Answerer interface {
	Answer(ctx context.Context, contextChunks []string, question string) (string, error)
}

// GenerationConfig carries the generation knobs passed to the backend.
// TopP is ignored by backends that do not support it.
type GenerationConfig struct {
	Model        string
	MaxTokens    int
	Temperature  float32
	TopP         float32
	Stop         []string
	SystemPrompt string
}

const defaultSystemPrompt = "You are a helpful assistant. Answer only using the provided context. If the answer is not present, say you don't know."

func (c *GenerationConfig) applyDefaults() {
	if c.Model == "" {
		c.Model = "gpt-3.5-turbo"
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 256
	}
	if c.SystemPrompt == "" {
		c.SystemPrompt = defaultSystemPrompt
	}
}

// buildPrompt joins the retrieved chunks and the question into the user
// message. The answerer never inspects or rewrites the chunk texts.
func buildPrompt(contextChunks []string, question string) string {
	var b strings.Builder
	b.WriteString("Context:\n")
	b.WriteString(strings.Join(contextChunks, "\n"))
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\nAnswer:")
	return b.String()
}
