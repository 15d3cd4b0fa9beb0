package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/ofarias/transcreva/internal/domain"
	"github.com/ofarias/transcreva/internal/ports"
	"github.com/ofarias/transcreva/pkg/log"
)

// chunkRunes caps each request's payload, respecting the remote
// engine's request limit. Splits happen on rune boundaries so a
// multi-byte character is never torn apart, even mid-word.
const chunkRunes = 3000

// LLMTranslator translates text chunk by chunk through a
// chat-completions API.
type LLMTranslator struct {
	client *Client
}

func NewLLMTranslator(client *Client) *LLMTranslator {
	return &LLMTranslator{client: client}
}

// Translate converts text to targetLang. Best-effort: if any chunk
// fails, the returned string is a placeholder embedding the error
// text instead of a translation. It never returns an error, so a
// broken translation endpoint cannot abort a batch.
func (t *LLMTranslator) Translate(ctx context.Context, text string, targetLang string) string {
	chunks := splitChunks(text, chunkRunes)

	sourceLang := detectLanguage(text)

	translated := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		out, err := t.translateChunk(ctx, chunk, sourceLang, targetLang)
		if err != nil {
			log.Error("translation of chunk %d/%d failed: %v", i+1, len(chunks), err)
			return fmt.Sprintf("[%v: %v]", domain.ErrTranslationFailed, err)
		}
		translated = append(translated, out)
	}

	return strings.Join(translated, "\n")
}

func (t *LLMTranslator) translateChunk(ctx context.Context, chunk, sourceLang, targetLang string) (string, error) {
	systemPrompt := buildPrompt(sourceLang, targetLang)
	return t.client.Complete(ctx, systemPrompt, chunk)
}

func buildPrompt(sourceLang, targetLang string) string {
	var prompt strings.Builder
	prompt.WriteString("You are a professional translator. ")
	if sourceLang != "" {
		prompt.WriteString(fmt.Sprintf("Translate the user's text from %s to the language with ISO 639-1 code %q. ", sourceLang, targetLang))
	} else {
		prompt.WriteString(fmt.Sprintf("Translate the user's text to the language with ISO 639-1 code %q. ", targetLang))
	}
	prompt.WriteString("Preserve paragraph breaks. Return only the translated text, with no explanations or notes.")
	return prompt.String()
}

// detectLanguage guesses the source language to anchor the prompt.
// Detection failures just leave the hint empty.
func detectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.String()
}

// splitChunks slices text into size-rune pieces, preserving order.
func splitChunks(text string, size int) []string {
	runes := []rune(text)
	var chunks []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

var _ ports.Translator = (*LLMTranslator)(nil)
