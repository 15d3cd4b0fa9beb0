package ports

import "context"

// Translator converts text to a target language. Translation is
// best-effort: implementations report failures inside the returned
// text (a placeholder embedding the error) instead of returning an
// error, so a failed translation never aborts a batch.
type Translator interface {
	Translate(ctx context.Context, text string, targetLang string) string
}
