// Package oracles defines the external model collaborators and their
// HTTP client implementations. Every oracle is a black box behind an
// interface so the analyzer can be tested with fixed-response fakes.
package oracles

import (
	"context"

	"sentiment-insight/models"
)

// Detector guesses the language of raw text, returning a short ISO
// 639-1 code. Implementations fall back to a default code rather than
// failing on undetectable input.
type Detector interface {
	Detect(ctx context.Context, text string) (string, error)
}

// Translator translates text between two short language codes.
// Identity when src equals tgt.
type Translator interface {
	Translate(ctx context.Context, text, src, tgt string) (string, error)
}

// Classifier runs zero-shot classification of working-language text
// against a candidate label set, returning labels ranked by
// descending confidence.
type Classifier interface {
	Classify(ctx context.Context, text string, labels []string) (models.SentimentResult, error)
}

// DistressScorer is the fine-tuned binary classifier: it returns the
// negative-class probability for each input text, in input order.
type DistressScorer interface {
	Score(ctx context.Context, texts []string) ([]float64, error)
}

// VideoSearcher queries the external recommendation service. A missing
// credential or an empty result yields an empty list, never an error
// that should fail the request.
type VideoSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]models.Video, error)
}
