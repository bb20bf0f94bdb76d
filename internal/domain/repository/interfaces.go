package repository

import (
	"context"

	"github.com/DavidBolaji/rag-project/internal/domain/entity"
)

// Translator converts text into the target language, named by display name
// ("English", "French"). Implementations may short-circuit when the text is
// already in the target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// TranscribeOpts carries advisory hints for the speech-to-text provider.
type TranscribeOpts struct {
	// Language is the short code (e.g. "en", "fr") of the spoken language.
	// Providers may use it to improve accuracy but need not honor it.
	Language string
}

// Transcriber converts an audio file on disk into text in the spoken language.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, opts TranscribeOpts) (string, error)
}

// AnswerEngine classifies an English question and produces a grounded answer
// with source citations. History, when present, is English-normalized.
type AnswerEngine interface {
	Answer(ctx context.Context, question string, history []entity.ConversationTurn) (*entity.Answer, error)
}

// Evaluator scores a produced answer against the original question.
type Evaluator interface {
	Evaluate(ctx context.Context, answer *entity.Answer, question, language string) (*entity.EvaluationResult, error)
}

// FeedbackStore is an append-only sink for feedback records. Writes never
// overwrite; there is no read path in the serving core.
type FeedbackStore interface {
	SaveAIFeedback(ctx context.Context, entry entity.FeedbackEntry) error
	SaveUserFeedback(ctx context.Context, entry entity.FeedbackEntry) error
}

// Passage is one retrieved knowledge-base chunk.
type Passage struct {
	Text   string
	Source string
	Score  float32
}

// KnowledgeBase retrieves the passages most relevant to a query vector,
// ordered by similarity.
type KnowledgeBase interface {
	Search(ctx context.Context, vector []float32, limit uint64) ([]Passage, error)
}

type Embedder interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// TextGenerator is a raw LLM completion call.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// IntentClassifier assigns a question to one of the closed intent set.
type IntentClassifier interface {
	Classify(ctx context.Context, question string) (entity.Intent, error)
}

type TokenLimiter interface {
	CheckLimit(ctx context.Context, userID string) (bool, error)
	Increment(ctx context.Context, userID string, tokens int) error
}
