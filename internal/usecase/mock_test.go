package usecase

import (
	"context"
	"sync"

	"github.com/DavidBolaji/rag-project/internal/domain/entity"
	"github.com/DavidBolaji/rag-project/internal/domain/repository"
)

// --- Translator stub ---

type translateCall struct {
	Text   string
	Target string
}

type stubTranslator struct {
	mu    sync.Mutex
	calls []translateCall
	fn    func(text, target string) (string, error)
}

func (s *stubTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, translateCall{Text: text, Target: target})
	s.mu.Unlock()
	if s.fn != nil {
		return s.fn(text, target)
	}
	return target + "::" + text, nil
}

func (s *stubTranslator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// --- Answer engine stub ---

type stubEngine struct {
	questions []string
	histories [][]entity.ConversationTurn
	answer    *entity.Answer
	err       error
}

func (s *stubEngine) Answer(ctx context.Context, question string, history []entity.ConversationTurn) (*entity.Answer, error) {
	s.questions = append(s.questions, question)
	s.histories = append(s.histories, history)
	if s.err != nil {
		return nil, s.err
	}
	if s.answer != nil {
		return s.answer, nil
	}
	return &entity.Answer{
		Text:    "You may be eligible; check the points-based criteria.",
		Intent:  entity.IntentVisaEligibility,
		Sources: []string{"gov.uk/skilled-worker", "gov.uk/visa-fees"},
	}, nil
}

// --- Evaluator stub ---

type evaluateCall struct {
	Answer   *entity.Answer
	Question string
	Language string
}

type stubEvaluator struct {
	calls  []evaluateCall
	result *entity.EvaluationResult
	err    error
}

func (s *stubEvaluator) Evaluate(ctx context.Context, answer *entity.Answer, question, language string) (*entity.EvaluationResult, error) {
	s.calls = append(s.calls, evaluateCall{Answer: answer, Question: question, Language: language})
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &entity.EvaluationResult{OverallScore: 8.5, Reasons: []string{"grounded", "complete"}}, nil
}

// --- Feedback store stub ---

type stubFeedback struct {
	aiEntries   []entity.FeedbackEntry
	userEntries []entity.FeedbackEntry
	err         error
}

func (s *stubFeedback) SaveAIFeedback(ctx context.Context, entry entity.FeedbackEntry) error {
	if s.err != nil {
		return s.err
	}
	s.aiEntries = append(s.aiEntries, entry)
	return nil
}

func (s *stubFeedback) SaveUserFeedback(ctx context.Context, entry entity.FeedbackEntry) error {
	if s.err != nil {
		return s.err
	}
	s.userEntries = append(s.userEntries, entry)
	return nil
}

// --- Token limiter stub ---

type stubLimiter struct {
	mu      sync.Mutex
	allowed bool
	err     error
	usage   map[string]int
}

func newStubLimiter() *stubLimiter {
	return &stubLimiter{allowed: true, usage: map[string]int{}}
}

func (s *stubLimiter) CheckLimit(ctx context.Context, userID string) (bool, error) {
	return s.allowed, s.err
}

func (s *stubLimiter) Increment(ctx context.Context, userID string, tokens int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage[userID] += tokens
	return nil
}

// --- Transcriber stub ---

type stubTranscriber struct {
	paths   []string
	opts    []repository.TranscribeOpts
	text    string
	err     error
	sawFile func(path string) // invoked mid-call so tests can inspect the temp file
}

func (s *stubTranscriber) Transcribe(ctx context.Context, audioPath string, opts repository.TranscribeOpts) (string, error) {
	s.paths = append(s.paths, audioPath)
	s.opts = append(s.opts, opts)
	if s.sawFile != nil {
		s.sawFile(audioPath)
	}
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

// --- RAG engine collaborator stubs ---

type stubClassifier struct {
	calls  int
	intent entity.Intent
	err    error
}

func (s *stubClassifier) Classify(ctx context.Context, question string) (entity.Intent, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.intent, nil
}

type stubEmbedder struct {
	calls int
	err   error
}

func (s *stubEmbedder) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type stubKnowledge struct {
	passages []repository.Passage
	err      error
}

func (s *stubKnowledge) Search(ctx context.Context, vector []float32, limit uint64) ([]repository.Passage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.passages, nil
}

type stubGenerator struct {
	prompts []string
	text    string
	errs    []error // consumed one per call; nil slice means always succeed
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return "", err
		}
	}
	if s.text == "" {
		return "generated answer", nil
	}
	return s.text, nil
}
