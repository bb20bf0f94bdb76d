package usecase

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/DavidBolaji/rag-project/internal/domain/entity"
	"github.com/DavidBolaji/rag-project/internal/domain/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Config carries the process-level settings the orchestrator needs. The
// upload directory is created once at startup by the caller and handed in
// explicitly; the orchestrator never probes or creates it.
type Config struct {
	UploadDir   string
	CallTimeout time.Duration // cap per external provider call
}

const defaultCallTimeout = 25 * time.Second

// Orchestrator drives one question/answer turn end to end: normalize to
// English, route through the answer engine, localize the answer back,
// evaluate it, and record feedback. Transcoder, translator, and engine
// failures abort the turn; evaluation and feedback failures never do.
type Orchestrator struct {
	engine      repository.AnswerEngine
	translator  repository.Translator
	transcriber repository.Transcriber
	evaluator   repository.Evaluator
	feedback    repository.FeedbackStore
	limiter     repository.TokenLimiter
	cfg         Config
}

func NewOrchestrator(
	engine repository.AnswerEngine,
	tr repository.Translator,
	sc repository.Transcriber,
	ev repository.Evaluator,
	fb repository.FeedbackStore,
	tl repository.TokenLimiter,
	cfg Config,
) *Orchestrator {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultCallTimeout
	}
	return &Orchestrator{
		engine:      engine,
		translator:  tr,
		transcriber: sc,
		evaluator:   ev,
		feedback:    fb,
		limiter:     tl,
		cfg:         cfg,
	}
}

// turnState is the context threaded through the pipeline stages. Data flows
// strictly forward; no stage re-reads what a later stage wrote.
type turnState struct {
	userID   string
	language string
	question string // original-language question
	history  []entity.ConversationTurn

	englishQuestion string
	englishHistory  []entity.ConversationTurn
	answer          *entity.Answer // engine output, English
	localizedAnswer string
	evaluation      *entity.EvaluationResult
}

type stage struct {
	name string
	run  func(context.Context, *turnState) error
}

// stages is the fixed turn sequence. Each stage is independently testable
// with a stub collaborator.
func (o *Orchestrator) stages() []stage {
	return []stage{
		{"normalize", o.normalize},
		{"route", o.route},
		{"localize", o.localize},
		{"evaluate", o.evaluate},
		{"record", o.record},
	}
}

func (o *Orchestrator) runTurn(ctx context.Context, st *turnState) error {
	for _, s := range o.stages() {
		if err := s.run(ctx, st); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

// AnswerText handles one text question. The returned Answer carries the
// localized text, the engine's intent, and the untranslated source citations.
func (o *Orchestrator) AnswerText(ctx context.Context, req entity.QuestionRequest) (*entity.Answer, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, entity.ErrEmptyQuestion
	}
	if err := o.checkLimit(ctx, req.UserID); err != nil {
		return nil, err
	}

	st := &turnState{
		userID:   req.UserID,
		language: req.Language,
		question: question,
		history:  req.Conversation,
	}
	if err := o.runTurn(ctx, st); err != nil {
		return nil, err
	}
	o.finishTurn(st)

	return &entity.Answer{
		Text:    st.localizedAnswer,
		Intent:  st.answer.Intent,
		Sources: st.answer.Sources,
	}, nil
}

// AnswerAudio handles one voice question: persist the upload to a scoped
// temporary file, transcribe it, then run the same turn sequence as the text
// path. The temporary file is removed on every exit path.
func (o *Orchestrator) AnswerAudio(ctx context.Context, audio []byte, mimeType, filename, language, userID string) (*entity.Answer, error) {
	if len(audio) == 0 {
		return nil, entity.ErrMissingAudio
	}
	if !strings.HasPrefix(mimeType, "audio/") {
		return nil, entity.ErrNotAudio
	}
	if err := o.checkLimit(ctx, userID); err != nil {
		return nil, err
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".webm"
	}
	path := filepath.Join(o.cfg.UploadDir, fmt.Sprintf("audio-%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext))
	if err := os.WriteFile(path, audio, 0o600); err != nil {
		return nil, fmt.Errorf("saving audio upload: %w", err)
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("[PIPELINE] failed to clean up audio file %s: %v", path, err)
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, o.cfg.CallTimeout)
	originalText, err := o.transcriber.Transcribe(callCtx, path, repository.TranscribeOpts{Language: language})
	cancel()
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	st := &turnState{
		userID:   userID,
		language: language,
		question: strings.TrimSpace(originalText),
	}
	if st.question == "" {
		return nil, fmt.Errorf("transcription produced no text")
	}
	if err := o.runTurn(ctx, st); err != nil {
		return nil, err
	}
	o.finishTurn(st)

	return &entity.Answer{
		Text:    st.localizedAnswer,
		Intent:  st.answer.Intent,
		Sources: st.answer.Sources,
	}, nil
}

// RecordRating persists an explicit user rating. The signature carries no
// error: store failures are logged and swallowed, never surfaced.
func (o *Orchestrator) RecordRating(ctx context.Context, req entity.RatingRequest) {
	rating := req.Rating
	entry := entity.FeedbackEntry{
		Question:   req.Question,
		Answer:     req.Answer,
		Sources:    req.Sources,
		AIScore:    entity.UserFeedbackScore,
		AIReason:   "user_feedback",
		UserRating: &rating,
		Timestamp:  time.Now().UTC(),
	}

	callCtx, cancel := context.WithTimeout(ctx, o.cfg.CallTimeout)
	defer cancel()
	if err := o.feedback.SaveUserFeedback(callCtx, entry); err != nil {
		log.Printf("[FEEDBACK] failed to store user rating: %v", err)
	}
}

// normalize translates the question and every history field to English.
// English turns pass through untouched and never invoke the translator.
// History fields are mutually independent and translated concurrently.
func (o *Orchestrator) normalize(ctx context.Context, st *turnState) error {
	if entity.IsEnglish(st.language) {
		st.englishQuestion = st.question
		st.englishHistory = st.history
		return nil
	}

	q, err := o.translate(ctx, st.question, entity.EnglishName)
	if err != nil {
		return err
	}
	st.englishQuestion = q

	if len(st.history) == 0 {
		return nil
	}
	english := make([]entity.ConversationTurn, len(st.history))
	g, gCtx := errgroup.WithContext(ctx)
	for i, turn := range st.history {
		g.Go(func() error {
			tq, err := o.translate(gCtx, turn.Question, entity.EnglishName)
			if err != nil {
				return err
			}
			english[i].Question = tq
			return nil
		})
		g.Go(func() error {
			ta, err := o.translate(gCtx, turn.Answer, entity.EnglishName)
			if err != nil {
				return err
			}
			english[i].Answer = ta
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	st.englishHistory = english
	return nil
}

func (o *Orchestrator) route(ctx context.Context, st *turnState) error {
	callCtx, cancel := context.WithTimeout(ctx, o.cfg.CallTimeout)
	defer cancel()

	ans, err := o.engine.Answer(callCtx, st.englishQuestion, st.englishHistory)
	if err != nil {
		return err
	}
	if ans == nil || ans.Text == "" {
		return fmt.Errorf("answer engine returned an empty answer")
	}
	// Clamp at the boundary so the closed-set invariant holds downstream.
	ans.Intent = entity.ParseIntent(string(ans.Intent))
	st.answer = ans
	return nil
}

// localize translates the English answer back to the caller's language.
// Intent and sources never pass through translation.
func (o *Orchestrator) localize(ctx context.Context, st *turnState) error {
	if entity.IsEnglish(st.language) {
		st.localizedAnswer = st.answer.Text
		return nil
	}
	localized, err := o.translate(ctx, st.answer.Text, entity.DisplayName(st.language))
	if err != nil {
		return err
	}
	st.localizedAnswer = localized
	return nil
}

// evaluate scores the English answer against the original-language question.
// A failing evaluation yields a neutral sentinel score; it never aborts the
// turn.
func (o *Orchestrator) evaluate(ctx context.Context, st *turnState) error {
	lang := st.language
	if lang == "" {
		lang = entity.EnglishName
	}

	callCtx, cancel := context.WithTimeout(ctx, o.cfg.CallTimeout)
	defer cancel()

	eval, err := o.evaluator.Evaluate(callCtx, st.answer, st.question, lang)
	if err != nil {
		log.Printf("[PIPELINE] evaluation failed, recording neutral score: %v", err)
		eval = &entity.EvaluationResult{Reasons: []string{"evaluation unavailable"}}
	}
	st.evaluation = eval
	return nil
}

// record appends the AI feedback entry: localized answer, English-evaluated
// score. Store failures are logged and swallowed.
func (o *Orchestrator) record(ctx context.Context, st *turnState) error {
	entry := entity.FeedbackEntry{
		Question:  st.question,
		Answer:    st.localizedAnswer,
		Sources:   st.answer.Sources,
		AIScore:   st.evaluation.OverallScore,
		AIReason:  strings.Join(st.evaluation.Reasons, "; "),
		Timestamp: time.Now().UTC(),
		Language:  st.language,
	}

	callCtx, cancel := context.WithTimeout(ctx, o.cfg.CallTimeout)
	defer cancel()
	if err := o.feedback.SaveAIFeedback(callCtx, entry); err != nil {
		log.Printf("[FEEDBACK] failed to store AI feedback: %v", err)
	}
	return nil
}

func (o *Orchestrator) translate(ctx context.Context, text, target string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.cfg.CallTimeout)
	defer cancel()
	return o.translator.Translate(callCtx, text, target)
}

func (o *Orchestrator) checkLimit(ctx context.Context, userID string) error {
	if userID == "" {
		return nil // anonymous turns are not budgeted
	}
	allowed, err := o.limiter.CheckLimit(ctx, userID)
	if err != nil {
		return fmt.Errorf("rate limiter check failed: %w", err)
	}
	if !allowed {
		return entity.ErrRateLimitExceeded
	}
	return nil
}

// finishTurn updates usage accounting in the background, after the caller
// already has their answer.
func (o *Orchestrator) finishTurn(st *turnState) {
	if st.userID == "" {
		return
	}
	tokens := estimateTokens(st.question) + estimateTokens(st.answer.Text)
	go func() {
		if err := o.limiter.Increment(context.Background(), st.userID, tokens); err != nil {
			log.Printf("[PIPELINE] usage update failed: %v", err)
		}
	}()
}

// estimateTokens is the rough 4-chars-per-token heuristic; the budget is a
// guardrail, not billing.
func estimateTokens(s string) int {
	n := len(s) / 4
	if n < 1 {
		n = 1
	}
	return n
}
