package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/DavidBolaji/rag-project/internal/domain/entity"
	"github.com/DavidBolaji/rag-project/internal/domain/repository"
)

const retrievalLimit = 4

// RAGEngine answers English immigration questions: classify the intent,
// retrieve the most relevant guidance passages, then generate a grounded
// answer citing them. All inputs are English-normalized by the orchestrator
// before they arrive here.
type RAGEngine struct {
	classifier repository.IntentClassifier
	embedder   repository.Embedder
	knowledge  repository.KnowledgeBase
	generator  repository.TextGenerator
}

func NewRAGEngine(cl repository.IntentClassifier, emb repository.Embedder, kb repository.KnowledgeBase, gen repository.TextGenerator) *RAGEngine {
	return &RAGEngine{classifier: cl, embedder: emb, knowledge: kb, generator: gen}
}

func (e *RAGEngine) Answer(ctx context.Context, question string, history []entity.ConversationTurn) (*entity.Answer, error) {
	// 1. Route the question to an intent
	intent, err := e.classifier.Classify(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("intent routing failed: %w", err)
	}

	// 2. Retrieve supporting passages
	vector, err := e.embedder.CreateEmbedding(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	passages, err := e.knowledge.Search(ctx, vector, retrievalLimit)
	if err != nil {
		return nil, fmt.Errorf("knowledge retrieval failed: %w", err)
	}

	// 3. Generate the grounded answer
	text, err := e.generator.Generate(ctx, buildAnswerPrompt(question, history, passages, intent))
	if err != nil {
		return nil, fmt.Errorf("answer generation failed: %w", err)
	}

	return &entity.Answer{
		Text:    strings.TrimSpace(text),
		Intent:  intent,
		Sources: sourceList(passages),
	}, nil
}

// sourceList keeps citations in retrieval order, deduplicated, since the
// order reflects relevance rank and is preserved end-to-end.
func sourceList(passages []repository.Passage) []string {
	seen := make(map[string]bool, len(passages))
	sources := make([]string, 0, len(passages))
	for _, p := range passages {
		if p.Source == "" || seen[p.Source] {
			continue
		}
		seen[p.Source] = true
		sources = append(sources, p.Source)
	}
	return sources
}

func buildAnswerPrompt(question string, history []entity.ConversationTurn, passages []repository.Passage, intent entity.Intent) string {
	var b strings.Builder
	b.WriteString(`You are an immigration guidance assistant.
    Answer the user's question using ONLY the context passages below.
    Be concrete about eligibility criteria, required documents, and procedures.
    If the context does not cover the question, say so rather than guessing.`)

	b.WriteString("\n\nIntent: " + string(intent))

	if len(history) > 0 {
		b.WriteString("\n\nConversation so far:")
		for _, turn := range history {
			b.WriteString("\nQ: " + turn.Question)
			b.WriteString("\nA: " + turn.Answer)
		}
	}

	b.WriteString("\n\nContext:")
	for i, p := range passages {
		b.WriteString(fmt.Sprintf("\n[%d] (%s) %s", i+1, p.Source, p.Text))
	}

	b.WriteString("\n\nQuestion: " + question)
	return b.String()
}
