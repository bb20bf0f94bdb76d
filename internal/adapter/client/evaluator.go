package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DavidBolaji/rag-project/internal/domain/entity"

	"google.golang.org/genai"
)

// GeminiEvaluator scores an answer for quality against the question that
// produced it. Scores are 0-10, higher is better.
type GeminiEvaluator struct {
	client *genai.Client
	model  string
}

func NewGeminiEvaluator(client *genai.Client, model string) *GeminiEvaluator {
	return &GeminiEvaluator{client: client, model: model}
}

func (e *GeminiEvaluator) Evaluate(ctx context.Context, answer *entity.Answer, question, language string) (*entity.EvaluationResult, error) {
	// A highly structured prompt for deterministic JSON output
	instruction := `You are a Quality Judge for an immigration guidance assistant.
    Score the answer below against the user's question on a 0-10 scale
    (accuracy, completeness, grounding in the cited sources).
    Respond ONLY with a JSON object: {"overall_score": <number>, "reasons": [<short strings>]}.
    Do not explain outside the JSON.`

	prompt := fmt.Sprintf("%s\n\nQuestion (%s): %s\nAnswer: %s\nSources: %s",
		instruction, language, question, answer.Text, strings.Join(answer.Sources, "; "))

	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("evaluation call failed: %w", err)
	}

	var result entity.EvaluationResult
	raw := strings.TrimSpace(resp.Text())
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.Trim(raw, "` \n")
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("evaluation returned malformed JSON: %w", err)
	}

	if result.OverallScore < 0 {
		result.OverallScore = 0
	}
	if result.OverallScore > 10 {
		result.OverallScore = 10
	}
	return &result, nil
}
