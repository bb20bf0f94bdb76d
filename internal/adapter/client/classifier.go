package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/DavidBolaji/rag-project/internal/domain/entity"

	"google.golang.org/genai"
)

// GeminiClassifier assigns an English question to one of the closed intent
// set. Unrecognized model output clamps to general_info.
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

func NewGeminiClassifier(client *genai.Client, model string) *GeminiClassifier {
	return &GeminiClassifier{client: client, model: model}
}

func (c *GeminiClassifier) Classify(ctx context.Context, question string) (entity.Intent, error) {
	// We use a System Prompt to force a single-label output
	instruction := `You are an intent router for an immigration guidance assistant.
    Classify the user question as exactly one of:
    - visa_eligibility (am I allowed to / do I qualify / do I need a visa)
    - document_requirements (what papers, forms, proofs are needed)
    - general_info (anything else about immigration)
    Respond ONLY with the label. Do not explain.`

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(instruction+"\nQuestion: "+question), nil)
	if err != nil {
		return "", fmt.Errorf("intent classification failed: %w", err)
	}

	label := strings.ToLower(strings.TrimSpace(resp.Text()))
	return entity.ParseIntent(label), nil
}
