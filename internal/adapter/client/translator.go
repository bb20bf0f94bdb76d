package client

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiTranslator translates text between natural languages via Gemini.
// The target is a display name ("English", "French"); unmapped language
// codes arrive verbatim and are forwarded to the model as given.
type GeminiTranslator struct {
	client *genai.Client
	model  string
}

func NewGeminiTranslator(client *genai.Client, model string) *GeminiTranslator {
	return &GeminiTranslator{client: client, model: model}
}

func (t *GeminiTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	instruction := fmt.Sprintf(`You are a professional translator for immigration services.
    Translate the following text to %s.
    Preserve meaning, tone, and any legal or procedural terminology exactly.
    Respond ONLY with the translated text, no commentary.`, targetLanguage)

	prompt := instruction + "\n\nText: " + text

	resp, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("translation to %s failed: %w", targetLanguage, err)
	}

	translated := strings.TrimSpace(resp.Text())
	if translated == "" {
		return "", fmt.Errorf("translation to %s returned empty text", targetLanguage)
	}
	return translated, nil
}
