package client

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiGenerator is the raw completion adapter used for answer generation.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(c *genai.Client, model string) *GeminiGenerator {
	return &GeminiGenerator{
		client: c,
		model:  model,
	}
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return result.Text(), nil
}
