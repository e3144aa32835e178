package generator

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GenAIGenerator words questions with Gemini through the GenAI SDK.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

// NewGenAIGenerator creates a Gemini generator.
func NewGenAIGenerator(ctx context.Context, apiKey, model string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("genai: API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAIGenerator{client: client, model: model}, nil
}

func (g *GenAIGenerator) Name() string { return "genai" }

func (g *GenAIGenerator) GenerateFollowupQuestion(ctx context.Context, text, hint string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.3),
		MaxOutputTokens:   64,
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(Prompt(text, hint)), cfg)
	if err != nil {
		return "", fmt.Errorf("genai: %w", err)
	}
	return firstLine(resp.Text()), nil
}
