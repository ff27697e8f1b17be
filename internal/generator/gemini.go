package generator

import (
	"context"
	"fmt"

	"github.com/quizwhiz/backend/internal/apperr"
	"google.golang.org/genai"
)

// GeminiProvider backs the gateway with the Google Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUpstream, "gemini generate", err)
	}

	text := result.Text()
	if text == "" {
		return "", apperr.New(apperr.KindUpstream, "no response from AI")
	}
	return text, nil
}
