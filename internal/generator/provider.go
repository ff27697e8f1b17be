package generator

import (
	"context"
	"log"
	"os"
)

// Provider is the interface every model backend satisfies. Generate sends
// one prompt and returns the raw text of the model's reply.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewProviderFromEnv picks a provider from the environment:
// MOCK_GENERATOR=true for the deterministic mock, otherwise the first of
// GEMINI_API_KEY, ANTHROPIC_API_KEY, OPENAI_API_KEY that is set. With no
// key at all the mock is used so the server still comes up locally.
func NewProviderFromEnv(ctx context.Context) (Provider, error) {
	if os.Getenv("MOCK_GENERATOR") == "true" {
		log.Println("Generator using mock data")
		return NewMockProvider(), nil
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		model := getEnv("GEMINI_MODEL", "gemini-2.5-flash")
		log.Println("Generator using Gemini API:", model)
		return NewGeminiProvider(ctx, key, model)
	}

	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		model := getEnv("ANTHROPIC_MODEL", "claude-opus-4-5-20251101")
		log.Println("Generator using Anthropic API:", model)
		return NewAnthropicProvider(key, model), nil
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		model := getEnv("OPENAI_MODEL", "gpt-4o-mini")
		log.Println("Generator using OpenAI API:", model)
		return NewOpenAIProvider(key, model), nil
	}

	log.Println("WARNING: no provider API key configured, falling back to mock data")
	return NewMockProvider(), nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
