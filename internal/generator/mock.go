package generator

import (
	"context"
	"fmt"
	"strings"
)

// MockProvider returns deterministic canned responses so the server can be
// developed and tested without a provider key. It dispatches on prompt
// markers that appear in exactly one prompt builder each.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Generate(ctx context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "Evaluate the answer"):
		return `{"wasCorrect":true,"correctAnswer":"Mock correct answer","score":10,"explanation":"The key concept is covered by the mock evaluation."}`, nil
	case strings.Contains(prompt, "evaluation and feedback for a quiz performance"):
		return "Good work! This is mock feedback generated without a provider.", nil
	case strings.Contains(prompt, "descriptive question"):
		return `{"questionText":"[Mock] Briefly define the core concept of this subcategory.","options":[],"questionType":"descriptive","difficultyLevel":3}`, nil
	case strings.Contains(prompt, "multiple choice quiz question"):
		return `{"questionText":"[Mock] Which option is the established fact for this topic?","options":["The correct mock fact","A clearly wrong statement","An unrelated statement","An outdated claim"],"questionType":"multiple_choice","difficultyLevel":3}`, nil
	case strings.Contains(prompt, "subcategories for the main quiz category"):
		return buildMockSubcategories(), nil
	default:
		return buildMockCategories(), nil
	}
}

func buildMockCategories() string {
	topics := []string{
		"Information Technology", "World History", "Space Exploration",
		"Modern Music", "Startup Economics", "Global Cuisine",
	}
	items := make([]string, len(topics))
	for i, topic := range topics {
		items[i] = fmt.Sprintf(
			`{"name":"[Mock] %s","description":"Explore %s with generated practice questions.","trending":%t}`,
			topic, strings.ToLower(topic), i%3 == 0)
	}
	return "[" + strings.Join(items, ",") + "]"
}

func buildMockSubcategories() string {
	items := make([]string, 10)
	for i := range items {
		items[i] = fmt.Sprintf(
			`{"name":"[Mock] Topic %d","description":"A focused mock topic for local development.","trending":%t,"new":%t,"usersTaken":%d}`,
			i+1, i < 2, i == 9, 20+i*7)
	}
	return "[" + strings.Join(items, ",") + "]"
}
