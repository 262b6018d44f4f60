// Package recommend is the menu recommendation gateway: it turns the current
// menu plus a customer utterance into a prompt for an LLM and hands the
// generated text back verbatim. Upstream failures of any kind are absorbed
// into a fixed fallback message and never reach the caller as errors.
package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"tableside/internal/models"
)

// Fallback is returned whenever the upstream call fails.
const Fallback = "I'm having trouble connecting to the kitchen right now. Please ask a human waiter!"

// Recommender wraps an LLM behind the text-in/text-out recommendation
// contract. It is stateless; conversation history lives in ChatLog.
type Recommender struct {
	model llms.Model
}

// New creates a recommender over an existing LLM client.
func New(model llms.Model) *Recommender {
	return &Recommender{model: model}
}

// NewOpenAI creates a recommender backed by an OpenAI-compatible endpoint
// with a fixed model identifier.
func NewOpenAI(apiKey, modelName string) (*Recommender, error) {
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return New(llm), nil
}

// Recommend generates a short menu recommendation for the utterance. The
// returned string is either the model's text or Fallback; upstream failures
// never surface as errors.
func (r *Recommender) Recommend(ctx context.Context, utterance string, menu []models.MenuItem, priorOrders []string) string {
	if r.model == nil {
		return Fallback
	}
	prompt := buildPrompt(utterance, menu, priorOrders)
	text, err := llms.GenerateFromSinglePrompt(ctx, r.model, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		return Fallback
	}
	return text
}

// buildPrompt embeds a serialized view of the menu and the raw utterance.
func buildPrompt(utterance string, menu []models.MenuItem, priorOrders []string) string {
	var prompt strings.Builder

	prompt.WriteString("You are a polite and knowledgeable waiter at a restaurant.\n")
	prompt.WriteString("Here is our menu:\n")
	for _, item := range menu {
		prompt.WriteString(fmt.Sprintf("- %s: %s (tags: %s, price: %.2f)\n",
			item.Name, item.Description, menuTags(item), item.Price))
	}

	prompt.WriteString(fmt.Sprintf("\nThe customer asks: %q\n", utterance))

	if len(priorOrders) > 0 {
		prompt.WriteString(fmt.Sprintf("\nThe customer has already ordered: %s\n", strings.Join(priorOrders, ", ")))
	}

	prompt.WriteString("\nProvide a short, appetizing recommendation (max 2 sentences) based on the menu.\n")
	prompt.WriteString("If they ask about dietary restrictions, answer accurately based on the menu data.\n")
	prompt.WriteString("Do not invent items not on the menu.\n")

	return prompt.String()
}

func menuTags(item models.MenuItem) string {
	tags := make([]string, 0, 3)
	if item.Vegetarian {
		tags = append(tags, "vegetarian")
	}
	if item.Spicy {
		tags = append(tags, "spicy")
	}
	tags = append(tags, string(item.Category))
	return strings.Join(tags, ", ")
}
