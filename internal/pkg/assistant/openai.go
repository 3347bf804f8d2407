package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const planPrompt = `Generate a work schedule from the JSON input below. Respond ONLY with a JSON array in this exact shape:
[{"userId":"<employee id>","date":"2025-01-03","start":"10:00","end":"14:00"}]`

// OpenAIPlanner asks an OpenAI completion model for a first-pass schedule.
type OpenAIPlanner struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIPlanner(apiKey string, timeout time.Duration) *OpenAIPlanner {
	return &OpenAIPlanner{
		client:  openai.NewClient(apiKey),
		model:   openai.GPT3Dot5TurboInstruct,
		timeout: timeout,
	}
}

// Plan submits the request payload and parses the completion text.
// Any transport or parse failure surfaces as an error; the caller decides
// whether to degrade.
func (p *OpenAIPlanner) Plan(ctx context.Context, req PlanRequest) ([]PlannedSlot, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal plan request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       p.model,
		Prompt:      planPrompt + "\nInput:" + string(payload),
		MaxTokens:   1200,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("create completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, nil
	}

	slots, err := ParsePlan(resp.Choices[0].Text)
	if err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	return slots, nil
}
