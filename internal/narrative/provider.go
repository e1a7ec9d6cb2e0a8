// Package narrative produces a short advisory paragraph for a feasibility
// report using a hosted language model, falling back to canned text.
package narrative

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	"google.golang.org/genai"

	"github.com/sells-group/feasibility-cli/internal/resilience"
	"github.com/sells-group/feasibility-cli/pkg/anthropic"
)

// Provider names accepted in configuration.
const (
	ProviderNone      = "none"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Provider generates text from a system instruction and a user prompt.
type Provider interface {
	Name() string
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// contentGenerator is the subset of genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiProvider generates text with a Gemini model.
type GeminiProvider struct {
	models      contentGenerator
	model       string
	temperature float32
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, eris.New("narrative: gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, eris.Wrap(err, "narrative: create gemini client")
	}
	return &GeminiProvider{models: client.Models, model: model, temperature: 0.4}, nil
}

// Name implements Provider.
func (p *GeminiProvider) Name() string { return ProviderGemini }

// Generate implements Provider. API errors with a rate-limit or 5xx code come
// back as resilience.TransientError.
func (p *GeminiProvider) Generate(ctx context.Context, system, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(p.temperature),
	}
	if system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}

	resp, err := p.models.GenerateContent(ctx, p.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", resilience.ClassifyStatus(eris.Wrap(err, "gemini: generate content"), geminiStatus(err))
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

// geminiStatus extracts the HTTP status from a genai API error, or 0.
func geminiStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}

// AnthropicProvider generates text with a Claude model.
type AnthropicProvider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicProvider wraps an anthropic client.
func NewAnthropicProvider(client anthropic.Client, model string, maxTokens int64) *AnthropicProvider {
	if maxTokens <= 0 {
		maxTokens = 300
	}
	return &AnthropicProvider{client: client, model: model, maxTokens: maxTokens}
}

// Name implements Provider.
func (p *AnthropicProvider) Name() string { return ProviderAnthropic }

// Generate implements Provider. Rate-limit and 5xx responses come back as
// resilience.TransientError so the advisor retries them.
func (p *AnthropicProvider) Generate(ctx context.Context, system, prompt string) (string, error) {
	resp, err := p.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		System:    system,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", resilience.ClassifyStatus(err, anthropic.StatusCode(err))
	}
	resp.Usage.Log(p.model, "narrative")
	return resp.Text(), nil
}
