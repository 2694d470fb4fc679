package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/huangang/collabhub/internal/config"
	"github.com/huangang/collabhub/pkg/logger"
	"github.com/ollama/ollama/api"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

const describePromptTemplate = `You are a project description generator for a student collaboration platform. Given a simple project idea, generate a well-structured, detailed project description.

Project Idea: %s

Generate a comprehensive project description with the following sections:
1. Overview (2-3 sentences)
2. Key Features (4-6 bullet points)
3. Goals & Objectives (3-4 points)
4. Expected Outcomes

Format the response as JSON with keys: overview, features (array), goals (array), outcomes (string)`

const breakdownPromptTemplate = `You are a project planner for a student collaboration platform. Break the project below into a delivery roadmap.

Project Description: %s
Planned Duration: %s

Return only JSON with keys:
- phases: array of {name, duration, tasks (array of strings)}
- milestones: array of {name, description}
- recommendations: array of strings`

var errEmptyCompletion = errors.New("empty completion")

// NewTextGenerator returns an LLM-backed generator when enabled, otherwise the templates.
func NewTextGenerator(cfg *config.LLMConfig) TextGenerator {
	if cfg == nil || !cfg.Enabled {
		return NewTemplateGenerator()
	}
	return NewLLMGenerator(cfg)
}

// LLMGenerator asks a configured model for structured JSON and falls back to
// the templates when the provider fails or the answer cannot be parsed.
type LLMGenerator struct {
	cfg      config.LLMConfig
	fallback TextGenerator
}

func NewLLMGenerator(cfg *config.LLMConfig) *LLMGenerator {
	return &LLMGenerator{cfg: *cfg, fallback: NewTemplateGenerator()}
}

func (g *LLMGenerator) DescribeIdea(ctx context.Context, idea string) (*ProjectDescription, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, invalid("idea", "Project idea is required")
	}

	var out ProjectDescription
	err := g.generate(ctx, fmt.Sprintf(describePromptTemplate, idea), &out)
	if err == nil && out.Overview == "" {
		err = errEmptyCompletion
	}
	if err != nil {
		logger.Warnf("[AI] Describe idea fell back to template: %v", err)
		return g.fallback.DescribeIdea(ctx, idea)
	}
	return &out, nil
}

func (g *LLMGenerator) BreakdownTasks(ctx context.Context, description, duration string) (*TaskBreakdown, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, invalid("description", "Project description is required")
	}
	duration = strings.TrimSpace(duration)
	promptDuration := duration
	if promptDuration == "" {
		promptDuration = "not specified"
	}

	var out TaskBreakdown
	err := g.generate(ctx, fmt.Sprintf(breakdownPromptTemplate, description, promptDuration), &out)
	if err == nil && len(out.Phases) == 0 {
		err = errEmptyCompletion
	}
	if err != nil {
		logger.Warnf("[AI] Task breakdown fell back to template: %v", err)
		return g.fallback.BreakdownTasks(ctx, description, duration)
	}
	return &out, nil
}

func (g *LLMGenerator) generate(ctx context.Context, prompt string, out interface{}) error {
	content, err := g.callLLM(ctx, prompt)
	if err != nil {
		return err
	}
	raw := extractJSON(content)
	if raw == "" {
		return errEmptyCompletion
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("parse completion: %w", err)
	}
	return nil
}

// extractJSON returns the outermost JSON object in content, tolerating code fences and prose.
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return ""
	}
	return content[start : end+1]
}

func (g *LLMGenerator) callLLM(ctx context.Context, prompt string) (string, error) {
	logger.Debug().Str("provider", g.cfg.Provider).Str("model", g.cfg.Model).Msg("[AI] Calling provider")

	switch g.cfg.Provider {
	case "anthropic":
		return g.callAnthropic(ctx, prompt)
	case "ollama":
		return g.callOllama(ctx, prompt)
	case "gemini":
		return g.callGemini(ctx, prompt)
	case "azure":
		return g.callAzure(ctx, prompt)
	default:
		// openai and other OpenAI-compatible services
		return g.callOpenAI(ctx, prompt)
	}
}

func (g *LLMGenerator) temperature() float32 {
	if g.cfg.Temperature > 0 {
		return float32(g.cfg.Temperature)
	}
	return 0.3
}

func (g *LLMGenerator) maxTokens() int {
	if g.cfg.MaxTokens > 0 {
		return g.cfg.MaxTokens
	}
	return 2048
}

func (g *LLMGenerator) chatCompletion(ctx context.Context, clientConfig openai.ClientConfig, prompt, label string) (string, error) {
	client := openai.NewClientWithConfig(clientConfig)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: g.temperature(),
		MaxTokens:   g.maxTokens(),
	})
	if err != nil {
		return "", fmt.Errorf("%s API error: %w", label, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", label)
	}
	return resp.Choices[0].Message.Content, nil
}

// callOpenAI handles OpenAI and OpenAI-compatible APIs (including custom endpoints)
func (g *LLMGenerator) callOpenAI(ctx context.Context, prompt string) (string, error) {
	clientConfig := openai.DefaultConfig(g.cfg.APIKey)
	if g.cfg.BaseURL != "" {
		clientConfig.BaseURL = g.cfg.BaseURL
	}
	return g.chatCompletion(ctx, clientConfig, prompt, "OpenAI")
}

// callAzure expects BaseURL https://{resource-name}.openai.azure.com; Model is the deployment name.
func (g *LLMGenerator) callAzure(ctx context.Context, prompt string) (string, error) {
	return g.chatCompletion(ctx, openai.DefaultAzureConfig(g.cfg.APIKey, g.cfg.BaseURL), prompt, "Azure OpenAI")
}

func (g *LLMGenerator) callAnthropic(ctx context.Context, prompt string) (string, error) {
	opts := []option.RequestOption{option.WithAPIKey(g.cfg.APIKey)}
	if g.cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(g.cfg.BaseURL))
	}
	client := anthropic.NewClient(opts...)

	model := g.cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(g.maxTokens()),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	var content strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}
	return content.String(), nil
}

func (g *LLMGenerator) callOllama(ctx context.Context, prompt string) (string, error) {
	baseURL := g.cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid Ollama base URL: %w", err)
	}
	client := api.NewClient(u, http.DefaultClient)

	model := g.cfg.Model
	if model == "" {
		model = "llama3"
	}

	var content strings.Builder
	err = client.Chat(ctx, &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Format: json.RawMessage(`"json"`),
		Options: map[string]interface{}{
			"temperature": g.temperature(),
		},
	}, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("Ollama API error: %w", err)
	}
	return content.String(), nil
}

func (g *LLMGenerator) callGemini(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: g.cfg.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("Gemini client error: %w", err)
	}

	model := g.cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	return resp.Text(), nil
}
