package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/IshaanNene/sitebrief/internal/types"
)

// LLMProvider specifies which LLM backend to use.
type LLMProvider string

const (
	ProviderGemini LLMProvider = "gemini"
	ProviderOllama LLMProvider = "ollama"
	ProviderOpenAI LLMProvider = "openai"
	ProviderCustom LLMProvider = "custom"
)

// Default endpoints per provider.
const (
	DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultOpenAIEndpoint = "https://api.openai.com/v1"
	DefaultOllamaEndpoint = "http://localhost:11434"
)

// Completer turns a prompt into answer text.
type Completer interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMConfig configures the LLM integration.
type LLMConfig struct {
	Provider    LLMProvider
	Endpoint    string // empty selects the provider default
	Model       string // e.g. "gemini-1.5-flash", "gpt-4o-mini", "llama3"
	APIKey      string
	// MaxTokens caps the answer length; zero leaves the provider's limit.
	MaxTokens   int
	Temperature float64
}

// LLMClient communicates with a completion service over HTTP.
type LLMClient struct {
	cfg    LLMConfig
	client *http.Client
	logger *slog.Logger
}

// NewLLMClient creates a new LLM client.
func NewLLMClient(cfg LLMConfig, logger *slog.Logger) *LLMClient {
	if cfg.Endpoint == "" {
		switch cfg.Provider {
		case ProviderGemini:
			cfg.Endpoint = DefaultGeminiEndpoint
		case ProviderOpenAI:
			cfg.Endpoint = DefaultOpenAIEndpoint
		case ProviderOllama:
			cfg.Endpoint = DefaultOllamaEndpoint
		}
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")

	return &LLMClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger.With("component", "llm_client"),
	}
}

// Endpoint returns the resolved base endpoint.
func (c *LLMClient) Endpoint() string { return c.cfg.Endpoint }

// Generate sends a prompt to the LLM and returns the response text.
func (c *LLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	var (
		text string
		err  error
	)
	start := time.Now()

	switch c.cfg.Provider {
	case ProviderGemini:
		text, err = c.generateGemini(ctx, prompt)
	case ProviderOllama:
		text, err = c.generateOllama(ctx, prompt)
	case ProviderOpenAI:
		text, err = c.generateOpenAI(ctx, prompt)
	case ProviderCustom:
		text, err = c.generateCustom(ctx, prompt)
	default:
		return "", fmt.Errorf("unsupported LLM provider: %s", c.cfg.Provider)
	}
	if err != nil {
		return "", err
	}

	c.logger.Debug("completion received",
		"provider", c.cfg.Provider,
		"prompt_chars", len(prompt),
		"answer_chars", len(text),
		"duration", time.Since(start),
	)
	return text, nil
}

func (c *LLMClient) generateGemini(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", types.ErrNoAPIKey
	}

	genConfig := map[string]any{"temperature": c.cfg.Temperature}
	if c.cfg.MaxTokens > 0 {
		genConfig["maxOutputTokens"] = c.cfg.MaxTokens
	}
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": genConfig,
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.Endpoint, url.PathEscape(c.cfg.Model))
	headers := map[string]string{"x-goog-api-key": c.cfg.APIKey}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
			FinishReason string `json:"finishReason"`
		} `json:"candidates"`
		PromptFeedback struct {
			BlockReason string `json:"blockReason"`
		} `json:"promptFeedback"`
	}
	if err := c.postJSON(ctx, "gemini", endpoint, headers, payload, &result); err != nil {
		return "", err
	}

	if result.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("gemini blocked prompt: %s", result.PromptFeedback.BlockReason)
	}
	if len(result.Candidates) == 0 {
		return "", types.ErrEmptyCompletion
	}

	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	reason := result.Candidates[0].FinishReason
	if b.Len() == 0 {
		return "", fmt.Errorf("%w (finish reason %s)", types.ErrEmptyCompletion, reason)
	}
	if reason != "" && reason != "STOP" {
		c.logger.Warn("gemini answer cut short", "model", c.cfg.Model, "finish_reason", reason)
	}
	return b.String(), nil
}

func (c *LLMClient) generateOllama(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model":  c.cfg.Model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]any{
			"temperature": c.cfg.Temperature,
		},
	}
	if c.cfg.MaxTokens > 0 {
		payload["options"].(map[string]any)["num_predict"] = c.cfg.MaxTokens
	}

	var result struct {
		Response string `json:"response"`
	}
	if err := c.postJSON(ctx, "ollama", c.cfg.Endpoint+"/api/generate", nil, payload, &result); err != nil {
		return "", err
	}
	if result.Response == "" {
		return "", types.ErrEmptyCompletion
	}
	return result.Response, nil
}

func (c *LLMClient) generateOpenAI(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", types.ErrNoAPIKey
	}

	payload := map[string]any{
		"model": c.cfg.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": c.cfg.Temperature,
	}
	if c.cfg.MaxTokens > 0 {
		payload["max_tokens"] = c.cfg.MaxTokens
	}
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := c.postJSON(ctx, "openai", c.cfg.Endpoint+"/chat/completions", headers, payload, &result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in openai response: %w", types.ErrEmptyCompletion)
	}
	return result.Choices[0].Message.Content, nil
}

func (c *LLMClient) generateCustom(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"prompt": prompt,
		"model":  c.cfg.Model,
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("custom request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("custom: HTTP %d: %s", resp.StatusCode, truncate(string(respBody), 512))
	}
	return string(respBody), nil
}

// postJSON posts payload as JSON and decodes a 2xx response into out.
func (c *LLMClient) postJSON(ctx context.Context, name, endpoint string, headers map[string]string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s: HTTP %d: %s", name, resp.StatusCode, truncate(strings.TrimSpace(string(msg)), 512))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", name, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
