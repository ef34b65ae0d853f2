package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pennywise-app/pennywise/internal/common"
	"github.com/pennywise-app/pennywise/internal/model"
)

// Config holds configuration for the OpenAI classification client. The API
// key is injected here; the package never reads the environment.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// openAIClient implements the Client interface against the OpenAI chat
// completions API.
type openAIClient struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
}

// NewOpenAIClient creates a new OpenAI API client.
func NewOpenAIClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.1
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 150
	}

	return &openAIClient{
		apiKey:      cfg.APIKey,
		model:       model,
		baseURL:     baseURL,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// Classify sends a single classification request. One attempt only; the
// engine falls back to keyword matching on any error.
func (c *openAIClient) Classify(ctx context.Context, req ClassifyRequest) (ClassifyResponse, error) {
	requestBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": c.systemPrompt(),
			},
			{
				"role":    "user",
				"content": c.buildPrompt(req),
			},
		},
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return ClassifyResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", strings.NewReader(string(jsonBody)))
	if err != nil {
		return ClassifyResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ClassifyResponse{}, fmt.Errorf("%w: request failed: %v", common.ErrClassifierUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ClassifyResponse{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return ClassifyResponse{}, fmt.Errorf("%w: OpenAI API error (status %d): %s", common.ErrClassifierUnavailable, resp.StatusCode, string(body))
	}

	var response openAIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return ClassifyResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Choices) == 0 {
		return ClassifyResponse{}, fmt.Errorf("no completion choices returned")
	}

	return parseClassification(response.Choices[0].Message.Content)
}

func (c *openAIClient) systemPrompt() string {
	names := make([]string, 0, len(model.Categories()))
	for _, cat := range model.Categories() {
		names = append(names, string(cat))
	}

	return fmt.Sprintf(`You are a financial categorization expert. Your job is to categorize transactions based on merchant name, amount, and description.

Available categories: %s

You MUST respond with ONLY a valid JSON object containing:
- category: one of the available categories
- confidence: a number between 0 and 1 representing your confidence
- reasoning: brief explanation of your choice

Do not include any text before or after the JSON. Be consistent with similar merchants. Consider typical spending patterns.`,
		strings.Join(names, ", "))
}

func (c *openAIClient) buildPrompt(req ClassifyRequest) string {
	prompt := fmt.Sprintf("Categorize this transaction:\nMerchant: %s\nAmount: $%d.%02d",
		req.Merchant, req.AmountCents/100, req.AmountCents%100)

	if req.Description != "" {
		prompt += fmt.Sprintf("\nDescription: %s", req.Description)
	}

	return prompt
}

// parseClassification extracts category and confidence from the LLM response.
func parseClassification(content string) (ClassifyResponse, error) {
	var jsonResp struct {
		Category   string  `json:"category"`
		Reasoning  string  `json:"reasoning,omitempty"`
		Confidence float64 `json:"confidence"`
	}

	content = cleanMarkdownWrapper(content)

	if err := json.Unmarshal([]byte(content), &jsonResp); err != nil {
		return ClassifyResponse{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if jsonResp.Category == "" {
		return ClassifyResponse{}, fmt.Errorf("no category found in response")
	}

	return ClassifyResponse{
		Category:   jsonResp.Category,
		Confidence: jsonResp.Confidence,
		Reasoning:  jsonResp.Reasoning,
	}, nil
}

// cleanMarkdownWrapper strips ```json fences some models wrap around
// otherwise-valid JSON.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		if idx := strings.Index(content, "\n"); idx >= 0 {
			content = content[idx+1:]
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	return strings.TrimSpace(content)
}

// openAIResponse represents the OpenAI API response structure.
type openAIResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
		Index        int    `json:"index"`
	} `json:"choices"`
}
