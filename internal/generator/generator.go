// Package generator provides pluggable remote text generators that word a
// single clarifying follow-up question.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Generator words one follow-up question for a wellbeing entry. hint names
// the missing detail (for example "duration") and may be empty.
type Generator interface {
	GenerateFollowupQuestion(ctx context.Context, text, hint string) (string, error)
	Name() string
}

const systemPrompt = "You help a wellbeing check-in app ask one short, kind clarifying question. " +
	"Reply with the question only: one sentence, no preamble, no advice, no diagnosis."

// Prompt builds the user prompt shared by every provider.
func Prompt(text, hint string) string {
	var b strings.Builder
	b.WriteString("The person wrote:\n")
	b.WriteString(text)
	b.WriteString("\n")
	if hint != "" {
		fmt.Fprintf(&b, "Ask about the missing detail: %s.\n", hint)
	}
	b.WriteString("Question:")
	return b.String()
}

// firstLine keeps the first non-empty line and strips wrapping quotes.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, "\"'`")
		if line != "" {
			return line
		}
	}
	return ""
}

// --- Ollama Provider ---

// OllamaGenerator uses a local Ollama instance.
type OllamaGenerator struct {
	baseURL string
	model   string
	client  *http.Client
}

type ollamaRequest struct {
	Model  string `json:"model"`
	System string `json:"system"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// NewOllamaGenerator creates a generator using Ollama's generate API.
// baseURL defaults to $OLLAMA_HOST, then http://localhost:11434.
func NewOllamaGenerator(baseURL, model string) *OllamaGenerator {
	if baseURL == "" {
		baseURL = os.Getenv("OLLAMA_HOST")
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.2"
	}
	return &OllamaGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *OllamaGenerator) Name() string { return "ollama" }

func (g *OllamaGenerator) GenerateFollowupQuestion(ctx context.Context, text, hint string) (string, error) {
	body, _ := json.Marshal(ollamaRequest{Model: g.model, System: systemPrompt, Prompt: Prompt(text, hint)})
	var result ollamaResponse
	if err := postJSON(ctx, g.client, g.baseURL+"/api/generate", "", body, &result); err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	return firstLine(result.Response), nil
}

// --- OpenAI-compatible Provider ---

// OpenAIGenerator uses any OpenAI-compatible chat completions API.
type OpenAIGenerator struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewOpenAIGenerator creates a generator using an OpenAI-compatible API.
func NewOpenAIGenerator(baseURL, apiKey, model string) *OpenAIGenerator {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *OpenAIGenerator) Name() string { return "openai" }

func (g *OpenAIGenerator) GenerateFollowupQuestion(ctx context.Context, text, hint string) (string, error) {
	body, _ := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: Prompt(text, hint)},
		},
		MaxTokens:   64,
		Temperature: 0.3,
	})
	var result chatResponse
	if err := postJSON(ctx, g.client, g.baseURL+"/chat/completions", g.apiKey, body, &result); err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return firstLine(result.Choices[0].Message.Content), nil
}

func postJSON(ctx context.Context, client *http.Client, url, apiKey string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// --- Factory ---

// Settings selects and configures a provider.
type Settings struct {
	Provider string // "ollama" | "openai" | "genai" | "" (disabled)
	Model    string
	URL      string
	APIKey   string
}

// New creates the configured generator. It returns nil, nil when
// generation is disabled.
func New(ctx context.Context, s Settings) (Generator, error) {
	switch s.Provider {
	case "", "none":
		return nil, nil
	case "ollama":
		return NewOllamaGenerator(s.URL, s.Model), nil
	case "openai":
		return NewOpenAIGenerator(s.URL, s.APIKey, s.Model), nil
	case "genai":
		return NewGenAIGenerator(ctx, s.APIKey, s.Model)
	default:
		return nil, fmt.Errorf("unknown generator provider %q", s.Provider)
	}
}
