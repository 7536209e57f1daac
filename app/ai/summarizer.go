package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const responsesURL = "https://api.openai.com/v1/responses"

// Summarizer produces a natural-language digest from prepared item lines.
// Implementations return an error instead of a digest on any failure; the
// caller decides on the deterministic fallback.
type Summarizer interface {
	Summarize(ctx context.Context, industry, input string) (string, error)
}

// New creates an OpenAI-backed summarizer. A missing API key is reported
// here, before any request is attempted.
func New(apiKey, model string, timeout time.Duration) (Summarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing OpenAI API key")
	}
	if model == "" {
		model = "gpt-4.1-mini"
	}

	return &openAIProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: responsesURL,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

type openAIProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type responsesRequest struct {
	Model string            `json:"model"`
	Input []responseMessage `json:"input"`
}

type responseMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesReply struct {
	Output []struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

const digestPrompt = `You are the editor of a trade publication covering the %s industry.

Rules:
- Never include topics not directly related to %s.
- Mention geopolitics, finance or politics only where they directly touch the industry.
- Exclude items whose substance is outside the industry even when the headline matches.
- Do not speculate beyond the material. Do not invent facts.
- Keep the whole digest between 1200 and 1800 characters.

Output format, in this order:
1) Title: %s daily brief (%s)
2) Three key points of the day
3) Today's theme in one short line
4) Top 5 stories: headline / source / why it matters (one line) / URL`

func (p *openAIProvider) Summarize(ctx context.Context, industry, input string) (string, error) {
	today := time.Now().UTC().Format("2006-01-02")
	prompt := fmt.Sprintf(digestPrompt, industry, industry, industry, today)

	body, err := json.Marshal(responsesRequest{
		Model: p.model,
		Input: []responseMessage{
			{Role: "system", Content: "You are a careful analyst. Do not invent facts."},
			{Role: "user", Content: prompt + "\n\nMaterial:\n" + input},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("OpenAI API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var reply responsesReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(reply.Output) == 0 || len(reply.Output[0].Content) == 0 {
		return "", fmt.Errorf("empty response from OpenAI API")
	}

	text := strings.TrimSpace(reply.Output[0].Content[0].Text)
	if text == "" {
		return "", fmt.Errorf("blank digest from OpenAI API")
	}

	return text, nil
}
