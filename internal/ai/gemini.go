package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-unhired-backend/config"
)

// Fixed sampling temperature; high enough for varied phrasing, low enough to
// stay on-script.
const geminiTemperature = 0.85

// GeminiClient calls the Gemini generateContent endpoint. One request per
// Generate call, no internal retry. The API key travels in a header, never
// in the URL, so it cannot surface through errors.
type GeminiClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiClient creates a Gemini API client from configuration
func NewGeminiClient(cfg *config.Config) *GeminiClient {
	return &GeminiClient{
		baseURL:    strings.TrimRight(cfg.GeminiBaseURL, "/"),
		apiKey:     cfg.GeminiAPIKey,
		model:      cfg.GeminiModel,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate issues one generateContent request and returns the completion
// text. Any empty response, missing candidate, or finish reason other than
// STOP is a *GenerationError.
func (c *GeminiClient) Generate(ctx context.Context, prompt Prompt) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", &GenerationError{Reason: "api key not configured"}
	}

	reqBody := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: prompt.System}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt.User}}},
		},
		GenerationConfig: geminiGenerationConfig{Temperature: geminiTemperature},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", &GenerationError{Reason: "request encoding", Err: err}
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", &GenerationError{Reason: "request build", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &GenerationError{Reason: "transport", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = "no response body"
		}
		return "", &GenerationError{
			Reason: fmt.Sprintf("status %d", resp.StatusCode),
			Err:    errors.New(msg),
		}
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &GenerationError{Reason: "response decoding", Err: err}
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return "", &GenerationError{Reason: "api error", Err: errors.New(decoded.Error.Message)}
	}
	if len(decoded.Candidates) == 0 {
		return "", &GenerationError{Reason: "no candidates"}
	}

	candidate := decoded.Candidates[0]
	if candidate.FinishReason != "STOP" {
		return "", &GenerationError{Reason: fmt.Sprintf("finish reason %s", candidate.FinishReason)}
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		text.WriteString(part.Text)
	}
	result := strings.TrimSpace(text.String())
	if result == "" {
		return "", &GenerationError{Reason: "empty completion"}
	}

	return result, nil
}
