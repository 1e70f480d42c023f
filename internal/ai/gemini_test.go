package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-unhired-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "super-secret-key"

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGeminiClient(&config.Config{
		GeminiBaseURL: srv.URL,
		GeminiAPIKey:  testAPIKey,
		GeminiModel:   "gemini-1.5-flash",
	})
}

func candidateResponse(finishReason, text string) geminiResponse {
	var resp geminiResponse
	resp.Candidates = []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	}{
		{
			Content:      geminiContent{Role: "model", Parts: []geminiPart{{Text: text}}},
			FinishReason: finishReason,
		},
	}
	return resp
}

func TestGeminiGenerate(t *testing.T) {
	prompt := Prompt{System: "reject everyone", User: "applicant stuff"}

	t.Run("Returns trimmed text on a normal stop", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
			assert.Equal(t, testAPIKey, r.Header.Get("x-goog-api-key"))

			var req geminiRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.NotNil(t, req.SystemInstruction)
			assert.Equal(t, "reject everyone", req.SystemInstruction.Parts[0].Text)
			require.Len(t, req.Contents, 1)
			assert.Equal(t, "user", req.Contents[0].Role)
			assert.Equal(t, geminiTemperature, req.GenerationConfig.Temperature)

			_ = json.NewEncoder(w).Encode(candidateResponse("STOP", "  Unfortunately, no.  "))
		})

		text, err := client.Generate(context.Background(), prompt)
		require.NoError(t, err)
		assert.Equal(t, "Unfortunately, no.", text)
	})

	t.Run("Non-STOP finish reason fails with the reason", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(candidateResponse("SAFETY", "partial"))
		})

		_, err := client.Generate(context.Background(), prompt)
		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Contains(t, genErr.Reason, "SAFETY")
	})

	t.Run("Missing candidates fail", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(geminiResponse{})
		})

		_, err := client.Generate(context.Background(), prompt)
		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, "no candidates", genErr.Reason)
	})

	t.Run("Empty completion text fails", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(candidateResponse("STOP", "   "))
		})

		_, err := client.Generate(context.Background(), prompt)
		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, "empty completion", genErr.Reason)
	})

	t.Run("Non-2xx status surfaces the status without the key", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
		})

		_, err := client.Generate(context.Background(), prompt)
		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Contains(t, genErr.Reason, "status 429")
		assert.NotContains(t, err.Error(), testAPIKey)
	})

	t.Run("Transport errors are normalized and never leak the key", func(t *testing.T) {
		client := NewGeminiClient(&config.Config{
			GeminiBaseURL: "http://127.0.0.1:1",
			GeminiAPIKey:  testAPIKey,
			GeminiModel:   "gemini-1.5-flash",
		})

		_, err := client.Generate(context.Background(), prompt)
		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, "transport", genErr.Reason)
		assert.NotContains(t, err.Error(), testAPIKey)
	})

	t.Run("Missing API key fails before any request", func(t *testing.T) {
		client := NewGeminiClient(&config.Config{GeminiBaseURL: "http://example.invalid"})
		_, err := client.Generate(context.Background(), prompt)
		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, "api key not configured", genErr.Reason)
	})
}
