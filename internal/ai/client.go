// Package ai wraps the external text-generation endpoint used to produce
// rejection decisions, plus the prompt construction that feeds it.
package ai

import "context"

// Prompt is a two-part prompt: fixed system instructions plus a user turn
// that embeds untrusted applicant content.
type Prompt struct {
	System string
	User   string
}

// Client is a stateless one-shot wrapper around a text-generation endpoint.
// Retry is the caller's responsibility.
type Client interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}
