// Package gateway turns a prompt into generated text via a hosted model.
//
// Gateway never returns errors to its callers. Every failure is logged on the
// api category and degraded to a fixed in-band placeholder string, so screens
// can render whatever comes back.
package gateway

import (
	"context"
	"time"

	"scholarsync/internal/logging"
	"scholarsync/internal/types"
)

// In-band placeholder texts.
const (
	MsgMissingKey    = "API key missing. Please configure API_KEY."
	MsgRemoteError   = "An error occurred while communicating with the AI."
	MsgEmptyResponse = "Sorry, I couldn't generate a response."
	MsgMatchNoKey    = "AI Match analysis requires API Key."
	MsgPolishNoKey   = "AI Pitch Polish requires API Key."
)

// Backend is a single remote text-completion call.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Gateway wraps a Backend with the placeholder policy.
// A nil backend means no credential is configured.
type Gateway struct {
	backend Backend
}

// New returns a gateway over b. Pass nil when no credential is configured.
func New(b Backend) *Gateway {
	return &Gateway{backend: b}
}

// HasCredential reports whether a backend is configured.
func (g *Gateway) HasCredential() bool {
	return g != nil && g.backend != nil
}

// Provider returns the backend name, or "none".
func (g *Gateway) Provider() string {
	if !g.HasCredential() {
		return "none"
	}
	return g.backend.Name()
}

// Complete forwards prompt verbatim and returns the generated text or a placeholder.
// No retries, no caching: every call is an independent request.
func (g *Gateway) Complete(ctx context.Context, prompt string) string {
	if !g.HasCredential() {
		logging.APIDebug("complete skipped: no credential")
		return MsgMissingKey
	}

	start := time.Now()
	text, err := g.backend.Generate(ctx, prompt)
	latency := time.Since(start)

	if err != nil {
		logging.APIError("%s generate failed after %v: %v", g.backend.Name(), latency, err)
		return MsgRemoteError
	}
	logging.APIDebug("%s generate: prompt_len=%d response_len=%d latency=%v",
		g.backend.Name(), len(prompt), len(text), latency)

	if text == "" {
		return MsgEmptyResponse
	}
	return text
}

// MatchRationale asks for a short collaboration rationale between a and b.
func (g *Gateway) MatchRationale(ctx context.Context, a, b types.User) string {
	if !g.HasCredential() {
		return MsgMatchNoKey
	}
	return g.Complete(ctx, MatchPrompt(a, b))
}

// PolishPitch asks for a more engaging rewrite of draft.
func (g *Gateway) PolishPitch(ctx context.Context, draft string) string {
	if !g.HasCredential() {
		return MsgPolishNoKey
	}
	return g.Complete(ctx, PolishPrompt(draft))
}

// AssistantReply answers a free-form researcher query.
func (g *Gateway) AssistantReply(ctx context.Context, query string) string {
	return g.Complete(ctx, AssistantPrompt(query))
}
