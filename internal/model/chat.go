package model

import "time"

// FallbackProvider is reported as the provider name when no live provider answered
const FallbackProvider = "fallback"

// ChatRequest is the payload of POST /api/ai/chat
type ChatRequest struct {
	Message string `json:"message"`
	Country string `json:"country,omitempty"`
	Context string `json:"context,omitempty"`
}

// ChatResult is the answer to a single ChatRequest. Nothing is persisted server-side.
type ChatResult struct {
	Response      string `json:"response"`
	UsingFallback bool   `json:"usingFallback"` // True iff no provider call succeeded
	Provider      string `json:"provider"`      // Provider that answered, or "fallback"
	Timestamp     string `json:"timestamp"`     // RFC 3339 UTC, millisecond precision
}

// TimestampLayout mirrors JavaScript's Date.toISOString output
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t the way ChatResult.Timestamp expects
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
