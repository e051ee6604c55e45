package llm

import (
	"context"
	"time"
)

// Message is one chat-completion message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries everything one model call needs. ResponseFormat, when
// set, is passed to the provider verbatim (JSON-schema constrained output on
// OpenAI-compatible endpoints).
type ChatRequest struct {
	Temperature    float64
	MaxTokens      int
	ResponseFormat any
	Messages       []Message
	Timeout        time.Duration
}

// Client issues a single bounded-time chat-completion call and returns the
// raw message content. Implementations never retry; callers own that policy.
type Client interface {
	Name() string
	Complete(ctx context.Context, req ChatRequest) (string, error)
	Close() error
}
