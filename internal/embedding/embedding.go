// Package embedding wraps the OpenAI embeddings endpoint used to vectorize
// confirmed teacher feedback for later retrieval.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"gramtax/internal/llm"
)

const defaultTimeout = 20 * time.Second

// Client issues single-input embedding calls.
type Client struct {
	http    *http.Client
	apiKey  string
	model   string
	baseURL string
}

// New creates a client. An empty apiKey falls back to OPENAI_API_KEY; an
// empty model to text-embedding-3-small.
func New(apiKey, model string) *Client {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &Client{
		http:    &http.Client{},
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://api.openai.com/v1/embeddings",
	}
}

// Model reports the embedding model in use, recorded alongside each vector.
func (c *Client) Model() string { return c.model }

type embeddingReq struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResp struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Embed vectorizes one text. Error taxonomy matches the chat client:
// *llm.ConfigError without a key, *llm.UpstreamError on HTTP/timeout trouble.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	if c.apiKey == "" {
		return nil, llm.NewConfigError(errors.New("OPENAI_API_KEY not set"))
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	body, err := json.Marshal(embeddingReq{Model: c.model, Input: text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &llm.UpstreamError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &llm.UpstreamError{Status: resp.StatusCode, Body: string(b)}
	}

	var out embeddingResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &llm.UpstreamError{Err: err}
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return nil, errors.New("embedding: empty response")
	}
	return out.Data[0].Embedding, nil
}
