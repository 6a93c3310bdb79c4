// Package ai proxies prompt requests to an OpenAI-compatible chat completion
// endpoint. The upstream response body is relayed untouched.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	dErrors "regwise/pkg/domain-errors"
)

const requestTimeout = 30 * time.Second

// Client calls the chat completion endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Complete sends a single-message completion request and returns the raw
// upstream response body.
func (c *Client) Complete(ctx context.Context, prompt string) ([]byte, error) {
	if !c.Configured() {
		return nil, dErrors.New(dErrors.CodeUpstream, "AI service is not configured")
	}

	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstream, "AI request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstream, "AI request failed")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, dErrors.Newf(dErrors.CodeUpstream, "AI request failed with status %d", resp.StatusCode)
	}
	return body, nil
}
