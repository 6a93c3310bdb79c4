package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "regwise/pkg/domain-errors"
)

func TestCompleteRelaysUpstreamBody(t *testing.T) {
	var captured struct {
		auth string
		body chatRequest
	}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		captured.auth = r.Header.Get("Authorization")
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &captured.body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello"}}]}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "sk-test", "gpt-4o-mini")

	body, err := client.Complete(context.Background(), "summarize KYC rules")
	require.NoError(t, err)
	assert.JSONEq(t, `{"choices":[{"message":{"content":"hello"}}]}`, string(body))

	assert.Equal(t, "Bearer sk-test", captured.auth)
	assert.Equal(t, "gpt-4o-mini", captured.body.Model)
	require.Len(t, captured.body.Messages, 1)
	assert.Equal(t, "user", captured.body.Messages[0].Role)
	assert.Equal(t, "summarize KYC rules", captured.body.Messages[0].Content)
}

func TestCompleteWithoutKey(t *testing.T) {
	client := NewClient("http://unused", "", "gpt-4o-mini")

	_, err := client.Complete(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUpstream))
	assert.Equal(t, "AI service is not configured", dErrors.MessageOf(err))
}

func TestCompleteUpstreamFailure(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer upstream.Close()

		client := NewClient(upstream.URL, "sk-test", "gpt-4o-mini")
		_, err := client.Complete(context.Background(), "p")
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeUpstream))
	})

	t.Run("unreachable host", func(t *testing.T) {
		dead := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		dead.Close()

		client := NewClient(dead.URL, "sk-test", "gpt-4o-mini")
		_, err := client.Complete(context.Background(), "p")
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeUpstream))
	})
}
