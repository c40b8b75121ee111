package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/metalagman/agentflow/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiGenerate_SendsPromptAndParsesFirstCandidate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read request body: %v", err)
		}
		if err := json.Unmarshal(body, &gotBody); err != nil {
			t.Errorf("unmarshal request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [
				{"content": {"role": "model", "parts": [{"text": "1. Login works"}]}, "finishReason": "STOP"}
			]
		}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewGemini(context.Background(), GeminiConfig{
		Model:      "gemini-1.5-flash-latest",
		BaseURL:    srv.URL + "/",
		APIKey:     "test-key",
		Timeout:    5 * time.Second,
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)

	out, err := client.Generate(context.Background(), "Generate a list of requirements to test the website")
	require.NoError(t, err)
	assert.Equal(t, "1. Login works", out)
	assert.True(t, strings.HasSuffix(gotPath, "models/gemini-1.5-flash-latest:generateContent"), gotPath)
	assert.Equal(t, "test-key", gotKey)

	contents, ok := gotBody["contents"].([]any)
	require.True(t, ok, "contents missing from request")
	require.Len(t, contents, 1)
	raw, err := json.Marshal(contents[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Generate a list of requirements to test the website")
}

func TestGeminiGenerate_NoCandidatesIsEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewGemini(context.Background(), GeminiConfig{
		Model:      "gemini-1.5-flash-latest",
		BaseURL:    srv.URL + "/",
		APIKey:     "test-key",
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "hello")
	assert.True(t, errors.Is(err, ErrEmptyResponse), "error = %v", err)
}

func TestGeminiGenerate_HTTPErrorIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"}}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewGemini(context.Background(), GeminiConfig{
		Model:      "gemini-1.5-flash-latest",
		BaseURL:    srv.URL + "/",
		APIKey:     "bad-key",
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini generate content")
}

func TestOpenAIGenerate_ParsesChatCompletion(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read request body: %v", err)
		}
		if err := json.Unmarshal(body, &gotBody); err != nil {
			t.Errorf("unmarshal request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "As a user I can log in."}, "finish_reason": "stop"}
			],
			"usage": {"prompt_tokens": 3, "completion_tokens": 7, "total_tokens": 10}
		}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewOpenAI(OpenAIConfig{
		Model:      "gpt-4o-mini",
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)

	out, err := client.Generate(context.Background(), "Create user stories")
	require.NoError(t, err)
	assert.Equal(t, "As a user I can log in.", out)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
}

func TestNew_ResolvesAPIKeyFromEnv(t *testing.T) {
	const envKey = "AGENTFLOW_TEST_GEMINI_KEY"
	t.Setenv(envKey, "from-env")

	client, err := New(context.Background(), config.ModelConfig{
		Provider:  config.ProviderGemini,
		Model:     "gemini-1.5-flash-latest",
		APIKeyEnv: envKey,
	}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Gemini{}, client)
}

func TestNew_MissingAPIKey(t *testing.T) {
	const envKey = "AGENTFLOW_TEST_MISSING_KEY"
	t.Setenv(envKey, "")

	_, err := New(context.Background(), config.ModelConfig{
		Provider:  config.ProviderOpenAI,
		Model:     "gpt-4o-mini",
		APIKeyEnv: envKey,
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), envKey)
}

func TestNew_SelectsOpenAIProvider(t *testing.T) {
	client, err := New(context.Background(), config.ModelConfig{
		Provider: config.ProviderOpenAI,
		Model:    "gpt-4o-mini",
		APIKey:   "inline",
	}, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, client)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.ModelConfig{Provider: "llama", Model: "x", APIKey: "k"}, nil)
	assert.Error(t, err)
}
