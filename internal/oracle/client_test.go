package oracle_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bugbash/internal/oracle"
)

type recordedRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	System    string `json:"system"`
	Messages  []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func oracleServer(t *testing.T, reply string, capture *recordedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"content": []map[string]any{{"type": "text", "text": reply}},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestClientGenerate(t *testing.T) {
	var req recordedRequest
	srv := oracleServer(t, "\ndef f():\n    return 1\n", &req)
	defer srv.Close()

	c := oracle.NewClient(srv.URL, "test-key", "test-model")
	code, err := c.Generate(context.Background(), "Write a function that reverses a linked list")
	require.NoError(t, err)
	assert.Equal(t, "def f():\n    return 1", code, "snippet text is trimmed")

	assert.Equal(t, "test-model", req.Model)
	assert.Contains(t, req.System, "coding challenge generator")
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "reverses a linked list")
}

func TestClientValidateParsesVerdictFromProse(t *testing.T) {
	var req recordedRequest
	srv := oracleServer(t, `Assessment: {"fixed": true, "explanation": "Correct."} done`, &req)
	defer srv.Close()

	c := oracle.NewClient(srv.URL, "test-key", "test-model")
	v, err := c.Validate(context.Background(), "buggy", "candidate")
	require.NoError(t, err)
	assert.True(t, v.Fixed)
	assert.Equal(t, "Correct.", v.Explanation)

	assert.Contains(t, req.System, "code validator")
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "ORIGINAL BUGGY CODE")
	assert.Contains(t, req.Messages[0].Content, "buggy")
	assert.Contains(t, req.Messages[0].Content, "PLAYER'S FIX")
	assert.Contains(t, req.Messages[0].Content, "candidate")
}

func TestClientValidateUnparsableBodyDegrades(t *testing.T) {
	srv := oracleServer(t, "I think it looks fine!", nil)
	defer srv.Close()

	c := oracle.NewClient(srv.URL, "test-key", "test-model")
	v, err := c.Validate(context.Background(), "buggy", "candidate")
	require.NoError(t, err, "an unparsable verdict is not a transport error")
	assert.False(t, v.Fixed)
	assert.Equal(t, "Could not parse validation result.", v.Explanation)
}

func TestClientNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := oracle.NewClient(srv.URL, "test-key", "test-model")
	_, err := c.Generate(context.Background(), "topic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClientEmptyContentIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content": []}`))
	}))
	defer srv.Close()

	c := oracle.NewClient(srv.URL, "test-key", "test-model")
	_, err := c.Generate(context.Background(), "topic")
	require.ErrorIs(t, err, oracle.ErrEmptyCompletion)
}

func TestClientTransportFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	c := oracle.NewClient(srv.URL, "test-key", "test-model")
	_, err := c.Validate(context.Background(), "a", "b")
	require.Error(t, err)
}
