package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Oracle generates buggy snippets and validates candidate fixes. The room
// treats it as an opaque, occasionally-failing dependency; tests substitute
// scripted fakes.
type Oracle interface {
	Generate(ctx context.Context, topic string) (string, error)
	Validate(ctx context.Context, originalCode, candidate string) (Verdict, error)
}

var ErrEmptyCompletion = errors.New("oracle returned no content")

const (
	apiVersion   = "2023-06-01"
	maxTokens    = 2048
	callTimeout  = 30 * time.Second
	maxBodyBytes = 1 << 20
)

// Client talks to an Anthropic-style messages API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

var _ Oracle = (*Client)(nil)

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: callTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

// Generate asks for one defective snippet for the given task topic.
func (c *Client) Generate(ctx context.Context, topic string) (string, error) {
	text, err := c.complete(ctx, generationPrompt,
		"Generate a buggy Python code snippet for this task: "+topic)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Validate asks whether candidate fixes originalCode. A transport failure is
// an error; an unparsable response is not, it degrades to fixed:false.
func (c *Client) Validate(ctx context.Context, originalCode, candidate string) (Verdict, error) {
	user := fmt.Sprintf(
		"ORIGINAL BUGGY CODE:\n```python\n%s\n```\n\nPLAYER'S FIX:\n```python\n%s\n```",
		originalCode, candidate)
	text, err := c.complete(ctx, validationPrompt, user)
	if err != nil {
		return Verdict{}, err
	}
	return ExtractVerdict(text), nil
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(messagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []message{{Role: "user", Content: user}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("oracle status %d: %s", res.StatusCode, string(raw))
	}

	var out messagesResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", err
	}
	if len(out.Content) == 0 || out.Content[0].Text == "" {
		return "", ErrEmptyCompletion
	}
	return out.Content[0].Text, nil
}
