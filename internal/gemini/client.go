// Package gemini is a thin client for the generateContent REST endpoint of
// Google's Generative Language API. The server proxies prompts through it
// verbatim; no retries, no streaming.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrNoContent means the upstream answered 200 but produced no candidates.
var ErrNoContent = errors.New("no content generated")

// UpstreamError carries a non-2xx status from the API so the handler can
// forward it.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gemini api returned status %d", e.Status)
}

// Part is one piece of generated content; for text prompts it is the answer.
type Part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Client calls the generateContent endpoint for a fixed model.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	httpc   *http.Client
}

// New constructs a client. The key is passed as a query parameter on each
// request, matching the API's v1beta convention.
func New(apiKey, model string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   model,
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
}

// WithBaseURL overrides the API host; used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// Generate sends the prompt as a single user turn and returns the first part
// of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (Part, error) {
	if c.apiKey == "" {
		return Part{}, errors.New("gemini api key is not configured")
	}

	payload := generateRequest{
		Contents: []content{{Role: "user", Parts: []Part{{Text: prompt}}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Part{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Part{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Part{}, fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("gemini api error: status=%d body=%s", resp.StatusCode, detail)
		return Part{}, &UpstreamError{Status: resp.StatusCode}
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Part{}, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return Part{}, ErrNoContent
	}
	return out.Candidates[0].Content.Parts[0], nil
}
