package memoryinfra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aidul23/agent-mem/pkg/memory"
)

const hindsightNamespace = "default"

// HindsightClient talks to a Hindsight memory service over its HTTP API
type HindsightClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHindsightClient creates a client. A zero timeout leaves the http.Client default.
func NewHindsightClient(baseURL, apiKey string, timeout time.Duration) *HindsightClient {
	return &HindsightClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var (
	_ memory.Backend   = (*HindsightClient)(nil)
	_ memory.Reflector = (*HindsightClient)(nil)
	_ memory.Pinger    = (*HindsightClient)(nil)
)

type retainItem struct {
	Content string `json:"content"`
	Context string `json:"context,omitempty"`
}

type retainRequest struct {
	Items []retainItem `json:"items"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type recallResponse struct {
	Results []struct {
		Text string `json:"text"`
	} `json:"results"`
}

type reflectResponse struct {
	Text string `json:"text"`
}

// Retain stores one memory item in the bank
func (c *HindsightClient) Retain(ctx context.Context, bankID, content, contextLabel string) error {
	req := retainRequest{Items: []retainItem{{Content: content, Context: contextLabel}}}
	return c.do(ctx, http.MethodPost, c.bankPath(bankID, "memories"), req, nil)
}

// Recall searches the bank. The service decides how many results to return;
// a positive limit truncates them.
func (c *HindsightClient) Recall(ctx context.Context, bankID, query string, limit int) ([]string, error) {
	var resp recallResponse
	if err := c.do(ctx, http.MethodPost, c.bankPath(bankID, "memories", "recall"), queryRequest{Query: query}, &resp); err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		texts = append(texts, r.Text)
	}
	if limit > 0 && len(texts) > limit {
		texts = texts[:limit]
	}
	return texts, nil
}

// Reflect asks the service to synthesize an answer over the bank
func (c *HindsightClient) Reflect(ctx context.Context, bankID, query string) (string, error) {
	var resp reflectResponse
	if err := c.do(ctx, http.MethodPost, c.bankPath(bankID, "reflect"), queryRequest{Query: query}, &resp); err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Ping checks the service health endpoint
func (c *HindsightClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *HindsightClient) bankPath(bankID string, parts ...string) string {
	segments := []string{"v1", hindsightNamespace, "banks", url.PathEscape(bankID)}
	segments = append(segments, parts...)
	return "/" + strings.Join(segments, "/")
}

func (c *HindsightClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode hindsight request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build hindsight request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hindsight request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("hindsight error %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode hindsight response: %w", err)
	}
	return nil
}
