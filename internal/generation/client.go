package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dgallion1/proposaltoc/internal/toc"
)

// Timeout bounds a single generation request.
const Timeout = 10 * time.Minute

// Client hands curated outlines to the downstream proposal generator.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: Timeout,
		},
	}
}

// Request is the body for POST /generate_proposal.
type Request struct {
	RFQName   string        `json:"rfqName"`
	Title     string        `json:"title,omitempty"`
	Tone      string        `json:"tone,omitempty"`
	SessionID string        `json:"sessionId,omitempty"`
	Sections  []toc.Section `json:"sections"`
}

// Response is the generator's reply. Proposal is passed through untouched.
type Response struct {
	Status   string          `json:"status"`
	Message  string          `json:"message,omitempty"`
	Proposal json.RawMessage `json:"proposal,omitempty"`
}

// Control is a pause, resume or stop signal for an in-flight generation.
type Control string

const (
	Pause  Control = "pause"
	Resume Control = "resume"
	Stop   Control = "stop"
)

// Valid reports whether c is a known control signal.
func (c Control) Valid() bool {
	return c == Pause || c == Resume || c == Stop
}

// Generate submits an outline and waits for the generated proposal.
func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	if len(req.Sections) == 0 {
		return nil, fmt.Errorf("generate: outline has no sections")
	}
	if req.Tone == "" {
		req.Tone = "professional"
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate_proposal", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("generate: status %d: %s", resp.StatusCode, string(respBody))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out.Status == "error" {
		return &out, fmt.Errorf("generate: %s", out.Message)
	}
	return &out, nil
}

// Signal pauses, resumes or stops the generation running for sessionID.
// It reports whether the generator acted on the signal.
func (c *Client) Signal(ctx context.Context, sessionID string, ctl Control) (bool, error) {
	if !ctl.Valid() {
		return false, fmt.Errorf("unknown generation control %q", ctl)
	}
	u := c.baseURL + "/generation_" + string(ctl) + "/" + url.PathEscape(sessionID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	c.authorize(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false, fmt.Errorf("generation %s: %w", ctl, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return false, fmt.Errorf("generation %s %s: status %d: %s", ctl, sessionID, resp.StatusCode, string(respBody))
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return result.Status == "success", nil
}

func (c *Client) authorize(r *http.Request) {
	if c.apiKey != "" {
		r.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
