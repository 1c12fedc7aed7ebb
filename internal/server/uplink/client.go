// Package uplink is the client for the external analysis engine: the
// remote generative-AI endpoint that produces authenticity verdicts. No
// forensic analysis happens locally; this package only ships the request
// out and maps the engine's failure modes onto the local error taxonomy.
package uplink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/veritaslab/veritas/internal/common"
	"github.com/veritaslab/veritas/internal/server/models"
)

// Config holds the engine endpoint settings.
type Config struct {
	BaseURL    string // e.g. https://engine.example.com
	Credential string // bearer credential; empty means the uplink is not linked
	Model      string // engine model identifier
}

// Client calls the analysis engine over HTTP.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates an engine client.
func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg, httpClient: &http.Client{}}
}

// Request describes one analysis submission: a media type tag plus either a
// URL or an evidence storage key, with an optional content-type hint.
type Request struct {
	MediaType   string `json:"media_type"`
	URL         string `json:"url,omitempty"`
	EvidenceKey string `json:"evidence_key,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// Analyze submits the request and returns the engine's verdict.
//
// Error mapping: a missing configured credential is
// common.ErrUplinkCredentialMissing before any network traffic; a 401/403
// from the engine is common.ErrUplinkCredentialInvalid; every other failure
// is common.ErrUplinkFailure. The distinction lets the UI offer the right
// remediation (re-link the credential vs. a plain retry).
func (c *Client) Analyze(ctx context.Context, req Request) (*models.Verdict, error) {
	if c.cfg.Credential == "" {
		return nil, common.ErrUplinkCredentialMissing
	}

	payload := struct {
		Model string `json:"model"`
		Request
	}{Model: c.cfg.Model, Request: req}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", common.ErrUplinkFailure, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/v1/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", common.ErrUplinkFailure, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.Credential)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUplinkFailure, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, common.ErrUplinkCredentialInvalid
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: engine returned %d: %s", common.ErrUplinkFailure, resp.StatusCode, msg)
	}

	verdict := &models.Verdict{}
	if err := json.NewDecoder(resp.Body).Decode(verdict); err != nil {
		return nil, fmt.Errorf("%w: decode verdict: %v", common.ErrUplinkFailure, err)
	}
	return verdict, nil
}
