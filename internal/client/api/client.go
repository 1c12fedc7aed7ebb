// Package api is the HTTP client for the Veritas backend. It mirrors the
// public REST surface: auth, investigations, audit, and evidence presigning.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/veritaslab/veritas/internal/common"
)

// Session is an active operator session as returned by the backend.
type Session struct {
	OperatorID string    `json:"operator_id"`
	Token      string    `json:"token"`
	Expiry     time.Time `json:"expiry"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired() bool {
	return !s.Expiry.After(time.Now())
}

// Investigation is one analysis record as returned by the backend.
type Investigation struct {
	ID         string          `json:"id"`
	OperatorID string          `json:"operator_id"`
	FileName   string          `json:"file_name"`
	MediaType  string          `json:"media_type"`
	Status     string          `json:"status"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Verdict    string          `json:"verdict"`
	Confidence float64         `json:"confidence"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AuditEntry is one audit trail record as returned by the backend.
type AuditEntry struct {
	ID         string `json:"id"`
	OperatorID string `json:"operator_id"`
	Action     string `json:"action"`
	Details    string `json:"details"`
	Timestamp  int64  `json:"ts"`
}

// Submission describes one analysis request: media metadata plus either a
// URL or an uploaded evidence key.
type Submission struct {
	FileName    string `json:"file_name"`
	MediaType   string `json:"media_type"`
	URL         string `json:"url,omitempty"`
	EvidenceKey string `json:"evidence_key,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// Client talks to the Veritas backend HTTP API. Token is set after a
// successful Register or Login, or restored from a session marker.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewClient creates an API client for the given base URL (no trailing slash).
func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL, httpClient: &http.Client{Timeout: 60 * time.Second}}
}

// SetToken installs the bearer token used for authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

type apiError struct {
	Error string `json:"error"`
	Hint  string `json:"hint"`
}

// do executes one JSON request/response cycle. A non-nil out is filled from
// the response body. Backend error statuses are mapped to the common
// sentinels where the distinction matters to callers.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var ae apiError
		_ = json.NewDecoder(resp.Body).Decode(&ae)

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", common.ErrUnauthorized, ae.Error)
		case http.StatusConflict:
			return fmt.Errorf("%w: %s", common.ErrDuplicateIdentity, ae.Error)
		case http.StatusBadGateway:
			if ae.Hint != "" {
				return fmt.Errorf("%w: %s (%s)", common.ErrUplinkFailure, ae.Error, ae.Hint)
			}
			return fmt.Errorf("%w: %s", common.ErrUplinkFailure, ae.Error)
		default:
			return fmt.Errorf("server returned %s: %s", resp.Status, ae.Error)
		}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Register creates a new operator identity and installs the session token.
func (c *Client) Register(ctx context.Context, operatorID string, passkey []byte) (*Session, error) {
	return c.credentialCall(ctx, "/api/v1/auth/register", operatorID, passkey)
}

// Login authenticates an existing operator and installs the session token.
func (c *Client) Login(ctx context.Context, operatorID string, passkey []byte) (*Session, error) {
	return c.credentialCall(ctx, "/api/v1/auth/login", operatorID, passkey)
}

func (c *Client) credentialCall(ctx context.Context, path, operatorID string, passkey []byte) (*Session, error) {
	in := struct {
		OperatorID string `json:"operator_id"`
		Passkey    string `json:"passkey"`
	}{OperatorID: operatorID, Passkey: string(passkey)}

	var session Session
	if err := c.do(ctx, http.MethodPost, path, in, &session); err != nil {
		return nil, err
	}
	c.token = session.Token
	return &session, nil
}

// Logout records the logout server-side and drops the local token.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	c.token = ""
	return err
}

// Analyze submits evidence for analysis and returns the stored record.
func (c *Client) Analyze(ctx context.Context, sub Submission) (*Investigation, error) {
	var rec Investigation
	if err := c.do(ctx, http.MethodPost, "/api/v1/investigations/analyze", sub, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns all investigations owned by the authenticated operator.
func (c *Client) List(ctx context.Context) ([]Investigation, error) {
	var out struct {
		Investigations []Investigation `json:"investigations"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/investigations/", nil, &out); err != nil {
		return nil, err
	}
	return out.Investigations, nil
}

// Delete removes one investigation by id.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/investigations/"+id, nil, nil)
}

// Purge removes every investigation owned by the operator and returns the
// number of removed records.
func (c *Client) Purge(ctx context.Context) (int64, error) {
	var out struct {
		Purged int64 `json:"purged"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/v1/investigations/", nil, &out); err != nil {
		return 0, err
	}
	return out.Purged, nil
}

// RecentAudit returns the newest audit entries for the operator.
func (c *Client) RecentAudit(ctx context.Context, limit int) ([]AuditEntry, error) {
	var out struct {
		Entries []AuditEntry `json:"entries"`
	}
	path := fmt.Sprintf("/api/v1/audit/recent?limit=%d", limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// PresignUpload asks the backend for an evidence storage key and a
// presigned PUT URL.
func (c *Client) PresignUpload(ctx context.Context) (key, url string, err error) {
	var out struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}
	in := struct {
		Mode string `json:"mode"`
	}{Mode: "upload"}
	if err := c.do(ctx, http.MethodPost, "/api/v1/evidence/presign", in, &out); err != nil {
		return "", "", err
	}
	return out.Key, out.URL, nil
}
