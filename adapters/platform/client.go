// Package platform is the HTTP/JSON client for the mashup platform REST API.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kompox/mashup/domain"
	"github.com/kompox/mashup/domain/model"
	"github.com/kompox/mashup/internal/metrics"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 4 << 20

// Client issues platform API requests.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	token      string
	userAgent  string
	endpoints  Endpoints
	recorder   metrics.Recorder
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithEndpoints overrides API paths; empty fields keep their defaults.
func WithEndpoints(e Endpoints) Option {
	return func(c *Client) { c.endpoints = e.WithDefaults() }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.recorder = r
		}
	}
}

// New creates a Client for the platform at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    u,
		userAgent:  "mashupctl",
		endpoints:  DefaultEndpoints(),
		recorder:   metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL resolves an endpoint path against the server URL, preserving the base path.
func (c *Client) URL(endpoint string) string {
	u := *c.baseURL
	clean := strings.TrimPrefix(endpoint, "/")
	if i := strings.Index(clean, "?"); i != -1 {
		u.RawQuery = clean[i+1:]
		clean = clean[:i]
	}
	// Endpoint values are already path-escaped by evaluate.
	joined := path.Join("/", strings.TrimSuffix(u.EscapedPath(), "/"), clean)
	if p, err := url.PathUnescape(joined); err == nil {
		u.Path, u.RawPath = p, joined
	} else {
		u.Path, u.RawPath = joined, ""
	}
	return u.String()
}

// LogoutURL returns the absolute logout endpoint.
func (c *Client) LogoutURL() string {
	return c.URL(c.endpoints.Logout)
}

func (c *Client) newRequest(ctx context.Context, method, rawURL string, body any) (*http.Request, error) {
	var rd io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, rd)
	if err != nil {
		return nil, fmt.Errorf("create request %s %s: %w", method, rawURL, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do executes req and returns the status code and body of a 2xx response.
// Anything else becomes a *model.RequestError.
func (c *Client) do(op string, req *http.Request) (int, []byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recorder.ObserveRequest(op, "error", time.Since(start))
		return 0, nil, &model.RequestError{Op: op, Kind: model.KindTransport, Reason: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	c.recorder.ObserveRequest(op, strconv.Itoa(resp.StatusCode), time.Since(start))
	if err != nil {
		return resp.StatusCode, nil, &model.RequestError{Op: op, Kind: model.KindTransport, Status: resp.StatusCode, Reason: err.Error(), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, body, statusError(op, resp.StatusCode, body)
	}
	return resp.StatusCode, body, nil
}

// errorBody is the platform's error document.
type errorBody struct {
	Description string         `json:"description"`
	Details     map[string]any `json:"details"`
}

func statusError(op string, status int, body []byte) *model.RequestError {
	e := &model.RequestError{Op: op, Kind: model.KindStatus, Status: status, Reason: http.StatusText(status)}
	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		if eb.Description != "" {
			e.Reason = eb.Description
		}
		if status == http.StatusUnprocessableEntity {
			e.Details = eb.Details
		}
	}
	if e.Reason == "" {
		e.Reason = "HTTP " + strconv.Itoa(status)
	}
	return e
}

func decodeError(op string, status int, err error) *model.RequestError {
	return &model.RequestError{Op: op, Kind: model.KindDecode, Status: status, Reason: "malformed response: " + err.Error(), Err: err}
}

func (c *Client) decodeWorkspace(op string, status int, body []byte) (*model.Workspace, error) {
	var ws model.Workspace
	if err := json.Unmarshal(body, &ws); err != nil {
		return nil, decodeError(op, status, err)
	}
	return &ws, nil
}

func (c *Client) CreateWorkspace(ctx context.Context, in model.CreateWorkspaceRequest) (*model.Workspace, error) {
	const op = "workspace.create"
	req, err := c.newRequest(ctx, http.MethodPost, c.URL(c.endpoints.WorkspaceCollection), in)
	if err != nil {
		return nil, err
	}
	status, body, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	return c.decodeWorkspace(op, status, body)
}

func (c *Client) CloneWorkspace(ctx context.Context, in model.CloneWorkspaceRequest) (*model.Workspace, int, error) {
	const op = "workspace.clone"
	req, err := c.newRequest(ctx, http.MethodPost, c.URL(c.endpoints.WorkspaceCollection), in)
	if err != nil {
		return nil, 0, err
	}
	status, body, err := c.do(op, req)
	if err != nil {
		return nil, status, err
	}
	if status != http.StatusCreated {
		return nil, status, nil
	}
	ws, err := c.decodeWorkspace(op, status, body)
	return ws, status, err
}

func (c *Client) MergeMashup(ctx context.Context, targetID string, in model.MergeMashupRequest) error {
	const op = "workspace.merge"
	endpoint := evaluate(c.endpoints.WorkspaceMerge, map[string]string{"to_ws_id": targetID})
	req, err := c.newRequest(ctx, http.MethodPost, c.URL(endpoint), in)
	if err != nil {
		return err
	}
	_, _, err = c.do(op, req)
	return err
}

func (c *Client) ListWorkspaces(ctx context.Context) ([]*model.Workspace, error) {
	const op = "workspace.list"
	req, err := c.newRequest(ctx, http.MethodGet, c.URL(c.endpoints.WorkspaceCollection), nil)
	if err != nil {
		return nil, err
	}
	status, body, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	var items []*model.Workspace
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, decodeError(op, status, err)
	}
	return items, nil
}

func (c *Client) DeleteWorkspace(ctx context.Context, id string) error {
	const op = "workspace.delete"
	endpoint := evaluate(c.endpoints.WorkspaceEntry, map[string]string{"workspace_id": id})
	req, err := c.newRequest(ctx, http.MethodDelete, c.URL(endpoint), nil)
	if err != nil {
		return err
	}
	_, _, err = c.do(op, req)
	return err
}

func (c *Client) Preferences(ctx context.Context, scope string) (map[string]any, error) {
	const op = "preferences.get"
	endpoint := evaluate(c.endpoints.Preferences, map[string]string{"scope": scope})
	req, err := c.newRequest(ctx, http.MethodGet, c.URL(endpoint), nil)
	if err != nil {
		return nil, err
	}
	status, body, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	prefs := map[string]any{}
	if len(bytes.TrimSpace(body)) == 0 {
		return prefs, nil
	}
	if err := json.Unmarshal(body, &prefs); err != nil {
		return nil, decodeError(op, status, err)
	}
	return prefs, nil
}

// Visit issues a GET to an absolute URL on the platform, following redirects.
func (c *Client) Visit(ctx context.Context, rawURL string) error {
	req, err := c.newRequest(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	_, _, err = c.do("visit", req)
	return err
}

// Compile-time assertion.
var _ domain.WorkspaceAPI = (*Client)(nil)
