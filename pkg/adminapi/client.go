package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// APIError is an application-level failure: the endpoint answered with a
// well-formed envelope whose success flag is false. It is distinct from
// transport errors (network failure, non-2xx status), which are plain errors.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "adminapi: request failed"
	}
	return e.Message
}

// Config configures the HTTP admin API client.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to the platform admin API over REST.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the platform admin endpoints.
func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("adminapi: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// ActivityFeed fetches one page of the admin activity feed.
func (c *HTTPClient) ActivityFeed(ctx context.Context, query ActivityQuery) (*ActivityPage, error) {
	params := url.Values{}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Offset > 0 {
		params.Set("offset", strconv.Itoa(query.Offset))
	}
	var resp activityFeedResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/analytics/activity-feed", params, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toPage(), nil
}

// Overview fetches the combined platform metrics object.
func (c *HTTPClient) Overview(ctx context.Context) (*OverviewMetrics, error) {
	var resp overviewResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/analytics/overview", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toMetrics(), nil
}

// Health fetches the system health report. On an application-level failure the
// endpoint may still ship a partial report; whenever the envelope carries any
// payload at all, both the report and an *APIError are returned so callers can
// adopt the partial data.
func (c *HTTPClient) Health(ctx context.Context) (*HealthReport, error) {
	var raw json.RawMessage
	err := c.do(ctx, http.MethodGet, "/api/admin/analytics/health", nil, nil, &raw)
	if err != nil {
		var resp healthResponse
		if apiErr, ok := err.(*APIError); ok && len(raw) > 0 && json.Unmarshal(raw, &resp) == nil {
			return resp.toReport(), apiErr
		}
		return nil, err
	}
	var resp healthResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("adminapi: decode payload: %w", err)
		}
	}
	return resp.toReport(), nil
}

// Users fetches one page of the user directory.
func (c *HTTPClient) Users(ctx context.Context, query UserQuery) (*UserPage, error) {
	params := url.Values{}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	if query.SortBy != "" {
		params.Set("sortBy", query.SortBy)
	}
	if query.SortOrder != "" {
		params.Set("sortOrder", query.SortOrder)
	}
	var resp userPageResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", params, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toPage(), nil
}

// ToggleUserStatus flips a user between active and inactive.
func (c *HTTPClient) ToggleUserStatus(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("adminapi: user id is required")
	}
	return c.do(ctx, http.MethodPost, "/api/admin/users/"+userID+"/toggle-status", nil, nil, nil)
}

// ResetUserPassword triggers a password reset and returns the server message.
func (c *HTTPClient) ResetUserPassword(ctx context.Context, userID string, input ResetPasswordInput) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("adminapi: user id is required")
	}
	req := resetPasswordRequest{SendEmail: input.SendEmail, Reason: input.Reason}
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/api/admin/users/"+userID+"/reset-password", nil, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// RecoveryCatalog fetches the recovery actions grouped by error context.
func (c *HTTPClient) RecoveryCatalog(ctx context.Context) ([]RecoveryGroup, error) {
	var resp recoveryCatalogResponse
	if err := c.do(ctx, http.MethodGet, "/api/errors/recovery", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toGroups(), nil
}

// ExecuteRecovery runs a recovery action against the supplied error details.
func (c *HTTPClient) ExecuteRecovery(ctx context.Context, input ExecuteRecoveryInput) (string, error) {
	if input.ActionID == "" {
		return "", fmt.Errorf("adminapi: recovery action id is required")
	}
	req := executeRecoveryRequest{
		ActionID:     input.ActionID,
		Context:      input.Context,
		ErrorDetails: input.ErrorDetails,
	}
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/api/errors/recovery", nil, req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// StartTraining kicks off the model training pipeline.
func (c *HTTPClient) StartTraining(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/admin/training/start", nil, nil, nil)
}

// PauseTraining pauses the model training pipeline.
func (c *HTTPClient) PauseTraining(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/admin/training/pause", nil, nil, nil)
}

// TriggerBackup requests an immediate platform backup.
func (c *HTTPClient) TriggerBackup(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/admin/backup", nil, nil, nil)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// do issues a request and decodes the uniform response envelope. On
// success=false any payload present is still decoded into target before the
// *APIError is returned, so callers can choose to adopt partial data.
func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, payload any, target any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("adminapi: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("adminapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("adminapi: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("adminapi: remote error %d: %s", resp.StatusCode, buf.String())
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("adminapi: decode response: %w", err)
	}
	if target != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, target); err != nil {
			return fmt.Errorf("adminapi: decode payload: %w", err)
		}
	}
	if !env.Success {
		return &APIError{Message: env.Error}
	}
	return nil
}
