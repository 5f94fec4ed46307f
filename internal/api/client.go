// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the cost prediction backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnreachable
	ErrTypeTimeout
	ErrTypeConnection
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeUnreachable, Message: "backend is not reachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsUnreachable checks if an error indicates the backend is down.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnreachable
	}
	return errors.Is(err, ErrUnreachable)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsInvalidResponse checks if an error came from an undecodable response.
func IsInvalidResponse(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeInvalidResponse
	}
	return false
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL without the /api prefix
	// (default: http://localhost:5000)
	BaseURL string

	// Timeout for requests (default: 30s)
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://localhost:5000",
		Timeout: 30 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the prediction backend.
// All endpoints exchange JSON over the configured base URL.
//
// The Client is safe for concurrent use.
//
// Example:
//
//	client := api.NewClient()
//	resp, err := client.Predict(ctx, req)
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:5000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckRunning verifies that the backend is reachable.
func (c *Client) CheckRunning(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Type:    ErrTypeConnection,
			Message: "unexpected status from backend: " + resp.Status,
		}
	}

	return nil
}

// =============================================================================
// PREDICTION
// =============================================================================

// Predict submits a prediction request and returns the backend's response.
//
// An application-level failure (backend responds with success=false) is a
// valid *PredictionResponse, not an error; the Error field carries the
// server-supplied message. A non-nil error means the backend could not be
// reached or its reply could not be decoded.
func (c *Client) Predict(ctx context.Context, request *PredictionRequest) (*PredictionResponse, error) {
	var result PredictionResponse
	if err := c.postJSON(ctx, "/api/predict", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// CHAT
// =============================================================================

// Chat sends one chat turn and returns the backend's reply.
// Kind selects between free-text messages and fixed-option values.
// Error semantics match Predict: success=false replies are not errors.
func (c *Client) Chat(ctx context.Context, message string, kind ChatKind) (*ChatResponse, error) {
	var result ChatResponse
	if err := c.postJSON(ctx, "/api/chat", &ChatRequest{Message: message, Type: kind}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// =============================================================================
// AGGREGATE DATA
// =============================================================================

// Statistics fetches the dataset summary. Best-effort: callers are expected
// to swallow failures.
func (c *Client) Statistics(ctx context.Context) (*Statistics, error) {
	var result Statistics
	if err := c.getJSON(ctx, "/api/statistics", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Visualizations fetches the six chart datasets. Datasets with mismatched
// parallel sequences are rejected as an invalid response so the caller can
// fall back to sample data.
func (c *Client) Visualizations(ctx context.Context) (*VisualizationData, error) {
	var result VisualizationData
	if err := c.getJSON(ctx, "/api/visualizations", &result); err != nil {
		return nil, err
	}
	if err := result.Validate(); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "malformed visualization payload", Cause: err}
	}
	return &result, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// postJSON posts a JSON body and decodes the JSON reply into out.
// The backend reports application failures as JSON bodies with non-OK
// statuses, so the body is decoded regardless of status code; only an
// undecodable body is an invalid response.
func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// getJSON performs a GET and decodes the JSON reply into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrUnreachable
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return nil
}
