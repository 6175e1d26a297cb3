// Package checkclient talks to the eligibility backend's /check endpoint.
package checkclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"govscheme/internal/logger"
	"govscheme/internal/metrics"
	"govscheme/internal/models"
	sentryutil "govscheme/internal/sentry"

	"github.com/google/uuid"
)

// maxBodyBytes bounds how much of a /check response is read.
const maxBodyBytes = 8 << 20

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the backend at baseURL. A zero timeout leaves the
// request bounded only by the transport defaults.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewWithHTTPClient is used by tests to point the client at an httptest server.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, httpClient: hc}
}

// Check posts the profile and returns the partitioned schemes. Every failure
// is a *RequestFailure; on failure the returned set is always empty.
func (c *Client) Check(ctx context.Context, profile models.UserProfile) (models.SchemeResultSet, error) {
	requestID := uuid.NewString()
	start := time.Now()

	set, err := c.do(ctx, requestID, profile)
	metrics.CheckDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		rf := err.(*RequestFailure)
		metrics.CheckRequests.WithLabelValues(string(rf.Kind)).Inc()
		logger.Error("check: request failed", map[string]interface{}{
			"request_id": requestID,
			"kind":       string(rf.Kind),
			"status":     rf.Status,
			"error":      err,
		})
		sentryutil.CaptureError(err, map[string]string{
			"component":  "checkclient",
			"kind":       string(rf.Kind),
			"request_id": requestID,
		})
		return models.SchemeResultSet{}, err
	}

	metrics.CheckRequests.WithLabelValues("ok").Inc()
	logger.Info("check: completed", map[string]interface{}{
		"request_id":   requestID,
		"eligible":     len(set.Eligible),
		"not_eligible": len(set.NotEligible),
		"elapsed_ms":   time.Since(start).Milliseconds(),
	})
	return set, nil
}

func (c *Client) do(ctx context.Context, requestID string, profile models.UserProfile) (models.SchemeResultSet, error) {
	payload, err := json.Marshal(profile)
	if err != nil {
		return models.SchemeResultSet{}, &RequestFailure{Kind: KindTransport, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/check", bytes.NewReader(payload))
	if err != nil {
		return models.SchemeResultSet{}, &RequestFailure{Kind: KindTransport, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.SchemeResultSet{}, &RequestFailure{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return models.SchemeResultSet{}, &RequestFailure{
			Kind:   KindStatus,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return models.SchemeResultSet{}, &RequestFailure{Kind: KindTransport, Status: resp.StatusCode, Err: err}
	}

	if err := validateBody(body); err != nil {
		return models.SchemeResultSet{}, &RequestFailure{Kind: KindDecode, Status: resp.StatusCode, Err: err}
	}

	var decoded models.CheckResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return models.SchemeResultSet{}, &RequestFailure{Kind: KindDecode, Status: resp.StatusCode, Err: err}
	}
	return decoded.ResultSet(), nil
}
