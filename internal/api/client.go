// Package api is the HTTP client for the remote activity-monitor service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// APIError is a non-success response from the monitor service.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("monitor API returned %d: %s", e.Status, e.Body)
}

// Client talks to the activity-monitor service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the monitor at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("monitor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &APIError{Status: resp.StatusCode, Body: string(bytes.TrimSpace(raw))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// --- read endpoints ---

func (c *Client) SystemStatus(ctx context.Context) (*SystemStatus, error) {
	var out SystemStatus
	if err := c.get(ctx, "/api/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CurrentSession(ctx context.Context) (*MonitorSession, error) {
	var out MonitorSession
	if err := c.get(ctx, "/api/sessions/current", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TodaySummary(ctx context.Context) (*TodaySummary, error) {
	var out TodaySummary
	if err := c.get(ctx, "/api/summary/today", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TimeOfDay(ctx context.Context) (*TimeOfDayAnalysis, error) {
	var out TimeOfDayAnalysis
	if err := c.get(ctx, "/api/analysis/time-of-day", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RecentSessions(ctx context.Context, limit int) ([]MonitorSession, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var out []MonitorSession
	if err := c.get(ctx, "/api/sessions/recent", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Categories(ctx context.Context) ([]CategoryInfo, error) {
	var out []CategoryInfo
	if err := c.get(ctx, "/api/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CategoryStats(ctx context.Context) (*CategoryStats, error) {
	var out CategoryStats
	if err := c.get(ctx, "/api/categories/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DatabaseHealth(ctx context.Context) (*DatabaseHealth, error) {
	var out DatabaseHealth
	if err := c.get(ctx, "/api/db/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DatabaseStats(ctx context.Context) (*DatabaseStats, error) {
	var out DatabaseStats
	if err := c.get(ctx, "/api/db/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TodayMonitorSessions(ctx context.Context) ([]MonitorSession, error) {
	var out []MonitorSession
	if err := c.get(ctx, "/api/sessions/today", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- write endpoints ---

func (c *Client) StartMonitor(ctx context.Context) error {
	return c.post(ctx, "/api/monitor/start", nil, nil)
}

func (c *Client) StopMonitor(ctx context.Context) error {
	return c.post(ctx, "/api/monitor/stop", nil, nil)
}

func (c *Client) UpdateMonitorConfig(ctx context.Context, cfg MonitorConfig) error {
	return c.post(ctx, "/api/monitor/config", cfg, nil)
}

func (c *Client) SubmitFeedback(ctx context.Context, fb Feedback) error {
	return c.post(ctx, "/api/feedback", fb, nil)
}

func (c *Client) TriggerRetrain(ctx context.Context) error {
	return c.post(ctx, "/api/model/retrain", nil, nil)
}

func (c *Client) Export(ctx context.Context) (*ExportBundle, error) {
	var out ExportBundle
	if err := c.get(ctx, "/api/data/export", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Import(ctx context.Context, bundle ExportBundle) error {
	return c.post(ctx, "/api/data/import", bundle, nil)
}
