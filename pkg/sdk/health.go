package menuboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// HealthStatus represents the aggregated server health.
type HealthStatus struct {
	Status string            `json:"status"` // "ok", "degraded", "error"
	Checks map[string]string `json:"checks"` // component → "ok"/"missing"/"error"
}

// Health fetches the server health report. A degraded or failing server
// answers 503 with the report body, which is returned without an error.
func (c *Client) Health(ctx context.Context) (_ *HealthStatus, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.JoinPath("health").String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("menuboard: health: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("menuboard: health: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return nil, decodeAPIError(resp)
	}
	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("menuboard: health: decode response: %w", err)
	}
	if status.Status == "" {
		return nil, errors.New("menuboard: health: empty report")
	}
	return &status, nil
}
