package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client reads pre-computed reward APRs from the farming APR API.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type aprResponse struct {
	Result struct {
		FarmPools map[string]struct {
			LastAPR float64 `json:"lastApr"`
		} `json:"farmPools"`
	} `json:"result"`
}

// RewardAPRs returns annualized reward rates keyed by pool id. Pools without
// incentives are simply absent from the map.
func (c *Client) RewardAPRs(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("apr api status %d", resp.StatusCode)
	}

	var parsed aprResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	out := make(map[string]float64, len(parsed.Result.FarmPools))
	for poolID, entry := range parsed.Result.FarmPools {
		out[poolID] = entry.LastAPR
	}
	return out, nil
}
