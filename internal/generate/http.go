package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPGenerator calls a generation service that accepts Params as JSON and
// answers with a Fragment.
type HTTPGenerator struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

// GenerateFromHypothesis implements Generator.
func (g *HTTPGenerator) GenerateFromHypothesis(ctx context.Context, p Params) (Fragment, error) {
	if g.Endpoint == "" {
		return Fragment{}, fmt.Errorf("generation endpoint is not configured")
	}
	body, err := json.Marshal(p)
	if err != nil {
		return Fragment{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Fragment{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.APIKey)
	}

	client := g.Client
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Fragment{}, fmt.Errorf("call generation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Fragment{}, fmt.Errorf("generation service returned %s: %s", resp.Status, strings.TrimSpace(string(excerpt)))
	}

	var f Fragment
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return Fragment{}, fmt.Errorf("decode generated carousel: %w", err)
	}
	return f, nil
}
