package translate

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

// HTTPTranslator calls a JSON translation endpoint:
//
//	POST {"target": "fr", "texts": ["..."]}
//	200  {"translations": ["..."]}
type HTTPTranslator struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

type httpRequest struct {
	Target string   `json:"target"`
	Texts  []string `json:"texts"`
}

type httpResponse struct {
	Translations []string `json:"translations"`
}

// Translate implements Translator.
func (t *HTTPTranslator) Translate(ctx context.Context, texts []string, target string) ([]string, error) {
	if t.Endpoint == "" {
		return nil, fmt.Errorf("translation endpoint is not configured")
	}
	body, err := json.Marshal(httpRequest{Target: target, Texts: texts})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.APIKey)
	}

	client := t.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call translation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("translation service returned %s: %s", resp.Status, strings.TrimSpace(string(excerpt)))
	}

	var out httpResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode translation response: %w", err)
	}
	return out.Translations, nil
}
