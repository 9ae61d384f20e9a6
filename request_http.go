package pdfcreate

import (
	"context"
	"fmt"
	"net/http"
)

// HTTPRequestSource configures FetchRequest.
type HTTPRequestSource struct {
	URL    string
	Client *http.Client
}

// FetchRequest downloads a JSON request over HTTP(S) and decodes it with
// DecodeRequest.
func FetchRequest(ctx context.Context, src HTTPRequestSource) (Request, error) {
	if src.URL == "" {
		return Request{}, fmt.Errorf("fetch request: URL is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := src.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return Request{}, fmt.Errorf("fetch request: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return Request{}, fmt.Errorf("fetch request: unsupported scheme %q", httpReq.URL.Scheme)
	}
	httpReq.Header.Set("Accept", "application/json")
	resp, err := client.Do(httpReq)
	if err != nil {
		return Request{}, fmt.Errorf("fetch request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Request{}, fmt.Errorf("fetch request: status %s", resp.Status)
	}
	return DecodeRequest(resp.Body)
}
