// Package feed fetches raw catalog rows from a remote HTTP endpoint that
// serves either the CSV dataset or a JSON array of rows.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/Advisor/internal/catalog"
)

type Client interface {
	FetchRows(ctx context.Context) ([]catalog.Row, error)
}

type HTTPClient struct {
	url        string
	token      string
	encoding   catalog.Encoding
	httpClient *http.Client
}

// NewHTTPClient reads CSV responses with enc; JSON responses are UTF-8.
func NewHTTPClient(url, token string, enc catalog.Encoding) *HTTPClient {
	return &HTTPClient{
		url:        url,
		token:      token,
		encoding:   enc,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) doReq(ctx context.Context) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "text/csv, application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode >= 400 {
		return nil, "", fmt.Errorf("catalog feed GET %s: %d %s", c.url, resp.StatusCode, string(body))
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func (c *HTTPClient) FetchRows(ctx context.Context) ([]catalog.Row, error) {
	data, contentType, err := c.doReq(ctx)
	if err != nil {
		return nil, err
	}
	if mt, _, _ := mime.ParseMediaType(contentType); mt == "application/json" {
		var rows []catalog.Row
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("decode catalog feed: %w", err)
		}
		return rows, nil
	}
	return catalog.ReadCSV(bytes.NewReader(data), c.encoding)
}
