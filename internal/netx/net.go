// Package netx holds small HTTP helpers shared by client packages.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// MaxErrorBody caps how much of a failed response body is quoted in errors.
const MaxErrorBody = 512

// Download issues a GET for url and returns the response body. The caller
// must close it. Any status other than 200 is an error carrying the status
// line and the start of the body.
func Download(ctx context.Context, c *http.Client, url string) (io.ReadCloser, error) {
	if c == nil {
		c = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBody))
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}
	return resp.Body, nil
}
