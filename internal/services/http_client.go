package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

var maxBodyBytes int64 = 8 << 20

// getJSON issues a GET and decodes the body into out. Errors wrap ErrNetwork,
// ErrStatus, ErrNotFound, ErrTooLarge or ErrDecode, plus the underlying cause.
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %w", ErrNetwork, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: GET %s", ErrNotFound, url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: GET %s returned %d", ErrStatus, url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}
	if int64(len(body)) > maxBodyBytes {
		return fmt.Errorf("%w: GET %s exceeds %d bytes", ErrTooLarge, url, maxBodyBytes)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
