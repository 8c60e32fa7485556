package services

import (
	"context"
	"net/http"
	"net/url"

	"spin-history-dashboard/internal/models"
)

type ENSClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewENSClient expects baseURL to end with a slash; the address is appended to it.
func NewENSClient(httpClient *http.Client, baseURL string) *ENSClient {
	return &ENSClient{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

func (c *ENSClient) Lookup(ctx context.Context, address string) (*models.ENSIdentity, error) {
	var identity models.ENSIdentity
	if err := getJSON(ctx, c.httpClient, c.baseURL+url.PathEscape(address), &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}
