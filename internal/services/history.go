package services

import (
	"context"
	"net/http"

	"spin-history-dashboard/internal/models"
)

type HistoryClient struct {
	httpClient *http.Client
	url        string
}

func NewHistoryClient(httpClient *http.Client, url string) *HistoryClient {
	return &HistoryClient{
		httpClient: httpClient,
		url:        url,
	}
}

// FetchHistory returns the bet history in the order the API sent it.
func (c *HistoryClient) FetchHistory(ctx context.Context) ([]models.BetHistoryItem, error) {
	var history []models.BetHistoryItem
	if err := getJSON(ctx, c.httpClient, c.url, &history); err != nil {
		return nil, err
	}
	return history, nil
}
