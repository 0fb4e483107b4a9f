// Package watchlists provides the watchlist listing service.
package watchlists

import (
	"context"
	"strings"

	"robinhood-mcp/internal/common"
	"robinhood-mcp/internal/interfaces"
	"robinhood-mcp/internal/models"
	"robinhood-mcp/internal/robinhood"
)

// Service implements WatchlistsService.
type Service struct {
	client interfaces.RobinhoodClient
	logger *common.Logger
}

// NewService creates a new watchlists service.
func NewService(client interfaces.RobinhoodClient, logger *common.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// GetWatchlists returns the user's watchlists. The id is the trailing path
// segment of each list's resource URL. Member symbols are not populated:
// fetching them would cost one upstream call per watchlist.
func (s *Service) GetWatchlists(ctx context.Context) ([]models.Watchlist, error) {
	if err := s.client.EnsureSession(ctx, ""); err != nil {
		return nil, err
	}

	data, err := s.client.GetAllWatchlists(ctx)
	if err != nil {
		return nil, robinhood.APIError("fetch watchlists", err)
	}

	watchlists := make([]models.Watchlist, 0, len(data))
	for _, item := range data {
		listURL, _ := item["url"].(string)
		name, _ := item["name"].(string)
		watchlists = append(watchlists, models.Watchlist{
			ID:      idFromURL(listURL),
			Name:    name,
			Symbols: []string{},
		})
	}

	return watchlists, nil
}

// idFromURL extracts the last path segment from a resource URL like
// "https://api.robinhood.com/midlands/lists/abc123/".
func idFromURL(u string) string {
	trimmed := strings.TrimSuffix(u, "/")
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	return parts[len(parts)-1]
}

var _ interfaces.WatchlistsService = (*Service)(nil)
