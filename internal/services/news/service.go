// Package news provides the news service.
package news

import (
	"context"

	"robinhood-mcp/internal/common"
	"robinhood-mcp/internal/interfaces"
	"robinhood-mcp/internal/models"
	"robinhood-mcp/internal/robinhood"
)

// Service implements NewsService.
type Service struct {
	client interfaces.RobinhoodClient
	logger *common.Logger
}

// NewService creates a new news service.
func NewService(client interfaces.RobinhoodClient, logger *common.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// GetNews returns news for a symbol, or general top news when the symbol is
// empty.
func (s *Service) GetNews(ctx context.Context, symbol string) ([]models.NewsItem, error) {
	if err := s.client.EnsureSession(ctx, ""); err != nil {
		return nil, err
	}

	var (
		data []map[string]any
		err  error
	)
	if symbol != "" {
		data, err = s.client.GetNews(ctx, symbol)
	} else {
		data, err = s.client.GetTopNews(ctx)
	}
	if err != nil {
		return nil, robinhood.APIError("fetch news", err)
	}

	items := make([]models.NewsItem, 0, len(data))
	for _, item := range data {
		newsItem, err := models.NewsItemFromPayload(item)
		if err != nil {
			return nil, robinhood.APIError("fetch news", err)
		}
		items = append(items, newsItem)
	}

	return items, nil
}

var _ interfaces.NewsService = (*Service)(nil)
